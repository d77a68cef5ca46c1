// Package order provides the Order aggregate root and its lifecycle state
// machine for the delivery brokerage.
//
// The package includes:
//   - Order: the aggregate root owning identity, contact info, delivery
//     address, content, status history, delivery details and financials
//   - Status: a state machine enforcing the monotonic forward path
//     PENDING -> CONFIRMED -> PROCESSING -> READY -> IN_TRANSIT -> DELIVERED
//     with CANCELLED reachable from any non-terminal state
//   - ContactInfo, DeliveryAddress, FinancialDetails: validated value objects
//
// Key business rules:
//   - every applied status change appends exactly one immutable history entry
//   - a no-op transition (same status) appends nothing
//   - an order is claimed at most once; reassignment is not supported
//   - financial totals always equal subtotal + delivery fee, in integer cents
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
