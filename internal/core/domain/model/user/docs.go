// Package user provides the User aggregate for all principals of the
// brokerage: administrators, customers, and delivery couriers.
//
// User is a tagged union keyed by kernel.Role. The courier variant carries a
// CourierProfile (availability toggle, active-delivery set with set semantics,
// completed-delivery counter); the other variants carry no extra state.
// Courier-only operations return ErrNotACourier for other roles.
package user
