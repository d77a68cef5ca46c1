package order

import (
	"fmt"

	"nlivrilik/internal/pkg/guard"
)

// DefaultPaymentMethod is used when delivery completion supplies no payment method.
const DefaultPaymentMethod = "cash"

// Cents is a monetary amount in integer cents. All financial arithmetic in the
// order lifecycle is exact integer arithmetic so the total invariant holds to
// the cent.
type Cents int64

// FinancialDetails captures the financial reconciliation recorded at delivery
// completion. The zero value means "not reconciled yet", which is the state of
// every order before it is delivered.
//
// Invariant: total always equals subtotal + deliveryFee.
type FinancialDetails struct { //nolint:recvcheck //using for validation
	subtotal      Cents
	deliveryFee   Cents
	total         Cents
	paymentMethod string
	isPaid        bool
	guard         guard.ConstructorGuard
}

// NewFinancialDetails creates validated financial details.
//
// Subtotal and deliveryFee must be non-negative. When total is nil it is
// computed as subtotal + deliveryFee; when supplied it must match that sum.
// An empty paymentMethod defaults to DefaultPaymentMethod.
//
// Returns an error wrapping ErrInvalidAmount on any violation.
func NewFinancialDetails(
	subtotal Cents,
	deliveryFee Cents,
	total *Cents,
	paymentMethod string,
	isPaid bool,
) (FinancialDetails, error) {
	if subtotal < 0 {
		return FinancialDetails{}, fmt.Errorf("%w: subtotal %d is negative", ErrInvalidAmount, subtotal)
	}
	if deliveryFee < 0 {
		return FinancialDetails{}, fmt.Errorf("%w: delivery fee %d is negative", ErrInvalidAmount, deliveryFee)
	}

	sum := subtotal + deliveryFee
	if total != nil && *total != sum {
		return FinancialDetails{}, fmt.Errorf(
			"%w: total %d does not equal subtotal %d + delivery fee %d",
			ErrInvalidAmount, *total, subtotal, deliveryFee)
	}

	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	return FinancialDetails{
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		total:         sum,
		paymentMethod: paymentMethod,
		isPaid:        isPaid,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreFinancialDetails reconstructs financial details from persistence
// without re-deriving the total. Used only by repository mapping code.
func RestoreFinancialDetails(
	subtotal Cents,
	deliveryFee Cents,
	total Cents,
	paymentMethod string,
	isPaid bool,
) FinancialDetails {
	return FinancialDetails{
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		total:         total,
		paymentMethod: paymentMethod,
		isPaid:        isPaid,
		guard:         guard.NewConstructorGuard(),
	}
}

// IsReconciled reports whether financial details were recorded for the order.
func (f FinancialDetails) IsReconciled() bool {
	return f.guard.Validate(nil) == nil
}

// Subtotal returns the order subtotal in cents.
func (f FinancialDetails) Subtotal() Cents {
	return f.subtotal
}

// DeliveryFee returns the delivery fee in cents.
func (f FinancialDetails) DeliveryFee() Cents {
	return f.deliveryFee
}

// Total returns the order total in cents.
func (f FinancialDetails) Total() Cents {
	return f.total
}

// PaymentMethod returns the recorded payment method.
func (f FinancialDetails) PaymentMethod() string {
	return f.paymentMethod
}

// IsPaid reports whether payment was collected.
func (f FinancialDetails) IsPaid() bool {
	return f.isPaid
}
