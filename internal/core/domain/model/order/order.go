package order

import (
	"errors"
	"fmt"
	"time"

	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

// DefaultDeliveryEstimate is the window added to the current time when a
// courier moves an order to Ready or InTransit without an estimate set.
const DefaultDeliveryEstimate = 30 * time.Minute

// Domain errors for order operations. Callers classify failures with
// errors.Is against these sentinels.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidState is returned when the requested operation is not valid
	// for the order's current status.
	ErrInvalidState = errors.New("operation is not valid for the current order status")

	// ErrForbidden is returned when the acting principal's role or identity
	// does not permit the requested operation on this order.
	ErrForbidden = errors.New("actor is not allowed to perform this operation")

	// ErrAlreadyAssigned is returned when claiming an order that already has a courier.
	ErrAlreadyAssigned = errors.New("order is already assigned to a courier")

	// ErrNotAssignedToCourier is returned when a courier acts on an order
	// assigned to somebody else (or to nobody).
	ErrNotAssignedToCourier = errors.New("order is not assigned to this courier")

	// ErrInvalidAmount is returned for negative or inconsistent financial amounts.
	ErrInvalidAmount = errors.New("financial amount is invalid")
)

// HistoryEntry is one element of an order's append-only status history.
// Fields are exported because the history is serialized as-is by persistence.
type HistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Order is the aggregate root of the delivery brokerage. It owns the full
// order lifecycle: submission, claiming by a courier, status progression,
// financial reconciliation at delivery, and cancellation.
//
// Invariants enforced here:
//   - status is the single source of truth for lifecycle state and only
//     moves along the transitions defined by Status.CanTransitionTo
//   - every applied status change appends exactly one history entry;
//     the history is never mutated or truncated
//   - contact info is immutable after creation
//   - the courier reference is nil until a claim succeeds and is never
//     silently replaced afterwards
//   - financial details are zero until delivery completion and always
//     satisfy total = subtotal + deliveryFee
type Order struct {
	id         kernel.UUID
	customerID *kernel.UUID
	contact    ContactInfo
	address    DeliveryAddress
	content    string

	status  Status
	history []HistoryEntry

	financials FinancialDetails

	courierID             *kernel.UUID
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
	deliveryNotes         string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with a seeded history entry.
//
// Parameters:
//   - id: unique order identifier
//   - customerID: optional identity of the submitting customer (nil for guest orders)
//   - contact: validated contact info (immutable afterwards)
//   - address: validated delivery address
//   - content: free-text description of the items to deliver (required)
//   - now: creation timestamp
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	contact ContactInfo,
	address DeliveryAddress,
	content string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setContact(contact),
		o.setAddress(address),
		o.setContent(content),
	); err != nil {
		return nil, err
	}

	o.createdAt = now
	o.updatedAt = now
	o.history = []HistoryEntry{{Status: Pending, Timestamp: now, Note: "Order received"}}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it does not seed history or apply defaults: the restored
// order carries exactly the state that was persisted.
func RestoreOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	contact ContactInfo,
	address DeliveryAddress,
	content string,
	status Status,
	history []HistoryEntry,
	financials FinancialDetails,
	courierID *kernel.UUID,
	estimatedDeliveryTime *time.Time,
	actualDeliveryTime *time.Time,
	deliveryNotes string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setContact(contact),
		o.setAddress(address),
		o.setContent(content),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.history = history
	o.financials = financials
	o.courierID = courierID
	o.estimatedDeliveryTime = estimatedDeliveryTime
	o.actualDeliveryTime = actualDeliveryTime
	o.deliveryNotes = deliveryNotes
	o.createdAt = createdAt
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the submitting customer's identity, or nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Contact returns the immutable contact info attached at creation.
func (o *Order) Contact() ContactInfo {
	return o.contact
}

// Address returns the delivery address.
func (o *Order) Address() DeliveryAddress {
	return o.address
}

// Content returns the free-text description of the items to deliver.
func (o *Order) Content() string {
	return o.content
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// Financials returns the recorded financial details. The zero value means the
// order has not been reconciled yet; check with FinancialDetails.IsReconciled.
func (o *Order) Financials() FinancialDetails {
	return o.financials
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// IsAssignedTo reports whether the order is assigned to the given courier.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// EstimatedDeliveryTime returns the advisory delivery estimate, or nil if unset.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns the recorded delivery time, or nil before delivery.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// DeliveryNotes returns the courier's notes recorded at delivery completion.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus validates and applies a status transition requested by actor.
//
// A request for the current status is a tolerated no-op: it returns
// (false, nil) and appends nothing to the history. Otherwise the change is
// checked against the actor's role, then against the state machine, side
// effects for the target status are applied, and exactly one history entry is
// appended with the supplied note (or a role-aware default when empty).
//
// Side effects by target status:
//   - Ready, InTransit: sets the delivery estimate to now + DefaultDeliveryEstimate
//     when none is set
//   - Delivered: records the actual delivery time
//
// Removing the order from the courier's active set (and crediting completed
// deliveries) involves the User aggregate and is coordinated by the command
// handler, not here.
//
// Returns (true, nil) when a transition was applied, (false, nil) for a no-op,
// or an error wrapping ErrForbidden or ErrInvalidState.
func (o *Order) ChangeStatus(target Status, actor kernel.Actor, note string, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}
	if err := actor.Validate(); err != nil {
		return false, err
	}

	if target == o.status {
		return false, nil
	}

	if err := o.authorizeTransition(actor, target); err != nil {
		return false, err
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return false, err
	}

	switch target { //nolint:exhaustive // other targets have no side effects
	case Ready, InTransit:
		if o.estimatedDeliveryTime == nil {
			estimate := now.Add(DefaultDeliveryEstimate)
			o.estimatedDeliveryTime = &estimate
		}
	case Delivered:
		o.actualDeliveryTime = &now
	}

	previous := o.status
	o.status = target
	if note == "" {
		note = defaultTransitionNote(previous, target, actor.Role)
	}
	o.history = append(o.history, HistoryEntry{Status: target, Timestamp: now, Note: note})
	o.updatedAt = now

	return true, nil
}

// CanBeClaimed reports whether the order is open for a courier claim.
//
// Checks (first failure wins):
//   - the order is unassigned, else ErrAlreadyAssigned
//   - the current status is claimable (Pending, Confirmed or Processing),
//     else an error wrapping ErrInvalidState
func (o *Order) CanBeClaimed() error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrAlreadyAssigned
	}
	if !o.status.IsClaimable() {
		return fmt.Errorf("%w: %s order cannot be claimed", ErrInvalidState, o.status)
	}

	return nil
}

// Assign claims the order for a courier and moves it to Ready.
// Preconditions are those of CanBeClaimed.
//
// The capacity check against the courier's other active deliveries requires
// repository state and is enforced by the take-order command handler before
// persisting; the persistence layer additionally guards the unassigned
// condition with a conditional update so concurrent claims cannot both win.
func (o *Order) Assign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.CanBeClaimed(); err != nil {
		return err
	}

	o.courierID = &courierID
	if _, err := o.ChangeStatus(Ready, kernel.Actor{ID: courierID, Role: kernel.RoleCourier}, "", now); err != nil {
		o.courierID = nil
		return err
	}

	return nil
}

// CompleteDelivery records the financial reconciliation and delivers the order.
//
// Preconditions: the order must be assigned to courierID (else
// ErrNotAssignedToCourier) and in InTransit status (else an error wrapping
// ErrInvalidState). The financials must be a constructed FinancialDetails
// value, which guarantees non-negative amounts and the total invariant.
//
// Delegates the status change to ChangeStatus, composing its Delivered side
// effects (actual delivery time, history entry).
func (o *Order) CompleteDelivery(
	courierID kernel.UUID,
	financials FinancialDetails,
	notes string,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.IsAssignedTo(courierID) {
		return ErrNotAssignedToCourier
	}
	if o.status != InTransit {
		return fmt.Errorf("%w: %s order cannot be completed", ErrInvalidState, o.status)
	}
	if !financials.IsReconciled() {
		return fmt.Errorf("%w: financial details are not constructed", ErrInvalidAmount)
	}

	o.financials = financials
	o.deliveryNotes = notes

	if _, err := o.ChangeStatus(
		Delivered, kernel.Actor{ID: courierID, Role: kernel.RoleCourier}, "", now,
	); err != nil {
		return err
	}

	return nil
}

// authorizeTransition applies the role gates of the transition engine:
//   - admins may request any transition
//   - the assigned courier may move their own order to Ready, InTransit,
//     Delivered or Cancelled
//   - a customer may only cancel, and only when the order carries no customer
//     identity or carries their own
func (o *Order) authorizeTransition(actor kernel.Actor, target Status) error {
	switch actor.Role { //nolint:exhaustive // unknown roles fail Actor.Validate earlier
	case kernel.RoleAdmin:
		return nil

	case kernel.RoleCourier:
		if !o.IsAssignedTo(actor.ID) {
			return fmt.Errorf("%w: order is not assigned to courier %s", ErrForbidden, actor.ID)
		}
		switch target { //nolint:exhaustive // all other targets are admin-only
		case Ready, InTransit, Delivered, Cancelled:
			return nil
		}
		return fmt.Errorf("%w: couriers cannot set status %s", ErrForbidden, target)

	case kernel.RoleCustomer:
		if target != Cancelled {
			return fmt.Errorf("%w: customers cannot set status %s", ErrForbidden, target)
		}
		if o.customerID != nil && !o.customerID.IsEqual(actor.ID) {
			return fmt.Errorf("%w: order belongs to another customer", ErrForbidden)
		}
		return nil
	}

	return fmt.Errorf("%w: role %s cannot change order status", ErrForbidden, actor.Role)
}

// defaultTransitionNote builds the history note used when the caller supplies none.
func defaultTransitionNote(previous, target Status, role kernel.Role) string {
	switch target { //nolint:exhaustive // Unknown/Pending are never transition targets
	case Confirmed:
		return "Order confirmed"
	case Processing:
		return "Order is being prepared"
	case Ready:
		if role == kernel.RoleCourier {
			return "Order claimed by courier"
		}
		return "Order ready for pickup"
	case InTransit:
		return "Order picked up by courier"
	case Delivered:
		return "Order delivered"
	case Cancelled:
		switch role { //nolint:exhaustive // unknown roles fail validation earlier
		case kernel.RoleCustomer:
			return "Order cancelled by customer"
		case kernel.RoleCourier:
			return "Order cancelled by courier"
		default:
			return "Order cancelled by administrator"
		}
	}
	return fmt.Sprintf("Status changed from %s to %s", previous, target)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setContact(contact ContactInfo) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setAddress(address DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setContent(content string) error {
	if content == "" {
		return errs.NewValueIsRequiredError("orderContent")
	}
	o.content = content
	return nil
}
