package order

import (
	"encoding/json"
	"fmt"

	"nlivrilik/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Ready ──> InTransit ──> Delivered
//	    │            │             │           │           │
//	    └────────────┴─────────────┴───────────┴───────────┴──────> Cancelled
//
// Forward movement is monotonic: a transition may skip intermediate states but
// never move backwards. Cancelled is reachable from every state except the two
// terminal states (Delivered and Cancelled themselves).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first submitted.
	Pending

	// Confirmed indicates the order has been acknowledged by the back office.
	Confirmed

	// Processing indicates the order contents are being prepared.
	Processing

	// Ready indicates the order is claimed and ready for pickup.
	Ready

	// InTransit indicates the courier is en route to the delivery address.
	InTransit

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was aborted before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Processing: "PROCESSING",
		Ready:      "READY",
		InTransit:  "IN_TRANSIT",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// getForwardRanks returns the position of each status on the forward path.
// Cancelled sits outside the path and has no rank.
func getForwardRanks() map[Status]int {
	//nolint:exhaustive // Unknown and Cancelled are intentionally unranked
	return map[Status]int{
		Pending:    1,
		Confirmed:  2,
		Processing: 3,
		Ready:      4,
		InTransit:  5,
		Delivered:  6,
	}
}

// StatusFromString parses the wire representation of a status ("PENDING",
// "IN_TRANSIT", ...). Returns an error for unrecognized values, including
// "UNKNOWN" which is never a valid target.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the known status set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalJSON encodes the status as its wire string ("PENDING", "READY", ...).
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status from its wire string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := StatusFromString(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActiveDelivery reports whether the status counts against a courier's
// concurrent-delivery capacity.
func (s Status) IsActiveDelivery() bool {
	return s == Ready || s == InTransit
}

// IsClaimable reports whether an unassigned order in this status may be
// claimed by a courier.
func (s Status) IsClaimable() bool {
	return s == Pending || s == Confirmed || s == Processing
}

// CanTransitionTo checks whether moving from the current status to target is
// allowed by the state machine, ignoring role permissions.
//
// Rules:
//   - terminal states allow no transitions
//   - Cancelled is reachable from any non-terminal state
//   - otherwise the target must lie strictly ahead on the forward path
//
// Returns nil if the transition is allowed, or an error wrapping
// ErrInvalidState describing why it is not.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return fmt.Errorf("%w: %s is a terminal status", ErrInvalidState, s)
	}

	if target == Cancelled {
		return nil
	}

	ranks := getForwardRanks()
	if ranks[target] <= ranks[s] {
		return fmt.Errorf("%w: cannot move from %s back to %s", ErrInvalidState, s, target)
	}

	return nil
}
