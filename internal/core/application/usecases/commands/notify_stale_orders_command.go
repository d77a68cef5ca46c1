package commands

import (
	"errors"
	"time"

	"nlivrilik/internal/pkg/errs"
	"nlivrilik/internal/pkg/guard"
)

var ErrNotifyStaleOrdersCommandIsNotConstructed = errors.New(
	"NotifyStaleOrdersCommand must be created via NewNotifyStaleOrdersCommand constructor",
)

// NotifyStaleOrdersCommand represents a request to remind administrators
// about orders that have been sitting unclaimed longer than the threshold.
type NotifyStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewNotifyStaleOrdersCommand creates a command with the staleness threshold:
// orders unassigned for longer than this duration trigger the reminder.
func NewNotifyStaleOrdersCommand(threshold time.Duration) (NotifyStaleOrdersCommand, error) {
	staleCommand := NotifyStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := staleCommand.setThreshold(threshold); err != nil {
		return NotifyStaleOrdersCommand{}, err
	}

	return staleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyStaleOrdersCommandIsNotConstructed)
}

// Threshold returns the staleness threshold.
func (c NotifyStaleOrdersCommand) Threshold() time.Duration {
	return c.threshold
}

func (c *NotifyStaleOrdersCommand) setThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return errs.NewValueIsInvalidError("threshold")
	}

	c.threshold = threshold
	return nil
}
