package order_test

import (
	"testing"

	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("defined statuses are valid", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending, order.Confirmed, order.Processing,
			order.Ready, order.InTransit, order.Delivered, order.Cancelled,
		}
		for _, s := range statuses {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown and out-of-range are invalid", func(t *testing.T) {
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips wire names", func(t *testing.T) {
		for _, name := range []string{
			"PENDING", "CONFIRMED", "PROCESSING", "READY", "IN_TRANSIT", "DELIVERED", "CANCELLED",
		} {
			s, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.String())
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("UNKNOWN")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("forward moves are allowed", func(t *testing.T) {
		require.NoError(t, order.Pending.CanTransitionTo(order.Confirmed))
		require.NoError(t, order.Confirmed.CanTransitionTo(order.Processing))
		require.NoError(t, order.Processing.CanTransitionTo(order.Ready))
		require.NoError(t, order.Ready.CanTransitionTo(order.InTransit))
		require.NoError(t, order.InTransit.CanTransitionTo(order.Delivered))
	})

	t.Run("forward jumps are allowed", func(t *testing.T) {
		require.NoError(t, order.Pending.CanTransitionTo(order.Ready))
		require.NoError(t, order.Confirmed.CanTransitionTo(order.InTransit))
	})

	t.Run("backward moves are rejected", func(t *testing.T) {
		require.ErrorIs(t, order.Ready.CanTransitionTo(order.Confirmed), order.ErrInvalidState)
		require.ErrorIs(t, order.InTransit.CanTransitionTo(order.Pending), order.ErrInvalidState)
	})

	t.Run("cancelled is reachable from any non-terminal state", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Processing, order.Ready, order.InTransit,
		} {
			require.NoError(t, s.CanTransitionTo(order.Cancelled))
		}
	})

	t.Run("terminal states allow no transitions", func(t *testing.T) {
		require.ErrorIs(t, order.Delivered.CanTransitionTo(order.Cancelled), order.ErrInvalidState)
		require.ErrorIs(t, order.Cancelled.CanTransitionTo(order.Pending), order.ErrInvalidState)
		require.ErrorIs(t, order.Cancelled.CanTransitionTo(order.Delivered), order.ErrInvalidState)
	})

	t.Run("invalid target is rejected", func(t *testing.T) {
		require.ErrorIs(t, order.Pending.CanTransitionTo(order.Unknown), errs.ErrValueIsInvalid)
	})
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())

	assert.True(t, order.Ready.IsActiveDelivery())
	assert.True(t, order.InTransit.IsActiveDelivery())
	assert.False(t, order.Confirmed.IsActiveDelivery())
	assert.False(t, order.Delivered.IsActiveDelivery())

	assert.True(t, order.Pending.IsClaimable())
	assert.True(t, order.Confirmed.IsClaimable())
	assert.True(t, order.Processing.IsClaimable())
	assert.False(t, order.Ready.IsClaimable())
	assert.False(t, order.Cancelled.IsClaimable())
}
