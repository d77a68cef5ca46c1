package commands_test

import (
	"testing"

	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetCourierAvailabilityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courier := testCourier(t)
	cmd, err := commands.NewSetCourierAvailabilityCommand(courier.ID(), false)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		userRepo.On("Update", ctx, courier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	profile, err := courier.CourierProfile()
	require.NoError(t, err)
	assert.False(t, profile.IsAvailable())
	uow.AssertExpectations(t)
}

func TestSetCourierAvailabilityCommandHandler_Handle_NotACourier(t *testing.T) {
	ctx := t.Context()
	admin, err := user.NewAdmin(kernel.NewUUID(), "Admin", "admin@example.com")
	require.NoError(t, err)
	cmd, err := commands.NewSetCourierAvailabilityCommand(admin.ID(), false)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetCourierAvailabilityCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, user.ErrNotACourier)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
