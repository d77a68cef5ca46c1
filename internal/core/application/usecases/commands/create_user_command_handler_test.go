package commands_test

import (
	"testing"

	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/user"
	"nlivrilik/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUserCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateUserCommand(userID, "Karim", "karim@example.com", kernel.RoleCourier)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateUserCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)

	addedUser := userRepo.Calls[0].Arguments[1].(*user.User)
	assert.True(t, addedUser.ID().IsEqual(userID))
	assert.Equal(t, kernel.RoleCourier, addedUser.Role())
	profile, err := addedUser.CourierProfile()
	require.NoError(t, err)
	assert.True(t, profile.IsAvailable())
}

func TestCreateUserCommandHandler_Handle_InvalidEmail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand(
		kernel.NewUUID(), "Karim", "not-an-email", kernel.RoleCustomer)
	require.NoError(t, err)

	factory := new(MockUserUoWFactory)

	handler := commands.NewCreateUserCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateUserCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateUserCommand(kernel.NewUUID(), "", "k@example.com", kernel.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateUserCommand(kernel.NewUUID(), "K", "k@example.com", kernel.RoleUnknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
