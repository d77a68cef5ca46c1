package commands

import (
	"context"
	"time"

	"nlivrilik/internal/core/domain/model/rating"
)

// SubmitRatingCommandHandler records a customer's rating of a delivered order.
//
// The aggregate checks the order-dependent preconditions (delivered status,
// assigned courier, customer ownership). The one-rating-per-order rule is
// left to the repository's unique constraint: when two submissions race, the
// loser's Add returns an error wrapping rating.ErrAlreadyRated.
type SubmitRatingCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewSubmitRatingCommandHandler creates a handler for rating submission.
func NewSubmitRatingCommandHandler(uowFactory RatingUoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating submission command.
func (h SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ratedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	newRating, err := rating.NewDeliveryRating(
		cmd.RatingID(), ratedOrder, cmd.CustomerID(), cmd.Value(), cmd.Comment(), time.Now())
	if err != nil {
		return err
	}

	if err = uow.RatingRepository().Add(ctx, newRating); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
