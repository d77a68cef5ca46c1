package http

import (
	"errors"
	"net/http"

	"nlivrilik/internal/adapters/out/postgres/userrepo"
	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/domain/model/rating"
	"nlivrilik/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error body returned by every endpoint.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newErrorResponse(code int, message string) errorResponse {
	return errorResponse{Code: code, Message: message}
}

// statusForError maps domain and application errors to HTTP status codes.
// Unrecognized errors are treated as internal failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, rating.ErrAlreadyRated),
		errors.Is(err, userrepo.ErrEmailTaken),
		errors.Is(err, commands.ErrCourierUnavailable),
		errors.Is(err, commands.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidState),
		errors.Is(err, rating.ErrOrderNotDelivered),
		errors.Is(err, rating.ErrNoCourierAssigned),
		errors.Is(err, rating.ErrCustomerMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, order.ErrNotAssignedToCourier),
		errors.Is(err, rating.ErrInvalidRating),
		errors.Is(err, rating.ErrCommentTooLong),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// domainError writes the mapped error response. Internal failures hide the
// underlying message.
func domainError(ctx echo.Context, err error) error {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	return ctx.JSON(code, newErrorResponse(code, message))
}
