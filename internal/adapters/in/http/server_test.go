package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nlivrilik/internal/adapters/out/postgres/userrepo"
	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"
	"nlivrilik/internal/core/domain/model/rating"
	"nlivrilik/internal/pkg/errs"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, id kernel.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, actorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func testEcho() *echo.Echo {
	e := echo.New()
	server := &Server{jwtSecret: testSecret}
	server.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(testEcho(), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestProtectedEndpoint_MissingToken(t *testing.T) {
	orderID := kernel.NewUUID()
	rec := doRequest(testEcho(), http.MethodPost, "/api/v1/orders/"+orderID.String()+"/take", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpoint_GarbageToken(t *testing.T) {
	orderID := kernel.NewUUID()
	rec := doRequest(testEcho(), http.MethodPost,
		"/api/v1/orders/"+orderID.String()+"/take", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpoint_WrongSecret(t *testing.T) {
	id := kernel.NewUUID()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, actorClaims{
		Role: kernel.RoleCourier.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: id.String(),
		},
	})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(testEcho(), http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/take", signed, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTakeOrder_CustomerForbidden(t *testing.T) {
	token := signedToken(t, kernel.NewUUID(), kernel.RoleCustomer.String())
	rec := doRequest(testEcho(), http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/take", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListOrders_CourierForbidden(t *testing.T) {
	token := signedToken(t, kernel.NewUUID(), kernel.RoleCourier.String())
	rec := doRequest(testEcho(), http.MethodGet, "/api/v1/orders?status=PENDING", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListOrders_InvalidStatus(t *testing.T) {
	token := signedToken(t, kernel.NewUUID(), kernel.RoleAdmin.String())
	rec := doRequest(testEcho(), http.MethodGet, "/api/v1/orders?status=BOGUS", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_MalformedID(t *testing.T) {
	rec := doRequest(testEcho(), http.MethodGet, "/api/v1/orders/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	// Missing contact fields and content
	body := `{"address": "12 Avenue Mohammed V, Rabat"}`
	rec := doRequest(testEcho(), http.MethodPost, "/api/v1/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestSubmitRating_ValueOutOfRange(t *testing.T) {
	body := `{"rating": 6}`
	rec := doRequest(testEcho(), http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/rating", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRating_InvalidTokenRejectedEvenIfOptional(t *testing.T) {
	body := `{"rating": 5}`
	rec := doRequest(testEcho(), http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/rating", "broken-token", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUser_AdminSelfRegistrationForbidden(t *testing.T) {
	body := `{"name": "Root", "email": "root@example.com", "role": "ADMIN"}`
	rec := doRequest(testEcho(), http.MethodPost, "/api/v1/users", "", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetAvailability_OtherCourierForbidden(t *testing.T) {
	token := signedToken(t, kernel.NewUUID(), kernel.RoleCourier.String())
	body := `{"available": false}`
	rec := doRequest(testEcho(), http.MethodPatch,
		"/api/v1/couriers/"+kernel.NewUUID().String()+"/availability", token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestParseActor_RoundTrip(t *testing.T) {
	id := kernel.NewUUID()
	token := signedToken(t, id, kernel.RoleCourier.String())

	actor, err := parseActor(token, testSecret)
	require.NoError(t, err)
	assert.True(t, actor.ID.IsEqual(id))
	assert.Equal(t, kernel.RoleCourier, actor.Role)
}

func TestParseActor_UnknownRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, actorClaims{
		Role: "SUPERUSER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: kernel.NewUUID().String(),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = parseActor(signed, testSecret)
	require.Error(t, err)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"forbidden", order.ErrForbidden, http.StatusForbidden},
		{"already assigned", order.ErrAlreadyAssigned, http.StatusConflict},
		{"already rated", rating.ErrAlreadyRated, http.StatusConflict},
		{"email taken", userrepo.ErrEmailTaken, http.StatusConflict},
		{"courier unavailable", commands.ErrCourierUnavailable, http.StatusConflict},
		{"capacity exceeded", commands.ErrCapacityExceeded, http.StatusConflict},
		{"invalid state", order.ErrInvalidState, http.StatusUnprocessableEntity},
		{"not delivered", rating.ErrOrderNotDelivered, http.StatusUnprocessableEntity},
		{"customer mismatch", rating.ErrCustomerMismatch, http.StatusUnprocessableEntity},
		{"invalid amount", order.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid value", errs.ErrValueIsInvalid, http.StatusBadRequest},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
