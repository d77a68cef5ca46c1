package http

import (
	"errors"
	"net/http"
	"strings"

	"nlivrilik/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidToken         = errors.New("invalid token")
)

// actorClaims is the JWT payload issued by the identity provider: the subject
// carries the user ID and the role claim the wire role name.
type actorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// parseActor validates the bearer token and converts its claims into an actor.
func parseActor(tokenStr, secret string) (kernel.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &actorClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return kernel.Actor{}, errInvalidToken
	}

	claims, ok := token.Claims.(*actorClaims)
	if !ok {
		return kernel.Actor{}, errInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, errInvalidToken
	}

	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, errInvalidToken
	}

	return kernel.NewActor(id, role)
}

func bearerToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errMissingAuthorization
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}

// requireAuth rejects requests without a valid bearer token and stores the
// authenticated actor in the request context.
func requireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, err := bearerToken(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, err.Error()))
			}

			actor, err := parseActor(token, secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, err.Error()))
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// optionalAuth stores the actor when a valid bearer token is present and lets
// anonymous requests through. Used by guest-capable endpoints like order
// submission and rating.
func optionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, err := bearerToken(ctx)
			if err != nil {
				return next(ctx)
			}

			actor, err := parseActor(token, secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, err.Error()))
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// actorFrom retrieves the authenticated actor, if any.
func actorFrom(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}

// customerIDFrom extracts the customer identity for guest-capable endpoints:
// authenticated customers act as themselves, everyone else is a guest.
func customerIDFrom(ctx echo.Context) *kernel.UUID {
	actor, ok := actorFrom(ctx)
	if !ok || actor.Role != kernel.RoleCustomer {
		return nil
	}
	id := actor.ID
	return &id
}
