package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/auth"
	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

const (
	// ClaimsContextKey is where the JWT middleware stores validated claims.
	ClaimsContextKey = "user"
	// UserContextKey is where SessionGate stores the resolved user.
	UserContextKey = "current_user"
)

// AuthRequired is the response for any request without a usable session.
func AuthRequired() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrAuthRequired.Error(),
		Code:  "AUTH_REQUIRED",
	})
}

// SessionGate resolves the validated session claims to an active user.
// It must run after the JWT middleware.
func SessionGate(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
			if !ok {
				return AuthRequired()
			}
			id, err := auth.UserIDFromClaims(claims)
			if err != nil {
				return AuthRequired()
			}

			user, err := users.GetUser(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					return AuthRequired()
				}
				return errorResponse(err)
			}
			if !user.Active {
				return AuthRequired()
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// currentUser returns the user resolved by SessionGate.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, AuthRequired()
	}
	return user, nil
}
