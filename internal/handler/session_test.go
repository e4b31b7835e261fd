package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/auth"
	"bookshelf/internal/errors"
	"bookshelf/internal/model"
)

func TestSessionGate(t *testing.T) {
	userID := uuid.New()
	claims := &auth.Claims{UserID: userID.String()}

	tests := []struct {
		name       string
		claims     interface{}
		user       *model.User
		userErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "active user", claims: claims, user: &model.User{ID: userID, Active: true}},
		{name: "no claims", claims: nil, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "garbage user id", claims: &auth.Claims{UserID: "nope"}, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "deleted user", claims: claims, userErr: errors.ErrNotFound, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "inactive user", claims: claims, user: &model.User{ID: userID, Active: false}, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "lookup failure", claims: claims, userErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			if tt.user != nil || tt.userErr != nil {
				users.On("GetUser", mock.Anything, userID).Return(tt.user, tt.userErr)
			}

			var reached *model.User
			next := func(c echo.Context) error {
				reached, _ = currentUser(c)
				return c.NoContent(http.StatusOK)
			}

			c, rec := newContext(http.MethodGet, "/api/me", "")
			if tt.claims != nil {
				c.Set(ClaimsContextKey, tt.claims)
			}
			err := SessionGate(users)(next)(c)

			if tt.wantCode != "" {
				assertHTTPError(t, err, tt.wantStatus, tt.wantCode)
				assert.Nil(t, reached)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, reached)
			assert.Equal(t, userID, reached.ID)
		})
	}
}
