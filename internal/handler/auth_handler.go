package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=3"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember_me"`
}

// AuthResponse represents an authentication response. The token is also set
// as the session cookie.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates the account and starts a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		return errorResponse(err)
	}

	session, err := h.authService.Session(user, false)
	if err != nil {
		return errorResponse(err)
	}
	c.SetCookie(auth.SessionCookie(session, h.secureCookie))

	return c.JSON(http.StatusCreated, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// Login godoc
// @Summary Login user
// @Description Without remember_me the cookie ends with the browser session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return errorResponse(err)
	}
	c.SetCookie(auth.SessionCookie(session, h.secureCookie))

	return c.JSON(http.StatusOK, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie. Tokens are not revoked server-side.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearCookie(h.secureCookie))
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
