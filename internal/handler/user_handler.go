package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/service"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileRequest carries the editable profile fields.
type ProfileRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Bio     string `json:"bio"`
	Country string `json:"country" validate:"max=100"`
}

// GetMe godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), user.ID, service.ProfileInput{
		Name:    req.Name,
		Bio:     req.Bio,
		Country: req.Country,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, updated)
}
