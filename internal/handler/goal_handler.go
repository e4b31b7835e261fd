package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/errors"
	"bookshelf/internal/service"
)

// GoalHandler handles reading goal endpoints.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest sets the targets of a year.
type GoalRequest struct {
	TargetItems int `json:"target_items" validate:"required,gte=1"`
	TargetUnits int `json:"target_units" validate:"required,gte=1"`
}

// Current godoc
// @Summary This year's goal and progress
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.GoalStatus
// @Failure 401 {object} errors.ErrorResponse
// @Router /goals/current [get]
func (h *GoalHandler) Current(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	status, err := h.goalService.Current(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, status)
}

// Set godoc
// @Summary Set the goal of a year
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param request body GoalRequest true "Targets"
// @Success 200 {object} service.GoalStatus
// @Failure 400 {object} errors.ErrorResponse
// @Router /goals/{year} [put]
func (h *GoalHandler) Set(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return errorResponse(errors.Validation("invalid year"))
	}
	var req GoalRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status, err := h.goalService.Set(c.Request().Context(), user.ID, year, req.TargetItems, req.TargetUnits)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, status)
}
