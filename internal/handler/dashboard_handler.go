package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/service"
)

// DashboardHandler serves the read-only views over a whole collection.
type DashboardHandler struct {
	dashboardService service.DashboardService
	exportService    service.ExportService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService, exportService service.ExportService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, exportService: exportService}
}

// Dashboard godoc
// @Summary Statistics, recent items and reading progress
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.Get(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Export godoc
// @Summary Download the whole collection
// @Tags dashboard
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "json (default) or csv"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Router /export [get]
func (h *DashboardHandler) Export(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format := service.ExportFormat(c.QueryParam("format"))

	out, err := h.exportService.Export(c.Request().Context(), user.ID, format)
	if err != nil {
		return errorResponse(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Blob(http.StatusOK, out.ContentType, out.Data)
}
