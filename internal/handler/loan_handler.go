package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

// LoanHandler handles loan endpoints.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequest represents lending an item.
type LoanRequest struct {
	Borrower string     `json:"borrower" validate:"required,max=255"`
	DueAt    *time.Time `json:"due_at"`
	Notes    string     `json:"notes"`
}

// Lend godoc
// @Summary Lend an item
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body LoanRequest true "Loan"
// @Success 201 {object} model.Loan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id}/loans [post]
func (h *LoanHandler) Lend(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req LoanRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	loan, err := h.loanService.Lend(c.Request().Context(), user.ID, itemID, service.LoanInput{
		Borrower: req.Borrower,
		DueAt:    req.DueAt,
		Notes:    req.Notes,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// List godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only loans not yet returned"
// @Success 200 {array} model.Loan
// @Router /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))

	loans, err := h.loanService.List(c.Request().Context(), user.ID, activeOnly)
	if err != nil {
		return errorResponse(err)
	}
	if loans == nil {
		loans = []model.Loan{}
	}
	return c.JSON(http.StatusOK, loans)
}

// Return godoc
// @Summary Mark a loan returned
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} model.Loan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	loan, err := h.loanService.Return(c.Request().Context(), user.ID, loanID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, loan)
}
