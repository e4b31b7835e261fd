package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

// WishlistHandler handles wishlist endpoints.
type WishlistHandler struct {
	wishlistService service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// WishlistRequest represents a new wishlist entry.
type WishlistRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	Creator        string `json:"creator" validate:"required,max=255"`
	Priority       int    `json:"priority" validate:"gte=0,lte=5"`
	EstimatedPrice string `json:"estimated_price" example:"18.90"`
	PurchaseURL    string `json:"purchase_url" validate:"omitempty,url,max=512"`
	Notes          string `json:"notes"`
}

// Create godoc
// @Summary Add a wishlist entry
// @Tags wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WishlistRequest true "Entry"
// @Success 201 {object} model.WishlistEntry
// @Failure 400 {object} errors.ErrorResponse
// @Router /wishlist [post]
func (h *WishlistHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req WishlistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	price, err := parseMoney("estimated_price", req.EstimatedPrice)
	if err != nil {
		return err
	}

	entry, err := h.wishlistService.Create(c.Request().Context(), user.ID, service.WishlistInput{
		Title:          req.Title,
		Creator:        req.Creator,
		Priority:       req.Priority,
		EstimatedPrice: price,
		PurchaseURL:    req.PurchaseURL,
		Notes:          req.Notes,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List wishlist entries
// @Description Highest priority first, then newest.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WishlistEntry
// @Router /wishlist [get]
func (h *WishlistHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	entries, err := h.wishlistService.List(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}
	if entries == nil {
		entries = []model.WishlistEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Delete godoc
// @Summary Remove a wishlist entry
// @Tags wishlist
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishlist/{id} [delete]
func (h *WishlistHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.wishlistService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
