package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/service"
)

// ItemHandler handles collection endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRequest represents an item create or update request.
type ItemRequest struct {
	ISBN           string `json:"isbn" validate:"max=20"`
	Title          string `json:"title" validate:"required,max=255"`
	Subtitle       string `json:"subtitle" validate:"max=255"`
	Creator        string `json:"creator" validate:"required,max=255"`
	Publisher      string `json:"publisher" validate:"max=255"`
	PublishedYear  int    `json:"published_year" validate:"gte=0"`
	Category       string `json:"category" validate:"max=100"`
	Status         string `json:"status"`
	TotalUnits     int    `json:"total_units" validate:"gte=0"`
	UnitsCompleted int    `json:"units_completed" validate:"gte=0"`
	Rating         int    `json:"rating" validate:"gte=0,lte=5"`
	Tags           string `json:"tags"`
	Notes          string `json:"notes"`
	Language       string `json:"language" validate:"max=50"`
	Format         string `json:"format" validate:"max=50"`
	Price          string `json:"price" example:"12.90"`
	Favorite       bool   `json:"favorite"`
}

// StatusRequest sets an item's status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RatingRequest sets an item's rating.
type RatingRequest struct {
	Rating int `json:"rating" validate:"gte=0,lte=5"`
}

func (r ItemRequest) input() (service.ItemInput, error) {
	price, err := parseMoney("price", r.Price)
	if err != nil {
		return service.ItemInput{}, err
	}
	return service.ItemInput{
		ISBN:           r.ISBN,
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		Creator:        r.Creator,
		Publisher:      r.Publisher,
		PublishedYear:  r.PublishedYear,
		Category:       r.Category,
		Status:         model.ItemStatus(r.Status),
		TotalUnits:     r.TotalUnits,
		UnitsCompleted: r.UnitsCompleted,
		Rating:         r.Rating,
		Tags:           r.Tags,
		Notes:          r.Notes,
		Language:       r.Language,
		Format:         r.Format,
		Price:          price,
		Favorite:       r.Favorite,
	}, nil
}

// Create godoc
// @Summary Add an item to the collection
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	item, err := h.itemService.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// List godoc
// @Summary List the caller's items
// @Description Newest first; sort=updated orders by last update.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param status query string false "want, in_progress or done"
// @Param category query string false "Category"
// @Param q query string false "Substring of title, creator or category"
// @Param sort query string false "created or updated"
// @Param limit query int false "Maximum number of items"
// @Success 200 {array} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	filter := repository.ItemFilter{
		Status:   model.ItemStatus(c.QueryParam("status")),
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
		Sort:     repository.ItemSort(c.QueryParam("sort")),
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	items, err := h.itemService.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return errorResponse(err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get one item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.itemService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Replace an item's fields
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body ItemRequest true "Item"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	item, err := h.itemService.Update(c.Request().Context(), user.ID, id, in)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.itemService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetStatus godoc
// @Summary Change an item's status
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /items/{id}/status [patch]
func (h *ItemHandler) SetStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.itemService.SetStatus(c.Request().Context(), user.ID, id, model.ItemStatus(req.Status))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

// SetRating godoc
// @Summary Rate an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body RatingRequest true "Rating"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /items/{id}/rating [patch]
func (h *ItemHandler) SetRating(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req RatingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.itemService.SetRating(c.Request().Context(), user.ID, id, req.Rating)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

// ToggleFavorite godoc
// @Summary Flip an item's favorite flag
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 403 {object} errors.ErrorResponse
// @Router /items/{id}/favorite [post]
func (h *ItemHandler) ToggleFavorite(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.itemService.ToggleFavorite(c.Request().Context(), user.ID, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Categories godoc
// @Summary Distinct categories of the caller's items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /items/categories [get]
func (h *ItemHandler) Categories(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	categories, err := h.itemService.Categories(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}
