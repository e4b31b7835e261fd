package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/service"
)

func TestItemHandler_Create(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}

	t.Run("created", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(in service.ItemInput) bool {
			return in.Title == "Dune" && in.Creator == "Herbert" && in.TotalUnits == 412 &&
				in.Price.Valid && in.Price.Decimal.Equal(decimal.RequireFromString("12.90"))
		})).Return(&model.Item{ID: uuid.New(), OwnerID: user.ID, Title: "Dune", Creator: "Herbert", Status: model.ItemStatusWant}, nil)

		c, rec := newContext(http.MethodPost, "/api/items", `{"title":"Dune","creator":"Herbert","total_units":412,"price":"12.90"}`)
		require.NoError(t, NewItemHandler(svc).Create(withUser(c, user)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got model.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Dune", got.Title)
		svc.AssertExpectations(t)
	})

	t.Run("title required", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/items", `{"creator":"Herbert"}`)
		err := NewItemHandler(new(MockItemService)).Create(withUser(c, user))

		resp := assertHTTPError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
		assert.Equal(t, "title is required", resp.Error)
	})

	t.Run("bad price", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/items", `{"title":"Dune","creator":"Herbert","price":"cheap"}`)
		err := NewItemHandler(new(MockItemService)).Create(withUser(c, user))

		assertHTTPError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("no session", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/items", `{"title":"Dune","creator":"Herbert"}`)
		err := NewItemHandler(new(MockItemService)).Create(c)

		assertHTTPError(t, err, http.StatusUnauthorized, "AUTH_REQUIRED")
	})
}

func TestItemHandler_Get(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}
	itemID := uuid.New()

	tests := []struct {
		name       string
		param      string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "foreign item", param: itemID.String(), serviceErr: errors.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "missing item", param: itemID.String(), serviceErr: errors.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "malformed id", param: "42", wantStatus: http.StatusBadRequest, wantCode: "INVALID_UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockItemService)
			svc.On("Get", mock.Anything, user.ID, itemID).Return(nil, tt.serviceErr)

			c, _ := newContext(http.MethodGet, "/api/items/"+tt.param, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.param)
			err := NewItemHandler(svc).Get(withUser(c, user))

			assertHTTPError(t, err, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestItemHandler_List(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}

	svc := new(MockItemService)
	svc.On("List", mock.Anything, user.ID, repository.ItemFilter{
		Status:   model.ItemStatusInProgress,
		Category: "Fiction",
		Query:    "dune",
		Sort:     repository.SortUpdated,
		Limit:    10,
	}).Return(nil, nil)

	c, rec := newContext(http.MethodGet, "/api/items?status=in_progress&category=Fiction&q=dune&sort=updated&limit=10", "")
	require.NoError(t, NewItemHandler(svc).List(withUser(c, user)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestItemHandler_Delete(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}
	itemID := uuid.New()

	svc := new(MockItemService)
	svc.On("Delete", mock.Anything, user.ID, itemID).Return(nil)

	c, rec := newContext(http.MethodDelete, "/api/items/"+itemID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(itemID.String())
	require.NoError(t, NewItemHandler(svc).Delete(withUser(c, user)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestItemHandler_SetRating(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}
	itemID := uuid.New()

	c, _ := newContext(http.MethodPatch, "/api/items/"+itemID.String()+"/rating", `{"rating":6}`)
	c.SetParamNames("id")
	c.SetParamValues(itemID.String())
	err := NewItemHandler(new(MockItemService)).SetRating(withUser(c, user))

	resp := assertHTTPError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Equal(t, "rating must be at most 5", resp.Error)
}
