package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
	"bookshelf/internal/stats"
)

func TestDashboardHandler_Dashboard(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}

	dash := new(MockDashboardService)
	dash.On("Get", mock.Anything, user.ID).Return(&service.Dashboard{
		Stats:         stats.Snapshot{TotalItems: 3},
		Recent:        []model.Item{},
		Reading:       []stats.Progress{},
		WishlistCount: 2,
	}, nil)

	c, rec := newContext(http.MethodGet, "/api/dashboard", "")
	require.NoError(t, NewDashboardHandler(dash, new(MockExportService)).Dashboard(withUser(c, user)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"wishlist_count":2`)
}

func TestDashboardHandler_Export(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}

	t.Run("csv attachment", func(t *testing.T) {
		exp := new(MockExportService)
		exp.On("Export", mock.Anything, user.ID, service.ExportCSV).Return(&service.Export{
			Filename:    "bookshelf-export-20260520-183000.csv",
			ContentType: "text/csv",
			Data:        []byte("id,title\n"),
		}, nil)

		c, rec := newContext(http.MethodGet, "/api/export?format=csv", "")
		require.NoError(t, NewDashboardHandler(new(MockDashboardService), exp).Export(withUser(c, user)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="bookshelf-export-20260520-183000.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, "id,title\n", rec.Body.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		exp := new(MockExportService)
		exp.On("Export", mock.Anything, user.ID, service.ExportFormat("xml")).
			Return(nil, errors.Validation(`unsupported export format "xml"`))

		c, _ := newContext(http.MethodGet, "/api/export?format=xml", "")
		err := NewDashboardHandler(new(MockDashboardService), exp).Export(withUser(c, user))

		assertHTTPError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func TestLoanHandler_Lend(t *testing.T) {
	user := &model.User{ID: uuid.New(), Active: true}
	itemID := uuid.New()

	t.Run("lent", func(t *testing.T) {
		svc := new(MockLoanService)
		svc.On("Lend", mock.Anything, user.ID, itemID, service.LoanInput{Borrower: "Bob"}).
			Return(&model.Loan{ID: uuid.New(), ItemID: itemID, UserID: user.ID, Borrower: "Bob", Status: model.LoanStatusLent}, nil)

		c, rec := newContext(http.MethodPost, "/api/items/"+itemID.String()+"/loans", `{"borrower":"Bob"}`)
		c.SetParamNames("id")
		c.SetParamValues(itemID.String())
		require.NoError(t, NewLoanHandler(svc).Lend(withUser(c, user)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("borrower required", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/api/items/"+itemID.String()+"/loans", `{}`)
		c.SetParamNames("id")
		c.SetParamValues(itemID.String())
		err := NewLoanHandler(new(MockLoanService)).Lend(withUser(c, user))

		resp := assertHTTPError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
		assert.Equal(t, "borrower is required", resp.Error)
	})
}
