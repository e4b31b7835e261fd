package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, user *model.User) echo.Context {
	c.Set(UserContextKey, user)
	return c
}

func assertHTTPError(t *testing.T, err error, status int, code string) errors.ErrorResponse {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Code)
	resp, ok := httpErr.Message.(errors.ErrorResponse)
	require.True(t, ok, "message is %T", httpErr.Message)
	assert.Equal(t, code, resp.Code)
	return resp
}
