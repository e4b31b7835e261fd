package logger

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense").GetLevel())
}

func TestMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	e := echo.New()
	e.Use(Middleware(log))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request complete", line["message"])
	assert.Equal(t, "info", line["severity"])
	assert.Equal(t, "/ping", line["http.req.path"])
	assert.EqualValues(t, http.StatusOK, line["http.resp.status"])

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request rejected", line["message"])
	assert.Equal(t, "warning", line["severity"])
}

func TestMiddleware_LogsCauseOfServerErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	e := echo.New()
	e.Use(Middleware(log))
	e.GET("/items", func(c echo.Context) error {
		dialErr := stderrors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").
			SetInternal(fmt.Errorf("list items: %w", dialErr))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request failed", line["message"])
	assert.Equal(t, "list items: dial tcp 127.0.0.1:3306: connect: connection refused", line["error"])
}
