package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster-service/internal/handler"
)

func TestLoggingMiddleware_TagsScheduleRequests(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	e.Use(handler.LoggingMiddleware(logger))
	e.GET("/schedules/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/schedules/sched-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "sched-1", entry.Data["schedule_id"])
	assert.Equal(t, "/schedules/:id", entry.Data["route"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestLoggingMiddleware_NoScheduleField(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	e.Use(handler.LoggingMiddleware(logger))
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Len(t, hook.Entries, 1)
	_, ok := hook.LastEntry().Data["schedule_id"]
	assert.False(t, ok)
}
