package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveRequestID(t *testing.T) {
	assert.Equal(t, "req-1.a:b_c", ResolveRequestID("req-1.a:b_c"))

	for _, bad := range []string{"", "has space", "line\nbreak", strings.Repeat("a", maxRequestIDLength+1)} {
		got := ResolveRequestID(bad)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "%q should be replaced", bad)
	}
}

func TestRequestScope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Empty(t, GetRequestIDFromContext(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	ctx := WithRequestScope(context.Background(), "req-1", logger)
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Same(t, logger, GetLoggerOrDefault(ctx, fallback))
}

func TestDetach_KeepsScopeWithoutCancellation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(WithRequestScope(context.Background(), "req-1", logger))
	cancel()

	detached := Detach(ctx)
	assert.NoError(t, detached.Err())
	assert.Equal(t, "req-1", GetRequestIDFromContext(detached))
	assert.Same(t, logger, GetLoggerOrDefault(detached, nil))
}

func TestRequestIDFromEcho(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, RequestIDFromEcho(c))

	SetRequestID(c, "req-2")
	assert.Equal(t, "req-2", RequestIDFromEcho(c))
}
