package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Get(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Head(t *testing.T) {
	req := httptest.NewRequest(http.MethodHead, "/healthz", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthHandlers_Ready_AllHealthy(t *testing.T) {
	h := &HealthHandlers{
		DB:    PingerFunc(func(context.Context) error { return nil }),
		Redis: PingerFunc(func(context.Context) error { return nil }),
	}

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	h.Ready(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok","redis":"ok"}}`, w.Body.String())
}

func TestHealthHandlers_Ready_DependencyDown(t *testing.T) {
	h := &HealthHandlers{
		DB:    PingerFunc(func(context.Context) error { return errors.New("connection refused") }),
		Redis: PingerFunc(func(context.Context) error { return nil }),
	}

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	h.Ready(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"database":"unavailable","redis":"ok"}}`, w.Body.String())
}

func TestHealthHandlers_Ready_NoPingersConfigured(t *testing.T) {
	h := &HealthHandlers{}

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	h.Ready(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"skipped","redis":"skipped"}}`, w.Body.String())
}
