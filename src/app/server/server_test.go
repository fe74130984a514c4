package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/src/app/middleware"
	"resourcehub/src/core/usecase"
	"resourcehub/src/infra/config"
	"resourcehub/src/infra/repo"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "error", Format: "json"},
		HTTP:   config.HTTPConfig{CORSOrigins: []string{"*"}},
	}
}

func newTestServer(cfg *config.Config, health *usecase.HealthService) *Server {
	log := slog.New(slog.DiscardHandler)
	store := repo.NewMemoryRepository(nil)
	if health == nil {
		health = usecase.NewHealthService(log)
		health.Register("storage", store)
	}
	svc := usecase.NewResourceService(store, usecase.DefaultPageSettings(), log)
	return New(cfg, log, svc, health)
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(testConfig(), nil)
	r := s.Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var status usecase.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "healthy", status.Components["storage"].Status)

	req := httptest.NewRequest(http.MethodPost, "/resource", strings.NewReader(`{"name":"tape"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/resource/1", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestServer_DetailedHealthDegraded(t *testing.T) {
	health := usecase.NewHealthService(slog.New(slog.DiscardHandler))
	health.Register("cache", usecase.CheckFunc(func(context.Context) error {
		return errors.New("connection refused")
	}))
	s := newTestServer(testConfig(), health)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimitRPS = 0.001
	cfg.HTTP.RateLimitBurst = 1
	r := newTestServer(cfg, nil).Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
