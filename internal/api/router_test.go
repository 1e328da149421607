package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-dispatch/internal/config"
)

func TestRouterRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Data.DatasetDir = t.TempDir()
	cfg.Data.PlantDir = t.TempDir()
	router := NewRouter(cfg, nil)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	health := get("/health")
	require.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())

	metrics := get("/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)

	assert.Equal(t, http.StatusOK, get("/api/v1/datasets").Code)
	assert.Equal(t, http.StatusOK, get("/api/v1/plants").Code)
	assert.Equal(t, http.StatusNotFound, get("/nope").Code)
}
