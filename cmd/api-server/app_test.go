package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"practicehub/internal/cms"
	"practicehub/internal/logger"
	synchub "practicehub/internal/sync"
	"practicehub/pkg/utils"
)

func testConfig() utils.Config {
	return utils.Config{
		CacheTTL:  time.Minute,
		Collation: "hu",
		PageSize:  2,
		CMS:       utils.CMSConfig{FallbackFile: "../../data/practices.yaml"},
		Auth:      utils.AuthConfig{JWTSecret: "test", JWTIssuer: "practicehub", JWTDuration: time.Hour},
	}
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestAppRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	log := logger.Nop()
	a := newApp(cfg, synchub.NewHub(log), log)

	w, body := get(t, a.router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, body = get(t, a.router, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", body["status"])

	w, body = get(t, a.router, "/practices")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), body["total"])
	assert.Len(t, body["items"], 2)

	w, body = get(t, a.router, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "file", body["source"])

	w, _ = get(t, a.router, "/practices/rekeszlegzes")
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cms/revalidate", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAppWithoutSources(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	a := newAppWithSource(testConfig(), cms.NewFallbackSource(log), synchub.NewHub(log), log)

	w, _ := get(t, a.router, "/practices")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCatalogOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Collation = "de"
	assert.Equal(t, language.German, catalogOptions(cfg, logger.Nop()).Collation)

	cfg.Collation = "!!"
	assert.Equal(t, language.Hungarian, catalogOptions(cfg, logger.Nop()).Collation)
}
