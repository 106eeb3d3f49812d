package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty-stream/internal/middleware"
	"realty-stream/pkg/config"
)

func testApp(t *testing.T, env string) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", env)
	t.Setenv("POSITIONSTACK_API_KEY", "")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	app := NewApp(cfg)
	t.Cleanup(app.cleanup)
	return app
}

func serve(app *App, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	app.Router.ServeHTTP(w, req)
	return w
}

func TestApp_Routes(t *testing.T) {
	app := testApp(t, "development")

	w := serve(app, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(app, "/api/cities")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":10`)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = serve(app, "/api/scrape/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `{"error":"City name is required"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.StreamIDHeader))

	w = serve(app, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = serve(app, "/debug/pprof/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_ProductionHidesProfiling(t *testing.T) {
	app := testApp(t, "production")

	w := serve(app, "/debug/pprof/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, serve(app, "/health").Header().Get("Strict-Transport-Security"))
}

func TestSetupCORS(t *testing.T) {
	app := testApp(t, "development")

	w := serve(app, "/api/cities")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, strings.ToLower(middleware.StreamIDHeader))
}
