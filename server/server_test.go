package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"RoboScan360/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:               "development",
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
		TimeZone:          "Asia/Kolkata",
		ConferenceTimeout: time.Second,
		CORSOrigins:       []string{"*"},
	}
}

func newTestRouter(t *testing.T, pre func(r *gin.Engine, app *App)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app := NewApp(testConfig(), &mongo.Database{}, nil, prometheus.NewRegistry())
	r, err := NewRouter(app, pre)
	require.NoError(t, err)
	return r
}

func TestNewAppWiresHandlers(t *testing.T) {
	app := NewApp(testConfig(), &mongo.Database{}, nil, prometheus.NewRegistry())
	require.NotNil(t, app.Handlers)
	assert.NotNil(t, app.Handlers.Auth)
	assert.NotNil(t, app.Handlers.Appointments)
	assert.NotNil(t, app.Handlers.Accounts)
	assert.NotNil(t, app.Handlers.Reports)
	assert.Same(t, app.Appointments, app.Handlers.Appointments)
}

func TestRouter(t *testing.T) {
	var preCalled bool
	r := newTestRouter(t, func(r *gin.Engine, app *App) { preCalled = true })
	assert.True(t, preCalled)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/appointment/create", nil)
		req.Header.Set("Origin", "https://console.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("private routes need a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointment/fetchAll", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetDefaultOptions(t *testing.T) {
	cfg := testConfig()
	opts := GetDefaultOptions(cfg)
	assert.True(t, opts.MongoEnabled)
	assert.False(t, opts.CacheEnabled)

	cfg.RedisAddr = "localhost:6379"
	assert.True(t, GetDefaultOptions(cfg).CacheEnabled)
}
