package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songbook/internal/services"
)

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("database is locked") }

func serveHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		sb := newTestSongbook(t, services.Options{})
		code, response := serveHealth(t, NewHealthController(db, sb, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "3 songs, 4 books", response.Checks["catalog"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("healthy without database", func(t *testing.T) {
		sb := newTestSongbook(t, services.Options{})
		code, response := serveHealth(t, NewHealthController(nil, sb, ""))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("unhealthy when database fails", func(t *testing.T) {
		sb := newTestSongbook(t, services.Options{})
		code, response := serveHealth(t, NewHealthController(failingPinger{}, sb, ""))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "database is locked")
	})

	t.Run("unhealthy before the catalog is loaded", func(t *testing.T) {
		sb := services.NewSongbook(services.Options{})
		code, response := serveHealth(t, NewHealthController(nil, sb, ""))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not loaded", response.Checks["catalog"])
	})
}
