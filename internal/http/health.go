package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// CatalogStatus reports whether the catalog is loaded and its size.
type CatalogStatus interface {
	Loaded() bool
	Stats() (songs, books, pages int)
}

type HealthController struct {
	db      Pinger
	catalog CatalogStatus
	version string
}

func NewHealthController(db Pinger, catalog CatalogStatus, version string) *HealthController {
	return &HealthController{
		db:      db,
		catalog: catalog,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	switch {
	case h.catalog == nil || !h.catalog.Loaded():
		checks["catalog"] = "not loaded"
		status = "unhealthy"
	default:
		songs, books, _ := h.catalog.Stats()
		checks["catalog"] = fmt.Sprintf("%d songs, %d books", songs, books)
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
