package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	store AdminStore
}

func NewAdminController(store AdminStore) *AdminController {
	return &AdminController{store: store}
}

// Reload re-imports the songbook and returns the import report.
// POST /api/admin/reload
func (ac *AdminController) Reload(c *gin.Context) {
	diagnostics, err := ac.store.Reload(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "reload")
		return
	}

	songs, books, pages := ac.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"message":     "catalog reloaded",
		"songs":       songs,
		"books":       books,
		"pages":       pages,
		"diagnostics": diagnostics,
	})
}

// Diagnostics returns the report of the most recent import.
// GET /api/admin/diagnostics
func (ac *AdminController) Diagnostics(c *gin.Context) {
	c.String(http.StatusOK, ac.store.LastDiagnostics())
}
