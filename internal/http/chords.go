package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/songbook/internal/utils"
)

// ChordsRequest carries free chord text, e.g. "G Am C Am Em D G D".
type ChordsRequest struct {
	Text string `json:"text" binding:"max=65536"`
}

// ExtractChords returns the distinct chords of a text, sorted.
// POST /api/chords
func ExtractChords(c *gin.Context) {
	var req ChordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chords": utils.ExtractUniqueChords(req.Text)})
}
