package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/songbook/internal/catalog"
)

type SongsController struct {
	store    SongStore
	defaults catalog.SearchFilters
}

func NewSongsController(store SongStore, defaults catalog.SearchFilters) *SongsController {
	return &SongsController{store: store, defaults: defaults}
}

// Search filters songs by query text.
// GET /api/songs?q=&title=&author=&lyrics=&favorites=
//
// Omitted flags fall back to the configured defaults. When nothing matches a
// non-empty query the response carries fuzzy title suggestions.
func (sc *SongsController) Search(c *gin.Context) {
	filters, ok := sc.parseFilters(c)
	if !ok {
		return
	}

	result := sc.store.Search(c.Query("q"), filters)
	c.JSON(http.StatusOK, gin.H{
		"query":       result.Query,
		"filters":     filters,
		"songs":       result.Songs,
		"total":       len(result.Songs),
		"suggestions": result.Suggestions,
	})
}

func (sc *SongsController) parseFilters(c *gin.Context) (catalog.SearchFilters, bool) {
	var filters catalog.SearchFilters
	var ok bool

	if filters.MatchTitle, ok = parseBoolQuery(c, "title", sc.defaults.MatchTitle); !ok {
		return filters, false
	}
	if filters.MatchAuthor, ok = parseBoolQuery(c, "author", sc.defaults.MatchAuthor); !ok {
		return filters, false
	}
	if filters.MatchLyrics, ok = parseBoolQuery(c, "lyrics", sc.defaults.MatchLyrics); !ok {
		return filters, false
	}
	if filters.OnlyFavorites, ok = parseBoolQuery(c, "favorites", sc.defaults.OnlyFavorites); !ok {
		return filters, false
	}
	return filters, true
}

// GetSong returns the detail view of a song.
// GET /api/songs/:id
func (sc *SongsController) GetSong(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	detail, found := sc.store.SongDetail(id)
	if !found {
		respondNotFound(c, "song")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetPages returns the page references of a song, plain pages first.
// GET /api/songs/:id/pages
func (sc *SongsController) GetPages(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if _, found := sc.store.Song(id); !found {
		respondNotFound(c, "song")
		return
	}

	respondList(c, sc.store.Pages(id))
}
