package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// AddFavourite marks a song as favourite.
// POST /api/songs/:id/favourite
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	fc.setFavourite(c, true, "favourite added")
}

// RemoveFavourite removes a song from favourites.
// DELETE /api/songs/:id/favourite
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	fc.setFavourite(c, false, "favourite removed")
}

func (fc *FavouritesController) setFavourite(c *gin.Context, favourite bool, message string) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	found, err := fc.store.SetFavorite(id, favourite)
	if err != nil {
		respondInternalError(c, err, message)
		return
	}
	if !found {
		respondNotFound(c, "song")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "song_id": id, "favorite": favourite})
}

// ListFavourites returns favourite songs, optionally one page of them.
// GET /api/songs/favourites?limit=20&offset=0
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	limit, ok := parseNonNegativeQuery(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := parseNonNegativeQuery(c, "offset", 0)
	if !ok {
		return
	}

	songs, total, err := fc.store.FavouritesPage(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}
	respondPage(c, songs, total)
}
