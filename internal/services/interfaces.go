package services

import (
	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/importers"
)

// OverlayStore persists the favorites and comments overlays.
// Implemented by settingsstore.SettingsStore.
type OverlayStore interface {
	LoadFavorites() ([]string, error)
	SaveFavorites(ids []string) error
	LoadComments() (map[string]string, error)
	SaveComments(comments map[string]string) error
}

// SongStore is the relational mirror of the catalog.
// Implemented by songs.Repository.
type SongStore interface {
	PopulateFromImportIfEmpty(result importers.Result) (bool, error)
	LoadSnapshot() (importers.Result, error)
	SaveLyrics(songID, text string) error
	GetLyrics(songID string) (*entities.Lyrics, error)
	AddComment(songID, text string) (*entities.UserComment, error)
	AddBookComment(bookID, text string) (*entities.UserComment, error)
	CommentsForSong(songID string) ([]entities.UserComment, error)
	CommentsForBook(bookID string) ([]entities.UserComment, error)
}

// FavouriteStore mirrors favourite flags into the relational store.
// Implemented by favourites.Repository.
type FavouriteStore interface {
	SetSongFavourite(songID string, isFavourite bool) error
	GetFavouriteSongs(limit, offset int) ([]entities.Song, int64, error)
}

// BookSearcher answers book title searches from the relational store.
// Implemented by books.Repository.
type BookSearcher interface {
	SearchBooks(query string) ([]entities.Book, error)
}
