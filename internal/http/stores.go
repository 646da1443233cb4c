package http

import (
	"context"

	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/services"
)

// This file consolidates the store interfaces used by the controllers.
// Each controller depends only on the methods it calls; *services.Songbook
// satisfies all of them.

// SongStore provides song search and detail lookups.
type SongStore interface {
	Search(query string, filters catalog.SearchFilters) services.SearchResult
	SongDetail(id string) (*services.SongDetail, bool)
	Song(id string) (entities.Song, bool)
	Pages(songID string) []services.PageRef
}

// FavouritesStore toggles and lists favourite songs.
type FavouritesStore interface {
	SetFavorite(songID string, favorite bool) (bool, error)
	FavouritesPage(limit, offset int) ([]entities.Song, int, error)
}

// CommentStore reads and writes song comments.
type CommentStore interface {
	Song(id string) (entities.Song, bool)
	Comment(songID string) string
	SetComment(songID, text string) error
	CommentHistory(songID string) ([]entities.UserComment, error)
}

// BookStore provides book variants and their comments.
type BookStore interface {
	SearchBooks(query string) ([]entities.Book, error)
	Book(id string) (entities.Book, bool)
	BookComments(bookID string) ([]entities.UserComment, error)
	AddBookComment(bookID, text string) (*entities.UserComment, error)
}

// AdminStore reloads the catalog and reports on the last import.
type AdminStore interface {
	Reload(ctx context.Context) (string, error)
	LastDiagnostics() string
	Stats() (songs, books, pages int)
}

// Pinger checks a backing connection.
type Pinger interface {
	Ping() error
}

var (
	_ SongStore       = (*services.Songbook)(nil)
	_ FavouritesStore = (*services.Songbook)(nil)
	_ CommentStore    = (*services.Songbook)(nil)
	_ BookStore       = (*services.Songbook)(nil)
	_ AdminStore      = (*services.Songbook)(nil)
)
