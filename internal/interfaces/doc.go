// Package interfaces documents the extension points of the songbook service
// and holds the compile-time checks that tie them to their implementations.
//
// # Interface Categories
//
// ## Catalog Inputs
//
//   - Source: raw CSV text for an import (internal/services/sources.go)
//   - LyricsLookup: lyrics by title and artist (internal/catalog/catalog.go)
//
// ## Overlay Storage
//
//   - KeyValue: settings table or in-memory map (internal/settingsstore)
//   - OverlayStore: favorites and comments blobs (internal/services/interfaces.go)
//
// ## Relational Mirror
//
//   - SongStore: populate, snapshot and comments (internal/services/interfaces.go)
//   - FavouriteStore: favourite flags (internal/services/interfaces.go)
//
// ## HTTP Stores
//
//   - SongStore, FavouritesStore, CommentStore, BookStore, AdminStore
//     (internal/http/stores.go), all satisfied by services.Songbook
//
// # Adding a New Catalog Source
//
// To load the songbook from somewhere other than a file (e.g. a URL):
//
//  1. Implement Source in internal/services/
//
//     type URLSource struct {
//         URL    string
//         Client *http.Client
//     }
//
//     func (s URLSource) Read(ctx context.Context) (string, error)
//     func (s URLSource) Describe() string
//
//  2. Add a compile-time check to checks.go:
//
//     var _ services.Source = services.URLSource{}
//
//  3. Select it in entrypoint.NewApp
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register new entities in database.Models
//
//  4. Add compile-time check:
//
//     var _ services.SomeStore = (*<domain>.Repository)(nil)
package interfaces
