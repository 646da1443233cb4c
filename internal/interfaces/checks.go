package interfaces

// Compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/database"
	"github.com/mrlokans/songbook/internal/database/books"
	"github.com/mrlokans/songbook/internal/database/favourites"
	"github.com/mrlokans/songbook/internal/database/settings"
	"github.com/mrlokans/songbook/internal/database/songs"
	"github.com/mrlokans/songbook/internal/http"
	"github.com/mrlokans/songbook/internal/lyrics"
	"github.com/mrlokans/songbook/internal/scheduler"
	"github.com/mrlokans/songbook/internal/services"
	"github.com/mrlokans/songbook/internal/settingsstore"
)

// =============================================================================
// Overlay Storage
// =============================================================================

var _ settingsstore.KeyValue = (*settings.Repository)(nil)
var _ settingsstore.KeyValue = (*settingsstore.Memory)(nil)
var _ services.OverlayStore = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Relational Mirror
// =============================================================================

var _ services.SongStore = (*songs.Repository)(nil)
var _ services.FavouriteStore = (*favourites.Repository)(nil)
var _ services.BookSearcher = (*books.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Catalog Sources
// =============================================================================

var _ services.Source = services.FileSource{}
var _ services.Source = services.StaticSource{}
var _ catalog.LyricsLookup = (*lyrics.Index)(nil)

// =============================================================================
// Reload Triggers
// =============================================================================

var _ scheduler.Reloader = (*services.Songbook)(nil)
var _ http.CatalogStatus = (*services.Songbook)(nil)
