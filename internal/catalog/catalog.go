// Package catalog holds the imported songbook together with the user's
// favorites and comments and answers search queries against it.
//
// A Catalog is safe for concurrent use. Replace swaps the imported
// collections in one step, so readers never observe a half-applied import.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/importers"
)

// SearchFilters selects the fields a query is matched against.
type SearchFilters struct {
	MatchTitle    bool `json:"match_title"`
	MatchAuthor   bool `json:"match_author"`
	MatchLyrics   bool `json:"match_lyrics"`
	OnlyFavorites bool `json:"only_favorites"`
}

// LyricsLookup resolves lyrics by song title and artist. The CSV import
// leaves Song.Lyrics empty, so lyrics search goes through this.
type LyricsLookup interface {
	Lyrics(title, artist string) (string, bool)
}

type Catalog struct {
	mu sync.RWMutex

	songs     []entities.Song
	songIndex map[string]int
	books     []entities.Book
	bookIndex map[string]int
	pages     []entities.BookSongPage

	favorites *Overlay[struct{}]
	comments  *Overlay[string]
	lyrics    LyricsLookup
}

// Option configures a Catalog at construction.
type Option func(*Catalog)

// WithFavorites seeds the favorites overlay. Ids unknown to the import are
// kept so they apply again after a later re-import.
func WithFavorites(ids []string) Option {
	return func(c *Catalog) {
		for _, id := range ids {
			if id != "" {
				c.favorites.Upsert(id, struct{}{})
			}
		}
	}
}

// WithComments seeds the comments overlay.
func WithComments(comments map[string]string) Option {
	return func(c *Catalog) {
		for id, text := range comments {
			c.comments.Upsert(id, text)
		}
	}
}

// WithLyrics sets the lookup used by lyrics search.
func WithLyrics(lookup LyricsLookup) Option {
	return func(c *Catalog) {
		c.lyrics = lookup
	}
}

// New builds a catalog from an import result.
func New(result importers.Result, opts ...Option) *Catalog {
	c := &Catalog{
		favorites: NewOverlay[struct{}](),
		comments:  NewOverlay[string](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(result)
	return c
}

// FromCSV imports raw CSV text and builds a catalog from it.
func FromCSV(raw string, opts ...Option) (*Catalog, importers.Result) {
	result := importers.Import(raw)
	return New(result, opts...), result
}

// Replace swaps in the collections of a new import. Overlays are kept and
// favorite flags are re-applied by id.
func (c *Catalog) Replace(result importers.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(result)
}

// SetLyrics swaps the lyrics lookup.
func (c *Catalog) SetLyrics(lookup LyricsLookup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lyrics = lookup
}

// load must be called with c.mu held for writing (or before c is shared).
func (c *Catalog) load(result importers.Result) {
	songs := make([]entities.Song, len(result.Songs))
	copy(songs, result.Songs)
	songIndex := make(map[string]int, len(songs))
	for i := range songs {
		songs[i].Favorite = c.favorites.Has(songs[i].ID)
		// Later duplicates of a colliding id are reachable by list only.
		if _, exists := songIndex[songs[i].ID]; !exists {
			songIndex[songs[i].ID] = i
		}
	}

	books := make([]entities.Book, len(result.Books))
	copy(books, result.Books)
	bookIndex := make(map[string]int, len(books))
	for i, b := range books {
		bookIndex[b.ID] = i
	}

	pages := make([]entities.BookSongPage, len(result.Pages))
	copy(pages, result.Pages)

	c.songs, c.songIndex = songs, songIndex
	c.books, c.bookIndex = books, bookIndex
	c.pages = pages
}

// AllSongs returns every imported song in import order.
func (c *Catalog) AllSongs() []entities.Song {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entities.Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// SongByID returns the song with the given id.
func (c *Catalog) SongByID(id string) (entities.Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.songIndex[id]
	if !ok {
		return entities.Song{}, false
	}
	return c.songs[i], true
}

// SearchSongs returns the songs matching query under filters, in import order.
//
// A song matches when the query is empty or at least one enabled field
// contains it (case-insensitive). OnlyFavorites additionally restricts the
// result to favorites. With no field enabled a non-empty query matches nothing.
func (c *Catalog) SearchSongs(query string, filters SearchFilters) []entities.Song {
	c.mu.RLock()
	defer c.mu.RUnlock()

	folded := fold(query)
	out := make([]entities.Song, 0)
	for _, song := range c.songs {
		if filters.OnlyFavorites && !c.favorites.Has(song.ID) {
			continue
		}
		if folded == "" || c.matches(song, folded, filters) {
			out = append(out, song)
		}
	}
	return out
}

func (c *Catalog) matches(song entities.Song, folded string, filters SearchFilters) bool {
	if filters.MatchTitle && strings.Contains(fold(song.Title), folded) {
		return true
	}
	if filters.MatchAuthor && strings.Contains(fold(song.Author), folded) {
		return true
	}
	if filters.MatchLyrics && c.lyrics != nil {
		if text, ok := c.lyrics.Lyrics(song.Title, song.Author); ok && strings.Contains(fold(text), folded) {
			return true
		}
	}
	return false
}

// Suggest ranks song titles by fuzzy similarity to query, closest first.
// It is meant for "did you mean" hints when SearchSongs finds nothing.
func (c *Catalog) Suggest(query string, limit int) []entities.Song {
	if query == "" || limit <= 0 {
		return []entities.Song{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	titles := make([]string, len(c.songs))
	for i, s := range c.songs {
		titles[i] = s.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]entities.Song, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, c.songs[r.OriginalIndex])
	}
	return out
}

// PagesForSong returns the page mappings of a song in import order.
func (c *Catalog) PagesForSong(songID string) []entities.BookSongPage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entities.BookSongPage, 0)
	for _, p := range c.pages {
		if p.SongID == songID {
			out = append(out, p)
		}
	}
	return out
}

// AllBooks returns every book variant in import order.
func (c *Catalog) AllBooks() []entities.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entities.Book, len(c.books))
	copy(out, c.books)
	return out
}

// SearchBooks returns the books whose title contains query
// (case-insensitive), in import order.
func (c *Catalog) SearchBooks(query string) []entities.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	folded := fold(query)
	out := make([]entities.Book, 0)
	for _, b := range c.books {
		if strings.Contains(fold(b.Title), folded) {
			out = append(out, b)
		}
	}
	return out
}

// BookByID returns the book with the given id.
func (c *Catalog) BookByID(id string) (entities.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.bookIndex[id]
	if !ok {
		return entities.Book{}, false
	}
	return c.books[i], true
}

// SetFavorite marks or unmarks a song. Unknown ids are ignored.
// It reports whether the song exists.
func (c *Catalog) SetFavorite(songID string, favorite bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.songIndex[songID]; !ok {
		return false
	}

	if favorite {
		c.favorites.Upsert(songID, struct{}{})
	} else {
		c.favorites.Remove(songID)
	}
	for i := range c.songs {
		if c.songs[i].ID == songID {
			c.songs[i].Favorite = favorite
		}
	}
	return true
}

// IsFavorite reports whether the song id is in the favorites set.
func (c *Catalog) IsFavorite(songID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favorites.Has(songID)
}

// Favorites returns the favorite song ids in ascending order.
func (c *Catalog) Favorites() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favorites.Keys()
}

// SetComment stores the comment text for a song. An empty text is kept as a
// cleared comment, not removed.
func (c *Catalog) SetComment(songID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.comments.Upsert(songID, text)
}

// Comment returns the comment for a song, "" when there is none.
func (c *Catalog) Comment(songID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, _ := c.comments.Get(songID)
	return text
}

// Comments returns a copy of the comments overlay.
func (c *Catalog) Comments() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.comments.Snapshot()
}

// Stats returns the sizes of the imported collections.
func (c *Catalog) Stats() (songs, books, pages int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.songs), len(c.books), len(c.pages)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
