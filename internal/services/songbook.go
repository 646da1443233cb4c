package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/importers"
	"github.com/mrlokans/songbook/internal/lyrics"
	"github.com/mrlokans/songbook/internal/utils"
)

// ErrStoreDisabled is returned by operations that need the relational store
// when it is not configured.
var ErrStoreDisabled = errors.New("database store is disabled")

// ErrNotLoaded is returned before the first successful Load.
var ErrNotLoaded = errors.New("songbook is not loaded")

// Options wires the collaborators of a Songbook. Only Source is required.
type Options struct {
	Source     Source
	Lyrics     func() (*lyrics.Index, error)
	Overlays   OverlayStore
	Songs      SongStore
	Favourites FavouriteStore
	Books      BookSearcher

	MinQueryLength  int
	SuggestionLimit int
}

// Songbook owns the catalog and keeps the overlay stores in sync with it.
type Songbook struct {
	opts Options

	// reloadMu serializes Load and Reload; only one import is in flight.
	reloadMu sync.Mutex

	// overlayMu serializes overlay edits with their persistence so the
	// stored blobs are written in the same order the edits were applied.
	overlayMu sync.Mutex

	mu          sync.RWMutex
	catalog     *catalog.Catalog
	lyrics      *lyrics.Index
	diagnostics string
}

// SearchResult is the outcome of a search. Suggestions are only filled when
// Songs is empty and the query was not.
type SearchResult struct {
	Query       string          `json:"query"`
	Songs       []entities.Song `json:"songs"`
	Suggestions []entities.Song `json:"suggestions,omitempty"`
}

// PageRef is a page mapping resolved for display.
type PageRef struct {
	BookID    string          `json:"book_id"`
	BookTitle string          `json:"book_title"`
	Page      int             `json:"page"`
	Notation  bool            `json:"notation"`
	Color     utils.BookColor `json:"color"`
}

// SongDetail is everything known about one song.
type SongDetail struct {
	Song     entities.Song `json:"song"`
	Pages    []PageRef     `json:"pages"`
	Comment  string        `json:"comment"`
	Lyrics   string        `json:"lyrics,omitempty"`
	Chords   string        `json:"chords,omitempty"`
	Chordset []string      `json:"chordset"`
}

func NewSongbook(opts Options) *Songbook {
	return &Songbook{opts: opts}
}

// Load imports the songbook and applies the stored overlays.
func (s *Songbook) Load(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	result, populated, err := s.importSource(ctx)
	if err != nil {
		return err
	}

	var opts []catalog.Option
	if s.opts.Overlays != nil {
		favorites, err := s.opts.Overlays.LoadFavorites()
		if err != nil {
			log.Printf("Songbook: failed to load favorites: %v", err)
		}
		comments, err := s.opts.Overlays.LoadComments()
		if err != nil {
			log.Printf("Songbook: failed to load comments: %v", err)
		}
		opts = append(opts, catalog.WithFavorites(favorites), catalog.WithComments(comments))
	}

	idx := s.loadLyrics()
	opts = append(opts, catalog.WithLyrics(idx))
	cat := catalog.New(result, opts...)
	if populated {
		s.mirrorStore(result, idx, cat.Favorites())
	}

	s.mu.Lock()
	s.catalog = cat
	s.lyrics = idx
	s.diagnostics = result.Diagnostics
	s.mu.Unlock()

	songs, books, pages := cat.Stats()
	log.Printf("Songbook: loaded %d songs, %d books, %d page mappings from %s",
		songs, books, pages, s.opts.Source.Describe())
	return nil
}

// Reload re-reads the source and replaces the catalog contents in one step.
// Favorites and comments are kept. It returns the import diagnostics.
func (s *Songbook) Reload(ctx context.Context) (string, error) {
	s.mu.RLock()
	loaded := s.catalog != nil
	s.mu.RUnlock()
	if !loaded {
		if err := s.Load(ctx); err != nil {
			return "", err
		}
		return s.LastDiagnostics(), nil
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	result, populated, err := s.importSource(ctx)
	if err != nil {
		return "", err
	}
	idx := s.loadLyrics()
	if populated {
		cat, _ := s.current()
		s.mirrorStore(result, idx, cat.Favorites())
	}

	s.mu.Lock()
	s.catalog.Replace(result)
	s.catalog.SetLyrics(idx)
	s.lyrics = idx
	s.diagnostics = result.Diagnostics
	s.mu.Unlock()

	log.Printf("Catalog reload: %d songs, %d books, %d page mappings",
		len(result.Songs), len(result.Books), len(result.Pages))
	return result.Diagnostics, nil
}

// importSource reads and imports the CSV. A missing CSV falls back to the
// relational store when one is configured. populated reports whether the
// import was just written into an empty store.
func (s *Songbook) importSource(ctx context.Context) (result importers.Result, populated bool, err error) {
	raw, err := s.opts.Source.Read(ctx)
	if errors.Is(err, os.ErrNotExist) && s.opts.Songs != nil {
		log.Printf("Songbook: %s not found, loading from database", s.opts.Source.Describe())
		result, dbErr := s.opts.Songs.LoadSnapshot()
		if dbErr != nil {
			return importers.Result{}, false, fmt.Errorf("failed to load songbook from database: %w", dbErr)
		}
		return result, false, nil
	}
	if err != nil {
		return importers.Result{}, false, err
	}

	result = importers.Import(raw)
	if result.Empty() {
		log.Printf("CSV import: no songs imported from %s", s.opts.Source.Describe())
	}

	if s.opts.Songs != nil {
		populated, err = s.opts.Songs.PopulateFromImportIfEmpty(result)
		if err != nil {
			log.Printf("Songbook: failed to populate database: %v", err)
			populated = false
		}
	}
	return result, populated, nil
}

// mirrorStore copies what only lives in memory into a freshly populated
// store: the lyrics of every imported song and the favorites overlay.
// Failures are logged; the catalog stays authoritative.
func (s *Songbook) mirrorStore(result importers.Result, idx *lyrics.Index, favorites []string) {
	stored := 0
	for _, song := range result.Songs {
		rec, ok := idx.Find(song.Title, song.Author)
		if !ok || rec.Lyrics == "" {
			continue
		}
		if err := s.opts.Songs.SaveLyrics(song.ID, rec.Lyrics); err != nil {
			log.Printf("Songbook: failed to store lyrics for %s: %v", song.ID, err)
			continue
		}
		stored++
	}
	if stored > 0 {
		log.Printf("Database: stored lyrics for %d songs", stored)
	}

	if s.opts.Favourites == nil {
		return
	}
	for _, id := range favorites {
		if err := s.opts.Favourites.SetSongFavourite(id, true); err != nil {
			log.Printf("Songbook: failed to mirror favourite %s: %v", id, err)
		}
	}
}

func (s *Songbook) loadLyrics() *lyrics.Index {
	if s.opts.Lyrics == nil {
		return lyrics.NewIndex(nil)
	}
	idx, err := s.opts.Lyrics()
	if err != nil {
		log.Printf("Lyrics: %v, lyrics search disabled", err)
		return lyrics.NewIndex(nil)
	}
	return idx
}

func (s *Songbook) current() (*catalog.Catalog, *lyrics.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.lyrics
}

// Loaded reports whether a catalog is available.
func (s *Songbook) Loaded() bool {
	cat, _ := s.current()
	return cat != nil
}

// LastDiagnostics returns the report of the most recent import.
func (s *Songbook) LastDiagnostics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diagnostics
}

// Search filters the catalog. Queries shorter than the configured minimum
// length are treated as empty.
func (s *Songbook) Search(query string, filters catalog.SearchFilters) SearchResult {
	cat, _ := s.current()
	if cat == nil {
		return SearchResult{Query: query, Songs: []entities.Song{}}
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.opts.MinQueryLength {
		query = ""
	}

	result := SearchResult{
		Query: query,
		Songs: cat.SearchSongs(query, filters),
	}
	if len(result.Songs) == 0 && query != "" && s.opts.SuggestionLimit > 0 {
		result.Suggestions = cat.Suggest(query, s.opts.SuggestionLimit)
	}
	return result
}

// Songs returns every song in import order.
func (s *Songbook) Songs() []entities.Song {
	cat, _ := s.current()
	if cat == nil {
		return []entities.Song{}
	}
	return cat.AllSongs()
}

// Song returns one song.
func (s *Songbook) Song(id string) (entities.Song, bool) {
	cat, _ := s.current()
	if cat == nil {
		return entities.Song{}, false
	}
	return cat.SongByID(id)
}

// Pages returns the page references of a song, plain pages before notation
// pages, each group in import order.
func (s *Songbook) Pages(songID string) []PageRef {
	cat, _ := s.current()
	if cat == nil {
		return []PageRef{}
	}

	mappings := cat.PagesForSong(songID)
	refs := make([]PageRef, 0, len(mappings))
	for _, m := range mappings {
		ref := PageRef{
			BookID:   m.BookID,
			Notation: m.IsNotation(),
			Color:    utils.BookColorFor(m.BookID),
		}
		if book, ok := cat.BookByID(m.BookID); ok {
			ref.BookTitle = book.Title
		}
		switch {
		case m.Page != nil:
			ref.Page = *m.Page
		case m.PageNotes != nil:
			ref.Page = *m.PageNotes
		}
		refs = append(refs, ref)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return !refs[i].Notation && refs[j].Notation
	})
	return refs
}

// SongDetail assembles the detail view of a song.
func (s *Songbook) SongDetail(id string) (*SongDetail, bool) {
	cat, idx := s.current()
	if cat == nil {
		return nil, false
	}
	song, ok := cat.SongByID(id)
	if !ok {
		return nil, false
	}

	detail := &SongDetail{
		Song:     song,
		Pages:    s.Pages(id),
		Comment:  cat.Comment(id),
		Lyrics:   song.Lyrics,
		Chordset: []string{},
	}
	if rec, ok := idx.Find(song.Title, song.Author); ok {
		if detail.Lyrics == "" {
			detail.Lyrics = rec.Lyrics
		}
		detail.Chords = rec.Chords
		detail.Chordset = utils.ExtractUniqueChords(rec.Chords)
	} else if detail.Lyrics == "" && s.opts.Songs != nil {
		if stored, err := s.opts.Songs.GetLyrics(id); err == nil {
			detail.Lyrics = stored.Text
		}
	}
	return detail, true
}

// Books returns every book variant.
func (s *Songbook) Books() []entities.Book {
	cat, _ := s.current()
	if cat == nil {
		return []entities.Book{}
	}
	return cat.AllBooks()
}

// SearchBooks returns the book variants whose title contains query.
// The relational store answers when configured, the catalog otherwise.
func (s *Songbook) SearchBooks(query string) ([]entities.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Books(), nil
	}
	if s.opts.Books != nil {
		found, err := s.opts.Books.SearchBooks(query)
		if err != nil {
			return nil, fmt.Errorf("failed to search books: %w", err)
		}
		return found, nil
	}

	cat, _ := s.current()
	if cat == nil {
		return []entities.Book{}, nil
	}
	return cat.SearchBooks(query), nil
}

// Book returns one book variant.
func (s *Songbook) Book(id string) (entities.Book, bool) {
	cat, _ := s.current()
	if cat == nil {
		return entities.Book{}, false
	}
	return cat.BookByID(id)
}

// SetFavorite marks or unmarks a song and persists the favorites overlay.
// It reports false for unknown songs, which are left untouched.
func (s *Songbook) SetFavorite(songID string, favorite bool) (bool, error) {
	cat, _ := s.current()
	if cat == nil {
		return false, ErrNotLoaded
	}

	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()

	if !cat.SetFavorite(songID, favorite) {
		return false, nil
	}

	if s.opts.Overlays != nil {
		if err := s.opts.Overlays.SaveFavorites(cat.Favorites()); err != nil {
			return true, fmt.Errorf("failed to save favorites: %w", err)
		}
	}
	if s.opts.Favourites != nil {
		if err := s.opts.Favourites.SetSongFavourite(songID, favorite); err != nil {
			log.Printf("Songbook: failed to mirror favourite %s: %v", songID, err)
		}
	}
	return true, nil
}

// Favourites returns the favorite songs in import order.
func (s *Songbook) Favourites() []entities.Song {
	return s.Search("", catalog.SearchFilters{OnlyFavorites: true}).Songs
}

// FavouritesPage returns one page of favorite songs and the total number of
// favorites. A limit of 0 returns everything from offset on. The relational
// store answers when configured, ordered by title; otherwise the catalog
// answers in import order.
func (s *Songbook) FavouritesPage(limit, offset int) ([]entities.Song, int, error) {
	if s.opts.Favourites != nil {
		songs, total, err := s.opts.Favourites.GetFavouriteSongs(limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list favourites: %w", err)
		}
		return songs, int(total), nil
	}

	all := s.Favourites()
	total := len(all)
	if offset >= total {
		return []entities.Song{}, total, nil
	}
	page := all[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}
	return page, total, nil
}

// SetComment stores the comment of a song and persists the comments overlay.
// An empty comment clears it.
func (s *Songbook) SetComment(songID, text string) error {
	cat, _ := s.current()
	if cat == nil {
		return ErrNotLoaded
	}

	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()

	cat.SetComment(songID, text)

	if s.opts.Overlays != nil {
		if err := s.opts.Overlays.SaveComments(cat.Comments()); err != nil {
			return fmt.Errorf("failed to save comments: %w", err)
		}
	}
	if s.opts.Songs != nil && text != "" {
		if _, err := s.opts.Songs.AddComment(songID, text); err != nil {
			log.Printf("Songbook: failed to mirror comment for %s: %v", songID, err)
		}
	}
	return nil
}

// Comment returns the comment of a song, "" when there is none.
func (s *Songbook) Comment(songID string) string {
	cat, _ := s.current()
	if cat == nil {
		return ""
	}
	return cat.Comment(songID)
}

// CommentHistory returns every stored comment of a song, newest first.
func (s *Songbook) CommentHistory(songID string) ([]entities.UserComment, error) {
	if s.opts.Songs == nil {
		return nil, ErrStoreDisabled
	}
	return s.opts.Songs.CommentsForSong(songID)
}

// AddBookComment attaches a comment to a book variant.
func (s *Songbook) AddBookComment(bookID, text string) (*entities.UserComment, error) {
	if s.opts.Songs == nil {
		return nil, ErrStoreDisabled
	}
	return s.opts.Songs.AddBookComment(bookID, text)
}

// BookComments returns the comments of a book variant, newest first.
func (s *Songbook) BookComments(bookID string) ([]entities.UserComment, error) {
	if s.opts.Songs == nil {
		return nil, ErrStoreDisabled
	}
	return s.opts.Songs.CommentsForBook(bookID)
}

// Stats returns the sizes of the loaded collections.
func (s *Songbook) Stats() (songs, books, pages int) {
	cat, _ := s.current()
	if cat == nil {
		return 0, 0, 0
	}
	return cat.Stats()
}
