package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/database"
	"github.com/mrlokans/songbook/internal/database/books"
	"github.com/mrlokans/songbook/internal/database/favourites"
	"github.com/mrlokans/songbook/internal/database/settings"
	"github.com/mrlokans/songbook/internal/database/songs"
	"github.com/mrlokans/songbook/internal/importers"
	"github.com/mrlokans/songbook/internal/lyrics"
	"github.com/mrlokans/songbook/internal/settingsstore"
)

const testCSV = `Seite (Noten),Seite,Buch,Künstler,Titel
112,98,1,Reinhard Mey,Über den Wolken
,54,1,John Denver,Country Roads
15,12,W,Traditional,Stille Nacht
`

var (
	wolkenID  = importers.SongID("Über den Wolken", "1")
	countryID = importers.SongID("Country Roads", "1")
)

func staticSource(text string) Source {
	return StaticSource{Name: "test", Text: func() (string, error) { return text, nil }}
}

func testLyrics() (*lyrics.Index, error) {
	return lyrics.NewIndex([]lyrics.Record{
		{Title: "Über den Wolken", Artist: "Reinhard Mey", Lyrics: "muss die Freiheit wohl grenzenlos sein", Chords: "G D Em C G D G"},
	}), nil
}

func newTestSongbook(t *testing.T, opts Options) *Songbook {
	t.Helper()
	if opts.Source == nil {
		opts.Source = staticSource(testCSV)
	}
	sb := NewSongbook(opts)
	require.NoError(t, sb.Load(context.Background()))
	return sb
}

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_services_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestSongbook_Load(t *testing.T) {
	sb := newTestSongbook(t, Options{})

	assert.True(t, sb.Loaded())
	songs, books, pages := sb.Stats()
	assert.Equal(t, 3, songs)
	assert.Equal(t, 4, books)
	assert.Equal(t, 5, pages)
	assert.Contains(t, sb.LastDiagnostics(), "Imported 3 songs")
}

func TestSongbook_NotLoaded(t *testing.T) {
	sb := NewSongbook(Options{Source: staticSource(testCSV)})

	assert.False(t, sb.Loaded())
	assert.Empty(t, sb.Songs())
	assert.Empty(t, sb.Search("x", catalog.SearchFilters{MatchTitle: true}).Songs)

	_, err := sb.SetFavorite(wolkenID, true)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSongbook_LoadSourceError(t *testing.T) {
	sb := NewSongbook(Options{Source: FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}})

	err := sb.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, sb.Loaded())
}

func TestSongbook_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sb := NewSongbook(Options{Source: staticSource(testCSV)})
	assert.ErrorIs(t, sb.Load(ctx), context.Canceled)
}

func TestSongbook_Search(t *testing.T) {
	sb := newTestSongbook(t, Options{Lyrics: testLyrics, SuggestionLimit: 3})

	t.Run("title", func(t *testing.T) {
		res := sb.Search("wolken", catalog.SearchFilters{MatchTitle: true})
		require.Len(t, res.Songs, 1)
		assert.Equal(t, wolkenID, res.Songs[0].ID)
		assert.Empty(t, res.Suggestions)
	})

	t.Run("lyrics", func(t *testing.T) {
		res := sb.Search("freiheit", catalog.SearchFilters{MatchLyrics: true})
		require.Len(t, res.Songs, 1)
		assert.Equal(t, wolkenID, res.Songs[0].ID)
	})

	t.Run("suggestions when nothing matches", func(t *testing.T) {
		res := sb.Search("wlkn", catalog.SearchFilters{MatchTitle: true})
		assert.Empty(t, res.Songs)
		require.NotEmpty(t, res.Suggestions)
		assert.Equal(t, wolkenID, res.Suggestions[0].ID)
	})

	t.Run("query is trimmed", func(t *testing.T) {
		res := sb.Search("  roads ", catalog.SearchFilters{MatchTitle: true})
		assert.Equal(t, "roads", res.Query)
		assert.Len(t, res.Songs, 1)
	})
}

func TestSongbook_MinQueryLength(t *testing.T) {
	sb := newTestSongbook(t, Options{MinQueryLength: 3})

	res := sb.Search("zz", catalog.SearchFilters{MatchTitle: true})
	assert.Equal(t, "", res.Query)
	assert.Len(t, res.Songs, 3, "short query is treated as empty")

	res = sb.Search("zzz", catalog.SearchFilters{MatchTitle: true})
	assert.Empty(t, res.Songs)
}

func TestSongbook_SongDetail(t *testing.T) {
	sb := newTestSongbook(t, Options{Lyrics: testLyrics})

	detail, ok := sb.SongDetail(wolkenID)
	require.True(t, ok)
	assert.Equal(t, "Über den Wolken", detail.Song.Title)
	assert.Contains(t, detail.Lyrics, "Freiheit")
	assert.Equal(t, []string{"C", "D", "Em", "G"}, detail.Chordset)

	require.Len(t, detail.Pages, 2)
	assert.False(t, detail.Pages[0].Notation)
	assert.Equal(t, 98, detail.Pages[0].Page)
	assert.Equal(t, "Buch 1", detail.Pages[0].BookTitle)
	assert.Equal(t, "grün", detail.Pages[0].Color.Label)
	assert.True(t, detail.Pages[1].Notation)
	assert.Equal(t, 112, detail.Pages[1].Page)

	detail, ok = sb.SongDetail(countryID)
	require.True(t, ok)
	assert.Empty(t, detail.Lyrics)
	assert.Empty(t, detail.Chordset)

	_, ok = sb.SongDetail("missing")
	assert.False(t, ok)
}

func TestSongbook_PagesPlainBeforeNotation(t *testing.T) {
	// Notation column first in the header, page rows still group plain first.
	sb := newTestSongbook(t, Options{Source: staticSource("Seite (Noten),Seite,Buch,Künstler,Titel\n7,3,2,A,Song\n")})

	pages := sb.Pages(importers.SongID("Song", "2"))
	require.Len(t, pages, 2)
	assert.Equal(t, "book_2", pages[0].BookID)
	assert.Equal(t, "book_2_notes", pages[1].BookID)
	assert.Equal(t, "rot", pages[1].Color.Label)
}

func TestSongbook_FavoritesPersist(t *testing.T) {
	kv := settingsstore.NewMemory()
	overlays := settingsstore.New(kv)

	sb := newTestSongbook(t, Options{Overlays: overlays})

	ok, err := sb.SetFavorite(countryID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sb.SetFavorite("unknown_1", true)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := overlays.LoadFavorites()
	require.NoError(t, err)
	assert.Equal(t, []string{countryID}, stored)

	favs := sb.Favourites()
	require.Len(t, favs, 1)
	assert.True(t, favs[0].Favorite)

	// A fresh songbook on the same store sees the favorite.
	again := newTestSongbook(t, Options{Overlays: overlays})
	song, ok := again.Song(countryID)
	require.True(t, ok)
	assert.True(t, song.Favorite)
}

// blockingOverlays holds the first SaveFavorites call until release is
// closed and remembers the last saved id list.
type blockingOverlays struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once

	mu    sync.Mutex
	saved []string
}

func newBlockingOverlays() *blockingOverlays {
	return &blockingOverlays{entered: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingOverlays) LoadFavorites() ([]string, error)          { return nil, nil }
func (b *blockingOverlays) LoadComments() (map[string]string, error) { return nil, nil }
func (b *blockingOverlays) SaveComments(map[string]string) error      { return nil }

func (b *blockingOverlays) SaveFavorites(ids []string) error {
	first := false
	b.once.Do(func() {
		first = true
		close(b.entered)
	})
	if first {
		<-b.release
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = append([]string(nil), ids...)
	return nil
}

func (b *blockingOverlays) lastSaved() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saved
}

func TestSongbook_ConcurrentFavoritesKeepLastState(t *testing.T) {
	overlays := newBlockingOverlays()
	sb := newTestSongbook(t, Options{Overlays: overlays})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := sb.SetFavorite(wolkenID, true)
		assert.NoError(t, err)
	}()

	<-overlays.entered
	go func() {
		defer wg.Done()
		_, err := sb.SetFavorite(countryID, true)
		assert.NoError(t, err)
	}()

	// Give the second toggle time to race the blocked save.
	time.Sleep(50 * time.Millisecond)
	close(overlays.release)
	wg.Wait()

	saved := overlays.lastSaved()
	assert.ElementsMatch(t, []string{wolkenID, countryID}, saved)

	ids := []string{}
	for _, song := range sb.Favourites() {
		ids = append(ids, song.ID)
	}
	assert.ElementsMatch(t, ids, saved, "stored overlay matches the catalog")
}

func TestSongbook_FavouritesPage(t *testing.T) {
	sb := newTestSongbook(t, Options{})
	thirdID := importers.SongID("Stille Nacht", "W")
	for _, id := range []string{wolkenID, countryID, thirdID} {
		_, err := sb.SetFavorite(id, true)
		require.NoError(t, err)
	}

	page, total, err := sb.FavouritesPage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 3)

	page, total, err = sb.FavouritesPage(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, countryID, page[0].ID)

	page, total, err = sb.FavouritesPage(10, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestSongbook_SearchBooks(t *testing.T) {
	sb := newTestSongbook(t, Options{})

	found, err := sb.SearchBooks("weihnacht")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "book_w", found[0].ID)

	all, err := sb.SearchBooks("  ")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSongbook_CommentsPersist(t *testing.T) {
	overlays := settingsstore.New(settingsstore.NewMemory())
	sb := newTestSongbook(t, Options{Overlays: overlays})

	require.NoError(t, sb.SetComment(wolkenID, "Capo 2"))
	assert.Equal(t, "Capo 2", sb.Comment(wolkenID))

	again := newTestSongbook(t, Options{Overlays: overlays})
	assert.Equal(t, "Capo 2", again.Comment(wolkenID))

	require.NoError(t, again.SetComment(wolkenID, ""))
	stored, err := overlays.LoadComments()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{wolkenID: ""}, stored)
}

func TestSongbook_EmptyCommentIsNotMirrored(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	sb := newTestSongbook(t, Options{Songs: songs.NewRepository(db.DB)})

	require.NoError(t, sb.SetComment(wolkenID, "Capo 2"))
	require.NoError(t, sb.SetComment(wolkenID, ""))
	assert.Equal(t, "", sb.Comment(wolkenID))

	history, err := sb.CommentHistory(wolkenID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Capo 2", history[0].Comment)
}

func TestSongbook_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))

	sb := newTestSongbook(t, Options{Source: FileSource{Path: path}})
	_, err := sb.SetFavorite(countryID, true)
	require.NoError(t, err)

	updated := testCSV + "20,18,2,Die Ärzte,Schrei nach Liebe\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	diagnostics, err := sb.Reload(context.Background())
	require.NoError(t, err)
	assert.Contains(t, diagnostics, "Imported 4 songs")
	assert.Equal(t, diagnostics, sb.LastDiagnostics())

	assert.Len(t, sb.Songs(), 4)
	song, ok := sb.Song(countryID)
	require.True(t, ok)
	assert.True(t, song.Favorite, "favorites survive a reload")
}

func TestSongbook_ReloadBeforeLoad(t *testing.T) {
	sb := NewSongbook(Options{Source: staticSource(testCSV)})

	diagnostics, err := sb.Reload(context.Background())
	require.NoError(t, err)
	assert.Contains(t, diagnostics, "Imported 3 songs")
	assert.True(t, sb.Loaded())
}

func TestSongbook_ReloadErrorKeepsCatalog(t *testing.T) {
	calls := 0
	src := StaticSource{Name: "flaky", Text: func() (string, error) {
		calls++
		if calls > 1 {
			return "", errors.New("source unavailable")
		}
		return testCSV, nil
	}}
	sb := newTestSongbook(t, Options{Source: src})

	_, err := sb.Reload(context.Background())
	assert.Error(t, err)
	assert.Len(t, sb.Songs(), 3)
}

func TestSongbook_WithDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	songsRepo := songs.NewRepository(db.DB)
	favRepo := favourites.NewRepository(db.DB)
	overlays := settingsstore.New(settings.NewRepository(db.DB))

	require.NoError(t, overlays.SaveFavorites([]string{countryID}))

	sb := newTestSongbook(t, Options{
		Lyrics:     testLyrics,
		Overlays:   overlays,
		Songs:      songsRepo,
		Favourites: favRepo,
		Books:      books.NewRepository(db.DB),
	})

	count, err := songsRepo.CountSongs()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "empty store is populated on load")

	stored, err := songsRepo.GetLyrics(wolkenID)
	require.NoError(t, err)
	assert.Contains(t, stored.Text, "Freiheit")
	_, err = songsRepo.GetLyrics(countryID)
	assert.Error(t, err, "songs without lyrics are not stored")

	page, total, err := sb.FavouritesPage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "stored favorites are mirrored on populate")
	require.Len(t, page, 1)
	assert.Equal(t, countryID, page[0].ID)

	_, err = sb.SetFavorite(wolkenID, true)
	require.NoError(t, err)
	var song entities.Song
	require.NoError(t, db.DB.First(&song, "id = ?", wolkenID).Error)
	assert.True(t, song.Favorite)

	page, total, err = sb.FavouritesPage(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Country Roads", page[0].Title, "store pages are ordered by title")

	found, err := sb.SearchBooks("Noten")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, sb.SetComment(wolkenID, "Capo 2"))
	history, err := sb.CommentHistory(wolkenID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Capo 2", history[0].Comment)

	_, err = sb.AddBookComment("book_w", "Only in December")
	require.NoError(t, err)
	bookComments, err := sb.BookComments("book_w")
	require.NoError(t, err)
	assert.Len(t, bookComments, 1)
}

func TestSongbook_FallsBackToDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	songsRepo := songs.NewRepository(db.DB)
	_, err := songsRepo.PopulateFromImportIfEmpty(importers.Import(testCSV))
	require.NoError(t, err)

	missing := FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	sb := newTestSongbook(t, Options{Source: missing, Songs: songsRepo})

	assert.Len(t, sb.Songs(), 3)
	assert.Contains(t, sb.LastDiagnostics(), "from database")
}

func TestSongbook_DetailUsesStoredLyrics(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	songsRepo := songs.NewRepository(db.DB)
	newTestSongbook(t, Options{Lyrics: testLyrics, Songs: songsRepo})

	missing := FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	sb := newTestSongbook(t, Options{Source: missing, Songs: songsRepo})

	detail, ok := sb.SongDetail(wolkenID)
	require.True(t, ok)
	assert.Contains(t, detail.Lyrics, "Freiheit")
	assert.Empty(t, detail.Chords)

	detail, ok = sb.SongDetail(countryID)
	require.True(t, ok)
	assert.Empty(t, detail.Lyrics)
}

func TestSongbook_StoreDisabled(t *testing.T) {
	sb := newTestSongbook(t, Options{})

	_, err := sb.BookComments("book_1")
	assert.ErrorIs(t, err, ErrStoreDisabled)
	_, err = sb.AddBookComment("book_1", "x")
	assert.ErrorIs(t, err, ErrStoreDisabled)
	_, err = sb.CommentHistory(wolkenID)
	assert.ErrorIs(t, err, ErrStoreDisabled)
}

func TestLyricsLoader(t *testing.T) {
	fallback := func() (*lyrics.Index, error) { return testLyrics() }

	t.Run("missing file uses fallback", func(t *testing.T) {
		idx, err := LyricsLoader(filepath.Join(t.TempDir(), "absent.json"), fallback)()
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Len())
	})

	t.Run("no fallback yields empty index", func(t *testing.T) {
		idx, err := LyricsLoader("", nil)()
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("broken file uses fallback", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("[{"), 0644))

		idx, err := LyricsLoader(path, fallback)()
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Len())
	})
}
