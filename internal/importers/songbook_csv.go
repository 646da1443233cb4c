package importers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/songbook/internal/entities"
)

const (
	// ChristmasBook is the raw book value of the christmas songs supplement.
	ChristmasBook = "W"

	christmasTitle      = "Weihnachtslieder"
	christmasNotesTitle = "Weihnachtslieder mit Noten"

	previewLength = 120
)

// Result is the outcome of one CSV import.
type Result struct {
	Songs []entities.Song
	Books []entities.Book
	Pages []entities.BookSongPage

	// Diagnostics is a human readable parse report for troubleshooting.
	// Callers must not parse it.
	Diagnostics string
}

// Empty reports whether the import produced no songs.
func (r Result) Empty() bool {
	return len(r.Songs) == 0
}

// BookID returns the id of the plain edition for a raw book value.
func BookID(book string) string {
	return "book_" + slug(book)
}

// NotesBookID returns the id of the edition with notation for a raw book value.
func NotesBookID(book string) string {
	return BookID(book) + "_notes"
}

// SongID derives the song id from its title and the raw book value.
//
// Identical titles in the same book collide, and the plain/notation variant
// is not part of the id. The rule is kept for compatibility with stored
// favorites and comments.
func SongID(title, book string) string {
	return slug(title) + "_" + book
}

// BookTitles returns the display titles of both variants of a raw book value.
func BookTitles(book string) (plain, notes string) {
	if book == ChristmasBook {
		return christmasTitle, christmasNotesTitle
	}
	return "Buch " + book, "Buch " + book + " mit Noten"
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// Import parses the songbook CSV export. It never fails: malformed input
// yields empty collections and an explanation in Result.Diagnostics.
//
// The delimiter is a literal comma, quoted fields are not supported.
func Import(raw string) Result {
	diag := &diagnostics{}
	diag.printf("Input length: %d bytes", len(raw))
	diag.printf("Preview: %q", preview(raw))

	lines := normalizeLines(raw)
	diag.printf("Lines after normalization: %d", len(lines))

	if len(lines) < 2 {
		diag.printf("Insufficient data: need a header and at least one data row")
		return emptyResult(diag)
	}

	header := splitCells(lines[0])
	diag.printf("Header: %s", strings.Join(header, " | "))

	columns := ResolveColumns(header)
	for c := Column(0); c < columnCount; c++ {
		diag.printf("Column %q at index %d", c.Header(), columns.Of(c))
	}

	if missing := columns.Missing(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, c := range missing {
			names = append(names, c.Header())
		}
		diag.printf("Missing required columns: %s", strings.Join(names, ", "))
		log.Printf("CSV import: missing required columns %v", names)
		return emptyResult(diag)
	}

	b := newBuilder()
	for i, line := range lines[1:] {
		cells := splitCells(line)
		if len(cells) < len(header) {
			diag.printf("Skipped line %d: %d cells, header has %d", i+2, len(cells), len(header))
			log.Printf("CSV import: skipping line %d (%d of %d cells)", i+2, len(cells), len(header))
			continue
		}
		b.addRow(cells, columns)
	}

	result := Result{
		Songs: b.songs,
		Books: b.books,
		Pages: b.pages,
	}

	diag.printf("Imported %d songs, %d books, %d page mappings", len(result.Songs), len(result.Books), len(result.Pages))
	if len(result.Songs) > 0 {
		s := result.Songs[0]
		diag.printf("Example song: id=%s title=%q author=%q", s.ID, s.Title, s.Author)
	}
	result.Diagnostics = diag.String()

	return result
}

// builder accumulates the collections of one import run.
type builder struct {
	songs     []entities.Song
	books     []entities.Book
	bookIndex map[string]struct{}
	pages     []entities.BookSongPage
}

func newBuilder() *builder {
	return &builder{
		songs:     make([]entities.Song, 0),
		books:     make([]entities.Book, 0),
		bookIndex: make(map[string]struct{}),
		pages:     make([]entities.BookSongPage, 0),
	}
}

func (b *builder) addRow(cells []string, columns ColumnIndex) {
	book := cells[columns.Of(ColumnBook)]
	plainID, notesID := BookID(book), NotesBookID(book)
	plainTitle, notesTitle := BookTitles(book)
	b.addBook(plainID, plainTitle)
	b.addBook(notesID, notesTitle)

	title := cells[columns.Of(ColumnTitle)]
	songID := SongID(title, book)
	b.songs = append(b.songs, entities.Song{
		ID:     songID,
		Title:  title,
		Author: cells[columns.Of(ColumnArtist)],
	})

	if page, ok := pageCell(cells, columns.Of(ColumnPage)); ok {
		b.pages = append(b.pages, entities.BookSongPage{
			SongID: songID,
			BookID: plainID,
			Page:   &page,
		})
	}
	if page, ok := pageCell(cells, columns.Of(ColumnPageNotes)); ok {
		b.pages = append(b.pages, entities.BookSongPage{
			SongID:    songID,
			BookID:    notesID,
			PageNotes: &page,
		})
	}
}

// addBook inserts the book unless its id was already seen; the first title wins.
func (b *builder) addBook(id, title string) {
	if _, exists := b.bookIndex[id]; exists {
		return
	}
	b.bookIndex[id] = struct{}{}
	b.books = append(b.books, entities.Book{ID: id, Title: title})
}

func pageCell(cells []string, idx int) (int, bool) {
	if idx < 0 || idx >= len(cells) {
		return 0, false
	}
	page, err := strconv.Atoi(cells[idx])
	if err != nil {
		return 0, false
	}
	return page, true
}

func normalizeLines(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func preview(raw string) string {
	if utf8.RuneCountInString(raw) <= previewLength {
		return raw
	}
	return string([]rune(raw)[:previewLength]) + "..."
}

func emptyResult(diag *diagnostics) Result {
	return Result{
		Songs:       make([]entities.Song, 0),
		Books:       make([]entities.Book, 0),
		Pages:       make([]entities.BookSongPage, 0),
		Diagnostics: diag.String(),
	}
}

type diagnostics struct {
	b strings.Builder
}

func (d *diagnostics) printf(format string, args ...any) {
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *diagnostics) String() string {
	return d.b.String()
}
