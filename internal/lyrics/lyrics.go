// Package lyrics loads the optional lyrics/chords dataset and looks up
// entries by song title and artist.
//
// # Usage
//
//	idx, err := lyrics.LoadFile("./dev/songs_with_lyrics.json")
//	text, ok := idx.Lyrics("Über den Wolken", "Reinhard Mey")
package lyrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// Record is one entry of the lyrics dataset.
type Record struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title" validate:"required"`
	Artist        string `json:"artist" validate:"required"`
	Lyrics        string `json:"lyrics"`
	Chords        string `json:"chords"`
	BookID        string `json:"book_id"`
	BookPage      *int   `json:"book_page,omitempty"`
	BookPageNotes *int   `json:"book_page_notes,omitempty"`
}

var validate = validator.New()

// Parse decodes a JSON array of records. Invalid records are skipped and
// reported in the returned messages; only an undecodable document is an error.
func Parse(r io.Reader) ([]Record, []string, error) {
	var raw []Record
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode lyrics: %w", err)
	}

	records := make([]Record, 0, len(raw))
	var problems []string
	for i, rec := range raw {
		if err := validate.Struct(rec); err != nil {
			problems = append(problems, fmt.Sprintf("Record %d: skipped - %v", i, err))
			continue
		}
		records = append(records, rec)
	}
	return records, problems, nil
}

// LoadFile reads the dataset at path. A missing file or an empty path yields
// an empty index, not an error.
func LoadFile(path string) (*Index, error) {
	if path == "" {
		return NewIndex(nil), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Lyrics: %s not found, lyrics search disabled", path)
		return NewIndex(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open lyrics file: %w", err)
	}
	defer f.Close()

	records, problems, err := Parse(f)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		log.Printf("Lyrics: %s", p)
	}
	log.Printf("Lyrics: loaded %d records from %s", len(records), path)

	return NewIndex(records), nil
}

// Index looks up records by case-insensitive title and artist.
type Index struct {
	records []Record
	byKey   map[string]int
}

// NewIndex builds an index; the first record wins for duplicate keys.
func NewIndex(records []Record) *Index {
	idx := &Index{
		records: records,
		byKey:   make(map[string]int, len(records)),
	}
	for i, rec := range records {
		k := key(rec.Title, rec.Artist)
		if _, exists := idx.byKey[k]; !exists {
			idx.byKey[k] = i
		}
	}
	return idx
}

// Find returns the record for a song.
func (idx *Index) Find(title, artist string) (Record, bool) {
	if idx == nil {
		return Record{}, false
	}
	i, ok := idx.byKey[key(title, artist)]
	if !ok {
		return Record{}, false
	}
	return idx.records[i], true
}

// Lyrics returns the lyrics text of a song.
func (idx *Index) Lyrics(title, artist string) (string, bool) {
	rec, ok := idx.Find(title, artist)
	if !ok {
		return "", false
	}
	return rec.Lyrics, true
}

// Len returns the number of records.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

func key(title, artist string) string {
	// Casers keep state and must not be shared between goroutines.
	return cases.Fold().String(title) + "\x00" + cases.Fold().String(artist)
}
