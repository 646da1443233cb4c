package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mrlokans/songbook/internal/lyrics"
)

// Source provides the raw songbook CSV text.
type Source interface {
	Read(ctx context.Context) (string, error)
	Describe() string
}

// FileSource reads the CSV from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return string(data), nil
}

func (s FileSource) Describe() string {
	return s.Path
}

// StaticSource serves CSV text from memory, e.g. the bundled demo dataset.
type StaticSource struct {
	Name string
	Text func() (string, error)
}

func (s StaticSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Text()
}

func (s StaticSource) Describe() string {
	return s.Name
}

// LyricsLoader returns a loader for the lyrics file at path. When fallback is
// non-nil it is used if the file is missing, empty or broken.
func LyricsLoader(path string, fallback func() (*lyrics.Index, error)) func() (*lyrics.Index, error) {
	return func() (*lyrics.Index, error) {
		idx, err := lyrics.LoadFile(path)
		if fallback == nil {
			return idx, err
		}
		if err != nil {
			log.Printf("Lyrics: %v, using bundled sample lyrics", err)
			return fallback()
		}
		if idx.Len() == 0 {
			log.Printf("Lyrics: no records loaded, using bundled sample lyrics")
			return fallback()
		}
		return idx, nil
	}
}
