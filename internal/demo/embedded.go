package demo

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/songbook/internal/lyrics"
)

//go:embed assets
var embeddedAssets embed.FS

const (
	csvAsset    = "assets/data.csv"
	lyricsAsset = "assets/songs_with_lyrics.json"
)

// SampleCSV returns the bundled songbook index.
func SampleCSV() (string, error) {
	data, err := embeddedAssets.ReadFile(csvAsset)
	if err != nil {
		return "", fmt.Errorf("read embedded csv: %w", err)
	}
	return string(data), nil
}

// SampleLyrics returns the bundled lyrics dataset. It is only used when
// explicitly enabled, never as a silent fallback.
func SampleLyrics() (*lyrics.Index, error) {
	data, err := embeddedAssets.ReadFile(lyricsAsset)
	if err != nil {
		return nil, fmt.Errorf("read embedded lyrics: %w", err)
	}
	records, _, err := lyrics.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return lyrics.NewIndex(records), nil
}

// ExtractAssets writes the bundled dataset to targetDir.
// Returns paths to the extracted CSV and lyrics files.
func ExtractAssets(targetDir string) (csvPath, lyricsPath string, err error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", "", fmt.Errorf("create target dir: %w", err)
	}

	csvPath = filepath.Join(targetDir, "data.csv")
	lyricsPath = filepath.Join(targetDir, "songs_with_lyrics.json")

	for asset, dst := range map[string]string{csvAsset: csvPath, lyricsAsset: lyricsPath} {
		data, err := embeddedAssets.ReadFile(asset)
		if err != nil {
			return "", "", fmt.Errorf("read embedded %s: %w", asset, err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return "", "", fmt.Errorf("write %s: %w", dst, err)
		}
	}

	return csvPath, lyricsPath, nil
}

// HasEmbeddedAssets returns true if embedded demo assets are available.
func HasEmbeddedAssets() bool {
	_, err := embeddedAssets.ReadFile(csvAsset)
	return err == nil
}
