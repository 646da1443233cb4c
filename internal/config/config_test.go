package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDataCSVPath, cfg.Data.CSVPath)
	assert.Equal(t, "", cfg.Data.LyricsPath)
	assert.False(t, cfg.Data.LyricsSampleFallback)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 0, cfg.Search.MinQueryLength)
	assert.True(t, cfg.Search.TitleDefault)
	assert.True(t, cfg.Search.AuthorDefault)
	assert.False(t, cfg.Search.LyricsDefault)
	assert.Equal(t, 5, cfg.Search.SuggestionLimit)
	assert.False(t, cfg.Reload.Enabled)
	assert.Equal(t, DefaultReloadSchedule, cfg.Reload.Schedule)
	assert.False(t, cfg.Reload.WatchDataFile)
	assert.False(t, cfg.Demo.Enabled)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MIN_QUERY_LENGTH", "3")
	t.Setenv("SEARCH_LYRICS_DEFAULT", "true")
	t.Setenv("DATABASE_ENABLED", "false")
	t.Setenv("DEMO_MODE", "1")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Search.MinQueryLength)
	assert.True(t, cfg.Search.LyricsDefault)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.Demo.Enabled)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songbook.yaml")
	content := "data_csv_path: /srv/songbook/data.csv\nreload_enabled: true\nport: 9100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("PORT", "9200")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/songbook/data.csv", cfg.Data.CSVPath)
	assert.True(t, cfg.Reload.Enabled)
	assert.Equal(t, int32(9200), cfg.HTTP.Port, "environment overrides the file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, int32(8190), cfg.HTTP.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
