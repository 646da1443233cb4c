package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Data
		Database
		Search
		Reload
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Data struct {
		CSVPath              string // Songbook index export
		LyricsPath           string // Optional lyrics/chords JSON, "" disables lyrics
		LyricsSampleFallback bool   // Use the bundled sample lyrics when LyricsPath is unusable
	}
	Database struct {
		Path    string
		Enabled bool
	}
	Search struct {
		MinQueryLength  int // Shorter queries are treated as empty
		TitleDefault    bool
		AuthorDefault   bool
		LyricsDefault   bool
		SuggestionLimit int
	}
	Reload struct {
		Enabled       bool
		Schedule      string // Cron format: "0 * * * *" = hourly
		WatchDataFile bool   // Reload when the CSV file changes on disk
	}
	Demo struct {
		Enabled bool // Read-only API backed by the bundled dataset
	}
)

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("data_csv_path", DefaultDataCSVPath)
	v.SetDefault("lyrics_path", "")
	v.SetDefault("lyrics_sample_fallback", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_enabled", true)

	// Search defaults
	v.SetDefault("min_query_length", 0)
	v.SetDefault("search_title_default", true)
	v.SetDefault("search_author_default", true)
	v.SetDefault("search_lyrics_default", false)
	v.SetDefault("search_suggestion_limit", 5)

	// Reload defaults
	v.SetDefault("reload_enabled", false)
	v.SetDefault("reload_schedule", DefaultReloadSchedule)
	v.SetDefault("watch_data_file", false)

	v.SetDefault("demo_mode", false)
	return v
}

func NewConfig() *Config {
	return fromViper(newViper())
}

// LoadConfig reads an optional config file (YAML, TOML, JSON...) below the
// environment: environment variables still override file values.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path == "" {
		return fromViper(v), nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Data: Data{
			CSVPath:              v.GetString("DATA_CSV_PATH"),
			LyricsPath:           v.GetString("LYRICS_PATH"),
			LyricsSampleFallback: v.GetBool("LYRICS_SAMPLE_FALLBACK"),
		},
		Database: Database{
			Path:    v.GetString("DATABASE_PATH"),
			Enabled: v.GetBool("DATABASE_ENABLED"),
		},
		Search: Search{
			MinQueryLength:  v.GetInt("MIN_QUERY_LENGTH"),
			TitleDefault:    v.GetBool("SEARCH_TITLE_DEFAULT"),
			AuthorDefault:   v.GetBool("SEARCH_AUTHOR_DEFAULT"),
			LyricsDefault:   v.GetBool("SEARCH_LYRICS_DEFAULT"),
			SuggestionLimit: v.GetInt("SEARCH_SUGGESTION_LIMIT"),
		},
		Reload: Reload{
			Enabled:       v.GetBool("RELOAD_ENABLED"),
			Schedule:      v.GetString("RELOAD_SCHEDULE"),
			WatchDataFile: v.GetBool("WATCH_DATA_FILE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
