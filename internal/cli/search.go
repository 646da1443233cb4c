package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/config"
	"github.com/mrlokans/songbook/internal/services"
	"github.com/mrlokans/songbook/internal/settingsstore"
)

func newSearchCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		file       string
		lyricsFile string
		noTitle    bool
		noAuthor   bool
		withLyrics bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the songbook CSV and print matching songs with their pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.Data.CSVPath
			}
			if lyricsFile == "" {
				lyricsFile = cfg.Data.LyricsPath
			}

			sb := services.NewSongbook(services.Options{
				Source:          services.FileSource{Path: file},
				Lyrics:          services.LyricsLoader(lyricsFile, nil),
				Overlays:        settingsstore.New(settingsstore.NewMemory()),
				SuggestionLimit: cfg.Search.SuggestionLimit,
			})
			if err := sb.Load(context.Background()); err != nil {
				return err
			}

			result := sb.Search(strings.Join(args, " "), catalog.SearchFilters{
				MatchTitle:  !noTitle,
				MatchAuthor: !noAuthor,
				MatchLyrics: withLyrics,
			})
			printSearchResult(cmd, sb, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the songbook CSV (default DATA_CSV_PATH)")
	cmd.Flags().StringVar(&lyricsFile, "lyrics-file", "", "path to the lyrics JSON (default LYRICS_PATH)")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "do not match titles")
	cmd.Flags().BoolVar(&noAuthor, "no-author", false, "do not match artists")
	cmd.Flags().BoolVar(&withLyrics, "lyrics", false, "also match lyrics")
	return cmd
}

func printSearchResult(cmd *cobra.Command, sb *services.Songbook, result services.SearchResult) {
	out := cmd.OutOrStdout()

	if len(result.Songs) == 0 {
		fmt.Fprintf(out, "No songs match %q\n", result.Query)
		if len(result.Suggestions) > 0 {
			fmt.Fprintln(out, "Did you mean:")
			for _, s := range result.Suggestions {
				fmt.Fprintf(out, "  %s - %s\n", s.Title, s.Author)
			}
		}
		return
	}

	for i, song := range result.Songs {
		fmt.Fprintf(out, "%d. %s - %s\n", i+1, song.Title, song.Author)
		for _, p := range sb.Pages(song.ID) {
			fmt.Fprintf(out, "     %s (%s): page %d\n", p.BookTitle, p.Color.Label, p.Page)
		}
	}
	fmt.Fprintf(out, "\n%d songs found\n", len(result.Songs))
}
