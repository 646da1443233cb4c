package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/config"
	"github.com/mrlokans/songbook/internal/database"
	"github.com/mrlokans/songbook/internal/database/books"
	"github.com/mrlokans/songbook/internal/database/songs"
	"github.com/mrlokans/songbook/internal/importers"
)

type importOptions struct {
	file    string
	dbPath  string
	dryRun  bool
	verbose bool
}

func newImportCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the songbook CSV into the database",
		Long: `Parse the songbook CSV export and store songs, books and page mappings in
the database. An already populated database is left unchanged.

Examples:
  songbook import --file ./dev/data.csv
  songbook import --file data.csv --dry-run --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if opts.file == "" {
				opts.file = cfg.Data.CSVPath
			}
			if opts.dbPath == "" {
				opts.dbPath = cfg.Database.Path
			}
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "path to the songbook CSV (default DATA_CSV_PATH)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "path to the database file (default DATABASE_PATH)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be imported without writing")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the import diagnostics")
	return cmd
}

func runImport(cmd *cobra.Command, opts *importOptions) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Songbook Import")
	fmt.Fprintln(out, "===============")
	if opts.dryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
	}
	fmt.Fprintf(out, "File: %s\n", opts.file)

	raw, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read songbook csv: %w", err)
	}

	result := importers.Import(string(raw))
	if opts.verbose {
		fmt.Fprintln(out, "\n=== Diagnostics ===")
		fmt.Fprint(out, result.Diagnostics)
	}

	fmt.Fprintf(out, "\nFound %d songs, %d books, %d page mappings\n",
		len(result.Songs), len(result.Books), len(result.Pages))

	if result.Empty() {
		return fmt.Errorf("no songs found in %s, run with --verbose for details", opts.file)
	}
	if opts.dryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without --dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Fprintf(out, "\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	inserted, err := songs.NewRepository(db.DB).PopulateFromImportIfEmpty(result)
	if err != nil {
		return err
	}
	if !inserted {
		fmt.Fprintln(out, "Database already holds songs, nothing imported.")
	} else {
		fmt.Fprintln(out, "Import complete.")
	}

	totalBooks, songsWithPages, err := books.NewRepository(db.DB).GetStats()
	if err != nil {
		return fmt.Errorf("failed to read database stats: %w", err)
	}
	fmt.Fprintf(out, "\n=== Database Summary ===\nBooks: %d\nSongs with pages: %d\n", totalBooks, songsWithPages)
	return nil
}
