// Package cli defines the songbook command line: the HTTP server plus a few
// offline commands working directly on the CSV export.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/config"
	"github.com/mrlokans/songbook/internal/entrypoint"
)

// NewRootCommand builds the command tree. Without a sub-command the server
// is started.
func NewRootCommand(version string) *cobra.Command {
	var cfgFile string

	loadConfig := func() (*config.Config, error) {
		return config.LoadConfig(cfgFile)
	}

	rootCmd := &cobra.Command{
		Use:           "songbook",
		Short:         "Search the printed songbooks by title, artist and lyrics",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return entrypoint.Run(cfg, version)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (YAML, TOML or JSON); environment variables take precedence")

	rootCmd.AddCommand(
		newServeCommand(version, loadConfig),
		newImportCommand(loadConfig),
		newSearchCommand(loadConfig),
		newChordsCommand(),
		newDemoCommand(),
	)

	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
