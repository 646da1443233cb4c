package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/demo"
)

func newDemoCommand() *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Work with the bundled demo dataset",
	}

	var dir string
	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the bundled CSV and lyrics files to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, lyricsPath, err := demo.ExtractAssets(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CSV: %s\n", csvPath)
			fmt.Fprintf(out, "Lyrics: %s\n", lyricsPath)
			return nil
		},
	}
	extractCmd.Flags().StringVarP(&dir, "dir", "d", "./dev", "target directory")

	demoCmd.AddCommand(extractCmd)
	return demoCmd
}
