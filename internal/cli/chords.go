package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/utils"
)

func newChordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "chords <text>",
		Short:   "Print the distinct chords of a chord sheet",
		Example: `  songbook chords "G Am C Am Em D G D"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chords := utils.ExtractUniqueChords(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chords, " "))
			return nil
		},
	}
}
