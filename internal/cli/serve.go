package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/songbook/internal/config"
	"github.com/mrlokans/songbook/internal/entrypoint"
)

func newServeCommand(version string, loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		host string
		port int32
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the songbook HTTP API.

Examples:
  songbook serve                   # Start on the configured port (default 8190)
  songbook serve --port 3000       # Start on a custom port
  songbook serve -c songbook.yaml  # Read settings from a config file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			return entrypoint.Run(cfg, version)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host to bind to (overrides HOST)")
	cmd.Flags().Int32Var(&port, "port", 0, "port to listen on (overrides PORT)")
	return cmd
}
