package cli

import (
	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved layouts over HTTP",
		Long: `Run the layout HTTP API on top of the configured store. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			layouts, err := c.openLayouts(cmd.Context())
			if err != nil {
				return err
			}
			defer layouts.Close()

			srv := server.New(layouts, server.WithLogger(c.Logger))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
