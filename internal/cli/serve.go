package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocksnap/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	addr := defaultAddr

	cmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "Serve a scenario workspace over HTTP",
		Long: `Start an HTTP server whose workspace is seeded from the blocks and areas of
a scenario file. Clients drive drags with POST /drag/begin, /drag/move,
/drag/end and /drag/cancel and read the preview from GET /state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, cfg, err := c.loadScenario(args[0])
			if err != nil {
				return err
			}
			rc := c.newCache(cmd.Context(), cfg)
			defer rc.Close()
			srv, err := server.New(server.Options{Scenario: f, Config: &cfg, Logger: c.Logger, Cache: rc})
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), "Serving %s on http://%s", f.Name, addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}
