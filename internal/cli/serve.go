package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/api"
	"github.com/matzehuels/chromatic/pkg/catalog"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg       api.Config
		addr      string
		noCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Routes:
  GET  /healthz
  POST /v1/csf            {"graph": "bowtie", "basis": "elementary"}
  POST /v1/glue           {"g": "triangle", "h": "path3"}
  POST /v1/plot           {"graph": "kite", "format": "svg"}
  GET  /v1/fixtures[/{name}]
  GET  /v1/trees/{n}[?check=true]
  GET  /v1/catalog[/{id}]

Defaults come from the [server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = file.Server.Addr
			}
			if !cmd.Flags().Changed("max-edges") {
				cfg.MaxEdges = file.Server.MaxEdges
			}
			if !cmd.Flags().Changed("max-vertices") {
				cfg.MaxVertices = file.Server.MaxVertices
			}
			if !cmd.Flags().Changed("timeout") {
				cfg.Timeout = file.Server.Timeout
			}
			return c.runServe(cmd.Context(), addr, cfg, noCatalog)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&cfg.MaxEdges, "max-edges", 0, "reject graphs with more edges")
	cmd.Flags().IntVar(&cfg.MaxVertices, "max-vertices", 0, "reject graphs with more vertices")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", api.DefaultTimeout, "per-request computation limit")
	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "disable the catalog routes")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cfg api.Config, noCatalog bool) error {
	var store catalog.Store
	if !noCatalog {
		var err error
		if store, err = c.openCatalog(ctx); err != nil {
			return err
		}
		defer store.Close()
	}

	runner, err := c.newRunner(ctx, false, store)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	return api.New(runner, cfg).ListenAndServe(ctx, addr)
}
