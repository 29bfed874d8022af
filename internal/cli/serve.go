package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/internal/server"
	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags chartFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve organization charts over HTTP from the configured source.

  GET    /healthz
  GET    /api/organizations/{uuid}/chart?depth=&filter=&width=&height=&symbols=&format=
  GET    /api/organizations/{uuid}/tree
  DELETE /api/organizations/{uuid}/cache

The listen address defaults to ORGCHART_ADDR (:8080).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.chartOptions(cmd, &flags)
			if err != nil {
				return err
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, defaults pipeline.Options, noCache bool) error {
	if cfg.Source.Kind == config.SourceFile {
		printWarning("Serving from a tree file; only its root organization can be charted")
	}

	runner, closeRunner, err := c.newRunner(ctx, "", noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	printInfo("Source %s", StyleHighlight.Render(runner.Source.Name()))
	printDetail("Listening on %s", cfg.Server.Addr)

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		FetchTimeout:    cfg.Server.FetchTimeout,
	}, runner, defaults, c.Logger)
	return srv.Run(ctx)
}
