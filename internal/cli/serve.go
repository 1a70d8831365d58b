package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/licaudit/licaudit/internal/server"
	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/extract"
	"github.com/licaudit/licaudit/pkg/extract/javascript"
	"github.com/licaudit/licaudit/pkg/extract/python"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config string
	addr   string
	report string // seed the server with an existing report file
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve license reports over HTTP",
		Long: `Serve license reports over HTTP.

GET  /healthz        liveness probe
GET  /api/v1/report  latest report (404 when none exists)
POST /api/v1/scan    run a scan over the configured roots

When a store is configured, scan results are persisted and the latest
stored report is served after a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default licaudit.toml if present)")
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.report, "report", "", "seed with an existing report file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	st, err := c.newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	srv := server.New(server.Config{
		Addr:    opts.addr,
		Logger:  loggerFromContext(ctx),
		Store:   st,
		Scanner: c.newScanner(cfg),
	})

	if opts.report != "" {
		report, err := audit.ReadReport(opts.report)
		if err != nil {
			return err
		}
		srv.SetLatest(*report)
	}

	return srv.Run(ctx)
}

// newScanner builds the scan function the server runs on POST /api/v1/scan.
// Server-triggered scans always extract fresh; snapshot caching is a CLI
// concern for repeated local runs.
func (c *CLI) newScanner(cfg Config) server.Scanner {
	return func(ctx context.Context) (audit.Report, error) {
		logger := loggerFromContext(ctx)
		warnf := func(format string, args ...any) { logger.Warnf(format, args...) }
		pip := python.New(cfg.Roots.Pip...)
		pip.Logf = warnf
		npm := javascript.New(cfg.Roots.Npm...)
		npm.Logf = warnf

		records, status := extract.Collect(ctx, warnf, pip, npm)
		report := audit.BuildReport(audit.Aggregate(records))
		report.Summary.Extractors = status
		return *report, nil
	}
}
