package cli

import (
	"context"
	goerrors "errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/errors"
	"github.com/licaudit/licaudit/pkg/extract"
	"github.com/licaudit/licaudit/pkg/extract/javascript"
	"github.com/licaudit/licaudit/pkg/extract/python"
	"github.com/licaudit/licaudit/pkg/observability"
)

// ErrConflicts signals that the scan completed but the report contains
// license conflicts. main maps it to exit code 2.
var ErrConflicts = goerrors.New("license conflicts found")

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	config   string   // config file path (optional)
	output   string   // report file path, overrides config
	pipRoots []string // pip scan roots, overrides config
	npmRoots []string // npm scan roots, overrides config
	noCache  bool     // disable snapshot caching
	refresh  bool     // bypass cached snapshots but still update them
	publish  bool     // persist the report to the configured store
	summary  bool     // print the per-ecosystem summary table
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Scan dependency trees and write a license report",
		Long: `Scan pip and npm dependency trees under the given root (default "."),
normalize every declared license, and write an aggregated report.

The report is deterministic: scanning an unchanged tree twice produces
byte-identical output. Exit code 2 means at least one dependency has
conflicting license claims.

Examples:
  licaudit scan                          # scan the current directory
  licaudit scan ./backend                # scan a specific tree
  licaudit scan --pip ./api --npm ./web  # separate roots per ecosystem
  licaudit scan --refresh --publish      # fresh extraction, persist result`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runScan(ctx, &opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default licaudit.toml if present)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report file path")
	cmd.Flags().StringSliceVar(&opts.pipRoots, "pip", nil, "pip scan roots")
	cmd.Flags().StringSliceVar(&opts.npmRoots, "npm", nil, "npm scan roots")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable extraction snapshot caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached snapshots")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "persist the report to the configured store")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print per-ecosystem summary")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, opts *scanOpts, roots []string) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	output := cfg.Output
	if opts.output != "" {
		output = opts.output
	}
	pipRoots, npmRoots := cfg.Roots.Pip, cfg.Roots.Npm
	if len(roots) > 0 {
		pipRoots, npmRoots = roots, roots
	}
	if len(opts.pipRoots) > 0 {
		pipRoots = opts.pipRoots
	}
	if len(opts.npmRoots) > 0 {
		npmRoots = opts.npmRoots
	}

	snapshots := c.newSnapshotCache(ctx, cfg.Cache, opts.noCache)
	defer snapshots.Close()

	logger := loggerFromContext(ctx)
	warnf := func(format string, args ...any) { logger.Warnf(format, args...) }
	pip := python.New(pipRoots...)
	pip.Logf = warnf
	npm := javascript.New(npmRoots...)
	npm.Logf = warnf

	sources := []audit.Source{
		extract.WithCache(pip, snapshots, cacheRootKey(pipRoots), cfg.Cache.TTL.Duration, opts.refresh),
		extract.WithCache(npm, snapshots, cacheRootKey(npmRoots), cfg.Cache.TTL.Duration, opts.refresh),
	}

	spinner := newSpinnerWithContext(ctx, "Scanning dependency trees...")
	spinner.Start()

	prog := newProgress(logger)
	records, status := extract.Collect(ctx, warnf, sources...)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}

	if len(records) == 0 {
		spinner.Stop()
		return errors.New(errors.ErrCodeNoRecords, "no dependency records found under %v", append(pipRoots, npmRoots...))
	}

	spinner.SetMessage("Aggregating licenses...")
	report := audit.BuildReport(audit.Aggregate(records))
	spinner.Stop()
	prog.done(fmt.Sprintf("Extracted %d records", len(records)))
	report.Summary.Extractors = status

	if err := report.Write(output); err != nil {
		return err
	}
	observability.Scan().OnReportWritten(ctx, output, report.Summary.TotalDependencies)
	printSuccess("Report written")
	printFile(output)
	printStats(report.Summary.TotalDependencies, report.Summary.WithConflicts, report.Summary.WithUnrecognized)

	if opts.summary {
		printEcosystemSummary(report)
	}

	if opts.publish {
		if err := c.publishReport(ctx, cfg.Store, report); err != nil {
			return err
		}
	}

	if report.Summary.WithConflicts > 0 {
		printNewline()
		printNextStep("Inspect conflicts", fmt.Sprintf("licaudit browse %s", output))
		return ErrConflicts
	}
	return nil
}

func (c *CLI) publishReport(ctx context.Context, cfg StoreConfig, report *audit.Report) error {
	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st == nil {
		printWarning("No store configured, skipping publish")
		return nil
	}
	defer st.Close()

	entry, err := st.Save(ctx, *report)
	if err != nil {
		return err
	}
	printInfo("Published report %s", entry.ID)
	return nil
}

// printEcosystemSummary prints the per-ecosystem counters.
func printEcosystemSummary(report *audit.Report) {
	ecosystems := make([]string, 0, len(report.Summary.Ecosystems))
	for eco := range report.Summary.Ecosystems {
		ecosystems = append(ecosystems, eco)
	}
	sort.Strings(ecosystems)

	printNewline()
	for _, eco := range ecosystems {
		s := report.Summary.Ecosystems[eco]
		printDetail("%-4s  %d dependencies, %d conflicts, %d unrecognized",
			eco, s.TotalDependencies, s.WithConflicts, s.WithUnrecognized)
	}
}

// cacheRootKey joins the scan roots into one snapshot cache key part.
func cacheRootKey(roots []string) string {
	sorted := append([]string(nil), roots...)
	sort.Strings(sorted)
	key := ""
	for i, r := range sorted {
		if i > 0 {
			key += "|"
		}
		key += r
	}
	return key
}
