// Package cmd implements the fcidash CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/config"
	"github.com/fileandclaim/fcidash/internal/logging"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagDeals         string
	flagTracking      string
	flagDealsSheet    string
	flagTrackingSheet string
	flagQuiet         bool
	flagVerbose       bool
	flagJSONLogs      bool
)

// cfg is the merged configuration: defaults, config file, .env and
// environment, then command flags.
var cfg config.Config

// baseLog carries no component; the server and TUI tag their own lines.
var (
	baseLog = logging.Discard()
	log     = baseLog
)

var rootCmd = &cobra.Command{
	Use:   "fcidash",
	Short: "FCI weekly meeting dashboard",
	Long: "Summarize the deals workbook and the file tracking list: deals per stage,\n" +
		"deals per engineer, and files per status.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDeals, "deals", "", "Deals workbook (.xlsx or .csv)")
	pf.StringVar(&flagTracking, "tracking", "", "File tracking workbook (.xlsx or .csv)")
	pf.StringVar(&flagDealsSheet, "deals-sheet", "", "Sheet of the deals workbook (default: first)")
	pf.StringVar(&flagTrackingSheet, "tracking-sheet", "", "Sheet of the file tracking workbook (default: first)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVar(&flagVerbose, "verbose", false, "Debug logging")
	pf.BoolVar(&flagJSONLogs, "log-json", false, "Log as JSON")
}

// prepare configures logging and merges config with flags. It runs before
// every command.
func prepare(cmd *cobra.Command, _ []string) error {
	baseLog = logging.Setup(os.Stderr, logging.Options{
		Verbose: flagVerbose,
		Quiet:   flagQuiet,
		JSON:    flagJSONLogs,
	})
	log = baseLog.With(logging.FieldComponent, logging.ComponentCLI)

	var err error
	cfg, err = config.Load()
	if err != nil {
		// Defaults are still usable; say so and continue.
		log.Warn("config not loaded, using defaults", logging.FieldError, err)
	}

	if flagDeals != "" {
		cfg.Files.Deals = flagDeals
	}
	if flagTracking != "" {
		cfg.Files.FileTracking = flagTracking
	}
	if cmd.Flags().Changed("deals-sheet") {
		cfg.Files.DealsSheet = flagDealsSheet
	}
	if cmd.Flags().Changed("tracking-sheet") {
		cfg.Files.FileTrackingSheet = flagTrackingSheet
	}
	return nil
}

func sources() pipeline.Sources {
	return pipeline.Sources{
		DealsPath:     cfg.Files.Deals,
		DealsSheet:    cfg.Files.DealsSheet,
		TrackingPath:  cfg.Files.FileTracking,
		TrackingSheet: cfg.Files.FileTrackingSheet,
	}
}

// loadData is the shared data loading path used by all commands.
func loadData(ctx context.Context) (*pipeline.LoadResult, error) {
	src := sources()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s and %s...\n", src.DealsPath, src.TrackingPath)
	}

	result, err := pipeline.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	log.Debug("loaded deals",
		logging.FieldFile, src.DealsPath,
		logging.FieldRows, len(result.Deals),
		logging.FieldDuration, result.LoadTime.Milliseconds())
	log.Debug("loaded file tracking",
		logging.FieldFile, src.TrackingPath,
		logging.FieldRows, len(result.Tracking))

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %s deals and %s tracked files in %s\n",
			cli.FormatNumber(int64(len(result.Deals))),
			cli.FormatNumber(int64(len(result.Tracking))),
			cli.FormatElapsed(result.LoadTime),
		)
	}

	return result, nil
}

// printWarnings reports rows that fell outside every chart.
func printWarnings(res *pipeline.LoadResult) {
	if n := pipeline.UnrecognisedStages(res.Deals); n > 0 {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(
			fmt.Sprintf("  %d deal(s) have a stage outside the six charted stages", n)))
	}
	if n := pipeline.UnmappedStatuses(res.Tracking); n > 0 {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(
			fmt.Sprintf("  %d file(s) have an unrecognised status", n)))
	}
}
