// Package commands implements CLI command handlers for decomment.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/decomment/internal/config"
	"github.com/Sumatoshi-tech/decomment/internal/runner"
	"github.com/Sumatoshi-tech/decomment/pkg/strip"
)

// commonFlags holds the flags shared by the file, dir, and repo commands.
type commonFlags struct {
	configPath string
	output     string
	showDiff   bool
	report     string
	include    []string
	exclude    []string
}

func (cf *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cf.output, "output", "o", "",
		"Write cleaned files under this directory instead of in place")
	cmd.Flags().BoolVar(&cf.showDiff, "diff", false, "Preview changes without writing files")
	cmd.Flags().StringVar(&cf.report, "report", "", "Machine-readable report format: json or yaml")
	cmd.Flags().StringSliceVar(&cf.include, "include", nil, "Glob patterns of files to include")
	cmd.Flags().StringSliceVar(&cf.exclude, "exclude", nil, "Glob patterns of files to exclude")
	cmd.Flags().StringVar(&cf.configPath, "config", "",
		"Config file path (default: .decomment.yaml in CWD or $HOME)")
}

// loadConfig loads the configuration and applies flag overrides on top.
func (cf *commonFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cf.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = cf.output
	}

	if cmd.Flags().Changed("report") {
		cfg.Report = cf.report
	}

	if len(cf.include) > 0 {
		cfg.Include = cf.include
	}

	if len(cf.exclude) > 0 {
		cfg.Exclude = cf.exclude
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// newRunner builds the dispatcher from the resolved language table and wraps
// it in a runner.
func newRunner(cmd *cobra.Command, cfg *config.Config, opts runner.Options) (*runner.Runner, error) {
	entries, err := cfg.TableEntries()
	if err != nil {
		return nil, err
	}

	table := strip.NewTable()
	table.Merge(entries)

	// Previews go to stderr so a --report payload on stdout stays
	// machine-readable.
	return runner.New(strip.NewDispatcher(table), opts, commandLogger(cmd), cmd.ErrOrStderr()), nil
}

// commandLogger returns a debug logger on stderr when -v is set, nil otherwise.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return nil
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func quietMode(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	return quiet
}

// emitSummary writes the machine report when one was requested, otherwise the
// human-readable summary unless -q is set.
func emitSummary(cmd *cobra.Command, cfg *config.Config, summary *runner.Summary) error {
	if cfg.Report != config.ReportNone {
		return summary.WriteReport(cmd.OutOrStdout(), cfg.Report)
	}

	if !quietMode(cmd) {
		summary.Render(cmd.OutOrStdout())
	}

	return nil
}
