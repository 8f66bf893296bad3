package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/decomment/internal/config"
	"github.com/Sumatoshi-tech/decomment/internal/runner"
)

// DirCommand strips comments from every file under a directory.
type DirCommand struct {
	flags   commonFlags
	inPlace bool
}

// NewDirCommand creates the dir subcommand.
func NewDirCommand() *cobra.Command {
	dc := &DirCommand{}

	cmd := &cobra.Command{
		Use:   "dir <path>",
		Short: "Strip comments from all files under a directory",
		Long: "Strip comments from every regular file under a directory. " +
			"Cleaned files are written to an output directory mirroring the " +
			"input structure (default " + config.DefaultOutputDir + "); with " +
			"--in-place the originals are rewritten after per-file backups.",
		Args: cobra.ExactArgs(1),
		RunE: dc.run,
	}

	dc.flags.register(cmd)
	cmd.Flags().BoolVar(&dc.inPlace, "in-place", false,
		"Rewrite files in place with backups instead of using an output directory")

	return cmd
}

func (dc *DirCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := dc.flags.loadConfig(cmd)
	if err != nil {
		return err
	}

	if dc.inPlace {
		cfg.Output = ""
	} else if cfg.Output == "" {
		cfg.Output = config.DefaultOutputDir
	}

	opts := runner.Options{
		OutputDir:    cfg.Output,
		BackupSuffix: cfg.BackupSuffix,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		ShowDiff:     dc.flags.showDiff,
	}

	r, err := newRunner(cmd, cfg, opts)
	if err != nil {
		return err
	}

	summary, err := r.ProcessDir(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return emitSummary(cmd, cfg, summary)
}
