package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/decomment/internal/runner"
)

// FileCommand strips comments from a single file.
type FileCommand struct {
	flags commonFlags
}

// NewFileCommand creates the file subcommand.
func NewFileCommand() *cobra.Command {
	fc := &FileCommand{}

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Strip comments from a single file",
		Long: "Strip comments from a single file. The original is rewritten in " +
			"place after a backup copy is written next to it, unless --output " +
			"names a directory to receive the cleaned copy.",
		Args: cobra.ExactArgs(1),
		RunE: fc.run,
	}

	fc.flags.register(cmd)

	return cmd
}

func (fc *FileCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := fc.flags.loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := runner.Options{
		OutputDir:    cfg.Output,
		BackupSuffix: cfg.BackupSuffix,
		ShowDiff:     fc.flags.showDiff,
	}

	r, err := newRunner(cmd, cfg, opts)
	if err != nil {
		return err
	}

	summary := r.ProcessFile(cmd.Context(), args[0])

	return emitSummary(cmd, cfg, summary)
}
