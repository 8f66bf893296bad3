package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/decomment/internal/config"
	"github.com/Sumatoshi-tech/decomment/internal/runner"
	"github.com/Sumatoshi-tech/decomment/pkg/gitlib"
)

// RepoCommand clones a repository, strips comments, and optionally commits
// and pushes the result.
type RepoCommand struct {
	flags   commonFlags
	files   []string
	push    bool
	message string
	workdir string
}

// NewRepoCommand creates the repo subcommand.
func NewRepoCommand() *cobra.Command {
	rc := &RepoCommand{}

	cmd := &cobra.Command{
		Use:   "repo <url>",
		Short: "Clone a git repository and strip comments from its files",
		Long: "Clone a git repository into a working directory and strip " +
			"comments from its files. By default cleaned files are written to " +
			config.DefaultRepoOutputDir + " and the clone is discarded; with " +
			"--push the clone is rewritten in place, committed, and pushed " +
			"back when the credentials allow it.",
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	rc.flags.register(cmd)
	cmd.Flags().StringSliceVar(&rc.files, "files", nil,
		"Process only these paths inside the repository")
	cmd.Flags().BoolVar(&rc.push, "push", false,
		"Commit the cleaned files and push back to the remote")
	cmd.Flags().StringVarP(&rc.message, "message", "m", "",
		"Commit message for --push (default from config)")
	cmd.Flags().StringVar(&rc.workdir, "workdir", "",
		"Clone into this directory instead of a temporary one")

	return cmd
}

func (rc *RepoCommand) run(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := rc.flags.loadConfig(cmd)
	if err != nil {
		return err
	}

	cloneDir := rc.workdir
	if cloneDir == "" {
		tempDir, tempErr := os.MkdirTemp("", "decomment-*")
		if tempErr != nil {
			return fmt.Errorf("create clone dir: %w", tempErr)
		}

		defer os.RemoveAll(tempDir)

		cloneDir = tempDir
	}

	creds := gitlib.NewCredentials(gitlib.NewTerminalPrompter())

	// Clone failure is fatal; nothing can be processed without it.
	repo, err := gitlib.Clone(url, cloneDir, creds)
	if err != nil {
		return err
	}
	defer repo.Free()

	summary, err := rc.process(cmd, cfg, repo)
	if err != nil {
		return err
	}

	if rc.push {
		pushErr := rc.commitAndPush(cmd, cfg, repo, creds)
		if pushErr != nil {
			return pushErr
		}
	}

	return emitSummary(cmd, cfg, summary)
}

// process runs the removal inside the clone. Push mode rewrites the clone in
// place with no backups; otherwise cleaned files go to the output directory
// and the clone stays pristine.
func (rc *RepoCommand) process(
	cmd *cobra.Command,
	cfg *config.Config,
	repo *gitlib.Repository,
) (*runner.Summary, error) {
	opts := runner.Options{
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		ShowDiff: rc.flags.showDiff,
	}

	if rc.push {
		opts.OutputDir = ""
		opts.BackupSuffix = ""
	} else {
		opts.OutputDir = cfg.Output
		if opts.OutputDir == "" {
			opts.OutputDir = config.DefaultRepoOutputDir
		}
	}

	r, err := newRunner(cmd, cfg, opts)
	if err != nil {
		return nil, err
	}

	if len(rc.files) > 0 {
		return r.ProcessList(cmd.Context(), repo.Path(), rc.files), nil
	}

	return r.ProcessDir(cmd.Context(), repo.Path())
}

// commitAndPush stages the rewritten clone, commits, and pushes when the
// credentials grant write access. Lack of write access is a warning, not an
// error.
func (rc *RepoCommand) commitAndPush(
	cmd *cobra.Command,
	cfg *config.Config,
	repo *gitlib.Repository,
	creds *gitlib.Credentials,
) error {
	stageErr := repo.StageAll()
	if stageErr != nil {
		return stageErr
	}

	staged, err := repo.HasStagedChanges()
	if err != nil {
		return err
	}

	if !staged {
		fmt.Fprintln(cmd.ErrOrStderr(), "nothing to commit")

		return nil
	}

	message := rc.message
	if message == "" {
		message = cfg.Git.CommitMessage
	}

	sig := gitlib.Signature{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}

	hash, commitErr := repo.Commit(sig, message)
	if commitErr != nil {
		return commitErr
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "committed %s\n", hash)

	if !creds.WriteAccess(repo.URL()) {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(),
			"warning: no write access to remote, skipping push")

		return nil
	}

	return repo.Push(creds)
}
