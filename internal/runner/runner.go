// Package runner drives comment removal over files and directory trees:
// read, dispatch to a remover, back up, write. Files are processed one at a
// time to completion; a failure on one file never aborts the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/decomment/pkg/strip"
)

// gitDirName is excluded from directory traversal.
const gitDirName = ".git"

// maxBackupCandidates bounds the search for a free backup name.
const maxBackupCandidates = 100

// errNoBackupName indicates every candidate backup name was taken.
var errNoBackupName = errors.New("no free backup name")

// Options configures a run.
type Options struct {
	// OutputDir, when set, receives cleaned files mirroring the input
	// structure; originals are never touched. When empty, files are
	// rewritten in place after a backup copy is written next to them.
	OutputDir string

	// BackupSuffix names the backup file written before an in-place
	// rewrite, e.g. ".bak".
	BackupSuffix string

	// Include and Exclude are doublestar glob patterns matched against
	// slash-separated paths relative to the run root. Empty Include means
	// everything; Exclude wins over Include.
	Include []string
	Exclude []string

	// ShowDiff prints a preview of each change instead of writing files.
	ShowDiff bool
}

// Runner applies comment removal to files.
type Runner struct {
	dispatcher *strip.Dispatcher
	opts       Options
	logger     *slog.Logger
	diffOut    io.Writer
}

// New creates a runner. A nil logger discards log output; diffOut receives
// previews when Options.ShowDiff is set.
func New(dispatcher *strip.Dispatcher, opts Options, logger *slog.Logger, diffOut io.Writer) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if diffOut == nil {
		diffOut = os.Stdout
	}

	return &Runner{
		dispatcher: dispatcher,
		opts:       opts,
		logger:     logger,
		diffOut:    diffOut,
	}
}

// ProcessFile runs a single file and returns the populated summary.
func (r *Runner) ProcessFile(ctx context.Context, path string) *Summary {
	summary := NewSummary()
	summary.Add(r.processOne(ctx, filepath.Dir(path), path))

	return summary
}

// ProcessDir walks root sequentially, processing every regular file that
// passes the include/exclude filters. The .git directory is skipped.
func (r *Runner) ProcessDir(ctx context.Context, root string) (*Summary, error) {
	files, err := r.collectFiles(root)
	if err != nil {
		return nil, err
	}

	summary := NewSummary()

	for _, path := range files {
		summary.Add(r.processOne(ctx, root, path))
	}

	return summary, nil
}

// ProcessList processes an explicit list of paths relative to root; paths
// missing on disk are recorded as failed, and the run continues.
func (r *Runner) ProcessList(ctx context.Context, root string, files []string) *Summary {
	summary := NewSummary()

	for _, rel := range files {
		path := filepath.Join(root, rel)

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			summary.Add(FileResult{
				Path:   rel,
				Status: StatusFailed,
				Reason: "not found in repository",
			})

			continue
		}

		summary.Add(r.processOne(ctx, root, path))
	}

	return summary
}

// collectFiles gathers the candidate files before any of them is modified,
// so in-place backups never feed back into the walk.
func (r *Runner) collectFiles(root string) ([]string, error) {
	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if entry.Name() == gitDirName {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if r.selected(filepath.ToSlash(rel)) {
			files = append(files, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	sort.Strings(files)

	return files, nil
}

// selected applies include/exclude globs to a slash-separated relative path.
func (r *Runner) selected(rel string) bool {
	for _, pattern := range r.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}

	if len(r.opts.Include) == 0 {
		return true
	}

	for _, pattern := range r.opts.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// processOne runs the backup → transform → write pipeline for one file.
func (r *Runner) processOne(ctx context.Context, root, path string) FileResult {
	rel := relOrBase(root, path)

	if r.opts.BackupSuffix != "" && strings.HasSuffix(path, r.opts.BackupSuffix) {
		return FileResult{Path: rel, Status: StatusSkipped, Reason: "backup file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: rel, Status: StatusFailed, Reason: fmt.Sprintf("read: %v", err)}
	}

	if enry.IsBinary(data) {
		return FileResult{Path: rel, Status: StatusSkipped, Reason: "binary"}
	}

	language := enry.GetLanguage(filepath.Base(path), data)

	cleaned, stripErr := r.dispatcher.RemoverFor(path).Strip(ctx, path, data)
	if stripErr != nil {
		return r.failUnmodified(rel, path, data, stripErr)
	}

	result := FileResult{
		Path:         rel,
		Language:     language,
		Status:       StatusProcessed,
		BytesRemoved: int64(len(data) - len(cleaned)),
	}

	if r.opts.ShowDiff {
		r.printDiff(path, data, cleaned)

		return result
	}

	writeErr := r.write(root, path, data, cleaned)
	if writeErr != nil {
		return FileResult{Path: rel, Status: StatusFailed, Reason: writeErr.Error()}
	}

	r.logger.DebugContext(ctx, "processed file",
		"path", rel,
		"language", language,
		"bytes_removed", result.BytesRemoved,
	)

	return result
}

// failUnmodified records a transform failure. The original is left
// untouched: in output-dir mode it is copied through verbatim so the output
// tree stays complete.
func (r *Runner) failUnmodified(rel, path string, data []byte, stripErr error) FileResult {
	reason := stripErr.Error()

	var parseErr *strip.ParseError
	if errors.As(stripErr, &parseErr) {
		reason = fmt.Sprintf("parse error: %v", parseErr.Err)
	}

	if r.opts.OutputDir != "" && !r.opts.ShowDiff {
		if copyErr := r.writeOutput(rel, path, data); copyErr != nil {
			reason = fmt.Sprintf("%s; copy original: %v", reason, copyErr)
		}
	}

	return FileResult{Path: rel, Status: StatusFailed, Reason: reason}
}

// write persists the cleaned text. Output-dir mode mirrors the input
// structure and never touches the original; in-place mode writes the backup
// first so no original is overwritten silently.
func (r *Runner) write(root, path string, original, cleaned []byte) error {
	rel := relOrBase(root, path)

	if r.opts.OutputDir != "" {
		return r.writeOutput(rel, path, cleaned)
	}

	// An empty suffix means the caller has its own safety copy, e.g. a
	// fresh git clone.
	if r.opts.BackupSuffix != "" {
		backupPath, nameErr := backupName(path, r.opts.BackupSuffix)
		if nameErr != nil {
			return nameErr
		}

		backupErr := os.WriteFile(backupPath, original, filePerm(path))
		if backupErr != nil {
			return fmt.Errorf("write backup %s: %w", backupPath, backupErr)
		}
	}

	writeErr := os.WriteFile(path, cleaned, filePerm(path))
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", path, writeErr)
	}

	return nil
}

// writeOutput writes content under the output directory at rel.
func (r *Runner) writeOutput(rel, path string, content []byte) error {
	outPath := filepath.Join(r.opts.OutputDir, rel)

	mkdirErr := os.MkdirAll(filepath.Dir(outPath), 0o755)
	if mkdirErr != nil {
		return fmt.Errorf("create output dir: %w", mkdirErr)
	}

	writeErr := os.WriteFile(outPath, content, filePerm(path))
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", outPath, writeErr)
	}

	return nil
}

// printDiff writes a preview of the change for one file.
func (r *Runner) printDiff(path string, original, cleaned []byte) {
	if string(original) == string(cleaned) {
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(original), string(cleaned), false)

	fmt.Fprintf(r.diffOut, "--- %s\n", path)
	fmt.Fprintln(r.diffOut, dmp.DiffPrettyText(diffs))
}

// backupName returns the first free backup path for path. An existing
// backup from an earlier run is an original in its own right and is never
// overwritten; numbered candidates are tried instead.
func backupName(path, suffix string) (string, error) {
	candidate := path + suffix

	for i := 1; i <= maxBackupCandidates; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}

		if err != nil {
			return "", fmt.Errorf("stat backup %s: %w", candidate, err)
		}

		candidate = fmt.Sprintf("%s%s.%d", path, suffix, i)
	}

	return "", fmt.Errorf("%w for %s", errNoBackupName, path)
}

// relOrBase returns path relative to root, or its base name as a fallback.
func relOrBase(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}

	return rel
}

// filePerm returns the original file's permissions, defaulting to 0644.
func filePerm(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0o644
	}

	return info.Mode().Perm()
}
