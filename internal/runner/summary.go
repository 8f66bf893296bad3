package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// errUnknownReportFormat indicates an unsupported report serialization.
var errUnknownReportFormat = errors.New("unknown report format")

// Status classifies the outcome of one file.
type Status string

// File outcome values.
const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// FileResult records the outcome of one file.
type FileResult struct {
	Path         string `json:"path"                    yaml:"path"`
	Language     string `json:"language,omitempty"      yaml:"language,omitempty"`
	Status       Status `json:"status"                  yaml:"status"`
	Reason       string `json:"reason,omitempty"        yaml:"reason,omitempty"`
	BytesRemoved int64  `json:"bytes_removed,omitempty" yaml:"bytes_removed,omitempty"`
}

// Summary aggregates the outcome of a run.
type Summary struct {
	RunID        string       `json:"run_id"        yaml:"run_id"`
	StartedAt    time.Time    `json:"started_at"    yaml:"started_at"`
	Processed    int          `json:"processed"     yaml:"processed"`
	Skipped      int          `json:"skipped"       yaml:"skipped"`
	Failed       int          `json:"failed"        yaml:"failed"`
	BytesRemoved int64        `json:"bytes_removed" yaml:"bytes_removed"`
	Files        []FileResult `json:"files"         yaml:"files"`
}

// NewSummary creates an empty summary tagged with a fresh run ID.
func NewSummary() *Summary {
	return &Summary{
		RunID:     ulid.Make().String(),
		StartedAt: time.Now().UTC(),
	}
}

// Add records one file outcome.
func (s *Summary) Add(result FileResult) {
	s.Files = append(s.Files, result)

	switch result.Status {
	case StatusProcessed:
		s.Processed++
		s.BytesRemoved += result.BytesRemoved
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Merge folds another summary's files into this one.
func (s *Summary) Merge(other *Summary) {
	for _, result := range other.Files {
		s.Add(result)
	}
}

// Render writes the human-readable run summary: a table of skipped and
// failed files, then one totals line.
func (s *Summary) Render(w io.Writer) {
	if s.Skipped > 0 || s.Failed > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"File", "Status", "Detail"})

		for _, result := range s.Files {
			if result.Status == StatusProcessed {
				continue
			}

			tw.AppendRow(table.Row{result.Path, statusLabel(result.Status), result.Reason})
		}

		tw.Render()
	}

	fmt.Fprintf(w, "%d processed, %d skipped, %d failed; %s of comments removed\n",
		s.Processed, s.Skipped, s.Failed, humanize.Bytes(uint64(max(s.BytesRemoved, 0))))
}

// statusLabel colors a status for terminal display.
func statusLabel(status Status) string {
	switch status {
	case StatusProcessed:
		return color.GreenString(string(status))
	case StatusSkipped:
		return color.YellowString(string(status))
	case StatusFailed:
		return color.RedString(string(status))
	default:
		return string(status)
	}
}

// WriteReport serializes the summary in the requested format.
func (s *Summary) WriteReport(w io.Writer, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		_, writeErr := fmt.Fprintln(w, string(data))
		if writeErr != nil {
			return fmt.Errorf("write report: %w", writeErr)
		}

		return nil
	case "yaml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		_, writeErr := w.Write(data)
		if writeErr != nil {
			return fmt.Errorf("write report: %w", writeErr)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownReportFormat, format)
	}
}
