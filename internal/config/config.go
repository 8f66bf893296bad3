package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/decomment/pkg/strip"
)

// Default configuration values.
const (
	DefaultBackupSuffix  = ".bak"
	DefaultOutputDir     = "processed_files"
	DefaultRepoOutputDir = "processed_repo"
	DefaultCommitMessage = "Remove comments"
	DefaultAuthorName    = "decomment"
	DefaultAuthorEmail   = "decomment@localhost"
)

// Report format names.
const (
	ReportNone = ""
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// ErrInvalidReportFormat indicates an unsupported report format value.
var ErrInvalidReportFormat = errors.New("invalid report format (want json or yaml)")

// Config is the top-level configuration struct for decomment.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Output        string                 `mapstructure:"output"`
	BackupSuffix  string                 `mapstructure:"backup_suffix"`
	Include       []string               `mapstructure:"include"`
	Exclude       []string               `mapstructure:"exclude"`
	Report        string                 `mapstructure:"report"`
	LanguageTable string                 `mapstructure:"language_table"`
	Languages     map[string]strip.Rules `mapstructure:"languages"`
	Git           GitConfig              `mapstructure:"git"`
}

// GitConfig holds settings for the repository mode.
type GitConfig struct {
	CommitMessage string `mapstructure:"commit_message"`
	AuthorName    string `mapstructure:"author_name"`
	AuthorEmail   string `mapstructure:"author_email"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Report {
	case ReportNone, ReportJSON, ReportYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, c.Report)
	}

	if len(c.Languages) > 0 {
		// Inline entries go through the same schema as table files.
		data, err := json.Marshal(c.Languages)
		if err != nil {
			return fmt.Errorf("encode languages: %w", err)
		}

		_, parseErr := strip.ParseTable(data)
		if parseErr != nil {
			return fmt.Errorf("languages: %w", parseErr)
		}
	}

	return nil
}

// TableEntries resolves the user's language table: entries from the
// configured table file first, inline entries on top.
func (c *Config) TableEntries() (map[string]strip.Rules, error) {
	entries := make(map[string]strip.Rules)

	if c.LanguageTable != "" {
		fromFile, err := strip.LoadTableFile(c.LanguageTable)
		if err != nil {
			return nil, err
		}

		for ext, rules := range fromFile {
			entries[ext] = rules
		}
	}

	for ext, rules := range c.Languages {
		entries[ext] = rules
	}

	return entries, nil
}
