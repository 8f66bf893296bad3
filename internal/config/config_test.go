package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/decomment/pkg/strip"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}},
		{name: "json report", cfg: Config{Report: ReportJSON}},
		{name: "yaml report", cfg: Config{Report: ReportYAML}},
		{name: "bad report", cfg: Config{Report: "xml"}, wantErr: true},
		{
			name: "valid inline language",
			cfg: Config{Languages: map[string]strip.Rules{
				".lisp": {LineMarkers: []string{";"}},
			}},
		},
		{
			name: "invalid inline language",
			cfg: Config{Languages: map[string]strip.Rules{
				"lisp": {LineMarkers: []string{";"}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTableEntries_FileAndInlineMerge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.json")
	data := `{".lisp": {"line_markers": [";;"]}, ".pas": {"blocks": [{"open": "{", "close": "}"}]}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := Config{
		LanguageTable: path,
		Languages: map[string]strip.Rules{
			".lisp": {LineMarkers: []string{";"}},
		},
	}

	entries, err := cfg.TableEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Inline entries win over the table file.
	assert.Equal(t, []string{";"}, entries[".lisp"].LineMarkers)
	assert.Equal(t, "{", entries[".pas"].Blocks[0].Open)
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing config file uses defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
		// Explicit missing path is an error; implicit search is not.
		_ = cfg
		require.Error(t, err)
	})

	t.Run("explicit config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "conf.yaml")
		content := "backup_suffix: .orig\ngit:\n  commit_message: cleanup\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, ".orig", cfg.BackupSuffix)
		assert.Equal(t, "cleanup", cfg.Git.CommitMessage)
		// Untouched keys keep their defaults.
		assert.Equal(t, DefaultAuthorName, cfg.Git.AuthorName)
	})

	t.Run("invalid report value rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "conf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("report: xml\n"), 0o644))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidReportFormat)
	})
}
