package strip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable_Valid(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		".lisp": {"line_markers": [";"], "quotes": "\""},
		".pas":  {"blocks": [{"open": "{", "close": "}"}]}
	}`)

	entries, err := ParseTable(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, []string{";"}, entries[".lisp"].LineMarkers)
	assert.Equal(t, "{", entries[".pas"].Blocks[0].Open)
}

func TestParseTable_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "key without leading dot", data: `{"lisp": {"line_markers": [";"]}}`},
		{name: "block missing close", data: `{".pas": {"blocks": [{"open": "{"}]}}`},
		{name: "unknown field", data: `{".pas": {"regex": ".*"}}`},
		{name: "empty marker", data: `{".lisp": {"line_markers": [""]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTable([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestLoadTableFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "languages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{".nim": {"line_markers": ["#"]}}`), 0o644))

	entries, err := LoadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"#"}, entries[".nim"].LineMarkers)

	_, err = LoadTableFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestTable_MergeAndLookup(t *testing.T) {
	t.Parallel()

	table := NewTable()

	_, ok := table.Lookup(".zz")
	require.False(t, ok)

	table.Merge(map[string]Rules{"zz": {LineMarkers: []string{"%"}}})

	rules, ok := table.Lookup(".ZZ")
	require.True(t, ok)
	assert.Equal(t, []string{"%"}, rules.LineMarkers)
}
