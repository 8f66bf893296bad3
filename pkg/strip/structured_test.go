package strip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripPython(t *testing.T, input string) string {
	t.Helper()

	out, err := NewStructuredRemover().Strip(context.Background(), "test.py", []byte(input))
	require.NoError(t, err)

	return string(out)
}

func TestStructuredRemover_DocstringPreserved(t *testing.T) {
	t.Parallel()

	input := "def f():\n    \"\"\"doc\"\"\"\n    # drop me\n    return 1\n"
	want := "def f():\n    \"\"\"doc\"\"\"\n    return 1\n"

	assert.Equal(t, want, stripPython(t, input))
}

func TestStructuredRemover_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "whole line comment takes the line",
			input: "x = 1\n# gone\ny = 2\n",
			want:  "x = 1\ny = 2\n",
		},
		{
			name:  "trailing comment trims preceding whitespace",
			input: "x = 1  # set x\n",
			want:  "x = 1\n",
		},
		{
			name:  "marker inside string preserved",
			input: "x = \"a # b\"\n",
			want:  "x = \"a # b\"\n",
		},
		{
			name:  "comment at end of file without newline",
			input: "x = 1\n# tail",
			want:  "x = 1\n",
		},
		{
			name:  "module docstring survives leading comment",
			input: "# coding note\n\"\"\"module doc\"\"\"\nx = 1\n",
			want:  "\"\"\"module doc\"\"\"\nx = 1\n",
		},
		{
			name:  "class docstring preserved",
			input: "class C:\n    \"\"\"doc\"\"\"\n    # noise\n    pass\n",
			want:  "class C:\n    \"\"\"doc\"\"\"\n    pass\n",
		},
		{
			name:  "stray string elsewhere is ordinary code",
			input: "x = 1\n\"not a docstring\"\n# gone\n",
			want:  "x = 1\n\"not a docstring\"\n",
		},
		{
			name:  "indented comment inside plain suite",
			input: "if x:\n    # gone\n    y = 1\n",
			want:  "if x:\n    y = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, stripPython(t, tt.input))
		})
	}
}

func TestStructuredRemover_Idempotent(t *testing.T) {
	t.Parallel()

	input := "\"\"\"module doc\"\"\"\n# drop\ndef f():\n    \"\"\"doc\"\"\"\n    return 1  # trailing\n"

	once := stripPython(t, input)
	twice := stripPython(t, once)

	assert.Equal(t, once, twice)
}

func TestStructuredRemover_OutputReparses(t *testing.T) {
	t.Parallel()

	input := "def f():  # comment\n    \"\"\"doc\"\"\"\n    # drop\n    return 1\n"
	once := stripPython(t, input)

	// Cleaned output must itself be valid input for the structured pass.
	_, err := NewStructuredRemover().Strip(context.Background(), "test.py", []byte(once))
	require.NoError(t, err)
}

func TestStructuredRemover_ParseError(t *testing.T) {
	t.Parallel()

	_, err := NewStructuredRemover().Strip(context.Background(), "broken.py", []byte("def f(:\n"))
	require.Error(t, err)

	var parseErr *ParseError

	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "broken.py", parseErr.Path)
}
