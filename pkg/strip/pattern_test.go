package strip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripWithRules(t *testing.T, rules Rules, input string) string {
	t.Helper()

	out, err := NewPatternRemover(rules).Strip(context.Background(), "test", []byte(input))
	require.NoError(t, err)

	return string(out)
}

func TestPatternRemover_TrailingLineComment(t *testing.T) {
	t.Parallel()

	rules, ok := NewTable().Lookup(".c")
	require.True(t, ok)

	input := "int x = 5; // set x\nchar* s = \"http://a.com\";\n"
	want := "int x = 5; \nchar* s = \"http://a.com\";\n"

	assert.Equal(t, want, stripWithRules(t, rules, input))
}

func TestPatternRemover_MarkerInsideString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ext   string
		input string
		want  string
	}{
		{
			name:  "double slash in url literal",
			ext:   ".js",
			input: "const u = \"http://x\";\n",
			want:  "const u = \"http://x\";\n",
		},
		{
			name:  "hash inside shell string",
			ext:   ".sh",
			input: "x=\"a # b\" # real\n",
			want:  "x=\"a # b\" \n",
		},
		{
			name:  "block open inside string",
			ext:   ".c",
			input: "char* s = \"/* not a comment */\";\n",
			want:  "char* s = \"/* not a comment */\";\n",
		},
		{
			name:  "escaped quote keeps guard",
			ext:   ".c",
			input: "char* s = \"a\\\" // b\"; // real\n",
			want:  "char* s = \"a\\\" // b\"; \n",
		},
		{
			name:  "backtick literal guarded for go",
			ext:   ".go",
			input: "s := `a // b`\n",
			want:  "s := `a // b`\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules, ok := NewTable().Lookup(tt.ext)
			require.True(t, ok)

			assert.Equal(t, tt.want, stripWithRules(t, rules, tt.input))
		})
	}
}

func TestPatternRemover_BlockComments(t *testing.T) {
	t.Parallel()

	rules, ok := NewTable().Lookup(".c")
	require.True(t, ok)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line block",
			input: "a /* x */ b\n",
			want:  "a  b\n",
		},
		{
			name:  "multi line block",
			input: "a /* x\ny */ b\n",
			want:  "a  b\n",
		},
		{
			name:  "shortest span wins",
			input: "/* a */ keep /* b */\n",
			want:  " keep \n",
		},
		{
			name:  "unterminated block deletes to end of file",
			input: "int x;\n/* abc",
			want:  "int x;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, stripWithRules(t, rules, tt.input))
		})
	}
}

func TestPatternRemover_GenericFallback(t *testing.T) {
	t.Parallel()

	input := "<!-- note -->\nok"
	want := "\nok"

	assert.Equal(t, want, stripWithRules(t, GenericRules(), input))
}

func TestPatternRemover_GuardDesync(t *testing.T) {
	t.Parallel()

	rules, ok := NewTable().Lookup(".sh")
	require.True(t, ok)

	t.Run("desync on first line returns input unchanged", func(t *testing.T) {
		t.Parallel()

		input := "s='abc\nx=1 # c\n"

		assert.Equal(t, input, stripWithRules(t, rules, input))
	})

	t.Run("desync mid file stops modifying from that line", func(t *testing.T) {
		t.Parallel()

		input := "y=2 # t\ns='abc\nz=3 # u\n"
		want := "y=2 \ns='abc\nz=3 # u\n"

		assert.Equal(t, want, stripWithRules(t, rules, input))
	})

	t.Run("unterminated string at end of file", func(t *testing.T) {
		t.Parallel()

		input := "ok=1 # gone\nbroken=\"half"
		want := "ok=1 \nbroken=\"half"

		assert.Equal(t, want, stripWithRules(t, rules, input))
	})
}

func TestPatternRemover_NoRulesPassThrough(t *testing.T) {
	t.Parallel()

	input := "anything # at all // here\n"

	assert.Equal(t, input, stripWithRules(t, Rules{}, input))
}

func TestPatternRemover_WholeLineComment(t *testing.T) {
	t.Parallel()

	rules, ok := NewTable().Lookup(".go")
	require.True(t, ok)

	// Pattern pass deletes marker to end of line but keeps the newline.
	input := "// header\npackage main\n"
	want := "\npackage main\n"

	assert.Equal(t, want, stripWithRules(t, rules, input))
}
