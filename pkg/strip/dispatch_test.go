package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RoutesByExtension(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(NewTable())

	t.Run("python routes to structured", func(t *testing.T) {
		t.Parallel()

		_, ok := d.RemoverFor("pkg/mod.py").(*StructuredRemover)
		assert.True(t, ok)
		assert.True(t, d.Structured("PKG/MOD.PY"))
	})

	t.Run("known extension routes to its rules", func(t *testing.T) {
		t.Parallel()

		remover, ok := d.RemoverFor("main.c").(*PatternRemover)
		require.True(t, ok)
		assert.Contains(t, remover.Rules().LineMarkers, "//")
		assert.False(t, d.Structured("main.c"))
	})

	t.Run("unknown extension routes to generic", func(t *testing.T) {
		t.Parallel()

		remover, ok := d.RemoverFor("notes.xyz").(*PatternRemover)
		require.True(t, ok)
		assert.Equal(t, GenericRules(), remover.Rules())
	})

	t.Run("no extension routes to generic", func(t *testing.T) {
		t.Parallel()

		remover, ok := d.RemoverFor("Makefile").(*PatternRemover)
		require.True(t, ok)
		assert.Equal(t, GenericRules(), remover.Rules())
	})
}

func TestDispatcher_UserTableEntryWins(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Merge(map[string]Rules{
		".c": {LineMarkers: []string{";"}, Quotes: `"`},
	})

	d := NewDispatcher(table)

	remover, ok := d.RemoverFor("main.c").(*PatternRemover)
	require.True(t, ok)
	assert.Equal(t, []string{";"}, remover.Rules().LineMarkers)
}

func TestDispatcher_UserEntryOverridesStructured(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Merge(map[string]Rules{
		".py": {LineMarkers: []string{"#"}, Quotes: `"'`},
	})

	d := NewDispatcher(table)

	remover, ok := d.RemoverFor("mod.py").(*PatternRemover)
	require.True(t, ok)
	assert.Equal(t, []string{"#"}, remover.Rules().LineMarkers)
	assert.False(t, d.Structured("mod.py"))
}
