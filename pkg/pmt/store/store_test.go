package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

func newTestStore(t *testing.T, entries []types.Entry) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.entries = nil
	for _, e := range entries {
		require.NoError(t, s.Upsert(e.Name, e.Symbol))
	}
	return s
}

func names(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func abcd() []types.Entry {
	return []types.Entry{
		{Name: "A", Symbol: "AAA"},
		{Name: "B", Symbol: "BBB"},
		{Name: "C", Symbol: "CCC"},
		{Name: "D", Symbol: "DDD"},
	}
}

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultEntries(), s.Entries())

	// Defaults only reach disk on the first mutation.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveLoadRoundTripPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.entries = nil // drop the seeded defaults
	require.NoError(t, s.Upsert("Zeta", "ZZZ"))
	require.NoError(t, s.Upsert("Alpha", "AAA"))
	require.NoError(t, s.Upsert("Mid", "MMM"))

	re, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names(re.Entries()),
		"JSON object member order must survive the round trip")
}

func TestUpsertExistingKeepsPosition(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Upsert("B", "NEW"))

	assert.Equal(t, []string{"A", "B", "C", "D"}, names(s.Entries()))
	sym, ok := s.Symbol("B")
	require.True(t, ok)
	assert.Equal(t, "NEW", sym)
}

func TestUpsertIgnoresIncompleteInput(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Upsert("", "SYM"))
	require.NoError(t, s.Upsert("Name", ""))
	assert.Equal(t, 4, s.Len())
}

func TestMoveUpSinglePass(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Move(map[string]bool{"C": true}, Up))
	assert.Equal(t, []string{"A", "C", "B", "D"}, names(s.Entries()),
		"one up call is one adjacent swap, not a move to the top")
}

func TestMoveUpConvergesOverRepeatedCalls(t *testing.T) {
	s := newTestStore(t, abcd())
	sel := map[string]bool{"C": true}
	require.NoError(t, s.Move(sel, Up))
	require.NoError(t, s.Move(sel, Up))
	assert.Equal(t, []string{"C", "A", "B", "D"}, names(s.Entries()))
	// A third call is a no-op swap-wise: nothing non-selected above C.
	require.NoError(t, s.Move(sel, Up))
	assert.Equal(t, []string{"C", "A", "B", "D"}, names(s.Entries()))
}

func TestMoveDownSinglePass(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Move(map[string]bool{"B": true}, Down))
	assert.Equal(t, []string{"A", "C", "B", "D"}, names(s.Entries()))
}

func TestMoveTopIsOneShot(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Move(map[string]bool{"B": true, "D": true}, Top))
	assert.Equal(t, []string{"B", "D", "A", "C"}, names(s.Entries()),
		"top is a one-shot stable partition")
}

func TestMoveBottomIsOneShot(t *testing.T) {
	s := newTestStore(t, abcd())
	require.NoError(t, s.Move(map[string]bool{"A": true, "C": true}, Bottom))
	assert.Equal(t, []string{"B", "D", "A", "C"}, names(s.Entries()))
}

func TestMoveEmptySelectionIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Move(nil, Top))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no-op move must not persist")
}

func TestDeleteReturnsRemovedNames(t *testing.T) {
	s := newTestStore(t, abcd())
	removed, err := s.Delete(map[string]bool{"B": true, "D": true, "Ghost": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, removed)
	assert.Equal(t, []string{"A", "C"}, names(s.Entries()))
}

func TestMutationsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.entries = nil
	for _, e := range abcd() {
		require.NoError(t, s.Upsert(e.Name, e.Symbol))
	}
	require.NoError(t, s.Move(map[string]bool{"D": true}, Top))
	_, err = s.Delete(map[string]bool{"B": true})
	require.NoError(t, err)

	re, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "A", "C"}, names(re.Entries()))
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte(`["not","an","object"]`), 0o644))
	_, err := Open(path)
	assert.Error(t, err, "a present but malformed file must not be shadowed by defaults")
}
