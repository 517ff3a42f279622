package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

func watchlistEntries() []types.Entry {
	return []types.Entry{
		{Name: "VIX", Symbol: "^VIX"},
		{Name: "Samsung Electronics", Symbol: "005930.KS"},
		{Name: "NVIDIA", Symbol: "NVDA"},
		{Name: "Dead", Symbol: "NOPE"},
	}
}

func watchlistResults() map[string]types.Result {
	return map[string]types.Result{
		"VIX":                 {Price: f64(18.2), ChangePct: 1.1},
		"Samsung Electronics": {Price: f64(182400), ChangePct: -0.4},
		"NVIDIA":              {Price: f64(131.5), ChangePct: 2.0, PEG: f64(1.7)},
	}
}

func TestWatchlistStackedNarrow(t *testing.T) {
	var sb strings.Builder
	Watchlist(&sb, watchlistEntries(), watchlistResults(), Options{Width: 80})
	out := sb.String()

	assert.Contains(t, out, "NVIDIA")
	assert.Contains(t, out, "182,400")
	assert.Contains(t, out, "131.50")
	assert.Contains(t, out, "1.70")
	// Two stacked halves means two header rows.
	assert.Equal(t, 2, strings.Count(out, "NAME"))
}

func TestWatchlistSideBySideWide(t *testing.T) {
	var narrow, wide strings.Builder
	Watchlist(&narrow, watchlistEntries(), watchlistResults(), Options{Width: 80})
	Watchlist(&wide, watchlistEntries(), watchlistResults(), Options{Width: 160})

	nl := strings.Count(strings.TrimRight(narrow.String(), "\n"), "\n")
	wl := strings.Count(strings.TrimRight(wide.String(), "\n"), "\n")
	assert.Less(t, wl, nl, "side-by-side layout merges the two halves line-wise")
	assert.Equal(t, 2, strings.Count(wide.String(), "NAME"))
}

func TestWatchlistUnavailableRowsDash(t *testing.T) {
	var sb strings.Builder
	Watchlist(&sb, []types.Entry{{Name: "Dead", Symbol: "NOPE"}}, map[string]types.Result{}, Options{})
	out := sb.String()

	require.Contains(t, out, "Dead")
	assert.Contains(t, out, "-", "unavailable rows render dashes, not errors")
}

func TestWatchlistEmpty(t *testing.T) {
	var sb strings.Builder
	Watchlist(&sb, nil, nil, Options{})
	assert.Contains(t, sb.String(), "watchlist is empty")
}

func TestNewsBlock(t *testing.T) {
	var sb strings.Builder
	News(&sb, []types.NewsItem{
		{Source: "KR Movers", Title: "headline one", Link: "http://x/1", Published: "2025-06-02 09:30"},
		{Source: "Yahoo Top", Title: "headline two", Link: "http://x/2"},
	})
	out := sb.String()

	assert.Contains(t, out, "[KR Movers]")
	assert.Contains(t, out, "headline one (2025-06-02 09:30)")
	assert.Contains(t, out, "headline two\n")
	assert.Contains(t, out, "http://x/2")
}

func TestNewsEmpty(t *testing.T) {
	var sb strings.Builder
	News(&sb, nil)
	assert.Contains(t, sb.String(), "no headlines")
}
