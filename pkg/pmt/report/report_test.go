package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/pmt/pkg/pmt/score"
	"github.com/komsit37/pmt/pkg/pmt/types"
)

func f64(v float64) *float64 { return &v }

func baseInput() Input {
	return Input{
		GeneratedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Model:       ModelAutonomous,
		Algorithm:   AlgoQuant,
		Fear:        &Indicator{Name: "VIX", Change: 1.2},
		Sector:      &Indicator{Name: "Philadelphia Semi", Change: 0.4},
	}
}

func renderReport(t *testing.T, in Input) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Build(in).Write(&sb))
	return sb.String()
}

func TestBuildLabels(t *testing.T) {
	in := baseInput()
	in.Entries = []types.ScoredEntry{{Name: "NVIDIA", Symbol: "NVDA", Price: 100, Score: 76, Signal: types.SignalBuy}}
	r := Build(in)
	assert.Equal(t, score.SentimentRiskOff, r.MacroSentiment)
	assert.Equal(t, score.SectorStrong, r.SectorMomentum)
	assert.Empty(t, r.Advisory)
}

func TestBuildEmptySelectionSetsAdvisory(t *testing.T) {
	r := Build(baseInput())
	assert.Equal(t, noInstrumentsAdvisory, r.Advisory)
}

func TestBuildMissingGauges(t *testing.T) {
	in := baseInput()
	in.Fear = nil
	in.Sector = nil
	r := Build(in)
	assert.Equal(t, "no fear-gauge data this cycle", r.MacroSentiment)
	assert.Equal(t, "no sector-index data this cycle", r.SectorMomentum)
}

func TestWriteEmptySelectionAdvisory(t *testing.T) {
	out := renderReport(t, baseInput())

	assert.Contains(t, out, "No scoreable individual instrument in the current selection.")
	assert.NotContains(t, out, "-> score", "advisory replaces the bullet list, no empty list")
}

func TestWriteInstrumentBullets(t *testing.T) {
	in := baseInput()
	in.Entries = []types.ScoredEntry{{
		Name:      "NVIDIA",
		Symbol:    "NVDA",
		Price:     100,
		ChangePct: 2.0,
		PEG:       f64(0.8),
		Score:     76,
		Signal:    types.SignalBuy,
		Rationale: "momentum positive, PEG under 1",
	}}
	out := renderReport(t, in)

	assert.Contains(t, out, "NVIDIA (NVDA)")
	assert.Contains(t, out, "chg +2.00%")
	assert.Contains(t, out, "PEG 0.80")
	assert.Contains(t, out, "score 76/100, BUY")
	assert.NotContains(t, out, "No scoreable individual instrument")
}

func TestWriteBenchmarkLines(t *testing.T) {
	in := baseInput()
	in.Benchmarks = []Benchmark{
		{Name: "Samsung Electronics", Symbol: "005930.KS", Price: 190000, Reference: 182400},
		{Name: "Korea Aerospace", Symbol: "047810.KS", Price: 150000, Reference: 177100},
	}
	out := renderReport(t, in)

	assert.Contains(t, out, "Samsung Electronics: 190,000 is holding above the reference level 182,400.")
	assert.Contains(t, out, "Korea Aerospace: 150,000 is trading below the reference level 177,100.")
}

func TestWriteNoBenchmarksOmitsSection(t *testing.T) {
	out := renderReport(t, baseInput())
	assert.NotContains(t, out, "Benchmark levels")
}

func TestWriteHeaderAndFooter(t *testing.T) {
	out := renderReport(t, baseInput())

	assert.True(t, strings.HasPrefix(out, "=== AI ANALYSIS REPORT ==="))
	assert.Contains(t, out, "Generated: 2025-03-14 09:30:00")
	assert.Contains(t, out, "Model: Autonomous AI | Algorithm: Quant Analysis")
	assert.Contains(t, out, "Not investment advice.")
}

func TestParseModelAndAlgorithm(t *testing.T) {
	m, err := ParseModel("lstm")
	require.NoError(t, err)
	assert.Equal(t, ModelLSTM, m)

	_, err = ParseModel("nonsense")
	assert.Error(t, err)

	a, err := ParseAlgorithm("holly ai")
	require.NoError(t, err)
	assert.Equal(t, AlgoHolly, a)

	_, err = ParseAlgorithm("nope")
	assert.Error(t, err)
}
