package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

func f64(v float64) *float64 { return &v }

func result(price, chg float64, peg *float64) types.Result {
	return types.Result{Price: &price, ChangePct: chg, PEG: peg}
}

func TestScoreMonotonicInChange(t *testing.T) {
	up, _, _ := Score(result(100, 5, nil), RulesClassic)
	flat, _, _ := Score(result(100, 0, nil), RulesClassic)
	down, _, _ := Score(result(100, -5, nil), RulesClassic)

	if !(up > flat && flat > down) {
		t.Fatalf("expected score(+5) > score(0) > score(-5), got %d, %d, %d", up, flat, down)
	}
}

func TestScoreClamped(t *testing.T) {
	high, _, _ := Score(result(100, 50, nil), RulesClassic)
	assert.Equal(t, 100, high)

	low, _, _ := Score(result(100, -50, nil), RulesClassic)
	assert.Equal(t, 0, low)
}

func TestScoreClassicPEGAdjustment(t *testing.T) {
	tests := []struct {
		name string
		chg  float64
		peg  *float64
		want int
		sig  types.Signal
	}{
		{"undervalued bonus", 2.0, f64(0.8), 76, types.SignalBuy},
		{"overvalued penalty", 0, f64(2.5), 35, types.SignalSell},
		{"neutral band", 0, f64(1.5), 50, types.SignalHold},
		{"no peg", 0, nil, 50, types.SignalHold},
		{"strong buy overrides peg", 4.0, f64(2.5), 47, types.SignalStrongBuy},
		{"risk-off overrides peg", -4.0, f64(0.5), 58, types.SignalRiskOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, sig, why := Score(result(100, tt.chg, tt.peg), RulesClassic)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.sig, sig)
			assert.NotEmpty(t, why)
		})
	}
}

func TestScoreStrictPEGAdjustment(t *testing.T) {
	tests := []struct {
		name string
		peg  *float64
		want int
	}{
		{"undervalued", f64(0.8), 70},
		{"exactly fair", f64(1.0), 55},
		{"above one penalized", f64(1.2), 35},
		{"far above one same penalty", f64(3.0), 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := Score(result(100, 0, tt.peg), RulesStrict)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRuleSet(t *testing.T) {
	assert.Equal(t, RulesStrict, ParseRuleSet("strict"))
	assert.Equal(t, RulesStrict, ParseRuleSet(" STRICT "))
	assert.Equal(t, RulesClassic, ParseRuleSet("classic"))
	assert.Equal(t, RulesClassic, ParseRuleSet(""))
	assert.Equal(t, RulesClassic, ParseRuleSet("anything else"))
}

func TestIsMacro(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   bool
	}{
		{"VIX", "^VIX", true},
		{"B", "^VIX", true}, // symbol convention catches unnamed gauges
		{"Philadelphia Semi", "^SOX", true},
		{"USD/KRW", "KRW=X", true},
		{"US 10Y Treasury", "^TNX", true},
		{"Realized Vol", "vol:^GSPC", true},
		{"Curve", "spread:^TNX/^FVX", true},
		{"Risk Appetite", "ratio:SPY/TLT", true},
		{"NVIDIA", "NVDA", false},
		{"Samsung Electronics", "005930.KS", false},
		{"A", "AAA", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMacro(tt.name, tt.symbol); got != tt.want {
				t.Errorf("IsMacro(%q, %q) = %v, want %v", tt.name, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestSelectionScoresOnlySelectedInstruments(t *testing.T) {
	entries := []types.Entry{
		{Name: "A", Symbol: "AAA"},
		{Name: "B", Symbol: "^VIX"},
		{Name: "C", Symbol: "CCC"},
	}
	results := map[string]types.Result{
		"A": result(100, 2.0, f64(0.8)),
		"B": result(20, 1.0, nil),
		"C": result(50, 1.0, nil),
	}

	scored := Selection(entries, results, map[string]bool{"A": true, "B": true}, RulesClassic)
	assert.Len(t, scored, 1, "macro entry B must be filtered, C is unselected")
	assert.Equal(t, "A", scored[0].Name)
	assert.Equal(t, 76, scored[0].Score)
	assert.Equal(t, types.SignalBuy, scored[0].Signal)
}

func TestSelectionSkipsUnavailable(t *testing.T) {
	entries := []types.Entry{{Name: "A", Symbol: "AAA"}}
	results := map[string]types.Result{"A": {}}

	scored := Selection(entries, results, map[string]bool{"A": true}, RulesClassic)
	assert.Empty(t, scored)
}

func TestMacroSentiment(t *testing.T) {
	assert.Equal(t, SentimentRiskOff, MacroSentiment(1.2, false))
	assert.Equal(t, SentimentRiskOn, MacroSentiment(-0.5, false))
	assert.Equal(t, SentimentRiskOn, MacroSentiment(0, false))

	// Risk-on ratio gauge flips the sign.
	assert.Equal(t, SentimentRiskOff, MacroSentiment(-0.5, true))
	assert.Equal(t, SentimentRiskOn, MacroSentiment(1.2, true))
}

func TestSectorMomentum(t *testing.T) {
	assert.Equal(t, SectorWeak, SectorMomentum(-0.3))
	assert.Equal(t, SectorStrong, SectorMomentum(0.3))
}
