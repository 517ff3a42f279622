// Package score turns fetched results into a bounded heuristic score and a
// discrete signal per selected instrument, and classifies macro sentiment
// from the reference indicators. All of it is fixed-threshold arithmetic;
// there is no model behind it.
package score

import (
	"math"
	"strings"

	"github.com/komsit37/pmt/pkg/pmt/fundamentals"
	"github.com/komsit37/pmt/pkg/pmt/quote"
	"github.com/komsit37/pmt/pkg/pmt/types"
)

// RuleSet selects which PEG adjustment table applies. The two tables come
// from different revisions of the dashboard and are kept as distinct,
// selectable variants rather than merged.
type RuleSet int

const (
	// RulesClassic: PEG < 1 adds 20 (undervalued), PEG > 2 subtracts 15
	// (overvalued), anything between is neutral.
	RulesClassic RuleSet = iota
	// RulesStrict: PEG < 1 adds 20, exactly 1 adds 5 (fairly valued), and
	// anything above 1 subtracts 15.
	RulesStrict
)

// ParseRuleSet maps a config string to a rule set, defaulting to classic.
func ParseRuleSet(s string) RuleSet {
	if strings.EqualFold(strings.TrimSpace(s), "strict") {
		return RulesStrict
	}
	return RulesClassic
}

func (r RuleSet) String() string {
	if r == RulesStrict {
		return "strict"
	}
	return "classic"
}

// macroKeywords marks display names that denote broad market gauges rather
// than individual instruments.
var macroKeywords = []string{
	"vix", "volatility", "vol index",
	"semi", "sox", "sector", "index",
	"rate", "treasury", "bond", "yield", "spread",
	"usd", "krw", "jpy", "eur", "fx", "currency",
	"gold", "oil", "commodity",
	"ratio", "risk-on",
}

// IsMacro reports whether an entry is a macro indicator: matched by name
// keyword, by index/rate/FX symbol convention, or by being a synthetic
// series. Macro entries are excluded from per-instrument scoring.
func IsMacro(name, symbol string) bool {
	lower := strings.ToLower(name)
	for _, kw := range macroKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	spec := quote.ParseSpec(symbol)
	if spec.Kind.Synthetic() {
		return true
	}
	return fundamentals.IsIndexLike(spec.Primary)
}

type pegBucket int

const (
	pegNone pegBucket = iota
	pegUnder
	pegFair
	pegOver
)

// Score computes the bounded heuristic score, the display signal and a
// one-line rationale for one instrument result.
//
//	base  = 50 + change% * 3
//	final = clamp(round(base + peg adjustment), 0, 100)
//
// Signal overrides are evaluated after the PEG adjustment and take
// precedence in display only: change% > 3 is a strong buy, change% < -3 is
// risk-off, otherwise the PEG bucket decides buy/sell/hold.
func Score(r types.Result, rules RuleSet) (int, types.Signal, string) {
	base := 50 + r.ChangePct*3

	bucket := pegNone
	var adj float64
	if r.PEG != nil {
		p := *r.PEG
		switch rules {
		case RulesStrict:
			switch {
			case p < 1:
				bucket, adj = pegUnder, 20
			case p == 1:
				bucket, adj = pegFair, 5
			default:
				bucket, adj = pegOver, -15
			}
		default:
			switch {
			case p < 1:
				bucket, adj = pegUnder, 20
			case p > 2:
				bucket, adj = pegOver, -15
			}
		}
	}

	final := int(math.Round(base + adj))
	if final > 100 {
		final = 100
	}
	if final < 0 {
		final = 0
	}

	sig, rationale := signalFor(r.ChangePct, bucket)
	return final, sig, rationale
}

func signalFor(changePct float64, bucket pegBucket) (types.Signal, string) {
	switch {
	case changePct > 3.0:
		return types.SignalStrongBuy, "momentum breakout above the daily threshold"
	case changePct < -3.0:
		return types.SignalRiskOff, "sharp pullback beyond the daily threshold"
	}
	switch bucket {
	case pegUnder:
		return types.SignalBuy, "undervalued relative to projected growth"
	case pegOver:
		return types.SignalSell, "overvalued relative to projected growth"
	case pegFair:
		return types.SignalHold, "fairly valued against projected growth"
	default:
		return types.SignalHold, "no valuation edge; tracking momentum only"
	}
}

// Selection scores the selected non-macro entries in watchlist order.
// Entries whose last fetch was unavailable are skipped; an empty return is
// a normal outcome the report renders as an advisory line.
func Selection(entries []types.Entry, results map[string]types.Result, selected map[string]bool, rules RuleSet) []types.ScoredEntry {
	var out []types.ScoredEntry
	for _, e := range entries {
		if !selected[e.Name] || IsMacro(e.Name, e.Symbol) {
			continue
		}
		r, ok := results[e.Name]
		if !ok || !r.Available() {
			continue
		}
		sc, sig, why := Score(r, rules)
		out = append(out, types.ScoredEntry{
			Name:      e.Name,
			Symbol:    e.Symbol,
			Price:     *r.Price,
			ChangePct: r.ChangePct,
			PEG:       r.PEG,
			Score:     sc,
			Signal:    sig,
			Rationale: why,
		})
	}
	return out
}

// Sentiment labels for the macro classification.
const (
	SentimentRiskOff = "risk-off: defensive positioning"
	SentimentRiskOn  = "risk-on appetite recovering"
)

// MacroSentiment classifies the fear gauge: a rising fear index is
// risk-off. When the gauge is a risk-on ratio series the sign flips: a
// falling ratio is risk-off. A single binary classification, not a score.
func MacroSentiment(fearChange float64, ratioGauge bool) string {
	if ratioGauge {
		if fearChange < 0 {
			return SentimentRiskOff
		}
		return SentimentRiskOn
	}
	if fearChange > 0 {
		return SentimentRiskOff
	}
	return SentimentRiskOn
}

// Sector momentum labels derived from the sector reference index change.
const (
	SectorWeak   = "distribution risk; flows leaving the sector"
	SectorStrong = "strong upside momentum, trading in sync"
)

// SectorMomentum classifies the sector reference change sign.
func SectorMomentum(sectorChange float64) string {
	if sectorChange < 0 {
		return SectorWeak
	}
	return SectorStrong
}
