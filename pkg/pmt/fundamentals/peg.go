// Package fundamentals derives a PEG-like valuation ratio for equity
// symbols. Index, rate and FX style symbols are skipped entirely, and any
// retrieval problem yields nil rather than a partial result.
package fundamentals

import (
	"context"
	"strings"

	"github.com/phuslu/log"

	"github.com/komsit37/pmt/pkg/pmt/yahoo"
)

// StatsProvider supplies valuation fields for a symbol.
type StatsProvider interface {
	KeyStats(ctx context.Context, symbol string) (yahoo.Stats, error)
}

// IsIndexLike reports whether a symbol names an index, rate or currency
// series by convention: a leading caret or an embedded "=" token. Such
// symbols have no meaningful earnings data.
func IsIndexLike(symbol string) bool {
	return strings.HasPrefix(symbol, "^") || strings.Contains(symbol, "=")
}

// Estimator computes PEG ratios with a published-value primary path and an
// EPS-growth fallback.
type Estimator struct {
	stats  StatsProvider
	logger log.Logger
}

func NewEstimator(stats StatsProvider, logger log.Logger) *Estimator {
	return &Estimator{stats: stats, logger: logger}
}

// EstimatePEG returns the instrument's PEG ratio, or nil when it cannot be
// obtained or is not meaningful.
//
// Primary path: the published PEG ratio (or its trailing-twelve-month
// variant, already coalesced by the provider). Fallback: trailing EPS,
// forward EPS and a P/E value must all be present; then
//
//	growth% = (forwardEPS - trailingEPS) / trailingEPS * 100
//	peg     = pe / growth%        (only when growth% > 0)
//
// A PEG against non-positive projected growth is meaningless, so that case
// is nil, not a negative ratio.
func (e *Estimator) EstimatePEG(ctx context.Context, symbol string) *float64 {
	if symbol == "" || IsIndexLike(symbol) {
		return nil
	}

	st, err := e.stats.KeyStats(ctx, symbol)
	if err != nil {
		e.logger.Debug().Str("sym", symbol).Err(err).Msg("peg lookup failed")
		return nil
	}

	if st.PEG != nil {
		return st.PEG
	}

	pe := st.TrailingPE
	if pe == nil {
		pe = st.ForwardPE
	}
	if pe == nil && st.Price != nil && st.TrailingEPS != nil && *st.TrailingEPS > 0 {
		derived := *st.Price / *st.TrailingEPS
		pe = &derived
	}

	if st.TrailingEPS == nil || st.ForwardEPS == nil || pe == nil || *st.TrailingEPS == 0 {
		return nil
	}
	growthPct := (*st.ForwardEPS - *st.TrailingEPS) / *st.TrailingEPS * 100
	if growthPct <= 0 {
		return nil
	}
	peg := *pe / growthPct
	return &peg
}
