package quote

import (
	"context"
	"math"

	"github.com/phuslu/log"
)

// tradingDays is the conventional annualization base for daily returns.
const tradingDays = 252

// Quote is one fetch outcome. Price nil means unavailable; ChangePct is the
// day-over-day movement in the unit of the series (percent for plain,
// volatility and ratio series; rate points for spreads).
type Quote struct {
	Price     *float64
	ChangePct float64
}

// Fetcher resolves a fetch spec to a quote. The bool result is false when
// no usable value could be produced; implementations never return errors
// because one bad symbol must not abort a refresh batch.
type Fetcher interface {
	Fetch(ctx context.Context, spec Spec) (Quote, bool)
}

// HistoryProvider supplies daily closing prices, oldest first.
type HistoryProvider interface {
	History(ctx context.Context, symbol, rng string) ([]float64, error)
}

// Ranges names the trailing windows requested from the history provider.
type Ranges struct {
	Short      string // plain, spread, ratio: needs at least 2 sessions
	Volatility string // volatility proxy: about a month of returns
}

// DefaultRanges uses 5 trading days for the short window so market holidays
// still leave two sessions, and a month for the volatility window.
func DefaultRanges() Ranges { return Ranges{Short: "5d", Volatility: "1mo"} }

// Service computes quotes from close histories.
type Service struct {
	hist   HistoryProvider
	ranges Ranges
	logger log.Logger
}

func NewService(hist HistoryProvider, ranges Ranges, logger log.Logger) *Service {
	if ranges.Short == "" {
		ranges.Short = DefaultRanges().Short
	}
	if ranges.Volatility == "" {
		ranges.Volatility = DefaultRanges().Volatility
	}
	return &Service{hist: hist, ranges: ranges, logger: logger}
}

// Fetch dispatches on the spec's kind. Failures are logged at debug level
// and swallowed into the unavailable sentinel.
func (s *Service) Fetch(ctx context.Context, spec Spec) (Quote, bool) {
	var (
		q   Quote
		ok  bool
		err error
	)
	switch spec.Kind {
	case KindVolatility:
		q, ok, err = s.fetchVolatility(ctx, spec.Primary)
	case KindSpread:
		q, ok, err = s.fetchSpread(ctx, spec.Primary, spec.Secondary)
	case KindRatio:
		q, ok, err = s.fetchRatio(ctx, spec.Primary, spec.Secondary)
	default:
		q, ok, err = s.fetchPlain(ctx, spec.Primary)
	}
	if err != nil {
		s.logger.Debug().Str("spec", spec.Key()).Err(err).Msg("fetch failed")
		return Quote{}, false
	}
	return q, ok
}

// fetchPlain reports the latest close and its percent change versus the
// prior session. A single observation yields change 0; none yields the
// unavailable sentinel.
func (s *Service) fetchPlain(ctx context.Context, symbol string) (Quote, bool, error) {
	closes, err := s.hist.History(ctx, symbol, s.ranges.Short)
	if err != nil {
		return Quote{}, false, err
	}
	switch {
	case len(closes) >= 2:
		latest := closes[len(closes)-1]
		prior := closes[len(closes)-2]
		return Quote{Price: &latest, ChangePct: pctChange(latest, prior)}, true, nil
	case len(closes) == 1:
		latest := closes[0]
		return Quote{Price: &latest}, true, nil
	default:
		return Quote{}, false, nil
	}
}

// fetchVolatility reports annualized volatility of daily percent returns
// over the trailing window: stdev(returns) * sqrt(252). Its change is
// the percent move of that figure versus the same calculation excluding the
// most recent return.
func (s *Service) fetchVolatility(ctx context.Context, symbol string) (Quote, bool, error) {
	closes, err := s.hist.History(ctx, symbol, s.ranges.Volatility)
	if err != nil {
		return Quote{}, false, err
	}
	returns := dailyReturns(closes)
	if len(returns) < 2 {
		return Quote{}, false, nil
	}
	vol := annualizedVol(returns)
	q := Quote{Price: &vol}
	if len(returns) >= 3 {
		prior := annualizedVol(returns[:len(returns)-1])
		if prior != 0 {
			q.ChangePct = pctChange(vol, prior)
		}
	}
	return q, true, nil
}

// fetchSpread reports latestLong - latestShort. The change is the absolute
// difference versus the previous session's spread, in rate points, not a
// percentage.
func (s *Service) fetchSpread(ctx context.Context, longSym, shortSym string) (Quote, bool, error) {
	long, err := s.hist.History(ctx, longSym, s.ranges.Short)
	if err != nil {
		return Quote{}, false, err
	}
	short, err := s.hist.History(ctx, shortSym, s.ranges.Short)
	if err != nil {
		return Quote{}, false, err
	}
	if len(long) == 0 || len(short) == 0 {
		return Quote{}, false, nil
	}
	value := long[len(long)-1] - short[len(short)-1]
	q := Quote{Price: &value}
	if len(long) >= 2 && len(short) >= 2 {
		prev := long[len(long)-2] - short[len(short)-2]
		q.ChangePct = value - prev
	}
	return q, true, nil
}

// fetchRatio reports priceA / priceB with an ordinary percent change of the
// ratio series.
func (s *Service) fetchRatio(ctx context.Context, symA, symB string) (Quote, bool, error) {
	a, err := s.hist.History(ctx, symA, s.ranges.Short)
	if err != nil {
		return Quote{}, false, err
	}
	b, err := s.hist.History(ctx, symB, s.ranges.Short)
	if err != nil {
		return Quote{}, false, err
	}
	if len(a) == 0 || len(b) == 0 || b[len(b)-1] == 0 {
		return Quote{}, false, nil
	}
	value := a[len(a)-1] / b[len(b)-1]
	q := Quote{Price: &value}
	if len(a) >= 2 && len(b) >= 2 && b[len(b)-2] != 0 {
		prev := a[len(a)-2] / b[len(b)-2]
		if prev != 0 {
			q.ChangePct = pctChange(value, prev)
		}
	}
	return q, true, nil
}

func pctChange(latest, prior float64) float64 {
	return (latest - prior) / prior * 100
}

// dailyReturns converts closes to percent day-over-day returns.
func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, pctChange(closes[i], closes[i-1]))
	}
	return out
}

// annualizedVol is stdev(returns) * sqrt(252), with returns already in
// percent. Sample standard deviation (n-1 denominator).
func annualizedVol(returns []float64) float64 {
	return stdev(returns) * math.Sqrt(tradingDays)
}

func stdev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
