// Package refresh owns the per-session mutable state: the cached results
// map, the headline list and the refresh timestamps. State lives for one
// process and is rebuilt from the external services on demand; only the
// watchlist itself is persisted, by its own store.
package refresh

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"github.com/komsit37/pmt/pkg/pmt/fundamentals"
	"github.com/komsit37/pmt/pkg/pmt/quote"
	"github.com/komsit37/pmt/pkg/pmt/store"
	"github.com/komsit37/pmt/pkg/pmt/types"
)

// PEGEstimator mirrors fundamentals.Estimator for injection in tests.
type PEGEstimator interface {
	EstimatePEG(ctx context.Context, symbol string) *float64
}

// NewsFetcher mirrors news.Fetcher.
type NewsFetcher interface {
	FetchAll(ctx context.Context, feeds []types.FeedSource) []types.NewsItem
}

// Session wires the store and the fetch services together and holds
// everything a render or report pass reads. Single goroutine per the
// request/response model; no internal locking.
type Session struct {
	Store        *store.Store
	Quotes       quote.Fetcher
	Fundamentals PEGEstimator
	News         NewsFetcher
	Feeds        []types.FeedSource
	Logger       log.Logger

	results    map[string]types.Result
	headlines  []types.NewsItem
	lastUpdate time.Time
	newsUpdate time.Time
}

func NewSession(st *store.Store, quotes quote.Fetcher, fund PEGEstimator, news NewsFetcher, feeds []types.FeedSource, logger log.Logger) *Session {
	return &Session{
		Store:        st,
		Quotes:       quotes,
		Fundamentals: fund,
		News:         news,
		Feeds:        feeds,
		Logger:       logger,
		results:      map[string]types.Result{},
	}
}

// RefreshAll walks the watchlist in order and rebuilds the whole results
// map. The fresh map fully replaces the previous one, so entries for
// since-deleted names disappear. Individual fetch failures leave an
// unavailable Result for that name and never abort the pass.
func (s *Session) RefreshAll(ctx context.Context) {
	entries := s.Store.Entries()
	fresh := make(map[string]types.Result, len(entries))
	for _, e := range entries {
		fresh[e.Name] = s.fetchOne(ctx, e)
	}
	s.results = fresh
	s.lastUpdate = time.Now()
	s.Logger.Debug().Int("entries", len(fresh)).Msg("refresh complete")
}

// PatchEntry fetches a single entry immediately after an add or modify so
// the new row shows data without a full refresh. Returns false when the
// name is not in the watchlist.
func (s *Session) PatchEntry(ctx context.Context, name string) bool {
	sym, ok := s.Store.Symbol(name)
	if !ok {
		return false
	}
	s.results[name] = s.fetchOne(ctx, types.Entry{Name: name, Symbol: sym})
	return true
}

func (s *Session) fetchOne(ctx context.Context, e types.Entry) types.Result {
	spec := quote.ParseSpec(e.Symbol)
	q, ok := s.Quotes.Fetch(ctx, spec)
	if !ok {
		return types.Result{}
	}
	r := types.Result{Price: q.Price, ChangePct: q.ChangePct}
	if spec.Kind == quote.KindPlain && !fundamentals.IsIndexLike(spec.Primary) {
		r.PEG = s.Fundamentals.EstimatePEG(ctx, spec.Primary)
	}
	return r
}

// RefreshNews replaces the headline list wholesale.
func (s *Session) RefreshNews(ctx context.Context) {
	s.headlines = s.News.FetchAll(ctx, s.Feeds)
	s.newsUpdate = time.Now()
}

// DropResults removes cached results for deleted names.
func (s *Session) DropResults(names []string) {
	for _, n := range names {
		delete(s.results, n)
	}
}

// Result returns the cached result for a display name.
func (s *Session) Result(name string) (types.Result, bool) {
	r, ok := s.results[name]
	return r, ok
}

// Results returns the full results map. Callers treat it as read-only.
func (s *Session) Results() map[string]types.Result { return s.results }

// Headlines returns the current news list.
func (s *Session) Headlines() []types.NewsItem { return s.headlines }

// Refreshed reports whether at least one full refresh has completed.
func (s *Session) Refreshed() bool { return !s.lastUpdate.IsZero() }

// LastUpdate is the timestamp of the last full refresh (zero before the
// first one).
func (s *Session) LastUpdate() time.Time { return s.lastUpdate }

// NewsUpdate is the timestamp of the last news refresh.
func (s *Session) NewsUpdate() time.Time { return s.newsUpdate }
