package types

// Entry is one watchlist row: a user-chosen display name bound to a symbol.
// The name is the lookup key everywhere; the symbol may be a plain ticker or
// a synthetic-series spec understood by the quote package.
type Entry struct {
	Name   string
	Symbol string
}

// Result holds the latest fetched values for one entry, keyed by display
// name in the session's results map. A nil Price means the fetch produced
// nothing usable this cycle; callers render that as unavailable rather than
// treating it as an error.
type Result struct {
	Price     *float64
	ChangePct float64
	PEG       *float64
}

// Available reports whether the last fetch produced a usable price.
func (r Result) Available() bool { return r.Price != nil }

// NewsItem is a single headline. The list is replaced wholesale on every
// news refresh; nothing is persisted or deduplicated.
type NewsItem struct {
	Source    string
	Title     string
	Link      string
	Published string
}

// FeedSource names one RSS endpoint for the news refresh.
type FeedSource struct {
	Label string `mapstructure:"label" yaml:"label"`
	URL   string `mapstructure:"url" yaml:"url"`
}

// Signal is the discrete per-instrument call shown in the report. It is
// derived after scoring and takes precedence in display only; the numeric
// score is unaffected by it.
type Signal string

const (
	SignalStrongBuy Signal = "STRONG BUY"
	SignalBuy       Signal = "BUY"
	SignalHold      Signal = "HOLD"
	SignalSell      Signal = "SELL"
	SignalRiskOff   Signal = "RISK-OFF"
)

// ScoredEntry is the derived, never-persisted output of the scoring pass
// for one selected non-macro instrument.
type ScoredEntry struct {
	Name      string
	Symbol    string
	Price     float64
	ChangePct float64
	PEG       *float64
	Score     int
	Signal    Signal
	Rationale string
}
