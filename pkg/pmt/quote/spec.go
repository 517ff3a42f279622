package quote

import "strings"

// Kind selects how values for a watchlist entry are derived. Synthetic
// series are routed by prefix on the stored symbol string; everything else
// is a plain single-symbol lookup.
type Kind int

const (
	KindPlain Kind = iota
	KindVolatility
	KindSpread
	KindRatio
)

func (k Kind) String() string {
	switch k {
	case KindVolatility:
		return "volatility"
	case KindSpread:
		return "spread"
	case KindRatio:
		return "ratio"
	default:
		return "plain"
	}
}

// Synthetic reports whether the series is derived from raw histories rather
// than read directly.
func (k Kind) Synthetic() bool { return k != KindPlain }

// Spec is a parsed symbol string: a tagged fetch strategy plus its input
// symbols. Parsing happens once per entry so the rest of the code can
// switch on Kind instead of matching magic strings.
type Spec struct {
	Kind      Kind
	Primary   string
	Secondary string
	raw       string
}

// ParseSpec recognizes three sentinel prefixes:
//
//	vol:SYM         annualized-volatility proxy of SYM's daily returns
//	spread:LONG/SHORT  absolute difference of two yield series
//	ratio:A/B       ratio of two price series
//
// Anything else is a plain symbol. Malformed synthetic specs degrade to a
// plain lookup of the raw string, which then fails into the unavailable
// sentinel like any unknown ticker.
func ParseSpec(symbol string) Spec {
	raw := strings.TrimSpace(symbol)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "vol:"):
		sym := strings.TrimSpace(raw[len("vol:"):])
		if sym != "" {
			return Spec{Kind: KindVolatility, Primary: sym, raw: raw}
		}
	case strings.HasPrefix(lower, "spread:"):
		if a, b, ok := splitPair(raw[len("spread:"):]); ok {
			return Spec{Kind: KindSpread, Primary: a, Secondary: b, raw: raw}
		}
	case strings.HasPrefix(lower, "ratio:"):
		if a, b, ok := splitPair(raw[len("ratio:"):]); ok {
			return Spec{Kind: KindRatio, Primary: a, Secondary: b, raw: raw}
		}
	}
	return Spec{Kind: KindPlain, Primary: raw, raw: raw}
}

func splitPair(s string) (string, string, bool) {
	a, b, ok := strings.Cut(s, "/")
	if !ok {
		return "", "", false
	}
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// Key is the canonical cache key for this spec.
func (s Spec) Key() string { return s.raw }
