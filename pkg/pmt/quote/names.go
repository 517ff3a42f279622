package quote

import (
	"context"
	"time"

	yfgo "github.com/komsit37/yf-go"
)

// NameResolver looks up a display name for a plain symbol, used when an
// entry is added with only a ticker. Best-effort: an empty string means the
// caller should fall back to the symbol itself.
type NameResolver struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewNameResolver(timeout time.Duration) *NameResolver {
	return &NameResolver{client: yfgo.NewClient(), timeout: timeout}
}

func (r *NameResolver) Resolve(ctx context.Context, sym string) string {
	if sym == "" {
		return ""
	}
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil || res.Price == nil {
		return ""
	}
	if res.Price.ShortName != "" {
		return res.Price.ShortName
	}
	return res.Price.LongName
}
