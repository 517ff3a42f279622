// Package news refreshes the headline block from a small fixed set of RSS
// feeds. Per-source failures are swallowed independently: one dead feed
// must not blank out the others.
package news

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/phuslu/log"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

// DefaultPerSource caps how many entries are kept from each feed.
const DefaultPerSource = 4

// DefaultFeeds mirrors the dashboard's source set: Korean market movers,
// Yahoo top stories and a US macro search.
func DefaultFeeds() []types.FeedSource {
	return []types.FeedSource{
		{Label: "KR Movers", URL: "https://news.google.com/rss/search?q=%ED%8A%B9%EC%A7%95%EC%A3%BC+%EC%A3%BC%EC%8B%9D+%EA%B2%BD%EC%A0%9C+when:1d&hl=ko&gl=KR&ceid=KR:ko"},
		{Label: "Yahoo Top", URL: "https://finance.yahoo.com/rss/topstories"},
		{Label: "US Macro", URL: "https://news.google.com/rss/search?q=global+economy+market+when:1d&hl=en-US&gl=US&ceid=US:en"},
	}
}

// Fetcher pulls and trims headlines.
type Fetcher struct {
	parser    *gofeed.Parser
	perSource int
	timeout   time.Duration
	logger    log.Logger
}

func NewFetcher(perSource int, timeout time.Duration, logger log.Logger) *Fetcher {
	if perSource <= 0 {
		perSource = DefaultPerSource
	}
	return &Fetcher{parser: gofeed.NewParser(), perSource: perSource, timeout: timeout, logger: logger}
}

// FetchAll queries every feed and returns the combined headline list in
// source order, first perSource entries each. A failing source contributes
// nothing and is logged at debug level.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []types.FeedSource) []types.NewsItem {
	items := make([]types.NewsItem, 0, len(feeds)*f.perSource)
	for _, src := range feeds {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		feed, err := f.parser.ParseURLWithContext(src.URL, cctx)
		cancel()
		if err != nil {
			f.logger.Debug().Str("source", src.Label).Err(err).Msg("feed fetch failed")
			continue
		}
		for i, entry := range feed.Items {
			if i >= f.perSource {
				break
			}
			items = append(items, types.NewsItem{
				Source:    src.Label,
				Title:     entry.Title,
				Link:      entry.Link,
				Published: shortDate(entry),
			})
		}
	}
	return items
}

// shortDate keeps the leading chunk of the raw published string, enough for
// "Mon, 02 Jan 2006"; feeds without a date yield an empty string.
func shortDate(entry *gofeed.Item) string {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.Format("2006-01-02 15:04")
	}
	if len(entry.Published) > 16 {
		return entry.Published[:16]
	}
	return entry.Published
}
