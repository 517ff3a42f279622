package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout bounds a single API call so a dead endpoint cannot
	// stall a whole refresh pass.
	DefaultTimeout = 8 * time.Second

	// DefaultRateLimit is the default request rate (requests per second).
	DefaultRateLimit = 5

	defaultUserAgent = "Mozilla/5.0 (compatible; pmt/1.0)"
)

// Client talks to the unauthenticated Yahoo Finance chart and quoteSummary
// endpoints. All methods are best-effort: callers are expected to convert
// errors into unavailable sentinels.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("path", path).Msg("yahoo api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo returned %s for %s", resp.Status, path)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// History returns daily closing prices for symbol over rng (for example
// "5d" or "1mo"), oldest first. Sessions with a null close are skipped.
func (c *Client) History(ctx context.Context, symbol, rng string) ([]float64, error) {
	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", "1d")

	var res chartResponse
	path := "/v8/finance/chart/" + url.PathEscape(symbol)
	if err := c.get(ctx, path, params, &res); err != nil {
		return nil, err
	}
	if res.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s", symbol, res.Chart.Error.Description)
	}
	if len(res.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}
	quotes := res.Chart.Result[0].Indicators.Quote
	if len(quotes) == 0 {
		return nil, fmt.Errorf("chart %s: no quote series", symbol)
	}

	closes := make([]float64, 0, len(quotes[0].Close))
	for _, v := range quotes[0].Close {
		if v == nil {
			continue
		}
		closes = append(closes, *v)
	}
	return closes, nil
}

// KeyStats returns the valuation fields used by the PEG estimator. Missing
// fields come back nil; only transport and decode problems are errors.
func (c *Client) KeyStats(ctx context.Context, symbol string) (Stats, error) {
	params := url.Values{}
	params.Set("modules", "defaultKeyStatistics,summaryDetail,financialData")

	var res quoteSummaryResponse
	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)
	if err := c.get(ctx, path, params, &res); err != nil {
		return Stats{}, err
	}
	if res.QuoteSummary.Error != nil {
		return Stats{}, fmt.Errorf("quoteSummary %s: %s", symbol, res.QuoteSummary.Error.Description)
	}
	if len(res.QuoteSummary.Result) == 0 {
		return Stats{}, fmt.Errorf("quoteSummary %s: empty result", symbol)
	}

	return res.QuoteSummary.Result[0].stats(), nil
}
