package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	applogger "MarketPulse/pkg/logger"
)

// rateLimitMarker is the substring Alpha Vantage puts in the Note field when
// it throttles a key.
const rateLimitMarker = "API call frequency"

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidSymbol reports whether s is a well-formed ticker (1-5 uppercase letters).
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// Client implements a MarketDataSource backed by the Alpha Vantage REST API.
// It performs no retries; each call is bounded by its endpoint timeout and
// the outcome is classified for the caller to dispatch on.
type Client struct {
	apiKey       string
	baseURL      string
	quoteTimeout time.Duration
	chainTimeout time.Duration

	httpClient *http.Client
	logger     *applogger.Logger
	metrics    drepo.Metrics
}

// New creates a new Alpha Vantage MarketDataSource.
func New(apiKey, baseURL string, quoteTimeout, chainTimeout time.Duration, l *applogger.Logger, m drepo.Metrics) drepo.MarketDataSource {
	return &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		quoteTimeout: quoteTimeout,
		chainTimeout: chainTimeout,
		// Timeouts are enforced per call via context so the two endpoints
		// can carry different budgets on one client.
		httpClient: &http.Client{},
		logger:     l,
		metrics:    m,
	}
}

type timeSeriesResponse struct {
	Series models.TimeSeries `json:"Time Series (Daily)"`
	Note   string            `json:"Note"`
}

// FetchTimeSeries fetches the daily OHLCV series for a symbol.
func (c *Client) FetchTimeSeries(ctx context.Context, symbol string) models.TimeSeriesResult {
	start := time.Now()

	body, err := c.query(ctx, "TIME_SERIES_DAILY", symbol, c.quoteTimeout)
	if err != nil {
		return c.timeSeriesOutcome(symbol, models.TimeSeriesResult{Status: models.StatusTransient, Err: err}, start)
	}

	var resp timeSeriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// A 2xx with an undecodable body counts as missing data, not an outage.
		return c.timeSeriesOutcome(symbol, models.TimeSeriesResult{Status: models.StatusNotFound, Err: err}, start)
	}

	if strings.Contains(resp.Note, rateLimitMarker) {
		return c.timeSeriesOutcome(symbol, models.TimeSeriesResult{Status: models.StatusRateLimited}, start)
	}
	if len(resp.Series) == 0 {
		return c.timeSeriesOutcome(symbol, models.TimeSeriesResult{Status: models.StatusNotFound}, start)
	}

	return c.timeSeriesOutcome(symbol, models.TimeSeriesResult{Status: models.StatusSuccess, Series: resp.Series}, start)
}

type chainResponse struct {
	OptionChain struct {
		Result []models.RawChain `json:"result"`
	} `json:"optionChain"`
	Note string `json:"Note"`
}

// FetchOptionChain fetches the option chain for a symbol. Symbols failing the
// ticker pattern are rejected before any network call.
func (c *Client) FetchOptionChain(ctx context.Context, symbol string) models.ChainResult {
	start := time.Now()

	if !ValidSymbol(symbol) {
		return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusInvalidSymbol}, start)
	}

	body, err := c.query(ctx, "OPTION_CHAIN", symbol, c.chainTimeout)
	if err != nil {
		return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusTransient, Err: err}, start)
	}

	var resp chainResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusNotFound, Err: err}, start)
	}

	if strings.Contains(resp.Note, rateLimitMarker) {
		return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusRateLimited}, start)
	}
	if len(resp.OptionChain.Result) == 0 {
		return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusNotFound}, start)
	}

	return c.chainOutcome(symbol, models.ChainResult{Status: models.StatusSuccess, Raw: &resp.OptionChain.Result[0]}, start)
}

func (c *Client) query(ctx context.Context, function, symbol string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("alphavantage %s: unexpected status %d", function, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: read body: %w", function, err)
	}
	return body, nil
}

func (c *Client) timeSeriesOutcome(symbol string, res models.TimeSeriesResult, start time.Time) models.TimeSeriesResult {
	c.observe("time_series", symbol, res.Status, res.Err, start)
	return res
}

func (c *Client) chainOutcome(symbol string, res models.ChainResult, start time.Time) models.ChainResult {
	c.observe("option_chain", symbol, res.Status, res.Err, start)
	return res
}

func (c *Client) observe(endpoint, symbol string, status models.FetchStatus, err error, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordUpstream(endpoint, status)
		c.metrics.RecordLatency("upstream_"+endpoint, time.Since(start).Seconds())
	}
	if status != models.StatusSuccess && c.logger != nil {
		c.logger.Warn("upstream fetch degraded",
			applogger.String("endpoint", endpoint),
			applogger.String("symbol", symbol),
			applogger.String("outcome", status.String()),
			applogger.Error(err),
		)
	}
}
