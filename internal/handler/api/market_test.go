package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/synth"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	"MarketPulse/pkg/logger"
)

type stubSource struct {
	seriesRes models.TimeSeriesResult
	chainRes  models.ChainResult
}

func (s *stubSource) FetchTimeSeries(context.Context, string) models.TimeSeriesResult {
	return s.seriesRes
}

func (s *stubSource) FetchOptionChain(context.Context, string) models.ChainResult {
	return s.chainRes
}

type stubMetrics struct{}

func (stubMetrics) RecordUpstream(string, models.FetchStatus) {}
func (stubMetrics) RecordCache(string, string)                {}
func (stubMetrics) RecordSynthetic(string)                    {}
func (stubMetrics) RecordPrediction(string)                   {}
func (stubMetrics) RecordLatency(string, float64)             {}

func newTestEcho(t *testing.T, src *stubSource) *echo.Echo {
	t.Helper()
	store := cache.NewMemory()
	t.Cleanup(func() { store.Close() })

	syn := synth.New(synth.WithRand(rand.New(rand.NewSource(1))))
	market := usecase.NewMarketDataUsecase(src, store, syn, nil, nil, stubMetrics{}, logger.Nop(), 10*time.Minute, 5*time.Minute)

	e := echo.New()
	NewMarketHandler(market, nil, nil).RegisterRoutes(e)
	return e
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRootEndpoint(t *testing.T) {
	e := newTestEcho(t, &stubSource{})
	rec := doGet(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data rootResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "running", data.Status)
}

func TestGetStockSuccess(t *testing.T) {
	src := &stubSource{seriesRes: models.TimeSeriesResult{
		Status: models.StatusSuccess,
		Series: models.TimeSeries{"2026-08-28": {Close: "151.20"}},
	}}
	e := newTestEcho(t, src)

	rec := doGet(e, "/api/stock/aapl")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data stockResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "AAPL", data.Symbol, "symbols are normalized to upper case")
}

func TestGetStockRateLimited(t *testing.T) {
	src := &stubSource{seriesRes: models.TimeSeriesResult{Status: models.StatusRateLimited}}
	e := newTestEcho(t, src)

	rec := doGet(e, "/api/stock/AAPL")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UPSTREAM_RATE_LIMITED")
	assert.Contains(t, rec.Body.String(), "API limit reached")
}

func TestGetStockNotFound(t *testing.T) {
	src := &stubSource{seriesRes: models.TimeSeriesResult{Status: models.StatusNotFound}}
	e := newTestEcho(t, src)

	rec := doGet(e, "/api/stock/ZZZZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOptionsServesSyntheticOnThrottle(t *testing.T) {
	src := &stubSource{chainRes: models.ChainResult{Status: models.StatusRateLimited}}
	e := newTestEcho(t, src)

	rec := doGet(e, "/api/options/AAPL")
	require.Equal(t, http.StatusOK, rec.Code, "throttled upstream still yields a chain")

	env := decodeEnvelope(t, rec)
	var chain models.OptionChain
	require.NoError(t, json.Unmarshal(env.Data, &chain))
	assert.True(t, chain.IsMockData)
	assert.Equal(t, 150.0, chain.SpotPrice)
	assert.Len(t, chain.Calls, 21)
	assert.NotEmpty(t, chain.Patterns)
}

func TestGetOptionsInvalidSymbol(t *testing.T) {
	src := &stubSource{chainRes: models.ChainResult{Status: models.StatusInvalidSymbol}}
	e := newTestEcho(t, src)

	rec := doGet(e, "/api/options/TOOLONGNAME")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INVALID_SYMBOL")
}
