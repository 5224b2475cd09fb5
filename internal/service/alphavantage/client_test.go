package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	c := New("demo", baseURL, 2*time.Second, 2*time.Second, logger.Nop(), nil)
	return c.(*Client)
}

func TestValidSymbol(t *testing.T) {
	valid := []string{"A", "AAPL", "GOOGL"}
	for _, s := range valid {
		assert.True(t, ValidSymbol(s), s)
	}
	invalid := []string{"", "aapl", "TOOLONG", "BRK.B", "1BM", "AAPL "}
	for _, s := range invalid {
		assert.False(t, ValidSymbol(s), s)
	}
}

func TestFetchTimeSeriesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2026-08-28": {"1. open": "150.00", "2. high": "152.30", "3. low": "149.10", "4. close": "151.20", "5. volume": "40120000"}
			}
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchTimeSeries(context.Background(), "AAPL")
	require.Equal(t, models.StatusSuccess, res.Status)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "151.20", res.Series["2026-08-28"].Close)
}

func TestFetchTimeSeriesRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchTimeSeries(context.Background(), "AAPL")
	assert.Equal(t, models.StatusRateLimited, res.Status)
	assert.Nil(t, res.Series)
}

func TestFetchTimeSeriesNotFound(t *testing.T) {
	cases := map[string]string{
		"empty object":  `{}`,
		"error message": `{"Error Message": "Invalid API call."}`,
		"undecodable":   `<html>gateway</html>`,
		"empty series":  `{"Time Series (Daily)": {}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			res := newTestClient(srv.URL).FetchTimeSeries(context.Background(), "ZZZZ")
			assert.Equal(t, models.StatusNotFound, res.Status)
		})
	}
}

func TestFetchTimeSeriesTransient(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		res := newTestClient(srv.URL).FetchTimeSeries(context.Background(), "AAPL")
		assert.Equal(t, models.StatusTransient, res.Status)
		assert.Error(t, res.Err)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		res := newTestClient(srv.URL).FetchTimeSeries(context.Background(), "AAPL")
		assert.Equal(t, models.StatusTransient, res.Status)
		assert.Error(t, res.Err)
	})
}

func TestFetchOptionChainSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OPTION_CHAIN", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"optionChain": {
				"result": [{
					"quote": {"symbol": "AAPL", "regularMarketPrice": 151.2},
					"expirationDates": ["2026-10-01"],
					"options": [{
						"expirationDate": "2026-10-01",
						"calls": [{"strike": 150, "lastPrice": 4.2, "bid": 4.0, "ask": 4.4, "volume": 120, "openInterest": 900, "impliedVolatility": 0.31, "expiration": "2026-10-01"}],
						"puts": []
					}]
				}]
			}
		}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchOptionChain(context.Background(), "AAPL")
	require.Equal(t, models.StatusSuccess, res.Status)
	require.NotNil(t, res.Raw)
	assert.Equal(t, 151.2, res.Raw.Quote.RegularMarketPrice)
	require.Len(t, res.Raw.Options, 1)
	assert.Equal(t, 900, res.Raw.Options[0].Calls[0].OpenInterest)
}

func TestFetchOptionChainInvalidSymbolSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchOptionChain(context.Background(), "not-a-ticker")
	assert.Equal(t, models.StatusInvalidSymbol, res.Status)
	assert.False(t, called, "invalid symbols must not reach the upstream")
}

func TestFetchOptionChainEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"optionChain": {"result": []}}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchOptionChain(context.Background(), "AAPL")
	assert.Equal(t, models.StatusNotFound, res.Status)
}

func TestFetchOptionChainRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "API call frequency is 5 calls per minute"}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).FetchOptionChain(context.Background(), "AAPL")
	assert.Equal(t, models.StatusRateLimited, res.Status)
}
