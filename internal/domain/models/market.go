package models

// DailyBar is a single OHLCV entry as Alpha Vantage serializes it: every
// numeric field arrives as a string.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// TimeSeries maps date strings (YYYY-MM-DD) to daily bars. Upstream gives no
// ordering guarantee; consumers sort by date themselves.
type TimeSeries map[string]DailyBar

// FetchStatus classifies the outcome of an upstream call.
type FetchStatus int

const (
	StatusSuccess FetchStatus = iota
	StatusRateLimited
	StatusNotFound
	StatusTransient
	StatusInvalidSymbol
)

func (s FetchStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRateLimited:
		return "rate_limited"
	case StatusNotFound:
		return "not_found"
	case StatusTransient:
		return "transient"
	case StatusInvalidSymbol:
		return "invalid_symbol"
	default:
		return "unknown"
	}
}

// TimeSeriesResult is the classified outcome of a daily time-series fetch.
// Series is populated only when Status is StatusSuccess.
type TimeSeriesResult struct {
	Status FetchStatus
	Series TimeSeries
	Err    error
}

// ChainResult is the classified outcome of an option-chain fetch. Raw is
// populated only when Status is StatusSuccess.
type ChainResult struct {
	Status FetchStatus
	Raw    *RawChain
	Err    error
}
