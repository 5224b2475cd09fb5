package models

import "time"

// OptionLeg is a single option contract (call or put) at a given strike.
type OptionLeg struct {
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"lastPrice"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	Volume            int     `json:"volume"`
	OpenInterest      int     `json:"openInterest"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
	Expiration        string  `json:"expiration"`
}

// PatternKind tags a pattern with the side of the contract it came from.
type PatternKind string

const (
	PatternCall PatternKind = "call"
	PatternPut  PatternKind = "put"
)

// Pattern is the ranked projection of a leg surfaced to the visualization
// layer. Computed fresh on every normalization or synthesis pass, never stored.
type Pattern struct {
	Strike            float64     `json:"strike"`
	Kind              PatternKind `json:"kind"`
	OpenInterest      int         `json:"openInterest"`
	ImpliedVolatility float64     `json:"impliedVolatility"`
	Expiration        string      `json:"expiration"`
}

// OptionChain is the display-ready derivative analytics structure served to
// clients. Exactly one of IsRealData/IsMockData is true.
type OptionChain struct {
	Symbol          string      `json:"symbol"`
	SpotPrice       float64     `json:"spotPrice"`
	ExpirationDates []string    `json:"expirationDates"`
	Calls           []OptionLeg `json:"calls"`
	Puts            []OptionLeg `json:"puts"`
	LastUpdated     time.Time   `json:"lastUpdated"`
	IsRealData      bool        `json:"isRealData,omitempty"`
	IsMockData      bool        `json:"isMockData,omitempty"`
	Patterns        []Pattern   `json:"patterns"`
}

// RawChain mirrors the provider payload at optionChain.result[0].
type RawChain struct {
	Quote           RawQuote         `json:"quote"`
	ExpirationDates []string         `json:"expirationDates"`
	Options         []RawExpiryGroup `json:"options"`
}

// RawQuote carries the spot quote attached to a raw chain.
type RawQuote struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// RawExpiryGroup is the per-expiration call/put grouping in the raw payload.
type RawExpiryGroup struct {
	ExpirationDate string      `json:"expirationDate"`
	Calls          []OptionLeg `json:"calls"`
	Puts           []OptionLeg `json:"puts"`
}
