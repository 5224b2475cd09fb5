package models

import "time"

// EventType labels a market event published to downstream consumers.
type EventType string

const (
	EventQuoteFetched       EventType = "quote_fetched"
	EventChainFetched       EventType = "chain_fetched"
	EventPredictionRecorded EventType = "prediction_recorded"
)

// MarketEvent is the unit published to Kafka and pushed over the websocket
// stream whenever the acquisition or prediction path produces a result.
type MarketEvent struct {
	Type     EventType `json:"type"`
	Symbol   string    `json:"symbol"`
	MockData bool      `json:"mockData,omitempty"`
	Price    float64   `json:"price,omitempty"`
	At       time.Time `json:"at"`
}
