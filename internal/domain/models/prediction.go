package models

import "time"

// PredictionRecord is one row of the stock_predictions ledger. The ledger is
// a full history log: every prediction request appends a row.
type PredictionRecord struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	PredictedPrice float64   `json:"predictedPrice"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Prediction is the predictor-service response returned to the caller.
type Prediction struct {
	Symbol         string  `json:"symbol"`
	PredictedPrice float64 `json:"predicted_price"`
	CurrentPrice   float64 `json:"current_price,omitempty"`
}
