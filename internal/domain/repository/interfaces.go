package repository

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// MarketDataSource fetches quote and option data from the upstream provider
// and classifies the outcome. Implementations never retry; callers decide how
// a non-success outcome is handled.
type MarketDataSource interface {
	FetchTimeSeries(ctx context.Context, symbol string) models.TimeSeriesResult
	FetchOptionChain(ctx context.Context, symbol string) models.ChainResult
}

// Predictor asks the external model service for a predicted price.
type Predictor interface {
	Predict(ctx context.Context, symbol string) (*models.Prediction, error)
}

// PredictionStore persists the prediction ledger.
type PredictionStore interface {
	Record(ctx context.Context, symbol string, predictedPrice float64) error
	ListAll(ctx context.Context) ([]models.PredictionRecord, error)
}

// FinancialDataStore is the CRUD store for the financial_data table.
type FinancialDataStore interface {
	List(ctx context.Context) ([]models.FinancialData, error)
	Get(ctx context.Context, id int64) (*models.FinancialData, error)
	Create(ctx context.Context, row *models.FinancialDataRequest) (int64, error)
	Update(ctx context.Context, id int64, row *models.FinancialDataRequest) error
	Delete(ctx context.Context, id int64) error
}

// QuoteArchive keeps a best-effort history of fetched daily bars.
type QuoteArchive interface {
	ArchiveSeries(ctx context.Context, symbol string, series models.TimeSeries) error
	Close() error
}

// EventPublisher pushes market events to downstream consumers (Kafka topic,
// websocket clients). Publishing is best-effort on every path that uses it.
type EventPublisher interface {
	Publish(ctx context.Context, ev *models.MarketEvent) error
	Close() error
}

// Metrics records domain-level measurements.
type Metrics interface {
	RecordUpstream(endpoint string, status models.FetchStatus)
	RecordCache(op, result string)
	RecordSynthetic(symbol string)
	RecordPrediction(result string)
	RecordLatency(op string, seconds float64)
}
