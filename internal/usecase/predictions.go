package usecase

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

// PredictionUsecase drives the prediction flow: ask the model service, append
// the result to the ledger, surface the prediction. Ledger writes are
// best-effort; a storage failure never costs the caller their prediction.
type PredictionUsecase struct {
	predictor drepo.Predictor
	store     drepo.PredictionStore
	events    drepo.EventPublisher
	metrics   drepo.Metrics
	logger    *applogger.Logger
	now       func() time.Time
}

// NewPredictionUsecase wires the prediction flow. events may be nil.
func NewPredictionUsecase(
	predictor drepo.Predictor,
	store drepo.PredictionStore,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *PredictionUsecase {
	return &PredictionUsecase{
		predictor: predictor,
		store:     store,
		events:    events,
		metrics:   metrics,
		logger:    l,
		now:       time.Now,
	}
}

// Predict fetches a prediction for the symbol and appends it to the ledger.
func (u *PredictionUsecase) Predict(ctx context.Context, symbol string) (*models.Prediction, error) {
	pred, err := u.predictor.Predict(ctx, symbol)
	if err != nil {
		u.metrics.RecordPrediction("predictor_error")
		return nil, xhttp.PredictorUnavailableError(err)
	}

	if err := u.store.Record(ctx, symbol, pred.PredictedPrice); err != nil {
		u.metrics.RecordPrediction("store_failed")
		u.logger.Error("prediction ledger write failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	} else {
		u.metrics.RecordPrediction("stored")
	}

	if u.events != nil {
		ev := &models.MarketEvent{
			Type:   models.EventPredictionRecorded,
			Symbol: symbol,
			Price:  pred.PredictedPrice,
			At:     u.now(),
		}
		if err := u.events.Publish(ctx, ev); err != nil {
			u.logger.Warn("event publish failed", applogger.String("type", string(ev.Type)), applogger.Error(err))
		}
	}

	return pred, nil
}

// ListPredictions returns the full ledger, newest first.
func (u *PredictionUsecase) ListPredictions(ctx context.Context) ([]models.PredictionRecord, error) {
	records, err := u.store.ListAll(ctx)
	if err != nil {
		return nil, xhttp.DatabaseError(err)
	}
	return records, nil
}
