package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/logger"
)

type fakePredictor struct {
	pred *models.Prediction
	err  error
}

func (f *fakePredictor) Predict(ctx context.Context, symbol string) (*models.Prediction, error) {
	return f.pred, f.err
}

type fakeLedger struct {
	records   []models.PredictionRecord
	recordErr error
	listErr   error
}

func (f *fakeLedger) Record(_ context.Context, symbol string, price float64) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	id := int64(len(f.records) + 1)
	f.records = append(f.records, models.PredictionRecord{
		ID:             id,
		Symbol:         symbol,
		PredictedPrice: price,
		CreatedAt:      time.Unix(id, 0),
	})
	return nil
}

// ListAll returns newest first, mirroring the store's ordering contract.
func (f *fakeLedger) ListAll(context.Context) ([]models.PredictionRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.PredictionRecord, len(f.records))
	for i, r := range f.records {
		out[len(f.records)-1-i] = r
	}
	return out, nil
}

func TestPredictRecordsToLedger(t *testing.T) {
	ledger := &fakeLedger{}
	pub := &capturingPublisher{}
	u := NewPredictionUsecase(
		&fakePredictor{pred: &models.Prediction{Symbol: "AAPL", PredictedPrice: 155.5, CurrentPrice: 151.2}},
		ledger, pub, &fakeMetrics{}, logger.Nop(),
	)

	pred, err := u.Predict(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 155.5, pred.PredictedPrice)

	require.Len(t, ledger.records, 1)
	assert.Equal(t, "AAPL", ledger.records[0].Symbol)
	assert.Equal(t, 155.5, ledger.records[0].PredictedPrice)

	require.Len(t, pub.events, 1)
	assert.Equal(t, models.EventPredictionRecorded, pub.events[0].Type)
	assert.Equal(t, 155.5, pub.events[0].Price)
}

func TestPredictLedgerFailureIsNotFatal(t *testing.T) {
	ledger := &fakeLedger{recordErr: errors.New("connection refused")}
	u := NewPredictionUsecase(
		&fakePredictor{pred: &models.Prediction{Symbol: "AAPL", PredictedPrice: 155.5}},
		ledger, nil, &fakeMetrics{}, logger.Nop(),
	)

	pred, err := u.Predict(context.Background(), "AAPL")
	require.NoError(t, err, "a dead ledger must not cost the caller their prediction")
	assert.Equal(t, 155.5, pred.PredictedPrice)
}

func TestPredictUnavailable(t *testing.T) {
	u := NewPredictionUsecase(
		&fakePredictor{err: errors.New("dial tcp: connection refused")},
		&fakeLedger{}, nil, &fakeMetrics{}, logger.Nop(),
	)

	_, err := u.Predict(context.Background(), "AAPL")
	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, xhttp.CodePredictorUnavailable, appErr.Code)
}

func TestListPredictions(t *testing.T) {
	ledger := &fakeLedger{}
	u := NewPredictionUsecase(&fakePredictor{pred: &models.Prediction{PredictedPrice: 1}}, ledger, nil, &fakeMetrics{}, logger.Nop())

	_, err := u.Predict(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = u.Predict(context.Background(), "MSFT")
	require.NoError(t, err)

	records, err := u.ListPredictions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2, "every prediction call appends a row")

	// Newest first.
	assert.Equal(t, "MSFT", records[0].Symbol)
	assert.Equal(t, "AAPL", records[1].Symbol)
	assert.False(t, records[1].CreatedAt.After(records[0].CreatedAt))
}

func TestListPredictionsStoreError(t *testing.T) {
	u := NewPredictionUsecase(nil, &fakeLedger{listErr: errors.New("boom")}, nil, &fakeMetrics{}, logger.Nop())

	_, err := u.ListPredictions(context.Background())
	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, xhttp.CodeDatabase, appErr.Code)
}
