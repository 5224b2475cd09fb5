package predictor

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

// Client calls the external model service over HTTP.
type Client struct {
	baseURL string
	http    *xhttp.Client
	logger  *applogger.Logger
}

// New creates a predictor client against the given base URL.
func New(baseURL string, timeout time.Duration, l *applogger.Logger) drepo.Predictor {
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
	}
}

// Predict asks the model service for a predicted price for the symbol.
func (c *Client) Predict(ctx context.Context, symbol string) (*models.Prediction, error) {
	var pred models.Prediction
	url := fmt.Sprintf("%s/predict/%s", c.baseURL, symbol)
	if err := c.http.GetJSON(ctx, url, nil, &pred); err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	if pred.Symbol == "" {
		pred.Symbol = symbol
	}
	return &pred, nil
}
