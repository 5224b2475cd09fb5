package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"MarketPulse/internal/handler/ws"
	"MarketPulse/internal/usecase"
	xhttp "MarketPulse/pkg/http"
)

// MarketHandler serves the market data and prediction endpoints.
type MarketHandler struct {
	market      *usecase.MarketDataUsecase
	predictions *usecase.PredictionUsecase
	hub         *ws.Hub
}

// NewMarketHandler creates the market data handler. hub may be nil when the
// websocket stream is not served.
func NewMarketHandler(market *usecase.MarketDataUsecase, predictions *usecase.PredictionUsecase, hub *ws.Hub) *MarketHandler {
	return &MarketHandler{market: market, predictions: predictions, hub: hub}
}

// RegisterRoutes registers market routes on the Echo instance.
func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/api/stock/:symbol", h.GetStock)
	e.GET("/api/options/:symbol", h.GetOptions)
	e.GET("/api/predict-stock/:symbol", h.PredictStock)
	e.GET("/api/stock-predictions", h.ListPredictions)
	if h.hub != nil {
		e.GET("/ws/market", h.StreamMarket)
	}
}

type rootResponse struct {
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// Root reports that the service is up and lists what it serves.
func (h *MarketHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, rootResponse{
		Service: "marketpulse",
		Status:  "running",
		Endpoints: []string{
			"/api/stock/:symbol",
			"/api/options/:symbol",
			"/api/predict-stock/:symbol",
			"/api/stock-predictions",
			"/api/financial-data",
			"/ws/market",
			"/health",
		},
	})
}

type stockResponse struct {
	Symbol string      `json:"symbol"`
	Series interface{} `json:"series"`
}

// GetStock serves the daily time series for a symbol.
func (h *MarketHandler) GetStock(c echo.Context) error {
	symbol := normalizeSymbol(c.Param("symbol"))

	series, err := h.market.GetTimeSeries(c.Request().Context(), symbol)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stockResponse{Symbol: symbol, Series: series})
}

// GetOptions serves the option chain for a symbol, real or synthetic.
func (h *MarketHandler) GetOptions(c echo.Context) error {
	symbol := normalizeSymbol(c.Param("symbol"))

	chain, err := h.market.GetOptionChain(c.Request().Context(), symbol)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, chain)
}

// PredictStock asks the model service for a prediction and records it.
func (h *MarketHandler) PredictStock(c echo.Context) error {
	symbol := normalizeSymbol(c.Param("symbol"))

	pred, err := h.predictions.Predict(c.Request().Context(), symbol)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, pred)
}

// ListPredictions serves the full prediction ledger, newest first.
func (h *MarketHandler) ListPredictions(c echo.Context) error {
	records, err := h.predictions.ListPredictions(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

// StreamMarket upgrades the connection and subscribes it to market events.
func (h *MarketHandler) StreamMarket(c echo.Context) error {
	return ws.Serve(h.hub, c.Response(), c.Request())
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
