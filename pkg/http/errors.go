package http

import (
	"fmt"
	"net/http"
)

// Error codes surfaced by the market data and prediction endpoints.
const (
	CodeInvalidSymbol        = "ERR_INVALID_SYMBOL"
	CodeRateLimited          = "ERR_UPSTREAM_RATE_LIMITED"
	CodeNotFound             = "ERR_NOT_FOUND"
	CodeUpstreamUnavailable  = "ERR_UPSTREAM_UNAVAILABLE"
	CodePredictorUnavailable = "ERR_PREDICTOR_UNAVAILABLE"
	CodeDatabase             = "ERR_DATABASE"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithErr attaches an underlying cause.
func (e *AppError) WithErr(err error) *AppError {
	e.Err = err
	return e
}

// Convenience constructors for the common cases.

func InvalidSymbolError(symbol string) *AppError {
	return NewAppError(CodeInvalidSymbol, fmt.Sprintf("invalid stock symbol %q", symbol), http.StatusBadRequest)
}

func RateLimitedError() *AppError {
	return NewAppError(CodeRateLimited, "API limit reached", http.StatusTooManyRequests)
}

func NotFoundError(what string) *AppError {
	return NewAppError(CodeNotFound, what+" not found", http.StatusNotFound)
}

func UpstreamUnavailableError(err error) *AppError {
	return NewAppError(CodeUpstreamUnavailable, "upstream data provider unavailable", http.StatusBadGateway).WithErr(err)
}

func PredictorUnavailableError(err error) *AppError {
	return NewAppError(CodePredictorUnavailable, "prediction service unavailable", http.StatusBadGateway).WithErr(err)
}

func DatabaseError(err error) *AppError {
	return NewAppError(CodeDatabase, "database error", http.StatusInternalServerError).WithErr(err)
}
