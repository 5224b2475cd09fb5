package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/usecase"
	xhttp "MarketPulse/pkg/http"
)

// FinancialHandler serves the financial data CRUD endpoints.
type FinancialHandler struct {
	financial *usecase.FinancialDataUsecase
}

// NewFinancialHandler creates the financial data handler.
func NewFinancialHandler(financial *usecase.FinancialDataUsecase) *FinancialHandler {
	return &FinancialHandler{financial: financial}
}

// RegisterRoutes registers financial data routes on the Echo instance.
func (h *FinancialHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/financial-data")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns all financial data rows.
func (h *FinancialHandler) List(c echo.Context) error {
	rows, err := h.financial.List(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Get returns one row by ID.
func (h *FinancialHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid id")
	}

	row, err := h.financial.Get(c.Request().Context(), id)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, row)
}

type createdResponse struct {
	ID int64 `json:"id"`
}

// Create inserts a new row.
func (h *FinancialHandler) Create(c echo.Context) error {
	req := new(models.FinancialDataRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	id, err := h.financial.Create(c.Request().Context(), req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, createdResponse{ID: id})
}

// Update replaces a row by ID.
func (h *FinancialHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid id")
	}

	req := new(models.FinancialDataRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	if err := h.financial.Update(c.Request().Context(), id, req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, nil)
}

// Delete removes a row by ID.
func (h *FinancialHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid id")
	}

	if err := h.financial.Delete(c.Request().Context(), id); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
