package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/repository"
	"MarketPulse/internal/usecase"
)

type memFinancialStore struct {
	rows   map[int64]models.FinancialData
	nextID int64
}

func newMemFinancialStore() *memFinancialStore {
	return &memFinancialStore{rows: make(map[int64]models.FinancialData)}
}

func (m *memFinancialStore) List(context.Context) ([]models.FinancialData, error) {
	out := make([]models.FinancialData, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *memFinancialStore) Get(_ context.Context, id int64) (*models.FinancialData, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (m *memFinancialStore) Create(_ context.Context, req *models.FinancialDataRequest) (int64, error) {
	m.nextID++
	m.rows[m.nextID] = models.FinancialData{
		ID:          m.nextID,
		CompanyName: req.CompanyName,
		StockPrice:  req.StockPrice,
		MarketCap:   req.MarketCap,
		Revenue:     req.Revenue,
		Profit:      req.Profit,
	}
	return m.nextID, nil
}

func (m *memFinancialStore) Update(_ context.Context, id int64, req *models.FinancialDataRequest) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	m.rows[id] = models.FinancialData{ID: id, CompanyName: req.CompanyName, StockPrice: req.StockPrice, MarketCap: req.MarketCap, Revenue: req.Revenue, Profit: req.Profit}
	return nil
}

func (m *memFinancialStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func newFinancialEcho() *echo.Echo {
	e := echo.New()
	NewFinancialHandler(usecase.NewFinancialDataUsecase(newMemFinancialStore())).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFinancialCreateAndGet(t *testing.T) {
	e := newFinancialEcho()

	rec := doJSON(e, http.MethodPost, "/api/financial-data", `{"company_name":"Acme Corp","stock_price":42.5,"market_cap":1000000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)

	rec = doGet(e, "/api/financial-data/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Corp")
}

func TestFinancialCreateValidation(t *testing.T) {
	e := newFinancialEcho()

	t.Run("missing company name", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/financial-data", `{"stock_price":42.5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_REQUIRED")
	})

	t.Run("negative stock price", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/financial-data", `{"company_name":"Acme","stock_price":-1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_GTE")
	})
}

func TestFinancialUpdateDelete(t *testing.T) {
	e := newFinancialEcho()

	rec := doJSON(e, http.MethodPost, "/api/financial-data", `{"company_name":"Acme Corp"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/financial-data/1", `{"company_name":"Acme Holdings"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(e, "/api/financial-data/1")
	assert.Contains(t, rec.Body.String(), "Acme Holdings")

	req := httptest.NewRequest(http.MethodDelete, "/api/financial-data/1", nil)
	del := httptest.NewRecorder()
	e.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	rec = doGet(e, "/api/financial-data/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinancialBadID(t *testing.T) {
	e := newFinancialEcho()

	rec := doGet(e, "/api/financial-data/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(e, "/api/financial-data/0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
