package models

// FinancialData is one row of the financial_data table.
type FinancialData struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	StockPrice  float64 `json:"stock_price"`
	MarketCap   int64   `json:"market_cap"`
	Revenue     int64   `json:"revenue"`
	Profit      int64   `json:"profit"`
}

// FinancialDataRequest is the create/update payload for financial_data rows.
type FinancialDataRequest struct {
	CompanyName string  `json:"company_name" validate:"required,max=255"`
	StockPrice  float64 `json:"stock_price" validate:"gte=0"`
	MarketCap   int64   `json:"market_cap" validate:"gte=0"`
	Revenue     int64   `json:"revenue"`
	Profit      int64   `json:"profit"`
}
