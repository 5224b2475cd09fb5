package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/postgres"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("record not found")

// schema is idempotent and applied at startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stock_predictions (
		id              BIGSERIAL PRIMARY KEY,
		symbol          VARCHAR(16)      NOT NULL,
		predicted_price DOUBLE PRECISION NOT NULL,
		created_at      TIMESTAMPTZ      NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_predictions_symbol ON stock_predictions (symbol)`,
	`CREATE TABLE IF NOT EXISTS financial_data (
		id           BIGSERIAL PRIMARY KEY,
		company_name VARCHAR(255)     NOT NULL,
		stock_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
		market_cap   BIGINT           NOT NULL DEFAULT 0,
		revenue      BIGINT           NOT NULL DEFAULT 0,
		profit       BIGINT           NOT NULL DEFAULT 0
	)`,
}

// PostgresStore implements the prediction ledger and the financial data CRUD
// store on one Postgres connection pool.
type PostgresStore struct {
	db           *sql.DB
	writeTimeout time.Duration
}

var (
	_ drepo.PredictionStore    = (*PostgresStore)(nil)
	_ drepo.FinancialDataStore = (*PostgresStore)(nil)
)

// NewPostgresStore creates the store and ensures the schema exists.
func NewPostgresStore(client *postgres.Client, writeTimeout time.Duration) (*PostgresStore, error) {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	s := &PostgresStore{db: client.DB(), writeTimeout: writeTimeout}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return s, nil
}

// Record appends one prediction to the ledger. The ledger is append-only;
// repeated predictions for a symbol each get their own row.
func (s *PostgresStore) Record(ctx context.Context, symbol string, predictedPrice float64) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stock_predictions (symbol, predicted_price) VALUES ($1, $2)`,
		symbol, predictedPrice,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// ListAll returns the whole ledger, newest first.
func (s *PostgresStore) ListAll(ctx context.Context) ([]models.PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, predicted_price, created_at FROM stock_predictions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	records := make([]models.PredictionRecord, 0)
	for rows.Next() {
		var r models.PredictionRecord
		if err := rows.Scan(&r.ID, &r.Symbol, &r.PredictedPrice, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// List returns all financial data rows.
func (s *PostgresStore) List(ctx context.Context) ([]models.FinancialData, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_name, stock_price, market_cap, revenue, profit FROM financial_data ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query financial data: %w", err)
	}
	defer rows.Close()

	out := make([]models.FinancialData, 0)
	for rows.Next() {
		var fd models.FinancialData
		if err := rows.Scan(&fd.ID, &fd.CompanyName, &fd.StockPrice, &fd.MarketCap, &fd.Revenue, &fd.Profit); err != nil {
			return nil, fmt.Errorf("scan financial data: %w", err)
		}
		out = append(out, fd)
	}
	return out, rows.Err()
}

// Get returns one financial data row by ID.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.FinancialData, error) {
	var fd models.FinancialData
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_name, stock_price, market_cap, revenue, profit FROM financial_data WHERE id = $1`,
		id,
	).Scan(&fd.ID, &fd.CompanyName, &fd.StockPrice, &fd.MarketCap, &fd.Revenue, &fd.Profit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get financial data: %w", err)
	}
	return &fd, nil
}

// Create inserts a financial data row and returns its ID.
func (s *PostgresStore) Create(ctx context.Context, req *models.FinancialDataRequest) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO financial_data (company_name, stock_price, market_cap, revenue, profit)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		req.CompanyName, req.StockPrice, req.MarketCap, req.Revenue, req.Profit,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert financial data: %w", err)
	}
	return id, nil
}

// Update replaces a financial data row.
func (s *PostgresStore) Update(ctx context.Context, id int64, req *models.FinancialDataRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE financial_data
		 SET company_name = $1, stock_price = $2, market_cap = $3, revenue = $4, profit = $5
		 WHERE id = $6`,
		req.CompanyName, req.StockPrice, req.MarketCap, req.Revenue, req.Profit, id,
	)
	if err != nil {
		return fmt.Errorf("update financial data: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a financial data row.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM financial_data WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete financial data: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
