package repository

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/clickhouse"
	"MarketPulse/pkg/util"
)

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS daily_bars (
		symbol      LowCardinality(String),
		bar_date    Date,
		open        Float64,
		high        Float64,
		low         Float64,
		close       Float64,
		volume      Int64,
		archived_at DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(archived_at)
	ORDER BY (symbol, bar_date)`,
}

// ClickHouseArchive keeps a history of every daily bar the pipeline has seen.
// Writes are batched per series; a failed archive never fails the request
// that triggered it.
type ClickHouseArchive struct {
	client *clickhouse.Client
}

var _ drepo.QuoteArchive = (*ClickHouseArchive)(nil)

// NewClickHouseArchive creates the archive and ensures its table exists.
func NewClickHouseArchive(client *clickhouse.Client) (*ClickHouseArchive, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, archiveSchema); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return &ClickHouseArchive{client: client}, nil
}

// ArchiveSeries inserts every bar of the series in one transaction-scoped
// batch. Bars with unparsable dates are skipped.
func (a *ClickHouseArchive) ArchiveSeries(ctx context.Context, symbol string, series models.TimeSeries) error {
	if len(series) == 0 {
		return nil
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO daily_bars (symbol, bar_date, open, high, low, close, volume) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	)
	if err != nil {
		return fmt.Errorf("archive prepare: %w", err)
	}
	defer stmt.Close()

	for date, bar := range series {
		day, ok := util.ParseDate(date)
		if !ok {
			continue
		}
		_, err := stmt.ExecContext(ctx, symbol, day,
			util.ParseFloat(bar.Open),
			util.ParseFloat(bar.High),
			util.ParseFloat(bar.Low),
			util.ParseFloat(bar.Close),
			util.ParseInt64Default(bar.Volume, 0),
		)
		if err != nil {
			return fmt.Errorf("archive insert %s/%s: %w", symbol, date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive commit: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (a *ClickHouseArchive) Close() error {
	return a.client.Close()
}

// NoopArchive satisfies QuoteArchive when ClickHouse is disabled.
type NoopArchive struct{}

func (NoopArchive) ArchiveSeries(context.Context, string, models.TimeSeries) error { return nil }
func (NoopArchive) Close() error                                                   { return nil }
