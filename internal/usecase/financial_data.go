package usecase

import (
	"context"
	"errors"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/repository"
	xhttp "MarketPulse/pkg/http"
)

// FinancialDataUsecase is the CRUD flow over the financial_data table.
type FinancialDataUsecase struct {
	store drepo.FinancialDataStore
}

// NewFinancialDataUsecase creates the financial data flow.
func NewFinancialDataUsecase(store drepo.FinancialDataStore) *FinancialDataUsecase {
	return &FinancialDataUsecase{store: store}
}

// List returns all rows.
func (u *FinancialDataUsecase) List(ctx context.Context) ([]models.FinancialData, error) {
	rows, err := u.store.List(ctx)
	if err != nil {
		return nil, xhttp.DatabaseError(err)
	}
	return rows, nil
}

// Get returns one row by ID.
func (u *FinancialDataUsecase) Get(ctx context.Context, id int64) (*models.FinancialData, error) {
	row, err := u.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, xhttp.NotFoundError("record")
		}
		return nil, xhttp.DatabaseError(err)
	}
	return row, nil
}

// Create inserts a row and returns its new ID.
func (u *FinancialDataUsecase) Create(ctx context.Context, req *models.FinancialDataRequest) (int64, error) {
	id, err := u.store.Create(ctx, req)
	if err != nil {
		return 0, xhttp.DatabaseError(err)
	}
	return id, nil
}

// Update replaces a row by ID.
func (u *FinancialDataUsecase) Update(ctx context.Context, id int64, req *models.FinancialDataRequest) error {
	if err := u.store.Update(ctx, id, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return xhttp.NotFoundError("record")
		}
		return xhttp.DatabaseError(err)
	}
	return nil
}

// Delete removes a row by ID.
func (u *FinancialDataUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return xhttp.NotFoundError("record")
		}
		return xhttp.DatabaseError(err)
	}
	return nil
}
