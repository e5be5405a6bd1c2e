// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"fmt"

	"swing_backend/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for stored instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListStored(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListSymbols returns every symbol with stored prices.
// When classifiable is true, symbols with fewer than two trading days are left out.
func (u *SymbolUsecase) ListSymbols(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
	symbols, err := u.repo.ListStored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	if !classifiable {
		return symbols, nil
	}
	out := make([]entity.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.Days >= 2 {
			out = append(out, s)
		}
	}
	return out, nil
}
