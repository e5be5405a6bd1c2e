// Package usecase implements the business logic for storing daily prices.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"swing_backend/internal/feature/prices/domain"
	"swing_backend/internal/feature/prices/domain/entity"
)

// PriceRepository abstracts the persistence layer for daily prices.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PriceRepository interface {
	UpsertBatch(ctx context.Context, prices []entity.DailyPrice) error
	FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.DailyPrice, error)
}

// ImportUsecase validates daily prices and persists them.
type ImportUsecase struct {
	repo PriceRepository
}

// NewImportUsecase creates a new ImportUsecase.
func NewImportUsecase(repo PriceRepository) *ImportUsecase {
	return &ImportUsecase{repo: repo}
}

// Import stamps every price with symbol, checks the closes and upserts them.
// It returns the number of stored prices. Nothing is stored when any price is invalid.
func (u *ImportUsecase) Import(ctx context.Context, symbol string, prices []entity.DailyPrice) (int, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return 0, domain.ErrInvalidSymbol
	}

	ps := make([]entity.DailyPrice, 0, len(prices))
	for _, p := range prices {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return 0, fmt.Errorf("%w: %v on %s", domain.ErrInvalidPrice, p.Close, p.TradeDate.Format(time.DateOnly))
		}
		p.Symbol = symbol
		ps = append(ps, p)
	}
	if len(ps) == 0 {
		return 0, nil
	}

	if err := u.repo.UpsertBatch(ctx, ps); err != nil {
		return 0, err
	}
	slog.Info("prices imported", "symbol", symbol, "count", len(ps))
	return len(ps), nil
}
