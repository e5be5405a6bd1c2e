package adapters

import (
	"context"
	"time"

	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

type PriceModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	TradeDate time.Time `gorm:"not null;uniqueIndex:price_sym_date,priority:2"`

	Close float64 `gorm:"not null"`
}

func (PriceModel) TableName() string {
	return "daily_prices"
}

func toModel(e entity.DailyPrice) PriceModel {
	return PriceModel{
		Symbol:    e.Symbol,
		TradeDate: e.TradeDate.UTC(),
		Close:     e.Close,
	}
}

func (r *priceGorm) UpsertBatch(ctx context.Context, prices []entity.DailyPrice) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(prices))
	for _, e := range prices {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"close"}),
	}).Create(&ms).Error
}

// FindRange returns the prices of symbol traded within [from, to], oldest first.
func (r *priceGorm) FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.DailyPrice, error) {
	var rows []PriceModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND trade_date >= ? AND trade_date <= ?", symbol, from.UTC(), to.UTC()).
		Order("trade_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.DailyPrice, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.DailyPrice{
			Symbol:    m.Symbol,
			TradeDate: m.TradeDate.UTC(),
			Close:     m.Close,
		})
	}
	return out, nil
}
