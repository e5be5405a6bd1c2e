// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	priceadapters "swing_backend/internal/feature/prices/adapters"
	"swing_backend/internal/feature/symbollist/domain/entity"
	"swing_backend/internal/feature/symbollist/usecase"

	"gorm.io/gorm"
)

// symbolGorm はdaily_pricesテーブルから銘柄一覧を集計します。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

type symbolCount struct {
	Symbol string
	Days   int
}

// ListStored は終値が保存されている銘柄をコード順に返します。
// 日付の集計はドライバーごとに型が異なるため、最初と最後の行を個別に読み込みます。
func (r *symbolGorm) ListStored(ctx context.Context) ([]entity.Symbol, error) {
	db := r.db.WithContext(ctx)

	var counts []symbolCount
	if err := db.Model(&priceadapters.PriceModel{}).
		Select("symbol, COUNT(*) AS days").
		Group("symbol").
		Order("symbol ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Symbol, 0, len(counts))
	for _, c := range counts {
		var first, last priceadapters.PriceModel
		if err := db.Where("symbol = ?", c.Symbol).Order("trade_date ASC").First(&first).Error; err != nil {
			return nil, err
		}
		if err := db.Where("symbol = ?", c.Symbol).Order("trade_date DESC").First(&last).Error; err != nil {
			return nil, err
		}
		out = append(out, entity.Symbol{
			Code:      c.Symbol,
			FirstDate: first.TradeDate.UTC(),
			LastDate:  last.TradeDate.UTC(),
			Days:      c.Days,
		})
	}
	return out, nil
}
