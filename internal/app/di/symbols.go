package di

import (
	"gorm.io/gorm"

	symbolsadapters "swing_backend/internal/feature/symbollist/adapters"
	symbolsusecase "swing_backend/internal/feature/symbollist/usecase"
)

// NewSymbolUsecase creates the usecase listing instruments with stored prices.
func NewSymbolUsecase(db *gorm.DB) *symbolsusecase.SymbolUsecase {
	return symbolsusecase.NewSymbolUsecase(symbolsadapters.NewSymbolRepository(db))
}
