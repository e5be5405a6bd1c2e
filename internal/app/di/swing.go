package di

import (
	"swing_backend/internal/feature/swing/domain/classifier"
	"swing_backend/internal/feature/swing/usecase"
	"swing_backend/internal/platform/config"
)

// NewSwingUsecase creates the swing usecase with the configured thresholds.
// metrics may be nil.
func NewSwingUsecase(cfg *config.Config, prices usecase.PriceRepository, metrics usecase.Metrics) *usecase.SwingUsecase {
	return usecase.NewSwingUsecase(prices, classifier.New(cfg.Classifier), metrics, cfg.Batch.Workers)
}
