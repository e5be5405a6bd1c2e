// Package usecase はスイング分類のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	priceentity "swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/swing/domain"
	"swing_backend/internal/feature/swing/domain/classifier"
	"swing_backend/internal/feature/swing/domain/entity"
)

const (
	// LookbackDays は開始日の前に読み込む日数です。最初の比較対象を確保します。
	LookbackDays = 1
	// DefaultBatchWorkers は一括分類の同時実行数の既定値です。
	DefaultBatchWorkers = 4
)

// PriceRepository は日次終値の読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	FindRange(ctx context.Context, symbol string, from, to time.Time) ([]priceentity.DailyPrice, error)
}

// Metrics は分類結果の計測先です。
type Metrics interface {
	ObserveClassification(records []entity.ClassifiedRecord, elapsed time.Duration)
	RecordError(kind string)
}

// SwingUsecase は保存済みの終値を読み込み、スイング分類を行います。
type SwingUsecase struct {
	prices  PriceRepository
	clf     *classifier.Classifier
	metrics Metrics
	workers int
}

// NewSwingUsecase はSwingUsecaseの新しいインスタンスを生成します。
// metricsがnilの場合は計測しません。workersが0以下の場合はDefaultBatchWorkersを使用します。
func NewSwingUsecase(prices PriceRepository, clf *classifier.Classifier, metrics Metrics, workers int) *SwingUsecase {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	return &SwingUsecase{prices: prices, clf: clf, metrics: metrics, workers: workers}
}

// GetSwings は銘柄の [start, end] の終値を分類します。
// 開始日の前日分も読み込み、最初の比較対象として使用します。
func (u *SwingUsecase) GetSwings(ctx context.Context, symbol string, start, end time.Time) (*classifier.Result, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is empty", domain.ErrInvalidRange)
	}
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, fmt.Errorf("%w: %s..%s", domain.ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	from := start.AddDate(0, 0, -LookbackDays)
	prices, err := u.prices.FindRange(ctx, symbol, from, end)
	if err != nil {
		u.recordError("storage")
		return nil, fmt.Errorf("load prices %s: %w", symbol, err)
	}

	points := make([]entity.PricePoint, 0, len(prices))
	for _, p := range prices {
		points = append(points, entity.PricePoint{TradeDate: p.TradeDate, Close: p.Close})
	}

	res, err := u.classify(points)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", symbol, err)
	}
	slog.Debug("swings classified", "symbol", symbol, "points", len(points), "records", len(res.Records))
	return res, nil
}

// GetSwingsBatch は複数銘柄を並行して分類します。重複した銘柄は1回だけ処理します。
// いずれかの銘柄が失敗した場合は残りをキャンセルし、最初のエラーを返します。
func (u *SwingUsecase) GetSwingsBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string]*classifier.Result, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols", domain.ErrInvalidRange)
	}

	var (
		mu  sync.Mutex
		out = make(map[string]*classifier.Result, len(symbols))
	)
	seen := make(map[string]struct{}, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		g.Go(func() error {
			res, err := u.GetSwings(gctx, s, start, end)
			if err != nil {
				return err
			}
			mu.Lock()
			out[s] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassifySeries は保存を経由せずに系列をそのまま分類します。
func (u *SwingUsecase) ClassifySeries(ctx context.Context, points []entity.PricePoint) (*classifier.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return u.classify(points)
}

func (u *SwingUsecase) classify(points []entity.PricePoint) (*classifier.Result, error) {
	started := time.Now()
	res, err := u.clf.Classify(points)
	if err != nil {
		u.recordError(errorKind(err))
		return nil, err
	}
	if u.metrics != nil {
		u.metrics.ObserveClassification(res.Records, time.Since(started))
	}
	return res, nil
}

func (u *SwingUsecase) recordError(kind string) {
	if u.metrics != nil {
		u.metrics.RecordError(kind)
	}
}

// errorKind はメトリクスのラベルに使うエラー種別を返します。
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, domain.ErrDivision):
		return "division"
	case errors.Is(err, domain.ErrMalformedInput):
		return "malformed_input"
	default:
		return "unknown"
	}
}
