// Package handler はswingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"swing_backend/internal/api"
	"swing_backend/internal/feature/prices/adapters/tushare"
	pricesdomain "swing_backend/internal/feature/prices/domain"
	priceentity "swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/swing/domain"
	"swing_backend/internal/feature/swing/domain/classifier"
	"swing_backend/internal/feature/swing/domain/entity"
)

// MaxBatchSymbols は一括取得で受け付ける銘柄数の上限です。
const MaxBatchSymbols = 20

// SwingUsecase はスイング分類のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SwingUsecase interface {
	GetSwings(ctx context.Context, symbol string, start, end time.Time) (*classifier.Result, error)
	GetSwingsBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string]*classifier.Result, error)
	ClassifySeries(ctx context.Context, points []entity.PricePoint) (*classifier.Result, error)
}

// SwingHandler はスイング分類のHTTPリクエストを処理します。
type SwingHandler struct {
	uc SwingUsecase
}

// NewSwingHandler は指定されたusecaseでSwingHandlerの新しいインスタンスを生成します。
func NewSwingHandler(uc SwingUsecase) *SwingHandler {
	return &SwingHandler{uc: uc}
}

// GetSwings は銘柄コードと期間を受け取り、スイング表をJSONで返します。
//
// エンドポイント例:
// GET /swings/:code?start=20240101&end=20240331
func (h *SwingHandler) GetSwings(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.uc.GetSwings(c.Request.Context(), c.Param("code"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRows(res.Records))
}

// GetMarkers は期間内の分類で最後に残った反転線をカテゴリごとに返します。
//
// エンドポイント例:
// GET /swings/:code/markers?start=20240101&end=20240331
func (h *SwingHandler) GetMarkers(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.uc.GetSwings(c.Request.Context(), c.Param("code"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]api.MarkerResponse, 0, len(res.Markers))
	for _, cat := range entity.Categories {
		m, ok := res.Markers[cat]
		if !ok {
			continue
		}
		r := api.MarkerResponse{Category: cat.String()}
		if m.HasRed {
			r.Red = ptr(m.Red)
		}
		if m.HasBlack {
			r.Black = ptr(m.Black)
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, out)
}

// GetSwingsBatch はカンマ区切りの複数銘柄を並行して分類し、銘柄ごとのスイング表を返します。
//
// エンドポイント例:
// GET /swings?codes=600519.SH,000001.SZ&start=20240101&end=20240331
func (h *SwingHandler) GetSwingsBatch(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var codes []string
	for _, s := range strings.Split(c.Query("codes"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			codes = append(codes, s)
		}
	}
	if len(codes) == 0 || len(codes) > MaxBatchSymbols {
		respondError(c, fmt.Errorf("%w: codes must list 1 to %d symbols", domain.ErrInvalidRange, MaxBatchSymbols))
		return
	}

	results, err := h.uc.GetSwingsBatch(c.Request.Context(), codes, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make(map[string][]api.SwingRow, len(results))
	for code, res := range results {
		out[code] = toRows(res.Records)
	}
	c.JSON(http.StatusOK, out)
}

// Classify はリクエストボディの終値系列をそのまま分類します。
//
// エンドポイント例:
// POST /swings/classify {"items":[["20240102",10.5],["20240103",10.8]]}
func (h *SwingHandler) Classify(c *gin.Context) {
	var req api.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	prices, err := tushare.ParseItems(req.Fields, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.uc.ClassifySeries(c.Request.Context(), toPoints(prices))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRows(res.Records))
}

// parseRange はstart/endクエリをパースします。どちらも必須です。
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start and end are required", domain.ErrInvalidRange)
	}
	start, err := priceentity.ParseTradeDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
	}
	end, err := priceentity.ParseTradeDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
	}
	return start, end, nil
}

// respondError はエラーの種類に応じたステータスでエラーレスポンスを返します。
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrDivision),
		errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, pricesdomain.ErrMalformedRow):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.Error("swing request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}

func toPoints(prices []priceentity.DailyPrice) []entity.PricePoint {
	out := make([]entity.PricePoint, 0, len(prices))
	for _, p := range prices {
		out = append(out, entity.PricePoint{TradeDate: p.TradeDate, Close: p.Close})
	}
	return out
}

// toRows はレコードを表の行に変換します。各行で値が入るのは分類された列のみです。
func toRows(records []entity.ClassifiedRecord) []api.SwingRow {
	out := make([]api.SwingRow, 0, len(records))
	for _, r := range records {
		row := api.SwingRow{
			Date: openapi_types.Date{Time: r.TradeDate.UTC()},
			Line: r.Line.String(),
		}
		v := ptr(r.Close)
		switch r.Category {
		case entity.SecondaryRally:
			row.SecondaryRally = v
		case entity.NaturalRally:
			row.NaturalRally = v
		case entity.UpwardTrend:
			row.UpwardTrend = v
		case entity.DownwardTrend:
			row.DownwardTrend = v
		case entity.NaturalReaction:
			row.NaturalReaction = v
		case entity.SecondaryReaction:
			row.SecondaryReaction = v
		}
		out = append(out, row)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
