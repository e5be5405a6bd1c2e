package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"swing_backend/internal/api"
	"swing_backend/internal/feature/symbollist/domain/entity"
	"swing_backend/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListSymbols(ctx context.Context, classifiable bool) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は終値が保存されている銘柄の一覧を取得するAPIです。
// ?classifiable=true の場合は分類できる（2営業日以上ある）銘柄のみ返します。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	classifiable := false
	if v := c.Query("classifiable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "classifiable must be a boolean"})
			return
		}
		classifiable = b
	}

	symbols, err := h.uc.ListSymbols(c.Request.Context(), classifiable)
	if err != nil {
		slog.Error("list symbols failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{
			Code:      s.Code,
			FirstDate: openapi_types.Date{Time: s.FirstDate},
			LastDate:  openapi_types.Date{Time: s.LastDate},
			Days:      s.Days,
		})
	}
	c.JSON(http.StatusOK, out)
}
