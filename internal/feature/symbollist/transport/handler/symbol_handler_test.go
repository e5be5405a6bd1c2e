package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"swing_backend/internal/feature/symbollist/domain/entity"
)

// mockSymbolUsecase はSymbolUsecaseインターフェースのモック実装です。
type mockSymbolUsecase struct {
	ListSymbolsFunc func(ctx context.Context, classifiable bool) ([]entity.Symbol, error)
}

// ListSymbols はモックのListSymbols関数を呼び出します。
func (m *mockSymbolUsecase) ListSymbols(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
	if m.ListSymbolsFunc != nil {
		return m.ListSymbolsFunc(ctx, classifiable)
	}
	return nil, nil
}

// TestNewSymbolHandler はNewSymbolHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewSymbolHandler(t *testing.T) {
	t.Parallel()

	handler := NewSymbolHandler(&mockSymbolUsecase{})

	assert.NotNil(t, handler, "handler should not be nil")
	assert.NotNil(t, handler.uc, "usecase should not be nil")
}

// TestSymbolHandler_List はListハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		url             string
		mockListSymbols func(ctx context.Context, classifiable bool) ([]entity.Symbol, error)
		expectedStatus  int
		expectedBody    string
	}{
		{
			name: "success: returns list of symbols",
			url:  "/symbols",
			mockListSymbols: func(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
				assert.False(t, classifiable)
				return []entity.Symbol{
					{Code: "000001.SZ", FirstDate: d, LastDate: d, Days: 1},
					{Code: "600519.SH", FirstDate: d, LastDate: d.AddDate(0, 0, 9), Days: 8},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[
				{"code":"000001.SZ","first_date":"2024-01-02","last_date":"2024-01-02","days":1},
				{"code":"600519.SH","first_date":"2024-01-02","last_date":"2024-01-11","days":8}
			]`,
		},
		{
			name: "success: classifiable filter is passed through",
			url:  "/symbols?classifiable=true",
			mockListSymbols: func(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
				assert.True(t, classifiable)
				return []entity.Symbol{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "failure: classifiable is not a boolean",
			url:            "/symbols?classifiable=maybe",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"classifiable must be a boolean"}`,
		},
		{
			name: "failure: usecase returns error",
			url:  "/symbols",
			mockListSymbols: func(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
		{
			name: "success: returns nil from usecase",
			url:  "/symbols",
			mockListSymbols: func(ctx context.Context, classifiable bool) ([]entity.Symbol, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSymbolHandler(&mockSymbolUsecase{ListSymbolsFunc: tt.mockListSymbols})

			router := gin.New()
			router.GET("/symbols", handler.List)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
