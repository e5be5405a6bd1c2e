// Package router はginのルーティングを組み立てます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swinghandler "swing_backend/internal/feature/swing/transport/handler"
	symbolhandler "swing_backend/internal/feature/symbollist/transport/handler"
	platformhandler "swing_backend/internal/platform/http/handler"
	"swing_backend/internal/shared/ratelimiter"
)

// Options はルーターの任意設定です。
type Options struct {
	// Limiter がnilでなければ /swings 以下に適用します。
	Limiter *ratelimiter.RateLimiter
	// MetricsPath と Metrics が設定されていれば公開します。
	MetricsPath string
	Metrics     http.Handler
	// AllowOrigins が空の場合はcors.Default()で全オリジンを許可します。
	AllowOrigins []string
}

// NewRouter は /swings と /symbols を含む全ルートを登録します。
func NewRouter(swing *swinghandler.SwingHandler, symbols *symbolhandler.SymbolHandler, health *platformhandler.HealthHandler, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(opts.AllowOrigins))

	// 導通確認用
	r.GET("/healthz", health.Live)
	r.HEAD("/healthz", health.Live)
	r.GET("/readyz", health.Ready)

	if opts.Metrics != nil && opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(opts.Metrics))
	}

	swings := r.Group("/swings")
	if opts.Limiter != nil {
		swings.Use(opts.Limiter.Middleware())
	}
	{
		swings.GET("", swing.GetSwingsBatch)
		swings.POST("/classify", swing.Classify)
		swings.GET("/:code", swing.GetSwings)
		swings.GET("/:code/markers", swing.GetMarkers)
	}

	r.GET("/symbols", symbols.List)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	})
}
