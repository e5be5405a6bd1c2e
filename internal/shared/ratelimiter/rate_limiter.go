// Package ratelimiter はトークンバケットによる呼び出し頻度の制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"swing_backend/internal/api"
)

// RateLimiter は1秒あたりrps回、最大burst回までの連続呼び出しを許可します。
type RateLimiter struct {
	l *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow は今すぐ呼び出せる場合にtrueを返し、トークンを1つ消費します。
func (rl *RateLimiter) Allow() bool {
	return rl.l.Allow()
}

// Middleware は上限を超えたリクエストに429を返すginミドルウェアです。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := "1"
	if lim := rl.l.Limit(); lim > 0 && lim < 1 {
		retryAfter = strconv.Itoa(int(1/float64(lim)) + 1)
	}
	return func(c *gin.Context) {
		if !rl.Allow() {
			slog.Warn("rate limit exceeded", "path", c.FullPath(), "client", c.ClientIP())
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
