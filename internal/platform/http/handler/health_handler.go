// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存先の疎通確認です。nilを返せば正常です。
type Check func(ctx context.Context) error

// HealthHandler は /healthz（プロセスの生存）と /readyz（依存先の疎通）を処理します。
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler は名前付きの疎通確認を持つHealthHandlerを生成します。
// nilのCheckは無視されます。
func NewHealthHandler(timeout time.Duration, checks map[string]Check) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	cs := make(map[string]Check, len(checks))
	for name, c := range checks {
		if c != nil {
			cs[name] = c
		}
	}
	return &HealthHandler{checks: cs, timeout: timeout}
}

// Live はプロセスが応答できることだけを返します。キャッシュを防止します。
func (h *HealthHandler) Live(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready はすべての疎通確認を実行し、1つでも失敗すれば503を返します。
func (h *HealthHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
