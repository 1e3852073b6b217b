package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger はデータベース到達性の確認インターフェース。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler はヘルスチェックと稼働時間のHTTPハンドラー。
type HealthHandler struct {
	pinger    Pinger
	startedAt time.Time
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(pinger Pinger, startedAt time.Time) *HealthHandler {
	return &HealthHandler{
		pinger:    pinger,
		startedAt: startedAt,
	}
}

// Health はデータベース到達性を含むヘルスチェックを行う。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Uptime はプロセスの稼働秒数を返す。
// GET /uptime
func (h *HealthHandler) Uptime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}
