package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/hanji/internal/model"
)

// WordOfDayServiceInterface は今日の単語ハンドラーが必要とするサービスインターフェース。
type WordOfDayServiceInterface interface {
	// Get は今日の単語を返す。キャッシュが新鮮な間は同じエントリを返し続ける。
	Get(ctx context.Context) (*model.Entry, error)
}

// WordOfDayHandler は今日の単語のHTTPハンドラー。
type WordOfDayHandler struct {
	service WordOfDayServiceInterface
}

// NewWordOfDayHandler はWordOfDayHandlerを生成する。
func NewWordOfDayHandler(service WordOfDayServiceInterface) *WordOfDayHandler {
	return &WordOfDayHandler{service: service}
}

// Get は今日の単語を取得する。
// GET /api/word-of-day
func (h *WordOfDayHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
