package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/hanji/internal/middleware"
	"github.com/hitoshi/hanji/internal/model"
)

// EntryServiceInterface はエントリハンドラーが必要とするサービスインターフェース。
type EntryServiceInterface interface {
	// FetchEntries は見出し語の完全一致でエントリを検索する。
	FetchEntries(ctx context.Context, term string) ([]model.Entry, error)
	// FetchEntry はIDでエントリを1件取得する。見つからない場合はnilを返す。
	FetchEntry(ctx context.Context, id string) (*model.Entry, error)
	// FetchExamples はエントリの例文のみを取得する。
	FetchExamples(ctx context.Context, id string) ([]model.Example, error)
	// Search は全文検索を関連度順で実行し、1ページ分の結果を返す。
	Search(ctx context.Context, query string, cursor int) (model.SearchPage, error)
}

// EntryHandler は辞書エントリ読み取りのHTTPハンドラー。
type EntryHandler struct {
	service EntryServiceInterface
}

// NewEntryHandler はEntryHandlerを生成する。
func NewEntryHandler(service EntryServiceInterface) *EntryHandler {
	return &EntryHandler{service: service}
}

// ListEntries は見出し語でエントリを検索する。
// GET /api/entries?term=나무
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "termパラメータが指定されていません。",
			Category: "user",
			Action:   "検索する見出し語をtermパラメータで指定してください。",
		})
		return
	}

	entries, err := h.service.FetchEntries(r.Context(), term)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetEntry はエントリ詳細を取得する。
// GET /api/entries/:id
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.service.FetchEntry(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if entry == nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewEntryNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// GetExamples はエントリの例文一覧を取得する。
// GET /api/entries/:id/examples
func (h *EntryHandler) GetExamples(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	examples, err := h.service.FetchExamples(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, examples)
}

// Search は全文検索を実行する。
// GET /api/search?query=tree&cursor=20
func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "queryパラメータが指定されていません。",
			Category: "user",
			Action:   "検索語をqueryパラメータで指定してください。",
		})
		return
	}

	// cursorは省略時と解釈不能時に0（先頭ページ）
	cursor := 0
	if c := r.URL.Query().Get("cursor"); c != "" {
		if parsed, err := strconv.Atoi(c); err == nil {
			cursor = parsed
		}
	}

	page, err := h.service.Search(r.Context(), query, cursor)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
