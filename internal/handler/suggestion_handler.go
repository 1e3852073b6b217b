package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/hanji/internal/middleware"
	"github.com/hitoshi/hanji/internal/model"
)

// SuggestionServiceInterface は提案ハンドラーが必要とするサービスインターフェース。
type SuggestionServiceInterface interface {
	// Create は新規提案をPending状態で永続化する。
	Create(ctx context.Context, payload model.SuggestionPayload) (*model.SuggestionResult, error)
	// Apply は提案を対象エントリへ適用する。
	Apply(ctx context.Context, id string) (*model.SuggestionResult, error)
	// Edit は提案のフィールドを置き換える。
	Edit(ctx context.Context, id string, payload model.SuggestionPayload) (*model.SuggestionResult, error)
	// ListAll は全提案を返す。
	ListAll(ctx context.Context) ([]model.Suggestion, error)
	// FetchOne はIDで提案を1件取得する。見つからない場合はnilを返す。
	FetchOne(ctx context.Context, id string) (*model.Suggestion, error)
}

// SuggestionHandler は提案ワークフローのHTTPハンドラー。
type SuggestionHandler struct {
	service SuggestionServiceInterface
}

// NewSuggestionHandler はSuggestionHandlerを生成する。
func NewSuggestionHandler(service SuggestionServiceInterface) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// suggestionRequest は提案の作成・編集リクエストのボディ。
type suggestionRequest struct {
	EntryID  string          `json:"entryID"`
	Antonyms []string        `json:"antonyms,omitempty"`
	Synonyms []string        `json:"synonyms,omitempty"`
	Examples []model.Example `json:"examples,omitempty"`
}

// resultStatus は構造化結果に対応するHTTPステータスコードを返す。
func resultStatus(result *model.SuggestionResult, successStatus int) int {
	if result.Success {
		return successStatus
	}
	return middleware.StatusForCode(result.Code)
}

// Create は新規提案を作成する。
// POST /api/suggestions
func (h *SuggestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "リクエストボディの形式が不正です。",
			Category: "user",
			Action:   "JSONフォーマットを確認してください。",
		})
		return
	}

	result, err := h.service.Create(r.Context(), model.SuggestionPayload{
		EntryID:  req.EntryID,
		Antonyms: req.Antonyms,
		Synonyms: req.Synonyms,
		Examples: req.Examples,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, resultStatus(result, http.StatusCreated), result)
}

// Apply は提案を対象エントリへ適用する。
// POST /api/suggestions/:id/apply
func (h *SuggestionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.Apply(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, resultStatus(result, http.StatusOK), result)
}

// Edit は提案の内容を置き換える。
// PUT /api/suggestions/:id
func (h *SuggestionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "リクエストボディの形式が不正です。",
			Category: "user",
			Action:   "JSONフォーマットを確認してください。",
		})
		return
	}

	result, err := h.service.Edit(r.Context(), id, model.SuggestionPayload{
		EntryID:  req.EntryID,
		Antonyms: req.Antonyms,
		Synonyms: req.Synonyms,
		Examples: req.Examples,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, resultStatus(result, http.StatusOK), result)
}

// List は全提案の一覧を取得する。
// GET /api/suggestions
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// Get は提案を1件取得する。
// GET /api/suggestions/:id
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sug, err := h.service.FetchOne(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if sug == nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewSuggestionNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, sug)
}
