package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/hanji/internal/model"
)

// mockWordOfDayService はWordOfDayServiceInterfaceのテスト用モック。
type mockWordOfDayService struct {
	getFn func(ctx context.Context) (*model.Entry, error)
}

func (m *mockWordOfDayService) Get(ctx context.Context) (*model.Entry, error) {
	return m.getFn(ctx)
}

func TestWordOfDay_ReturnsEntry(t *testing.T) {
	h := NewWordOfDayHandler(&mockWordOfDayService{
		getFn: func(ctx context.Context) (*model.Entry, error) {
			return &model.Entry{ID: "나무", Term: "나무", POS: "noun", Definitions: []string{"tree"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/word-of-day", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	var entry model.Entry
	if err := json.NewDecoder(w.Result().Body).Decode(&entry); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if entry.Term != "나무" {
		t.Errorf("term = %q, want %q", entry.Term, "나무")
	}
}

func TestWordOfDay_EmptyCollection_Returns500(t *testing.T) {
	h := NewWordOfDayHandler(&mockWordOfDayService{
		getFn: func(ctx context.Context) (*model.Entry, error) {
			return nil, errors.New("今日の単語の抽出に失敗しました: エントリコレクションが空です")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/word-of-day", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}
