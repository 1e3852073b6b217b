// Package suggestion は提案ワークフローのドメインロジックを提供する。
//
// 提案の状態機械は Pending → Applied（終端）の一方向であり、
// 編集はPendingのまま内容を置き換える。適用は冪等ガード付きの
// 2段階更新（エントリへの加算的マージ → appliedフラグ設定）で行う。
package suggestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/hanji/internal/identifier"
	"github.com/hitoshi/hanji/internal/metrics"
	"github.com/hitoshi/hanji/internal/model"
	"github.com/hitoshi/hanji/internal/projection"
	"github.com/hitoshi/hanji/internal/repository"
	"github.com/hitoshi/hanji/internal/security"
)

// EntryFinder は提案の参照先エントリを確認するためのインターフェース。
// entry.Serviceが実装する。
type EntryFinder interface {
	// FetchEntry はIDでエントリを1件取得する。見つからない場合はnilを返す。
	FetchEntry(ctx context.Context, id string) (*model.Entry, error)
}

// Service は提案ワークフローのサービス層。
type Service struct {
	store      repository.SuggestionStore
	entryStore repository.EntryStore
	entries    EntryFinder
	sanitizer  security.TextSanitizerService
	metrics    metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(
	store repository.SuggestionStore,
	entryStore repository.EntryStore,
	entries EntryFinder,
	sanitizer security.TextSanitizerService,
	recorder metrics.Recorder,
) *Service {
	return &Service{
		store:      store,
		entryStore: entryStore,
		entries:    entries,
		sanitizer:  sanitizer,
		metrics:    recorder,
	}
}

// Create は新規提案をPending状態で永続化する。
//
// 参照先エントリの存在を先に確認し、存在しない場合はReferenceNotFoundの
// 構造化失敗を返す。ペイロードは永続化の前にフィルタされる: 空文字列の
// 類義語・対義語、および例文か訳文が空の例文ペアは落とされる。
func (s *Service) Create(ctx context.Context, payload model.SuggestionPayload) (*model.SuggestionResult, error) {
	entry, err := s.entries.FetchEntry(ctx, payload.EntryID)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			return failure(apiErr.Code, apiErr.Message), nil
		}
		return nil, fmt.Errorf("参照先エントリの確認に失敗しました: %w", err)
	}
	if entry == nil {
		return failure(model.ErrCodeReferenceNotFound,
			fmt.Sprintf("参照先のエントリが存在しません: %s", payload.EntryID)), nil
	}

	key, err := identifier.Resolve(payload.EntryID)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			return failure(apiErr.Code, apiErr.Message), nil
		}
		return nil, err
	}

	rec := &repository.SuggestionRecord{
		EntryID:  key.BSON(),
		Antonyms: s.filterTerms(payload.Antonyms),
		Synonyms: s.filterTerms(payload.Synonyms),
		Examples: s.filterExamples(payload.Examples),
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil || id == nil {
		return failure(model.ErrCodePersistenceFailure, "提案の保存に失敗しました"), nil
	}
	rec.ID = id

	if s.metrics != nil {
		s.metrics.RecordSuggestionCreated()
	}

	sug := projection.ProjectSuggestion(rec)
	return &model.SuggestionResult{
		Success:    true,
		Message:    "提案を作成しました",
		Suggestion: &sug,
	}, nil
}

// Apply は提案を対象エントリへ適用する。
//
// すでにapplied=trueの提案はAlreadyAppliedで即座に失敗し、エントリに
// 一切触れない（冪等ガード）。マージは加算的で、存在するフィールドを
// そのままエントリの対応フィールドへ末尾追記する。重複は許容される。
//
// 2段階更新はトランザクションで括られていない: エントリ更新後にフラグ
// 設定が失敗した場合、結果はエントリ更新済みであることを保持したまま、
// フラグ設定の失敗を区別して通知する。この状態からの再適用は同じ値を
// 再度追記する（重複が生じるが安全）。
func (s *Service) Apply(ctx context.Context, id string) (*model.SuggestionResult, error) {
	key, err := identifier.Resolve(id)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			return failure(apiErr.Code, apiErr.Message), nil
		}
		return nil, err
	}

	sug, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("提案の取得に失敗しました: %w", err)
	}
	if sug == nil {
		return failure(model.ErrCodeSuggestionNotFound,
			fmt.Sprintf("指定された提案が見つかりません: %s", id)), nil
	}

	if sug.Applied {
		if s.metrics != nil {
			s.metrics.RecordSuggestionApplied("already_applied")
		}
		return failure(model.ErrCodeAlreadyApplied, "この提案はすでに適用されています"), nil
	}

	additions := repository.EntryAdditions{
		Antonyms: sug.Antonyms,
		Synonyms: sug.Synonyms,
		Examples: sug.Examples,
	}

	entryKey := identifier.FromStored(sug.EntryID)
	updated, err := s.entryStore.AppendToEntry(ctx, entryKey, additions)
	if err != nil {
		return nil, fmt.Errorf("エントリへの提案の適用に失敗しました: %w", err)
	}
	if updated == nil {
		if s.metrics != nil {
			s.metrics.RecordSuggestionApplied("failed")
		}
		return failure(model.ErrCodePersistenceFailure, "対象エントリの更新に失敗しました"), nil
	}

	entry := projection.ProjectEntry(updated)

	marked, err := s.store.MarkApplied(ctx, key)
	if err != nil || marked == nil {
		// エントリ更新は完了している。フラグ設定の失敗として区別して返す。
		if s.metrics != nil {
			s.metrics.RecordSuggestionApplied("failed")
		}
		result := failure(model.ErrCodePersistenceFailure,
			"エントリは更新されましたが、提案への適用フラグの設定に失敗しました")
		result.Entry = &entry
		return result, nil
	}

	if s.metrics != nil {
		s.metrics.RecordSuggestionApplied("applied")
	}

	applied := projection.ProjectSuggestion(marked)
	return &model.SuggestionResult{
		Success:    true,
		Message:    "提案を適用しました",
		Entry:      &entry,
		Suggestion: &applied,
	}, nil
}

// Edit は提案のフィールドを与えられたペイロードで直接置き換える。
// 加算ではなく代入であり、空値フィルタは行わない（作成時のみ）。
// applied済みの提案に対するガードは意図的に行わない: 適用後の編集は
// マージ済みエントリへ影響しない無害な上書きとして許容されている。
func (s *Service) Edit(ctx context.Context, id string, payload model.SuggestionPayload) (*model.SuggestionResult, error) {
	key, err := identifier.Resolve(id)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			return failure(apiErr.Code, apiErr.Message), nil
		}
		return nil, err
	}

	fields := repository.SuggestionFields{
		Antonyms: s.sanitizeTerms(payload.Antonyms),
		Synonyms: s.sanitizeTerms(payload.Synonyms),
		Examples: s.sanitizeExamples(payload.Examples),
	}

	updated, err := s.store.ReplaceFields(ctx, key, fields)
	if err != nil {
		return nil, fmt.Errorf("提案の編集に失敗しました: %w", err)
	}
	if updated == nil {
		return failure(model.ErrCodePersistenceFailure, "提案の編集に失敗しました"), nil
	}

	sug := projection.ProjectSuggestion(updated)
	return &model.SuggestionResult{
		Success:    true,
		Message:    "提案を編集しました",
		Suggestion: &sug,
	}, nil
}

// ListAll は全提案を外部公開形で返す。
func (s *Service) ListAll(ctx context.Context) ([]model.Suggestion, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("提案一覧の取得に失敗しました: %w", err)
	}

	suggestions := make([]model.Suggestion, 0, len(records))
	for i := range records {
		suggestions = append(suggestions, projection.ProjectSuggestion(&records[i]))
	}
	return suggestions, nil
}

// FetchOne はIDで提案を1件取得する。見つからない場合はnilを返す。
func (s *Service) FetchOne(ctx context.Context, id string) (*model.Suggestion, error) {
	key, err := identifier.Resolve(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("提案の取得に失敗しました: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	sug := projection.ProjectSuggestion(rec)
	return &sug, nil
}

// filterTerms は各語をサニタイズし、空文字列になったものを落とす。
// 生き残りが無い場合はnilを返す（フィールドごと省略される）。
func (s *Service) filterTerms(terms []string) []string {
	var kept []string
	for _, t := range terms {
		clean := s.sanitizer.Sanitize(t)
		if len(clean) > 0 {
			kept = append(kept, clean)
		}
	}
	return kept
}

// filterExamples は例文ペアをサニタイズし、例文か訳文が空のペアを落とす。
func (s *Service) filterExamples(examples []model.Example) []repository.ExampleRecord {
	var kept []repository.ExampleRecord
	for _, ex := range examples {
		sentence := s.sanitizer.Sanitize(ex.Sentence)
		translation := s.sanitizer.Sanitize(ex.Translation)
		if len(sentence) > 0 && len(translation) > 0 {
			kept = append(kept, repository.ExampleRecord{
				Sentence:    sentence,
				Translation: translation,
			})
		}
	}
	return kept
}

// sanitizeTerms は編集用に各語をサニタイズする。空値フィルタは行わない。
func (s *Service) sanitizeTerms(terms []string) []string {
	if terms == nil {
		return nil
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = s.sanitizer.Sanitize(t)
	}
	return out
}

// sanitizeExamples は編集用に例文ペアをサニタイズする。空値フィルタは行わない。
func (s *Service) sanitizeExamples(examples []model.Example) []repository.ExampleRecord {
	if examples == nil {
		return nil
	}
	out := make([]repository.ExampleRecord, len(examples))
	for i, ex := range examples {
		out[i] = repository.ExampleRecord{
			Sentence:    s.sanitizer.Sanitize(ex.Sentence),
			Translation: s.sanitizer.Sanitize(ex.Translation),
		}
	}
	return out
}

// failure は構造化失敗結果を生成する。
func failure(code, message string) *model.SuggestionResult {
	return &model.SuggestionResult{
		Success: false,
		Code:    code,
		Message: message,
	}
}
