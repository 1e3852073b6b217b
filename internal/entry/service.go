// Package entry は辞書エントリの読み取り系ドメインロジックを提供する。
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/hanji/internal/identifier"
	"github.com/hitoshi/hanji/internal/metrics"
	"github.com/hitoshi/hanji/internal/model"
	"github.com/hitoshi/hanji/internal/projection"
	"github.com/hitoshi/hanji/internal/repository"
)

// searchPageSize は全文検索の固定ページサイズ。
const searchPageSize = 20

// Service はエントリ読み取りのサービス層。
// 見出し語検索、ID検索、例文取得、ページネーション付き全文検索を提供する。
type Service struct {
	store   repository.EntryStore
	metrics metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい（メトリクス収集なしで動作する）。
func NewService(store repository.EntryStore, recorder metrics.Recorder) *Service {
	return &Service{
		store:   store,
		metrics: recorder,
	}
}

// FetchEntries は見出し語の完全一致でエントリを検索する。
// 一致が無い場合は空のスライスを返す（エラーではない）。
func (s *Service) FetchEntries(ctx context.Context, term string) ([]model.Entry, error) {
	records, err := s.store.FindByTerm(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("エントリの検索に失敗しました: %w", err)
	}

	entries := make([]model.Entry, 0, len(records))
	for i := range records {
		entries = append(entries, projection.ProjectEntry(&records[i]))
	}
	return entries, nil
}

// FetchEntry はIDでエントリを1件取得する。見つからない場合はnilを返す。
// 不正なID文字列はInvalidIdentifierエラーになる。
func (s *Service) FetchEntry(ctx context.Context, id string) (*model.Entry, error) {
	key, err := identifier.Resolve(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("エントリの取得に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordEntryLookup(rec != nil)
	}
	if rec == nil {
		return nil, nil
	}

	entry := projection.ProjectEntry(rec)
	return &entry, nil
}

// FetchExamples はIDで指定したエントリの例文のみを取得する。
// エントリが存在しない、または例文が無い場合は空のスライスを返す。
func (s *Service) FetchExamples(ctx context.Context, id string) ([]model.Example, error) {
	key, err := identifier.Resolve(id)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindExamples(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("例文の取得に失敗しました: %w", err)
	}
	if records == nil {
		return []model.Example{}, nil
	}
	return projection.ProjectExamples(records), nil
}

// Search は全文検索を関連度順で実行し、1ページ分の結果を返す。
//
// ページサイズは20固定。cursorをオフセットとして使用し（未指定時は0）、
// 結果が空のページではカーソルを-1（打ち切りセンチネル）に、それ以外は
// クエリ全体で消費した行数に進める。
func (s *Service) Search(ctx context.Context, query string, cursor int) (model.SearchPage, error) {
	if cursor < 0 {
		cursor = 0
	}

	start := time.Now()
	records, err := s.store.SearchText(ctx, query, int64(cursor), searchPageSize)
	if err != nil {
		return model.SearchPage{}, fmt.Errorf("全文検索に失敗しました: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordSearch(time.Since(start), len(records))
	}

	entries := make([]model.Entry, 0, len(records))
	for i := range records {
		entries = append(entries, projection.ProjectEntry(&records[i]))
	}

	next := cursor + len(entries)
	if len(entries) == 0 {
		next = -1
	}

	return model.SearchPage{
		Cursor:  next,
		Results: entries,
	}, nil
}
