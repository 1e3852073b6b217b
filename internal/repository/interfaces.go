// Package repository はデータ永続化のインターフェースを定義する。
//
// コアがストレージコラボレータに要求する操作のみを規定し、
// ストレージエンジン自体には関知しない。
package repository

import (
	"context"

	"github.com/hitoshi/hanji/internal/identifier"
)

// EntryStore はエントリ（wordsコレクション）の永続化インターフェース。
type EntryStore interface {
	// FindByTerm は見出し語の完全一致でエントリを検索する。
	// 一致が無い場合は空のスライスを返す（エラーではない）。
	FindByTerm(ctx context.Context, term string) ([]EntryRecord, error)

	// FindByKey は解決済みキーでエントリを1件取得する。見つからない場合はnilを返す。
	FindByKey(ctx context.Context, key identifier.Key) (*EntryRecord, error)

	// FindExamples はエントリのexamplesフィールドのみを射影して取得する。
	// エントリが存在しない、または例文が無い場合はnilを返す。
	FindExamples(ctx context.Context, key identifier.Key) ([]ExampleRecord, error)

	// SearchText は全文検索を関連度スコアの降順で実行する。
	// スコア同点時の順序はストレージエンジンの自然順に委ねる。
	SearchText(ctx context.Context, query string, skip, limit int64) ([]EntryRecord, error)

	// SampleOne はエントリコレクションから無作為に1件取得する。
	// コレクションが空の場合はnilを返す。
	SampleOne(ctx context.Context) (*EntryRecord, error)

	// AppendToEntry は各フィールドへ要素を末尾追記する加算的更新を行い、
	// 更新後のドキュメントを返す。既存値の削除や重複排除は行わない。
	// 対象が見つからない場合はnilを返す。追記対象が無い場合は現状を返す。
	AppendToEntry(ctx context.Context, key identifier.Key, additions EntryAdditions) (*EntryRecord, error)
}

// SuggestionStore は提案（words-suggestionsコレクション）の永続化インターフェース。
type SuggestionStore interface {
	// Insert は新規提案を1件挿入し、採番された_idを返す。
	// 挿入が報告されなかった場合はnilを返す。
	Insert(ctx context.Context, rec *SuggestionRecord) (interface{}, error)

	// FindByKey は解決済みキーで提案を1件取得する。見つからない場合はnilを返す。
	FindByKey(ctx context.Context, key identifier.Key) (*SuggestionRecord, error)

	// FindAll は全提案を取得する。
	FindAll(ctx context.Context) ([]SuggestionRecord, error)

	// ReplaceFields は提案のフィールドを直接代入で上書きし、更新後の
	// ドキュメントを返す。対象が見つからない場合はnilを返す。
	ReplaceFields(ctx context.Context, key identifier.Key, fields SuggestionFields) (*SuggestionRecord, error)

	// MarkApplied は提案のappliedフラグを立て、更新後のドキュメントを返す。
	// 対象が見つからない場合はnilを返す。
	MarkApplied(ctx context.Context, key identifier.Key) (*SuggestionRecord, error)
}
