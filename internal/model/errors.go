// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, entry, suggestion, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEntryNotFound      = "ENTRY_NOT_FOUND"
	ErrCodeSuggestionNotFound = "SUGGESTION_NOT_FOUND"
	ErrCodeReferenceNotFound  = "REFERENCE_NOT_FOUND"
	ErrCodeInvalidIdentifier  = "INVALID_IDENTIFIER"
	ErrCodeAlreadyApplied     = "ALREADY_APPLIED"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
)

// NewInvalidIdentifierError は不正なID文字列エラーを生成する。
// ObjectID形式として解釈できず、ハングルを含むレガシーキーでもないIDに対して返す。
func NewInvalidIdentifierError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidIdentifier,
		Message:  fmt.Sprintf("不正なID形式です: %s", id),
		Category: "validation",
		Action:   "24桁の16進数ID、または見出し語キーを指定してください。",
	}
}

// NewEntryNotFoundError はエントリ未検出エラーを生成する。
// 読み取り系は欠落を値として返すため、このエラーはHTTP層でのみ使用する。
func NewEntryNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeEntryNotFound,
		Message:  fmt.Sprintf("指定されたエントリが見つかりません: %s", id),
		Category: "entry",
		Action:   "エントリIDを確認してください。",
	}
}

// NewSuggestionNotFoundError は提案未検出エラーを生成する。
func NewSuggestionNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeSuggestionNotFound,
		Message:  fmt.Sprintf("指定された提案が見つかりません: %s", id),
		Category: "suggestion",
		Action:   "提案IDを確認してください。",
	}
}
