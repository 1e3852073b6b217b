// Package model はドメインモデルを定義する。
package model

// Suggestion はEntryに対する追記提案を表す外部公開形。
// applied はストレージに値が無い場合 false に正規化される。
type Suggestion struct {
	ID       string    `json:"id"`
	EntryID  string    `json:"entryID"`
	Applied  bool      `json:"applied"`
	Antonyms []string  `json:"antonyms,omitempty"`
	Synonyms []string  `json:"synonyms,omitempty"`
	Examples []Example `json:"examples,omitempty"`
}

// SuggestionPayload は提案の作成・編集リクエストの入力値。
// EntryID は作成時のみ使用される。
type SuggestionPayload struct {
	EntryID  string    `json:"entryID"`
	Antonyms []string  `json:"antonyms"`
	Synonyms []string  `json:"synonyms"`
	Examples []Example `json:"examples"`
}

// SuggestionResult は提案系ミューテーションの統一結果。
// 書き込み系の失敗は例外ではなくこの構造化結果で返す。
// Apply の2段階更新でEntryの更新だけ成功した場合、Success=false のまま
// Entry フィールドに更新後のエントリが含まれる。
type SuggestionResult struct {
	Success    bool        `json:"success"`
	Code       string      `json:"code,omitempty"`
	Message    string      `json:"message"`
	Entry      *Entry      `json:"entry,omitempty"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}
