// Package model はドメインモデルを定義する。
package model

// Entry は辞書の見出し語1件を表す外部公開形。
// id・term・definitions は常に存在し、それ以外のフィールドは
// ストレージに存在する場合のみ含まれる（欠落時はnull/空値ではなく省略される）。
type Entry struct {
	ID          string    `json:"id"`
	Term        string    `json:"term"`
	POS         string    `json:"pos"`
	Definitions []string  `json:"definitions"`
	Examples    []Example `json:"examples,omitempty"`
	Antonyms    []string  `json:"antonyms,omitempty"`
	Synonyms    []string  `json:"synonyms,omitempty"`
	Regular     *bool     `json:"regular,omitempty"`
	Note        *string   `json:"note,omitempty"`
}

// Example は例文と訳文のペアを表す。
// 独立したIDを持たず、常にEntryまたはSuggestionの配下にネストされる。
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// SearchPage は全文検索1ページ分の結果を表す。永続化されない。
//
// カーソルの規約:
//   - 最初のページは 0
//   - 以降はクエリ全体で消費した行数
//   - 結果が空になったページで -1（打ち切りセンチネル）
type SearchPage struct {
	Cursor  int     `json:"cursor"`
	Results []Entry `json:"results"`
}
