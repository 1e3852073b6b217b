package repository

// レコード型はストレージ上のドキュメント形をそのまま表す。
// 可変形状のドキュメントを許容するため、任意フィールドはomitemptyを付け、
// 欠落時はゼロ値（スライスはnil）のままになる。外部公開形への変換は
// projectionパッケージが行う。

// ExampleRecord はストレージ上の例文サブドキュメント。
type ExampleRecord struct {
	Sentence    string `bson:"sentence"`
	Translation string `bson:"translation"`
}

// EntryRecord はwordsコレクションの生ドキュメント。
// _id はObjectIDとレガシーキー（文字列）の2形式が混在するためinterface{}で保持する。
type EntryRecord struct {
	ID          interface{}     `bson:"_id,omitempty"`
	Term        string          `bson:"term"`
	POS         string          `bson:"pos"`
	Definitions []string        `bson:"definitions"`
	Examples    []ExampleRecord `bson:"examples,omitempty"`
	Antonyms    []string        `bson:"antonyms,omitempty"`
	Synonyms    []string        `bson:"synonyms,omitempty"`
	Regular     *bool           `bson:"regular,omitempty"`
	Note        *string         `bson:"note,omitempty"`

	// Score は全文検索時のみtextScoreのメタ射影で埋まる。永続化されない。
	Score float64 `bson:"score,omitempty"`
}

// SuggestionRecord はwords-suggestionsコレクションの生ドキュメント。
type SuggestionRecord struct {
	ID       interface{}     `bson:"_id,omitempty"`
	EntryID  interface{}     `bson:"entryID"`
	Antonyms []string        `bson:"antonyms,omitempty"`
	Synonyms []string        `bson:"synonyms,omitempty"`
	Examples []ExampleRecord `bson:"examples,omitempty"`
	Applied  bool            `bson:"applied,omitempty"`
}

// EntryAdditions は適用時にエントリへ追記するフィールド集合。
// nilのフィールドは追記対象にならない。
type EntryAdditions struct {
	Antonyms []string
	Synonyms []string
	Examples []ExampleRecord
}

// SuggestionFields は編集時に提案へ上書き設定するフィールド集合。
// nilのフィールドは変更されない（直接代入の対象外）。
type SuggestionFields struct {
	Antonyms []string
	Synonyms []string
	Examples []ExampleRecord
}
