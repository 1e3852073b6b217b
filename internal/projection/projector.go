// Package projection は生の格納レコードから安定した外部公開形への
// 純粋な変換を提供する。
//
// 変換は入力を一切変更せず、ストレージに存在しない任意フィールドを
// 外部形に含めない（空配列やfalseの既定値を補わない）。不正なレコード
// （_id欠落など）は呼び出し側の契約違反であり、ここでは処理しない。
package projection

import (
	"github.com/hitoshi/hanji/internal/identifier"
	"github.com/hitoshi/hanji/internal/model"
	"github.com/hitoshi/hanji/internal/repository"
)

// ProjectEntry は生のエントリレコードを外部公開形へ変換する。
// id・term・pos・definitionsは無条件に、それ以外はレコードに存在する
// 場合のみコピーする。
func ProjectEntry(rec *repository.EntryRecord) model.Entry {
	entry := model.Entry{
		ID:          identifier.Stringify(rec.ID),
		Term:        rec.Term,
		POS:         rec.POS,
		Definitions: rec.Definitions,
	}
	if rec.Examples != nil {
		entry.Examples = ProjectExamples(rec.Examples)
	}
	if rec.Antonyms != nil {
		entry.Antonyms = rec.Antonyms
	}
	if rec.Synonyms != nil {
		entry.Synonyms = rec.Synonyms
	}
	if rec.Regular != nil {
		entry.Regular = rec.Regular
	}
	if rec.Note != nil {
		entry.Note = rec.Note
	}
	return entry
}

// ProjectExamples は生の例文リストを{sentence, translation}の列へ変換する。
// それ以外のフィールドは落とす。
func ProjectExamples(records []repository.ExampleRecord) []model.Example {
	examples := make([]model.Example, len(records))
	for i, rec := range records {
		examples[i] = model.Example{
			Sentence:    rec.Sentence,
			Translation: rec.Translation,
		}
	}
	return examples
}

// ProjectSuggestion は生の提案レコードを外部公開形へ変換する。
// idとエントリ参照idを文字列化し、appliedは欠落時falseの厳密な
// 真偽値として扱う。それ以外のフィールドはそのまま通す。
func ProjectSuggestion(rec *repository.SuggestionRecord) model.Suggestion {
	sug := model.Suggestion{
		ID:      identifier.Stringify(rec.ID),
		EntryID: identifier.Stringify(rec.EntryID),
		Applied: rec.Applied,
	}
	if rec.Antonyms != nil {
		sug.Antonyms = rec.Antonyms
	}
	if rec.Synonyms != nil {
		sug.Synonyms = rec.Synonyms
	}
	if rec.Examples != nil {
		sug.Examples = ProjectExamples(rec.Examples)
	}
	return sug
}
