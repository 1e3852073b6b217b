// Package identifier は呼び出し元から渡された不透明なID文字列を
// 型付きのルックアップキーへ解決する。
//
// ストレージには歴史的に2種類のID形式が混在している:
// 固定長16進数のObjectIDと、それ以前に使われていたハングルの
// 見出し語キー（レガシーキー）である。解決は境界で1回だけ行い、
// 以降のコードは生文字列を再検査せずタグ付きのKeyのみを扱う。
package identifier

import (
	"github.com/hitoshi/hanji/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind はキーの種別を表す。
type Kind int

const (
	// KindObjectID は固定長16進数の構造化IDを表す。
	KindObjectID Kind = iota
	// KindLegacyKey はハングルを含む旧形式の見出し語キーを表す。
	KindLegacyKey
)

// Key は解決済みのルックアップキー。種別ごとに正しい型の値を保持する。
type Key struct {
	kind     Kind
	objectID primitive.ObjectID
	legacy   string
}

// Kind はキーの種別を返す。
func (k Key) Kind() Kind {
	return k.kind
}

// BSON はストレージの_idフィルタにそのまま使える値を返す。
func (k Key) BSON() interface{} {
	if k.kind == KindLegacyKey {
		return k.legacy
	}
	return k.objectID
}

// String はキーの外部公開用文字列形を返す。
func (k Key) String() string {
	if k.kind == KindLegacyKey {
		return k.legacy
	}
	return k.objectID.Hex()
}

// Resolve はID文字列を走査してKeyへ解決する。
//
// 1文字でもハングル音節を含む場合はレガシーキーとしてそのまま使い、
// 含まない場合はObjectIDとして解釈する。これは退避手段の無いヒューリス
// ティックであり、ハングルを1文字も含まないレガシーキーはObjectIDとして
// 誤解釈される（ID移行期からの既知の鋭利なエッジ。修正しないこと）。
// 16進数として不正な文字列はInvalidIdentifierエラーになる。
func Resolve(id string) (Key, error) {
	if containsHangul(id) {
		return Key{kind: KindLegacyKey, legacy: id}, nil
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Key{}, model.NewInvalidIdentifierError(id)
	}
	return Key{kind: KindObjectID, objectID: oid}, nil
}

// FromStored はストレージから読み出した_id/参照値をKeyへ復元する。
// ObjectIDと文字列の2形式のみが格納されている前提。
func FromStored(v interface{}) Key {
	switch val := v.(type) {
	case primitive.ObjectID:
		return Key{kind: KindObjectID, objectID: val}
	case string:
		return Key{kind: KindLegacyKey, legacy: val}
	default:
		// 想定外の型は到達しない前提だが、落とさずレガシー扱いにする
		return Key{kind: KindLegacyKey, legacy: Stringify(v)}
	}
}

// Stringify はストレージ上のID値を外部公開用の文字列へ変換する。
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case string:
		return val
	default:
		return ""
	}
}

// containsHangul は文字列にハングル音節（U+AC00〜U+D7A3）が
// 1文字でも含まれるかを返す。
func containsHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}
