package identifier

import (
	"errors"
	"testing"

	"github.com/hitoshi/hanji/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolve_HangulTerm_ReturnsLegacyKey(t *testing.T) {
	key, err := Resolve("나무")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if key.Kind() != KindLegacyKey {
		t.Errorf("kind = %v, want %v", key.Kind(), KindLegacyKey)
	}
	if key.String() != "나무" {
		t.Errorf("String() = %q, want %q", key.String(), "나무")
	}
	if key.BSON() != "나무" {
		t.Errorf("BSON() = %v, want the verbatim term", key.BSON())
	}
}

func TestResolve_MixedHangul_ReturnsLegacyKey(t *testing.T) {
	// ハングル音節が1文字でも含まれていればレガシーキーとして扱う
	key, err := Resolve("abc나def")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if key.Kind() != KindLegacyKey {
		t.Errorf("kind = %v, want %v", key.Kind(), KindLegacyKey)
	}
}

func TestResolve_ValidHex_ReturnsObjectIDKey(t *testing.T) {
	key, err := Resolve("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if key.Kind() != KindObjectID {
		t.Errorf("kind = %v, want %v", key.Kind(), KindObjectID)
	}

	oid, ok := key.BSON().(primitive.ObjectID)
	if !ok {
		t.Fatalf("BSON() = %T, want primitive.ObjectID", key.BSON())
	}
	if oid.Hex() != "507f1f77bcf86cd799439011" {
		t.Errorf("hex = %q, want %q", oid.Hex(), "507f1f77bcf86cd799439011")
	}
}

func TestResolve_NonHangulNonHex_ReturnsInvalidIdentifier(t *testing.T) {
	tests := []string{
		"not-a-hex-id",
		"tree",
		"",
		"507f1f77", // 短すぎるhex
		"カタカナ",    // ハングルではない非ASCII
	}

	for _, id := range tests {
		_, err := Resolve(id)
		if err == nil {
			t.Errorf("Resolve(%q): expected error, got nil", id)
			continue
		}

		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("Resolve(%q): error type = %T, want *model.APIError", id, err)
			continue
		}
		if apiErr.Code != model.ErrCodeInvalidIdentifier {
			t.Errorf("Resolve(%q): code = %q, want %q", id, apiErr.Code, model.ErrCodeInvalidIdentifier)
		}
	}
}

func TestFromStored_ObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	key := FromStored(oid)

	if key.Kind() != KindObjectID {
		t.Errorf("kind = %v, want %v", key.Kind(), KindObjectID)
	}
	if key.String() != oid.Hex() {
		t.Errorf("String() = %q, want %q", key.String(), oid.Hex())
	}
}

func TestFromStored_LegacyString(t *testing.T) {
	key := FromStored("나무")

	if key.Kind() != KindLegacyKey {
		t.Errorf("kind = %v, want %v", key.Kind(), KindLegacyKey)
	}
	if key.String() != "나무" {
		t.Errorf("String() = %q, want %q", key.String(), "나무")
	}
}

func TestStringify(t *testing.T) {
	oid := primitive.NewObjectID()

	if got := Stringify(oid); got != oid.Hex() {
		t.Errorf("Stringify(ObjectID) = %q, want %q", got, oid.Hex())
	}
	if got := Stringify("나무"); got != "나무" {
		t.Errorf("Stringify(string) = %q, want %q", got, "나무")
	}
}
