package database

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestMigrationsFS_ContainsUpAndDownPairs は埋め込みマイグレーションが
// up/downのペアで揃っていることを検証する。
func TestMigrationsFS_ContainsUpAndDownPairs(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one embedded migration file")
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.json"):
			ups[strings.TrimSuffix(name, ".up.json")] = true
		case strings.HasSuffix(name, ".down.json"):
			downs[strings.TrimSuffix(name, ".down.json")] = true
		default:
			t.Errorf("unexpected migration file name: %s", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("migration %s has no down file", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("migration %s has no up file", base)
		}
	}
}

// TestMigrationsFS_FilesAreValidJSON は各マイグレーションファイルが
// コマンド配列のJSONとしてパース可能であることを検証する。
func TestMigrationsFS_FilesAreValidJSON(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	for _, e := range entries {
		data, err := migrationsFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			t.Fatalf("failed to read %s: %v", e.Name(), err)
		}

		var commands []map[string]interface{}
		if err := json.Unmarshal(data, &commands); err != nil {
			t.Errorf("%s is not a valid JSON command array: %v", e.Name(), err)
		}
		if len(commands) == 0 {
			t.Errorf("%s contains no commands", e.Name())
		}
	}
}

// TestMigrationUp_DefinesTextIndex は先頭マイグレーションが
// 全文検索用のtextインデックスを含むことを検証する。
func TestMigrationUp_DefinesTextIndex(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/1_create_indexes.up.json")
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}

	if !strings.Contains(string(data), `"text"`) {
		t.Error("expected text index definition in initial migration")
	}
	if !strings.Contains(string(data), `"words-suggestions"`) {
		t.Error("expected suggestions collection indexes in initial migration")
	}
}
