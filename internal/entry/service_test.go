package entry

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/hanji/internal/identifier"
	"github.com/hitoshi/hanji/internal/model"
	"github.com/hitoshi/hanji/internal/repository"
)

// mockEntryStore はrepository.EntryStoreのテスト用モック。
type mockEntryStore struct {
	findByTermFn    func(ctx context.Context, term string) ([]repository.EntryRecord, error)
	findByKeyFn     func(ctx context.Context, key identifier.Key) (*repository.EntryRecord, error)
	findExamplesFn  func(ctx context.Context, key identifier.Key) ([]repository.ExampleRecord, error)
	searchTextFn    func(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error)
	sampleOneFn     func(ctx context.Context) (*repository.EntryRecord, error)
	appendToEntryFn func(ctx context.Context, key identifier.Key, additions repository.EntryAdditions) (*repository.EntryRecord, error)
}

func (m *mockEntryStore) FindByTerm(ctx context.Context, term string) ([]repository.EntryRecord, error) {
	return m.findByTermFn(ctx, term)
}

func (m *mockEntryStore) FindByKey(ctx context.Context, key identifier.Key) (*repository.EntryRecord, error) {
	return m.findByKeyFn(ctx, key)
}

func (m *mockEntryStore) FindExamples(ctx context.Context, key identifier.Key) ([]repository.ExampleRecord, error) {
	return m.findExamplesFn(ctx, key)
}

func (m *mockEntryStore) SearchText(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error) {
	return m.searchTextFn(ctx, query, skip, limit)
}

func (m *mockEntryStore) SampleOne(ctx context.Context) (*repository.EntryRecord, error) {
	return m.sampleOneFn(ctx)
}

func (m *mockEntryStore) AppendToEntry(ctx context.Context, key identifier.Key, additions repository.EntryAdditions) (*repository.EntryRecord, error) {
	return m.appendToEntryFn(ctx, key, additions)
}

func TestFetchEntries_NoMatches_ReturnsEmptySlice(t *testing.T) {
	svc := NewService(&mockEntryStore{
		findByTermFn: func(ctx context.Context, term string) ([]repository.EntryRecord, error) {
			return []repository.EntryRecord{}, nil
		},
	}, nil)

	entries, err := svc.FetchEntries(context.Background(), "유령")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("entries count = %d, want 0", len(entries))
	}
}

func TestFetchEntries_ProjectsRecords(t *testing.T) {
	svc := NewService(&mockEntryStore{
		findByTermFn: func(ctx context.Context, term string) ([]repository.EntryRecord, error) {
			return []repository.EntryRecord{
				{ID: "나무", Term: "나무", POS: "noun", Definitions: []string{"tree"}},
				{ID: "나무", Term: "나무", POS: "noun", Definitions: []string{"wood"}},
			}, nil
		},
	}, nil)

	entries, err := svc.FetchEntries(context.Background(), "나무")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries count = %d, want 2", len(entries))
	}
	if entries[0].ID != "나무" {
		t.Errorf("ID = %q, want %q", entries[0].ID, "나무")
	}
}

func TestFetchEntry_InvalidID_ReturnsInvalidIdentifier(t *testing.T) {
	svc := NewService(&mockEntryStore{}, nil)

	_, err := svc.FetchEntry(context.Background(), "not-a-hex-id")
	if err == nil {
		t.Fatal("expected error for invalid identifier")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidIdentifier {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchEntry_NotFound_ReturnsNil(t *testing.T) {
	svc := NewService(&mockEntryStore{
		findByKeyFn: func(ctx context.Context, key identifier.Key) (*repository.EntryRecord, error) {
			return nil, nil
		},
	}, nil)

	entry, err := svc.FetchEntry(context.Background(), "나무")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil entry, got %+v", entry)
	}
}

func TestFetchExamples_AbsentEntry_ReturnsEmptySlice(t *testing.T) {
	svc := NewService(&mockEntryStore{
		findExamplesFn: func(ctx context.Context, key identifier.Key) ([]repository.ExampleRecord, error) {
			return nil, nil
		},
	}, nil)

	examples, err := svc.FetchExamples(context.Background(), "나무")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if examples == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(examples) != 0 {
		t.Errorf("examples count = %d, want 0", len(examples))
	}
}

func TestSearch_EmptyFirstPage_ReturnsSentinelCursor(t *testing.T) {
	svc := NewService(&mockEntryStore{
		searchTextFn: func(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error) {
			return []repository.EntryRecord{}, nil
		},
	}, nil)

	page, err := svc.Search(context.Background(), "ghost", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Cursor != -1 {
		t.Errorf("cursor = %d, want -1", page.Cursor)
	}
	if len(page.Results) != 0 {
		t.Errorf("results count = %d, want 0", len(page.Results))
	}
}

// TestSearch_Pagination は25件ヒットするクエリのページ遷移
// (0 → 20 → 25 → -1) を検証する。
func TestSearch_Pagination(t *testing.T) {
	total := 25
	store := &mockEntryStore{
		searchTextFn: func(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error) {
			if limit != 20 {
				t.Errorf("limit = %d, want 20", limit)
			}
			remaining := total - int(skip)
			if remaining < 0 {
				remaining = 0
			}
			count := remaining
			if count > int(limit) {
				count = int(limit)
			}
			records := make([]repository.EntryRecord, count)
			for i := range records {
				records[i] = repository.EntryRecord{
					ID: "나무", Term: "나무", POS: "noun", Definitions: []string{"tree"},
				}
			}
			return records, nil
		},
	}
	svc := NewService(store, nil)
	ctx := context.Background()

	first, err := svc.Search(ctx, "tree", 0)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Results) != 20 || first.Cursor != 20 {
		t.Fatalf("first page: results=%d cursor=%d, want 20/20", len(first.Results), first.Cursor)
	}

	second, err := svc.Search(ctx, "tree", first.Cursor)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Results) != 5 || second.Cursor != 25 {
		t.Fatalf("second page: results=%d cursor=%d, want 5/25", len(second.Results), second.Cursor)
	}

	third, err := svc.Search(ctx, "tree", second.Cursor)
	if err != nil {
		t.Fatalf("third page: %v", err)
	}
	if len(third.Results) != 0 || third.Cursor != -1 {
		t.Fatalf("third page: results=%d cursor=%d, want 0/-1", len(third.Results), third.Cursor)
	}
}

func TestSearch_NegativeCursor_ClampsToZero(t *testing.T) {
	var capturedSkip int64 = -99
	svc := NewService(&mockEntryStore{
		searchTextFn: func(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error) {
			capturedSkip = skip
			return []repository.EntryRecord{}, nil
		},
	}, nil)

	if _, err := svc.Search(context.Background(), "tree", -5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedSkip != 0 {
		t.Errorf("skip = %d, want 0", capturedSkip)
	}
}

func TestSearch_StoreError_Propagates(t *testing.T) {
	svc := NewService(&mockEntryStore{
		searchTextFn: func(ctx context.Context, query string, skip, limit int64) ([]repository.EntryRecord, error) {
			return nil, errors.New("connection reset")
		},
	}, nil)

	if _, err := svc.Search(context.Background(), "tree", 0); err == nil {
		t.Fatal("expected error to propagate")
	}
}
