package ledger

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry, err := store.Begin(ctx, "/media/Video-01.avi", "Show-1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if entry.State != "created" {
		t.Fatalf("unexpected initial state: %q", entry.State)
	}

	got, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Show-1" || got.SourcePath != "/media/Video-01.avi" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestUpdatePersistsOutcome(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry, err := store.Begin(ctx, "/media/Video-02.avi", "Show-2")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	entry.State = "failed"
	entry.DecodeStatus = "exit 1"
	entry.EncodeStatus = "terminated by terminated"
	entry.ErrorMessage = "decode stage failed"
	if err := store.Update(ctx, entry); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Failed() {
		t.Fatalf("expected failed entry, got state %q", got.State)
	}
	if got.DecodeStatus != "exit 1" || got.EncodeStatus != "terminated by terminated" {
		t.Fatalf("unexpected statuses: %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := store.Begin(ctx, "/media/"+name+".avi", name); err != nil {
			t.Fatalf("begin %s: %v", name, err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "c" || entries[1].Title != "b" {
		t.Fatalf("unexpected ordering: %s, %s", entries[0].Title, entries[1].Title)
	}
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := store.Begin(context.Background(), "x", "y"); err != nil {
		t.Fatalf("begin on nil store: %v", err)
	}
	if err := store.Update(context.Background(), nil); err != nil {
		t.Fatalf("update on nil store: %v", err)
	}
}
