package sqlitestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskslip/internal/store/sqlitestore"
	"taskslip/internal/task"
)

func openStore(t *testing.T, path string) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.New(path, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestStore_AddListDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "tasks.db"))

	if got := s.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}

	a, err := s.Add(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := s.Add(ctx, "Call mum")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	tasks := s.List(ctx)
	if len(tasks) != 2 || tasks[0] != a || tasks[1] != b {
		t.Fatalf("expected [%+v %+v], got %+v", a, b, tasks)
	}

	ok, err := s.Delete(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, a.ID)
	if err != nil || ok {
		t.Errorf("second Delete: expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}

	tasks = s.List(ctx)
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Errorf("expected only %q to remain, got %+v", b.ID, tasks)
	}
}

func TestStore_SetRecurring(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "tasks.db"))

	created, _ := s.Add(ctx, "Water plants")
	updated, err := s.SetRecurring(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetRecurring: %v", err)
	}
	if !updated.Recurring || updated.Text != "Water plants" {
		t.Errorf("unexpected updated task %+v", updated)
	}

	_, err = s.SetRecurring(ctx, "no-such-id", true)
	if !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	first := openStore(t, path)
	var written []task.Task
	for _, text := range []string{"one", "two", "three"} {
		created, err := first.Add(ctx, text)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		written = append(written, created)
	}
	first.Close()

	second := openStore(t, path)
	got := second.List(ctx)
	if len(got) != len(written) {
		t.Fatalf("expected %d tasks, got %d", len(written), len(got))
	}
	for i := range written {
		if got[i] != written[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, written[i], got[i])
		}
	}
}

func TestStore_CorruptDatabaseReadsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")
	// Larger than one page so SQLite reads the header instead of
	// treating the file as a new database.
	if err := os.WriteFile(path, []byte(strings.Repeat("not a database ", 1000)), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := sqlitestore.New(path, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize should tolerate a corrupt file, got %v", err)
	}
	if got := s.List(ctx); len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
	if _, err := s.Add(ctx, "Buy milk"); err == nil {
		t.Error("expected Add to fail on a corrupt file")
	}
}
