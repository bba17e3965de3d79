package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/caseflow/caseflow/internal/model"
)

func result(dataset string) *model.AnalysisResult {
	return &model.AnalysisResult{
		Success:       true,
		RunID:         "run-" + dataset,
		Dataset:       dataset,
		TablesChecked: []string{"orders"},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "sessions.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileStore_CreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Create(ctx, "shop", result("shop"), 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session id is empty")
	}

	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Dataset != "shop" || got.Result.RunID != "run-shop" {
		t.Errorf("got %+v", got)
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFileStore_ListOrdersByCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "a", result("a"), 0)
	time.Sleep(5 * time.Millisecond)
	b, _ := s.Create(ctx, "b", result("b"), 0)

	sessions, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].ID != a.ID || sessions[1].ID != b.ID {
		t.Errorf("order = %s, %s", sessions[0].Dataset, sessions[1].Dataset)
	}
}

func TestFileStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.Create(ctx, "shop", result("shop"), 0)
	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, sess.ID); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	// Deleting an absent id is not an error.
	if err := s.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestFileStore_Expiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.Create(ctx, "shop", result("shop"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if _, err := s.Get(ctx, sess.ID); err != ErrNotFound {
		t.Errorf("expired Get err = %v, want ErrNotFound", err)
	}
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
}

func TestFileStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	ctx := context.Background()

	s1, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sess, _ := s1.Create(ctx, "shop", result("shop"), 0)
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}
	if got.Result.Dataset != "shop" {
		t.Errorf("got %+v", got.Result)
	}
}
