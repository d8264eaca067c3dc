package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

func TestRunLifecycle(t *testing.T) {
	r := New("photo.png", "random", "lightness", 42)
	if r.Status != StatusPending {
		t.Errorf("new run status = %q, want pending", r.Status)
	}
	if r.ID == uuid.Nil {
		t.Error("new run has nil ID")
	}

	r.Start()
	if r.Status != StatusRunning {
		t.Errorf("status = %q, want running", r.Status)
	}

	r.Complete(110, 800, 600, "out.png")
	if r.Status != StatusComplete || r.Rule != 110 || r.OutputRef != "out.png" {
		t.Errorf("completed run = %+v", r)
	}
	if r.Width != 800 || r.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", r.Width, r.Height)
	}
}

func TestRunFail(t *testing.T) {
	r := New("photo.png", "edges", "hue", 1)
	r.Fail(errors.New(errors.ErrCodeEffectPrecondition, "no source available"))
	if r.Status != StatusFailed {
		t.Errorf("status = %q, want failed", r.Status)
	}
	if r.Error != "no source available" {
		t.Errorf("error message = %q", r.Error)
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	a := New("a.png", "random", "lightness", 1)
	b := New("b.png", "waves", "hue", 2)
	b.CreatedAt = a.CreatedAt.Add(time.Second)

	if err := store.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, b); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SourceRef != "a.png" {
		t.Errorf("Get = %+v, want run a", got)
	}

	runs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].ID != b.ID {
		t.Error("list is not ordered newest first")
	}

	// Updates replace the stored record.
	a.Start()
	a.Complete(30, 10, 10, "out.png")
	if err := store.Put(ctx, a); err != nil {
		t.Fatalf("Put update: %v", err)
	}
	got, _ = store.Get(ctx, a.ID)
	if got.Status != StatusComplete {
		t.Errorf("updated status = %q, want complete", got.Status)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, a.ID); errors.GetCode(err) != errors.ErrCodeRunNotFound {
		t.Errorf("deleted run: code = %v, want RUN_NOT_FOUND", errors.GetCode(err))
	}
	if err := store.Delete(ctx, a.ID); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	testStore(t, store)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	r := New("a.png", "random", "lightness", 1)
	_ = store.Put(ctx, r)

	got, _ := store.Get(ctx, r.ID)
	got.Status = StatusFailed

	again, _ := store.Get(ctx, r.ID)
	if again.Status != StatusPending {
		t.Error("store handed out a shared pointer")
	}
}

func TestGetUnknownRun(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), uuid.New())
	if errors.GetCode(err) != errors.ErrCodeRunNotFound {
		t.Errorf("code = %v, want RUN_NOT_FOUND", errors.GetCode(err))
	}
}
