package repository

import (
	"context"
	"errors"
	"testing"

	queueerrors "medq/internal/queue/errors"
	"medq/pkg/kvstore"
)

func TestKVQueueRepository_IncrIssued(t *testing.T) {
	repo := NewKVQueueRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrIssued(ctx, "1", "2025-03-05")
		if err != nil {
			t.Fatalf("IncrIssued() error = %v", err)
		}
		if got != want {
			t.Errorf("IncrIssued() = %d, want %d", got, want)
		}
	}

	if got, _ := repo.IncrIssued(ctx, "1", "2025-03-06"); got != 1 {
		t.Errorf("a new day should restart at 1, got %d", got)
	}
	if got, _ := repo.IncrIssued(ctx, "2", "2025-03-05"); got != 1 {
		t.Errorf("another doctor should restart at 1, got %d", got)
	}
}

func TestKVQueueRepository_Advance(t *testing.T) {
	repo := NewKVQueueRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	if _, found, err := repo.Get(ctx, "1", "2025-03-05"); err != nil || found {
		t.Fatalf("Get() on empty queue = found %v, err %v", found, err)
	}

	_, _ = repo.IncrIssued(ctx, "1", "2025-03-05")
	_, _ = repo.IncrIssued(ctx, "1", "2025-03-05")

	state, err := repo.Advance(ctx, "1", "2025-03-05", 1)
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if state.NowServing != 1 || state.Issued != 2 {
		t.Errorf("unexpected state %+v", state)
	}

	if _, err := repo.Advance(ctx, "1", "2025-03-05", 1); err != nil {
		t.Errorf("re-applying the same pointer should succeed, got %v", err)
	}

	if _, err := repo.Advance(ctx, "1", "2025-03-05", 0); !errors.Is(err, queueerrors.ErrStaleAdvance) {
		t.Errorf("Advance() backwards err = %v, want ErrStaleAdvance", err)
	}

	state, found, err := repo.Get(ctx, "1", "2025-03-05")
	if err != nil || !found || state.NowServing != 1 {
		t.Errorf("pointer should stay at 1, got %+v found=%v err=%v", state, found, err)
	}
}

func TestKVQueueRepository_CorruptPointer(t *testing.T) {
	store := kvstore.NewMemoryStore()
	_ = store.Set(context.Background(), servingKey("1", "2025-03-05"), []byte("seven"))
	repo := NewKVQueueRepository(store)

	if _, _, err := repo.Get(context.Background(), "1", "2025-03-05"); err == nil {
		t.Errorf("Get() should fail on a corrupt pointer")
	}
}
