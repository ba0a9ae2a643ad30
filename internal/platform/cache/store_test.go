package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix_DropsMatchingKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "pokemon:id:1", "bulbasaur")
	store.Set(ctx, "pokemon:list:id-asc", "list")
	store.Set(ctx, "team:id:1", "team")

	store.DeletePrefix(ctx, "pokemon:")

	if _, ok := store.Get(ctx, "pokemon:id:1"); ok {
		t.Fatalf("expected pokemon key to be dropped")
	}
	if _, ok := store.Get(ctx, "team:id:1"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
	if got := store.Len(); got != 1 {
		t.Fatalf("unexpected entry count: %d", got)
	}
}

func TestStore_Get_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "k", "v")

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_GetOrLoad_SkipsWriteBackAfterInvalidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	_, err := store.GetOrLoad(ctx, "pokemon:count", func(ctx context.Context) (any, error) {
		store.DeletePrefix(ctx, "pokemon:")
		return 10, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if _, ok := store.Get(ctx, "pokemon:count"); ok {
		t.Fatalf("expected stale load not to be cached")
	}
}

func TestStore_SweepAndStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(ctx, "old", 1)
	now = now.Add(30 * time.Second)
	store.Set(ctx, "fresh", 2)
	now = now.Add(45 * time.Second)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected one expired entry, removed %d", removed)
	}
	if _, ok := store.Get(ctx, "fresh"); !ok {
		t.Fatalf("expected fresh entry to survive sweep")
	}
	if _, ok := store.Get(ctx, "old"); ok {
		t.Fatalf("expected old entry to be gone")
	}

	stats := store.Stats()
	if stats.Entries != 1 || stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStore_RunJanitor_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore(time.Millisecond)
	store.Set(ctx, "k", "v")

	swept := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		store.RunJanitor(ctx, 5*time.Millisecond, func(removed int) {
			select {
			case swept <- removed:
			default:
			}
		})
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatalf("janitor never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("janitor did not stop after cancel")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be swept")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
