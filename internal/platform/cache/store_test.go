package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
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

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "clubs", []int{1})
	if _, ok := store.Get(context.Background(), "clubs"); !ok {
		t.Fatalf("expected fresh entry to be served")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "clubs"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}

	if len(store.entries) != 0 {
		t.Fatalf("expected expired entry removed, got %d entries", len(store.entries))
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)

	store.Delete(ctx, "a")
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	if _, ok := store.Get(ctx, "b"); !ok {
		t.Fatalf("expected b to survive delete")
	}
}

func TestBucketKey(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	first := BucketKey("club_activities", []string{"42", "1", "200"}, time.Hour, base)
	sameWindow := BucketKey("club_activities", []string{"42", "1", "200"}, time.Hour, base.Add(10*time.Minute))
	nextWindow := BucketKey("club_activities", []string{"42", "1", "200"}, time.Hour, base.Add(time.Hour))

	if first != sameWindow {
		t.Fatalf("expected same key inside window: %s vs %s", first, sameWindow)
	}
	if first == nextWindow {
		t.Fatalf("expected new key in next window, got %s", nextWindow)
	}
	if want := "club_activities|42,1,200|"; first[:len(want)] != want {
		t.Fatalf("unexpected key prefix: %s", first)
	}
}
