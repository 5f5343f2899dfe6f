package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do(context.Background(), "club_activities|7", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_WaiterHonorsContext(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = g.Do(context.Background(), "slow", func() (any, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err, shared := g.Do(ctx, "slow", func() (any, error) {
		t.Errorf("waiter must not run fn")
		return nil, nil
	})
	close(release)

	if !shared || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected shared deadline error, got shared=%t err=%v", shared, err)
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var runs int
	for i := 0; i < 2; i++ {
		_, _, shared := g.Do(context.Background(), "k", func() (any, error) {
			runs++
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential calls must not share")
		}
	}
	if runs != 2 {
		t.Fatalf("expected two runs, got %d", runs)
	}
}
