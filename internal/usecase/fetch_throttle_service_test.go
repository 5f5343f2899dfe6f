package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	fetchlogmock "github.com/riskibarqy/club-activity/internal/mocks/domain/fetchlog"
)

func TestFetchThrottleService_LastFetch_AbsentIsSentinelUsingMockery(t *testing.T) {
	t.Parallel()

	repo := fetchlogmock.NewRepository(t)
	service := NewFetchThrottleService(repo, time.Hour, nil)

	repo.On("Get", mock.Anything, int64(42)).Return(time.Time{}, false, nil).Once()

	if got := service.LastFetch(context.Background(), 42); !got.Equal(fetchlog.NeverFetched) {
		t.Fatalf("expected sentinel, got %s", got)
	}
}

func TestFetchThrottleService_LastFetch_ReadErrorIsSentinelUsingMockery(t *testing.T) {
	t.Parallel()

	repo := fetchlogmock.NewRepository(t)
	service := NewFetchThrottleService(repo, time.Hour, nil)

	repo.On("Get", mock.Anything, int64(42)).Return(time.Time{}, false, errors.New("corrupt log")).Once()

	if got := service.LastFetch(context.Background(), 42); !got.Equal(fetchlog.NeverFetched) {
		t.Fatalf("expected sentinel on read error, got %s", got)
	}
}

func TestFetchThrottleService_ShouldFetch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	log := newFetchLogStub()
	log.entries[1] = now.Add(-2 * time.Hour)
	log.entries[2] = now.Add(-7 * time.Hour)

	service := NewFetchThrottleService(log, 6*time.Hour, nil)

	if due, last := service.ShouldFetch(context.Background(), 1, now); due || !last.Equal(now.Add(-2*time.Hour)) {
		t.Fatalf("expected club 1 inside cooldown, due=%v last=%s", due, last)
	}
	if due, _ := service.ShouldFetch(context.Background(), 2, now); !due {
		t.Fatalf("expected club 2 due")
	}
	if due, last := service.ShouldFetch(context.Background(), 3, now); !due || !last.Equal(fetchlog.NeverFetched) {
		t.Fatalf("expected never-fetched club due, due=%v last=%s", due, last)
	}

	disabled := NewFetchThrottleService(log, 0, nil)
	if due, _ := disabled.ShouldFetch(context.Background(), 1, now); !due {
		t.Fatalf("expected zero cooldown to disable throttling")
	}
}

func TestFetchThrottleService_RecordFetchUsingMockery(t *testing.T) {
	t.Parallel()

	repo := fetchlogmock.NewRepository(t)
	service := NewFetchThrottleService(repo, time.Hour, nil)
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	repo.On("Upsert", mock.Anything, int64(42), at).Return(nil).Once()

	if err := service.RecordFetch(context.Background(), 42, at); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	if err := service.RecordFetch(context.Background(), 0, at); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing club id, got %v", err)
	}
}

func TestFetchThrottleService_ListSortsByClub(t *testing.T) {
	t.Parallel()

	log := newFetchLogStub()
	log.entries[9] = fetchlog.NeverFetched
	log.entries[3] = fetchlog.NeverFetched

	entries, err := NewFetchThrottleService(log, time.Hour, nil).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ClubID != 3 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
