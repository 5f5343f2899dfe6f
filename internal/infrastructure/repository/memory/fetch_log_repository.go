package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
)

type FetchLogRepository struct {
	mu    sync.RWMutex
	items map[int64]time.Time
}

func NewFetchLogRepository() *FetchLogRepository {
	return &FetchLogRepository{items: make(map[int64]time.Time)}
}

func (r *FetchLogRepository) Get(_ context.Context, clubID int64) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	at, ok := r.items[clubID]
	return at, ok, nil
}

func (r *FetchLogRepository) Upsert(_ context.Context, clubID int64, fetchedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[clubID] = fetchedAt.UTC()
	return nil
}

func (r *FetchLogRepository) List(_ context.Context) ([]fetchlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fetchlog.Entry, 0, len(r.items))
	for clubID, at := range r.items {
		out = append(out, fetchlog.Entry{ClubID: clubID, LastFetchedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}
