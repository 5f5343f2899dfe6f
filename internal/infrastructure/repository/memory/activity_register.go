package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

type ActivityRegister struct {
	mu    sync.RWMutex
	items []activity.Record
}

func NewActivityRegister(seed []activity.Record) *ActivityRegister {
	return &ActivityRegister{items: append([]activity.Record(nil), seed...)}
}

func (r *ActivityRegister) Load(_ context.Context) ([]activity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]activity.Record(nil), r.items...), nil
}

func (r *ActivityRegister) Replace(_ context.Context, records []activity.Record) error {
	items := append([]activity.Record(nil), records...)

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}
