package memory

import (
	"context"
	"sync"
)

type PreferenceRepository struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{items: make(map[string]string)}
}

func (r *PreferenceRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[key]
	return value, ok, nil
}

func (r *PreferenceRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = value
	return nil
}
