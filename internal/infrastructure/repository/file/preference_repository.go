package file

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

const PreferencesFileName = "preferences.json"

type PreferenceRepository struct {
	path string
	mu   sync.Mutex
}

func NewPreferenceRepository(dataDir string) *PreferenceRepository {
	return &PreferenceRepository{path: filepath.Join(dataDir, PreferencesFileName)}
}

func (r *PreferenceRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (r *PreferenceRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return err
	}
	items[key] = value

	data, err := sonic.ConfigStd.MarshalIndent(items, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode preferences")
	}
	return writeAtomic(r.path, data)
}

func (r *PreferenceRepository) read() (map[string]string, error) {
	items := make(map[string]string)
	data, err := readOptional(r.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, crerr.Wrapf(err, "decode %s", r.path)
	}
	return items, nil
}
