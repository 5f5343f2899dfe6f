package file

import (
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
)

const FetchLogFileName = "fetch_log.json"

// FetchLogRepository keeps {"<club_id>": "<RFC3339>"} in one JSON file.
// Unreadable content is logged and treated as an empty log.
type FetchLogRepository struct {
	path   string
	logger *logging.Logger
	mu     sync.Mutex
}

func NewFetchLogRepository(dataDir string, logger *logging.Logger) *FetchLogRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchLogRepository{
		path:   filepath.Join(dataDir, FetchLogFileName),
		logger: logger,
	}
}

func (r *FetchLogRepository) Get(ctx context.Context, clubID int64) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	at, ok := entries[clubID]
	return at, ok, nil
}

func (r *FetchLogRepository) Upsert(ctx context.Context, clubID int64, fetchedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read(ctx)
	if err != nil {
		return err
	}
	entries[clubID] = fetchedAt.UTC()

	raw := make(map[string]string, len(entries))
	for id, at := range entries {
		raw[strconv.FormatInt(id, 10)] = at.Format(time.RFC3339)
	}
	data, err := sonic.ConfigStd.MarshalIndent(raw, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode fetch log")
	}
	return writeAtomic(r.path, data)
}

func (r *FetchLogRepository) List(ctx context.Context) ([]fetchlog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]fetchlog.Entry, 0, len(entries))
	for id, at := range entries {
		out = append(out, fetchlog.Entry{ClubID: id, LastFetchedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}

func (r *FetchLogRepository) read(ctx context.Context) (map[int64]time.Time, error) {
	out := make(map[int64]time.Time)

	data, err := readOptional(r.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	var raw map[string]string
	if err := sonic.Unmarshal(data, &raw); err != nil {
		r.logger.WarnContext(ctx, "fetch log unreadable, treating as empty", "path", r.path, "error", err)
		return out, nil
	}
	for key, value := range raw {
		clubID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			r.logger.WarnContext(ctx, "skip fetch log entry with invalid club id", "club_id", key)
			continue
		}
		at, err := parseFetchTime(value)
		if err != nil {
			r.logger.WarnContext(ctx, "skip fetch log entry with invalid timestamp", "club_id", key, "value", value)
			continue
		}
		out[clubID] = at.UTC()
	}
	return out, nil
}

// localISOLayout matches timestamps written without an offset, which are read
// as UTC.
const localISOLayout = "2006-01-02T15:04:05.999999999"

func parseFetchTime(value string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return at, nil
	}
	return time.ParseInLocation(localISOLayout, value, time.UTC)
}
