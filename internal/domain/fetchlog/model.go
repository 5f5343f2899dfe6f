package fetchlog

import (
	"context"
	"time"
)

// NeverFetched is reported for clubs that have no fetch on record. It sits far
// enough in the past that any cooldown check passes.
var NeverFetched = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Entry struct {
	ClubID        int64     `json:"club_id"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
}

// Repository stores the last successful fetch per club.
// A missing or unreadable store behaves as an empty log.
type Repository interface {
	Get(ctx context.Context, clubID int64) (time.Time, bool, error)
	Upsert(ctx context.Context, clubID int64, fetchedAt time.Time) error
	List(ctx context.Context) ([]Entry, error)
}
