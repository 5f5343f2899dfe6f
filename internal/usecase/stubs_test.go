package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
)

type registerStub struct {
	mu       sync.Mutex
	records  []activity.Record
	replaces int
	loadErr  error
}

func (s *registerStub) Load(context.Context) ([]activity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]activity.Record(nil), s.records...), nil
}

func (s *registerStub) Replace(_ context.Context, records []activity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]activity.Record(nil), records...)
	s.replaces++
	return nil
}

// querierStub answers List through Query only.
type querierStub struct {
	registerStub
	queried []activity.Filter
}

func (s *querierStub) Query(_ context.Context, filter activity.Filter) ([]activity.Record, error) {
	s.queried = append(s.queried, filter)
	return filter.Apply(s.records), nil
}

type fetchLogStub struct {
	mu      sync.Mutex
	entries map[int64]time.Time
}

func newFetchLogStub() *fetchLogStub {
	return &fetchLogStub{entries: make(map[int64]time.Time)}
}

func (s *fetchLogStub) Get(_ context.Context, clubID int64) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.entries[clubID]
	return at, ok, nil
}

func (s *fetchLogStub) Upsert(_ context.Context, clubID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[clubID] = at
	return nil
}

func (s *fetchLogStub) List(context.Context) ([]fetchlog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]fetchlog.Entry, 0, len(s.entries))
	for clubID, at := range s.entries {
		out = append(out, fetchlog.Entry{ClubID: clubID, LastFetchedAt: at})
	}
	return out, nil
}

func f64(v float64) *float64 { return &v }

func rawRun(name string, meters, seconds float64, firstname string) activity.RawActivity {
	return activity.RawActivity{
		Name:               name,
		SportType:          "Run",
		Distance:           f64(meters),
		MovingTime:         f64(seconds),
		TotalElevationGain: f64(40),
		Athlete:            activity.StructuredIdentity{Firstname: firstname, Lastname: "T."},
	}
}
