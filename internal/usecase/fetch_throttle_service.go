package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
)

type FetchThrottleService struct {
	repo     fetchlog.Repository
	cooldown time.Duration
	logger   *logging.Logger
}

// NewFetchThrottleService uses cooldown as-is; zero disables throttling.
func NewFetchThrottleService(repo fetchlog.Repository, cooldown time.Duration, logger *logging.Logger) *FetchThrottleService {
	if logger == nil {
		logger = logging.Default()
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &FetchThrottleService{
		repo:     repo,
		cooldown: cooldown,
		logger:   logger,
	}
}

func (s *FetchThrottleService) Cooldown() time.Duration {
	return s.cooldown
}

// LastFetch never fails: an absent entry or an unreadable log yields
// fetchlog.NeverFetched.
func (s *FetchThrottleService) LastFetch(ctx context.Context, clubID int64) time.Time {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchThrottleService.LastFetch")
	defer span.End()

	at, ok, err := s.repo.Get(ctx, clubID)
	if err != nil {
		s.logger.WarnContext(ctx, "read fetch log failed, treating club as never fetched",
			"club_id", clubID,
			"error", err,
		)
		return fetchlog.NeverFetched
	}
	if !ok {
		return fetchlog.NeverFetched
	}
	return at
}

func (s *FetchThrottleService) RecordFetch(ctx context.Context, clubID int64, at time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchThrottleService.RecordFetch")
	defer span.End()

	if clubID <= 0 {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.repo.Upsert(ctx, clubID, at); err != nil {
		return fmt.Errorf("record fetch club=%d: %w", clubID, err)
	}
	return nil
}

// ShouldFetch reports whether the cooldown since the last fetch has elapsed,
// along with the last fetch time it compared against.
func (s *FetchThrottleService) ShouldFetch(ctx context.Context, clubID int64, now time.Time) (bool, time.Time) {
	last := s.LastFetch(ctx, clubID)
	if s.cooldown <= 0 {
		return true, last
	}
	return now.Sub(last) >= s.cooldown, last
}

func (s *FetchThrottleService) List(ctx context.Context) ([]fetchlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchThrottleService.List")
	defer span.End()

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fetch log: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ClubID < entries[j].ClubID })
	return entries, nil
}
