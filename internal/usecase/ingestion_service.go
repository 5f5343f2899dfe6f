package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
	"github.com/riskibarqy/club-activity/internal/platform/id"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
	"github.com/riskibarqy/club-activity/internal/platform/metrics"
)

const (
	ClubStatusMerged          = "merged"
	ClubStatusSkippedCooldown = "skipped_cooldown"
	ClubStatusSkippedMembers  = "skipped_members"
	ClubStatusFailed          = "failed"
	ClubStatusNotAttempted    = "not_attempted"

	CycleStatusCompleted = "completed"
	CycleStatusStopped   = "stopped"
	CycleStatusFailed    = "failed"

	DefaultMemberCap     = 300
	DefaultPerPage       = 200
	DefaultMaxPages      = 1
	DefaultScreenWorkers = 4
)

type IngestionConfig struct {
	MemberCap     int
	PerPage       int
	MaxPages      int
	ScreenWorkers int
}

type ClubOutcome struct {
	ClubID        int64      `json:"club_id"`
	ClubName      string     `json:"club_name"`
	MemberCount   int        `json:"member_count"`
	Status        string     `json:"status"`
	Fetched       int        `json:"fetched"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
	Message       string     `json:"message,omitempty"`
}

type CycleResult struct {
	RunID        string        `json:"run_id"`
	Status       string        `json:"status"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Clubs        []ClubOutcome `json:"clubs"`
	RegisterSize int           `json:"register_size"`
	StoppedEarly bool          `json:"stopped_early"`
	Error        string        `json:"error,omitempty"`
}

type IngestionService struct {
	provider    club.Provider
	registerSvc *RegisterService
	throttle    *FetchThrottleService
	ids         id.Generator
	cfg         IngestionConfig
	logger      *logging.Logger
	now         func() time.Time

	running sync.Mutex
}

func NewIngestionService(
	provider club.Provider,
	registerSvc *RegisterService,
	throttle *FetchThrottleService,
	ids id.Generator,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MemberCap <= 0 {
		cfg.MemberCap = DefaultMemberCap
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.ScreenWorkers <= 0 {
		cfg.ScreenWorkers = DefaultScreenWorkers
	}

	return &IngestionService{
		provider:    provider,
		registerSvc: registerSvc,
		throttle:    throttle,
		ids:         ids,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

type memberScreen struct {
	count int
	err   error
}

// RunCycle fetches every eligible club in provider order and merges each batch
// before moving on. The first failed fetch stops the cycle; clubs merged before
// it stay merged. Only one cycle runs at a time per service.
func (s *IngestionService) RunCycle(ctx context.Context) (result CycleResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RunCycle")
	defer span.End()

	if !s.running.TryLock() {
		return CycleResult{}, ErrIngestionInProgress
	}
	defer s.running.Unlock()

	runID, err := s.ids.NewID()
	if err != nil {
		return CycleResult{}, fmt.Errorf("generate run id: %w", err)
	}
	result = CycleResult{
		RunID:     runID,
		Status:    CycleStatusCompleted,
		StartedAt: s.now().UTC(),
		Clubs:     make([]ClubOutcome, 0),
	}
	logger := s.logger.With("run_id", runID)
	defer func() {
		result.FinishedAt = s.now().UTC()
		metrics.RecordIngestionRun(result.Status, result.FinishedAt.Sub(result.StartedAt))
	}()

	clubs, err := s.provider.ListAthleteClubs(ctx)
	if err != nil {
		result.Status = CycleStatusFailed
		result.Error = err.Error()
		return result, fmt.Errorf("%w: list athlete clubs: %w", ErrDependencyUnavailable, err)
	}
	logger.InfoContext(ctx, "ingestion cycle started", "clubs", len(clubs))

	screens, err := s.screenMembers(ctx, clubs)
	if err != nil {
		result.Status = CycleStatusFailed
		result.Error = err.Error()
		return result, err
	}

	var cycleErr error
	for i, item := range clubs {
		outcome := ClubOutcome{
			ClubID:      item.ID,
			ClubName:    item.Name,
			MemberCount: screens[i].count,
		}

		if cycleErr != nil {
			outcome.Status = ClubStatusNotAttempted
			result.Clubs = append(result.Clubs, outcome)
			continue
		}

		if screens[i].err != nil {
			logger.WarnContext(ctx, "member lookup failed, skipping club", "club_id", item.ID, "error", screens[i].err)
			outcome.Status = ClubStatusSkippedMembers
			outcome.Message = "member lookup failed: " + screens[i].err.Error()
			s.finishClub(&result, outcome)
			continue
		}
		if screens[i].count > s.cfg.MemberCap {
			logger.InfoContext(ctx, "club above member cap, skipping", "club_id", item.ID, "members", screens[i].count, "cap", s.cfg.MemberCap)
			outcome.Status = ClubStatusSkippedMembers
			outcome.Message = fmt.Sprintf("club has more than %d members", s.cfg.MemberCap)
			s.finishClub(&result, outcome)
			continue
		}

		now := s.now().UTC()
		due, last := s.throttle.ShouldFetch(ctx, item.ID, now)
		if !due {
			lastFetched := last
			outcome.Status = ClubStatusSkippedCooldown
			outcome.LastFetchedAt = &lastFetched
			s.finishClub(&result, outcome)
			continue
		}

		merged, fetched, err := s.ingestClub(ctx, logger, item, now)
		if err != nil {
			outcome.Status = ClubStatusFailed
			outcome.Message = err.Error()
			s.finishClub(&result, outcome)
			cycleErr = err
			logger.WarnContext(ctx, "club ingestion failed, stopping cycle", "club_id", item.ID, "error", err)
			continue
		}

		outcome.Status = ClubStatusMerged
		outcome.Fetched = fetched
		outcome.LastFetchedAt = &now
		result.RegisterSize = merged
		s.finishClub(&result, outcome)
	}

	if result.RegisterSize == 0 {
		if records, listErr := s.registerSvc.List(ctx, activity.Filter{}); listErr == nil {
			result.RegisterSize = len(records)
		}
	}

	if cycleErr != nil {
		result.Status = CycleStatusStopped
		result.StoppedEarly = true
		result.Error = cycleErr.Error()
		logger.WarnContext(ctx, "ingestion cycle stopped early", "error", cycleErr)
		return result, cycleErr
	}

	logger.InfoContext(ctx, "ingestion cycle completed", "register_size", result.RegisterSize)
	return result, nil
}

func (s *IngestionService) finishClub(result *CycleResult, outcome ClubOutcome) {
	result.Clubs = append(result.Clubs, outcome)
	switch outcome.Status {
	case ClubStatusMerged:
		metrics.RecordClubFetch(metrics.OutcomeFetched)
	case ClubStatusFailed:
		metrics.RecordClubFetch(metrics.OutcomeFailed)
	default:
		metrics.RecordClubFetch(metrics.OutcomeSkipped)
	}
}

// ingestClub fetches, normalizes and merges one club, then records the fetch.
// It returns the merged register size and the number of fetched activities.
func (s *IngestionService) ingestClub(ctx context.Context, logger *logging.Logger, item club.Club, now time.Time) (int, int, error) {
	raws, err := s.fetchActivities(ctx, item.ID)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			return 0, 0, fmt.Errorf("fetch activities club=%d: %w", item.ID, err)
		}
		return 0, 0, fmt.Errorf("%w: fetch activities club=%d: %w", ErrDependencyUnavailable, item.ID, err)
	}

	batch := activity.Normalize(raws, item.ID, item.Name, now)
	if len(raws) > 0 && !batch.Speed.IsComputed() {
		logger.WarnContext(ctx, "average speed not computed for batch", "club_id", item.ID, "reason", batch.Speed.Reason)
	}

	merged, err := s.registerSvc.MergeBatch(ctx, batch.Records)
	if err != nil {
		return 0, 0, fmt.Errorf("merge club=%d: %w", item.ID, err)
	}
	metrics.RecordMerge(len(batch.Records), len(merged))

	if err := s.throttle.RecordFetch(ctx, item.ID, now); err != nil {
		logger.WarnContext(ctx, "record fetch failed", "club_id", item.ID, "error", err)
	}

	logger.InfoContext(ctx, "club merged", "club_id", item.ID, "club_name", item.Name, "fetched", len(raws), "register_size", len(merged))
	return len(merged), len(raws), nil
}

func (s *IngestionService) fetchActivities(ctx context.Context, clubID int64) ([]activity.RawActivity, error) {
	out := make([]activity.RawActivity, 0, s.cfg.PerPage)
	for page := 1; page <= s.cfg.MaxPages; page++ {
		items, err := s.provider.ListClubActivities(ctx, clubID, page, s.cfg.PerPage)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) < s.cfg.PerPage {
			break
		}
	}
	return out, nil
}

// screenMembers looks up the member count of every club on a bounded pool.
// Results keep the order of clubs.
func (s *IngestionService) screenMembers(ctx context.Context, clubs []club.Club) ([]memberScreen, error) {
	screens := make([]memberScreen, len(clubs))
	if len(clubs) == 0 {
		return screens, nil
	}

	pool, err := ants.NewPool(normalizeScreenWorkerCount(s.cfg.ScreenWorkers, len(clubs)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range clubs {
		idx := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			members, err := s.provider.ListClubMembers(ctx, clubs[idx].ID)
			screens[idx] = memberScreen{count: len(members), err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return screens, nil
}

func normalizeScreenWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = DefaultScreenWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
