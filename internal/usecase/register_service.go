package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
)

type RegisterService struct {
	register activity.Register
	logger   *logging.Logger

	// writeMu serializes read-merge-write so two merges never interleave.
	writeMu sync.Mutex
}

func NewRegisterService(register activity.Register, logger *logging.Logger) *RegisterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegisterService{
		register: register,
		logger:   logger,
	}
}

// MergeBatch folds a normalized batch into the stored register and replaces it
// in one write. The merged register is returned.
func (s *RegisterService) MergeBatch(ctx context.Context, batch []activity.Record) ([]activity.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegisterService.MergeBatch")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous, err := s.register.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load register: %w", err)
	}

	merged := activity.Merge(previous, batch)
	if err := s.register.Replace(ctx, merged); err != nil {
		return nil, fmt.Errorf("replace register: %w", err)
	}

	s.logger.DebugContext(ctx, "register merged",
		"previous", len(previous),
		"batch", len(batch),
		"merged", len(merged),
	)
	return merged, nil
}

func (s *RegisterService) List(ctx context.Context, filter activity.Filter) ([]activity.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegisterService.List")
	defer span.End()

	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: date range end is before start", ErrInvalidInput)
	}

	if querier, ok := s.register.(activity.Querier); ok {
		records, err := querier.Query(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("query register: %w", err)
		}
		return records, nil
	}

	records, err := s.register.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load register: %w", err)
	}
	return filter.Apply(records), nil
}

// DateBounds reports the selectable date window of one club, or of the whole
// register when clubID is 0.
func (s *RegisterService) DateBounds(ctx context.Context, clubID int64) (activity.DateRange, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegisterService.DateBounds")
	defer span.End()

	records, err := s.List(ctx, activity.Filter{ClubID: clubID})
	if err != nil {
		return activity.DateRange{}, err
	}

	bounds, ok := activity.Bounds(records)
	if !ok {
		return activity.DateRange{}, fmt.Errorf("%w: no activities for club=%d", ErrNotFound, clubID)
	}
	return bounds, nil
}
