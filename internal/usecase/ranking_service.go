package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/ranking"
)

type PalmaresQuery struct {
	Filter   activity.Filter
	Category string
	Metric   string
	Limit    int
}

type RankingService struct {
	registerSvc *RegisterService
	categories  []ranking.Category
}

func NewRankingService(registerSvc *RegisterService) *RankingService {
	return &RankingService{
		registerSvc: registerSvc,
		categories:  ranking.DefaultCategories,
	}
}

func (s *RankingService) Categories() []ranking.Category {
	return append([]ranking.Category(nil), s.categories...)
}

func (s *RankingService) Palmares(ctx context.Context, query PalmaresQuery) ([]ranking.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Palmares")
	defer span.End()

	metric, err := ranking.ParseMetric(query.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sportTypes, err := s.sportTypes(query.Category)
	if err != nil {
		return nil, err
	}

	records, err := s.registerSvc.List(ctx, query.Filter)
	if err != nil {
		return nil, err
	}
	return ranking.Palmares(records, sportTypes, metric, query.Limit), nil
}

func (s *RankingService) Summary(ctx context.Context, filter activity.Filter) ([]ranking.SportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Summary")
	defer span.End()

	records, err := s.registerSvc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ranking.SummaryBySport(records), nil
}

// AthleteStats ranks the athletes of a category; an empty category covers every sport.
func (s *RankingService) AthleteStats(ctx context.Context, filter activity.Filter, category string, limit int) ([]ranking.AthleteStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.AthleteStats")
	defer span.End()

	sportTypes, err := s.sportTypes(category)
	if err != nil {
		return nil, err
	}
	records, err := s.registerSvc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ranking.AthleteStats(records, sportTypes, limit), nil
}

func (s *RankingService) ClubStats(ctx context.Context, filter activity.Filter) (ranking.Totals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ClubStats")
	defer span.End()

	records, err := s.registerSvc.List(ctx, filter)
	if err != nil {
		return ranking.Totals{}, err
	}
	return ranking.ClubTotals(records), nil
}

// HallOfFame builds every category section concurrently over one read of the register.
func (s *RankingService) HallOfFame(ctx context.Context, filter activity.Filter) (ranking.HallOfFame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.HallOfFame")
	defer span.End()

	records, err := s.registerSvc.List(ctx, filter)
	if err != nil {
		return ranking.HallOfFame{}, err
	}

	sections := iter.Map(s.categories, func(category *ranking.Category) ranking.CategoryBoards {
		return ranking.CategoryHall(records, *category)
	})

	return ranking.HallOfFame{
		Categories:    sections,
		AllActivities: ranking.AllActivitiesHall(records),
	}, nil
}

func (s *RankingService) sportTypes(category string) ([]string, error) {
	if strings.TrimSpace(category) == "" {
		return nil, nil
	}
	item, ok := ranking.CategoryByName(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	return item.SportTypes, nil
}
