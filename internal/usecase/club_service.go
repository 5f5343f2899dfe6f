package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
)

type AthleteProfile struct {
	Athlete club.Athlete      `json:"athlete"`
	Stats   club.AthleteStats `json:"stats"`
	// Ride distances in kilometers, rounded to two decimals.
	RecentRideDistance float64 `json:"recent_ride_distance"`
	AllRideDistance    float64 `json:"all_ride_distance"`
}

type ClubService struct {
	provider club.Provider
}

func NewClubService(provider club.Provider) *ClubService {
	return &ClubService{provider: provider}
}

func (s *ClubService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	clubs, err := s.provider.ListAthleteClubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list athlete clubs: %w", err)
	}
	return clubs, nil
}

func (s *ClubService) ListMembers(ctx context.Context, clubID int64) ([]club.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListMembers")
	defer span.End()

	if clubID <= 0 {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	members, err := s.provider.ListClubMembers(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list club members club=%d: %w", clubID, err)
	}
	return members, nil
}

func (s *ClubService) AthleteProfile(ctx context.Context) (AthleteProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.AthleteProfile")
	defer span.End()

	athlete, err := s.provider.GetAthlete(ctx)
	if err != nil {
		return AthleteProfile{}, fmt.Errorf("get athlete: %w", err)
	}
	stats, err := s.provider.GetAthleteStats(ctx, athlete.ID)
	if err != nil {
		return AthleteProfile{}, fmt.Errorf("get athlete stats athlete=%d: %w", athlete.ID, err)
	}

	return AthleteProfile{
		Athlete:            athlete,
		Stats:              stats,
		RecentRideDistance: activity.Round2(stats.RecentRideTotals.Distance / 1000),
		AllRideDistance:    activity.Round2(stats.AllRideTotals.Distance / 1000),
	}, nil
}
