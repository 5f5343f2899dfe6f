package club

import (
	"context"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

type Club struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SportType   string `json:"sport_type"`
	MemberCount int    `json:"member_count"`
}

type Member struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Membership string `json:"membership"`
	Admin      bool   `json:"admin"`
	Owner      bool   `json:"owner"`
}

type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// Totals is an aggregate block of the athlete statistics endpoint.
// Distance is in meters and elevation in meters, as delivered upstream.
type Totals struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`
	MovingTime    float64 `json:"moving_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

type AthleteStats struct {
	RecentRideTotals Totals `json:"recent_ride_totals"`
	AllRideTotals    Totals `json:"all_ride_totals"`
	RecentRunTotals  Totals `json:"recent_run_totals"`
	AllRunTotals     Totals `json:"all_run_totals"`
	AllSwimTotals    Totals `json:"all_swim_totals"`
}

// Provider is the remote source of clubs and their activities.
type Provider interface {
	GetAthlete(ctx context.Context) (Athlete, error)
	GetAthleteStats(ctx context.Context, athleteID int64) (AthleteStats, error)
	ListAthleteClubs(ctx context.Context) ([]Club, error)
	ListClubMembers(ctx context.Context, clubID int64) ([]Member, error)
	ListClubActivities(ctx context.Context, clubID int64, page, perPage int) ([]activity.RawActivity, error)
}
