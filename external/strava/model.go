package strava

import (
	"strings"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
)

type athletePayload struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func (p athletePayload) toDomain() club.Athlete {
	return club.Athlete{
		ID:        p.ID,
		Firstname: nameOrPlaceholder(p.Firstname),
		Lastname:  nameOrPlaceholder(p.Lastname),
		City:      strings.TrimSpace(p.City),
		Country:   strings.TrimSpace(p.Country),
	}
}

type totalsPayload struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`
	MovingTime    float64 `json:"moving_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

func (p totalsPayload) toDomain() club.Totals {
	return club.Totals{
		Count:         p.Count,
		Distance:      p.Distance,
		MovingTime:    p.MovingTime,
		ElevationGain: p.ElevationGain,
	}
}

type athleteStatsPayload struct {
	RecentRideTotals totalsPayload `json:"recent_ride_totals"`
	AllRideTotals    totalsPayload `json:"all_ride_totals"`
	RecentRunTotals  totalsPayload `json:"recent_run_totals"`
	AllRunTotals     totalsPayload `json:"all_run_totals"`
	AllSwimTotals    totalsPayload `json:"all_swim_totals"`
}

func (p athleteStatsPayload) toDomain() club.AthleteStats {
	return club.AthleteStats{
		RecentRideTotals: p.RecentRideTotals.toDomain(),
		AllRideTotals:    p.AllRideTotals.toDomain(),
		RecentRunTotals:  p.RecentRunTotals.toDomain(),
		AllRunTotals:     p.AllRunTotals.toDomain(),
		AllSwimTotals:    p.AllSwimTotals.toDomain(),
	}
}

type clubPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SportType   string `json:"sport_type"`
	MemberCount int    `json:"member_count"`
}

func (p clubPayload) toDomain() club.Club {
	return club.Club{
		ID:          p.ID,
		Name:        strings.TrimSpace(p.Name),
		SportType:   p.SportType,
		MemberCount: p.MemberCount,
	}
}

type memberPayload struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Membership string `json:"membership"`
	Admin      bool   `json:"admin"`
	Owner      bool   `json:"owner"`
}

func (p memberPayload) toDomain() club.Member {
	return club.Member{
		Firstname:  nameOrPlaceholder(p.Firstname),
		Lastname:   nameOrPlaceholder(p.Lastname),
		Membership: p.Membership,
		Admin:      p.Admin,
		Owner:      p.Owner,
	}
}

func nameOrPlaceholder(value string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return activity.PlaceholderName
}
