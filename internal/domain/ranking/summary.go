package ranking

import (
	"sort"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

const DefaultAthleteLimit = 50

type SportSummary struct {
	SportType       string   `json:"sport_type"`
	TotalDistance   float64  `json:"total_distance"`
	MeanDistance    float64  `json:"mean_distance"`
	TotalMovingTime float64  `json:"total_moving_time"`
	MeanMovingTime  float64  `json:"mean_moving_time"`
	MeanAvgSpeed    *float64 `json:"mean_avg_speed"`
	Count           int      `json:"count"`
}

// SummaryBySport aggregates records per sport type, ordered by sport type.
// Undefined speeds are left out of the speed mean.
func SummaryBySport(records []activity.Record) []SportSummary {
	type acc struct {
		distance, movingTime, speed float64
		speeds, count               int
	}

	bySport := make(map[string]*acc)
	for _, item := range records {
		a, ok := bySport[item.SportType]
		if !ok {
			a = &acc{}
			bySport[item.SportType] = a
		}
		a.count++
		a.distance += item.Distance
		a.movingTime += item.MovingTime
		if item.AvgSpeed != nil {
			a.speed += *item.AvgSpeed
			a.speeds++
		}
	}

	out := make([]SportSummary, 0, len(bySport))
	for sport, a := range bySport {
		row := SportSummary{
			SportType:       sport,
			TotalDistance:   activity.Round2(a.distance),
			MeanDistance:    activity.Round2(a.distance / float64(a.count)),
			TotalMovingTime: activity.Round2(a.movingTime),
			MeanMovingTime:  activity.Round2(a.movingTime / float64(a.count)),
			Count:           a.count,
		}
		if a.speeds > 0 {
			mean := activity.Round2(a.speed / float64(a.speeds))
			row.MeanAvgSpeed = &mean
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SportType < out[j].SportType })
	return out
}

type AthleteStat struct {
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	ActivityCount int      `json:"activity_count"`
	Distance      float64  `json:"distance"`
	MovingTime    float64  `json:"moving_time"`
	AvgSpeed      *float64 `json:"avg_speed"`
}

// AthleteStats returns per-athlete totals for the given sport types, most
// active athletes first, capped at limit.
func AthleteStats(records []activity.Record, sportTypes []string, limit int) []AthleteStat {
	if limit <= 0 {
		limit = DefaultAthleteLimit
	}

	distance := groupByAthlete(records, sportTypes, MetricDistance)
	movingTime := groupByAthlete(records, sportTypes, MetricMovingTime)
	speed := groupByAthlete(records, sportTypes, MetricAvgSpeed)

	out := make([]AthleteStat, 0, len(distance))
	for i, group := range distance {
		row := AthleteStat{
			Firstname:     group.athlete.Firstname,
			Lastname:      group.athlete.Lastname,
			ActivityCount: group.count,
			Distance:      activity.Round2(group.sum),
			MovingTime:    activity.Round2(movingTime[i].sum),
		}
		if speed[i].values > 0 {
			mean := activity.Round2(speed[i].sum / float64(speed[i].values))
			row.AvgSpeed = &mean
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ActivityCount > out[j].ActivityCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Totals struct {
	Activities int     `json:"activities"`
	Distance   float64 `json:"distance"`
	MovingTime float64 `json:"moving_time"`
}

func ClubTotals(records []activity.Record) Totals {
	var out Totals
	for _, item := range records {
		out.Activities++
		out.Distance += item.Distance
		out.MovingTime += item.MovingTime
	}
	out.Distance = activity.Round2(out.Distance)
	out.MovingTime = activity.Round2(out.MovingTime)
	return out
}
