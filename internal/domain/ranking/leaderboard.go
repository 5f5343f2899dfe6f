package ranking

import (
	"sort"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

const DefaultTopN = 3

type Entry struct {
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Value     float64 `json:"value"`
}

type athleteGroup struct {
	athlete activity.Athlete
	max     float64
	sum     float64
	values  int
	count   int
}

// groupByAthlete folds records of the given sport types per athlete, keeping
// first-appearance order. An empty sportTypes matches every record.
func groupByAthlete(records []activity.Record, sportTypes []string, metric Metric) []*athleteGroup {
	sports := make(map[string]struct{}, len(sportTypes))
	for _, sport := range sportTypes {
		sports[sport] = struct{}{}
	}

	index := make(map[activity.Athlete]*athleteGroup)
	groups := make([]*athleteGroup, 0)
	for _, item := range records {
		if len(sports) > 0 {
			if _, ok := sports[item.SportType]; !ok {
				continue
			}
		}

		key := item.Athlete()
		group, ok := index[key]
		if !ok {
			group = &athleteGroup{athlete: key}
			index[key] = group
			groups = append(groups, group)
		}
		group.count++

		if metric == "" {
			continue
		}
		value, defined := metric.Value(item)
		if !defined {
			continue
		}
		if group.values == 0 || value > group.max {
			group.max = value
		}
		group.sum += value
		group.values++
	}
	return groups
}

// Palmares ranks athletes by their single best activity on metric.
func Palmares(records []activity.Record, sportTypes []string, metric Metric, n int) []Entry {
	groups := groupByAthlete(records, sportTypes, metric)
	return topEntries(groups, n, func(g *athleteGroup) (float64, bool) {
		return g.max, g.values > 0
	})
}

// Cumulative ranks athletes by their summed metric. Speeds are averaged
// rather than summed.
func Cumulative(records []activity.Record, sportTypes []string, metric Metric, n int) []Entry {
	groups := groupByAthlete(records, sportTypes, metric)
	return topEntries(groups, n, func(g *athleteGroup) (float64, bool) {
		if g.values == 0 {
			return 0, false
		}
		if metric == MetricAvgSpeed {
			return activity.Round2(g.sum / float64(g.values)), true
		}
		return activity.Round2(g.sum), true
	})
}

// ActivityCounts ranks athletes by number of activities.
func ActivityCounts(records []activity.Record, sportTypes []string, n int) []Entry {
	groups := groupByAthlete(records, sportTypes, "")
	return topEntries(groups, n, func(g *athleteGroup) (float64, bool) {
		return float64(g.count), g.count > 0
	})
}

func topEntries(groups []*athleteGroup, n int, score func(*athleteGroup) (float64, bool)) []Entry {
	if n <= 0 {
		n = DefaultTopN
	}

	out := make([]Entry, 0, len(groups))
	for _, group := range groups {
		value, ok := score(group)
		if !ok {
			continue
		}
		out = append(out, Entry{
			Firstname: group.athlete.Firstname,
			Lastname:  group.athlete.Lastname,
			Value:     value,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
