package ranking

import "github.com/riskibarqy/club-activity/internal/domain/activity"

type BoardKind string

const (
	BoardBest       BoardKind = "best"
	BoardCumulative BoardKind = "cumulative"
	BoardCount      BoardKind = "count"
)

type Board struct {
	Kind    BoardKind `json:"kind"`
	Metric  Metric    `json:"metric,omitempty"`
	Label   string    `json:"label"`
	Entries []Entry   `json:"entries"`
}

type CategoryBoards struct {
	Category Category `json:"category"`
	Boards   []Board  `json:"boards"`
}

type HallOfFame struct {
	Categories    []CategoryBoards `json:"categories"`
	AllActivities []Board          `json:"all_activities"`
}

var cumulativeMetrics = []Metric{MetricMovingTime, MetricDistance, MetricAvgSpeed}

// CategoryHall builds the best-activity boards for every metric followed by
// the cumulative boards for one category.
func CategoryHall(records []activity.Record, category Category) CategoryBoards {
	boards := make([]Board, 0, len(Metrics)+len(cumulativeMetrics))
	for _, metric := range Metrics {
		boards = append(boards, Board{
			Kind:    BoardBest,
			Metric:  metric,
			Label:   metric.Label(),
			Entries: Palmares(records, category.SportTypes, metric, DefaultTopN),
		})
	}
	for _, metric := range cumulativeMetrics {
		boards = append(boards, Board{
			Kind:    BoardCumulative,
			Metric:  metric,
			Label:   cumulativeLabel(metric),
			Entries: Cumulative(records, category.SportTypes, metric, DefaultTopN),
		})
	}
	return CategoryBoards{Category: category, Boards: boards}
}

// AllActivitiesHall covers every sport type: longest moving time, most
// activities and fastest average speed.
func AllActivitiesHall(records []activity.Record) []Board {
	return []Board{
		{
			Kind:    BoardCumulative,
			Metric:  MetricMovingTime,
			Label:   cumulativeLabel(MetricMovingTime),
			Entries: Cumulative(records, nil, MetricMovingTime, DefaultTopN),
		},
		{
			Kind:    BoardCount,
			Label:   "Highest number of activities",
			Entries: ActivityCounts(records, nil, 1),
		},
		{
			Kind:    BoardBest,
			Metric:  MetricAvgSpeed,
			Label:   MetricAvgSpeed.Label(),
			Entries: Palmares(records, nil, MetricAvgSpeed, DefaultTopN),
		},
	}
}

func cumulativeLabel(metric Metric) string {
	switch metric {
	case MetricMovingTime:
		return "Highest cumulative moving time"
	case MetricDistance:
		return "Highest cumulative distance"
	case MetricAvgSpeed:
		return "Highest overall average speed"
	default:
		return "Highest cumulative " + string(metric)
	}
}
