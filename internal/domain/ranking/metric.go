package ranking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

var ErrUnknownMetric = errors.New("unknown ranking metric")

type Metric string

const (
	MetricElevationGain Metric = "total_elevation_gain"
	MetricMovingTime    Metric = "moving_time"
	MetricDistance      Metric = "distance"
	MetricAvgSpeed      Metric = "avg_speed"
)

// Metrics lists the hall-of-fame metrics in display order.
var Metrics = []Metric{MetricElevationGain, MetricMovingTime, MetricDistance, MetricAvgSpeed}

func ParseMetric(raw string) (Metric, error) {
	metric := Metric(strings.ToLower(strings.TrimSpace(raw)))
	switch metric {
	case MetricElevationGain, MetricMovingTime, MetricDistance, MetricAvgSpeed:
		return metric, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, raw)
	}
}

// Value extracts the metric from a record. ok is false when the value is undefined.
func (m Metric) Value(r activity.Record) (float64, bool) {
	switch m {
	case MetricElevationGain:
		return r.TotalElevationGain, true
	case MetricMovingTime:
		return r.MovingTime, true
	case MetricDistance:
		return r.Distance, true
	case MetricAvgSpeed:
		if r.AvgSpeed == nil {
			return 0, false
		}
		return *r.AvgSpeed, true
	default:
		return 0, false
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricElevationGain:
		return "Highest ascent"
	case MetricMovingTime:
		return "Highest moving time"
	case MetricDistance:
		return "Highest distance"
	case MetricAvgSpeed:
		return "Highest average moving speed"
	default:
		return string(m)
	}
}
