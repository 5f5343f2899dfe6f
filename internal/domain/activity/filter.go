package activity

import (
	"strings"
	"time"
)

const defaultWindowDays = 30

// Filter narrows a register slice. Zero values leave a dimension unfiltered;
// From and To compare by calendar day, both inclusive.
type Filter struct {
	ClubID     int64
	ClubName   string
	SportTypes []string
	From       time.Time
	To         time.Time
}

func (f Filter) Apply(records []Record) []Record {
	sports := make(map[string]struct{}, len(f.SportTypes))
	for _, sport := range f.SportTypes {
		if sport = strings.TrimSpace(sport); sport != "" {
			sports[sport] = struct{}{}
		}
	}
	clubName := strings.TrimSpace(f.ClubName)
	from := dayOf(f.From)
	to := dayOf(f.To)

	out := make([]Record, 0, len(records))
	for _, item := range records {
		if f.ClubID != 0 && item.ClubID != f.ClubID {
			continue
		}
		if clubName != "" && item.ClubName != clubName {
			continue
		}
		if len(sports) > 0 {
			if _, ok := sports[item.SportType]; !ok {
				continue
			}
		}
		day := dayOf(item.UploadDate)
		if !f.From.IsZero() && day.Before(from) {
			continue
		}
		if !f.To.IsZero() && day.After(to) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Window converts the inclusive day bounds into a half-open [since, until)
// instant range. Zero results mean unbounded.
func (f Filter) Window() (since, until time.Time) {
	if !f.From.IsZero() {
		since = dayOf(f.From)
	}
	if !f.To.IsZero() {
		until = dayOf(f.To).AddDate(0, 0, 1)
	}
	return since, until
}

// DateRange is the selectable upload-date window of a register slice.
type DateRange struct {
	Min         time.Time `json:"min"`
	Max         time.Time `json:"max"`
	DefaultFrom time.Time `json:"default_from"`
	DefaultTo   time.Time `json:"default_to"`
}

// Bounds returns the upload-date window of records. A single-day window is
// widened by one day on each side and the default selection covers the last
// 30 days of the window.
func Bounds(records []Record) (DateRange, bool) {
	if len(records) == 0 {
		return DateRange{}, false
	}

	minDay := dayOf(records[0].UploadDate)
	maxDay := minDay
	for _, item := range records[1:] {
		day := dayOf(item.UploadDate)
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}
	if minDay.Equal(maxDay) {
		minDay = minDay.AddDate(0, 0, -1)
		maxDay = maxDay.AddDate(0, 0, 1)
	}

	defaultFrom := maxDay.AddDate(0, 0, -defaultWindowDays)
	if defaultFrom.Before(minDay) {
		defaultFrom = minDay
	}

	return DateRange{
		Min:         minDay,
		Max:         maxDay,
		DefaultFrom: defaultFrom,
		DefaultTo:   maxDay,
	}, true
}

func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
