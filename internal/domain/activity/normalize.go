package activity

import (
	"math"
	"time"
)

const (
	metersPerKilometer = 1000.0
	secondsPerHour     = 3600.0
)

type SpeedStatus string

const (
	SpeedComputed SpeedStatus = "computed"
	SpeedSkipped  SpeedStatus = "skipped"
)

// SpeedResult is the outcome of the batch-level speed derivation.
// Values is aligned with the batch rows and only set when Status is SpeedComputed;
// a nil entry marks an undefined speed.
type SpeedResult struct {
	Status SpeedStatus
	Values []*float64
	Reason string
}

func Computed(values []*float64) SpeedResult {
	return SpeedResult{Status: SpeedComputed, Values: values}
}

func Skipped(reason string) SpeedResult {
	return SpeedResult{Status: SpeedSkipped, Reason: reason}
}

func (r SpeedResult) IsComputed() bool {
	return r.Status == SpeedComputed
}

// Column is one converted measurement column of a batch.
type Column struct {
	Present bool
	Values  []*float64
}

// Batch is the normalizer output for one club fetch.
type Batch struct {
	Records []Record
	Speed   SpeedResult
}

// Normalize converts raw club activities into register rows stamped with the
// club and the given upload time. Empty input yields an empty batch.
func Normalize(raws []RawActivity, clubID int64, clubName string, uploadedAt time.Time) Batch {
	if len(raws) == 0 {
		return Batch{Records: []Record{}, Speed: Skipped("empty batch")}
	}

	distance := Column{Values: make([]*float64, len(raws))}
	movingTime := Column{Values: make([]*float64, len(raws))}
	records := make([]Record, len(raws))

	for i, raw := range raws {
		if raw.Distance != nil {
			distance.Present = true
			km := Round2(clampNonNegative(*raw.Distance) / metersPerKilometer)
			distance.Values[i] = &km
			records[i].Distance = km
		}
		if raw.MovingTime != nil {
			movingTime.Present = true
			hours := Round2(clampNonNegative(*raw.MovingTime) / secondsPerHour)
			movingTime.Values[i] = &hours
			records[i].MovingTime = hours
		}
		if raw.TotalElevationGain != nil {
			records[i].TotalElevationGain = clampNonNegative(*raw.TotalElevationGain)
		}

		firstname, lastname := ResolveIdentity(raw.Athlete)
		records[i].Name = raw.Name
		records[i].SportType = raw.SportType
		records[i].Firstname = firstname
		records[i].Lastname = lastname
		records[i].ClubID = clubID
		records[i].ClubName = clubName
		records[i].UploadDate = uploadedAt
	}

	speed := ComputeSpeed(distance, movingTime)
	if speed.IsComputed() {
		for i := range records {
			records[i].AvgSpeed = speed.Values[i]
		}
	}

	return Batch{Records: records, Speed: speed}
}

// ComputeSpeed derives km/h per row when both columns are present in the batch.
// Rows with a missing value or a zero moving time get an undefined speed.
func ComputeSpeed(distance, movingTime Column) SpeedResult {
	switch {
	case !distance.Present && !movingTime.Present:
		return Skipped("distance and moving_time columns are missing")
	case !distance.Present:
		return Skipped("distance column is missing")
	case !movingTime.Present:
		return Skipped("moving_time column is missing")
	}

	values := make([]*float64, len(distance.Values))
	for i := range values {
		if i >= len(movingTime.Values) {
			break
		}
		d, h := distance.Values[i], movingTime.Values[i]
		if d == nil || h == nil || *h == 0 {
			continue
		}
		speed := Round2(*d / *h)
		values[i] = &speed
	}
	return Computed(values)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
