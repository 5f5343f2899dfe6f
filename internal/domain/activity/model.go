package activity

import "time"

// PlaceholderName is used for athlete names that cannot be resolved.
const PlaceholderName = "N/A"

// Record is one normalized activity row of the consolidated register.
type Record struct {
	Name               string    `json:"name" yaml:"name"`
	SportType          string    `json:"sport_type" yaml:"sport_type"`
	Distance           float64   `json:"distance" yaml:"distance"`
	MovingTime         float64   `json:"moving_time" yaml:"moving_time"`
	AvgSpeed           *float64  `json:"avg_speed" yaml:"avg_speed"`
	TotalElevationGain float64   `json:"total_elevation_gain" yaml:"total_elevation_gain"`
	Firstname          string    `json:"firstname" yaml:"firstname"`
	Lastname           string    `json:"lastname" yaml:"lastname"`
	ClubID             int64     `json:"club_id" yaml:"club_id"`
	ClubName           string    `json:"club_name" yaml:"club_name"`
	UploadDate         time.Time `json:"upload_date" yaml:"upload_date"`
}

// Key identifies the same activity across ingestion runs.
type Key struct {
	Name       string
	MovingTime float64
	ClubID     int64
}

func (r Record) Key() Key {
	return Key{Name: r.Name, MovingTime: r.MovingTime, ClubID: r.ClubID}
}

// Athlete is the (firstname, lastname) pair rankings group by.
type Athlete struct {
	Firstname string `json:"firstname" yaml:"firstname"`
	Lastname  string `json:"lastname" yaml:"lastname"`
}

func (r Record) Athlete() Athlete {
	return Athlete{Firstname: r.Firstname, Lastname: r.Lastname}
}

// RawActivity is a club activity as returned by the remote API, before unit conversion.
// Nil measurements mean the field was absent from the payload.
type RawActivity struct {
	Name               string   `json:"name"`
	SportType          string   `json:"sport_type"`
	Distance           *float64 `json:"distance"`
	MovingTime         *float64 `json:"moving_time"`
	TotalElevationGain *float64 `json:"total_elevation_gain"`
	Athlete            Identity `json:"-"`
}
