package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

const activityTable = "club_activities"

// activityTableModel is one register row. Position keeps the merge order so
// Load returns rows exactly as they were replaced.
type activityTableModel struct {
	Position           int             `db:"position"`
	Name               string          `db:"name"`
	SportType          string          `db:"sport_type"`
	Distance           float64         `db:"distance"`
	MovingTime         float64         `db:"moving_time"`
	AvgSpeed           sql.NullFloat64 `db:"avg_speed"`
	TotalElevationGain float64         `db:"total_elevation_gain"`
	Firstname          string          `db:"firstname"`
	Lastname           string          `db:"lastname"`
	ClubID             int64           `db:"club_id"`
	ClubName           string          `db:"club_name"`
	UploadDate         time.Time       `db:"upload_date"`
}

func activityModelFromRecord(position int, item activity.Record) activityTableModel {
	return activityTableModel{
		Position:           position,
		Name:               item.Name,
		SportType:          item.SportType,
		Distance:           item.Distance,
		MovingTime:         item.MovingTime,
		AvgSpeed:           nullFloat64(item.AvgSpeed),
		TotalElevationGain: item.TotalElevationGain,
		Firstname:          item.Firstname,
		Lastname:           item.Lastname,
		ClubID:             item.ClubID,
		ClubName:           item.ClubName,
		UploadDate:         item.UploadDate.UTC(),
	}
}

func (m activityTableModel) toDomain() activity.Record {
	return activity.Record{
		Name:               m.Name,
		SportType:          m.SportType,
		Distance:           m.Distance,
		MovingTime:         m.MovingTime,
		AvgSpeed:           nullFloat64Ptr(m.AvgSpeed),
		TotalElevationGain: m.TotalElevationGain,
		Firstname:          m.Firstname,
		Lastname:           m.Lastname,
		ClubID:             m.ClubID,
		ClubName:           m.ClubName,
		UploadDate:         m.UploadDate.UTC(),
	}
}

type fetchLogTableModel struct {
	ClubID        int64     `db:"club_id"`
	LastFetchedAt time.Time `db:"last_fetched_at"`
}

type preferenceTableModel struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}
