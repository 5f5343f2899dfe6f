package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
)

const ActivitiesFileName = "activities.csv"

var activityHeader = []string{
	"name",
	"sport_type",
	"distance",
	"moving_time",
	"avg_speed",
	"total_elevation_gain",
	"firstname",
	"lastname",
	"club_id",
	"club_name",
	"upload_date",
}

// ActivityRegister stores the register as one CSV table. An empty avg_speed
// cell is an undefined speed.
type ActivityRegister struct {
	path string
	mu   sync.RWMutex
}

func NewActivityRegister(dataDir string) *ActivityRegister {
	return &ActivityRegister{path: filepath.Join(dataDir, ActivitiesFileName)}
}

func (r *ActivityRegister) Load(_ context.Context) ([]activity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := readOptional(r.path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []activity.Record{}, nil
	}
	return decodeActivities(data)
}

func (r *ActivityRegister) Replace(_ context.Context, records []activity.Record) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := encodeActivities(buf, records); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return writeAtomic(r.path, buf.B)
}

// WriteCSV writes records in the register file format.
func WriteCSV(out io.Writer, records []activity.Record) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := encodeActivities(buf, records); err != nil {
		return err
	}
	_, err := out.Write(buf.B)
	return crerr.Wrap(err, "write activities csv")
}

func encodeActivities(out io.Writer, records []activity.Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(activityHeader); err != nil {
		return crerr.Wrap(err, "write activities header")
	}
	for i, item := range records {
		if err := w.Write(activityRow(item)); err != nil {
			return crerr.Wrapf(err, "write activity row %d", i)
		}
	}
	w.Flush()
	return crerr.Wrap(w.Error(), "flush activities csv")
}

func activityRow(item activity.Record) []string {
	speed := ""
	if item.AvgSpeed != nil {
		speed = formatFloat(*item.AvgSpeed)
	}
	return []string{
		item.Name,
		item.SportType,
		formatFloat(item.Distance),
		formatFloat(item.MovingTime),
		speed,
		formatFloat(item.TotalElevationGain),
		item.Firstname,
		item.Lastname,
		strconv.FormatInt(item.ClubID, 10),
		item.ClubName,
		item.UploadDate.UTC().Format(time.RFC3339Nano),
	}
}

func decodeActivities(data []byte) ([]activity.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(activityHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, crerr.Wrap(err, "parse activities csv")
	}
	if len(rows) == 0 {
		return []activity.Record{}, nil
	}
	if err := checkActivityHeader(rows[0]); err != nil {
		return nil, err
	}

	out := make([]activity.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		item, err := parseActivityRow(row)
		if err != nil {
			return nil, crerr.Wrapf(err, "activities csv line %d", i+2)
		}
		out = append(out, item)
	}
	return out, nil
}

func checkActivityHeader(row []string) error {
	for i, want := range activityHeader {
		got := strings.TrimSpace(row[i])
		if i == 0 {
			got = strings.TrimPrefix(got, "\ufeff")
		}
		if got != want {
			return crerr.Newf("activities csv header column %d is %q, want %q", i+1, row[i], want)
		}
	}
	return nil
}

func parseActivityRow(row []string) (activity.Record, error) {
	var (
		item activity.Record
		err  error
	)
	item.Name = row[0]
	item.SportType = row[1]
	if item.Distance, err = parseFloat("distance", row[2]); err != nil {
		return item, err
	}
	if item.MovingTime, err = parseFloat("moving_time", row[3]); err != nil {
		return item, err
	}
	if row[4] != "" {
		speed, err := parseFloat("avg_speed", row[4])
		if err != nil {
			return item, err
		}
		item.AvgSpeed = &speed
	}
	if item.TotalElevationGain, err = parseFloat("total_elevation_gain", row[5]); err != nil {
		return item, err
	}
	item.Firstname = row[6]
	item.Lastname = row[7]
	if item.ClubID, err = strconv.ParseInt(row[8], 10, 64); err != nil {
		return item, crerr.Wrap(err, "club_id")
	}
	item.ClubName = row[9]
	if item.UploadDate, err = time.Parse(time.RFC3339Nano, row[10]); err != nil {
		return item, crerr.Wrap(err, "upload_date")
	}
	item.UploadDate = item.UploadDate.UTC()
	return item, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(column, v string) (float64, error) {
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, crerr.Wrap(err, column)
	}
	return out, nil
}
