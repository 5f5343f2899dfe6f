package activity

import (
	"testing"
	"time"
)

func TestMerge_KeepsLatestPerKeyAndSortsDescending(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	previous := []Record{
		{Name: "Morning Run", MovingTime: 1.02, ClubID: 1, Distance: 10, UploadDate: day1},
		{Name: "Evening Ride", MovingTime: 2.5, ClubID: 1, Distance: 60, UploadDate: day1},
	}
	batch := []Record{
		{Name: "Morning Run", MovingTime: 1.02, ClubID: 1, Distance: 10.5, UploadDate: day2},
		{Name: "Morning Run", MovingTime: 1.02, ClubID: 2, Distance: 10, UploadDate: day2},
	}

	got := Merge(previous, batch)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].UploadDate.After(got[i-1].UploadDate) {
			t.Fatalf("rows not sorted descending at %d", i)
		}
	}

	for _, row := range got {
		if row.Name == "Morning Run" && row.ClubID == 1 && row.Distance != 10.5 {
			t.Fatalf("expected the later upload to win, got distance %v", row.Distance)
		}
	}
}

func TestMerge_IdempotentUnderReingestion(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	batch := []Record{
		{Name: "a", MovingTime: 1, ClubID: 1, UploadDate: at},
		{Name: "a", MovingTime: 1, ClubID: 1, UploadDate: at},
		{Name: "b", MovingTime: 1, ClubID: 1, UploadDate: at},
	}

	once := Merge(nil, batch)
	twice := Merge(once, batch)
	if len(once) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(once))
	}
	if len(twice) != len(once) {
		t.Fatalf("expected re-ingestion to keep %d rows, got %d", len(once), len(twice))
	}
}

func TestMerge_NoDuplicateKeys(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	var previous, batch []Record
	for i := 0; i < 20; i++ {
		previous = append(previous, Record{Name: "run", MovingTime: float64(i % 5), ClubID: int64(i % 3), UploadDate: base.Add(time.Duration(i) * time.Hour)})
		batch = append(batch, Record{Name: "run", MovingTime: float64(i % 4), ClubID: int64(i % 3), UploadDate: base.Add(time.Duration(i) * time.Minute)})
	}

	seen := make(map[Key]struct{})
	for _, row := range Merge(previous, batch) {
		if _, dup := seen[row.Key()]; dup {
			t.Fatalf("duplicate key %+v", row.Key())
		}
		seen[row.Key()] = struct{}{}
	}
}

func TestMerge_EqualUploadDatePrefersBatch(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	previous := []Record{{Name: "a", MovingTime: 1, ClubID: 1, SportType: "Run", UploadDate: at}}
	batch := []Record{{Name: "a", MovingTime: 1, ClubID: 1, SportType: "Trail", UploadDate: at}}

	got := Merge(previous, batch)
	if len(got) != 1 || got[0].SportType != "Trail" {
		t.Fatalf("expected batch row to win, got %+v", got)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	t.Parallel()

	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty register, got %d rows", len(got))
	}
}
