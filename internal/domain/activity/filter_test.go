package activity

import (
	"testing"
	"time"
)

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2026, 4, d, 18, 0, 0, 0, time.UTC) }
	records := []Record{
		{Name: "a", SportType: "Run", ClubID: 1, ClubName: "Harbour", UploadDate: day(1)},
		{Name: "b", SportType: "Ride", ClubID: 1, ClubName: "Harbour", UploadDate: day(3)},
		{Name: "c", SportType: "Run", ClubID: 2, ClubName: "Hills", UploadDate: day(5)},
	}

	got := Filter{ClubID: 1}.Apply(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for club 1, got %d", len(got))
	}

	got = Filter{SportTypes: []string{"Run"}}.Apply(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}

	got = Filter{ClubName: "Hills"}.Apply(records)
	if len(got) != 1 || got[0].Name != "c" {
		t.Fatalf("unexpected club name filter result: %+v", got)
	}

	// Bounds are whole days even when the record was uploaded late in the day.
	got = Filter{From: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)}.Apply(records)
	if len(got) != 1 || got[0].Name != "b" {
		t.Fatalf("unexpected date filter result: %+v", got)
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	if _, ok := Bounds(nil); ok {
		t.Fatalf("expected no bounds for empty slice")
	}

	single := []Record{{UploadDate: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)}}
	got, ok := Bounds(single)
	if !ok {
		t.Fatalf("expected bounds")
	}
	if !got.Min.Equal(time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)) || !got.Max.Equal(time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected widened single-day window, got %s..%s", got.Min, got.Max)
	}
	if !got.DefaultFrom.Equal(got.Min) {
		t.Fatalf("expected default start clamped to min, got %s", got.DefaultFrom)
	}

	wide := []Record{
		{UploadDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UploadDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
	}
	got, _ = Bounds(wide)
	if !got.DefaultFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 30-day default window, got %s", got.DefaultFrom)
	}
}

func TestFilter_Window(t *testing.T) {
	t.Parallel()

	f := Filter{
		From: time.Date(2026, 5, 2, 17, 30, 0, 0, time.UTC),
		To:   time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC),
	}
	since, until := f.Window()
	if !since.Equal(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected since: %s", since)
	}
	if !until.Equal(time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected until: %s", until)
	}

	since, until = Filter{}.Window()
	if !since.IsZero() || !until.IsZero() {
		t.Fatalf("expected unbounded window, got %s %s", since, until)
	}
}
