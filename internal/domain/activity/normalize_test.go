package activity

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalize_ConvertsUnitsAndStampsClub(t *testing.T) {
	t.Parallel()

	uploadedAt := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	batch := Normalize([]RawActivity{
		{
			Name:               "Morning Run",
			SportType:          "Run",
			Distance:           floatPtr(10234),
			MovingTime:         floatPtr(3000),
			TotalElevationGain: floatPtr(54.3),
			Athlete:            StructuredIdentity{Firstname: "Ana", Lastname: "B."},
		},
	}, 42, "Harbour Runners", uploadedAt)

	if len(batch.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(batch.Records))
	}
	row := batch.Records[0]
	if row.Distance != 10.23 {
		t.Fatalf("expected distance 10.23, got %v", row.Distance)
	}
	if row.MovingTime != 0.83 {
		t.Fatalf("expected moving_time 0.83, got %v", row.MovingTime)
	}
	if row.AvgSpeed == nil || *row.AvgSpeed != 12.33 {
		t.Fatalf("expected avg_speed 12.33, got %v", row.AvgSpeed)
	}
	if row.TotalElevationGain != 54.3 {
		t.Fatalf("expected elevation 54.3, got %v", row.TotalElevationGain)
	}
	if row.ClubID != 42 || row.ClubName != "Harbour Runners" {
		t.Fatalf("unexpected club stamp: %d %q", row.ClubID, row.ClubName)
	}
	if !row.UploadDate.Equal(uploadedAt) {
		t.Fatalf("unexpected upload date: %s", row.UploadDate)
	}
	if row.Firstname != "Ana" || row.Lastname != "B." {
		t.Fatalf("unexpected athlete: %s %s", row.Firstname, row.Lastname)
	}
	if !batch.Speed.IsComputed() {
		t.Fatalf("expected computed speed, got %s", batch.Speed.Status)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	t.Parallel()

	batch := Normalize(nil, 1, "club", time.Now())
	if len(batch.Records) != 0 {
		t.Fatalf("expected empty batch, got %d rows", len(batch.Records))
	}
}

func TestNormalize_SameUploadDateForWholeBatch(t *testing.T) {
	t.Parallel()

	uploadedAt := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	batch := Normalize([]RawActivity{
		{Name: "a", Distance: floatPtr(1000), MovingTime: floatPtr(3600)},
		{Name: "b", Distance: floatPtr(2000), MovingTime: floatPtr(3600)},
		{Name: "c", Distance: floatPtr(3000), MovingTime: floatPtr(3600)},
	}, 7, "club", uploadedAt)

	for _, row := range batch.Records {
		if !row.UploadDate.Equal(uploadedAt) {
			t.Fatalf("row %q has upload date %s", row.Name, row.UploadDate)
		}
	}
}

func TestNormalize_ZeroMovingTimeLeavesSpeedUndefined(t *testing.T) {
	t.Parallel()

	batch := Normalize([]RawActivity{
		{Name: "Treadmill glitch", Distance: floatPtr(5000), MovingTime: floatPtr(0)},
		{Name: "Short stop", Distance: floatPtr(100), MovingTime: floatPtr(10)},
	}, 1, "club", time.Now())

	if batch.Records[0].AvgSpeed != nil {
		t.Fatalf("expected undefined speed for zero moving time, got %v", *batch.Records[0].AvgSpeed)
	}
	// 10s rounds to 0.00h, which must not divide either.
	if batch.Records[1].AvgSpeed != nil {
		t.Fatalf("expected undefined speed when rounded moving time is zero, got %v", *batch.Records[1].AvgSpeed)
	}
}

func TestNormalize_MissingColumnSkipsSpeed(t *testing.T) {
	t.Parallel()

	batch := Normalize([]RawActivity{
		{Name: "Yoga", MovingTime: floatPtr(1800)},
		{Name: "Stretch", MovingTime: floatPtr(900)},
	}, 1, "club", time.Now())

	if batch.Speed.IsComputed() {
		t.Fatalf("expected skipped speed")
	}
	if batch.Speed.Reason == "" {
		t.Fatalf("expected skip reason")
	}
	for _, row := range batch.Records {
		if row.AvgSpeed != nil {
			t.Fatalf("expected no avg_speed for %q", row.Name)
		}
		if row.Distance != 0 {
			t.Fatalf("expected zero distance for %q, got %v", row.Name, row.Distance)
		}
	}
}

func TestNormalize_MalformedIdentityOnlyAffectsItsRow(t *testing.T) {
	t.Parallel()

	batch := Normalize([]RawActivity{
		{Name: "a", Athlete: EncodedIdentity("{'firstname': 'Jo', 'lastname': 'K.'}")},
		{Name: "b", Athlete: EncodedIdentity("{not a dict")},
	}, 1, "club", time.Now())

	if batch.Records[0].Firstname != "Jo" || batch.Records[0].Lastname != "K." {
		t.Fatalf("unexpected names for row a: %+v", batch.Records[0])
	}
	if batch.Records[1].Firstname != PlaceholderName || batch.Records[1].Lastname != PlaceholderName {
		t.Fatalf("expected placeholders for row b, got %+v", batch.Records[1])
	}
}

func TestComputeSpeed_Skipped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		distance   Column
		movingTime Column
	}{
		{name: "no distance", movingTime: Column{Present: true, Values: []*float64{floatPtr(1)}}},
		{name: "no moving time", distance: Column{Present: true, Values: []*float64{floatPtr(1)}}},
		{name: "neither"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeSpeed(tc.distance, tc.movingTime)
			if got.Status != SpeedSkipped {
				t.Fatalf("expected skipped, got %s", got.Status)
			}
			if got.Values != nil {
				t.Fatalf("expected no values on skipped result")
			}
		})
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	if got := Round2(12.346); got != 12.35 {
		t.Fatalf("expected 12.35, got %v", got)
	}
	if got := Round2(0.004); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
