package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
	"github.com/riskibarqy/club-activity/internal/platform/id"
	clubmock "github.com/riskibarqy/club-activity/internal/mocks/domain/club"
)

type ingestionFixture struct {
	provider *clubmock.Provider
	register *registerStub
	log      *fetchLogStub
	service  *IngestionService
	now      time.Time
}

func newIngestionFixture(t *testing.T, cooldown time.Duration) *ingestionFixture {
	t.Helper()

	f := &ingestionFixture{
		provider: clubmock.NewProvider(t),
		register: &registerStub{},
		log:      newFetchLogStub(),
		now:      time.Date(2026, 8, 3, 18, 0, 0, 0, time.UTC),
	}
	f.service = NewIngestionService(
		f.provider,
		NewRegisterService(f.register, nil),
		NewFetchThrottleService(f.log, cooldown, nil),
		id.Static("run-1"),
		IngestionConfig{MemberCap: 300, PerPage: 200, MaxPages: 1, ScreenWorkers: 2},
		nil,
	)
	f.service.now = func() time.Time { return f.now }
	return f
}

func members(n int) []club.Member {
	return make([]club.Member, n)
}

func TestIngestionService_RunCycle_MergesEligibleClubsUsingMockery(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 6*time.Hour)
	f.log.entries[3] = f.now.Add(-time.Hour)

	clubs := []club.Club{
		{ID: 1, Name: "Harbour Runners"},
		{ID: 2, Name: "Mega Club"},
		{ID: 3, Name: "Recently Fetched"},
	}
	f.provider.On("ListAthleteClubs", mock.Anything).Return(clubs, nil).Once()
	f.provider.On("ListClubMembers", mock.Anything, int64(1)).Return(members(12), nil).Once()
	f.provider.On("ListClubMembers", mock.Anything, int64(2)).Return(members(301), nil).Once()
	f.provider.On("ListClubMembers", mock.Anything, int64(3)).Return(members(5), nil).Once()
	f.provider.
		On("ListClubActivities", mock.Anything, int64(1), 1, 200).
		Return([]activity.RawActivity{
			rawRun("Morning Run", 10234, 3000, "Ana"),
			rawRun("Tempo", 8000, 0, "Carl"),
		}, nil).
		Once()

	result, err := f.service.RunCycle(context.Background())
	require.NoError(t, err)

	if result.RunID != "run-1" || result.Status != CycleStatusCompleted || result.StoppedEarly {
		t.Fatalf("unexpected cycle result: %+v", result)
	}
	require.Len(t, result.Clubs, 3)

	wantStatus := []string{ClubStatusMerged, ClubStatusSkippedMembers, ClubStatusSkippedCooldown}
	for i, want := range wantStatus {
		if result.Clubs[i].Status != want {
			t.Fatalf("club %d: want %s got %s", result.Clubs[i].ClubID, want, result.Clubs[i].Status)
		}
	}
	if result.Clubs[0].Fetched != 2 || result.RegisterSize != 2 {
		t.Fatalf("unexpected merge counts: %+v", result)
	}

	if len(f.register.records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(f.register.records))
	}
	for _, item := range f.register.records {
		if item.ClubID != 1 || item.ClubName != "Harbour Runners" || !item.UploadDate.Equal(f.now) {
			t.Fatalf("record not stamped with club and run time: %+v", item)
		}
		if item.Name == "Tempo" && item.AvgSpeed != nil {
			t.Fatalf("expected undefined speed for zero moving time, got %v", *item.AvgSpeed)
		}
	}
	if at := f.log.entries[1]; !at.Equal(f.now) {
		t.Fatalf("expected fetch recorded for club 1, got %s", at)
	}
	if _, ok := f.log.entries[2]; ok {
		t.Fatalf("skipped club must not be recorded in the fetch log")
	}
}

func TestIngestionService_RunCycle_StopsOnFirstFetchFailureUsingMockery(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 0)
	clubs := []club.Club{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	upstream := errors.New("status 503")

	f.provider.On("ListAthleteClubs", mock.Anything).Return(clubs, nil).Once()
	for _, item := range clubs {
		f.provider.On("ListClubMembers", mock.Anything, item.ID).Return(members(3), nil).Once()
	}
	f.provider.
		On("ListClubActivities", mock.Anything, int64(1), 1, 200).
		Return([]activity.RawActivity{rawRun("Run A", 5000, 1800, "Ana")}, nil).
		Once()
	f.provider.
		On("ListClubActivities", mock.Anything, int64(2), 1, 200).
		Return(nil, upstream).
		Once()

	result, err := f.service.RunCycle(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) || !errors.Is(err, upstream) {
		t.Fatalf("expected dependency error wrapping upstream failure, got %v", err)
	}
	if !result.StoppedEarly || result.Status != CycleStatusStopped {
		t.Fatalf("expected stopped cycle, got %+v", result)
	}

	wantStatus := []string{ClubStatusMerged, ClubStatusFailed, ClubStatusNotAttempted}
	for i, want := range wantStatus {
		if result.Clubs[i].Status != want {
			t.Fatalf("club %d: want %s got %s", result.Clubs[i].ClubID, want, result.Clubs[i].Status)
		}
	}

	if len(f.register.records) != 1 || f.register.records[0].ClubID != 1 {
		t.Fatalf("expected club 1 merge to persist, got %+v", f.register.records)
	}
	if _, ok := f.log.entries[2]; ok {
		t.Fatalf("failed club must not be recorded in the fetch log")
	}
	f.provider.AssertNotCalled(t, "ListClubActivities", mock.Anything, int64(3), mock.Anything, mock.Anything)
}

func TestIngestionService_RunCycle_MemberLookupFailureSkipsClubUsingMockery(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 0)
	clubs := []club.Club{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	f.provider.On("ListAthleteClubs", mock.Anything).Return(clubs, nil).Once()
	f.provider.On("ListClubMembers", mock.Anything, int64(1)).Return(nil, errors.New("timeout")).Once()
	f.provider.On("ListClubMembers", mock.Anything, int64(2)).Return(members(2), nil).Once()
	f.provider.On("ListClubActivities", mock.Anything, int64(2), 1, 200).Return([]activity.RawActivity{}, nil).Once()

	result, err := f.service.RunCycle(context.Background())
	require.NoError(t, err)

	if result.Clubs[0].Status != ClubStatusSkippedMembers || result.Clubs[1].Status != ClubStatusMerged {
		t.Fatalf("unexpected outcomes: %+v", result.Clubs)
	}
	if _, ok := f.log.entries[2]; !ok {
		t.Fatalf("empty fetch should still be recorded")
	}
}

func TestIngestionService_RunCycle_RerunIsIdempotentUsingMockery(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 0)
	clubs := []club.Club{{ID: 1, Name: "A"}}
	page := []activity.RawActivity{rawRun("Run A", 5000, 1800, "Ana"), rawRun("Run B", 7000, 2400, "Carl")}

	f.provider.On("ListAthleteClubs", mock.Anything).Return(clubs, nil).Twice()
	f.provider.On("ListClubMembers", mock.Anything, int64(1)).Return(members(2), nil).Twice()
	f.provider.On("ListClubActivities", mock.Anything, int64(1), 1, 200).Return(page, nil).Twice()

	first, err := f.service.RunCycle(context.Background())
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	second, err := f.service.RunCycle(context.Background())
	require.NoError(t, err)

	if first.RegisterSize != 2 || second.RegisterSize != 2 {
		t.Fatalf("expected stable register size, got %d then %d", first.RegisterSize, second.RegisterSize)
	}
	for _, item := range f.register.records {
		if !item.UploadDate.Equal(f.now) {
			t.Fatalf("expected re-fetched rows to carry the latest upload date, got %s", item.UploadDate)
		}
	}
}

func TestIngestionService_RunCycle_ListClubsFailureUsingMockery(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 0)
	f.provider.On("ListAthleteClubs", mock.Anything).Return(nil, errors.New("status 401")).Once()

	result, err := f.service.RunCycle(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if result.Status != CycleStatusFailed || result.FinishedAt.IsZero() {
		t.Fatalf("expected failed cycle with finish time, got %+v", result)
	}
}

func TestIngestionService_RunCycle_RejectsConcurrentCycle(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t, 0)
	f.service.running.Lock()
	defer f.service.running.Unlock()

	if _, err := f.service.RunCycle(context.Background()); !errors.Is(err, ErrIngestionInProgress) {
		t.Fatalf("expected ErrIngestionInProgress, got %v", err)
	}
}

func TestNormalizeScreenWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value, tasks, want int
	}{
		{0, 10, DefaultScreenWorkers},
		{8, 3, 3},
		{2, 10, 2},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if got := normalizeScreenWorkerCount(tc.value, tc.tasks); got != tc.want {
			t.Fatalf("normalizeScreenWorkerCount(%d, %d) = %d, want %d", tc.value, tc.tasks, got, tc.want)
		}
	}
}
