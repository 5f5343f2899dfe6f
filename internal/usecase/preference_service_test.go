package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/club-activity/internal/domain/preference"
	preferencemock "github.com/riskibarqy/club-activity/internal/mocks/domain/preference"
)

func TestPreferenceService_LastSelectedClubUsingMockery(t *testing.T) {
	t.Parallel()

	repo := preferencemock.NewRepository(t)
	service := NewPreferenceService(repo)

	repo.On("Get", mock.Anything, preference.KeyLastSelectedClub).Return("", false, nil).Once()
	got, err := service.LastSelectedClub(context.Background())
	if err != nil || got != "" {
		t.Fatalf("expected empty preference, got %q err=%v", got, err)
	}

	repo.On("Get", mock.Anything, preference.KeyLastSelectedClub).Return("Harbour Runners", true, nil).Once()
	got, err = service.LastSelectedClub(context.Background())
	if err != nil || got != "Harbour Runners" {
		t.Fatalf("expected saved club, got %q err=%v", got, err)
	}
}

func TestPreferenceService_SaveLastSelectedClubUsingMockery(t *testing.T) {
	t.Parallel()

	repo := preferencemock.NewRepository(t)
	service := NewPreferenceService(repo)

	repo.On("Set", mock.Anything, preference.KeyLastSelectedClub, "Harbour Runners").Return(nil).Once()

	if err := service.SaveLastSelectedClub(context.Background(), "  Harbour Runners "); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := service.SaveLastSelectedClub(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
