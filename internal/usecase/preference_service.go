package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-activity/internal/domain/preference"
)

type PreferenceService struct {
	repo preference.Repository
}

func NewPreferenceService(repo preference.Repository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// LastSelectedClub returns "" when nothing was saved yet.
func (s *PreferenceService) LastSelectedClub(ctx context.Context) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.LastSelectedClub")
	defer span.End()

	value, ok, err := s.repo.Get(ctx, preference.KeyLastSelectedClub)
	if err != nil {
		return "", fmt.Errorf("get last selected club: %w", err)
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

func (s *PreferenceService) SaveLastSelectedClub(ctx context.Context, name string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.SaveLastSelectedClub")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	if err := s.repo.Set(ctx, preference.KeyLastSelectedClub, name); err != nil {
		return fmt.Errorf("save last selected club: %w", err)
	}
	return nil
}
