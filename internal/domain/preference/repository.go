package preference

import "context"

const KeyLastSelectedClub = "last_selected_club"

// Repository keeps small named settings that survive restarts.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
