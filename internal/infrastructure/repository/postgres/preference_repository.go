package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/club-activity/internal/platform/querybuilder"
)

const preferenceTable = "app_preferences"

type PreferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.Select("key", "value").From(preferenceTable).
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get preference query: %w", err)
	}

	var row preferenceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference key=%s: %w", key, err)
	}
	return row.Value, true, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	query, args, err := qb.InsertModel(preferenceTable, preferenceTableModel{Key: key, Value: value},
		"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build set preference query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set preference key=%s: %w", key, err)
	}
	return nil
}
