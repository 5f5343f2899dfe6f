package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	qb "github.com/riskibarqy/club-activity/internal/platform/querybuilder"
)

const fetchLogTable = "club_fetch_log"

type FetchLogRepository struct {
	db *sqlx.DB
}

func NewFetchLogRepository(db *sqlx.DB) *FetchLogRepository {
	return &FetchLogRepository{db: db}
}

func (r *FetchLogRepository) Get(ctx context.Context, clubID int64) (time.Time, bool, error) {
	query, args, err := qb.Select("club_id", "last_fetched_at").From(fetchLogTable).
		Where(qb.Eq("club_id", clubID)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build get fetch log query: %w", err)
	}

	var row fetchLogTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("get fetch log club=%d: %w", clubID, err)
	}
	return row.LastFetchedAt.UTC(), true, nil
}

func (r *FetchLogRepository) Upsert(ctx context.Context, clubID int64, fetchedAt time.Time) error {
	query, args, err := qb.InsertModel(fetchLogTable, fetchLogTableModel{
		ClubID:        clubID,
		LastFetchedAt: fetchedAt.UTC(),
	}, "ON CONFLICT (club_id) DO UPDATE SET last_fetched_at = EXCLUDED.last_fetched_at")
	if err != nil {
		return fmt.Errorf("build upsert fetch log query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fetch log club=%d: %w", clubID, err)
	}
	return nil
}

func (r *FetchLogRepository) List(ctx context.Context) ([]fetchlog.Entry, error) {
	query, args, err := qb.Select("club_id", "last_fetched_at").From(fetchLogTable).
		OrderBy("club_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fetch log query: %w", err)
	}

	var rows []fetchLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fetch log: %w", err)
	}

	out := make([]fetchlog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, fetchlog.Entry{ClubID: row.ClubID, LastFetchedAt: row.LastFetchedAt.UTC()})
	}
	return out, nil
}
