package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	qb "github.com/riskibarqy/club-activity/internal/platform/querybuilder"
)

type ActivityRegister struct {
	db *sqlx.DB
}

func NewActivityRegister(db *sqlx.DB) *ActivityRegister {
	return &ActivityRegister{db: db}
}

var (
	_ activity.Register = (*ActivityRegister)(nil)
	_ activity.Querier  = (*ActivityRegister)(nil)
)

func (r *ActivityRegister) Load(ctx context.Context) ([]activity.Record, error) {
	return r.Query(ctx, activity.Filter{})
}

func (r *ActivityRegister) Query(ctx context.Context, filter activity.Filter) ([]activity.Record, error) {
	query, args, err := buildActivityQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build select activities query: %w", err)
	}

	var rows []activityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}

	out := make([]activity.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Replace swaps the whole register inside one transaction.
func (r *ActivityRegister) Replace(ctx context.Context, records []activity.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for register replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom(activityTable).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete activities query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}

	models := make([]activityTableModel, 0, len(records))
	for i, item := range records {
		models = append(models, activityModelFromRecord(i, item))
	}
	for _, part := range chunk(models, insertChunkSize) {
		insertQuery, insertArgs, err := qb.InsertModels(activityTable, part, "")
		if err != nil {
			return fmt.Errorf("build insert activities query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert activities: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register replace: %w", err)
	}
	return nil
}

func buildActivityQuery(filter activity.Filter) (string, []any, error) {
	columns, err := qb.ModelColumns(activityTableModel{})
	if err != nil {
		return "", nil, err
	}

	conditions := make([]qb.Condition, 0, 5)
	if filter.ClubID != 0 {
		conditions = append(conditions, qb.Eq("club_id", filter.ClubID))
	}
	if name := strings.TrimSpace(filter.ClubName); name != "" {
		conditions = append(conditions, qb.Eq("club_name", name))
	}
	sports := make([]any, 0, len(filter.SportTypes))
	for _, sport := range filter.SportTypes {
		if sport = strings.TrimSpace(sport); sport != "" {
			sports = append(sports, sport)
		}
	}
	if len(sports) > 0 {
		conditions = append(conditions, qb.In("sport_type", sports))
	}
	since, until := filter.Window()
	if !since.IsZero() {
		conditions = append(conditions, qb.Gte("upload_date", since))
	}
	if !until.IsZero() {
		conditions = append(conditions, qb.Lt("upload_date", until))
	}

	return qb.Select(columns...).
		From(activityTable).
		Where(conditions...).
		OrderBy("position").
		ToSQL()
}
