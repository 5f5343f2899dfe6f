package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("name", "sport_type").
		From("club_activities").
		Where(Eq("club_id", int64(7)), In("sport_type", []any{"Run", "Trail"}), Gte("upload_date", since)).
		OrderBy("upload_date DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT name, sport_type FROM club_activities WHERE club_id = $1 AND sport_type IN ($2, $3) AND upload_date >= $4 ORDER BY upload_date DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != int64(7) || args[3] != since {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("name").From("club_activities").Where(In("sport_type", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT name FROM club_activities WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("club_fetch_log").
		Columns("club_id", "last_fetched_at").
		Values(int64(7), "2026-04-01").
		Suffix("ON CONFLICT (club_id) DO UPDATE SET last_fetched_at = EXCLUDED.last_fetched_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO club_fetch_log (club_id, last_fetched_at) VALUES ($1, $2) ON CONFLICT (club_id) DO UPDATE SET last_fetched_at = EXCLUDED.last_fetched_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("club_activities").Where(Lt("upload_date", "2026-01-01")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM club_activities WHERE upload_date < $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type rowModel struct {
	Key     string `db:"key"`
	Value   string `db:"value"`
	ignored string
	Skip    string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []rowModel{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	query, args, err := InsertModels("app_preferences", rows, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO app_preferences (key, value) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[rowModel]("app_preferences", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestModelColumns(t *testing.T) {
	cols, err := ModelColumns(rowModel{ignored: "x"})
	if err != nil {
		t.Fatalf("model columns: %v", err)
	}
	if len(cols) != 2 || cols[0] != "key" || cols[1] != "value" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}
