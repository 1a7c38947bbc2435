package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("entity_id", "name").
		From("stadium_cache").
		Where(ContainsFold("name", "San_Siro%"), Eq("country", "Italy")).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := `SELECT entity_id, name FROM stadium_cache WHERE LOWER(name) LIKE ? ESCAPE '\' AND country = ? ORDER BY name LIMIT 10`
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != `%san\_siro\%%` || args[1] != "Italy" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("stadium_cache").
		Columns("entity_id", "name").
		Values("Q1", "San Siro").
		Values("Q2", "Allianz Arena").
		Suffix("ON CONFLICT (entity_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO stadium_cache (entity_id, name) VALUES (?, ?), (?, ?) ON CONFLICT (entity_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Q1" || args[3] != "Allianz Arena" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("stadium_cache").Columns("entity_id", "name").Values("Q1").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID      string `db:"entity_id"`
		Name    string `db:"name"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := InsertModels("stadium_cache", []row{{ID: "Q1", Name: "A"}, {ID: "Q2", Name: "B"}}, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}
	if query != "INSERT INTO stadium_cache (entity_id, name) VALUES (?, ?), (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(row{}); len(cols) != 2 || cols[0] != "entity_id" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}
