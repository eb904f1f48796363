package sqliteast

import (
	"testing"
)

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple select", input: "SELECT * FROM users"},
		{name: "select with where", input: "SELECT id, name FROM users WHERE status = 'active'"},
		{name: "select with join", input: "SELECT a.id, b.name FROM a JOIN b ON a.id = b.a_id"},
		{name: "select with multiple joins", input: "SELECT * FROM a LEFT JOIN b ON a.id = b.a_id JOIN c ON b.id = c.b_id"},
		{name: "select with subquery", input: "SELECT * FROM users WHERE id IN (SELECT user_id FROM orders)"},
		{name: "insert", input: "INSERT INTO users (id, name) VALUES (1, 'test')"},
		{name: "update", input: "UPDATE users SET name = 'new' WHERE id = 1"},
		{name: "delete", input: "DELETE FROM users WHERE id = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			formatted := String(stmt)
			if formatted == "" {
				t.Fatal("Formatted output is empty")
			}

			stmt2, err := Parse(formatted)
			if err != nil {
				t.Fatalf("Re-parse error: %v\nFormatted: %s", err, formatted)
			}

			formatted2 := String(stmt2)
			if formatted != formatted2 {
				t.Errorf("Round-trip mismatch:\nFirst:  %s\nSecond: %s", formatted, formatted2)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	stmt, err := Parse("SELECT a.id, b.name FROM users a JOIN orders b ON a.id = b.user_id WHERE a.status = 'active'")
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	Walk(stmt, func(node Node) bool {
		switch n := node.(type) {
		case *Identifier:
			names = append(names, n.Name)
		case *QualifiedIdentifier:
			names = append(names, n.Column())
		}
		return true
	})

	expected := []string{"id", "name", "id", "user_id", "status"}
	if len(names) != len(expected) {
		t.Errorf("Expected %d identifiers, got %d: %v", len(expected), len(names), names)
	}
}

func TestRewrite(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users WHERE status = 'active'")
	if err != nil {
		t.Fatal(err)
	}

	rewritten := Rewrite(stmt, func(node Node) Node {
		if id, ok := node.(*Identifier); ok {
			return &QualifiedIdentifier{Parts: []string{"u", id.Name}}
		}
		return node
	})

	formatted := String(rewritten)
	if formatted == "" {
		t.Fatal("Rewritten output is empty")
	}
	t.Logf("Rewritten: %s", formatted)
}

func TestExtractTables(t *testing.T) {
	stmt, err := Parse("SELECT * FROM users u JOIN orders o ON u.id = o.user_id WHERE EXISTS (SELECT 1 FROM items)")
	if err != nil {
		t.Fatal(err)
	}

	tables := extractTables(stmt)
	if len(tables) != 3 {
		t.Errorf("Expected 3 tables, got %d: %v", len(tables), tables)
	}
}

func extractTables(stmt Statement) []string {
	var tables []string
	seen := make(map[string]bool)
	Walk(stmt, func(node Node) bool {
		if tn, ok := node.(*TableName); ok {
			if !seen[tn.Table] {
				tables = append(tables, tn.Table)
				seen[tn.Table] = true
			}
		}
		return true
	})
	return tables
}

func TestComplexQueries(t *testing.T) {
	queries := []string{
		`WITH active AS (SELECT id FROM users WHERE status = 'active') SELECT * FROM active`,
		`SELECT id, COUNT(*) as cnt FROM orders GROUP BY id HAVING COUNT(*) > 5`,
		`SELECT ROW_NUMBER() OVER (PARTITION BY type ORDER BY created_at DESC) FROM items`,
		`SELECT CASE WHEN status = 1 THEN 'active' ELSE 'inactive' END FROM users`,
		`SELECT * FROM users WHERE name LIKE '%test%' ESCAPE '\'`,
		`SELECT * FROM users WHERE created_at BETWEEN '2024-01-01' AND '2024-12-31'`,
		`SELECT COALESCE(name, 'unknown') FROM users`,
		`SELECT CAST(price AS INTEGER) FROM products`,
		`SELECT a || ' ' || b FROM names`,
		`SELECT * FROM users LIMIT 10 OFFSET 20`,
	}

	for _, q := range queries {
		t.Run(q[:30], func(t *testing.T) {
			stmt, err := Parse(q)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			formatted := String(stmt)
			if formatted == "" {
				t.Error("Empty formatted output")
			}
		})
	}
}

func TestDDL(t *testing.T) {
	queries := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS items (id INTEGER, price REAL)`,
		`ALTER TABLE users ADD COLUMN email TEXT`,
		`DROP TABLE IF EXISTS old_users`,
		`CREATE UNIQUE INDEX idx_email ON users (email)`,
		`DROP INDEX idx_old`,
		`CREATE VIRTUAL TABLE docs USING fts5(title, body)`,
	}

	for _, q := range queries {
		name := q
		if len(name) > 20 {
			name = name[:20]
		}
		t.Run(name, func(t *testing.T) {
			stmt, err := Parse(q)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			formatted := String(stmt)
			if formatted == "" {
				t.Error("Empty formatted output")
			}
		})
	}
}

func TestSQLiteSpecificFeatures(t *testing.T) {
	queries := []struct {
		name  string
		query string
	}{
		{"upsert", "INSERT INTO users (id, name) VALUES (1, 'test') ON CONFLICT (id) DO NOTHING"},
		{"cte", "WITH t AS (SELECT 1) SELECT * FROM t"},
		{"window", "SELECT SUM(x) OVER (PARTITION BY y) FROM t"},
		{"exists", "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u)"},
		{"returning", "INSERT INTO users (name) VALUES ('test') RETURNING id"},
		{"limit comma", "SELECT * FROM users LIMIT 10, 20"},
		{"glob", "SELECT * FROM t WHERE name GLOB 'a*'"},
		{"json arrow", "SELECT data->'$.name' FROM docs"},
		{"isnull", "SELECT * FROM t WHERE x ISNULL"},
	}

	for _, tc := range queries {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := Parse(tc.query)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			formatted := String(stmt)
			if formatted == "" {
				t.Error("Empty formatted output")
			}
		})
	}
}

func TestQualifiedIdentifierLevels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols int
	}{
		{name: "simple column", input: "SELECT a FROM t", wantCols: 1},
		{name: "two-level column", input: "SELECT t.a FROM t", wantCols: 1},
		{name: "three-level column", input: "SELECT schema.t.column FROM schema.t", wantCols: 1},
		{name: "mixed levels", input: "SELECT a, t.b, s.t.c FROM t", wantCols: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			sel, ok := stmt.(*SelectStmt)
			if !ok {
				t.Fatalf("Expected SelectStmt, got %T", stmt)
			}
			if got := len(sel.ColumnsOf()); got != tt.wantCols {
				t.Errorf("Expected %d columns, got %d", tt.wantCols, got)
			}

			formatted := String(stmt)
			stmt2, err := Parse(formatted)
			if err != nil {
				t.Fatalf("Re-parse error: %v\nFormatted: %s", err, formatted)
			}
			formatted2 := String(stmt2)
			if formatted != formatted2 {
				t.Errorf("Round-trip mismatch:\nFirst:  %s\nSecond: %s", formatted, formatted2)
			}
		})
	}
}

func TestQualifiedIdentifierParts(t *testing.T) {
	stmt, err := Parse("SELECT schema.tbl.column FROM db")
	if err != nil {
		t.Fatal(err)
	}

	sel := stmt.(*SelectStmt)
	ae := sel.ColumnsOf()[0].(*AliasedExpr)
	col := ae.Expr.(*QualifiedIdentifier)

	if len(col.Parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d: %v", len(col.Parts), col.Parts)
	}

	if col.Column() != "column" {
		t.Errorf("Column() = %q, want %q", col.Column(), "column")
	}
	if col.Table() != "tbl" {
		t.Errorf("Table() = %q, want %q", col.Table(), "tbl")
	}
	if col.Schema() != "schema" {
		t.Errorf("Schema() = %q, want %q", col.Schema(), "schema")
	}
}

func TestSchemaQualifiedTableName(t *testing.T) {
	stmt, err := Parse("SELECT * FROM main.users")
	if err != nil {
		t.Fatal(err)
	}

	sel := stmt.(*SelectStmt)
	var tn *TableName
	switch from := sel.Core.From.(type) {
	case *TableName:
		tn = from
	case *AliasedTableExpr:
		tn = from.Expr.(*TableName)
	default:
		t.Fatalf("unexpected From type: %T", sel.Core.From)
	}

	if tn.Table != "users" {
		t.Errorf("Table = %q, want %q", tn.Table, "users")
	}
	if tn.Schema != "main" {
		t.Errorf("Schema = %q, want %q", tn.Schema, "main")
	}
}

func BenchmarkParseFormat(b *testing.B) {
	query := `SELECT u.id, u.name, COUNT(o.id) as order_count
FROM users u
LEFT JOIN orders o ON u.id = o.user_id
WHERE u.status = 'active'
  AND u.created_at BETWEEN '2024-01-01' AND '2024-12-31'
GROUP BY u.id, u.name
HAVING COUNT(o.id) > 5
ORDER BY order_count DESC
LIMIT 100`

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		stmt, _ := Parse(query)
		_ = String(stmt)
	}
}

func BenchmarkWalk(b *testing.B) {
	stmt, _ := Parse(`SELECT u.id, u.name, COUNT(o.id) as order_count
FROM users u
LEFT JOIN orders o ON u.id = o.user_id
WHERE u.status = 'active'
GROUP BY u.id, u.name
ORDER BY order_count DESC`)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Walk(stmt, func(node Node) bool {
			return true
		})
	}
}
