package fuzz

import (
	"strings"
	"testing"

	sqliteast "github.com/jaymd96/sqlite-ast-parser"
	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/lexer"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// FuzzParse feeds arbitrary strings to Parse and asserts it never panics,
// regardless of whether the input is valid SQL.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"SELECT * FROM t",
		"SELECT a, b FROM t WHERE a = 1",
		"SELECT a FROM t1 JOIN t2 ON t1.id = t2.id",
		"SELECT a FROM t1 LEFT JOIN t2 ON t1.id = t2.id",
		"SELECT DISTINCT a FROM t ORDER BY a DESC LIMIT 10 OFFSET 5",
		"SELECT a FROM t LIMIT 5, 10",
		"INSERT INTO t (a, b) VALUES (1, 2)",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = excluded.a",
		"INSERT OR REPLACE INTO t (a) VALUES (1)",
		"UPDATE t SET a = 1 WHERE b = 2",
		"DELETE FROM t WHERE a = 1",
		"CREATE TABLE t (a INTEGER PRIMARY KEY, b TEXT NOT NULL) WITHOUT ROWID",
		"CREATE TABLE t (a INTEGER) STRICT",
		"CREATE TABLE t (a INTEGER, FOREIGN KEY (a) REFERENCES t2(id) ON DELETE CASCADE)",
		"CREATE VIRTUAL TABLE t USING fts5(a, b)",
		"CREATE INDEX idx ON t (a)",
		"CREATE VIEW v AS SELECT * FROM t",
		"CREATE TRIGGER trg AFTER INSERT ON t BEGIN SELECT 1; END",
		"ALTER TABLE t RENAME TO t2",
		"ALTER TABLE t ADD COLUMN c INTEGER",
		"ALTER TABLE t DROP COLUMN c",
		"ALTER TABLE t RENAME COLUMN a TO b",
		"DROP TABLE IF EXISTS t",
		"DROP INDEX idx",
		"DROP VIEW v",
		"DROP TRIGGER trg",
		"BEGIN TRANSACTION",
		"BEGIN IMMEDIATE",
		"COMMIT",
		"ROLLBACK TO SAVEPOINT sp1",
		"SAVEPOINT sp1",
		"RELEASE sp1",
		"ATTACH DATABASE 'x.db' AS x",
		"DETACH DATABASE x",
		"ANALYZE t",
		"VACUUM",
		"REINDEX t",
		"EXPLAIN SELECT 1",
		"EXPLAIN QUERY PLAN SELECT 1",
		"PRAGMA table_info(t)",
		"PRAGMA journal_mode = WAL",
		"SELECT a FROM t WHERE a IN (1, 2, 3)",
		"SELECT a FROM t WHERE a BETWEEN 1 AND 10",
		"SELECT a FROM t WHERE a LIKE '%x%' ESCAPE '\\'",
		"SELECT a FROM t WHERE a GLOB 'x*'",
		"SELECT a FROM t WHERE a MATCH 'x'",
		"SELECT a FROM t WHERE EXISTS (SELECT 1 FROM t2)",
		"SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t",
		"SELECT CAST(a AS TEXT) FROM t",
		"SELECT a COLLATE NOCASE FROM t",
		"SELECT a || b FROM t",
		"SELECT a -> 'k' FROM t",
		"SELECT a ->> 'k' FROM t",
		"SELECT row_number() OVER (PARTITION BY a ORDER BY b) FROM t",
		"SELECT sum(a) OVER (ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		"SELECT sum(a) OVER (ROWS BETWEEN 1 PRECEDING AND 1 FOLLOWING EXCLUDE CURRENT ROW) FROM t",
		"WITH RECURSIVE cte(n) AS (SELECT 1 UNION ALL SELECT n+1 FROM cte WHERE n < 5) SELECT * FROM cte",
		"SELECT 1 UNION SELECT 2 INTERSECT SELECT 3 EXCEPT SELECT 4",
		"SELECT RAISE(ABORT, 'bad value')",
		"SELECT x'deadbeef'",
		"SELECT ?1, ?2, :name, @var, $var",
		"SELECT CURRENT_TIMESTAMP, CURRENT_DATE, CURRENT_TIME",
		"SELECT * FROM t INDEXED BY idx WHERE a = 1",
		"SELECT * FROM t NOT INDEXED",
		"",
		"   ",
		";",
		";;;",
		"SELECT",
		"SELECT FROM",
		"SELECT * FROM",
		"(((((",
		")))))",
		"SELECT 'unterminated",
		"SELECT \"unterminated",
		"/* unterminated comment",
		"SELECT 0x",
		"SELECT 1e",
		"SELECT a FROM t WHERE",
		strings.Repeat("(", 200) + "SELECT 1" + strings.Repeat(")", 200),
		strings.Repeat("SELECT 1 UNION ", 100) + "SELECT 1",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", sql, r)
			}
		}()
		_, _ = sqliteast.Parse(sql)
	})
}

// FuzzLexer scans arbitrary strings and asserts the lexer never panics and
// always terminates (reaches EOF or an error) within a bounded number of
// tokens.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"SELECT * FROM t",
		"'string with '' escaped quote'",
		"\"quoted identifier\"",
		"`backtick identifier`",
		"[bracket identifier]",
		"-- line comment\nSELECT 1",
		"/* block comment */ SELECT 1",
		"/* unterminated",
		"'unterminated",
		"\"unterminated",
		"x'deadbeef'",
		"x'not hex'",
		"0x1F",
		"1.5e10",
		"1.5e+10",
		"1.5e-10",
		".5",
		"5.",
		"?1 :name @var $var",
		"\x00\x01\x02",
		"select\t\r\n\f\v1",
		"select 1 -- \xff\xfe",
		strings.Repeat("a", 10000),
		strings.Repeat("' ", 1000),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("lexer panicked on %q: %v", src, r)
			}
		}()
		l := lexer.New(src)
		const maxTokens = 1_000_000
		for i := 0; i < maxTokens; i++ {
			item, err := l.Next()
			if err != nil {
				return
			}
			if item.Type == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not terminate within %d tokens on %q", maxTokens, src)
	})
}

// FuzzParseAll exercises ParseAll's panic-mode recovery across multiple
// statements separated by semicolons.
func FuzzParseAll(f *testing.F) {
	seeds := []string{
		"SELECT 1; SELECT 2; SELECT 3",
		"SELECT 1;; SELECT 2",
		"SELECT ; SELECT 1",
		"CREATE TABLE t (a); INSERT INTO t VALUES (1); SELECT * FROM t",
		"SELECT 1 FROM; SELECT 2",
		";",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("ParseAll panicked on %q: %v", sql, r)
			}
		}()
		_, _ = sqliteast.ParseAll(sql)
	})
}

// FuzzWalk parses the input (when it parses) and walks the resulting AST,
// asserting Walk never panics on whatever shape of tree comes out.
func FuzzWalk(f *testing.F) {
	seeds := []string{
		"SELECT a, b FROM t1 JOIN t2 ON t1.id = t2.id WHERE a = 1 GROUP BY a HAVING count(*) > 1 ORDER BY a LIMIT 10",
		"WITH cte AS (SELECT 1) SELECT * FROM cte",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT DO NOTHING",
		"CREATE TABLE t (a INTEGER, b TEXT, FOREIGN KEY (a) REFERENCES t2(id))",
		"SELECT CASE WHEN a THEN b ELSE c END FROM t",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		stmt, err := sqliteast.Parse(sql)
		if err != nil || stmt == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Walk panicked on %q: %v", sql, r)
			}
		}()
		count := 0
		sqliteast.Walk(stmt, func(n ast.Node) bool {
			count++
			return count < 100000
		})
	})
}

// FuzzRewrite parses the input (when it parses) and rewrites the resulting
// AST with an identity function, asserting Rewrite never panics and produces
// a node that still formats without panicking.
func FuzzRewrite(f *testing.F) {
	seeds := []string{
		"SELECT a, b FROM t1 JOIN t2 ON t1.id = t2.id WHERE a = 1",
		"WITH cte AS (SELECT 1) SELECT * FROM cte",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = excluded.a",
		"UPDATE t SET a = 1 WHERE b = 2",
		"CREATE TABLE t (a INTEGER PRIMARY KEY)",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		stmt, err := sqliteast.Parse(sql)
		if err != nil || stmt == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Rewrite panicked on %q: %v", sql, r)
			}
		}()
		rewritten := sqliteast.Rewrite(stmt, func(n ast.Node) ast.Node { return n })
		if rewritten == nil {
			t.Fatalf("Rewrite returned nil for %q", sql)
		}
		_ = sqliteast.String(rewritten)
	})
}

// FuzzFormat parses the input (when it parses) and formats the result,
// asserting that Format never panics and that the formatted text re-parses.
func FuzzFormat(f *testing.F) {
	seeds := []string{
		"SELECT a, b FROM t1 JOIN t2 ON t1.id = t2.id WHERE a = 1 ORDER BY a LIMIT 10",
		"INSERT INTO t (a, b) VALUES (1, 2), (3, 4)",
		"UPDATE t SET a = 1, b = 2 WHERE c = 3",
		"DELETE FROM t WHERE a = 1",
		"CREATE TABLE t (a INTEGER PRIMARY KEY AUTOINCREMENT, b TEXT DEFAULT 'x')",
		"SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS BETWEEN 1 PRECEDING AND CURRENT ROW)",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		stmt, err := sqliteast.Parse(sql)
		if err != nil || stmt == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Format panicked on %q: %v", sql, r)
			}
		}()
		formatted := sqliteast.String(stmt)
		if formatted == "" {
			return
		}
		if _, err := sqliteast.Parse(formatted); err != nil {
			t.Fatalf("re-parse of formatted output failed: %v\ninput: %s\nformatted: %s", err, sql, formatted)
		}
	})
}

// FuzzPooling exercises Parse followed immediately by Repool, asserting the
// pool-release path never panics even on malformed input that only partially
// builds an AST.
func FuzzPooling(f *testing.F) {
	seeds := []string{
		"SELECT a FROM t",
		"INSERT INTO t (a) VALUES (1)",
		"SELECT a FROM",
		"CREATE TABLE t (a INTEGER, FOREIGN KEY (a) REFERENCES t2(id))",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Repool panicked on %q: %v", sql, r)
			}
		}()
		stmt, _ := sqliteast.Parse(sql)
		if stmt != nil {
			sqliteast.Repool(stmt)
		}
	})
}

// FuzzSQLiteFeatures targets syntax unique to SQLite's grammar - upserts,
// PRAGMA, RAISE, virtual tables, the comma form of LIMIT, and the narrowed
// ALTER TABLE action set - to keep fuzzing pressure on the dialect-specific
// corners of the grammar rather than the generic-SQL core already covered by
// FuzzParse.
func FuzzSQLiteFeatures(f *testing.F) {
	seeds := []string{
		"INSERT INTO t (a, b) VALUES (1, 2) ON CONFLICT (a) DO UPDATE SET b = excluded.b WHERE excluded.b > t.b",
		"INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO NOTHING ON CONFLICT (b) DO NOTHING",
		"SELECT a FROM t LIMIT 10, 20",
		"SELECT RAISE(ROLLBACK, 'stop'), RAISE(FAIL, 'nope'), RAISE(IGNORE)",
		"CREATE VIRTUAL TABLE t USING rtree(id, minX, maxX)",
		"CREATE TABLE t (a) WITHOUT ROWID",
		"CREATE TABLE t (a) STRICT, WITHOUT ROWID",
		"PRAGMA foreign_keys = ON",
		"PRAGMA table_info('t')",
		"ALTER TABLE t RENAME COLUMN a TO b",
		"ALTER TABLE main.t ADD COLUMN c INTEGER DEFAULT 0",
		"CREATE TRIGGER trg INSTEAD OF UPDATE OF a, b ON v BEGIN SELECT 1; END",
		"CREATE TRIGGER trg BEFORE DELETE ON t WHEN old.a > 0 BEGIN DELETE FROM t2 WHERE id = old.a; END",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", sql, r)
			}
		}()
		_, _ = sqliteast.Parse(sql)
	})
}
