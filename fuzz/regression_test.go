package fuzz

import (
	"testing"

	sqliteast "github.com/jaymd96/sqlite-ast-parser"
)

// TestFuzzRegressions contains edge cases discovered by fuzzing.
// Each test documents a specific edge case that previously caused issues.
// When fuzzing finds a new crash, add a test here with a comment explaining the issue.
func TestFuzzRegressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		note  string
	}{
		// Incomplete function calls with operators
		{
			name:  "function with IN keyword inside",
			input: "SELECT A(*IN",
			note:  "Parser must not panic on incomplete function with keyword",
		},
		{
			name:  "function with IS keyword inside",
			input: "SELECT A(*IS",
			note:  "Parser must not panic on incomplete function with keyword",
		},
		{
			name:  "function with BETWEEN keyword inside",
			input: "SELECT A(*BETWEEN",
			note:  "Parser must not panic on incomplete function with keyword",
		},
		{
			name:  "function with LIKE keyword inside",
			input: "SELECT A(*LIKE",
			note:  "Parser must not panic on incomplete function with keyword",
		},
		{
			name:  "function with GLOB keyword inside",
			input: "SELECT A(*GLOB",
			note:  "Parser must not panic on incomplete function with keyword",
		},

		// Bracket edge cases
		{
			name:  "number followed by brackets",
			input: "SELECT 0[[",
			note:  "Lexer must handle [ after number without panicking",
		},

		// JSON operator edge cases
		{
			name:  "dangling json arrow",
			input: "SELECT 0->",
			note:  "Incomplete JSON arrow operator",
		},
		{
			name:  "dangling json arrow2",
			input: "SELECT 0->>",
			note:  "Incomplete JSON double-arrow operator",
		},

		// Unary operator edge cases
		{
			name:  "double unary minus",
			input: "SELECT - -0",
			note:  "Multiple unary operators",
		},
		{
			name:  "double unary minus no space",
			input: "SELECT --0",
			note:  "Could be comment or double minus, lexer must pick one deterministically",
		},

		// Blob literal edge cases
		{
			name:  "empty blob literal",
			input: "SELECT x''",
			note:  "Zero-length hex blob",
		},
		{
			name:  "odd-length blob literal",
			input: "SELECT x'abc'",
			note:  "Odd number of hex digits is accepted by the lexer and must not panic",
		},

		// Empty identifier edge cases
		{
			name:  "empty double-quoted identifier star",
			input: `SELECT "".* FROM t`,
			note:  "Empty quoted identifier with qualified star",
		},
		{
			name:  "empty double-quoted identifier function",
			input: `SELECT ""(0)`,
			note:  "Empty quoted identifier as function name",
		},

		// RAISE edge cases
		{
			name:  "raise with no args",
			input: "SELECT RAISE(",
			note:  "Incomplete RAISE expression",
		},
		{
			name:  "raise with unknown kind",
			input: "SELECT RAISE(BOGUS, 'x')",
			note:  "Unrecognized RAISE kind should error, not panic",
		},

		// Malformed expressions
		{
			name:  "exists with empty parens",
			input: "SELECT 00 WHERE EXISTS()0000000",
			note:  "Number tokens adjacent to keywords",
		},

		// Additional edge cases from typical fuzzing
		{
			name:  "empty input",
			input: "",
			note:  "Empty input should not panic",
		},
		{
			name:  "only whitespace",
			input: "   \t\n\r  ",
			note:  "Whitespace only should not panic",
		},
		{
			name:  "only semicolons",
			input: ";;;",
			note:  "Multiple empty statements",
		},
		{
			name:  "unclosed string",
			input: "SELECT 'unclosed",
			note:  "Unclosed string literal",
		},
		{
			name:  "unclosed parenthesis",
			input: "SELECT (1 + 2",
			note:  "Missing closing paren",
		},
		{
			name:  "too many close parens",
			input: "SELECT (1))",
			note:  "Extra closing paren",
		},
		{
			name:  "null bytes",
			input: "SELECT\x00*",
			note:  "Null byte in input",
		},
		{
			name:  "deeply nested",
			input: "SELECT ((((((((((1))))))))))",
			note:  "Deeply nested parentheses",
		},
		{
			name:  "very long identifier",
			input: "SELECT aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa FROM t",
			note:  "Long identifier (100 chars)",
		},

		// Incomplete statements (should error, not panic)
		{
			name:  "select with parenthesized WITH",
			input: "SELECT(WITH)",
			note:  "Incomplete WITH in subquery should not panic",
		},
		{
			name:  "update with incomplete SET",
			input: "UPDATE t SET",
			note:  "SET without assignments should error",
		},
		{
			name:  "trailing operators",
			input: "SELECT * % 0",
			note:  "Trailing operators after statement should error",
		},
		{
			name:  "incomplete qualified table with paren",
			input: "SELECT * FROM a.(b)",
			note:  "Qualified name followed by paren should not panic",
		},
		{
			name:  "upsert with no conflict target or clause",
			input: "INSERT INTO t VALUES (1) ON CONFLICT",
			note:  "Incomplete ON CONFLICT clause should error, not panic",
		},
		{
			name:  "compound select missing right operand",
			input: "SELECT 1 UNION",
			note:  "Dangling set-operator keyword should error, not panic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The parser should never panic
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parser panicked: %v\nInput: %q\nNote: %s", r, tt.input, tt.note)
				}
			}()

			stmt, err := sqliteast.Parse(tt.input)

			// Parse errors are acceptable - we're testing for panics
			if err != nil {
				return
			}

			if stmt == nil {
				return
			}

			// If parsing succeeded, formatting should not panic
			formatted := sqliteast.String(stmt)
			if formatted == "" {
				t.Logf("Warning: valid parse but empty format for: %q", tt.input)
			}
		})
	}
}

// TestFuzzRoundTrip tests that valid SQL round-trips correctly.
// Add cases here when fuzzing finds formatting issues.
func TestFuzzRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple select", "SELECT * FROM t"},
		{"select with alias", "SELECT a AS b FROM t"},
		{"join", "SELECT * FROM t1 JOIN t2 ON t1.id = t2.id"},
		{"subquery", "SELECT * FROM (SELECT 1) AS sub"},
		{"cte", "WITH cte AS (SELECT 1) SELECT * FROM cte"},
		{"union", "SELECT 1 UNION SELECT 2"},
		{"case expression", "SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t"},
		{"window function", "SELECT ROW_NUMBER() OVER (ORDER BY id) FROM t"},
		{"multi-level identifier", "SELECT a.b.c FROM a.b"},
		{"quoted identifier", `SELECT "col" FROM "table"`},
		{"function with keyword-shaped name", "SELECT GLOB('x*', y) FROM t"},
		{"json arrow", "SELECT a -> 'k' FROM t"},
		{"json double arrow", "SELECT a ->> 'k' FROM t"},
		{"upsert", "INSERT INTO t (a) VALUES (1) ON CONFLICT (a) DO UPDATE SET a = excluded.a"},
		{"limit comma form", "SELECT a FROM t LIMIT 10, 20"},
		{"raise", "SELECT RAISE(ABORT, 'stop')"},
		{"blob literal", "SELECT x'deadbeef'"},
		{"without rowid", "CREATE TABLE t (a INTEGER PRIMARY KEY) WITHOUT ROWID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := sqliteast.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			formatted1 := sqliteast.String(stmt)
			if formatted1 == "" {
				t.Fatal("Format returned empty string")
			}

			stmt2, err := sqliteast.Parse(formatted1)
			if err != nil {
				t.Fatalf("Re-parse failed: %v\nFormatted: %s", err, formatted1)
			}

			formatted2 := sqliteast.String(stmt2)
			if formatted1 != formatted2 {
				t.Errorf("Round-trip mismatch:\nInput:     %s\nFormatted: %s\nRe-format: %s",
					tt.input, formatted1, formatted2)
			}
		})
	}
}
