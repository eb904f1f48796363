package debug

import (
	"strings"
	"testing"

	sqliteast "github.com/jaymd96/sqlite-ast-parser"
	"github.com/jaymd96/sqlite-ast-parser/lexer"
)

func TestDumpAST(t *testing.T) {
	stmt, err := sqliteast.Parse("SELECT a, b FROM t WHERE a = 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf strings.Builder
	if err := DumpAST(&buf, stmt); err != nil {
		t.Fatalf("DumpAST failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("DumpAST produced no output")
	}
	if !strings.Contains(buf.String(), "SelectStmt") {
		t.Errorf("expected dump to mention SelectStmt, got: %s", buf.String())
	}
}

func TestDumpASTNil(t *testing.T) {
	var buf strings.Builder
	if err := DumpAST(&buf, nil); err != nil {
		t.Fatalf("DumpAST(nil) failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<nil>" {
		t.Errorf("expected <nil>, got %q", buf.String())
	}
}

func TestSprintAST(t *testing.T) {
	stmt, err := sqliteast.Parse("SELECT 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s := SprintAST(stmt); s == "" {
		t.Fatal("SprintAST returned empty string")
	}
	if s := SprintAST(nil); s != "<nil>" {
		t.Errorf("SprintAST(nil) = %q, want <nil>", s)
	}
}

func TestScanAllAndDumpTokens(t *testing.T) {
	l := lexer.New("SELECT a FROM t")
	items, err := ScanAll(l)
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("ScanAll produced no tokens")
	}

	var buf strings.Builder
	if err := DumpTokens(&buf, items, 1); err != nil {
		t.Fatalf("DumpTokens failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ">>>") {
		t.Errorf("expected highlight marker in output:\n%s", out)
	}
}

func TestScanAllLexError(t *testing.T) {
	l := lexer.New("SELECT 'unterminated")
	items, err := ScanAll(l)
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated string")
	}
	// Tokens scanned before the error are still returned.
	if len(items) == 0 {
		t.Fatal("expected at least the SELECT token before the error")
	}
}
