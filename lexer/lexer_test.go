package lexer

import (
	"testing"

	"github.com/jaymd96/sqlite-ast-parser/token"
)

func tokenizeTypes(t *testing.T, input string) []token.Token {
	t.Helper()
	items, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	types := make([]token.Token, len(items))
	for i, it := range items {
		types[i] = it.Type
	}
	return types
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Item
	}{
		{
			input: "SELECT * FROM users",
			expected: []token.Item{
				{Type: token.SELECT, Value: "SELECT"},
				{Type: token.ASTERISK, Value: "*"},
				{Type: token.FROM, Value: "FROM"},
				{Type: token.IDENT, Value: "users"},
				{Type: token.EOF, Value: ""},
			},
		},
		{
			input: "SELECT id, name FROM users WHERE id = 1",
			expected: []token.Item{
				{Type: token.SELECT, Value: "SELECT"},
				{Type: token.IDENT, Value: "id"},
				{Type: token.COMMA, Value: ","},
				{Type: token.IDENT, Value: "name"},
				{Type: token.FROM, Value: "FROM"},
				{Type: token.IDENT, Value: "users"},
				{Type: token.WHERE, Value: "WHERE"},
				{Type: token.IDENT, Value: "id"},
				{Type: token.EQ, Value: "="},
				{Type: token.INT, Value: "1"},
				{Type: token.EOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			items, err := New(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			if len(items) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(items), len(tt.expected), items)
			}
			for i, want := range tt.expected {
				if items[i].Type != want.Type || items[i].Value != want.Value {
					t.Errorf("token %d: got {%s %q}, want {%s %q}", i, items[i].Type, items[i].Value, want.Type, want.Value)
				}
			}
		})
	}
}

func TestLexerStringEscaping(t *testing.T) {
	items, err := New(`'it''s'`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if items[0].Type != token.STRING || items[0].Value != "it's" {
		t.Errorf("got %+v, want STRING %q", items[0], "it's")
	}
}

func TestLexerNoBackslashEscape(t *testing.T) {
	// Unlike many dialects, SQLite treats backslash as an ordinary character.
	items, err := New(`'a\b'`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if items[0].Type != token.STRING || items[0].Value != `a\b` {
		t.Errorf("got %+v, want STRING %q", items[0], `a\b`)
	}
}

func TestLexerBlobLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"X'DEADBEEF'", "DEADBEEF"},
		{"x'0f'", "0f"},
	}
	for _, tt := range tests {
		items, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if items[0].Type != token.BLOB || items[0].Value != tt.want {
			t.Errorf("Tokenize(%q)[0] = %+v, want BLOB %q", tt.input, items[0], tt.want)
		}
	}
}

func TestLexerBlobInvalidCharacter(t *testing.T) {
	_, err := New("X'ZZ'").Tokenize()
	if err == nil {
		t.Fatal("expected error for invalid blob character")
	}
}

func TestLexerParameters(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"?", "?"},
		{"?5", "?5"},
		{":name", ":name"},
		{"@name", "@name"},
		{"$name", "$name"},
	}
	for _, tt := range tests {
		items, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if items[0].Type != token.PARAM || items[0].Value != tt.want {
			t.Errorf("Tokenize(%q)[0] = %+v, want PARAM %q", tt.input, items[0], tt.want)
		}
	}
}

func TestLexerMultiCharOperators(t *testing.T) {
	types := tokenizeTypes(t, "a <> b AND c <= d AND e ->> 1 AND f -> 2 AND g || h")
	want := []token.Token{
		token.IDENT, token.NEQ2, token.IDENT, token.AND,
		token.IDENT, token.LTE, token.IDENT, token.AND,
		token.IDENT, token.DARROW, token.INT, token.AND,
		token.IDENT, token.ARROW, token.INT, token.AND,
		token.IDENT, token.CONCAT, token.IDENT,
		token.EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := New("'abc").Tokenize()
	if err == nil {
		t.Fatal("expected unterminated-string error")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *lexer.Error", err)
	}
	if lexErr.Kind != "unterminated-string" {
		t.Errorf("got kind %q, want unterminated-string", lexErr.Kind)
	}
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	_, err := New("SELECT 1 /* comment").Tokenize()
	if err == nil {
		t.Fatal("expected unterminated-block-comment error")
	}
}

func TestLexerComments(t *testing.T) {
	types := tokenizeTypes(t, "SELECT 1 -- trailing comment\nFROM t /* block */ WHERE 1")
	want := []token.Token{token.SELECT, token.INT, token.FROM, token.IDENT, token.WHERE, token.INT, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
}

func TestLexerQuotedIdentifierForms(t *testing.T) {
	for _, input := range []string{`"col"`, "`col`", "[col]"} {
		items, err := New(input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		if items[0].Type != token.IDENT || items[0].Value != "col" {
			t.Errorf("Tokenize(%q)[0] = %+v, want IDENT %q", input, items[0], "col")
		}
	}
}

func TestLexerNumberForms(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Token
	}{
		{"1", token.INT},
		{"1.", token.FLOAT},
		{".1", token.FLOAT},
		{"1.2", token.FLOAT},
		{"1e10", token.FLOAT},
		{"1.5e-3", token.FLOAT},
	}
	for _, tt := range tests {
		items, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if items[0].Type != tt.kind {
			t.Errorf("Tokenize(%q)[0].Type = %s, want %s", tt.input, items[0].Type, tt.kind)
		}
	}
}

func TestLexerSpansRoundTrip(t *testing.T) {
	src := "SELECT id FROM t"
	items, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	for _, it := range items {
		if it.Type == token.EOF {
			continue
		}
		got := src[it.Span.Start.Offset:it.Span.End.Offset]
		if got != it.Value {
			t.Errorf("span round-trip mismatch: token %+v, source substring %q", it, got)
		}
	}
}

func TestLexerPooling(t *testing.T) {
	l := Get("SELECT 1")
	items, err := l.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	Put(l)
}
