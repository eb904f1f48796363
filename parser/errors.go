package parser

import (
	"fmt"
	"strings"

	"github.com/jaymd96/sqlite-ast-parser/token"
)

// ParseError is the common interface implemented by every error type of this
// package: LexerError, SyntaxError, UnexpectedTokenError, UnexpectedEOFError,
// InvalidTokenError, and SemanticError.
type ParseError interface {
	error
	Position() token.Position
}

func formatWithCaret(source string, pos token.Position, msg string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Line %d, Column %d: %s", pos.Line, pos.Column, msg)
	line := sourceLine(source, pos.Line)
	if line != "" {
		b.WriteByte('\n')
		b.WriteString(line)
		b.WriteByte('\n')
		col := pos.Column - 1
		if col < 0 {
			col = 0
		}
		b.WriteString(strings.Repeat(" ", col))
		b.WriteByte('^')
	}
	return b.String()
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// LexerError wraps a lexical error surfaced while the parser was pulling
// tokens; it carries the same position the originating lexer.Error reported.
type LexerError struct {
	Message string
	Pos     token.Position
	Source  string
}

func (e *LexerError) Error() string           { return formatWithCaret(e.Source, e.Pos, e.Message) }
func (e *LexerError) Position() token.Position { return e.Pos }

// SyntaxError is a generic grammar-level parse failure: tokens were valid
// but arranged in a way the grammar doesn't accept.
type SyntaxError struct {
	Message string
	Pos     token.Position
	Source  string
}

func (e *SyntaxError) Error() string           { return formatWithCaret(e.Source, e.Pos, e.Message) }
func (e *SyntaxError) Position() token.Position { return e.Pos }

// UnexpectedTokenError is raised when the parser expected one token kind and
// found another.
type UnexpectedTokenError struct {
	Expected string
	Found    token.Token
	Pos      token.Position
	Source   string
}

func (e *UnexpectedTokenError) Error() string {
	return formatWithCaret(e.Source, e.Pos, fmt.Sprintf("expected %s, found %s", e.Expected, e.Found))
}
func (e *UnexpectedTokenError) Position() token.Position { return e.Pos }

// UnexpectedEOFError is raised when the parser runs out of input while still
// expecting more tokens.
type UnexpectedEOFError struct {
	Expected string
	Pos      token.Position
	Source   string
}

func (e *UnexpectedEOFError) Error() string {
	return formatWithCaret(e.Source, e.Pos, fmt.Sprintf("unexpected end of input, expected %s", e.Expected))
}
func (e *UnexpectedEOFError) Position() token.Position { return e.Pos }

// InvalidTokenError describes a token whose text is malformed in a way that
// fits no more specific kind. It is a type of its own, not a LexerError, and
// no code path in this package constructs it: lexical failures are reported
// as LexerError.
type InvalidTokenError struct {
	Message string
	Pos     token.Position
	Source  string
}

func (e *InvalidTokenError) Error() string           { return formatWithCaret(e.Source, e.Pos, e.Message) }
func (e *InvalidTokenError) Position() token.Position { return e.Pos }

// SemanticError is the kind for context-sensitive defects found without a
// symbol table. The parser performs no such checks, so no code path in this
// package constructs it.
type SemanticError struct {
	Message string
	Pos     token.Position
	Source  string
}

func (e *SemanticError) Error() string           { return formatWithCaret(e.Source, e.Pos, e.Message) }
func (e *SemanticError) Position() token.Position { return e.Pos }
