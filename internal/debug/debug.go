// Package debug renders tokens and AST nodes for manual inspection. It is an
// external collaborator of the parser core, not part of the parse path
// itself: nothing under ast/, lexer/, parser/, or token/ imports it.
package debug

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/kr/pretty"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// DumpAST writes a field-by-field rendering of node to w, the way the
// original Python implementation's print_ast walked an AST's __dict__. The
// whole value is printed by kr/pretty, so the embedded source span is shown
// along with the other fields.
func DumpAST(w io.Writer, node ast.Node) error {
	if node == nil {
		_, err := fmt.Fprintln(w, "<nil>")
		return errors.Trace(err)
	}
	if _, err := pretty.Fprintf(w, "%# v\n", node); err != nil {
		return errors.Annotate(err, "debug: writing AST dump")
	}
	return nil
}

// SprintAST is DumpAST's string-returning counterpart, handy from a
// debugger or a test failure message.
func SprintAST(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	return pretty.Sprint(node)
}

// TokenRow is one entry of a token-stream table, as rendered by DumpTokens.
type TokenRow struct {
	Index int
	Item  token.Item
}

// DumpTokens writes an indexed, tabular rendering of a token stream to w,
// optionally marking the token at highlightIndex with a ">>>" prefix so a
// specific position stands out - the Go equivalent of the original
// implementation's highlight_pos argument to print_tokens.
func DumpTokens(w io.Writer, items []token.Item, highlightIndex int) error {
	for i, it := range items {
		marker := "   "
		if i == highlightIndex {
			marker = ">>>"
		}
		_, err := fmt.Fprintf(w, "%s %4d  %-14s %-20q  %s\n", marker, i, it.Type, it.Value, it.Span.Start)
		if err != nil {
			return errors.Annotate(err, "debug: writing token dump")
		}
	}
	return nil
}

// ScanAll runs l to completion and returns every token it produced,
// including a trailing EOF item, for use with DumpTokens. It stops at the
// first lexical error and returns it wrapped with errors.Trace so the
// caller's error chain shows where the scan failed.
func ScanAll(l interface{ Next() (token.Item, error) }) ([]token.Item, error) {
	var items []token.Item
	for {
		it, err := l.Next()
		if err != nil {
			return items, errors.Trace(err)
		}
		items = append(items, it)
		if it.Type == token.EOF {
			return items, nil
		}
	}
}
