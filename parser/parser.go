// Package parser implements a recursive-descent, precedence-climbing parser
// for SQLite's SQL dialect, producing the AST defined in package ast.
package parser

import (
	"fmt"
	"sync"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/lexer"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// maxRecursionDepth bounds expression and statement nesting so a pathological
// or adversarial input fails with a SyntaxError instead of overflowing the
// goroutine stack.
const maxRecursionDepth = 1024

// Parser is a recursive-descent SQLite SQL parser. It accumulates every
// error it encounters (via panic-mode recovery at statement boundaries)
// rather than stopping at the first one.
type Parser struct {
	lex    *lexer.Lexer
	src    string
	cur    token.Item
	errors []ParseError
	depth  int
}

// New creates a parser for the given input.
func New(input string) *Parser {
	p := &Parser{lex: lexer.New(input), src: input}
	p.advance()
	return p
}

var parserPool = sync.Pool{
	New: func() any { return &Parser{} },
}

// Get returns a pooled Parser reset over input. Call Put when done.
func Get(input string) *Parser {
	p := parserPool.Get().(*Parser)
	p.lex = lexer.Get(input)
	p.src = input
	p.errors = p.errors[:0]
	p.cur = token.Item{}
	p.depth = 0
	p.advance()
	return p
}

// Put returns p and its lexer to their pools. p must not be used afterward.
func Put(p *Parser) {
	if p.lex != nil {
		lexer.Put(p.lex)
		p.lex = nil
	}
	parserPool.Put(p)
}

// Errors returns every error accumulated by the most recent Parse/ParseAll call.
func (p *Parser) Errors() []ParseError { return p.errors }

// Parse parses a single statement and requires the remaining input (besides
// trailing semicolons) to be empty. It returns every error it accumulated,
// not just the first.
func (p *Parser) Parse() (ast.Statement, []ParseError) {
	if p.curIs(token.EOF) {
		return nil, p.errors
	}
	stmt := p.parseStatement()
	p.skipSemicolons()
	if !p.curIs(token.EOF) {
		p.errUnexpected("end of statement")
	}
	return stmt, p.errors
}

// ParseAll parses every statement up to EOF, recovering from errors at
// statement boundaries (panic-mode recovery) so one bad statement doesn't
// prevent later ones from being reported.
func (p *Parser) ParseAll() ([]ast.Statement, []ParseError) {
	var stmts []ast.Statement
	for !p.curIs(token.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.errors) > before {
			p.recoverToStatementBoundary()
		}
		p.skipSemicolons()
	}
	return stmts, p.errors
}

// recoverToStatementBoundary discards tokens until a semicolon, EOF, or the
// start of a new statement, so a malformed statement doesn't cascade into
// spurious errors for the rest of the input and a missing semicolon between
// two statements doesn't swallow the second one into recovery.
func (p *Parser) recoverToStatementBoundary() {
	for !p.curIs(token.SEMICOLON) && !p.curIs(token.EOF) && !isStatementStart(p.cur.Type) {
		p.advance()
	}
}

// isStatementStart reports whether t begins a new statement, i.e. it's one
// of the tokens parseStatement's dispatch switch matches on.
func isStatementStart(t token.Token) bool {
	switch t {
	case token.SELECT, token.WITH, token.VALUES,
		token.INSERT, token.REPLACE, token.UPDATE, token.DELETE,
		token.CREATE, token.ALTER, token.DROP,
		token.BEGIN, token.COMMIT, token.ROLLBACK, token.SAVEPOINT, token.RELEASE,
		token.ATTACH, token.DETACH, token.ANALYZE, token.VACUUM, token.REINDEX,
		token.EXPLAIN, token.PRAGMA:
		return true
	}
	return false
}

func (p *Parser) skipSemicolons() {
	for p.curIs(token.SEMICOLON) {
		p.advance()
	}
}

// --- token navigation ---

func (p *Parser) advance() {
	it, err := p.lex.Next()
	if err != nil {
		p.errors = append(p.errors, toLexerError(err, p.src))
		p.cur = token.Item{Type: token.EOF}
		return
	}
	p.cur = it
}

func toLexerError(err error, src string) ParseError {
	if le, ok := err.(*lexer.Error); ok {
		return &LexerError{Message: le.Message, Pos: le.Pos, Source: src}
	}
	return &LexerError{Message: err.Error(), Source: src}
}

func (p *Parser) curIs(t token.Token) bool { return p.cur.Type == t }

func (p *Parser) curIsIdent() bool { return p.cur.Type == token.IDENT || p.cur.Type.IsKeyword() }

func (p *Parser) curIdentValue() string { return p.cur.Value }

func (p *Parser) peek() token.Item {
	it, err := p.lex.Peek()
	if err != nil {
		return token.Item{Type: token.EOF}
	}
	return it
}

func (p *Parser) peekIs(t token.Token) bool { return p.peek().Type == t }

func (p *Parser) expect(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errUnexpectedWant(t.String())
	return false
}

func (p *Parser) errUnexpected(expected string) {
	if p.curIs(token.EOF) {
		p.errors = append(p.errors, &UnexpectedEOFError{Expected: expected, Pos: p.cur.Span.Start, Source: p.src})
		return
	}
	p.errors = append(p.errors, &UnexpectedTokenError{Expected: expected, Found: p.cur.Type, Pos: p.cur.Span.Start, Source: p.src})
}

func (p *Parser) errUnexpectedWant(expected string) {
	p.errUnexpected(expected)
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: p.cur.Span.Start, Source: p.src})
}

func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > maxRecursionDepth {
		p.errorf("expression or statement nesting exceeds maximum depth of %d", maxRecursionDepth)
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }

// --- statement dispatch ---

func (p *Parser) parseStatement() ast.Statement {
	if !p.enterDepth() {
		p.leaveDepth()
		return nil
	}
	defer p.leaveDepth()

	switch p.cur.Type {
	case token.SELECT:
		return p.parseSelectStmt()
	case token.WITH:
		return p.parseWithStatement()
	case token.VALUES:
		return p.parseValuesAsSelect()
	case token.INSERT, token.REPLACE:
		return p.parseInsert(nil)
	case token.UPDATE:
		return p.parseUpdate(nil)
	case token.DELETE:
		return p.parseDelete(nil)
	case token.CREATE:
		return p.parseCreate()
	case token.ALTER:
		return p.parseAlter()
	case token.DROP:
		return p.parseDrop()
	case token.BEGIN, token.COMMIT, token.ROLLBACK, token.SAVEPOINT, token.RELEASE:
		return p.parseTransaction()
	case token.ATTACH:
		return p.parseAttach()
	case token.DETACH:
		return p.parseDetach()
	case token.ANALYZE:
		return p.parseAnalyze()
	case token.VACUUM:
		return p.parseVacuum()
	case token.REINDEX:
		return p.parseReindex()
	case token.EXPLAIN:
		return p.parseExplain()
	case token.PRAGMA:
		return p.parsePragma()
	default:
		p.errorf("unexpected token %s at start of statement", p.cur.Type)
		p.advance()
		return nil
	}
}

func (p *Parser) parseWithStatement() ast.Statement {
	with := p.parseWithClause()
	switch p.cur.Type {
	case token.SELECT:
		return p.parseInsertUpdateDeleteWith(with)
	case token.INSERT, token.REPLACE:
		return p.parseInsert(with)
	case token.UPDATE:
		return p.parseUpdate(with)
	case token.DELETE:
		return p.parseDelete(with)
	default:
		p.errUnexpected("SELECT, INSERT, UPDATE, or DELETE")
		return nil
	}
}

func (p *Parser) parseInsertUpdateDeleteWith(with *ast.WithClause) ast.Statement {
	stmt := p.parseSelectStmt()
	if stmt != nil {
		stmt.With = with
	}
	return stmt
}

func (p *Parser) parseWithClause() *ast.WithClause {
	start := p.cur.Span.Start
	p.advance() // WITH

	with := &ast.WithClause{}
	if p.curIs(token.RECURSIVE) {
		with.Recursive = true
		p.advance()
	}

	for {
		cte := p.parseCTE()
		if cte != nil {
			with.CTEs = append(with.CTEs, cte)
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	with.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return with
}

func (p *Parser) parseCTE() *ast.CTE {
	if !p.curIsIdent() {
		p.errUnexpected("CTE name")
		return nil
	}
	start := p.cur.Span.Start
	cte := &ast.CTE{Name: p.curIdentValue()}
	p.advance()

	if p.curIs(token.LPAREN) {
		cte.Columns = p.parseColumnNameList()
	}

	if !p.expect(token.AS) {
		return nil
	}
	if p.curIs(token.MATERIALIZED) {
		p.advance()
	} else if p.curIs(token.NOT) && p.peekIs(token.MATERIALIZED) {
		p.advance()
		p.advance()
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	cte.Select = p.parseSelectStmt()
	if !p.expect(token.RPAREN) {
		return nil
	}
	cte.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return cte
}

func (p *Parser) parseColumnNameList() []string {
	p.advance() // (
	var names []string
	for {
		if !p.curIsIdent() {
			break
		}
		names = append(names, p.curIdentValue())
		p.advance()
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return names
}

func (p *Parser) parseTableName() *ast.TableName {
	if !p.curIsIdent() {
		p.errUnexpected("table name")
		return nil
	}
	start := p.cur.Span.Start
	first := p.curIdentValue()
	p.advance()

	tn := ast.GetTableName()
	if p.curIs(token.DOT) {
		p.advance()
		if !p.curIsIdent() {
			p.errUnexpected("identifier after '.'")
			return nil
		}
		tn.Schema = first
		tn.Table = p.curIdentValue()
		p.advance()
	} else {
		tn.Table = first
	}
	tn.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return tn
}
