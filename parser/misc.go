package parser

import (
	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// parseTransaction parses BEGIN, COMMIT, ROLLBACK [TO [SAVEPOINT] name],
// SAVEPOINT name, and RELEASE [SAVEPOINT] name. The END spelling of COMMIT
// is not accepted as a statement start.
func (p *Parser) parseTransaction() ast.Statement {
	start := p.cur.Span.Start
	stmt := &ast.TransactionStmt{}

	switch p.cur.Type {
	case token.BEGIN:
		p.advance()
		stmt.Kind = ast.TxBegin
		switch p.cur.Type {
		case token.DEFERRED:
			stmt.Behavior = ast.TxDeferred
			p.advance()
		case token.IMMEDIATE:
			stmt.Behavior = ast.TxImmediate
			p.advance()
		case token.EXCLUSIVE:
			stmt.Behavior = ast.TxExclusive
			p.advance()
		}
		if p.curIs(token.TRANSACTION) {
			p.advance()
		}
	case token.COMMIT:
		p.advance()
		stmt.Kind = ast.TxCommit
		if p.curIs(token.TRANSACTION) {
			p.advance()
		}
	case token.ROLLBACK:
		p.advance()
		stmt.Kind = ast.TxRollback
		if p.curIs(token.TRANSACTION) {
			p.advance()
		}
		if p.curIs(token.TO) {
			p.advance()
			if p.curIs(token.SAVEPOINT) {
				p.advance()
			}
			if p.curIsIdent() {
				stmt.SavepointName = p.curIdentValue()
				p.advance()
			}
		}
	case token.SAVEPOINT:
		p.advance()
		stmt.Kind = ast.TxSavepoint
		if p.curIsIdent() {
			stmt.SavepointName = p.curIdentValue()
			p.advance()
		}
	case token.RELEASE:
		p.advance()
		stmt.Kind = ast.TxRelease
		if p.curIs(token.SAVEPOINT) {
			p.advance()
		}
		if p.curIsIdent() {
			stmt.SavepointName = p.curIdentValue()
			p.advance()
		}
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseAttach parses `ATTACH [DATABASE] expr AS name`.
func (p *Parser) parseAttach() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // ATTACH
	if p.curIs(token.DATABASE) {
		p.advance()
	}
	stmt := &ast.AttachStmt{}
	stmt.Expr = p.parseExpr()
	if !p.expect(token.AS) {
		return nil
	}
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseDetach parses `DETACH [DATABASE] name`.
func (p *Parser) parseDetach() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // DETACH
	if p.curIs(token.DATABASE) {
		p.advance()
	}
	stmt := &ast.DetachStmt{}
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseAnalyze parses `ANALYZE [schema-name | index-or-table-name]`.
func (p *Parser) parseAnalyze() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // ANALYZE
	stmt := &ast.AnalyzeStmt{}
	if p.curIsIdent() {
		name := p.curIdentValue()
		p.advance()
		if p.curIs(token.DOT) {
			p.advance()
			if p.curIsIdent() {
				name = name + "." + p.curIdentValue()
				p.advance()
			}
		}
		stmt.Target = name
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseVacuum parses `VACUUM [schema-name] [INTO filename]`.
func (p *Parser) parseVacuum() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // VACUUM
	stmt := &ast.VacuumStmt{}
	if p.curIsIdent() && !p.curIs(token.INTO) {
		stmt.Schema = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.INTO) {
		p.advance()
		if p.curIs(token.STRING) {
			stmt.Into = p.cur.Value
			p.advance()
		}
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseReindex parses `REINDEX [collation-or-table-or-index-name]`.
func (p *Parser) parseReindex() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // REINDEX
	stmt := &ast.ReindexStmt{}
	if p.curIsIdent() {
		name := p.curIdentValue()
		p.advance()
		if p.curIs(token.DOT) {
			p.advance()
			if p.curIsIdent() {
				name = name + "." + p.curIdentValue()
				p.advance()
			}
		}
		stmt.Target = name
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseExplain parses `EXPLAIN [QUERY PLAN] stmt`.
func (p *Parser) parseExplain() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // EXPLAIN
	stmt := &ast.ExplainStmt{}
	if p.curIs(token.QUERY) {
		p.advance()
		p.expect(token.PLAN)
		stmt.QueryPlan = true
	}
	stmt.Stmt = p.parseStatement()
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parsePragma parses `PRAGMA [schema.]name [= value | (value)]`.
func (p *Parser) parsePragma() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // PRAGMA
	stmt := &ast.PragmaStmt{}

	if !p.curIsIdent() {
		p.errUnexpected("pragma name")
		return nil
	}
	first := p.curIdentValue()
	p.advance()
	if p.curIs(token.DOT) {
		p.advance()
		stmt.Schema = first
		if p.curIsIdent() {
			stmt.Name = p.curIdentValue()
			p.advance()
		}
	} else {
		stmt.Name = first
	}

	switch {
	case p.curIs(token.EQ):
		p.advance()
		stmt.HasValue = true
		p.parsePragmaValue(stmt)
	case p.curIs(token.LPAREN):
		p.advance()
		stmt.HasValue = true
		p.parsePragmaValue(stmt)
		p.expect(token.RPAREN)
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) parsePragmaValue(stmt *ast.PragmaStmt) {
	switch p.cur.Type {
	case token.IDENT, token.INT, token.FLOAT, token.STRING:
		stmt.Value = p.cur.Value
		p.advance()
	case token.MINUS:
		stmt.Expr = p.parseExprPrec(precUnary)
	default:
		if p.cur.Type.IsKeyword() {
			stmt.Value = p.cur.Type.String()
			p.advance()
			return
		}
		stmt.Expr = p.parseExpr()
	}
}
