package parser

import (
	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

func (p *Parser) conflictActionOf() (ast.ConflictAction, bool) {
	switch p.cur.Type {
	case token.ROLLBACK:
		return ast.ConflictRollback, true
	case token.ABORT:
		return ast.ConflictAbort, true
	case token.FAIL:
		return ast.ConflictFail, true
	case token.IGNORE:
		return ast.ConflictIgnore, true
	case token.REPLACE:
		return ast.ConflictReplace, true
	default:
		return ast.ConflictNone, false
	}
}

// parseInsert parses INSERT and REPLACE, which share SQLite's grammar apart
// from REPLACE implying an unconditional OR REPLACE conflict policy.
func (p *Parser) parseInsert(with *ast.WithClause) ast.Statement {
	start := p.cur.Span.Start
	stmt := &ast.InsertStmt{With: with}

	if p.curIs(token.REPLACE) {
		stmt.IsReplace = true
		stmt.Conflict = ast.ConflictReplace
		p.advance()
	} else {
		p.expect(token.INSERT)
		if p.curIs(token.OR) {
			p.advance()
			if action, ok := p.conflictActionOf(); ok {
				stmt.Conflict = action
				p.advance()
			} else {
				p.errUnexpected("conflict action")
			}
		}
	}

	if !p.expect(token.INTO) {
		return nil
	}
	stmt.Table = p.parseTableName()

	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			stmt.Alias = p.curIdentValue()
			p.advance()
		}
	} else if p.curIsIdent() && !p.isInsertClauseKeyword(p.cur.Type) {
		stmt.Alias = p.curIdentValue()
		p.advance()
	}

	if p.curIs(token.LPAREN) {
		stmt.Columns = p.parseColumnNameList()
	}

	switch {
	case p.curIs(token.DEFAULT):
		p.advance()
		p.expect(token.VALUES)
		stmt.DefaultVals = true
	case p.curIs(token.VALUES):
		p.advance()
		stmt.Values = p.parseValuesRows()
	case p.curIs(token.SELECT) || p.curIs(token.WITH):
		stmt.Select = p.parseSelectOrWith()
	default:
		p.errUnexpected("VALUES, SELECT, or DEFAULT VALUES")
	}

	for p.curIs(token.ON) && p.peekIs(token.CONFLICT) {
		stmt.OnConflict = append(stmt.OnConflict, p.parseOnConflictClause())
	}

	if p.curIs(token.RETURNING) {
		p.advance()
		stmt.Returning = p.parseResultColumns()
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) isInsertClauseKeyword(t token.Token) bool {
	switch t {
	case token.LPAREN, token.VALUES, token.SELECT, token.WITH, token.DEFAULT, token.ON, token.RETURNING:
		return true
	default:
		return false
	}
}

func (p *Parser) parseValuesRows() [][]ast.Expr {
	var rows [][]ast.Expr
	for {
		if !p.expect(token.LPAREN) {
			break
		}
		rows = append(rows, p.parseExprList())
		if !p.expect(token.RPAREN) {
			break
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return rows
}

// parseOnConflictClause parses one `ON CONFLICT [(indexed-column...)] [WHERE
// expr] DO (NOTHING | UPDATE SET ... [WHERE expr])` link. SQLite permits
// chaining several of these after one INSERT.
func (p *Parser) parseOnConflictClause() *ast.OnConflictClause {
	p.advance() // ON
	p.advance() // CONFLICT
	oc := &ast.OnConflictClause{}

	if p.curIs(token.LPAREN) {
		p.advance()
		for {
			oc.Target = append(oc.Target, p.parseIndexedColumn())
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
		p.expect(token.RPAREN)
	}
	if p.curIs(token.WHERE) {
		p.advance()
		oc.TargetWhere = p.parseExpr()
	}

	if !p.expect(token.DO) {
		return oc
	}
	do := &ast.DoClause{}
	if p.curIs(token.NOTHING) {
		p.advance()
		do.Nothing = true
	} else if p.curIs(token.UPDATE) {
		p.advance()
		p.expect(token.SET)
		do.Sets = p.parseUpdateSets()
		if p.curIs(token.WHERE) {
			p.advance()
			do.Where = p.parseExpr()
		}
	}
	oc.Do = do
	return oc
}

func (p *Parser) parseIndexedColumn() *ast.IndexedColumn {
	start := p.cur.Span.Start
	ic := &ast.IndexedColumn{}
	if p.curIs(token.LPAREN) {
		p.advance()
		ic.Expr = p.parseExpr()
		p.expect(token.RPAREN)
	} else if p.curIsIdent() {
		ic.Name = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.COLLATE) {
		p.advance()
		if p.curIsIdent() {
			ic.Collation = p.curIdentValue()
			p.advance()
		}
	}
	if p.curIs(token.ASC) {
		p.advance()
	} else if p.curIs(token.DESC) {
		ic.Desc = true
		p.advance()
	}
	ic.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return ic
}

func (p *Parser) parseUpdateSets() []*ast.UpdateSet {
	var sets []*ast.UpdateSet
	for {
		if !p.curIsIdent() {
			p.errUnexpected("column name")
			break
		}
		col := p.curIdentValue()
		p.advance()
		if !p.expect(token.EQ) {
			break
		}
		sets = append(sets, &ast.UpdateSet{Column: col, Value: p.parseExpr()})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return sets
}

// parseUpdate parses `UPDATE [OR conflict] table ... SET ... [FROM ...]
// [WHERE ...] [ORDER BY ...] [LIMIT ...] [RETURNING ...]`.
func (p *Parser) parseUpdate(with *ast.WithClause) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // UPDATE
	stmt := &ast.UpdateStmt{With: with}

	if p.curIs(token.OR) {
		p.advance()
		if action, ok := p.conflictActionOf(); ok {
			stmt.Conflict = action
			p.advance()
		} else {
			p.errUnexpected("conflict action")
		}
	}

	stmt.Table = p.parseTableName()

	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			stmt.Alias = p.curIdentValue()
			p.advance()
		}
	} else if p.curIsIdent() && !p.curIs(token.SET) {
		stmt.Alias = p.curIdentValue()
		p.advance()
	}

	if p.curIs(token.INDEXED) {
		p.advance()
		p.expect(token.BY)
		stmt.IndexHint = ast.IndexedBy
		if p.curIsIdent() {
			stmt.IndexName = p.curIdentValue()
			p.advance()
		}
	} else if p.curIs(token.NOT) && p.peekIs(token.INDEXED) {
		p.advance()
		p.advance()
		stmt.IndexHint = ast.NotIndexed
	}

	if !p.expect(token.SET) {
		return nil
	}
	stmt.Set = p.parseUpdateSets()

	if p.curIs(token.FROM) {
		p.advance()
		stmt.From = p.parseTableExprList()
	}
	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
	}
	if p.curIs(token.ORDER) {
		stmt.OrderBy = p.parseOrderBy()
	}
	if p.curIs(token.LIMIT) {
		stmt.Limit = p.parseLimit()
	}
	if p.curIs(token.RETURNING) {
		p.advance()
		stmt.Returning = p.parseResultColumns()
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseDelete parses `DELETE FROM table ... [WHERE ...] [ORDER BY ...]
// [LIMIT ...] [RETURNING ...]`.
func (p *Parser) parseDelete(with *ast.WithClause) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // DELETE
	if !p.expect(token.FROM) {
		return nil
	}
	stmt := &ast.DeleteStmt{With: with}
	stmt.Table = p.parseTableName()

	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			stmt.Alias = p.curIdentValue()
			p.advance()
		}
	} else if p.curIsIdent() && !p.isDeleteClauseKeyword(p.cur.Type) {
		stmt.Alias = p.curIdentValue()
		p.advance()
	}

	if p.curIs(token.INDEXED) {
		p.advance()
		p.expect(token.BY)
		stmt.IndexHint = ast.IndexedBy
		if p.curIsIdent() {
			stmt.IndexName = p.curIdentValue()
			p.advance()
		}
	} else if p.curIs(token.NOT) && p.peekIs(token.INDEXED) {
		p.advance()
		p.advance()
		stmt.IndexHint = ast.NotIndexed
	}

	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
	}
	if p.curIs(token.ORDER) {
		stmt.OrderBy = p.parseOrderBy()
	}
	if p.curIs(token.LIMIT) {
		stmt.Limit = p.parseLimit()
	}
	if p.curIs(token.RETURNING) {
		p.advance()
		stmt.Returning = p.parseResultColumns()
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) isDeleteClauseKeyword(t token.Token) bool {
	switch t {
	case token.WHERE, token.ORDER, token.LIMIT, token.RETURNING, token.INDEXED, token.NOT:
		return true
	default:
		return false
	}
}
