package parser

import (
	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// parseSelectStmt parses a full SELECT, including its compound terms (UNION
// [ALL] / INTERSECT / EXCEPT) and the outer ORDER BY / LIMIT that apply to
// the compound as a whole rather than to any one core.
func (p *Parser) parseSelectStmt() *ast.SelectStmt {
	start := p.cur.Span.Start
	stmt := ast.GetSelectStmt()
	stmt.Core = p.parseSelectCore()
	if stmt.Core == nil {
		return nil
	}

	for {
		op, ok := p.compoundOpOf()
		if !ok {
			break
		}
		p.advanceCompoundOp(op)
		core := p.parseSelectCore()
		if core == nil {
			break
		}
		stmt.Compound = append(stmt.Compound, ast.CompoundTerm{Op: op, Core: core})
	}

	if p.curIs(token.ORDER) {
		stmt.OrderBy = p.parseOrderBy()
	}
	if p.curIs(token.LIMIT) {
		stmt.Limit = p.parseLimit()
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) compoundOpOf() (ast.CompoundOp, bool) {
	switch p.cur.Type {
	case token.UNION:
		if p.peekIs(token.ALL) {
			return ast.CompoundUnionAll, true
		}
		return ast.CompoundUnion, true
	case token.INTERSECT:
		return ast.CompoundIntersect, true
	case token.EXCEPT:
		return ast.CompoundExcept, true
	default:
		return 0, false
	}
}

func (p *Parser) advanceCompoundOp(op ast.CompoundOp) {
	p.advance() // UNION/INTERSECT/EXCEPT
	if op == ast.CompoundUnionAll && p.curIs(token.ALL) {
		p.advance()
	}
}

// parseSelectCore parses one `SELECT [DISTINCT|ALL] columns [FROM ...]
// [WHERE ...] [GROUP BY ... [HAVING ...]] [WINDOW ...]` unit.
func (p *Parser) parseSelectCore() *ast.SelectCore {
	if !p.expect(token.SELECT) {
		return nil
	}
	start := p.cur.Span.Start
	core := ast.GetSelectCore()

	if p.curIs(token.DISTINCT) {
		core.Distinct = true
		p.advance()
	} else if p.curIs(token.ALL) {
		core.All = true
		p.advance()
	}

	core.Columns = p.parseResultColumns()

	if p.curIs(token.FROM) {
		p.advance()
		core.From = p.parseTableExprList()
	}
	if p.curIs(token.WHERE) {
		p.advance()
		core.Where = p.parseExpr()
	}
	if p.curIs(token.GROUP) {
		p.advance()
		p.expect(token.BY)
		core.GroupBy = p.parseExprList()
		if p.curIs(token.HAVING) {
			p.advance()
			core.Having = p.parseExpr()
		}
	}
	if p.curIs(token.WINDOW) {
		core.Windows = p.parseWindowDefs()
	}
	core.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return core
}

func (p *Parser) parseResultColumns() []ast.SelectExpr {
	var cols []ast.SelectExpr
	for {
		col := p.parseResultColumn()
		if col == nil {
			break
		}
		cols = append(cols, col)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return cols
}

func (p *Parser) parseResultColumn() ast.SelectExpr {
	if p.curIs(token.ASTERISK) {
		start := p.cur.Span.Start
		end := p.cur.Span.End
		p.advance()
		star := &ast.StarExpr{}
		star.Span = token.Span{Start: start, End: end}
		return star
	}

	start := p.cur.Span.Start
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if star, ok := expr.(*ast.StarExpr); ok {
		return star
	}

	ae := ast.GetAliasedExpr()
	ae.Expr = expr
	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			ae.Alias = p.curIdentValue()
			p.advance()
		} else {
			p.errUnexpected("alias after AS")
		}
	} else if p.curIsIdent() && !p.isClauseKeyword(p.cur.Type) {
		ae.Alias = p.curIdentValue()
		p.advance()
	}
	ae.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return ae
}

// isClauseKeyword reports whether t introduces a SELECT-level clause, so an
// unmarked trailing identifier after an expression is not mistaken for an
// alias.
func (p *Parser) isClauseKeyword(t token.Token) bool {
	switch t {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.WINDOW,
		token.ORDER, token.LIMIT, token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	default:
		return false
	}
}

// parseTableExprList parses the comma-and-JOIN-separated FROM-clause term
// list as a single left-associative fold: at each step, if the next token is
// JOIN, a join-keyword prefix (INNER/CROSS/LEFT/RIGHT/FULL/NATURAL), or a
// comma, consume one more right-hand term and fold it into a JoinExpr (comma
// is an implicit cross join at the same precedence as the explicit JOIN
// forms, not a separate outer loop).
func (p *Parser) parseTableExprList() ast.TableExpr {
	left := p.parseTablePrimary()
	for {
		join, ok := p.tryParseJoinOp()
		if !ok {
			break
		}
		right := p.parseTablePrimary()
		j := ast.GetJoinExpr()
		j.Left = left
		j.Right = right
		j.Type = join.typ
		j.Natural = join.natural
		j.Outer = join.outer
		if p.curIs(token.ON) {
			p.advance()
			j.On = p.parseExpr()
		} else if p.curIs(token.USING) {
			p.advance()
			j.Using = p.parseColumnNameList()
		}
		j.Span = token.Span{Start: left.Pos(), End: p.cur.Span.Start}
		left = j
	}
	return left
}

type joinOp struct {
	typ     ast.JoinType
	natural bool
	outer   bool
}

func (p *Parser) tryParseJoinOp() (joinOp, bool) {
	natural := false
	if p.curIs(token.NATURAL) {
		natural = true
		p.advance()
	}
	switch p.cur.Type {
	case token.COMMA:
		p.advance()
		return joinOp{typ: ast.JoinComma}, true
	case token.JOIN:
		p.advance()
		return joinOp{typ: ast.JoinInner, natural: natural}, true
	case token.INNER:
		p.advance()
		p.expect(token.JOIN)
		return joinOp{typ: ast.JoinInner, natural: natural}, true
	case token.CROSS:
		p.advance()
		p.expect(token.JOIN)
		return joinOp{typ: ast.JoinCross, natural: natural}, true
	case token.LEFT:
		p.advance()
		outer := false
		if p.curIs(token.OUTER) {
			outer = true
			p.advance()
		}
		p.expect(token.JOIN)
		return joinOp{typ: ast.JoinLeft, natural: natural, outer: outer}, true
	case token.RIGHT:
		p.advance()
		outer := false
		if p.curIs(token.OUTER) {
			outer = true
			p.advance()
		}
		p.expect(token.JOIN)
		return joinOp{typ: ast.JoinRight, natural: natural, outer: outer}, true
	case token.FULL:
		p.advance()
		outer := false
		if p.curIs(token.OUTER) {
			outer = true
			p.advance()
		}
		p.expect(token.JOIN)
		return joinOp{typ: ast.JoinFull, natural: natural, outer: outer}, true
	default:
		if natural {
			p.errUnexpected("JOIN")
		}
		return joinOp{}, false
	}
}

func (p *Parser) parseTablePrimary() ast.TableExpr {
	start := p.cur.Span.Start

	if p.curIs(token.LPAREN) {
		p.advance()
		if p.curIs(token.SELECT) || p.curIs(token.WITH) {
			sel := p.parseSelectOrWith()
			p.expect(token.RPAREN)
			sq := &ast.SubqueryTableExpr{Select: sel}
			sq.Span = token.Span{Start: start, End: p.cur.Span.Start}
			return p.wrapAliasedTable(sq, start)
		}
		inner := p.parseTableExprList()
		p.expect(token.RPAREN)
		pt := &ast.ParenTableExpr{Expr: inner}
		pt.Span = token.Span{Start: start, End: p.cur.Span.Start}
		return p.wrapAliasedTable(pt, start)
	}

	tn := p.parseTableName()
	if tn == nil {
		return nil
	}
	return p.wrapAliasedTable(tn, start)
}

// wrapAliasedTable parses an optional `[AS] alias [INDEXED BY name | NOT
// INDEXED]` suffix onto base.
func (p *Parser) wrapAliasedTable(base ast.TableExpr, start token.Position) ast.TableExpr {
	at := ast.GetAliasedTableExpr()
	at.Expr = base

	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			at.Alias = p.curIdentValue()
			p.advance()
		}
	} else if p.curIsIdent() && !p.isClauseKeyword(p.cur.Type) && !p.isJoinKeyword(p.cur.Type) {
		at.Alias = p.curIdentValue()
		p.advance()
	}

	if p.curIs(token.INDEXED) {
		p.advance()
		p.expect(token.BY)
		at.IndexHint = ast.IndexedBy
		if p.curIsIdent() {
			at.IndexName = p.curIdentValue()
			p.advance()
		}
	} else if p.curIs(token.NOT) && p.peekIs(token.INDEXED) {
		p.advance()
		p.advance()
		at.IndexHint = ast.NotIndexed
	}

	at.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return at
}

func (p *Parser) isJoinKeyword(t token.Token) bool {
	switch t {
	case token.JOIN, token.INNER, token.CROSS, token.LEFT, token.RIGHT, token.FULL,
		token.NATURAL, token.ON, token.USING:
		return true
	default:
		return false
	}
}

func (p *Parser) parseOrderBy() []*ast.OrderByExpr {
	p.advance() // ORDER
	p.expect(token.BY)
	var terms []*ast.OrderByExpr
	for {
		start := p.cur.Span.Start
		expr := p.parseExpr()
		if expr == nil {
			break
		}
		ob := ast.GetOrderByExpr()
		ob.Expr = expr
		if p.curIs(token.COLLATE) {
			p.advance()
			if p.curIsIdent() {
				ob.Collation = p.curIdentValue()
				p.advance()
			}
		}
		if p.curIs(token.ASC) {
			p.advance()
		} else if p.curIs(token.DESC) {
			ob.Desc = true
			p.advance()
		}
		if p.curIs(token.NULLS) {
			p.advance()
			first := true
			if p.curIs(token.FIRST) {
				p.advance()
			} else if p.curIs(token.LAST) {
				first = false
				p.advance()
			}
			ob.NullsFirst = &first
		}
		ob.Span = token.Span{Start: start, End: p.cur.Span.Start}
		terms = append(terms, ob)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return terms
}

// parseLimit parses `LIMIT count [OFFSET offset]`, and also SQLite's
// MySQL-style comma form `LIMIT offset, count` (the first number before the
// comma is the offset, not the count).
func (p *Parser) parseLimit() *ast.Limit {
	start := p.cur.Span.Start
	p.advance() // LIMIT
	lim := &ast.Limit{}
	first := p.parseExprPrec(precOr)

	if p.curIs(token.COMMA) {
		p.advance()
		second := p.parseExprPrec(precOr)
		lim.Offset = first
		lim.Count = second
	} else if p.curIs(token.OFFSET) {
		p.advance()
		lim.Count = first
		lim.Offset = p.parseExprPrec(precOr)
	} else {
		lim.Count = first
	}
	lim.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return lim
}

func (p *Parser) parseWindowDefs() []*ast.WindowDef {
	p.advance() // WINDOW
	var defs []*ast.WindowDef
	for {
		if !p.curIsIdent() {
			break
		}
		name := p.curIdentValue()
		p.advance()
		if !p.expect(token.AS) {
			break
		}
		spec := p.parseWindowSpec()
		defs = append(defs, &ast.WindowDef{Name: name, Spec: spec})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return defs
}

// parseValuesAsSelect treats a bare `VALUES (...), (...)` statement as a
// SelectStmt whose compound terms are all row constructors, matching
// SQLite's rule that VALUES is usable anywhere a SELECT is.
func (p *Parser) parseValuesAsSelect() ast.Statement {
	start := p.cur.Span.Start
	stmt := ast.GetSelectStmt()
	stmt.Core = p.parseValuesCore()
	for p.curIs(token.COMMA) {
		p.advance()
		core := p.parseValuesCore()
		if core == nil {
			break
		}
		stmt.Compound = append(stmt.Compound, ast.CompoundTerm{Op: ast.CompoundUnionAll, Core: core})
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseValuesCore wraps one `VALUES (a, b, ...)` row as a single-row
// SelectCore whose Columns are the row's expressions, so VALUES rows can
// flow through the same compound machinery as SELECT cores.
func (p *Parser) parseValuesCore() *ast.SelectCore {
	if p.curIs(token.VALUES) {
		p.advance()
	}
	start := p.cur.Span.Start
	if !p.expect(token.LPAREN) {
		return nil
	}
	core := ast.GetSelectCore()
	for _, e := range p.parseExprList() {
		ae := ast.GetAliasedExpr()
		ae.Expr = e
		core.Columns = append(core.Columns, ae)
	}
	p.expect(token.RPAREN)
	core.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return core
}
