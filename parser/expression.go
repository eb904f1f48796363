package parser

import (
	"strconv"
	"strings"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// Operator precedence levels, low to high: OR, AND, NOT (prefix), comparison
// (including BETWEEN/IN/LIKE-family/IS/GLOB/MATCH/REGEXP), bitwise,
// additive, multiplicative. Unary +/-/NOT/~ bind tighter than any binary
// operator and are parsed directly by parsePrimaryExpr.
const (
	precLowest      = 0
	precOr          = 1
	precAnd         = 2
	precNot         = 3
	precComparison  = 4
	precBitwise     = 5
	precAdditive    = 6
	precMultiplicative = 7
	precUnary       = 8
)

func precedenceOf(t token.Token) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.EQ2, token.NEQ, token.NEQ2, token.LT, token.GT, token.LTE, token.GTE:
		return precComparison
	case token.LSHIFT, token.RSHIFT, token.BITAND, token.BITOR:
		return precBitwise
	case token.PLUS, token.MINUS, token.CONCAT, token.ARROW, token.DARROW:
		return precAdditive
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return precMultiplicative
	default:
		return precLowest
	}
}

func binaryOpFor(t token.Token) (ast.BinaryOp, bool) {
	switch t {
	case token.PLUS:
		return ast.OpAdd, true
	case token.MINUS:
		return ast.OpSub, true
	case token.ASTERISK:
		return ast.OpMul, true
	case token.SLASH:
		return ast.OpDiv, true
	case token.PERCENT:
		return ast.OpMod, true
	case token.CONCAT:
		return ast.OpConcat, true
	case token.EQ, token.EQ2:
		return ast.OpEq, true
	case token.NEQ, token.NEQ2:
		return ast.OpNeq, true
	case token.LT:
		return ast.OpLt, true
	case token.GT:
		return ast.OpGt, true
	case token.LTE:
		return ast.OpLte, true
	case token.GTE:
		return ast.OpGte, true
	case token.AND:
		return ast.OpAnd, true
	case token.OR:
		return ast.OpOr, true
	case token.BITAND:
		return ast.OpBitAnd, true
	case token.BITOR:
		return ast.OpBitOr, true
	case token.LSHIFT:
		return ast.OpLShift, true
	case token.RSHIFT:
		return ast.OpRShift, true
	case token.ARROW:
		return ast.OpJSONArrow, true
	case token.DARROW:
		return ast.OpJSONArrow2, true
	default:
		return 0, false
	}
}

func isNilExpr(e ast.Expr) bool { return e == nil }

// parseExpr parses a full expression at the lowest precedence.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrec(precLowest)
}

// parseExprPrec implements precedence-climbing binary-operator parsing,
// intercepting the SQLite special forms (BETWEEN, IN, LIKE-family, IS,
// COLLATE, and their NOT-prefixed variants) before falling through to the
// generic binary-operator loop.
func (p *Parser) parseExprPrec(minPrec int) ast.Expr {
	if !p.enterDepth() {
		p.leaveDepth()
		return nil
	}
	defer p.leaveDepth()

	left := p.parsePrimaryExpr()
	if isNilExpr(left) {
		return nil
	}

	for {
		if minPrec <= precComparison {
			if p.curIs(token.IS) {
				left = p.parseIsExpr(left)
				if isNilExpr(left) {
					return nil
				}
				continue
			}
			if p.curIs(token.IN) {
				left = p.parseInExpr(left, false)
				if isNilExpr(left) {
					return nil
				}
				continue
			}
			if p.curIs(token.ISNULL) {
				left = p.wrapIsNull(left, false)
				continue
			}
			if p.curIs(token.NOTNULL) {
				left = p.wrapIsNull(left, true)
				continue
			}
			if p.curIs(token.BETWEEN) {
				left = p.parseBetweenExpr(left, false)
				if isNilExpr(left) {
					return nil
				}
				continue
			}
			if like, ok := p.likeKindOf(p.cur.Type); ok {
				left = p.parseLikeExpr(left, like, false)
				if isNilExpr(left) {
					return nil
				}
				continue
			}
			if p.curIs(token.NOT) {
				switch p.peek().Type {
				case token.IN:
					p.advance()
					left = p.parseInExpr(left, true)
					if isNilExpr(left) {
						return nil
					}
					continue
				case token.BETWEEN:
					p.advance()
					left = p.parseBetweenExpr(left, true)
					if isNilExpr(left) {
						return nil
					}
					continue
				}
				if like, ok := p.likeKindOf(p.peek().Type); ok {
					p.advance()
					left = p.parseLikeExpr(left, like, true)
					if isNilExpr(left) {
						return nil
					}
					continue
				}
			}
		}
		if p.curIs(token.COLLATE) {
			left = p.parseCollateExpr(left)
			continue
		}

		op := p.cur.Type
		prec := precedenceOf(op)
		if prec < minPrec || prec == precLowest {
			break
		}
		binOp, ok := binaryOpFor(op)
		if !ok {
			break
		}
		start := left.Pos()
		p.advance()
		right := p.parseExprPrec(prec + 1)
		if isNilExpr(right) {
			return nil
		}

		bin := ast.GetBinaryExpr()
		bin.Span = token.Span{Start: start, End: p.cur.Span.Start}
		bin.Op = binOp
		bin.Left = left
		bin.Right = right
		left = bin
	}

	return left
}

func (p *Parser) likeKindOf(t token.Token) (ast.LikeKind, bool) {
	switch t {
	case token.LIKE:
		return ast.LikeLike, true
	case token.GLOB:
		return ast.LikeGlob, true
	case token.MATCH:
		return ast.LikeMatch, true
	case token.REGEXP:
		return ast.LikeRegexp, true
	default:
		return 0, false
	}
}

// wrapIsNull desugars ISNULL/NOTNULL into the equivalent IS [NOT] NULL binary form.
func (p *Parser) wrapIsNull(left ast.Expr, negated bool) ast.Expr {
	start := left.Pos()
	p.advance()
	op := ast.OpIs
	if negated {
		op = ast.OpIsNot
	}
	null := &ast.NullLiteral{}
	null.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.Start}

	bin := ast.GetBinaryExpr()
	bin.Span = token.Span{Start: start, End: p.cur.Span.Start}
	bin.Op = op
	bin.Left = left
	bin.Right = null
	return bin
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.cur.Type {
	case token.INT, token.FLOAT:
		return p.parseNumericLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.BLOB:
		return p.parseBlobLiteral()
	case token.NULL:
		n := &ast.NullLiteral{}
		n.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.End}
		p.advance()
		return n
	case token.TRUE, token.FALSE:
		return p.parseBoolLiteral()
	case token.CURRENT_DATE, token.CURRENT_TIME, token.CURRENT_TIMESTAMP:
		return p.parseCurrentTime()
	case token.IDENT:
		return p.parseIdentOrFuncOrQualified()
	case token.PARAM:
		return p.parseParam()
	case token.LPAREN:
		return p.parseParenOrSubquery()
	case token.NOT:
		return p.parseNotExpr()
	case token.MINUS:
		return p.parseUnary(ast.OpNeg)
	case token.PLUS:
		return p.parseUnary(ast.OpPos)
	case token.BITNOT:
		return p.parseUnary(ast.OpBitNot)
	case token.EXISTS:
		return p.parseExistsExpr()
	case token.CASE:
		return p.parseCaseExpr()
	case token.CAST:
		return p.parseCastExpr()
	case token.RAISE:
		return p.parseRaiseExpr()
	case token.ASTERISK:
		star := &ast.StarExpr{}
		star.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.End}
		p.advance()
		return star
	default:
		if p.cur.Type.IsKeyword() {
			return p.parseIdentOrFuncOrQualified()
		}
		p.errUnexpected("expression")
		return nil
	}
}

func (p *Parser) parseNumericLiteral() ast.Expr {
	start, end := p.cur.Span.Start, p.cur.Span.End
	lit := ast.GetNumericLiteral()
	lit.Span = token.Span{Start: start, End: end}
	lit.Text = p.cur.Value
	lit.IsFloat = p.cur.Type == token.FLOAT
	p.advance()
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expr {
	start, end := p.cur.Span.Start, p.cur.Span.End
	lit := ast.GetStringLiteral()
	lit.Span = token.Span{Start: start, End: end}
	lit.Value = p.cur.Value
	lit.Quote = '\''
	p.advance()
	return lit
}

func (p *Parser) parseBlobLiteral() ast.Expr {
	lit := &ast.BlobLiteral{Hex: p.cur.Value}
	lit.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.End}
	p.advance()
	return lit
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	lit := &ast.BoolLiteral{Value: p.cur.Type == token.TRUE}
	lit.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.End}
	p.advance()
	return lit
}

func (p *Parser) parseCurrentTime() ast.Expr {
	var kind ast.CurrentTimeKind
	switch p.cur.Type {
	case token.CURRENT_DATE:
		kind = ast.CurrentDate
	case token.CURRENT_TIME:
		kind = ast.CurrentTime
	case token.CURRENT_TIMESTAMP:
		kind = ast.CurrentTimestamp
	}
	e := &ast.CurrentTimeExpr{Kind: kind}
	e.Span = token.Span{Start: p.cur.Span.Start, End: p.cur.Span.End}
	p.advance()
	return e
}

func (p *Parser) parseIdentOrFuncOrQualified() ast.Expr {
	start := p.cur.Span.Start
	name := p.curIdentValue()
	p.advance()

	if p.curIs(token.LPAREN) {
		return p.parseFuncCall(start, name)
	}

	if !p.curIs(token.DOT) {
		id := ast.GetIdentifier()
		id.Name = name
		id.Span = token.Span{Start: start, End: p.cur.Span.Start}
		return id
	}

	parts := []string{name}
	for p.curIs(token.DOT) {
		p.advance()
		if p.curIs(token.ASTERISK) {
			end := p.cur.Span.End
			p.advance()
			star := &ast.StarExpr{TableQualifier: parts[len(parts)-1]}
			star.Span = token.Span{Start: start, End: end}
			return star
		}
		if !p.curIsIdent() {
			p.errUnexpected("identifier after '.'")
			return nil
		}
		parts = append(parts, p.curIdentValue())
		p.advance()
		if len(parts) > 3 {
			p.errorf("qualified identifier %q has too many parts (max 3: schema.table.column)", strings.Join(parts, "."))
			return nil
		}
	}
	qi := ast.GetQualifiedIdentifier()
	qi.Parts = parts
	qi.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return qi
}

func (p *Parser) parseFuncCall(start token.Position, name string) ast.Expr {
	p.advance() // (
	fn := ast.GetFuncExpr()
	fn.Name = strings.ToUpper(name)

	if p.curIs(token.DISTINCT) {
		fn.Distinct = true
		p.advance()
	}

	if p.curIs(token.ASTERISK) {
		fn.Star = true
		p.advance()
	} else if !p.curIs(token.RPAREN) {
		fn.Args = p.parseExprList()
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	end := p.cur.Span.Start

	if p.curIs(token.FILTER) {
		p.advance()
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		fn.Filter = p.parseExpr()
		p.expect(token.RPAREN)
		end = p.cur.Span.Start
	}

	if p.curIs(token.OVER) {
		fn.Over = p.parseWindowRef()
		end = p.cur.Span.Start
	}

	fn.Span = token.Span{Start: start, End: end}
	return fn
}

func (p *Parser) parseWindowRef() *ast.WindowRef {
	p.advance() // OVER
	if p.curIs(token.IDENT) && !p.peekIs(token.LPAREN) {
		name := p.curIdentValue()
		p.advance()
		return &ast.WindowRef{Name: name}
	}
	return &ast.WindowRef{Spec: p.parseWindowSpec()}
}

func (p *Parser) parseWindowSpec() *ast.WindowSpec {
	start := p.cur.Span.Start
	if !p.expect(token.LPAREN) {
		return nil
	}
	spec := &ast.WindowSpec{}

	if p.curIsIdent() && !p.curIs(token.PARTITION) && !p.curIs(token.ORDER) &&
		!p.curIs(token.ROWS) && !p.curIs(token.RANGE) && !p.curIs(token.GROUPS) {
		spec.BaseName = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.PARTITION) {
		p.advance()
		p.expect(token.BY)
		spec.PartitionBy = p.parseExprList()
	}
	if p.curIs(token.ORDER) {
		spec.OrderBy = p.parseOrderBy()
	}
	if p.curIs(token.ROWS) || p.curIs(token.RANGE) || p.curIs(token.GROUPS) {
		spec.Frame = p.parseWindowFrame()
	}
	p.expect(token.RPAREN)
	spec.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return spec
}

func (p *Parser) parseWindowFrame() *ast.WindowFrame {
	frame := &ast.WindowFrame{}
	switch p.cur.Type {
	case token.ROWS:
		frame.Type = ast.FrameRows
	case token.RANGE:
		frame.Type = ast.FrameRange
	case token.GROUPS:
		frame.Type = ast.FrameGroups
	}
	p.advance()

	if p.curIs(token.BETWEEN) {
		p.advance()
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.End = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}

	if p.curIs(token.EXCLUDE) {
		p.advance()
		switch {
		case p.curIs(token.NO):
			p.advance()
			p.expect(token.OTHERS)
			frame.Exclude = ast.ExcludeNoOthers
		case p.curIs(token.CURRENT):
			p.advance()
			p.expect(token.ROW)
			frame.Exclude = ast.ExcludeCurrentRow
		case p.curIs(token.GROUP):
			p.advance()
			frame.Exclude = ast.ExcludeGroup
		case p.curIs(token.TIES):
			p.advance()
			frame.Exclude = ast.ExcludeTies
		}
	}
	return frame
}

// parseFrameBound parses one frame endpoint. The offset is parsed at
// precComparison+1 (one level above BETWEEN) so that e.g. `1 + 2 PRECEDING`
// binds the arithmetic before the PRECEDING keyword is consumed, while the
// AND separating two BETWEEN bounds is left for parseWindowFrame.
func (p *Parser) parseFrameBound() *ast.FrameBound {
	bound := &ast.FrameBound{}
	switch {
	case p.curIs(token.CURRENT):
		p.advance()
		p.expect(token.ROW)
		bound.Type = ast.BoundCurrentRow
	case p.curIs(token.UNBOUNDED):
		p.advance()
		if p.curIs(token.PRECEDING) {
			p.advance()
			bound.Type = ast.BoundUnboundedPreceding
		} else if p.curIs(token.FOLLOWING) {
			p.advance()
			bound.Type = ast.BoundUnboundedFollowing
		}
	default:
		bound.Offset = p.parseExprPrec(precComparison + 1)
		if p.curIs(token.PRECEDING) {
			p.advance()
			bound.Type = ast.BoundPreceding
		} else if p.curIs(token.FOLLOWING) {
			p.advance()
			bound.Type = ast.BoundFollowing
		}
	}
	return bound
}

func (p *Parser) parseParam() ast.Expr {
	raw := p.cur.Value
	start, end := p.cur.Span.Start, p.cur.Span.End
	param := &ast.Param{Raw: raw}
	param.Span = token.Span{Start: start, End: end}
	switch {
	case raw == "?":
	case raw[0] == '?':
		n, _ := strconv.Atoi(raw[1:])
		param.Number = n
	case raw[0] == ':' || raw[0] == '@' || raw[0] == '$':
		param.Name = raw[1:]
	}
	p.advance()
	return param
}

func (p *Parser) parseParenOrSubquery() ast.Expr {
	start := p.cur.Span.Start
	p.advance() // (

	if p.curIs(token.SELECT) || p.curIs(token.WITH) {
		sel := p.parseSelectOrWith()
		if !p.expect(token.RPAREN) {
			return nil
		}
		sq := &ast.Subquery{Select: sel}
		sq.Span = token.Span{Start: start, End: p.cur.Span.Start}
		return sq
	}

	expr := p.parseExpr()
	if !p.expect(token.RPAREN) {
		return nil
	}
	paren := &ast.ParenExpr{Expr: expr}
	paren.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return paren
}

// parseSelectOrWith parses a SELECT, optionally prefixed by a WITH clause,
// in a position (subquery, derived table) where only a SelectStmt is valid.
func (p *Parser) parseSelectOrWith() *ast.SelectStmt {
	if p.curIs(token.WITH) {
		with := p.parseWithClause()
		sel := p.parseSelectStmt()
		if sel != nil {
			sel.With = with
		}
		return sel
	}
	return p.parseSelectStmt()
}

func (p *Parser) parseNotExpr() ast.Expr {
	start := p.cur.Span.Start
	p.advance() // NOT
	u := &ast.UnaryExpr{Op: ast.OpNot}
	u.Operand = p.parseExprPrec(precNot)
	u.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return u
}

func (p *Parser) parseUnary(op ast.UnaryOp) ast.Expr {
	start := p.cur.Span.Start
	p.advance()
	u := &ast.UnaryExpr{Op: op}
	u.Operand = p.parseExprPrec(precUnary)
	u.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return u
}

func (p *Parser) parseExistsExpr() ast.Expr {
	start := p.cur.Span.Start
	negated := false
	p.advance() // EXISTS
	if !p.expect(token.LPAREN) {
		return nil
	}
	sel := p.parseSelectOrWith()
	if !p.expect(token.RPAREN) {
		return nil
	}
	ex := &ast.ExistsExpr{Negated: negated, Subquery: &ast.Subquery{Select: sel}}
	ex.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return ex
}

func (p *Parser) parseCaseExpr() ast.Expr {
	start := p.cur.Span.Start
	p.advance() // CASE
	ce := &ast.CaseExpr{}

	if !p.curIs(token.WHEN) {
		ce.Operand = p.parseExpr()
	}
	for p.curIs(token.WHEN) {
		p.advance()
		cond := p.parseExpr()
		if !p.expect(token.THEN) {
			return nil
		}
		result := p.parseExpr()
		ce.Whens = append(ce.Whens, &ast.When{Cond: cond, Result: result})
	}
	if p.curIs(token.ELSE) {
		p.advance()
		ce.Else = p.parseExpr()
	}
	if !p.expect(token.END) {
		return nil
	}
	ce.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return ce
}

func (p *Parser) parseCastExpr() ast.Expr {
	start := p.cur.Span.Start
	p.advance() // CAST
	if !p.expect(token.LPAREN) {
		return nil
	}
	expr := p.parseExpr()
	if !p.expect(token.AS) {
		return nil
	}
	typeName := p.parseTypeName()
	if !p.expect(token.RPAREN) {
		return nil
	}
	cast := &ast.CastExpr{Expr: expr, TypeName: typeName}
	cast.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return cast
}

// parseTypeName consumes a (possibly multi-word) type name, e.g. VARCHAR,
// DOUBLE PRECISION, or one with a parenthesized length/precision that's
// discarded (SQLite's type affinity doesn't care about it beyond storage).
func (p *Parser) parseTypeName() string {
	var words []string
	for p.curIsIdent() && !p.curIs(token.LPAREN) &&
		!p.isColumnConstraintStart(p.cur.Type) && !p.curIs(token.CONSTRAINT) {
		words = append(words, p.curIdentValue())
		p.advance()
	}
	name := strings.Join(words, " ")
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			p.advance()
		}
		p.expect(token.RPAREN)
	}
	return name
}

func (p *Parser) parseRaiseExpr() ast.Expr {
	start := p.cur.Span.Start
	p.advance() // RAISE
	if !p.expect(token.LPAREN) {
		return nil
	}
	e := &ast.RaiseExpr{}
	switch p.cur.Type {
	case token.IGNORE:
		e.Kind = ast.RaiseIgnore
		p.advance()
	case token.ROLLBACK:
		e.Kind = ast.RaiseRollback
		p.advance()
	case token.ABORT:
		e.Kind = ast.RaiseAbort
		p.advance()
	case token.FAIL:
		e.Kind = ast.RaiseFail
		p.advance()
	default:
		p.errUnexpected("IGNORE, ROLLBACK, ABORT, or FAIL")
	}
	if e.Kind != ast.RaiseIgnore {
		p.expect(token.COMMA)
		if p.curIs(token.STRING) {
			e.Message = p.cur.Value
			p.advance()
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	e.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return e
}

func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	start := left.Pos()
	p.advance() // IS
	negated := false
	if p.curIs(token.NOT) {
		negated = true
		p.advance()
	}
	right := p.parseExprPrec(precComparison + 1)
	op := ast.OpIs
	if negated {
		op = ast.OpIsNot
	}
	bin := ast.GetBinaryExpr()
	bin.Span = token.Span{Start: start, End: p.cur.Span.Start}
	bin.Op = op
	bin.Left = left
	bin.Right = right
	return bin
}

func (p *Parser) parseInExpr(left ast.Expr, negated bool) ast.Expr {
	start := left.Pos()
	p.advance() // IN
	if !p.expect(token.LPAREN) {
		return nil
	}
	e := &ast.InExpr{Expr: left, Negated: negated}

	if p.curIs(token.SELECT) || p.curIs(token.WITH) {
		e.Select = &ast.Subquery{Select: p.parseSelectOrWith()}
	} else if !p.curIs(token.RPAREN) {
		e.Values = p.parseExprList()
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	e.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return e
}

func (p *Parser) parseBetweenExpr(left ast.Expr, negated bool) ast.Expr {
	start := left.Pos()
	p.advance() // BETWEEN
	e := &ast.BetweenExpr{Expr: left, Negated: negated}
	e.Low = p.parseExprPrec(precComparison + 1)
	if !p.expect(token.AND) {
		return nil
	}
	e.High = p.parseExprPrec(precComparison + 1)
	e.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return e
}

func (p *Parser) parseLikeExpr(left ast.Expr, kind ast.LikeKind, negated bool) ast.Expr {
	start := left.Pos()
	p.advance() // LIKE/GLOB/MATCH/REGEXP
	e := &ast.LikeExpr{Expr: left, Kind: kind, Negated: negated}
	e.Pattern = p.parseExprPrec(precComparison + 1)
	if p.curIs(token.ESCAPE) {
		p.advance()
		e.Escape = p.parseExprPrec(precComparison + 1)
	}
	e.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return e
}

func (p *Parser) parseCollateExpr(left ast.Expr) ast.Expr {
	start := left.Pos()
	p.advance() // COLLATE
	name := ""
	if p.curIsIdent() {
		name = p.curIdentValue()
		p.advance()
	}
	col := &ast.CollateExpr{Expr: left, Collation: name}
	col.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return col
}

func (p *Parser) parseExprList() []ast.Expr {
	var exprs []ast.Expr
	for {
		e := p.parseExpr()
		if e == nil {
			break
		}
		exprs = append(exprs, e)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return exprs
}
