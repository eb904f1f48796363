package parser

import (
	"strings"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// parseCreate dispatches CREATE [TEMP|TEMPORARY] [UNIQUE] (TABLE | INDEX |
// VIEW | TRIGGER | VIRTUAL TABLE).
func (p *Parser) parseCreate() ast.Statement {
	p.advance() // CREATE

	unique := false
	temp := false
	for {
		switch p.cur.Type {
		case token.UNIQUE:
			unique = true
			p.advance()
			continue
		case token.TEMP, token.TEMPORARY:
			temp = true
			p.advance()
			continue
		}
		break
	}

	switch p.cur.Type {
	case token.TABLE:
		return p.parseCreateTable(temp)
	case token.INDEX:
		return p.parseCreateIndex(unique)
	case token.VIEW:
		return p.parseCreateView(temp)
	case token.TRIGGER:
		return p.parseCreateTrigger(temp)
	case token.VIRTUAL:
		return p.parseCreateVirtualTable()
	default:
		p.errUnexpected("TABLE, INDEX, VIEW, TRIGGER, or VIRTUAL TABLE")
		return nil
	}
}

func (p *Parser) parseIfNotExists() bool {
	if p.curIs(token.IF) {
		p.advance()
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		return true
	}
	return false
}

func (p *Parser) parseCreateTable(temp bool) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // TABLE
	stmt := &ast.CreateTableStmt{Temp: temp}
	stmt.IfNotExists = p.parseIfNotExists()
	stmt.Table = p.parseTableName()

	if p.curIs(token.AS) {
		p.advance()
		stmt.As = p.parseSelectOrWith()
		stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
		return stmt
	}

	if !p.expect(token.LPAREN) {
		return nil
	}
	for {
		if p.curIs(token.CONSTRAINT) || p.isTableConstraintStart(p.cur.Type) {
			stmt.Constraints = append(stmt.Constraints, p.parseTableConstraint())
		} else {
			stmt.Columns = append(stmt.Columns, p.parseColumnDef())
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)

	for {
		if p.curIs(token.WITHOUT) {
			p.advance()
			if p.curIsIdent() && strings.EqualFold(p.curIdentValue(), "ROWID") {
				p.advance()
			} else {
				p.expect(token.ROWID)
			}
			stmt.WithoutRowID = true
			continue
		}
		if p.curIs(token.STRICT) {
			p.advance()
			stmt.Strict = true
			continue
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) isTableConstraintStart(t token.Token) bool {
	switch t {
	case token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN:
		return true
	default:
		return false
	}
}

func (p *Parser) parseColumnDef() *ast.ColumnDef {
	col := &ast.ColumnDef{}
	if p.curIsIdent() {
		col.Name = p.curIdentValue()
		p.advance()
	} else {
		p.errUnexpected("column name")
		return col
	}
	if p.curIsIdent() && !p.isColumnConstraintStart(p.cur.Type) {
		col.TypeName = p.parseTypeName()
	}
	for p.isColumnConstraintStart(p.cur.Type) || p.curIs(token.CONSTRAINT) {
		col.Constraints = append(col.Constraints, p.parseColumnConstraint())
	}
	return col
}

func (p *Parser) isColumnConstraintStart(t token.Token) bool {
	switch t {
	case token.PRIMARY, token.NOT, token.NULL, token.UNIQUE, token.CHECK,
		token.DEFAULT, token.COLLATE, token.REFERENCES, token.GENERATED, token.AS:
		return true
	default:
		return false
	}
}

func (p *Parser) parseColumnConstraint() *ast.ColumnConstraint {
	cc := &ast.ColumnConstraint{}
	if p.curIs(token.CONSTRAINT) {
		p.advance()
		if p.curIsIdent() {
			cc.Name = p.curIdentValue()
			p.advance()
		}
	}

	switch p.cur.Type {
	case token.PRIMARY:
		p.advance()
		p.expect(token.KEY)
		cc.Kind = ast.ConstraintPrimaryKey
		if p.curIs(token.ASC) {
			cc.Asc = true
			p.advance()
		} else if p.curIs(token.DESC) {
			cc.Desc = true
			p.advance()
		}
		if p.curIs(token.AUTOINCREMENT) {
			cc.AutoIncrement = true
			p.advance()
		}
		cc.ConflictAction = p.parseOptionalOnConflict()
	case token.NOT:
		p.advance()
		p.expect(token.NULL)
		cc.Kind = ast.ConstraintNotNull
		cc.ConflictAction = p.parseOptionalOnConflict()
	case token.NULL:
		p.advance()
		cc.Kind = ast.ConstraintNotNull
	case token.UNIQUE:
		p.advance()
		cc.Kind = ast.ConstraintUnique
		cc.ConflictAction = p.parseOptionalOnConflict()
	case token.CHECK:
		p.advance()
		p.expect(token.LPAREN)
		cc.Kind = ast.ConstraintCheck
		cc.Expr = p.parseExpr()
		p.expect(token.RPAREN)
	case token.DEFAULT:
		p.advance()
		cc.Kind = ast.ConstraintDefault
		if p.curIs(token.LPAREN) {
			p.advance()
			cc.Expr = p.parseExpr()
			p.expect(token.RPAREN)
		} else {
			cc.Expr = p.parseUnaryDefaultLiteral()
		}
	case token.COLLATE:
		p.advance()
		cc.Kind = ast.ConstraintCollate
		if p.curIsIdent() {
			cc.Collation = p.curIdentValue()
			p.advance()
		}
	case token.REFERENCES:
		cc.Kind = ast.ConstraintForeignKey
		cc.ForeignKey = p.parseForeignKeyRef()
	case token.GENERATED, token.AS:
		if p.curIs(token.GENERATED) {
			p.advance()
			p.expect(token.ALWAYS)
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		gc := &ast.GeneratedColumn{Expr: p.parseExpr(), Stored: false}
		p.expect(token.RPAREN)
		if p.curIsIdent() && strings.EqualFold(p.curIdentValue(), "STORED") {
			gc.Stored = true
			p.advance()
		} else if p.curIs(token.STORED) {
			gc.Stored = true
			p.advance()
		} else if p.curIs(token.VIRTUAL) {
			p.advance()
		}
		cc.Kind = ast.ConstraintGenerated
		cc.Generated = gc
	}
	return cc
}

// parseUnaryDefaultLiteral parses a DEFAULT value: a literal, optionally
// signed, or one of the CURRENT_* keywords. Full expressions require the
// parenthesized form.
func (p *Parser) parseUnaryDefaultLiteral() ast.Expr {
	return p.parseExprPrec(precUnary)
}

func (p *Parser) parseOptionalOnConflict() ast.ConflictAction {
	if !p.curIs(token.ON) {
		return ast.ConflictNone
	}
	p.advance()
	p.expect(token.CONFLICT)
	action, ok := p.conflictActionOf()
	if ok {
		p.advance()
	}
	return action
}

func (p *Parser) parseForeignKeyRef() *ast.ForeignKeyRef {
	p.advance() // REFERENCES
	ref := &ast.ForeignKeyRef{}
	if p.curIsIdent() {
		ref.Table = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.LPAREN) {
		ref.Columns = p.parseColumnNameList()
	}
	for {
		switch {
		case p.curIs(token.ON):
			p.advance()
			isDelete := p.curIs(token.DELETE)
			if isDelete || p.curIs(token.UPDATE) {
				p.advance()
				action := p.parseRefAction()
				if isDelete {
					ref.OnDelete = action
				} else {
					ref.OnUpdate = action
				}
				continue
			}
		case p.curIs(token.MATCH):
			p.advance()
			if p.curIsIdent() {
				ref.Match = p.curIdentValue()
				p.advance()
			}
			continue
		case p.curIs(token.NOT) && p.peekIs(token.DEFERRABLE):
			p.advance()
			p.advance()
			ref.NotDeferrable = true
			p.parseDeferrableInitially(ref)
			continue
		case p.curIs(token.DEFERRABLE):
			p.advance()
			ref.Deferrable = true
			p.parseDeferrableInitially(ref)
			continue
		}
		break
	}
	return ref
}

func (p *Parser) parseDeferrableInitially(ref *ast.ForeignKeyRef) {
	if !p.curIs(token.INITIALLY) {
		return
	}
	p.advance()
	deferred := p.curIs(token.DEFERRED)
	if deferred {
		p.advance()
	} else if p.curIs(token.IMMEDIATE) {
		p.advance()
	}
	ref.InitiallyDeferred = &deferred
}

func (p *Parser) parseRefAction() ast.RefAction {
	switch p.cur.Type {
	case token.SET:
		p.advance()
		if p.curIs(token.NULL) {
			p.advance()
			return ast.ActionSetNull
		}
		p.expect(token.DEFAULT)
		return ast.ActionSetDefault
	case token.CASCADE:
		p.advance()
		return ast.ActionCascade
	case token.RESTRICT:
		p.advance()
		return ast.ActionRestrict
	case token.NO:
		p.advance()
		p.expect(token.ACTION)
		return ast.ActionNoAction
	default:
		p.errUnexpected("SET NULL, SET DEFAULT, CASCADE, RESTRICT, or NO ACTION")
		return ast.ActionNone
	}
}

func (p *Parser) parseTableConstraint() *ast.TableConstraint {
	tc := &ast.TableConstraint{}
	if p.curIs(token.CONSTRAINT) {
		p.advance()
		if p.curIsIdent() {
			tc.Name = p.curIdentValue()
			p.advance()
		}
	}

	switch p.cur.Type {
	case token.PRIMARY:
		p.advance()
		p.expect(token.KEY)
		tc.Kind = ast.TableConstraintPrimaryKey
		tc.Columns = p.parseIndexedColumnList()
		tc.ConflictAction = p.parseOptionalOnConflict()
	case token.UNIQUE:
		p.advance()
		tc.Kind = ast.TableConstraintUnique
		tc.Columns = p.parseIndexedColumnList()
		tc.ConflictAction = p.parseOptionalOnConflict()
	case token.CHECK:
		p.advance()
		p.expect(token.LPAREN)
		tc.Kind = ast.TableConstraintCheck
		tc.Check = p.parseExpr()
		p.expect(token.RPAREN)
	case token.FOREIGN:
		p.advance()
		p.expect(token.KEY)
		tc.Kind = ast.TableConstraintForeignKey
		tc.ForeignColumns = p.parseColumnNameList()
		if p.curIs(token.REFERENCES) {
			tc.ForeignKey = p.parseForeignKeyRef()
		}
	default:
		p.errUnexpected("PRIMARY KEY, UNIQUE, CHECK, or FOREIGN KEY")
	}
	return tc
}

func (p *Parser) parseIndexedColumnList() []*ast.IndexedColumn {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var cols []*ast.IndexedColumn
	for {
		cols = append(cols, p.parseIndexedColumn())
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return cols
}

func (p *Parser) parseCreateIndex(unique bool) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // INDEX
	stmt := &ast.CreateIndexStmt{Unique: unique}
	stmt.IfNotExists = p.parseIfNotExists()
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}
	if !p.expect(token.ON) {
		return nil
	}
	stmt.Table = p.parseTableName()
	stmt.Columns = p.parseIndexedColumnList()
	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) parseCreateView(temp bool) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // VIEW
	stmt := &ast.CreateViewStmt{Temp: temp}
	stmt.IfNotExists = p.parseIfNotExists()
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.LPAREN) {
		stmt.Columns = p.parseColumnNameList()
	}
	if !p.expect(token.AS) {
		return nil
	}
	stmt.Select = p.parseSelectOrWith()
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) parseCreateTrigger(temp bool) ast.Statement {
	start := p.cur.Span.Start
	p.advance() // TRIGGER
	stmt := &ast.CreateTriggerStmt{Temp: temp}
	stmt.IfNotExists = p.parseIfNotExists()
	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}

	switch p.cur.Type {
	case token.BEFORE:
		stmt.Timing = ast.TriggerBefore
		p.advance()
	case token.AFTER:
		stmt.Timing = ast.TriggerAfter
		p.advance()
	case token.INSTEAD:
		p.advance()
		p.expect(token.OF)
		stmt.Timing = ast.TriggerInsteadOf
	}

	switch p.cur.Type {
	case token.INSERT:
		stmt.Event = ast.TriggerInsert
		p.advance()
	case token.UPDATE:
		stmt.Event = ast.TriggerUpdate
		p.advance()
		if p.curIs(token.OF) {
			p.advance()
			stmt.UpdateOf = p.parseColumnNameListBare()
		}
	case token.DELETE:
		stmt.Event = ast.TriggerDelete
		p.advance()
	default:
		p.errUnexpected("INSERT, UPDATE, or DELETE")
	}

	if !p.expect(token.ON) {
		return nil
	}
	stmt.Table = p.parseTableName()

	if p.curIs(token.FOR) {
		p.advance()
		p.expect(token.EACH)
		p.expect(token.ROW)
		stmt.ForEachRow = true
	}
	if p.curIs(token.WHEN) {
		p.advance()
		stmt.When = p.parseExpr()
	}

	if !p.expect(token.BEGIN) {
		return nil
	}
	for !p.curIs(token.END) && !p.curIs(token.EOF) {
		s := p.parseStatement()
		if s != nil {
			stmt.Body = append(stmt.Body, s)
		}
		p.skipSemicolons()
	}
	p.expect(token.END)

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseColumnNameListBare parses a bare comma-separated column list not
// wrapped in parentheses, as used by UPDATE OF in a trigger declaration.
func (p *Parser) parseColumnNameListBare() []string {
	var names []string
	for p.curIsIdent() {
		names = append(names, p.curIdentValue())
		p.advance()
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return names
}

func (p *Parser) parseCreateVirtualTable() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // VIRTUAL
	p.expect(token.TABLE)
	stmt := &ast.CreateVirtualTableStmt{}
	stmt.IfNotExists = p.parseIfNotExists()
	stmt.Table = p.parseTableName()
	if !p.expect(token.USING) {
		return nil
	}
	if p.curIsIdent() {
		stmt.Module = p.curIdentValue()
		p.advance()
	}
	if p.curIs(token.LPAREN) {
		p.advance()
		stmt.Args = p.parseRawArgList()
		p.expect(token.RPAREN)
	}
	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

// parseRawArgList collects comma-separated virtual-table module arguments as
// raw source text, since each module defines its own argument grammar.
func (p *Parser) parseRawArgList() []string {
	var args []string
	var buf strings.Builder
	depth := 0
	for {
		if p.curIs(token.EOF) {
			break
		}
		if depth == 0 && (p.curIs(token.COMMA) || p.curIs(token.RPAREN)) {
			args = append(args, strings.TrimSpace(buf.String()))
			buf.Reset()
			if p.curIs(token.RPAREN) {
				break
			}
			p.advance()
			continue
		}
		if p.curIs(token.LPAREN) {
			depth++
		} else if p.curIs(token.RPAREN) {
			depth--
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(p.cur.Value)
		if p.cur.Value == "" {
			buf.WriteString(p.cur.Type.String())
		}
		p.advance()
	}
	return args
}

func (p *Parser) parseAlter() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // ALTER
	if !p.expect(token.TABLE) {
		return nil
	}
	stmt := &ast.AlterTableStmt{}
	stmt.Table = p.parseTableName()

	switch {
	case p.curIs(token.RENAME):
		p.advance()
		if p.curIs(token.TO) {
			p.advance()
			name := ""
			if p.curIsIdent() {
				name = p.curIdentValue()
				p.advance()
			}
			stmt.Action = &ast.RenameTableAction{NewName: name}
		} else {
			if p.curIs(token.COLUMN) {
				p.advance()
			}
			old := ""
			if p.curIsIdent() {
				old = p.curIdentValue()
				p.advance()
			}
			p.expect(token.TO)
			newName := ""
			if p.curIsIdent() {
				newName = p.curIdentValue()
				p.advance()
			}
			stmt.Action = &ast.RenameColumnAction{OldName: old, NewName: newName}
		}
	case p.curIs(token.ADD):
		p.advance()
		if p.curIs(token.COLUMN) {
			p.advance()
		}
		stmt.Action = &ast.AddColumnAction{Column: p.parseColumnDef()}
	case p.curIs(token.DROP):
		p.advance()
		if p.curIs(token.COLUMN) {
			p.advance()
		}
		name := ""
		if p.curIsIdent() {
			name = p.curIdentValue()
			p.advance()
		}
		stmt.Action = &ast.DropColumnAction{Name: name}
	default:
		p.errUnexpected("RENAME, ADD COLUMN, or DROP COLUMN")
	}

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}

func (p *Parser) parseDrop() ast.Statement {
	start := p.cur.Span.Start
	p.advance() // DROP
	stmt := &ast.DropStmt{}

	switch p.cur.Type {
	case token.TABLE:
		stmt.Kind = ast.DropTableKind
	case token.INDEX:
		stmt.Kind = ast.DropIndexKind
	case token.VIEW:
		stmt.Kind = ast.DropViewKind
	case token.TRIGGER:
		stmt.Kind = ast.DropTriggerKind
	default:
		p.errUnexpected("TABLE, INDEX, VIEW, or TRIGGER")
		return nil
	}
	p.advance()

	stmt.IfExists = false
	if p.curIs(token.IF) {
		p.advance()
		p.expect(token.EXISTS)
		stmt.IfExists = true
	}

	if !p.curIsIdent() {
		p.errUnexpected("name")
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

	stmt.Span = token.Span{Start: start, End: p.cur.Span.Start}
	return stmt
}
