// Package format provides SQL generation from AST nodes.
package format

import (
	"bytes"
	"strings"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/token"
)

// Options controls formatting behavior.
type Options struct {
	Uppercase bool   // Uppercase keywords
	Indent    string // Indentation string (unused for single-line output)
}

// DefaultOptions are the default formatting options.
var DefaultOptions = Options{
	Uppercase: true,
	Indent:    "  ",
}

// Formatter generates SQL from AST nodes.
type Formatter struct {
	buf  bytes.Buffer
	opts Options
}

// New creates a new formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// String formats an AST node to a SQL string.
func String(node ast.Node) string {
	f := New(DefaultOptions)
	f.Format(node)
	return f.String()
}

// Format formats a node to the internal buffer.
func (f *Formatter) Format(node ast.Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.SelectStmt:
		f.formatSelect(n)
	case *ast.InsertStmt:
		f.formatInsert(n)
	case *ast.UpdateStmt:
		f.formatUpdate(n)
	case *ast.DeleteStmt:
		f.formatDelete(n)
	case *ast.CreateTableStmt:
		f.formatCreateTable(n)
	case *ast.CreateIndexStmt:
		f.formatCreateIndex(n)
	case *ast.CreateViewStmt:
		f.formatCreateView(n)
	case *ast.CreateTriggerStmt:
		f.formatCreateTrigger(n)
	case *ast.CreateVirtualTableStmt:
		f.formatCreateVirtualTable(n)
	case *ast.AlterTableStmt:
		f.formatAlterTable(n)
	case *ast.DropStmt:
		f.formatDrop(n)
	case *ast.TransactionStmt:
		f.formatTransaction(n)
	case *ast.AttachStmt:
		f.formatAttach(n)
	case *ast.DetachStmt:
		f.formatDetach(n)
	case *ast.AnalyzeStmt:
		f.formatAnalyze(n)
	case *ast.VacuumStmt:
		f.formatVacuum(n)
	case *ast.ReindexStmt:
		f.formatReindex(n)
	case *ast.ExplainStmt:
		f.formatExplain(n)
	case *ast.PragmaStmt:
		f.formatPragma(n)
	case *ast.BinaryExpr:
		f.formatBinaryExpr(n)
	case *ast.UnaryExpr:
		f.formatUnaryExpr(n)
	case *ast.ParenExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.FuncExpr:
		f.formatFuncExpr(n)
	case *ast.CaseExpr:
		f.formatCaseExpr(n)
	case *ast.CastExpr:
		f.formatCastExpr(n)
	case *ast.CollateExpr:
		f.Format(n.Expr)
		f.write(" ")
		f.writeKeyword("COLLATE")
		f.write(" ")
		f.writeIdent(n.Collation)
	case *ast.Identifier:
		f.writeIdent(n.Name)
	case *ast.QualifiedIdentifier:
		f.formatQualifiedIdentifier(n)
	case *ast.NumericLiteral:
		f.write(n.Text)
	case *ast.StringLiteral:
		f.formatStringLiteral(n.Value)
	case *ast.BlobLiteral:
		f.write("X'")
		f.write(n.Hex)
		f.write("'")
	case *ast.NullLiteral:
		f.writeKeyword("NULL")
	case *ast.BoolLiteral:
		if n.Value {
			f.writeKeyword("TRUE")
		} else {
			f.writeKeyword("FALSE")
		}
	case *ast.CurrentTimeExpr:
		switch n.Kind {
		case ast.CurrentDate:
			f.writeKeyword("CURRENT_DATE")
		case ast.CurrentTime:
			f.writeKeyword("CURRENT_TIME")
		case ast.CurrentTimestamp:
			f.writeKeyword("CURRENT_TIMESTAMP")
		}
	case *ast.Param:
		f.formatParam(n)
	case *ast.TableName:
		f.formatTableName(n)
	case *ast.AliasedTableExpr:
		f.formatAliasedTableExpr(n)
	case *ast.JoinExpr:
		f.formatJoinExpr(n)
	case *ast.ParenTableExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.Subquery:
		f.write("(")
		f.Format(n.Select)
		f.write(")")
	case *ast.SubqueryTableExpr:
		f.write("(")
		f.Format(n.Select)
		f.write(")")
	case *ast.AliasedExpr:
		f.Format(n.Expr)
		if n.Alias != "" {
			f.write(" ")
			f.writeKeyword("AS")
			f.write(" ")
			f.writeIdent(n.Alias)
		}
	case *ast.StarExpr:
		if n.TableQualifier != "" {
			f.writeIdent(n.TableQualifier)
			f.write(".")
		}
		f.write("*")
	case *ast.InExpr:
		f.formatInExpr(n)
	case *ast.BetweenExpr:
		f.formatBetweenExpr(n)
	case *ast.LikeExpr:
		f.formatLikeExpr(n)
	case *ast.ExistsExpr:
		f.formatExistsExpr(n)
	case *ast.RaiseExpr:
		f.formatRaiseExpr(n)
	}
}

// String returns the formatted SQL.
func (f *Formatter) String() string {
	return f.buf.String()
}

func (f *Formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *Formatter) writeKeyword(kw string) {
	if f.opts.Uppercase {
		f.buf.WriteString(strings.ToUpper(kw))
	} else {
		f.buf.WriteString(strings.ToLower(kw))
	}
}

func (f *Formatter) writeIdent(id string) {
	if needsQuoting(id) {
		f.buf.WriteByte('"')
		f.buf.WriteString(strings.ReplaceAll(id, `"`, `""`))
		f.buf.WriteByte('"')
	} else {
		f.buf.WriteString(id)
	}
}

// writeFuncName writes a function name. Unlike writeIdent, it doesn't quote
// keywords since many SQL functions have keyword names (COUNT, ANY, etc.)
func (f *Formatter) writeFuncName(name string) {
	if needsQuotingNonKeyword(name) {
		f.buf.WriteByte('"')
		f.buf.WriteString(strings.ReplaceAll(name, `"`, `""`))
		f.buf.WriteByte('"')
	} else {
		f.buf.WriteString(name)
	}
}

func (f *Formatter) formatSelect(s *ast.SelectStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.formatSelectCore(s.Core)

	for _, term := range s.Compound {
		f.write(" ")
		switch term.Op {
		case ast.CompoundUnion:
			f.writeKeyword("UNION")
		case ast.CompoundUnionAll:
			f.writeKeyword("UNION ALL")
		case ast.CompoundIntersect:
			f.writeKeyword("INTERSECT")
		case ast.CompoundExcept:
			f.writeKeyword("EXCEPT")
		}
		f.write(" ")
		f.formatSelectCore(term.Core)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.formatOrderByList(s.OrderBy)
	}

	f.formatLimit(s.Limit)
}

func (f *Formatter) formatSelectCore(s *ast.SelectCore) {
	if s == nil {
		return
	}
	f.writeKeyword("SELECT")

	if s.Distinct {
		f.write(" ")
		f.writeKeyword("DISTINCT")
	} else if s.All {
		f.write(" ")
		f.writeKeyword("ALL")
	}

	f.write(" ")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.Format(col)
	}

	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}

	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	if len(s.GroupBy) > 0 {
		f.write(" ")
		f.writeKeyword("GROUP BY")
		f.write(" ")
		for i, expr := range s.GroupBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(expr)
		}
	}

	if s.Having != nil {
		f.write(" ")
		f.writeKeyword("HAVING")
		f.write(" ")
		f.Format(s.Having)
	}

	if len(s.Windows) > 0 {
		f.write(" ")
		f.writeKeyword("WINDOW")
		f.write(" ")
		for i, wd := range s.Windows {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(wd.Name)
			f.write(" ")
			f.writeKeyword("AS")
			f.write(" ")
			f.formatWindowSpecParen(wd.Spec)
		}
	}
}

func (f *Formatter) formatOrderByList(obs []*ast.OrderByExpr) {
	for i, ob := range obs {
		if i > 0 {
			f.write(", ")
		}
		f.Format(ob.Expr)
		if ob.Collation != "" {
			f.write(" ")
			f.writeKeyword("COLLATE")
			f.write(" ")
			f.writeIdent(ob.Collation)
		}
		if ob.Desc {
			f.write(" ")
			f.writeKeyword("DESC")
		}
		if ob.NullsFirst != nil {
			f.write(" ")
			f.writeKeyword("NULLS")
			f.write(" ")
			if *ob.NullsFirst {
				f.writeKeyword("FIRST")
			} else {
				f.writeKeyword("LAST")
			}
		}
	}
}

func (f *Formatter) formatLimit(lim *ast.Limit) {
	if lim == nil || lim.Count == nil {
		return
	}
	f.write(" ")
	f.writeKeyword("LIMIT")
	f.write(" ")
	f.Format(lim.Count)
	if lim.Offset != nil {
		f.write(" ")
		f.writeKeyword("OFFSET")
		f.write(" ")
		f.Format(lim.Offset)
	}
}

func (f *Formatter) formatWithClause(w *ast.WithClause) {
	f.writeKeyword("WITH")
	if w.Recursive {
		f.write(" ")
		f.writeKeyword("RECURSIVE")
	}
	f.write(" ")
	for i, cte := range w.CTEs {
		if i > 0 {
			f.write(", ")
		}
		f.writeIdent(cte.Name)
		if len(cte.Columns) > 0 {
			f.write(" (")
			for j, col := range cte.Columns {
				if j > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" (")
		f.Format(cte.Select)
		f.write(")")
	}
}

func (f *Formatter) formatInsert(s *ast.InsertStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	if s.IsReplace {
		f.writeKeyword("REPLACE")
	} else {
		f.writeKeyword("INSERT")
		if s.Conflict != ast.ConflictNone {
			f.write(" ")
			f.writeKeyword("OR")
			f.write(" ")
			f.writeKeyword(conflictActionKeyword(s.Conflict))
		}
	}

	f.write(" ")
	f.writeKeyword("INTO")
	f.write(" ")
	f.Format(s.Table)
	if s.Alias != "" {
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		f.writeIdent(s.Alias)
	}

	if len(s.Columns) > 0 {
		f.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}

	switch {
	case s.DefaultVals:
		f.write(" ")
		f.writeKeyword("DEFAULT VALUES")
	case s.Select != nil:
		f.write(" ")
		f.Format(s.Select)
	case len(s.Values) > 0:
		f.write(" ")
		f.writeKeyword("VALUES")
		f.write(" ")
		for i, row := range s.Values {
			if i > 0 {
				f.write(", ")
			}
			f.write("(")
			for j, val := range row {
				if j > 0 {
					f.write(", ")
				}
				f.Format(val)
			}
			f.write(")")
		}
	}

	for _, oc := range s.OnConflict {
		f.write(" ")
		f.writeKeyword("ON CONFLICT")
		if len(oc.Target) > 0 {
			f.write(" (")
			for i, ic := range oc.Target {
				if i > 0 {
					f.write(", ")
				}
				f.formatIndexedColumn(ic)
			}
			f.write(")")
		}
		if oc.TargetWhere != nil {
			f.write(" ")
			f.writeKeyword("WHERE")
			f.write(" ")
			f.Format(oc.TargetWhere)
		}
		if oc.Do != nil {
			f.write(" ")
			f.writeKeyword("DO")
			f.write(" ")
			if oc.Do.Nothing {
				f.writeKeyword("NOTHING")
			} else {
				f.writeKeyword("UPDATE SET")
				f.write(" ")
				f.formatUpdateSets(oc.Do.Sets)
				if oc.Do.Where != nil {
					f.write(" ")
					f.writeKeyword("WHERE")
					f.write(" ")
					f.Format(oc.Do.Where)
				}
			}
		}
	}

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatUpdateSets(sets []*ast.UpdateSet) {
	for i, us := range sets {
		if i > 0 {
			f.write(", ")
		}
		f.writeIdent(us.Column)
		f.write(" = ")
		f.Format(us.Value)
	}
}

func (f *Formatter) formatIndexedColumn(ic *ast.IndexedColumn) {
	if ic.Expr != nil {
		f.Format(ic.Expr)
	} else {
		f.writeIdent(ic.Name)
	}
	if ic.Collation != "" {
		f.write(" ")
		f.writeKeyword("COLLATE")
		f.write(" ")
		f.writeIdent(ic.Collation)
	}
	if ic.Desc {
		f.write(" ")
		f.writeKeyword("DESC")
	}
}

func (f *Formatter) formatUpdate(s *ast.UpdateStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.writeKeyword("UPDATE")
	if s.Conflict != ast.ConflictNone {
		f.write(" ")
		f.writeKeyword("OR")
		f.write(" ")
		f.writeKeyword(conflictActionKeyword(s.Conflict))
	}
	f.write(" ")
	f.Format(s.Table)
	if s.IndexHint == ast.IndexedBy {
		f.write(" ")
		f.writeKeyword("INDEXED BY")
		f.write(" ")
		f.writeIdent(s.IndexName)
	} else if s.IndexHint == ast.NotIndexed {
		f.write(" ")
		f.writeKeyword("NOT INDEXED")
	}
	f.write(" ")
	f.writeKeyword("SET")
	f.write(" ")
	f.formatUpdateSets(s.Set)

	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}

	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.formatOrderByList(s.OrderBy)
	}

	f.formatLimit(s.Limit)

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatDelete(s *ast.DeleteStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.writeKeyword("DELETE FROM")
	f.write(" ")
	f.Format(s.Table)
	if s.IndexHint == ast.IndexedBy {
		f.write(" ")
		f.writeKeyword("INDEXED BY")
		f.write(" ")
		f.writeIdent(s.IndexName)
	} else if s.IndexHint == ast.NotIndexed {
		f.write(" ")
		f.writeKeyword("NOT INDEXED")
	}

	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.formatOrderByList(s.OrderBy)
	}

	f.formatLimit(s.Limit)

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatCreateTable(s *ast.CreateTableStmt) {
	f.writeKeyword("CREATE")
	if s.Temp {
		f.write(" ")
		f.writeKeyword("TEMP")
	}
	f.write(" ")
	f.writeKeyword("TABLE")

	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}

	f.write(" ")
	f.Format(s.Table)

	if s.As != nil {
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		f.Format(s.As)
		return
	}

	f.write(" (")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.formatColumnDef(col)
	}
	for i, cons := range s.Constraints {
		if len(s.Columns) > 0 || i > 0 {
			f.write(", ")
		}
		f.formatTableConstraint(cons)
	}
	f.write(")")

	if s.WithoutRowID {
		f.write(" ")
		f.writeKeyword("WITHOUT ROWID")
	}
	if s.Strict {
		if s.WithoutRowID {
			f.write(",")
		}
		f.write(" ")
		f.writeKeyword("STRICT")
	}
}

func (f *Formatter) formatColumnDef(col *ast.ColumnDef) {
	f.writeIdent(col.Name)
	if col.TypeName != "" {
		f.write(" ")
		f.writeKeyword(col.TypeName)
	}

	for _, cons := range col.Constraints {
		f.write(" ")
		f.formatColumnConstraint(cons)
	}
}

func (f *Formatter) formatColumnConstraint(cons *ast.ColumnConstraint) {
	if cons.Name != "" {
		f.writeKeyword("CONSTRAINT")
		f.write(" ")
		f.writeIdent(cons.Name)
		f.write(" ")
	}
	switch cons.Kind {
	case ast.ConstraintPrimaryKey:
		f.writeKeyword("PRIMARY KEY")
		if cons.Asc {
			f.write(" ")
			f.writeKeyword("ASC")
		} else if cons.Desc {
			f.write(" ")
			f.writeKeyword("DESC")
		}
		if cons.AutoIncrement {
			f.write(" ")
			f.writeKeyword("AUTOINCREMENT")
		}
	case ast.ConstraintNotNull:
		f.writeKeyword("NOT NULL")
	case ast.ConstraintUnique:
		f.writeKeyword("UNIQUE")
	case ast.ConstraintDefault:
		f.writeKeyword("DEFAULT")
		f.write(" ")
		f.Format(cons.Expr)
	case ast.ConstraintCheck:
		f.writeKeyword("CHECK")
		f.write(" (")
		f.Format(cons.Expr)
		f.write(")")
	case ast.ConstraintCollate:
		f.writeKeyword("COLLATE")
		f.write(" ")
		f.writeIdent(cons.Collation)
	case ast.ConstraintForeignKey:
		f.formatForeignKeyRef(cons.ForeignKey)
	case ast.ConstraintGenerated:
		f.writeKeyword("GENERATED ALWAYS AS")
		f.write(" (")
		f.Format(cons.Generated.Expr)
		f.write(") ")
		if cons.Generated.Stored {
			f.writeKeyword("STORED")
		} else {
			f.writeKeyword("VIRTUAL")
		}
	}
	if cons.ConflictAction != ast.ConflictNone {
		f.write(" ")
		f.writeKeyword("ON CONFLICT")
		f.write(" ")
		f.writeKeyword(conflictActionKeyword(cons.ConflictAction))
	}
}

func (f *Formatter) formatForeignKeyRef(ref *ast.ForeignKeyRef) {
	f.writeKeyword("REFERENCES")
	f.write(" ")
	f.writeIdent(ref.Table)
	if len(ref.Columns) > 0 {
		f.write(" (")
		for i, col := range ref.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}
	if ref.OnDelete != ast.ActionNone {
		f.write(" ")
		f.writeKeyword("ON DELETE")
		f.write(" ")
		f.writeKeyword(refActionKeyword(ref.OnDelete))
	}
	if ref.OnUpdate != ast.ActionNone {
		f.write(" ")
		f.writeKeyword("ON UPDATE")
		f.write(" ")
		f.writeKeyword(refActionKeyword(ref.OnUpdate))
	}
	if ref.Deferrable {
		f.write(" ")
		f.writeKeyword("DEFERRABLE")
	} else if ref.NotDeferrable {
		f.write(" ")
		f.writeKeyword("NOT DEFERRABLE")
	}
	if ref.InitiallyDeferred != nil {
		f.write(" ")
		f.writeKeyword("INITIALLY")
		f.write(" ")
		if *ref.InitiallyDeferred {
			f.writeKeyword("DEFERRED")
		} else {
			f.writeKeyword("IMMEDIATE")
		}
	}
}

func refActionKeyword(a ast.RefAction) string {
	switch a {
	case ast.ActionSetNull:
		return "SET NULL"
	case ast.ActionSetDefault:
		return "SET DEFAULT"
	case ast.ActionCascade:
		return "CASCADE"
	case ast.ActionRestrict:
		return "RESTRICT"
	case ast.ActionNoAction:
		return "NO ACTION"
	default:
		return ""
	}
}

func conflictActionKeyword(a ast.ConflictAction) string {
	switch a {
	case ast.ConflictRollback:
		return "ROLLBACK"
	case ast.ConflictAbort:
		return "ABORT"
	case ast.ConflictFail:
		return "FAIL"
	case ast.ConflictIgnore:
		return "IGNORE"
	case ast.ConflictReplace:
		return "REPLACE"
	default:
		return ""
	}
}

func (f *Formatter) formatTableConstraint(cons *ast.TableConstraint) {
	if cons.Name != "" {
		f.writeKeyword("CONSTRAINT")
		f.write(" ")
		f.writeIdent(cons.Name)
		f.write(" ")
	}

	switch cons.Kind {
	case ast.TableConstraintPrimaryKey:
		f.writeKeyword("PRIMARY KEY")
		f.write(" (")
		for i, ic := range cons.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.formatIndexedColumn(ic)
		}
		f.write(")")
	case ast.TableConstraintUnique:
		f.writeKeyword("UNIQUE")
		f.write(" (")
		for i, ic := range cons.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.formatIndexedColumn(ic)
		}
		f.write(")")
	case ast.TableConstraintForeignKey:
		f.writeKeyword("FOREIGN KEY")
		f.write(" (")
		for i, col := range cons.ForeignColumns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(") ")
		f.formatForeignKeyRef(cons.ForeignKey)
	case ast.TableConstraintCheck:
		f.writeKeyword("CHECK")
		f.write(" (")
		f.Format(cons.Check)
		f.write(")")
	}
	if cons.ConflictAction != ast.ConflictNone {
		f.write(" ")
		f.writeKeyword("ON CONFLICT")
		f.write(" ")
		f.writeKeyword(conflictActionKeyword(cons.ConflictAction))
	}
}

func (f *Formatter) formatCreateIndex(s *ast.CreateIndexStmt) {
	f.writeKeyword("CREATE")
	if s.Unique {
		f.write(" ")
		f.writeKeyword("UNIQUE")
	}
	f.write(" ")
	f.writeKeyword("INDEX")
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	f.write(" ")
	f.writeIdent(s.Name)
	f.write(" ")
	f.writeKeyword("ON")
	f.write(" ")
	f.Format(s.Table)
	f.write(" (")
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.formatIndexedColumn(col)
	}
	f.write(")")
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}
}

func (f *Formatter) formatCreateView(s *ast.CreateViewStmt) {
	f.writeKeyword("CREATE")
	if s.Temp {
		f.write(" ")
		f.writeKeyword("TEMP")
	}
	f.write(" ")
	f.writeKeyword("VIEW")
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	f.write(" ")
	f.writeIdent(s.Name)
	if len(s.Columns) > 0 {
		f.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}
	f.write(" ")
	f.writeKeyword("AS")
	f.write(" ")
	f.Format(s.Select)
}

func (f *Formatter) formatCreateTrigger(s *ast.CreateTriggerStmt) {
	f.writeKeyword("CREATE")
	if s.Temp {
		f.write(" ")
		f.writeKeyword("TEMP")
	}
	f.write(" ")
	f.writeKeyword("TRIGGER")
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	f.write(" ")
	f.writeIdent(s.Name)
	f.write(" ")
	switch s.Timing {
	case ast.TriggerBefore:
		f.writeKeyword("BEFORE")
		f.write(" ")
	case ast.TriggerAfter:
		f.writeKeyword("AFTER")
		f.write(" ")
	case ast.TriggerInsteadOf:
		f.writeKeyword("INSTEAD OF")
		f.write(" ")
	}
	switch s.Event {
	case ast.TriggerInsert:
		f.writeKeyword("INSERT")
	case ast.TriggerUpdate:
		f.writeKeyword("UPDATE")
		if len(s.UpdateOf) > 0 {
			f.write(" ")
			f.writeKeyword("OF")
			f.write(" ")
			for i, col := range s.UpdateOf {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
		}
	case ast.TriggerDelete:
		f.writeKeyword("DELETE")
	}
	f.write(" ")
	f.writeKeyword("ON")
	f.write(" ")
	f.Format(s.Table)
	if s.ForEachRow {
		f.write(" ")
		f.writeKeyword("FOR EACH ROW")
	}
	if s.When != nil {
		f.write(" ")
		f.writeKeyword("WHEN")
		f.write(" ")
		f.Format(s.When)
	}
	f.write(" ")
	f.writeKeyword("BEGIN")
	f.write(" ")
	for _, stmt := range s.Body {
		f.Format(stmt)
		f.write("; ")
	}
	f.writeKeyword("END")
}

func (f *Formatter) formatCreateVirtualTable(s *ast.CreateVirtualTableStmt) {
	f.writeKeyword("CREATE VIRTUAL TABLE")
	if s.IfNotExists {
		f.write(" ")
		f.writeKeyword("IF NOT EXISTS")
	}
	f.write(" ")
	f.Format(s.Table)
	f.write(" ")
	f.writeKeyword("USING")
	f.write(" ")
	f.write(s.Module)
	if len(s.Args) > 0 {
		f.write("(")
		for i, arg := range s.Args {
			if i > 0 {
				f.write(", ")
			}
			f.write(arg)
		}
		f.write(")")
	}
}

func (f *Formatter) formatAlterTable(s *ast.AlterTableStmt) {
	f.writeKeyword("ALTER TABLE")
	f.write(" ")
	f.Format(s.Table)
	f.write(" ")
	switch a := s.Action.(type) {
	case *ast.RenameTableAction:
		f.writeKeyword("RENAME TO")
		f.write(" ")
		f.writeIdent(a.NewName)
	case *ast.RenameColumnAction:
		f.writeKeyword("RENAME COLUMN")
		f.write(" ")
		f.writeIdent(a.OldName)
		f.write(" ")
		f.writeKeyword("TO")
		f.write(" ")
		f.writeIdent(a.NewName)
	case *ast.AddColumnAction:
		f.writeKeyword("ADD COLUMN")
		f.write(" ")
		f.formatColumnDef(a.Column)
	case *ast.DropColumnAction:
		f.writeKeyword("DROP COLUMN")
		f.write(" ")
		f.writeIdent(a.Name)
	}
}

func (f *Formatter) formatDrop(s *ast.DropStmt) {
	f.writeKeyword("DROP")
	f.write(" ")
	switch s.Kind {
	case ast.DropTableKind:
		f.writeKeyword("TABLE")
	case ast.DropIndexKind:
		f.writeKeyword("INDEX")
	case ast.DropViewKind:
		f.writeKeyword("VIEW")
	case ast.DropTriggerKind:
		f.writeKeyword("TRIGGER")
	}
	if s.IfExists {
		f.write(" ")
		f.writeKeyword("IF EXISTS")
	}
	f.write(" ")
	if s.Schema != "" {
		f.writeIdent(s.Schema)
		f.write(".")
	}
	f.writeIdent(s.Name)
}

func (f *Formatter) formatTransaction(s *ast.TransactionStmt) {
	switch s.Kind {
	case ast.TxBegin:
		f.writeKeyword("BEGIN")
		switch s.Behavior {
		case ast.TxDeferred:
			f.write(" ")
			f.writeKeyword("DEFERRED")
		case ast.TxImmediate:
			f.write(" ")
			f.writeKeyword("IMMEDIATE")
		case ast.TxExclusive:
			f.write(" ")
			f.writeKeyword("EXCLUSIVE")
		}
	case ast.TxCommit:
		f.writeKeyword("COMMIT")
	case ast.TxRollback:
		f.writeKeyword("ROLLBACK")
		if s.SavepointName != "" {
			f.write(" ")
			f.writeKeyword("TO")
			f.write(" ")
			f.writeIdent(s.SavepointName)
		}
	case ast.TxSavepoint:
		f.writeKeyword("SAVEPOINT")
		f.write(" ")
		f.writeIdent(s.SavepointName)
	case ast.TxRelease:
		f.writeKeyword("RELEASE")
		f.write(" ")
		f.writeIdent(s.SavepointName)
	}
}

func (f *Formatter) formatAttach(s *ast.AttachStmt) {
	f.writeKeyword("ATTACH DATABASE")
	f.write(" ")
	f.Format(s.Expr)
	f.write(" ")
	f.writeKeyword("AS")
	f.write(" ")
	f.writeIdent(s.Name)
}

func (f *Formatter) formatDetach(s *ast.DetachStmt) {
	f.writeKeyword("DETACH DATABASE")
	f.write(" ")
	f.writeIdent(s.Name)
}

func (f *Formatter) formatAnalyze(s *ast.AnalyzeStmt) {
	f.writeKeyword("ANALYZE")
	if s.Target != "" {
		f.write(" ")
		f.write(s.Target)
	}
}

func (f *Formatter) formatVacuum(s *ast.VacuumStmt) {
	f.writeKeyword("VACUUM")
	if s.Schema != "" {
		f.write(" ")
		f.writeIdent(s.Schema)
	}
	if s.Into != "" {
		f.write(" ")
		f.writeKeyword("INTO")
		f.write(" ")
		f.formatStringLiteral(s.Into)
	}
}

func (f *Formatter) formatReindex(s *ast.ReindexStmt) {
	f.writeKeyword("REINDEX")
	if s.Target != "" {
		f.write(" ")
		f.write(s.Target)
	}
}

func (f *Formatter) formatExplain(s *ast.ExplainStmt) {
	f.writeKeyword("EXPLAIN")
	if s.QueryPlan {
		f.write(" ")
		f.writeKeyword("QUERY PLAN")
	}
	f.write(" ")
	f.Format(s.Stmt)
}

func (f *Formatter) formatPragma(s *ast.PragmaStmt) {
	f.writeKeyword("PRAGMA")
	f.write(" ")
	if s.Schema != "" {
		f.writeIdent(s.Schema)
		f.write(".")
	}
	f.writeIdent(s.Name)
	if s.HasValue {
		f.write(" = ")
		if s.Expr != nil {
			f.Format(s.Expr)
		} else {
			f.write(s.Value)
		}
	}
}

func (f *Formatter) formatBinaryExpr(e *ast.BinaryExpr) {
	f.Format(e.Left)
	f.write(" ")
	f.write(binaryOpString(e.Op))
	f.write(" ")
	f.Format(e.Right)
}

func binaryOpString(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpConcat:
		return "||"
	case ast.OpEq:
		return "="
	case ast.OpNeq:
		return "<>"
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	case ast.OpLte:
		return "<="
	case ast.OpGte:
		return ">="
	case ast.OpIs:
		return "IS"
	case ast.OpIsNot:
		return "IS NOT"
	case ast.OpAnd:
		return "AND"
	case ast.OpOr:
		return "OR"
	case ast.OpBitAnd:
		return "&"
	case ast.OpBitOr:
		return "|"
	case ast.OpLShift:
		return "<<"
	case ast.OpRShift:
		return ">>"
	case ast.OpJSONArrow:
		return "->"
	case ast.OpJSONArrow2:
		return "->>"
	default:
		return "?"
	}
}

func (f *Formatter) formatUnaryExpr(e *ast.UnaryExpr) {
	switch e.Op {
	case ast.OpNot:
		f.writeKeyword("NOT")
		f.write(" ")
	case ast.OpNeg:
		f.write("-")
		if inner, ok := e.Operand.(*ast.UnaryExpr); ok && inner.Op == ast.OpNeg {
			f.write(" ")
		}
	case ast.OpPos:
		f.write("+")
	case ast.OpBitNot:
		f.write("~")
	}
	f.Format(e.Operand)
}

func (f *Formatter) formatFuncExpr(e *ast.FuncExpr) {
	f.writeFuncName(e.Name)
	f.write("(")
	if e.Distinct {
		f.writeKeyword("DISTINCT")
		f.write(" ")
	}
	if e.Star {
		f.write("*")
	} else {
		for i, arg := range e.Args {
			if i > 0 {
				f.write(", ")
			}
			f.Format(arg)
		}
	}
	f.write(")")
	if e.Filter != nil {
		f.write(" ")
		f.writeKeyword("FILTER")
		f.write(" (")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(e.Filter)
		f.write(")")
	}
	if e.Over != nil {
		f.write(" ")
		f.writeKeyword("OVER")
		f.write(" ")
		if e.Over.Spec != nil {
			f.formatWindowSpecParen(e.Over.Spec)
		} else {
			f.writeIdent(e.Over.Name)
		}
	}
}

func (f *Formatter) formatWindowSpecParen(spec *ast.WindowSpec) {
	f.write("(")
	wroteAny := false
	if spec.BaseName != "" {
		f.writeIdent(spec.BaseName)
		wroteAny = true
	}
	if len(spec.PartitionBy) > 0 {
		if wroteAny {
			f.write(" ")
		}
		f.writeKeyword("PARTITION BY")
		f.write(" ")
		for i, pb := range spec.PartitionBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(pb)
		}
		wroteAny = true
	}
	if len(spec.OrderBy) > 0 {
		if wroteAny {
			f.write(" ")
		}
		f.writeKeyword("ORDER BY")
		f.write(" ")
		f.formatOrderByList(spec.OrderBy)
		wroteAny = true
	}
	if spec.Frame != nil {
		if wroteAny {
			f.write(" ")
		}
		f.formatWindowFrame(spec.Frame)
	}
	f.write(")")
}

func (f *Formatter) formatWindowFrame(frame *ast.WindowFrame) {
	switch frame.Type {
	case ast.FrameRows:
		f.writeKeyword("ROWS")
	case ast.FrameRange:
		f.writeKeyword("RANGE")
	case ast.FrameGroups:
		f.writeKeyword("GROUPS")
	}
	f.write(" ")
	if frame.End != nil {
		f.writeKeyword("BETWEEN")
		f.write(" ")
		f.formatFrameBound(frame.Start)
		f.write(" ")
		f.writeKeyword("AND")
		f.write(" ")
		f.formatFrameBound(frame.End)
	} else {
		f.formatFrameBound(frame.Start)
	}
	switch frame.Exclude {
	case ast.ExcludeNoOthers:
		f.write(" ")
		f.writeKeyword("EXCLUDE NO OTHERS")
	case ast.ExcludeCurrentRow:
		f.write(" ")
		f.writeKeyword("EXCLUDE CURRENT ROW")
	case ast.ExcludeGroup:
		f.write(" ")
		f.writeKeyword("EXCLUDE GROUP")
	case ast.ExcludeTies:
		f.write(" ")
		f.writeKeyword("EXCLUDE TIES")
	}
}

func (f *Formatter) formatFrameBound(bound *ast.FrameBound) {
	switch bound.Type {
	case ast.BoundCurrentRow:
		f.writeKeyword("CURRENT ROW")
	case ast.BoundUnboundedPreceding:
		f.writeKeyword("UNBOUNDED PRECEDING")
	case ast.BoundUnboundedFollowing:
		f.writeKeyword("UNBOUNDED FOLLOWING")
	case ast.BoundPreceding:
		f.Format(bound.Offset)
		f.write(" ")
		f.writeKeyword("PRECEDING")
	case ast.BoundFollowing:
		f.Format(bound.Offset)
		f.write(" ")
		f.writeKeyword("FOLLOWING")
	}
}

func (f *Formatter) formatCaseExpr(e *ast.CaseExpr) {
	f.writeKeyword("CASE")
	if e.Operand != nil {
		f.write(" ")
		f.Format(e.Operand)
	}
	for _, w := range e.Whens {
		f.write(" ")
		f.writeKeyword("WHEN")
		f.write(" ")
		f.Format(w.Cond)
		f.write(" ")
		f.writeKeyword("THEN")
		f.write(" ")
		f.Format(w.Result)
	}
	if e.Else != nil {
		f.write(" ")
		f.writeKeyword("ELSE")
		f.write(" ")
		f.Format(e.Else)
	}
	f.write(" ")
	f.writeKeyword("END")
}

func (f *Formatter) formatCastExpr(e *ast.CastExpr) {
	f.writeKeyword("CAST")
	f.write("(")
	f.Format(e.Expr)
	f.write(" ")
	f.writeKeyword("AS")
	f.write(" ")
	f.writeKeyword(e.TypeName)
	f.write(")")
}

func (f *Formatter) formatQualifiedIdentifier(q *ast.QualifiedIdentifier) {
	for i, part := range q.Parts {
		if i > 0 {
			f.write(".")
		}
		f.writeIdent(part)
	}
}

func (f *Formatter) formatTableName(t *ast.TableName) {
	if t.Schema != "" {
		f.writeIdent(t.Schema)
		f.write(".")
	}
	f.writeIdent(t.Table)
}

func (f *Formatter) formatStringLiteral(s string) {
	f.write("'")
	escaped := strings.ReplaceAll(s, "'", "''")
	f.write(escaped)
	f.write("'")
}

func (f *Formatter) formatParam(p *ast.Param) {
	switch {
	case p.Number > 0:
		f.write("?")
		f.write(itoa(p.Number))
	case p.Name != "":
		f.write(p.Raw)
	default:
		f.write("?")
	}
}

func (f *Formatter) formatAliasedTableExpr(a *ast.AliasedTableExpr) {
	f.Format(a.Expr)
	if a.Alias != "" {
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		f.writeIdent(a.Alias)
	}
	switch a.IndexHint {
	case ast.IndexedBy:
		f.write(" ")
		f.writeKeyword("INDEXED BY")
		f.write(" ")
		f.writeIdent(a.IndexName)
	case ast.NotIndexed:
		f.write(" ")
		f.writeKeyword("NOT INDEXED")
	}
}

func (f *Formatter) formatJoinExpr(j *ast.JoinExpr) {
	f.Format(j.Left)
	f.write(" ")
	if j.Type == ast.JoinComma {
		f.write(", ")
		f.Format(j.Right)
		return
	}
	if j.Natural {
		f.writeKeyword("NATURAL")
		f.write(" ")
	}
	switch j.Type {
	case ast.JoinInner:
		f.writeKeyword("JOIN")
	case ast.JoinLeft:
		f.writeKeyword("LEFT")
		if j.Outer {
			f.write(" ")
			f.writeKeyword("OUTER")
		}
		f.write(" ")
		f.writeKeyword("JOIN")
	case ast.JoinRight:
		f.writeKeyword("RIGHT")
		if j.Outer {
			f.write(" ")
			f.writeKeyword("OUTER")
		}
		f.write(" ")
		f.writeKeyword("JOIN")
	case ast.JoinFull:
		f.writeKeyword("FULL")
		if j.Outer {
			f.write(" ")
			f.writeKeyword("OUTER")
		}
		f.write(" ")
		f.writeKeyword("JOIN")
	case ast.JoinCross:
		f.writeKeyword("CROSS JOIN")
	}
	f.write(" ")
	f.Format(j.Right)
	if j.On != nil {
		f.write(" ")
		f.writeKeyword("ON")
		f.write(" ")
		f.Format(j.On)
	}
	if len(j.Using) > 0 {
		f.write(" ")
		f.writeKeyword("USING")
		f.write(" (")
		for i, col := range j.Using {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}
}

func (f *Formatter) formatInExpr(e *ast.InExpr) {
	f.Format(e.Expr)
	if e.Negated {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	f.writeKeyword("IN")
	f.write(" (")
	if e.Select != nil {
		f.Format(e.Select.Select)
	} else {
		for i, val := range e.Values {
			if i > 0 {
				f.write(", ")
			}
			f.Format(val)
		}
	}
	f.write(")")
}

func (f *Formatter) formatBetweenExpr(e *ast.BetweenExpr) {
	f.Format(e.Expr)
	if e.Negated {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	f.writeKeyword("BETWEEN")
	f.write(" ")
	f.Format(e.Low)
	f.write(" ")
	f.writeKeyword("AND")
	f.write(" ")
	f.Format(e.High)
}

func (f *Formatter) formatLikeExpr(e *ast.LikeExpr) {
	f.Format(e.Expr)
	if e.Negated {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	f.writeKeyword(e.Kind.String())
	f.write(" ")
	f.Format(e.Pattern)
	if e.Escape != nil {
		f.write(" ")
		f.writeKeyword("ESCAPE")
		f.write(" ")
		f.Format(e.Escape)
	}
}

func (f *Formatter) formatExistsExpr(e *ast.ExistsExpr) {
	if e.Negated {
		f.writeKeyword("NOT")
		f.write(" ")
	}
	f.writeKeyword("EXISTS")
	f.write(" ")
	f.write("(")
	f.Format(e.Subquery.Select)
	f.write(")")
}

func (f *Formatter) formatRaiseExpr(e *ast.RaiseExpr) {
	f.writeKeyword("RAISE")
	f.write("(")
	switch e.Kind {
	case ast.RaiseIgnore:
		f.writeKeyword("IGNORE")
	case ast.RaiseRollback:
		f.writeKeyword("ROLLBACK")
		f.write(", ")
		f.formatStringLiteral(e.Message)
	case ast.RaiseAbort:
		f.writeKeyword("ABORT")
		f.write(", ")
		f.formatStringLiteral(e.Message)
	case ast.RaiseFail:
		f.writeKeyword("FAIL")
		f.write(", ")
		f.formatStringLiteral(e.Message)
	}
	f.write(")")
}

func needsQuoting(id string) bool {
	if needsQuotingNonKeyword(id) {
		return true
	}
	return token.Lookup(id).IsKeyword()
}

// needsQuotingNonKeyword checks if an identifier needs quoting for non-keyword
// reasons (empty, special characters, etc.)
func needsQuotingNonKeyword(id string) bool {
	if len(id) == 0 {
		return true
	}
	ch := id[0]
	if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_') {
		return true
	}
	for i := 1; i < len(id); i++ {
		ch := id[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' || ch == '$') {
			return true
		}
	}
	return false
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
