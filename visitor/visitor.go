// Package visitor provides depth-first traversal and rewriting of the
// package ast tree produced by package parser.
package visitor

import "github.com/jaymd96/sqlite-ast-parser/ast"

// Visitor is the interface for AST traversal. Visit is called with each
// node; the returned Visitor is used to visit that node's children (nil
// skips them).
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node ast.Node) {
	if node == nil || isNilNode(node) {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {

	case *ast.SelectStmt:
		if n.With != nil {
			walkWithClause(v, n.With)
		}
		walkSelectCore(v, n.Core)
		for _, term := range n.Compound {
			walkSelectCore(v, term.Core)
		}
		for _, ob := range n.OrderBy {
			Walk(v, ob.Expr)
		}
		walkLimit(v, n.Limit)

	case *ast.InsertStmt:
		if n.With != nil {
			walkWithClause(v, n.With)
		}
		Walk(v, n.Table)
		for _, row := range n.Values {
			for _, val := range row {
				Walk(v, val)
			}
		}
		if n.Select != nil {
			Walk(v, n.Select)
		}
		for _, oc := range n.OnConflict {
			walkOnConflict(v, oc)
		}
		for _, se := range n.Returning {
			Walk(v, se)
		}

	case *ast.UpdateStmt:
		if n.With != nil {
			walkWithClause(v, n.With)
		}
		Walk(v, n.Table)
		for _, us := range n.Set {
			Walk(v, us.Value)
		}
		if n.From != nil {
			Walk(v, n.From)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
		for _, ob := range n.OrderBy {
			Walk(v, ob.Expr)
		}
		walkLimit(v, n.Limit)
		for _, se := range n.Returning {
			Walk(v, se)
		}

	case *ast.DeleteStmt:
		if n.With != nil {
			walkWithClause(v, n.With)
		}
		Walk(v, n.Table)
		if n.Where != nil {
			Walk(v, n.Where)
		}
		for _, ob := range n.OrderBy {
			Walk(v, ob.Expr)
		}
		walkLimit(v, n.Limit)
		for _, se := range n.Returning {
			Walk(v, se)
		}

	case *ast.CreateTableStmt:
		Walk(v, n.Table)
		if n.As != nil {
			Walk(v, n.As)
		}
		for _, col := range n.Columns {
			walkColumnDef(v, col)
		}
		for _, cons := range n.Constraints {
			walkTableConstraint(v, cons)
		}

	case *ast.CreateIndexStmt:
		Walk(v, n.Table)
		for _, ic := range n.Columns {
			walkIndexedColumn(v, ic)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}

	case *ast.CreateViewStmt:
		if n.Select != nil {
			Walk(v, n.Select)
		}

	case *ast.CreateTriggerStmt:
		Walk(v, n.Table)
		if n.When != nil {
			Walk(v, n.When)
		}
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *ast.CreateVirtualTableStmt:
		Walk(v, n.Table)

	case *ast.AlterTableStmt:
		Walk(v, n.Table)
		switch action := n.Action.(type) {
		case *ast.AddColumnAction:
			walkColumnDef(v, action.Column)
		}

	case *ast.DropStmt:
		// Name/Schema are plain strings, nothing to walk.

	case *ast.TransactionStmt, *ast.AttachStmt, *ast.DetachStmt,
		*ast.AnalyzeStmt, *ast.VacuumStmt, *ast.ReindexStmt:
		if at, ok := node.(*ast.AttachStmt); ok {
			Walk(v, at.Expr)
		}

	case *ast.ExplainStmt:
		Walk(v, n.Stmt)

	case *ast.PragmaStmt:
		if n.Expr != nil {
			Walk(v, n.Expr)
		}

	case *ast.BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ast.UnaryExpr:
		Walk(v, n.Operand)

	case *ast.ParenExpr:
		Walk(v, n.Expr)

	case *ast.FuncExpr:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
		if n.Filter != nil {
			Walk(v, n.Filter)
		}
		if n.Over != nil && n.Over.Spec != nil {
			walkWindowSpec(v, n.Over.Spec)
		}

	case *ast.CaseExpr:
		if n.Operand != nil {
			Walk(v, n.Operand)
		}
		for _, w := range n.Whens {
			Walk(v, w.Cond)
			Walk(v, w.Result)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *ast.InExpr:
		Walk(v, n.Expr)
		for _, val := range n.Values {
			Walk(v, val)
		}
		if n.Select != nil {
			Walk(v, n.Select)
		}

	case *ast.BetweenExpr:
		Walk(v, n.Expr)
		Walk(v, n.Low)
		Walk(v, n.High)

	case *ast.LikeExpr:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)
		if n.Escape != nil {
			Walk(v, n.Escape)
		}

	case *ast.CastExpr:
		Walk(v, n.Expr)

	case *ast.CollateExpr:
		Walk(v, n.Expr)

	case *ast.Subquery:
		if n.Select != nil {
			Walk(v, n.Select)
		}

	case *ast.ExistsExpr:
		if n.Subquery != nil {
			Walk(v, n.Subquery)
		}

	case *ast.AliasedExpr:
		Walk(v, n.Expr)

	case *ast.AliasedTableExpr:
		Walk(v, n.Expr)

	case *ast.JoinExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
		if n.On != nil {
			Walk(v, n.On)
		}

	case *ast.ParenTableExpr:
		Walk(v, n.Expr)

	case *ast.SubqueryTableExpr:
		if n.Select != nil {
			Walk(v, n.Select)
		}

	case *ast.NumericLiteral, *ast.StringLiteral, *ast.BlobLiteral,
		*ast.NullLiteral, *ast.BoolLiteral, *ast.CurrentTimeExpr,
		*ast.Identifier, *ast.QualifiedIdentifier, *ast.Param,
		*ast.StarExpr, *ast.RaiseExpr, *ast.TableName:
		// Leaf nodes - nothing further to walk.
	}
}

func walkWithClause(v Visitor, with *ast.WithClause) {
	for _, cte := range with.CTEs {
		if cte.Select != nil {
			Walk(v, cte.Select)
		}
	}
}

func walkSelectCore(v Visitor, core *ast.SelectCore) {
	if core == nil {
		return
	}
	for _, col := range core.Columns {
		Walk(v, col)
	}
	if core.From != nil {
		Walk(v, core.From)
	}
	if core.Where != nil {
		Walk(v, core.Where)
	}
	for _, expr := range core.GroupBy {
		Walk(v, expr)
	}
	if core.Having != nil {
		Walk(v, core.Having)
	}
	for _, wd := range core.Windows {
		if wd.Spec != nil {
			walkWindowSpec(v, wd.Spec)
		}
	}
}

func walkWindowSpec(v Visitor, spec *ast.WindowSpec) {
	for _, pb := range spec.PartitionBy {
		Walk(v, pb)
	}
	for _, ob := range spec.OrderBy {
		Walk(v, ob.Expr)
	}
	if spec.Frame != nil {
		if spec.Frame.Start != nil && spec.Frame.Start.Offset != nil {
			Walk(v, spec.Frame.Start.Offset)
		}
		if spec.Frame.End != nil && spec.Frame.End.Offset != nil {
			Walk(v, spec.Frame.End.Offset)
		}
	}
}

func walkLimit(v Visitor, lim *ast.Limit) {
	if lim == nil {
		return
	}
	if lim.Count != nil {
		Walk(v, lim.Count)
	}
	if lim.Offset != nil {
		Walk(v, lim.Offset)
	}
}

func walkOnConflict(v Visitor, oc *ast.OnConflictClause) {
	for _, ic := range oc.Target {
		walkIndexedColumn(v, ic)
	}
	if oc.TargetWhere != nil {
		Walk(v, oc.TargetWhere)
	}
	if oc.Do == nil {
		return
	}
	for _, us := range oc.Do.Sets {
		Walk(v, us.Value)
	}
	if oc.Do.Where != nil {
		Walk(v, oc.Do.Where)
	}
}

func walkIndexedColumn(v Visitor, ic *ast.IndexedColumn) {
	if ic.Expr != nil {
		Walk(v, ic.Expr)
	}
}

func walkColumnDef(v Visitor, col *ast.ColumnDef) {
	for _, cons := range col.Constraints {
		if cons.Expr != nil {
			Walk(v, cons.Expr)
		}
		if cons.Generated != nil && cons.Generated.Expr != nil {
			Walk(v, cons.Generated.Expr)
		}
	}
}

func walkTableConstraint(v Visitor, cons *ast.TableConstraint) {
	for _, ic := range cons.Columns {
		walkIndexedColumn(v, ic)
	}
	if cons.Check != nil {
		Walk(v, cons.Check)
	}
}

// isNilNode reports whether node wraps a typed nil pointer, which Walk
// otherwise cannot distinguish from a genuinely absent child.
func isNilNode(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.SelectStmt:
		return n == nil
	case *ast.InsertStmt:
		return n == nil
	case *ast.UpdateStmt:
		return n == nil
	case *ast.DeleteStmt:
		return n == nil
	default:
		return false
	}
}

// WalkFunc is a convenience wrapper that calls fn for each node; returning
// false from fn skips that node's children.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(&funcVisitor{fn: fn}, node)
}

type funcVisitor struct {
	fn func(ast.Node) bool
}

func (v *funcVisitor) Visit(node ast.Node) Visitor {
	if v.fn(node) {
		return v
	}
	return nil
}

// Inspect calls f for each node in the AST, depth-first. If f returns
// false, that node's children are not visited.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	WalkFunc(node, f)
}
