package visitor

import "github.com/jaymd96/sqlite-ast-parser/ast"

// ApplyFunc is called for each node during a Rewrite pass. It returns the
// node that should take the original's place; returning the same node
// leaves the tree unchanged.
type ApplyFunc func(ast.Node) ast.Node

// Rewrite rewrites node's children post-order (children first, then
// node itself) and returns the possibly-replaced node.
func Rewrite(node ast.Node, fn ApplyFunc) ast.Node {
	if node == nil {
		return nil
	}
	rewriteChildren(node, fn)
	return fn(node)
}

// RewriteExpr is a convenience wrapper for rewriting a single expression
// and getting back a properly-typed ast.Expr.
func RewriteExpr(expr ast.Expr, fn ApplyFunc) ast.Expr {
	if expr == nil {
		return nil
	}
	out := Rewrite(expr, fn)
	if out == nil {
		return nil
	}
	e, _ := out.(ast.Expr)
	return e
}

func rewriteExprField(e ast.Expr, fn ApplyFunc) ast.Expr {
	if e == nil {
		return nil
	}
	return RewriteExpr(e, fn)
}

func rewriteTableName(t *ast.TableName, fn ApplyFunc) *ast.TableName {
	if t == nil {
		return nil
	}
	out := Rewrite(t, fn)
	if out == nil {
		return nil
	}
	result, _ := out.(*ast.TableName)
	return result
}

func rewriteChildren(node ast.Node, fn ApplyFunc) {
	switch n := node.(type) {

	case *ast.SelectStmt:
		if n.With != nil {
			rewriteWithClause(n.With, fn)
		}
		rewriteSelectCore(n.Core, fn)
		for _, term := range n.Compound {
			rewriteSelectCore(term.Core, fn)
		}
		for _, ob := range n.OrderBy {
			ob.Expr = rewriteExprField(ob.Expr, fn)
		}
		rewriteLimit(n.Limit, fn)

	case *ast.InsertStmt:
		if n.With != nil {
			rewriteWithClause(n.With, fn)
		}
		n.Table = rewriteTableName(n.Table, fn)
		for _, row := range n.Values {
			for i, val := range row {
				row[i] = rewriteExprField(val, fn)
			}
		}
		if n.Select != nil {
			if out := Rewrite(n.Select, fn); out != nil {
				n.Select, _ = out.(*ast.SelectStmt)
			}
		}
		for _, oc := range n.OnConflict {
			rewriteOnConflict(oc, fn)
		}
		for i, se := range n.Returning {
			n.Returning[i] = rewriteSelectExpr(se, fn)
		}

	case *ast.UpdateStmt:
		if n.With != nil {
			rewriteWithClause(n.With, fn)
		}
		n.Table = rewriteTableName(n.Table, fn)
		for _, us := range n.Set {
			us.Value = rewriteExprField(us.Value, fn)
		}
		if n.From != nil {
			if out := Rewrite(n.From, fn); out != nil {
				n.From, _ = out.(ast.TableExpr)
			}
		}
		n.Where = rewriteExprField(n.Where, fn)
		for _, ob := range n.OrderBy {
			ob.Expr = rewriteExprField(ob.Expr, fn)
		}
		rewriteLimit(n.Limit, fn)
		for i, se := range n.Returning {
			n.Returning[i] = rewriteSelectExpr(se, fn)
		}

	case *ast.DeleteStmt:
		if n.With != nil {
			rewriteWithClause(n.With, fn)
		}
		n.Table = rewriteTableName(n.Table, fn)
		n.Where = rewriteExprField(n.Where, fn)
		for _, ob := range n.OrderBy {
			ob.Expr = rewriteExprField(ob.Expr, fn)
		}
		rewriteLimit(n.Limit, fn)
		for i, se := range n.Returning {
			n.Returning[i] = rewriteSelectExpr(se, fn)
		}

	case *ast.CreateTableStmt:
		n.Table = rewriteTableName(n.Table, fn)
		if n.As != nil {
			if out := Rewrite(n.As, fn); out != nil {
				n.As, _ = out.(*ast.SelectStmt)
			}
		}
		for _, col := range n.Columns {
			rewriteColumnDef(col, fn)
		}
		for _, cons := range n.Constraints {
			rewriteTableConstraint(cons, fn)
		}

	case *ast.CreateIndexStmt:
		n.Table = rewriteTableName(n.Table, fn)
		for _, ic := range n.Columns {
			rewriteIndexedColumn(ic, fn)
		}
		n.Where = rewriteExprField(n.Where, fn)

	case *ast.CreateViewStmt:
		if n.Select != nil {
			if out := Rewrite(n.Select, fn); out != nil {
				n.Select, _ = out.(*ast.SelectStmt)
			}
		}

	case *ast.CreateTriggerStmt:
		n.Table = rewriteTableName(n.Table, fn)
		n.When = rewriteExprField(n.When, fn)
		for i, stmt := range n.Body {
			if out := Rewrite(stmt, fn); out != nil {
				n.Body[i], _ = out.(ast.Statement)
			}
		}

	case *ast.AlterTableStmt:
		n.Table = rewriteTableName(n.Table, fn)
		switch action := n.Action.(type) {
		case *ast.AddColumnAction:
			rewriteColumnDef(action.Column, fn)
		}

	case *ast.CreateVirtualTableStmt:
		n.Table = rewriteTableName(n.Table, fn)

	case *ast.ExplainStmt:
		if n.Stmt != nil {
			if out := Rewrite(n.Stmt, fn); out != nil {
				n.Stmt, _ = out.(ast.Statement)
			}
		}

	case *ast.PragmaStmt:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.AttachStmt:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.BinaryExpr:
		n.Left = rewriteExprField(n.Left, fn)
		n.Right = rewriteExprField(n.Right, fn)

	case *ast.UnaryExpr:
		n.Operand = rewriteExprField(n.Operand, fn)

	case *ast.ParenExpr:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.FuncExpr:
		for i, arg := range n.Args {
			n.Args[i] = rewriteExprField(arg, fn)
		}
		n.Filter = rewriteExprField(n.Filter, fn)
		if n.Over != nil && n.Over.Spec != nil {
			rewriteWindowSpec(n.Over.Spec, fn)
		}

	case *ast.CaseExpr:
		n.Operand = rewriteExprField(n.Operand, fn)
		for _, w := range n.Whens {
			w.Cond = rewriteExprField(w.Cond, fn)
			w.Result = rewriteExprField(w.Result, fn)
		}
		n.Else = rewriteExprField(n.Else, fn)

	case *ast.InExpr:
		n.Expr = rewriteExprField(n.Expr, fn)
		for i, val := range n.Values {
			n.Values[i] = rewriteExprField(val, fn)
		}
		if n.Select != nil {
			if out := Rewrite(n.Select, fn); out != nil {
				n.Select, _ = out.(*ast.Subquery)
			}
		}

	case *ast.BetweenExpr:
		n.Expr = rewriteExprField(n.Expr, fn)
		n.Low = rewriteExprField(n.Low, fn)
		n.High = rewriteExprField(n.High, fn)

	case *ast.LikeExpr:
		n.Expr = rewriteExprField(n.Expr, fn)
		n.Pattern = rewriteExprField(n.Pattern, fn)
		n.Escape = rewriteExprField(n.Escape, fn)

	case *ast.CastExpr:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.CollateExpr:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.Subquery:
		if n.Select != nil {
			if out := Rewrite(n.Select, fn); out != nil {
				n.Select, _ = out.(*ast.SelectStmt)
			}
		}

	case *ast.ExistsExpr:
		if n.Subquery != nil {
			if out := Rewrite(n.Subquery, fn); out != nil {
				n.Subquery, _ = out.(*ast.Subquery)
			}
		}

	case *ast.AliasedExpr:
		n.Expr = rewriteExprField(n.Expr, fn)

	case *ast.AliasedTableExpr:
		if out := Rewrite(n.Expr, fn); out != nil {
			n.Expr, _ = out.(ast.TableExpr)
		}

	case *ast.JoinExpr:
		if out := Rewrite(n.Left, fn); out != nil {
			n.Left, _ = out.(ast.TableExpr)
		}
		if out := Rewrite(n.Right, fn); out != nil {
			n.Right, _ = out.(ast.TableExpr)
		}
		n.On = rewriteExprField(n.On, fn)

	case *ast.ParenTableExpr:
		if out := Rewrite(n.Expr, fn); out != nil {
			n.Expr, _ = out.(ast.TableExpr)
		}

	case *ast.SubqueryTableExpr:
		if n.Select != nil {
			if out := Rewrite(n.Select, fn); out != nil {
				n.Select, _ = out.(*ast.SelectStmt)
			}
		}
	}
}

func rewriteSelectExpr(se ast.SelectExpr, fn ApplyFunc) ast.SelectExpr {
	if se == nil {
		return nil
	}
	out := Rewrite(se, fn)
	if out == nil {
		return nil
	}
	result, _ := out.(ast.SelectExpr)
	return result
}

func rewriteWithClause(with *ast.WithClause, fn ApplyFunc) {
	for _, cte := range with.CTEs {
		if cte.Select != nil {
			if out := Rewrite(cte.Select, fn); out != nil {
				cte.Select, _ = out.(*ast.SelectStmt)
			}
		}
	}
}

func rewriteSelectCore(core *ast.SelectCore, fn ApplyFunc) {
	if core == nil {
		return
	}
	for i, col := range core.Columns {
		core.Columns[i] = rewriteSelectExpr(col, fn)
	}
	if core.From != nil {
		if out := Rewrite(core.From, fn); out != nil {
			core.From, _ = out.(ast.TableExpr)
		}
	}
	core.Where = rewriteExprField(core.Where, fn)
	for i, expr := range core.GroupBy {
		core.GroupBy[i] = rewriteExprField(expr, fn)
	}
	core.Having = rewriteExprField(core.Having, fn)
	for _, wd := range core.Windows {
		if wd.Spec != nil {
			rewriteWindowSpec(wd.Spec, fn)
		}
	}
}

func rewriteWindowSpec(spec *ast.WindowSpec, fn ApplyFunc) {
	for i, pb := range spec.PartitionBy {
		spec.PartitionBy[i] = rewriteExprField(pb, fn)
	}
	for _, ob := range spec.OrderBy {
		ob.Expr = rewriteExprField(ob.Expr, fn)
	}
	if spec.Frame != nil {
		if spec.Frame.Start != nil {
			spec.Frame.Start.Offset = rewriteExprField(spec.Frame.Start.Offset, fn)
		}
		if spec.Frame.End != nil {
			spec.Frame.End.Offset = rewriteExprField(spec.Frame.End.Offset, fn)
		}
	}
}

func rewriteLimit(lim *ast.Limit, fn ApplyFunc) {
	if lim == nil {
		return
	}
	lim.Count = rewriteExprField(lim.Count, fn)
	lim.Offset = rewriteExprField(lim.Offset, fn)
}

func rewriteOnConflict(oc *ast.OnConflictClause, fn ApplyFunc) {
	for _, ic := range oc.Target {
		rewriteIndexedColumn(ic, fn)
	}
	oc.TargetWhere = rewriteExprField(oc.TargetWhere, fn)
	if oc.Do == nil {
		return
	}
	for _, us := range oc.Do.Sets {
		us.Value = rewriteExprField(us.Value, fn)
	}
	oc.Do.Where = rewriteExprField(oc.Do.Where, fn)
}

func rewriteIndexedColumn(ic *ast.IndexedColumn, fn ApplyFunc) {
	ic.Expr = rewriteExprField(ic.Expr, fn)
}

func rewriteColumnDef(col *ast.ColumnDef, fn ApplyFunc) {
	for _, cons := range col.Constraints {
		cons.Expr = rewriteExprField(cons.Expr, fn)
		if cons.Generated != nil {
			cons.Generated.Expr = rewriteExprField(cons.Generated.Expr, fn)
		}
	}
}

func rewriteTableConstraint(cons *ast.TableConstraint, fn ApplyFunc) {
	for _, ic := range cons.Columns {
		rewriteIndexedColumn(ic, fn)
	}
	cons.Check = rewriteExprField(cons.Check, fn)
}
