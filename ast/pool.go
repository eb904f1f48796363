package ast

import (
	"reflect"
	"sync"
)

// isNil reports whether a Node interface value holds a nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Slice pools for the node-list shapes that recur across every statement kind.
var (
	selectExprSlicePool = sync.Pool{
		New: func() any {
			s := make([]SelectExpr, 0, 8)
			return &s
		},
	}
	exprSlicePool = sync.Pool{
		New: func() any {
			s := make([]Expr, 0, 4)
			return &s
		},
	}
	orderBySlicePool = sync.Pool{
		New: func() any {
			s := make([]*OrderByExpr, 0, 4)
			return &s
		},
	}
)

// GetSelectExprSlice returns a []SelectExpr from the pool.
func GetSelectExprSlice() *[]SelectExpr {
	return selectExprSlicePool.Get().(*[]SelectExpr)
}

// ReleaseSelectExprSlice returns a []SelectExpr to the pool.
func ReleaseSelectExprSlice(s *[]SelectExpr) {
	*s = (*s)[:0]
	selectExprSlicePool.Put(s)
}

// GetExprSlice returns a []Expr from the pool.
func GetExprSlice() *[]Expr {
	return exprSlicePool.Get().(*[]Expr)
}

// ReleaseExprSlice returns a []Expr to the pool.
func ReleaseExprSlice(s *[]Expr) {
	*s = (*s)[:0]
	exprSlicePool.Put(s)
}

// GetOrderBySlice returns a []*OrderByExpr from the pool.
func GetOrderBySlice() *[]*OrderByExpr {
	return orderBySlicePool.Get().(*[]*OrderByExpr)
}

// ReleaseOrderBySlice returns a []*OrderByExpr to the pool.
func ReleaseOrderBySlice(s *[]*OrderByExpr) {
	*s = (*s)[:0]
	orderBySlicePool.Put(s)
}

// Node pools for the highest-churn node types during parsing.
var (
	identifierPool = sync.Pool{
		New: func() any { return &Identifier{} },
	}
	qualifiedIdentifierPool = sync.Pool{
		New: func() any { return &QualifiedIdentifier{} },
	}
	numericLiteralPool = sync.Pool{
		New: func() any { return &NumericLiteral{} },
	}
	stringLiteralPool = sync.Pool{
		New: func() any { return &StringLiteral{} },
	}
	binaryExprPool = sync.Pool{
		New: func() any { return &BinaryExpr{} },
	}
	unaryExprPool = sync.Pool{
		New: func() any { return &UnaryExpr{} },
	}
	funcExprPool = sync.Pool{
		New: func() any { return &FuncExpr{} },
	}
	aliasedExprPool = sync.Pool{
		New: func() any { return &AliasedExpr{} },
	}
	selectCorePool = sync.Pool{
		New: func() any { return &SelectCore{} },
	}
	selectStmtPool = sync.Pool{
		New: func() any { return &SelectStmt{} },
	}
	tableNamePool = sync.Pool{
		New: func() any { return &TableName{} },
	}
	orderByExprPool = sync.Pool{
		New: func() any { return &OrderByExpr{} },
	}
	aliasedTableExprPool = sync.Pool{
		New: func() any { return &AliasedTableExpr{} },
	}
	joinExprPool = sync.Pool{
		New: func() any { return &JoinExpr{} },
	}
)

// GetIdentifier returns an Identifier from the pool.
func GetIdentifier() *Identifier { return identifierPool.Get().(*Identifier) }

// ReleaseIdentifier returns an Identifier to the pool.
func ReleaseIdentifier(n *Identifier) {
	*n = Identifier{}
	identifierPool.Put(n)
}

// GetQualifiedIdentifier returns a QualifiedIdentifier from the pool.
func GetQualifiedIdentifier() *QualifiedIdentifier {
	return qualifiedIdentifierPool.Get().(*QualifiedIdentifier)
}

// ReleaseQualifiedIdentifier returns a QualifiedIdentifier to the pool.
func ReleaseQualifiedIdentifier(n *QualifiedIdentifier) {
	*n = QualifiedIdentifier{}
	qualifiedIdentifierPool.Put(n)
}

// GetNumericLiteral returns a NumericLiteral from the pool.
func GetNumericLiteral() *NumericLiteral { return numericLiteralPool.Get().(*NumericLiteral) }

// ReleaseNumericLiteral returns a NumericLiteral to the pool.
func ReleaseNumericLiteral(n *NumericLiteral) {
	*n = NumericLiteral{}
	numericLiteralPool.Put(n)
}

// GetStringLiteral returns a StringLiteral from the pool.
func GetStringLiteral() *StringLiteral { return stringLiteralPool.Get().(*StringLiteral) }

// ReleaseStringLiteral returns a StringLiteral to the pool.
func ReleaseStringLiteral(n *StringLiteral) {
	*n = StringLiteral{}
	stringLiteralPool.Put(n)
}

// GetBinaryExpr returns a BinaryExpr from the pool.
func GetBinaryExpr() *BinaryExpr { return binaryExprPool.Get().(*BinaryExpr) }

// ReleaseBinaryExpr returns a BinaryExpr to the pool.
func ReleaseBinaryExpr(n *BinaryExpr) {
	*n = BinaryExpr{}
	binaryExprPool.Put(n)
}

// GetUnaryExpr returns a UnaryExpr from the pool.
func GetUnaryExpr() *UnaryExpr { return unaryExprPool.Get().(*UnaryExpr) }

// ReleaseUnaryExpr returns a UnaryExpr to the pool.
func ReleaseUnaryExpr(n *UnaryExpr) {
	*n = UnaryExpr{}
	unaryExprPool.Put(n)
}

// GetFuncExpr returns a FuncExpr from the pool.
func GetFuncExpr() *FuncExpr { return funcExprPool.Get().(*FuncExpr) }

// ReleaseFuncExpr returns a FuncExpr to the pool.
func ReleaseFuncExpr(n *FuncExpr) {
	*n = FuncExpr{}
	funcExprPool.Put(n)
}

// GetAliasedExpr returns an AliasedExpr from the pool.
func GetAliasedExpr() *AliasedExpr { return aliasedExprPool.Get().(*AliasedExpr) }

// ReleaseAliasedExpr returns an AliasedExpr to the pool.
func ReleaseAliasedExpr(n *AliasedExpr) {
	*n = AliasedExpr{}
	aliasedExprPool.Put(n)
}

// GetSelectCore returns a SelectCore from the pool.
func GetSelectCore() *SelectCore { return selectCorePool.Get().(*SelectCore) }

// ReleaseSelectCore returns a SelectCore to the pool.
func ReleaseSelectCore(n *SelectCore) {
	*n = SelectCore{}
	selectCorePool.Put(n)
}

// GetSelectStmt returns a SelectStmt from the pool.
func GetSelectStmt() *SelectStmt { return selectStmtPool.Get().(*SelectStmt) }

// ReleaseSelectStmt returns a SelectStmt to the pool.
func ReleaseSelectStmt(n *SelectStmt) {
	*n = SelectStmt{}
	selectStmtPool.Put(n)
}

// GetTableName returns a TableName from the pool.
func GetTableName() *TableName { return tableNamePool.Get().(*TableName) }

// ReleaseTableName returns a TableName to the pool.
func ReleaseTableName(n *TableName) {
	*n = TableName{}
	tableNamePool.Put(n)
}

// GetOrderByExpr returns an OrderByExpr from the pool.
func GetOrderByExpr() *OrderByExpr { return orderByExprPool.Get().(*OrderByExpr) }

// ReleaseOrderByExpr returns an OrderByExpr to the pool.
func ReleaseOrderByExpr(n *OrderByExpr) {
	*n = OrderByExpr{}
	orderByExprPool.Put(n)
}

// GetAliasedTableExpr returns an AliasedTableExpr from the pool.
func GetAliasedTableExpr() *AliasedTableExpr {
	return aliasedTableExprPool.Get().(*AliasedTableExpr)
}

// ReleaseAliasedTableExpr returns an AliasedTableExpr to the pool.
func ReleaseAliasedTableExpr(n *AliasedTableExpr) {
	*n = AliasedTableExpr{}
	aliasedTableExprPool.Put(n)
}

// GetJoinExpr returns a JoinExpr from the pool.
func GetJoinExpr() *JoinExpr { return joinExprPool.Get().(*JoinExpr) }

// ReleaseJoinExpr returns a JoinExpr to the pool.
func ReleaseJoinExpr(n *JoinExpr) {
	*n = JoinExpr{}
	joinExprPool.Put(n)
}

func releaseSelectCoreFields(c *SelectCore) {
	if c == nil {
		return
	}
	for _, col := range c.Columns {
		ReleaseAST(col)
	}
	if cap(c.Columns) > 0 {
		cols := c.Columns[:0]
		ReleaseSelectExprSlice(&cols)
	}
	ReleaseAST(c.From)
	ReleaseAST(c.Where)
	for _, e := range c.GroupBy {
		ReleaseAST(e)
	}
	if cap(c.GroupBy) > 0 {
		g := c.GroupBy[:0]
		ReleaseExprSlice(&g)
	}
	ReleaseAST(c.Having)
	ReleaseSelectCore(c)
}

func releaseOrderByList(obs []*OrderByExpr) {
	for _, ob := range obs {
		ReleaseAST(ob.Expr)
		ReleaseOrderByExpr(ob)
	}
}

// ReleaseAST recursively returns pooled nodes reachable from node back to
// their pools. Call it once a parsed tree is no longer needed. It descends
// only through the node kinds listed in its switch: nodes reached through a
// WITH clause, an INSERT/UPDATE/DELETE target table, RETURNING, ON CONFLICT,
// window definitions or OVER specs, or any DDL and other statement kinds are
// not released and are left to the garbage collector.
func ReleaseAST(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *SelectStmt:
		releaseSelectCoreFields(n.Core)
		for _, term := range n.Compound {
			releaseSelectCoreFields(term.Core)
		}
		releaseOrderByList(n.OrderBy)
		if cap(n.OrderBy) > 0 {
			ob := n.OrderBy[:0]
			ReleaseOrderBySlice(&ob)
		}
		if n.Limit != nil {
			ReleaseAST(n.Limit.Count)
			ReleaseAST(n.Limit.Offset)
		}
		ReleaseSelectStmt(n)

	case *Identifier:
		ReleaseIdentifier(n)

	case *QualifiedIdentifier:
		ReleaseQualifiedIdentifier(n)

	case *NumericLiteral:
		ReleaseNumericLiteral(n)

	case *StringLiteral:
		ReleaseStringLiteral(n)

	case *BinaryExpr:
		ReleaseAST(n.Left)
		ReleaseAST(n.Right)
		ReleaseBinaryExpr(n)

	case *UnaryExpr:
		ReleaseAST(n.Operand)
		ReleaseUnaryExpr(n)

	case *FuncExpr:
		for _, arg := range n.Args {
			ReleaseAST(arg)
		}
		if cap(n.Args) > 0 {
			args := n.Args[:0]
			ReleaseExprSlice(&args)
		}
		ReleaseAST(n.Filter)
		ReleaseFuncExpr(n)

	case *AliasedExpr:
		ReleaseAST(n.Expr)
		ReleaseAliasedExpr(n)

	case *TableName:
		ReleaseTableName(n)

	case *AliasedTableExpr:
		ReleaseAST(n.Expr)
		ReleaseAliasedTableExpr(n)

	case *JoinExpr:
		ReleaseAST(n.Left)
		ReleaseAST(n.Right)
		ReleaseAST(n.On)
		ReleaseJoinExpr(n)

	case *ParenExpr:
		ReleaseAST(n.Expr)

	case *ParenTableExpr:
		ReleaseAST(n.Expr)

	case *SubqueryTableExpr:
		ReleaseAST(n.Select)

	case *Subquery:
		ReleaseAST(n.Select)

	case *InExpr:
		ReleaseAST(n.Expr)
		for _, v := range n.Values {
			ReleaseAST(v)
		}
		ReleaseAST(n.Select)

	case *BetweenExpr:
		ReleaseAST(n.Expr)
		ReleaseAST(n.Low)
		ReleaseAST(n.High)

	case *LikeExpr:
		ReleaseAST(n.Expr)
		ReleaseAST(n.Pattern)
		ReleaseAST(n.Escape)

	case *CaseExpr:
		ReleaseAST(n.Operand)
		for _, w := range n.Whens {
			ReleaseAST(w.Cond)
			ReleaseAST(w.Result)
		}
		ReleaseAST(n.Else)

	case *CastExpr:
		ReleaseAST(n.Expr)

	case *CollateExpr:
		ReleaseAST(n.Expr)

	case *ExistsExpr:
		ReleaseAST(n.Subquery)

	case *InsertStmt:
		for _, row := range n.Values {
			for _, v := range row {
				ReleaseAST(v)
			}
		}
		ReleaseAST(n.Select)

	case *UpdateStmt:
		for _, s := range n.Set {
			ReleaseAST(s.Value)
		}
		ReleaseAST(n.From)
		ReleaseAST(n.Where)
		releaseOrderByList(n.OrderBy)

	case *DeleteStmt:
		ReleaseAST(n.Where)
		releaseOrderByList(n.OrderBy)
	}
}
