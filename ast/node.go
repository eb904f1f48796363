// Package ast defines the SQLite AST: a closed set of Statement, Expression,
// and Clause node variants with source span metadata.
package ast

import "github.com/jaymd96/sqlite-ast-parser/token"

// Node is implemented by every AST node: statements, expressions, and
// clauses alike.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Statement is the closed sum of top-level SQL statement variants.
type Statement interface {
	Node
	stmtNode()
}

// Expr is the closed sum of expression variants.
type Expr interface {
	Node
	exprNode()
}

// TableExpr is the closed sum of FROM-clause table/join variants.
type TableExpr interface {
	Node
	tableExprNode()
}

// SelectExpr is a single entry in a SELECT's result-column list: either a
// StarExpr or an AliasedExpr.
type SelectExpr interface {
	Node
	selectExprNode()
}
