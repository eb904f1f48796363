// Package sqliteast provides a position-annotated parser for SQLite's SQL
// dialect.
//
// It lexes and parses SELECT/INSERT/UPDATE/DELETE, the full SQLite DDL
// surface (CREATE TABLE/INDEX/VIEW/TRIGGER/VIRTUAL TABLE, ALTER TABLE, DROP),
// transaction control, ATTACH/DETACH, ANALYZE/VACUUM/REINDEX, EXPLAIN, and
// PRAGMA, producing a closed-sum AST with source spans on every node.
//
// Basic usage:
//
//	stmt, err := sqliteast.Parse("SELECT * FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sqliteast.String(stmt))
//
// Walking the AST:
//
//	sqliteast.Walk(stmt, func(node ast.Node) bool {
//	    if id, ok := node.(*ast.Identifier); ok {
//	        fmt.Printf("Found identifier: %s\n", id.Name)
//	    }
//	    return true
//	})
//
// Rewriting nodes:
//
//	rewritten := sqliteast.Rewrite(stmt, func(n ast.Node) ast.Node {
//	    // Transform nodes as needed
//	    return n
//	})
package sqliteast

import (
	"strings"

	"github.com/jaymd96/sqlite-ast-parser/ast"
	"github.com/jaymd96/sqlite-ast-parser/format"
	"github.com/jaymd96/sqlite-ast-parser/parser"
	"github.com/jaymd96/sqlite-ast-parser/visitor"
)

// ParseErrors aggregates every error accumulated during a parse into a
// single error value, so callers that don't care about panic-mode recovery
// can keep using the plain (stmt, error) shape.
type ParseErrors []parser.ParseError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	for i, pe := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pe.Error())
	}
	return b.String()
}

// Parse parses a single SQL statement. The parser uses internal pooling for
// efficiency; call Repool(stmt) when done with the statement to return its
// nodes to the pool (optional).
func Parse(sql string) (ast.Statement, error) {
	p := parser.Get(sql)
	stmt, errs := p.Parse()
	parser.Put(p)
	if len(errs) > 0 {
		return stmt, ParseErrors(errs)
	}
	return stmt, nil
}

// ParseAll parses every statement in the input, recovering at statement
// boundaries after a syntax error so later statements still get a chance to
// parse. The returned error (if any) aggregates every error seen across the
// whole input, not just the first.
func ParseAll(sql string) ([]ast.Statement, error) {
	p := parser.Get(sql)
	stmts, errs := p.ParseAll()
	parser.Put(p)
	if len(errs) > 0 {
		return stmts, ParseErrors(errs)
	}
	return stmts, nil
}

// Repool returns an AST's nodes to internal pools for reuse. This is
// optional - if not called, nodes are garbage collected normally. Calling
// Repool after you're done with a statement improves performance when
// parsing many queries by reducing allocations. Do not use stmt after
// calling Repool.
func Repool(stmt Statement) {
	ast.ReleaseAST(stmt)
}

// String formats an AST node back to SQL.
func String(node ast.Node) string {
	return format.String(node)
}

// Walk traverses the AST calling fn for each node. If fn returns false, that
// node's children are not visited.
func Walk(node ast.Node, fn func(ast.Node) bool) {
	visitor.WalkFunc(node, fn)
}

// Rewrite traverses the AST allowing node replacement. fn is called in
// post-order (children first, then parent); return the replacement node or
// the original to keep it unchanged.
func Rewrite(node ast.Node, fn func(ast.Node) ast.Node) ast.Node {
	return visitor.Rewrite(node, fn)
}

// Statement is the interface for all SQL statements.
type Statement = ast.Statement

// Expr is the interface for all expressions.
type Expr = ast.Expr

// Node is the base interface for all AST nodes.
type Node = ast.Node

// Common type aliases for convenience.
type (
	SelectStmt             = ast.SelectStmt
	SelectCore              = ast.SelectCore
	InsertStmt              = ast.InsertStmt
	UpdateStmt              = ast.UpdateStmt
	DeleteStmt              = ast.DeleteStmt
	CreateTableStmt         = ast.CreateTableStmt
	CreateIndexStmt         = ast.CreateIndexStmt
	CreateViewStmt          = ast.CreateViewStmt
	CreateTriggerStmt       = ast.CreateTriggerStmt
	CreateVirtualTableStmt  = ast.CreateVirtualTableStmt
	AlterTableStmt          = ast.AlterTableStmt
	DropStmt                = ast.DropStmt
	TransactionStmt         = ast.TransactionStmt
	AttachStmt              = ast.AttachStmt
	DetachStmt              = ast.DetachStmt
	AnalyzeStmt             = ast.AnalyzeStmt
	VacuumStmt              = ast.VacuumStmt
	ReindexStmt             = ast.ReindexStmt
	ExplainStmt             = ast.ExplainStmt
	PragmaStmt              = ast.PragmaStmt
	Identifier              = ast.Identifier
	QualifiedIdentifier     = ast.QualifiedIdentifier
	TableName               = ast.TableName
	NumericLiteral          = ast.NumericLiteral
	StringLiteral           = ast.StringLiteral
	BlobLiteral             = ast.BlobLiteral
	NullLiteral             = ast.NullLiteral
	BoolLiteral             = ast.BoolLiteral
	BinaryExpr              = ast.BinaryExpr
	UnaryExpr               = ast.UnaryExpr
	FuncExpr                = ast.FuncExpr
	CaseExpr                = ast.CaseExpr
	CastExpr                = ast.CastExpr
	CollateExpr             = ast.CollateExpr
	Subquery                = ast.Subquery
	JoinExpr                = ast.JoinExpr
	AliasedExpr             = ast.AliasedExpr
	AliasedTableExpr        = ast.AliasedTableExpr
	StarExpr                = ast.StarExpr
	ParenExpr               = ast.ParenExpr
	InExpr                  = ast.InExpr
	BetweenExpr             = ast.BetweenExpr
	LikeExpr                = ast.LikeExpr
	ExistsExpr              = ast.ExistsExpr
	RaiseExpr               = ast.RaiseExpr
	OrderByExpr             = ast.OrderByExpr
	Limit                   = ast.Limit
	WithClause              = ast.WithClause
	CTE                     = ast.CTE
	WindowSpec              = ast.WindowSpec
	WindowFrame             = ast.WindowFrame
)

// Join types.
const (
	JoinInner = ast.JoinInner
	JoinLeft  = ast.JoinLeft
	JoinRight = ast.JoinRight
	JoinFull  = ast.JoinFull
	JoinCross = ast.JoinCross
	JoinComma = ast.JoinComma
)

// Compound (UNION/INTERSECT/EXCEPT) operators.
const (
	CompoundUnion     = ast.CompoundUnion
	CompoundUnionAll  = ast.CompoundUnionAll
	CompoundIntersect = ast.CompoundIntersect
	CompoundExcept    = ast.CompoundExcept
)

// Conflict resolution algorithms for INSERT OR / UPDATE OR.
const (
	ConflictNone     = ast.ConflictNone
	ConflictRollback = ast.ConflictRollback
	ConflictAbort    = ast.ConflictAbort
	ConflictFail     = ast.ConflictFail
	ConflictIgnore   = ast.ConflictIgnore
	ConflictReplace  = ast.ConflictReplace
)
