package ast

import "github.com/jaymd96/sqlite-ast-parser/token"

// BinaryOp enumerates binary expression operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
	OpIs
	OpIsNot
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpLShift
	OpRShift
	OpJSONArrow
	OpJSONArrow2
)

// UnaryOp enumerates prefix unary expression operators.
type UnaryOp int

const (
	OpPos UnaryOp = iota
	OpNeg
	OpNot
	OpBitNot
)

// LikeKind distinguishes the four LIKE-family pattern-match operators.
type LikeKind int

const (
	LikeLike LikeKind = iota
	LikeGlob
	LikeMatch
	LikeRegexp
)

func (k LikeKind) String() string {
	switch k {
	case LikeLike:
		return "LIKE"
	case LikeGlob:
		return "GLOB"
	case LikeMatch:
		return "MATCH"
	case LikeRegexp:
		return "REGEXP"
	default:
		return "LIKE"
	}
}

// RaiseKind enumerates the RAISE() function's conflict-resolution forms.
type RaiseKind int

const (
	RaiseIgnore RaiseKind = iota
	RaiseRollback
	RaiseAbort
	RaiseFail
)

// CurrentTimeKind distinguishes CURRENT_TIME/CURRENT_DATE/CURRENT_TIMESTAMP.
type CurrentTimeKind int

const (
	CurrentDate CurrentTimeKind = iota
	CurrentTime
	CurrentTimestamp
)

// spanned is embedded by every concrete node to carry its source span.
type spanned struct {
	Span token.Span
}

func (s spanned) Pos() token.Position { return s.Span.Start }
func (s spanned) End() token.Position { return s.Span.End }

// NumericLiteral is an integer or floating-point literal, carrying its
// original source text alongside whether it parsed as a float.
type NumericLiteral struct {
	spanned
	Text    string
	IsFloat bool
}

func (*NumericLiteral) exprNode() {}

// StringLiteral is a 'single-quoted' string literal with doubled quotes
// already collapsed.
type StringLiteral struct {
	spanned
	Value string
	Quote byte // always '\'' for STRING tokens
}

func (*StringLiteral) exprNode() {}

// BlobLiteral is an X'...' literal; Hex is the hex body without the
// surrounding X'...'.
type BlobLiteral struct {
	spanned
	Hex string
}

func (*BlobLiteral) exprNode() {}

// NullLiteral is the NULL keyword used as a value expression.
type NullLiteral struct{ spanned }

func (*NullLiteral) exprNode() {}

// BoolLiteral is TRUE or FALSE used as a value expression.
type BoolLiteral struct {
	spanned
	Value bool
}

func (*BoolLiteral) exprNode() {}

// CurrentTimeExpr is CURRENT_DATE, CURRENT_TIME, or CURRENT_TIMESTAMP.
type CurrentTimeExpr struct {
	spanned
	Kind CurrentTimeKind
}

func (*CurrentTimeExpr) exprNode() {}

// Identifier is a bare (unqualified) name reference.
type Identifier struct {
	spanned
	Name   string
	Quoted bool
}

func (*Identifier) exprNode() {}

// QualifiedIdentifier is a 1-3 part dot-separated name (column, table.column,
// or schema.table.column).
type QualifiedIdentifier struct {
	spanned
	Parts []string
}

func (*QualifiedIdentifier) exprNode() {}

// Column returns the rightmost part (the column/leaf name).
func (q *QualifiedIdentifier) Column() string { return q.Parts[len(q.Parts)-1] }

// Table returns the table part, or "" if the identifier has fewer than 2 parts.
func (q *QualifiedIdentifier) Table() string {
	if len(q.Parts) >= 2 {
		return q.Parts[len(q.Parts)-2]
	}
	return ""
}

// Schema returns the schema part, or "" if the identifier has fewer than 3 parts.
func (q *QualifiedIdentifier) Schema() string {
	if len(q.Parts) >= 3 {
		return q.Parts[len(q.Parts)-3]
	}
	return ""
}

// Param is a bind parameter: `?` (Number == 0 && Name == ""), `?N` (Number ==
// N), or `:name`/`@name`/`$name` (Name set). Number and Name are mutually
// exclusive.
type Param struct {
	spanned
	Raw    string
	Number int
	Name   string
}

func (*Param) exprNode() {}

// UnaryExpr is a prefix unary operator applied to Operand.
type UnaryExpr struct {
	spanned
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr is a left-associative binary operator expression. IS NOT is
// represented as a single OpIsNot node, never as two nested nodes.
type BinaryExpr struct {
	spanned
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// BetweenExpr is `Expr [NOT] BETWEEN Low AND High`.
type BetweenExpr struct {
	spanned
	Expr    Expr
	Low     Expr
	High    Expr
	Negated bool
}

func (*BetweenExpr) exprNode() {}

// InExpr is `Expr [NOT] IN (Values...)` or `Expr [NOT] IN (Select)`. Exactly
// one of Values or Select is set.
type InExpr struct {
	spanned
	Expr    Expr
	Values  []Expr
	Select  *Subquery
	Negated bool
}

func (*InExpr) exprNode() {}

// LikeExpr is `Expr [NOT] (LIKE|GLOB|MATCH|REGEXP) Pattern [ESCAPE Escape]`.
type LikeExpr struct {
	spanned
	Expr    Expr
	Pattern Expr
	Kind    LikeKind
	Escape  Expr
	Negated bool
}

func (*LikeExpr) exprNode() {}

// WindowRef is an OVER clause: either a bare name reference to a WINDOW
// definition, or an inline WindowSpec.
type WindowRef struct {
	Name string      // set when the OVER clause is a bare name reference
	Spec *WindowSpec // set when the OVER clause is an inline definition
}

// FuncExpr is a function call, optionally DISTINCT, a bare star call, with
// an optional FILTER(WHERE ...) and an optional OVER clause.
type FuncExpr struct {
	spanned
	Name     string
	Args     []Expr
	Distinct bool
	Star     bool
	Filter   Expr
	Over     *WindowRef
}

func (*FuncExpr) exprNode() {}

// When is one WHEN cond THEN result arm of a CaseExpr.
type When struct {
	Cond   Expr
	Result Expr
}

// CaseExpr is `CASE [Operand] {WHEN cond THEN result} [ELSE Else] END`.
type CaseExpr struct {
	spanned
	Operand Expr
	Whens   []*When
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// CastExpr is `CAST(Expr AS TypeName)`.
type CastExpr struct {
	spanned
	Expr     Expr
	TypeName string
}

func (*CastExpr) exprNode() {}

// CollateExpr attaches a collation name to a preceding expression.
type CollateExpr struct {
	spanned
	Expr      Expr
	Collation string
}

func (*CollateExpr) exprNode() {}

// ExistsExpr is `[NOT] EXISTS (Select)`.
type ExistsExpr struct {
	spanned
	Subquery *Subquery
	Negated  bool
}

func (*ExistsExpr) exprNode() {}

// Subquery wraps a full SELECT statement used in expression position.
type Subquery struct {
	spanned
	Select *SelectStmt
}

func (*Subquery) exprNode() {}

// ParenExpr is a parenthesized expression, kept distinct from its inner
// expression so spans and re-rendering stay faithful to the source.
type ParenExpr struct {
	spanned
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// RaiseExpr is the `RAISE(IGNORE|ROLLBACK,msg|ABORT,msg|FAIL,msg)` trigger
// function.
type RaiseExpr struct {
	spanned
	Kind    RaiseKind
	Message string
}

func (*RaiseExpr) exprNode() {}
