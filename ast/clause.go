package ast

// TableName is a possibly schema-qualified table reference.
type TableName struct {
	spanned
	Schema string
	Table  string
}

func (t *TableName) tableExprNode() {}

// Name returns the unqualified table name.
func (t *TableName) Name() string { return t.Table }

// IndexHintKind distinguishes INDEXED BY from NOT INDEXED on a table term.
type IndexHintKind int

const (
	NoIndexHint IndexHintKind = iota
	IndexedBy
	NotIndexed
)

// AliasedTableExpr wraps a table/subquery/join term with an optional alias
// and SQLite's INDEXED BY / NOT INDEXED hint.
type AliasedTableExpr struct {
	spanned
	Expr      TableExpr
	Alias     string
	IndexHint IndexHintKind
	IndexName string // set when IndexHint == IndexedBy
}

func (a *AliasedTableExpr) tableExprNode() {}

// JoinType enumerates SQL join kinds, including the implicit comma join.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
	JoinComma
)

// JoinExpr is a two-sided join, optionally NATURAL, with either an ON
// expression or a USING column list.
type JoinExpr struct {
	spanned
	Left    TableExpr
	Right   TableExpr
	Type    JoinType
	Natural bool
	Outer   bool
	On      Expr
	Using   []string
}

func (j *JoinExpr) tableExprNode() {}

// ParenTableExpr is a parenthesized table/join term.
type ParenTableExpr struct {
	spanned
	Expr TableExpr
}

func (p *ParenTableExpr) tableExprNode() {}

// SubqueryTableExpr is `( SELECT ... )` used as a FROM-clause term.
type SubqueryTableExpr struct {
	spanned
	Select *SelectStmt
}

func (s *SubqueryTableExpr) tableExprNode() {}

// StarExpr is `*` or `table.*` in a result-column list, or in expression
// position such as the argument of COUNT(*).
type StarExpr struct {
	spanned
	TableQualifier string
}

func (*StarExpr) selectExprNode() {}
func (*StarExpr) exprNode()       {}

// AliasedExpr is `expr [ [AS] alias ]` in a result-column list.
type AliasedExpr struct {
	spanned
	Expr  Expr
	Alias string
}

func (*AliasedExpr) selectExprNode() {}

// OrderByExpr is one ordering term: `expr [COLLATE name] [ASC|DESC] [NULLS FIRST|LAST]`.
type OrderByExpr struct {
	spanned
	Expr       Expr
	Desc       bool
	Collation  string
	NullsFirst *bool
}

// Limit is `LIMIT Count [OFFSET Offset]`.
type Limit struct {
	spanned
	Count  Expr
	Offset Expr
}

// IndexedColumn is a column reference (or expression) used inside index and
// constraint definitions, with optional collation and direction.
type IndexedColumn struct {
	spanned
	Name      string
	Expr      Expr // set instead of Name for expression indexes
	Collation string
	Desc      bool
}

// FrameType enumerates ROWS/RANGE/GROUPS window-frame units.
type FrameType int

const (
	FrameRows FrameType = iota
	FrameRange
	FrameGroups
)

// BoundType enumerates window-frame boundary kinds.
type BoundType int

const (
	BoundUnboundedPreceding BoundType = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// FrameBound is one endpoint of a window frame; Offset is set only for
// BoundPreceding/BoundFollowing.
type FrameBound struct {
	Type   BoundType
	Offset Expr
}

// FrameExclude enumerates the optional EXCLUDE suffix of a frame spec.
type FrameExclude int

const (
	ExcludeNone FrameExclude = iota
	ExcludeNoOthers
	ExcludeCurrentRow
	ExcludeGroup
	ExcludeTies
)

// WindowFrame is `(ROWS|RANGE|GROUPS) (BETWEEN bound AND bound | bound) [EXCLUDE ...]`.
// End is nil when the frame has only a single (start) bound, meaning
// "CURRENT ROW" per SQLite's implicit-end rule.
type WindowFrame struct {
	Type    FrameType
	Start   *FrameBound
	End     *FrameBound
	Exclude FrameExclude
}

// WindowSpec is an inline window definition: `( [PARTITION BY ...] [ORDER BY ...] [frame] )`.
type WindowSpec struct {
	spanned
	BaseName    string // optional named-window this spec extends
	PartitionBy []Expr
	OrderBy     []*OrderByExpr
	Frame       *WindowFrame
}

// WindowDef is one entry of a SELECT's `WINDOW name AS (...)` clause.
type WindowDef struct {
	Name string
	Spec *WindowSpec
}

// CTE is one named entry of a WITH clause.
type CTE struct {
	spanned
	Name    string
	Columns []string
	Select  *SelectStmt
}

// WithClause is `WITH [RECURSIVE] cte {, cte}`.
type WithClause struct {
	spanned
	Recursive bool
	CTEs      []*CTE
}

// CompoundOp enumerates SELECT compound operators.
type CompoundOp int

const (
	CompoundUnion CompoundOp = iota
	CompoundUnionAll
	CompoundIntersect
	CompoundExcept
)

// CompoundTerm pairs a compound operator with the select-core that follows it.
type CompoundTerm struct {
	Op   CompoundOp
	Core *SelectCore
}
