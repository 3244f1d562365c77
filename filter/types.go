package filter

import "fmt"

// ExpressionClass is the DuckDB bound expression class ("expression_class").
type ExpressionClass string

// Classes the translator understands. Every other class parses to an
// *UnsupportedExpression that keeps its class and type for logging.
const (
	ClassBoundBetween     ExpressionClass = "BOUND_BETWEEN"
	ClassBoundCast        ExpressionClass = "BOUND_CAST"
	ClassBoundColumnRef   ExpressionClass = "BOUND_COLUMN_REF"
	ClassBoundComparison  ExpressionClass = "BOUND_COMPARISON"
	ClassBoundConjunction ExpressionClass = "BOUND_CONJUNCTION"
	ClassBoundConstant    ExpressionClass = "BOUND_CONSTANT"
	ClassBoundFunction    ExpressionClass = "BOUND_FUNCTION"
	ClassBoundOperator    ExpressionClass = "BOUND_OPERATOR"
)

// ExpressionType is the DuckDB expression type ("type").
type ExpressionType string

const (
	TypeCompareEqual              ExpressionType = "COMPARE_EQUAL"
	TypeCompareNotEqual           ExpressionType = "COMPARE_NOTEQUAL"
	TypeCompareLessThan           ExpressionType = "COMPARE_LESSTHAN"
	TypeCompareGreaterThan        ExpressionType = "COMPARE_GREATERTHAN"
	TypeCompareLessThanOrEqual    ExpressionType = "COMPARE_LESSTHANOREQUALTO"
	TypeCompareGreaterThanOrEqual ExpressionType = "COMPARE_GREATERTHANOREQUALTO"
	TypeCompareDistinctFrom       ExpressionType = "COMPARE_DISTINCT_FROM"
	TypeCompareNotDistinctFrom    ExpressionType = "COMPARE_NOT_DISTINCT_FROM"

	// IN lists arrive either as a comparison or as an operator.
	TypeCompareIn    ExpressionType = "COMPARE_IN"
	TypeCompareNotIn ExpressionType = "COMPARE_NOT_IN"

	TypeConjunctionAnd ExpressionType = "CONJUNCTION_AND"
	TypeConjunctionOr  ExpressionType = "CONJUNCTION_OR"

	TypeOperatorNot       ExpressionType = "OPERATOR_NOT"
	TypeOperatorIsNull    ExpressionType = "OPERATOR_IS_NULL"
	TypeOperatorIsNotNull ExpressionType = "OPERATOR_IS_NOT_NULL"
)

// Expression is a node of a parsed DuckDB filter. The set of node types is
// closed; switch on the concrete type to inspect one.
type Expression interface {
	Class() ExpressionClass
	Type() ExpressionType
	Alias() string

	expressionMarker()
}

// Header holds the fields shared by every node.
type Header struct {
	ExprClass ExpressionClass
	ExprType  ExpressionType
	ExprAlias string
}

func (h *Header) Class() ExpressionClass { return h.ExprClass }
func (h *Header) Type() ExpressionType   { return h.ExprType }
func (h *Header) Alias() string          { return h.ExprAlias }
func (h *Header) expressionMarker()      {}

// ColumnBinding points into the column_binding_names_by_index list.
type ColumnBinding struct {
	TableIndex  int `json:"table_index"`
	ColumnIndex int `json:"column_index"`
}

// FilterPushdown is one parsed pushdown document. Filters are conjuncts.
type FilterPushdown struct {
	Filters        []Expression
	ColumnBindings []string
}

// ColumnName returns the column a reference is bound to.
func (fp *FilterPushdown) ColumnName(ref *ColumnRefExpression) (string, error) {
	i := ref.Binding.ColumnIndex
	if i < 0 || i >= len(fp.ColumnBindings) {
		return "", &ColumnBindingError{Index: i, Bindings: len(fp.ColumnBindings)}
	}
	return fp.ColumnBindings[i], nil
}

// ColumnBindingError is returned for a column reference whose binding index
// has no entry in the pushdown's column list.
type ColumnBindingError struct {
	Index    int
	Bindings int
}

func (e *ColumnBindingError) Error() string {
	return fmt.Sprintf("column binding %d out of range: pushdown binds %d column(s)", e.Index, e.Bindings)
}

// ComparisonExpression is Left <op> Right, including IN lists.
type ComparisonExpression struct {
	Header
	Left  Expression
	Right Expression
}

// ConjunctionExpression is an n-ary AND or OR.
type ConjunctionExpression struct {
	Header
	Children []Expression
}

type ConstantExpression struct {
	Header
	Value Value
}

type ColumnRefExpression struct {
	Header
	Binding    ColumnBinding
	ReturnType LogicalType
}

// FunctionExpression is a scalar function call; prefix, suffix, contains
// and struct_extract are the ones the translator reads.
type FunctionExpression struct {
	Header
	Name       string
	Children   []Expression
	ReturnType LogicalType
}

// CastExpression wraps a column or constant in CAST / TRY_CAST. Casts of
// constants are folded into the constant when the result is exact; casts of
// columns are never pushed down.
type CastExpression struct {
	Header
	Child      Expression
	ReturnType LogicalType
	TryCast    bool
}

type BetweenExpression struct {
	Header
	Input          Expression
	Lower          Expression
	Upper          Expression
	LowerInclusive bool
	UpperInclusive bool
}

// OperatorExpression covers NOT, IS [NOT] NULL and the operator form of IN,
// where the first child is the tested expression.
type OperatorExpression struct {
	Header
	Children   []Expression
	ReturnType LogicalType
}

// UnsupportedExpression is any class outside the list above, such as
// subqueries, aggregates, windows or CASE.
type UnsupportedExpression struct {
	Header
}
