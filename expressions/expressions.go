// Package expressions defines the V2 connector predicate representation.
//
// V2 predicates are general expression trees: a predicate is a named
// operator applied to child expressions, where the leaves are column
// references and typed literals. Boolean combinators and constants have
// dedicated node types so connectors can match them without string
// comparison:
//
//	switch p := pred.(type) {
//	case *expressions.And:
//	    // p.Left, p.Right
//	case *expressions.GeneralPredicate:
//	    switch p.Name() {
//	    case expressions.OpEqual:
//	        ref := p.Args[0].(expressions.NamedReference)
//	        lit := p.Args[1].(*expressions.LiteralValue)
//	    }
//	}
package expressions

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/pushdown-go/identifier"
)

// Operator names used as GeneralPredicate.Operator and returned by Predicate.Name.
const (
	OpEqual              = "="
	OpNullSafeEqual      = "<=>"
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpIn                 = "IN"
	OpIsNull             = "IS_NULL"
	OpIsNotNull          = "IS_NOT_NULL"
	OpStartsWith         = "STARTS_WITH"
	OpEndsWith           = "ENDS_WITH"
	OpContains           = "CONTAINS"

	OpAnd         = "AND"
	OpOr          = "OR"
	OpNot         = "NOT"
	OpAlwaysTrue  = "ALWAYS_TRUE"
	OpAlwaysFalse = "ALWAYS_FALSE"
)

// Expression is the interface implemented by all V2 nodes.
type Expression interface {
	// Children returns the direct sub-expressions in operand order.
	Children() []Expression

	// String returns a SQL-like description of the expression.
	String() string

	expressionMarker()
}

// NamedReference is an expression that names a (possibly nested) column.
type NamedReference interface {
	Expression
	// FieldNames returns the path segments from the top-level column down.
	FieldNames() []string
}

// Predicate is a boolean-valued expression.
type Predicate interface {
	Expression
	// Name returns the operator name (one of the Op constants).
	Name() string

	predicateMarker()
}

// FieldReference references a column by its path segments.
type FieldReference struct {
	Parts []string
}

// Column returns a reference to a column path.
func Column(parts ...string) *FieldReference {
	return &FieldReference{Parts: parts}
}

func (r *FieldReference) Children() []Expression { return nil }
func (r *FieldReference) FieldNames() []string   { return r.Parts }
func (r *FieldReference) String() string         { return identifier.Join(r.Parts) }
func (r *FieldReference) expressionMarker()      {}

// LiteralValue is a constant with its Arrow data type.
// Value holds the canonical Go value for the type: nil for arrow.NULL,
// bool, int64, float64, string, []byte, or []any for lists.
type LiteralValue struct {
	Value    any
	DataType arrow.DataType
}

// Literal returns a typed literal.
func Literal(v any, dt arrow.DataType) *LiteralValue {
	return &LiteralValue{Value: v, DataType: dt}
}

func (l *LiteralValue) Children() []Expression { return nil }
func (l *LiteralValue) String() string         { return formatLiteral(l.Value) }
func (l *LiteralValue) expressionMarker()      {}

// GeneralPredicate is a named operator applied to arguments. Leaf predicates
// (comparisons, IN, null tests, string matches) are general predicates whose
// first argument is a NamedReference and whose remaining arguments are
// literals.
type GeneralPredicate struct {
	Operator string
	Args     []Expression
}

// NewPredicate returns a general predicate for operator applied to args.
func NewPredicate(operator string, args ...Expression) *GeneralPredicate {
	return &GeneralPredicate{Operator: operator, Args: args}
}

func (p *GeneralPredicate) Name() string           { return p.Operator }
func (p *GeneralPredicate) Children() []Expression { return p.Args }
func (p *GeneralPredicate) String() string         { return formatGeneral(p) }
func (p *GeneralPredicate) expressionMarker()      {}
func (p *GeneralPredicate) predicateMarker()       {}

// And is the conjunction of two predicates.
type And struct {
	Left  Predicate
	Right Predicate
}

func (a *And) Name() string           { return OpAnd }
func (a *And) Children() []Expression { return []Expression{a.Left, a.Right} }
func (a *And) String() string {
	return "(" + a.Left.String() + ") AND (" + a.Right.String() + ")"
}
func (a *And) expressionMarker() {}
func (a *And) predicateMarker()  {}

// Or is the disjunction of two predicates.
type Or struct {
	Left  Predicate
	Right Predicate
}

func (o *Or) Name() string           { return OpOr }
func (o *Or) Children() []Expression { return []Expression{o.Left, o.Right} }
func (o *Or) String() string {
	return "(" + o.Left.String() + ") OR (" + o.Right.String() + ")"
}
func (o *Or) expressionMarker() {}
func (o *Or) predicateMarker()  {}

// Not negates a predicate.
type Not struct {
	Child Predicate
}

func (n *Not) Name() string           { return OpNot }
func (n *Not) Children() []Expression { return []Expression{n.Child} }
func (n *Not) String() string         { return "NOT (" + n.Child.String() + ")" }
func (n *Not) expressionMarker()      {}
func (n *Not) predicateMarker()       {}

// AlwaysTrue is the constant true predicate.
type AlwaysTrue struct{}

func (AlwaysTrue) Name() string           { return OpAlwaysTrue }
func (AlwaysTrue) Children() []Expression { return nil }
func (AlwaysTrue) String() string         { return "TRUE" }
func (AlwaysTrue) expressionMarker()      {}
func (AlwaysTrue) predicateMarker()       {}

// AlwaysFalse is the constant false predicate.
type AlwaysFalse struct{}

func (AlwaysFalse) Name() string           { return OpAlwaysFalse }
func (AlwaysFalse) Children() []Expression { return nil }
func (AlwaysFalse) String() string         { return "FALSE" }
func (AlwaysFalse) expressionMarker()      {}
func (AlwaysFalse) predicateMarker()       {}
