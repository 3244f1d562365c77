package filter

import (
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/hugr-lab/pushdown-go/identifier"
	"github.com/hugr-lab/pushdown-go/predicate"
)

// TranslateOptions configures a Translator.
type TranslateOptions struct {
	// Logger receives a debug record for every dropped expression.
	// OPTIONAL: slog.Default() is used if nil.
	Logger *slog.Logger
}

// Translator converts parsed DuckDB filter expressions into predicates.
//
// Expressions without a predicate equivalent are dropped using the same
// rules as the SQL encoder:
//   - For AND: unsupported children are skipped, the others kept
//   - For OR: if any child is unsupported, the whole OR is skipped
//   - A top-level filter that is unsupported is skipped
//
// The result is therefore never narrower than the original filter.
type Translator struct {
	logger *slog.Logger
}

// NewTranslator creates a Translator. If opts is nil, defaults are used.
func NewTranslator(opts *TranslateOptions) *Translator {
	t := &Translator{logger: slog.Default()}
	if opts != nil && opts.Logger != nil {
		t.logger = opts.Logger
	}
	return t
}

// errUnsupported marks an expression that has no predicate form.
type errUnsupported struct {
	reason string
}

func (e *errUnsupported) Error() string { return "unsupported: " + e.reason }

func unsupported(reason string) error { return &errUnsupported{reason: reason} }

// Translate converts every filter of fp. The returned predicates are
// implicitly AND'ed, like fp.Filters. Only column binding errors are
// returned; unsupported filters are dropped.
func (t *Translator) Translate(fp *FilterPushdown) ([]predicate.Predicate, error) {
	if fp == nil {
		return nil, nil
	}

	var out []predicate.Predicate
	for _, f := range fp.Filters {
		p, err := t.translate(fp, f, false)
		if err != nil {
			if t.skip(f, err) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Combine ANDs predicates into one. It returns predicate.True for an empty
// slice.
func Combine(preds []predicate.Predicate) predicate.Predicate {
	if len(preds) == 0 {
		return predicate.True
	}
	p := preds[0]
	for _, next := range preds[1:] {
		p = predicate.And{Left: p, Right: next}
	}
	return p
}

// skip logs and reports whether err only marks expr as unsupported.
func (t *Translator) skip(expr Expression, err error) bool {
	var u *errUnsupported
	if !errors.As(err, &u) {
		return false
	}
	t.logger.Debug("filter expression not translated",
		slog.String("class", string(expr.Class())),
		slog.String("type", string(expr.Type())),
		slog.String("reason", u.reason))
	return true
}

// translate converts expr. With exact set, AND children are never dropped,
// which is required below NOT where a wider child means a narrower result.
func (t *Translator) translate(fp *FilterPushdown, expr Expression, exact bool) (predicate.Predicate, error) {
	switch ex := expr.(type) {
	case *ComparisonExpression:
		return t.translateComparison(fp, ex)
	case *ConjunctionExpression:
		return t.translateConjunction(fp, ex, exact)
	case *OperatorExpression:
		return t.translateOperator(fp, ex, exact)
	case *FunctionExpression:
		return t.translateFunction(fp, ex)
	case *BetweenExpression:
		return t.translateBetween(fp, ex)
	case *ConstantExpression:
		if ex.Value.Type.ID == TypeIDBoolean && !ex.Value.IsNull {
			if b, _ := ex.Value.Data.(bool); b {
				return predicate.True, nil
			}
			return predicate.False, nil
		}
		return nil, unsupported("non-boolean constant")
	case nil:
		return nil, unsupported("missing expression")
	default:
		return nil, unsupported("expression class " + string(expr.Class()))
	}
}

func (t *Translator) translateComparison(fp *FilterPushdown, c *ComparisonExpression) (predicate.Predicate, error) {
	if c.Type() == TypeCompareIn || c.Type() == TypeCompareNotIn {
		return t.translateInList(fp, c)
	}

	typ := c.Type()
	colExpr, constExpr := c.Left, c.Right
	if isConstant(c.Left) {
		colExpr, constExpr = c.Right, c.Left
		typ = flipComparison(typ)
	}

	attr, err := t.attribute(fp, colExpr)
	if err != nil {
		return nil, err
	}
	v, err := constant(constExpr)
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeCompareEqual:
		return predicate.EqualTo{Attribute: attr, Value: v}, nil
	case TypeCompareNotEqual:
		return predicate.Not{Child: predicate.EqualTo{Attribute: attr, Value: v}}, nil
	case TypeCompareLessThan:
		return predicate.LessThan{Attribute: attr, Value: v}, nil
	case TypeCompareGreaterThan:
		return predicate.GreaterThan{Attribute: attr, Value: v}, nil
	case TypeCompareLessThanOrEqual:
		return predicate.LessThanOrEqual{Attribute: attr, Value: v}, nil
	case TypeCompareGreaterThanOrEqual:
		return predicate.GreaterThanOrEqual{Attribute: attr, Value: v}, nil
	case TypeCompareNotDistinctFrom:
		return predicate.EqualNullSafe{Attribute: attr, Value: v}, nil
	case TypeCompareDistinctFrom:
		return predicate.Not{Child: predicate.EqualNullSafe{Attribute: attr, Value: v}}, nil
	default:
		return nil, unsupported("comparison " + string(typ))
	}
}

// flipComparison mirrors an operator for swapped operands (1 < a is a > 1).
func flipComparison(typ ExpressionType) ExpressionType {
	switch typ {
	case TypeCompareLessThan:
		return TypeCompareGreaterThan
	case TypeCompareGreaterThan:
		return TypeCompareLessThan
	case TypeCompareLessThanOrEqual:
		return TypeCompareGreaterThanOrEqual
	case TypeCompareGreaterThanOrEqual:
		return TypeCompareLessThanOrEqual
	}
	return typ
}

// translateInList handles the comparison form: col IN list_value(...).
func (t *Translator) translateInList(fp *FilterPushdown, c *ComparisonExpression) (predicate.Predicate, error) {
	fn, ok := c.Right.(*FunctionExpression)
	if !ok {
		return nil, unsupported("IN without value list")
	}
	return t.buildIn(fp, c.Left, fn.Children, c.Type() == TypeCompareNotIn)
}

func (t *Translator) buildIn(fp *FilterPushdown, colExpr Expression, items []Expression, negate bool) (predicate.Predicate, error) {
	attr, err := t.attribute(fp, colExpr)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, unsupported("empty IN list")
	}
	values := make([]predicate.Value, 0, len(items))
	for _, item := range items {
		v, err := constant(item)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	var p predicate.Predicate = predicate.In{Attribute: attr, Values: values}
	if negate {
		p = predicate.Not{Child: p}
	}
	return p, nil
}

// translateConjunction folds AND/OR children left to right into binary nodes.
func (t *Translator) translateConjunction(fp *FilterPushdown, c *ConjunctionExpression, exact bool) (predicate.Predicate, error) {
	isOr := c.Type() == TypeConjunctionOr
	if !isOr && c.Type() != TypeConjunctionAnd {
		return nil, unsupported("conjunction " + string(c.Type()))
	}

	var parts []predicate.Predicate
	for _, child := range c.Children {
		p, err := t.translate(fp, child, exact)
		if err != nil {
			if isOr || exact {
				return nil, err
			}
			if t.skip(child, err) {
				continue
			}
			return nil, err
		}
		parts = append(parts, p)
	}

	if len(parts) == 0 {
		return nil, unsupported("no translatable children")
	}
	p := parts[0]
	for _, next := range parts[1:] {
		if isOr {
			p = predicate.Or{Left: p, Right: next}
		} else {
			p = predicate.And{Left: p, Right: next}
		}
	}
	return p, nil
}

func (t *Translator) translateOperator(fp *FilterPushdown, o *OperatorExpression, exact bool) (predicate.Predicate, error) {
	switch o.Type() {
	case TypeOperatorIsNull, TypeOperatorIsNotNull:
		if len(o.Children) != 1 {
			return nil, unsupported("null test arity")
		}
		attr, err := t.attribute(fp, o.Children[0])
		if err != nil {
			return nil, err
		}
		if o.Type() == TypeOperatorIsNull {
			return predicate.IsNull{Attribute: attr}, nil
		}
		return predicate.IsNotNull{Attribute: attr}, nil

	case TypeOperatorNot:
		if len(o.Children) != 1 {
			return nil, unsupported("NOT arity")
		}
		child, err := t.translate(fp, o.Children[0], true)
		if err != nil {
			return nil, err
		}
		return predicate.Not{Child: child}, nil

	case TypeCompareIn, TypeCompareNotIn:
		if len(o.Children) < 2 {
			return nil, unsupported("IN arity")
		}
		return t.buildIn(fp, o.Children[0], o.Children[1:], o.Type() == TypeCompareNotIn)

	default:
		return nil, unsupported("operator " + string(o.Type()))
	}
}

func (t *Translator) translateFunction(fp *FilterPushdown, f *FunctionExpression) (predicate.Predicate, error) {
	name := strings.ToLower(f.Name)
	switch name {
	case "prefix", "starts_with", "suffix", "ends_with", "contains":
	default:
		return nil, unsupported("function " + f.Name)
	}
	if len(f.Children) != 2 {
		return nil, unsupported("function " + f.Name + " arity")
	}

	attr, err := t.attribute(fp, f.Children[0])
	if err != nil {
		return nil, err
	}
	v, err := constant(f.Children[1])
	if err != nil {
		return nil, err
	}
	if v.Kind() != predicate.KindString {
		return nil, unsupported("function " + f.Name + " with non-string pattern")
	}

	switch name {
	case "prefix", "starts_with":
		return predicate.StringStartsWith{Attribute: attr, Value: v.Str()}, nil
	case "suffix", "ends_with":
		return predicate.StringEndsWith{Attribute: attr, Value: v.Str()}, nil
	default:
		return predicate.StringContains{Attribute: attr, Value: v.Str()}, nil
	}
}

func (t *Translator) translateBetween(fp *FilterPushdown, b *BetweenExpression) (predicate.Predicate, error) {
	attr, err := t.attribute(fp, b.Input)
	if err != nil {
		return nil, err
	}
	lower, err := constant(b.Lower)
	if err != nil {
		return nil, err
	}
	upper, err := constant(b.Upper)
	if err != nil {
		return nil, err
	}

	var left, right predicate.Predicate
	if b.LowerInclusive {
		left = predicate.GreaterThanOrEqual{Attribute: attr, Value: lower}
	} else {
		left = predicate.GreaterThan{Attribute: attr, Value: lower}
	}
	if b.UpperInclusive {
		right = predicate.LessThanOrEqual{Attribute: attr, Value: upper}
	} else {
		right = predicate.LessThan{Attribute: attr, Value: upper}
	}
	return predicate.And{Left: left, Right: right}, nil
}

// attribute returns the dotted attribute name for a column reference or a
// chain of struct_extract calls on one. Column and field names that are not
// plain identifiers are quoted so they stay single path segments.
func (t *Translator) attribute(fp *FilterPushdown, expr Expression) (string, error) {
	path, err := t.columnPath(fp, expr)
	if err != nil {
		return "", err
	}
	return identifier.Join(path), nil
}

func (t *Translator) columnPath(fp *FilterPushdown, expr Expression) ([]string, error) {
	switch ex := expr.(type) {
	case *ColumnRefExpression:
		name, err := fp.ColumnName(ex)
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	case *FunctionExpression:
		if !strings.EqualFold(ex.Name, "struct_extract") || len(ex.Children) != 2 {
			return nil, unsupported("function " + ex.Name + " as column")
		}
		parent, err := t.columnPath(fp, ex.Children[0])
		if err != nil {
			return nil, err
		}
		field, err := constant(ex.Children[1])
		if err != nil {
			return nil, err
		}
		if field.Kind() != predicate.KindString {
			return nil, unsupported("struct_extract by position")
		}
		return append(parent, field.Str()), nil
	case nil:
		return nil, unsupported("missing column")
	default:
		return nil, unsupported(string(expr.Class()) + " as column")
	}
}

// constant converts a constant expression, or a cast of one, into a
// predicate value.
func constant(expr Expression) (predicate.Value, error) {
	switch ex := expr.(type) {
	case *ConstantExpression:
		return convertValue(ex.Value)
	case *CastExpression:
		v, err := constant(ex.Child)
		if err != nil {
			return predicate.Value{}, err
		}
		return castValue(v, ex.ReturnType.ID)
	case nil:
		return predicate.Value{}, unsupported("missing constant")
	default:
		return predicate.Value{}, unsupported(string(expr.Class()) + " as constant")
	}
}

func isConstant(expr Expression) bool {
	switch ex := expr.(type) {
	case *ConstantExpression:
		return true
	case *CastExpression:
		return isConstant(ex.Child)
	}
	return false
}

// castValue folds a cast into a constant. Only casts whose result is known
// without DuckDB's parsing or overflow rules are folded: NULL to anything,
// integers to a wider or equal integer range, numbers to FLOAT/DOUBLE, and
// identity casts of booleans, strings and blobs.
func castValue(v predicate.Value, target LogicalTypeID) (predicate.Value, error) {
	if v.Kind() == predicate.KindNull {
		return v, nil
	}

	switch target {
	case TypeIDBoolean:
		if v.Kind() == predicate.KindBool {
			return v, nil
		}
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		if v.Kind() == predicate.KindInt {
			lo, hi := integerRange(target)
			if i := v.Int(); i < lo || i > hi {
				return predicate.Value{}, unsupported("cast of " + v.String() + " to " + string(target) + " out of range")
			}
			return v, nil
		}
	case TypeIDFloat:
		switch v.Kind() {
		case predicate.KindInt:
			return predicate.FloatValue(float64(float32(v.Int()))), nil
		case predicate.KindFloat:
			return predicate.FloatValue(float64(float32(v.Float()))), nil
		}
	case TypeIDDouble:
		switch v.Kind() {
		case predicate.KindInt:
			return predicate.FloatValue(float64(v.Int())), nil
		case predicate.KindFloat:
			return v, nil
		}
	case TypeIDVarchar, TypeIDChar:
		if v.Kind() == predicate.KindString {
			return v, nil
		}
	case TypeIDBlob:
		if v.Kind() == predicate.KindBytes {
			return v, nil
		}
	}
	return predicate.Value{}, unsupported("cast of " + v.Kind().String() + " to " + string(target))
}

func integerRange(t LogicalTypeID) (lo, hi int64) {
	switch t {
	case TypeIDTinyInt:
		return math.MinInt8, math.MaxInt8
	case TypeIDSmallInt:
		return math.MinInt16, math.MaxInt16
	case TypeIDInteger:
		return math.MinInt32, math.MaxInt32
	case TypeIDUTinyInt:
		return 0, math.MaxUint8
	case TypeIDUSmallInt:
		return 0, math.MaxUint16
	case TypeIDUInteger:
		return 0, math.MaxUint32
	case TypeIDUBigInt:
		return 0, math.MaxInt64
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func convertValue(v Value) (predicate.Value, error) {
	if v.IsNull {
		return predicate.NullValue(), nil
	}

	switch data := v.Data.(type) {
	case bool:
		return predicate.BoolValue(data), nil
	case int64:
		return predicate.IntValue(data), nil
	case uint64:
		if data > math.MaxInt64 {
			return predicate.Value{}, unsupported("unsigned value out of range")
		}
		return predicate.IntValue(int64(data)), nil
	case float64:
		if v.Type.ID != TypeIDFloat && v.Type.ID != TypeIDDouble {
			// decimals and other numbers decoded from JSON
			return predicate.Value{}, unsupported("value of type " + string(v.Type.ID))
		}
		return predicate.FloatValue(data), nil
	case string:
		if !v.Type.ID.IsString() {
			return predicate.Value{}, unsupported("value of type " + string(v.Type.ID))
		}
		return predicate.StringValue(data), nil
	case []byte:
		return predicate.BytesValue(data), nil
	case []Value:
		elems := make([]predicate.Value, 0, len(data))
		for _, e := range data {
			pv, err := convertValue(e)
			if err != nil {
				return predicate.Value{}, err
			}
			elems = append(elems, pv)
		}
		return predicate.ListValue(elems...), nil
	default:
		return predicate.Value{}, unsupported("value of type " + string(v.Type.ID))
	}
}
