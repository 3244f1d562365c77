package predicate

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// ErrUntypeableLiteral is returned by ArrowTyper for values that have no
// literal representation.
var ErrUntypeableLiteral = errors.New("untypeable literal")

// LiteralTyper maps a raw value to its canonical Go value and Arrow type.
// Canonical values are compared with reflect.DeepEqual semantics, so any Go
// value is accepted; ArrowTyper produces bool, int64, float64, string,
// []byte, []any and nil.
type LiteralTyper interface {
	TypeOf(v Value) (any, arrow.DataType, error)
}

// LiteralTyperFunc adapts a function to LiteralTyper.
type LiteralTyperFunc func(v Value) (any, arrow.DataType, error)

func (f LiteralTyperFunc) TypeOf(v Value) (any, arrow.DataType, error) { return f(v) }

// ArrowTyper is the default LiteralTyper.
//
//	null      -> nil      arrow.Null
//	bool      -> bool     arrow.FixedWidthTypes.Boolean
//	int       -> int64    arrow.PrimitiveTypes.Int64
//	float     -> float64  arrow.PrimitiveTypes.Float64
//	string    -> string   arrow.BinaryTypes.String
//	bytes     -> []byte   arrow.BinaryTypes.Binary
//	list      -> []any    arrow.ListOf(element type)
//
// List elements must share one type; null elements are allowed and an
// empty or all-null list has element type arrow.Null. Embedded predicates
// fail with ErrUntypeableLiteral.
type ArrowTyper struct{}

func (ArrowTyper) TypeOf(v Value) (any, arrow.DataType, error) {
	return typeOf(v)
}

func typeOf(v Value) (any, arrow.DataType, error) {
	switch v.kind {
	case KindNull:
		return nil, arrow.Null, nil
	case KindBool:
		return v.b, arrow.FixedWidthTypes.Boolean, nil
	case KindInt:
		return v.i, arrow.PrimitiveTypes.Int64, nil
	case KindFloat:
		return v.f, arrow.PrimitiveTypes.Float64, nil
	case KindString:
		return v.s, arrow.BinaryTypes.String, nil
	case KindBytes:
		return v.Bytes(), arrow.BinaryTypes.Binary, nil
	case KindList:
		return typeOfList(v.list)
	case KindPredicate:
		return nil, nil, fmt.Errorf("predicate: %w: embedded predicate %s", ErrUntypeableLiteral, v)
	default:
		return nil, nil, fmt.Errorf("predicate: %w: kind %s", ErrUntypeableLiteral, v.kind)
	}
}

func typeOfList(list []Value) (any, arrow.DataType, error) {
	elems := make([]any, len(list))
	var elemType arrow.DataType = arrow.Null
	for i, e := range list {
		raw, dt, err := typeOf(e)
		if err != nil {
			return nil, nil, fmt.Errorf("list element %d: %w", i, err)
		}
		elems[i] = raw
		if dt.ID() == arrow.NULL {
			continue
		}
		if elemType.ID() == arrow.NULL {
			elemType = dt
			continue
		}
		if !arrow.TypeEqual(elemType, dt) {
			return nil, nil, fmt.Errorf("predicate: %w: list mixes %s and %s", ErrUntypeableLiteral, elemType, dt)
		}
	}
	return elems, arrow.ListOf(elemType), nil
}
