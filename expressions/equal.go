package expressions

import (
	"bytes"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
)

// Equal reports whether two expression trees are structurally identical.
// Literal data types are compared with arrow.TypeEqual.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *FieldReference:
		y, ok := b.(*FieldReference)
		if !ok || len(x.Parts) != len(y.Parts) {
			return false
		}
		for i := range x.Parts {
			if x.Parts[i] != y.Parts[i] {
				return false
			}
		}
		return true
	case *LiteralValue:
		y, ok := b.(*LiteralValue)
		if !ok {
			return false
		}
		if (x.DataType == nil) != (y.DataType == nil) {
			return false
		}
		if x.DataType != nil && !arrow.TypeEqual(x.DataType, y.DataType) {
			return false
		}
		return literalEqual(x.Value, y.Value)
	case *GeneralPredicate:
		y, ok := b.(*GeneralPredicate)
		if !ok || x.Operator != y.Operator || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.Child, y.Child)
	case AlwaysTrue, *AlwaysTrue:
		switch b.(type) {
		case AlwaysTrue, *AlwaysTrue:
			return true
		}
		return false
	case AlwaysFalse, *AlwaysFalse:
		switch b.(type) {
		case AlwaysFalse, *AlwaysFalse:
			return true
		}
		return false
	default:
		return false
	}
}

func literalEqual(a, b any) bool {
	switch x := a.(type) {
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !literalEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		// Custom typers may hand back maps or structs holding slices,
		// which == would panic on.
		return reflect.DeepEqual(a, b)
	}
}

// References returns the field paths of every NamedReference in e,
// in pre-order.
func References(e Expression) [][]string {
	var refs [][]string
	walk(e, func(n Expression) {
		if ref, ok := n.(NamedReference); ok {
			refs = append(refs, ref.FieldNames())
		}
	})
	return refs
}

func walk(e Expression, fn func(Expression)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children() {
		walk(c, fn)
	}
}
