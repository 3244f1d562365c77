package predicate

import (
	"fmt"
	"slices"
	"strings"
)

// format renders p as Name(field,field). In sorts its formatted elements so
// that the output does not depend on element order.
func format(p Predicate) string {
	switch x := normalize(p).(type) {
	case EqualTo:
		return "EqualTo(" + x.Attribute + "," + x.Value.String() + ")"
	case EqualNullSafe:
		return "EqualNullSafe(" + x.Attribute + "," + x.Value.String() + ")"
	case GreaterThan:
		return "GreaterThan(" + x.Attribute + "," + x.Value.String() + ")"
	case GreaterThanOrEqual:
		return "GreaterThanOrEqual(" + x.Attribute + "," + x.Value.String() + ")"
	case LessThan:
		return "LessThan(" + x.Attribute + "," + x.Value.String() + ")"
	case LessThanOrEqual:
		return "LessThanOrEqual(" + x.Attribute + "," + x.Value.String() + ")"
	case In:
		elems := make([]string, len(x.Values))
		for i, v := range x.Values {
			elems[i] = v.String()
		}
		slices.Sort(elems)
		return "In(" + x.Attribute + ", [" + strings.Join(elems, ",") + "])"
	case IsNull:
		return "IsNull(" + x.Attribute + ")"
	case IsNotNull:
		return "IsNotNull(" + x.Attribute + ")"
	case And:
		return "And(" + formatChild(x.Left) + "," + formatChild(x.Right) + ")"
	case Or:
		return "Or(" + formatChild(x.Left) + "," + formatChild(x.Right) + ")"
	case Not:
		return "Not(" + formatChild(x.Child) + ")"
	case StringStartsWith:
		return "StringStartsWith(" + x.Attribute + "," + x.Value + ")"
	case StringEndsWith:
		return "StringEndsWith(" + x.Attribute + "," + x.Value + ")"
	case StringContains:
		return "StringContains(" + x.Attribute + "," + x.Value + ")"
	case AlwaysTrue:
		return "AlwaysTrue()"
	case AlwaysFalse:
		return "AlwaysFalse()"
	default:
		panic(fmt.Sprintf("predicate: unknown predicate type %T", p))
	}
}

func formatChild(p Predicate) string {
	if p == nil {
		return "null"
	}
	return p.String()
}
