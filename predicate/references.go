package predicate

import (
	"fmt"

	"github.com/hugr-lab/pushdown-go/identifier"
)

// References returns the column names referenced by p, left to right and
// outer to inner. Duplicates are kept. A nil predicate references nothing.
func References(p Predicate) []string {
	return appendReferences(nil, p)
}

func appendReferences(refs []string, p Predicate) []string {
	if p == nil {
		return refs
	}
	switch x := normalize(p).(type) {
	case EqualTo:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case EqualNullSafe:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case GreaterThan:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case GreaterThanOrEqual:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case LessThan:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case LessThanOrEqual:
		return appendValueReferences(append(refs, x.Attribute), x.Value)
	case In:
		refs = append(refs, x.Attribute)
		for _, v := range x.Values {
			refs = appendValueReferences(refs, v)
		}
		return refs
	case IsNull:
		return append(refs, x.Attribute)
	case IsNotNull:
		return append(refs, x.Attribute)
	case And:
		return appendReferences(appendReferences(refs, x.Left), x.Right)
	case Or:
		return appendReferences(appendReferences(refs, x.Left), x.Right)
	case Not:
		return appendReferences(refs, x.Child)
	case StringStartsWith:
		return append(refs, x.Attribute)
	case StringEndsWith:
		return append(refs, x.Attribute)
	case StringContains:
		return append(refs, x.Attribute)
	case AlwaysTrue, AlwaysFalse:
		return refs
	default:
		panic(fmt.Sprintf("predicate: unknown predicate type %T", p))
	}
}

// appendValueReferences adds the references of a predicate embedded in v.
// Scalars contribute nothing.
func appendValueReferences(refs []string, v Value) []string {
	if v.kind == KindPredicate {
		return appendReferences(refs, v.pred)
	}
	return refs
}

// V2References parses every entry of References(p) into path segments.
// Entries that are not valid multi-part identifiers become a single segment
// holding the original text.
func V2References(p Predicate) [][]string {
	return v2References(p, identifier.ParseMultipart)
}

func v2References(p Predicate, parse func(string) ([]string, error)) [][]string {
	refs := References(p)
	out := make([][]string, len(refs))
	for i, ref := range refs {
		out[i] = columnPath(ref, parse)
	}
	return out
}

// ContainsNestedColumn reports whether p references a field nested inside a
// struct column.
func ContainsNestedColumn(p Predicate) bool {
	for _, path := range V2References(p) {
		if len(path) > 1 {
			return true
		}
	}
	return false
}

// columnPath parses attribute, falling back to one opaque segment.
func columnPath(attribute string, parse func(string) ([]string, error)) []string {
	parts, err := parse(attribute)
	if err != nil || len(parts) == 0 {
		return []string{attribute}
	}
	return parts
}

// Normalize returns the value form of a pointer variant such as *EqualTo.
// Any other predicate is returned unchanged.
func Normalize(p Predicate) Predicate { return normalize(p) }

func normalize(p Predicate) Predicate {
	switch x := p.(type) {
	case *EqualTo:
		return *x
	case *EqualNullSafe:
		return *x
	case *GreaterThan:
		return *x
	case *GreaterThanOrEqual:
		return *x
	case *LessThan:
		return *x
	case *LessThanOrEqual:
		return *x
	case *In:
		return *x
	case *IsNull:
		return *x
	case *IsNotNull:
		return *x
	case *And:
		return *x
	case *Or:
		return *x
	case *Not:
		return *x
	case *StringStartsWith:
		return *x
	case *StringEndsWith:
		return *x
	case *StringContains:
		return *x
	case *AlwaysTrue:
		return *x
	case *AlwaysFalse:
		return *x
	}
	return p
}
