package predicate

// Equal reports whether a and b are the same predicate. In values are
// compared position by position, so In(a,[1,2]) and In(a,[2,1]) differ even
// though they print identically. A pointer variant equals its value form.
func Equal(a, b Predicate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	a, b = normalize(a), normalize(b)

	switch x := a.(type) {
	case EqualTo:
		y, ok := b.(EqualTo)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case EqualNullSafe:
		y, ok := b.(EqualNullSafe)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case GreaterThan:
		y, ok := b.(GreaterThan)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case GreaterThanOrEqual:
		y, ok := b.(GreaterThanOrEqual)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case LessThan:
		y, ok := b.(LessThan)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case LessThanOrEqual:
		y, ok := b.(LessThanOrEqual)
		return ok && x.Attribute == y.Attribute && x.Value.Equal(y.Value)
	case In:
		y, ok := b.(In)
		return ok && x.Attribute == y.Attribute && valuesEqual(x.Values, y.Values)
	case IsNull, IsNotNull, StringStartsWith, StringEndsWith, StringContains, AlwaysTrue, AlwaysFalse:
		// all fields are comparable
		return a == b
	case And:
		y, ok := b.(And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Or:
		y, ok := b.(Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.Child, y.Child)
	}
	return false
}
