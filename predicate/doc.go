// Package predicate defines the filter predicates a query engine hands to a
// data source so the source can skip rows before returning them.
//
// The predicate set is closed. Build trees from the exported struct types:
//
//	p := predicate.And{
//	    Left:  predicate.GreaterThan{Attribute: "age", Value: predicate.IntValue(21)},
//	    Right: predicate.In{Attribute: "address.country", Values: predicate.Values("DE", "FR")},
//	}
//
// # Column Names
//
// Attributes are dotted paths into nested struct columns. A path segment that
// contains a dot (or any other non-identifier character) is quoted with
// backticks, see package identifier:
//
//	predicate.V2References(p) // [[age] [address country]]
//	predicate.ContainsNestedColumn(p) // true
//
// # V2 Conversion
//
// ToV2 converts a tree into the expressions package representation used by
// newer connectors:
//
//	v2, err := predicate.ToV2(p)
//	// (age > 21) AND (address.country IN ('DE', 'FR'))
//
// Leaf predicates become expressions.GeneralPredicate nodes named by the
// operator table below; And, Or, Not, AlwaysTrue and AlwaysFalse map to their
// dedicated node types.
//
//	EqualTo             =
//	EqualNullSafe       <=>
//	GreaterThan         >
//	GreaterThanOrEqual  >=
//	LessThan            <
//	LessThanOrEqual     <=
//	In                  IN
//	IsNull              IS_NULL
//	IsNotNull           IS_NOT_NULL
//	StringStartsWith    STARTS_WITH
//	StringEndsWith      ENDS_WITH
//	StringContains      CONTAINS
//
// Use a Converter to plug in a different LiteralTyper or path parser.
//
// # Equality
//
// Predicates other than AlwaysTrue, AlwaysFalse, IsNull, IsNotNull and the
// string matchers do not compile under ==; use Equal. Comparing Predicate
// interface values with == still compiles and panics on such types.
// In compares its values positionally, while String sorts them.
package predicate
