package predicate

// Predicate is a filter condition that can be pushed down to a data source.
// The set of implementations is closed: EqualTo, EqualNullSafe, GreaterThan,
// GreaterThanOrEqual, LessThan, LessThanOrEqual, In, IsNull, IsNotNull,
// And, Or, Not, StringStartsWith, StringEndsWith, StringContains,
// AlwaysTrue and AlwaysFalse.
//
// Predicates are immutable values and safe for concurrent use.
type Predicate interface {
	// References returns the column names referenced by the predicate,
	// left to right, without deduplication.
	References() []string

	// String returns a deterministic human-readable form.
	String() string

	predicateMarker()
}

// EqualTo is true when the column equals Value. NULL on either side yields NULL.
type EqualTo struct {
	Attribute string
	Value     Value
}

// EqualNullSafe is like EqualTo but NULL equals NULL and NULL never equals a
// non-NULL value.
type EqualNullSafe struct {
	Attribute string
	Value     Value
}

// GreaterThan is true when the column is greater than Value.
type GreaterThan struct {
	Attribute string
	Value     Value
}

// GreaterThanOrEqual is true when the column is greater than or equal to Value.
type GreaterThanOrEqual struct {
	Attribute string
	Value     Value
}

// LessThan is true when the column is less than Value.
type LessThan struct {
	Attribute string
	Value     Value
}

// LessThanOrEqual is true when the column is less than or equal to Value.
type LessThanOrEqual struct {
	Attribute string
	Value     Value
}

// In is true when the column equals any element of Values. Equality between
// two In predicates is positional; String sorts the elements.
type In struct {
	Attribute string
	Values    []Value
}

// IsNull is true when the column is NULL.
type IsNull struct {
	Attribute string
}

// IsNotNull is true when the column is not NULL.
type IsNotNull struct {
	Attribute string
}

// noCompare makes composite predicates fail to compile under ==, which
// would otherwise panic at run time on leaves holding a Value.
type noCompare [0]func()

// And is true when both Left and Right are true.
type And struct {
	Left  Predicate
	Right Predicate

	_ noCompare
}

// Or is true when either Left or Right is true.
type Or struct {
	Left  Predicate
	Right Predicate

	_ noCompare
}

// Not negates Child.
type Not struct {
	Child Predicate

	_ noCompare
}

// StringStartsWith is true when the string column starts with Value.
type StringStartsWith struct {
	Attribute string
	Value     string
}

// StringEndsWith is true when the string column ends with Value.
type StringEndsWith struct {
	Attribute string
	Value     string
}

// StringContains is true when the string column contains Value.
type StringContains struct {
	Attribute string
	Value     string
}

// AlwaysTrue matches every row.
type AlwaysTrue struct{}

// AlwaysFalse matches no row.
type AlwaysFalse struct{}

// True and False are the default constant predicates. They are identical to
// AlwaysTrue{} and AlwaysFalse{}.
var (
	True  Predicate = AlwaysTrue{}
	False Predicate = AlwaysFalse{}
)

func (p EqualTo) References() []string            { return References(p) }
func (p EqualNullSafe) References() []string      { return References(p) }
func (p GreaterThan) References() []string        { return References(p) }
func (p GreaterThanOrEqual) References() []string { return References(p) }
func (p LessThan) References() []string           { return References(p) }
func (p LessThanOrEqual) References() []string    { return References(p) }
func (p In) References() []string                 { return References(p) }
func (p IsNull) References() []string             { return References(p) }
func (p IsNotNull) References() []string          { return References(p) }
func (p And) References() []string                { return References(p) }
func (p Or) References() []string                 { return References(p) }
func (p Not) References() []string                { return References(p) }
func (p StringStartsWith) References() []string   { return References(p) }
func (p StringEndsWith) References() []string     { return References(p) }
func (p StringContains) References() []string     { return References(p) }
func (p AlwaysTrue) References() []string         { return References(p) }
func (p AlwaysFalse) References() []string        { return References(p) }

func (p EqualTo) String() string            { return format(p) }
func (p EqualNullSafe) String() string      { return format(p) }
func (p GreaterThan) String() string        { return format(p) }
func (p GreaterThanOrEqual) String() string { return format(p) }
func (p LessThan) String() string           { return format(p) }
func (p LessThanOrEqual) String() string    { return format(p) }
func (p In) String() string                 { return format(p) }
func (p IsNull) String() string             { return format(p) }
func (p IsNotNull) String() string          { return format(p) }
func (p And) String() string                { return format(p) }
func (p Or) String() string                 { return format(p) }
func (p Not) String() string                { return format(p) }
func (p StringStartsWith) String() string   { return format(p) }
func (p StringEndsWith) String() string     { return format(p) }
func (p StringContains) String() string     { return format(p) }
func (p AlwaysTrue) String() string         { return format(p) }
func (p AlwaysFalse) String() string        { return format(p) }

func (EqualTo) predicateMarker()            {}
func (EqualNullSafe) predicateMarker()      {}
func (GreaterThan) predicateMarker()        {}
func (GreaterThanOrEqual) predicateMarker() {}
func (LessThan) predicateMarker()           {}
func (LessThanOrEqual) predicateMarker()    {}
func (In) predicateMarker()                 {}
func (IsNull) predicateMarker()             {}
func (IsNotNull) predicateMarker()          {}
func (And) predicateMarker()                {}
func (Or) predicateMarker()                 {}
func (Not) predicateMarker()                {}
func (StringStartsWith) predicateMarker()   {}
func (StringEndsWith) predicateMarker()     {}
func (StringContains) predicateMarker()     {}
func (AlwaysTrue) predicateMarker()         {}
func (AlwaysFalse) predicateMarker()        {}
