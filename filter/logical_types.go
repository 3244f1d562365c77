package filter

// LogicalTypeID is a DuckDB type name as it appears in "return_type.id".
// Only the types whose constants can be pushed down get a name here; any
// other id (DATE, DECIMAL, UUID, ...) is kept verbatim and makes the
// constant untranslatable.
type LogicalTypeID string

const (
	TypeIDInvalid LogicalTypeID = "INVALID"
	TypeIDBoolean LogicalTypeID = "BOOLEAN"

	TypeIDTinyInt  LogicalTypeID = "TINYINT"
	TypeIDSmallInt LogicalTypeID = "SMALLINT"
	TypeIDInteger  LogicalTypeID = "INTEGER"
	TypeIDBigInt   LogicalTypeID = "BIGINT"

	TypeIDUTinyInt  LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt LogicalTypeID = "USMALLINT"
	TypeIDUInteger  LogicalTypeID = "UINTEGER"
	TypeIDUBigInt   LogicalTypeID = "UBIGINT"

	TypeIDFloat  LogicalTypeID = "FLOAT"
	TypeIDDouble LogicalTypeID = "DOUBLE"

	TypeIDChar    LogicalTypeID = "CHAR"
	TypeIDVarchar LogicalTypeID = "VARCHAR"
	TypeIDBlob    LogicalTypeID = "BLOB"

	TypeIDList  LogicalTypeID = "LIST"
	TypeIDArray LogicalTypeID = "ARRAY"
)

// typeAliases folds DuckDB's alternative spellings onto the names above.
var typeAliases = map[LogicalTypeID]LogicalTypeID{
	"BOOL":   TypeIDBoolean,
	"INT1":   TypeIDTinyInt,
	"INT2":   TypeIDSmallInt,
	"INT":    TypeIDInteger,
	"INT4":   TypeIDInteger,
	"INT8":   TypeIDBigInt,
	"UINT1":  TypeIDUTinyInt,
	"UINT2":  TypeIDUSmallInt,
	"UINT4":  TypeIDUInteger,
	"UINT8":  TypeIDUBigInt,
	"REAL":   TypeIDFloat,
	"FLOAT4": TypeIDFloat,
	"FLOAT8": TypeIDDouble,
	"STRING": TypeIDVarchar,
	"TEXT":   TypeIDVarchar,
	"BYTEA":  TypeIDBlob,
}

// Normalize resolves an alias to its canonical id.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	if canonical, ok := typeAliases[t]; ok {
		return canonical
	}
	return t
}

// IsString reports whether t is a character type.
func (t LogicalTypeID) IsString() bool {
	return t == TypeIDVarchar || t == TypeIDChar
}

// LogicalType is the subset of a DuckDB logical type the translator needs.
type LogicalType struct {
	ID LogicalTypeID `json:"id"`
}

// Value is a constant from the filter JSON. Data is nil for NULL and
// otherwise bool, int64, uint64, float64, string, []byte or []Value by type;
// values of types not listed above keep the raw decoded JSON.
type Value struct {
	Type   LogicalType
	IsNull bool
	Data   any
}

// Base64String is how DuckDB serializes strings that are not valid UTF-8.
type Base64String struct {
	Base64 string `json:"base64"`
}
