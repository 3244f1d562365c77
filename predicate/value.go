package predicate

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	// KindPredicate marks a value that embeds a predicate. Planners do not
	// normally produce these; References descends into them.
	KindPredicate
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindBytes:     "bytes",
	KindList:      "list",
	KindPredicate: "predicate",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value is an immutable scalar (or list of scalars) compared against a
// column. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	list []Value
	pred Predicate
}

func NullValue() Value            { return Value{} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value      { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func BytesValue(b []byte) Value   { return Value{kind: KindBytes, raw: bytes.Clone(b)} }
func ListValue(vs ...Value) Value { return Value{kind: KindList, list: append([]Value(nil), vs...)} }

// PredicateValue wraps a predicate as a value.
func PredicateValue(p Predicate) Value { return Value{kind: KindPredicate, pred: p} }

// ValueOf converts a Go value into a Value. Supported inputs are nil, bool,
// all integer and float types, string, []byte, []any and Value itself.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint:
		if uint64(x) > 1<<63-1 {
			return Value{}, fmt.Errorf("predicate: %d overflows int64", x)
		}
		return IntValue(int64(x)), nil
	case uint64:
		if x > 1<<63-1 {
			return Value{}, fmt.Errorf("predicate: %d overflows int64", x)
		}
		return IntValue(int64(x)), nil
	case float32:
		return FloatValue(float64(x)), nil
	case float64:
		return FloatValue(x), nil
	case string:
		return StringValue(x), nil
	case []byte:
		return BytesValue(x), nil
	case []any:
		vs := make([]Value, len(x))
		for i, e := range x {
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			vs[i] = ev
		}
		return Value{kind: KindList, list: vs}, nil
	case Predicate:
		return PredicateValue(x), nil
	default:
		return Value{}, fmt.Errorf("predicate: unsupported value type %T", v)
	}
}

// MustValueOf is like ValueOf but panics on error.
func MustValueOf(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Values converts each argument with MustValueOf.
func Values(vs ...any) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = MustValueOf(v)
	}
	return out
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Bool() bool     { return v.b }
func (v Value) Int() int64     { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Str() string    { return v.s }

// Bytes returns a copy of the byte content.
func (v Value) Bytes() []byte { return bytes.Clone(v.raw) }

// List returns a copy of the list elements.
func (v Value) List() []Value { return append([]Value(nil), v.list...) }

// Predicate returns the embedded predicate, or nil.
func (v Value) Predicate() Predicate { return v.pred }

// Equal reports whether v and o hold the same kind and content. Lists are
// compared element by element in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindList:
		return valuesEqual(v.list, o.list)
	case KindPredicate:
		return Equal(v.pred, o.pred)
	}
	return false
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBytes:
		return "0x" + hex.EncodeToString(v.raw)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindPredicate:
		if v.pred == nil {
			return "null"
		}
		return v.pred.String()
	}
	return ""
}
