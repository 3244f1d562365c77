package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/hugr-lab/pushdown-go/predicate"
)

// Node types as they appear in the "type" field.
const (
	TypeEqualTo            = "equal_to"
	TypeEqualNullSafe      = "equal_null_safe"
	TypeGreaterThan        = "greater_than"
	TypeGreaterThanOrEqual = "greater_than_or_equal"
	TypeLessThan           = "less_than"
	TypeLessThanOrEqual    = "less_than_or_equal"
	TypeIn                 = "in"
	TypeIsNull             = "is_null"
	TypeIsNotNull          = "is_not_null"
	TypeAnd                = "and"
	TypeOr                 = "or"
	TypeNot                = "not"
	TypeStringStartsWith   = "string_starts_with"
	TypeStringEndsWith     = "string_ends_with"
	TypeStringContains     = "string_contains"
	TypeAlwaysTrue         = "always_true"
	TypeAlwaysFalse        = "always_false"
)

// ErrInvalidNode is wrapped by decoding errors caused by a structurally
// invalid payload.
var ErrInvalidNode = errors.New("invalid predicate node")

// node is the serialized form shared by the JSON and msgpack codecs.
type node struct {
	Type      string  `json:"type" msgpack:"t"`
	Attribute string  `json:"attribute,omitempty" msgpack:"a,omitempty"`
	Value     *value  `json:"value,omitempty" msgpack:"v,omitempty"`
	Values    []value `json:"values,omitempty" msgpack:"vs,omitempty"`
	Text      string  `json:"text,omitempty" msgpack:"s,omitempty"`
	Left      *node   `json:"left,omitempty" msgpack:"l,omitempty"`
	Right     *node   `json:"right,omitempty" msgpack:"r,omitempty"`
	Child     *node   `json:"child,omitempty" msgpack:"c,omitempty"`
}

// value is the serialized form of predicate.Value. Exactly one payload field
// is set, selected by Kind.
type value struct {
	Kind      string  `json:"kind" msgpack:"k"`
	Bool      bool    `json:"bool,omitempty" msgpack:"b,omitempty"`
	Int       int64   `json:"int,omitempty" msgpack:"i,omitempty"`
	Float     float64 `json:"float,omitempty" msgpack:"f,omitempty"`
	Special   string  `json:"float_special,omitempty" msgpack:"fs,omitempty"`
	String    string  `json:"string,omitempty" msgpack:"s,omitempty"`
	Bytes     []byte  `json:"bytes,omitempty" msgpack:"y,omitempty"`
	List      []value `json:"list,omitempty" msgpack:"l,omitempty"`
	Predicate *node   `json:"predicate,omitempty" msgpack:"p,omitempty"`
}

func toNode(p predicate.Predicate) (*node, error) {
	if p == nil {
		return nil, fmt.Errorf("wire: %w: nil predicate", ErrInvalidNode)
	}

	switch x := predicate.Normalize(p).(type) {
	case predicate.EqualTo:
		return leaf(TypeEqualTo, x.Attribute, x.Value)
	case predicate.EqualNullSafe:
		return leaf(TypeEqualNullSafe, x.Attribute, x.Value)
	case predicate.GreaterThan:
		return leaf(TypeGreaterThan, x.Attribute, x.Value)
	case predicate.GreaterThanOrEqual:
		return leaf(TypeGreaterThanOrEqual, x.Attribute, x.Value)
	case predicate.LessThan:
		return leaf(TypeLessThan, x.Attribute, x.Value)
	case predicate.LessThanOrEqual:
		return leaf(TypeLessThanOrEqual, x.Attribute, x.Value)
	case predicate.In:
		values := make([]value, 0, len(x.Values))
		for _, v := range x.Values {
			wv, err := toValue(v)
			if err != nil {
				return nil, err
			}
			values = append(values, *wv)
		}
		return &node{Type: TypeIn, Attribute: x.Attribute, Values: values}, nil
	case predicate.IsNull:
		return &node{Type: TypeIsNull, Attribute: x.Attribute}, nil
	case predicate.IsNotNull:
		return &node{Type: TypeIsNotNull, Attribute: x.Attribute}, nil
	case predicate.And:
		return binary(TypeAnd, x.Left, x.Right)
	case predicate.Or:
		return binary(TypeOr, x.Left, x.Right)
	case predicate.Not:
		child, err := toNode(x.Child)
		if err != nil {
			return nil, err
		}
		return &node{Type: TypeNot, Child: child}, nil
	case predicate.StringStartsWith:
		return &node{Type: TypeStringStartsWith, Attribute: x.Attribute, Text: x.Value}, nil
	case predicate.StringEndsWith:
		return &node{Type: TypeStringEndsWith, Attribute: x.Attribute, Text: x.Value}, nil
	case predicate.StringContains:
		return &node{Type: TypeStringContains, Attribute: x.Attribute, Text: x.Value}, nil
	case predicate.AlwaysTrue:
		return &node{Type: TypeAlwaysTrue}, nil
	case predicate.AlwaysFalse:
		return &node{Type: TypeAlwaysFalse}, nil
	default:
		return nil, fmt.Errorf("wire: %w: unsupported predicate type %T", ErrInvalidNode, p)
	}
}

func leaf(typ, attribute string, v predicate.Value) (*node, error) {
	wv, err := toValue(v)
	if err != nil {
		return nil, err
	}
	return &node{Type: typ, Attribute: attribute, Value: wv}, nil
}

func binary(typ string, l, r predicate.Predicate) (*node, error) {
	left, err := toNode(l)
	if err != nil {
		return nil, err
	}
	right, err := toNode(r)
	if err != nil {
		return nil, err
	}
	return &node{Type: typ, Left: left, Right: right}, nil
}

func toValue(v predicate.Value) (*value, error) {
	wv := &value{Kind: v.Kind().String()}
	switch v.Kind() {
	case predicate.KindNull:
	case predicate.KindBool:
		wv.Bool = v.Bool()
	case predicate.KindInt:
		wv.Int = v.Int()
	case predicate.KindFloat:
		// JSON has no NaN or Inf.
		switch f := v.Float(); {
		case math.IsNaN(f):
			wv.Special = "NaN"
		case math.IsInf(f, 1):
			wv.Special = "Inf"
		case math.IsInf(f, -1):
			wv.Special = "-Inf"
		default:
			wv.Float = f
		}
	case predicate.KindString:
		wv.String = v.Str()
	case predicate.KindBytes:
		wv.Bytes = v.Bytes()
	case predicate.KindList:
		for _, e := range v.List() {
			we, err := toValue(e)
			if err != nil {
				return nil, err
			}
			wv.List = append(wv.List, *we)
		}
	case predicate.KindPredicate:
		n, err := toNode(v.Predicate())
		if err != nil {
			return nil, err
		}
		wv.Predicate = n
	default:
		return nil, fmt.Errorf("wire: %w: value kind %s", ErrInvalidNode, v.Kind())
	}
	return wv, nil
}

func fromNode(n *node) (predicate.Predicate, error) {
	if n == nil {
		return nil, fmt.Errorf("wire: %w: missing node", ErrInvalidNode)
	}

	switch n.Type {
	case TypeEqualTo, TypeEqualNullSafe, TypeGreaterThan, TypeGreaterThanOrEqual, TypeLessThan, TypeLessThanOrEqual:
		if n.Value == nil {
			return nil, fmt.Errorf("wire: %w: %s without value", ErrInvalidNode, n.Type)
		}
		v, err := fromValue(n.Value)
		if err != nil {
			return nil, err
		}
		switch n.Type {
		case TypeEqualTo:
			return predicate.EqualTo{Attribute: n.Attribute, Value: v}, nil
		case TypeEqualNullSafe:
			return predicate.EqualNullSafe{Attribute: n.Attribute, Value: v}, nil
		case TypeGreaterThan:
			return predicate.GreaterThan{Attribute: n.Attribute, Value: v}, nil
		case TypeGreaterThanOrEqual:
			return predicate.GreaterThanOrEqual{Attribute: n.Attribute, Value: v}, nil
		case TypeLessThan:
			return predicate.LessThan{Attribute: n.Attribute, Value: v}, nil
		default:
			return predicate.LessThanOrEqual{Attribute: n.Attribute, Value: v}, nil
		}
	case TypeIn:
		var values []predicate.Value
		for i := range n.Values {
			v, err := fromValue(&n.Values[i])
			if err != nil {
				return nil, fmt.Errorf("in value %d: %w", i, err)
			}
			values = append(values, v)
		}
		return predicate.In{Attribute: n.Attribute, Values: values}, nil
	case TypeIsNull:
		return predicate.IsNull{Attribute: n.Attribute}, nil
	case TypeIsNotNull:
		return predicate.IsNotNull{Attribute: n.Attribute}, nil
	case TypeAnd, TypeOr:
		left, err := fromNode(n.Left)
		if err != nil {
			return nil, fmt.Errorf("%s left: %w", n.Type, err)
		}
		right, err := fromNode(n.Right)
		if err != nil {
			return nil, fmt.Errorf("%s right: %w", n.Type, err)
		}
		if n.Type == TypeAnd {
			return predicate.And{Left: left, Right: right}, nil
		}
		return predicate.Or{Left: left, Right: right}, nil
	case TypeNot:
		child, err := fromNode(n.Child)
		if err != nil {
			return nil, fmt.Errorf("not child: %w", err)
		}
		return predicate.Not{Child: child}, nil
	case TypeStringStartsWith:
		return predicate.StringStartsWith{Attribute: n.Attribute, Value: n.Text}, nil
	case TypeStringEndsWith:
		return predicate.StringEndsWith{Attribute: n.Attribute, Value: n.Text}, nil
	case TypeStringContains:
		return predicate.StringContains{Attribute: n.Attribute, Value: n.Text}, nil
	case TypeAlwaysTrue:
		return predicate.True, nil
	case TypeAlwaysFalse:
		return predicate.False, nil
	default:
		return nil, fmt.Errorf("wire: %w: unknown type %q", ErrInvalidNode, n.Type)
	}
}

func fromValue(wv *value) (predicate.Value, error) {
	kind, ok := predicate.ParseKind(wv.Kind)
	if !ok {
		return predicate.Value{}, fmt.Errorf("wire: %w: unknown value kind %q", ErrInvalidNode, wv.Kind)
	}

	switch kind {
	case predicate.KindNull:
		return predicate.NullValue(), nil
	case predicate.KindBool:
		return predicate.BoolValue(wv.Bool), nil
	case predicate.KindInt:
		return predicate.IntValue(wv.Int), nil
	case predicate.KindFloat:
		switch wv.Special {
		case "":
			return predicate.FloatValue(wv.Float), nil
		case "NaN":
			return predicate.FloatValue(math.NaN()), nil
		case "Inf":
			return predicate.FloatValue(math.Inf(1)), nil
		case "-Inf":
			return predicate.FloatValue(math.Inf(-1)), nil
		default:
			return predicate.Value{}, fmt.Errorf("wire: %w: unknown float %q", ErrInvalidNode, wv.Special)
		}
	case predicate.KindString:
		return predicate.StringValue(wv.String), nil
	case predicate.KindBytes:
		return predicate.BytesValue(wv.Bytes), nil
	case predicate.KindList:
		elems := make([]predicate.Value, 0, len(wv.List))
		for i := range wv.List {
			e, err := fromValue(&wv.List[i])
			if err != nil {
				return predicate.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			elems = append(elems, e)
		}
		return predicate.ListValue(elems...), nil
	default:
		p, err := fromNode(wv.Predicate)
		if err != nil {
			return predicate.Value{}, fmt.Errorf("embedded predicate: %w", err)
		}
		return predicate.PredicateValue(p), nil
	}
}
