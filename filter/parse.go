package filter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Parse parses filter pushdown JSON from DuckDB Airport extension.
// Returns a FilterPushdown containing parsed expressions and column bindings.
//
// Error conditions:
//   - Invalid JSON syntax
//   - Malformed operands or constant values
//
// Expression classes that cannot take part in pushdown are parsed as
// UnsupportedExpression rather than failing.
func Parse(data []byte) (*FilterPushdown, error) {
	if len(data) == 0 {
		return &FilterPushdown{}, nil
	}

	var raw rawFilterPushdown
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("filter: invalid JSON: %w", err)
	}

	fp := &FilterPushdown{
		ColumnBindings: raw.ColumnBindings,
		Filters:        make([]Expression, 0, len(raw.Filters)),
	}

	for i, rawExpr := range raw.Filters {
		expr, err := parseExpression(rawExpr)
		if err != nil {
			return nil, fmt.Errorf("filter: error parsing filter %d: %w", i, err)
		}
		fp.Filters = append(fp.Filters, expr)
	}

	return fp, nil
}

type rawFilterPushdown struct {
	Filters        []json.RawMessage `json:"filters"`
	ColumnBindings []string          `json:"column_binding_names_by_index"`
}

// rawExpression holds the union of the fields used by the supported
// expression classes. Fields a class does not use stay empty.
type rawExpression struct {
	ExpressionClass string            `json:"expression_class"`
	Type            string            `json:"type"`
	Alias           string            `json:"alias"`
	Left            json.RawMessage   `json:"left"`
	Right           json.RawMessage   `json:"right"`
	Children        []json.RawMessage `json:"children"`
	Child           json.RawMessage   `json:"child"`
	Value           json.RawMessage   `json:"value"`
	ReturnType      json.RawMessage   `json:"return_type"`
	Binding         ColumnBinding     `json:"binding"`
	Name            string            `json:"name"`
	TryCast         bool              `json:"try_cast"`
	Input           json.RawMessage   `json:"input"`
	Lower           json.RawMessage   `json:"lower"`
	Upper           json.RawMessage   `json:"upper"`
	LowerInclusive  bool              `json:"lower_inclusive"`
	UpperInclusive  bool              `json:"upper_inclusive"`
}

func parseExpression(data json.RawMessage) (Expression, error) {
	var raw rawExpression
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	base := Header{
		ExprClass: ExpressionClass(raw.ExpressionClass),
		ExprType:  ExpressionType(raw.Type),
		ExprAlias: raw.Alias,
	}

	switch base.ExprClass {
	case ClassBoundComparison:
		left, err := parseExpression(raw.Left)
		if err != nil {
			return nil, fmt.Errorf("invalid left operand: %w", err)
		}
		right, err := parseExpression(raw.Right)
		if err != nil {
			return nil, fmt.Errorf("invalid right operand: %w", err)
		}
		return &ComparisonExpression{Header: base, Left: left, Right: right}, nil

	case ClassBoundConjunction:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &ConjunctionExpression{Header: base, Children: children}, nil

	case ClassBoundConstant:
		value, err := parseValue(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid constant expression: %w", err)
		}
		return &ConstantExpression{Header: base, Value: value}, nil

	case ClassBoundColumnRef:
		return &ColumnRefExpression{
			Header:     base,
			Binding:    raw.Binding,
			ReturnType: parseLogicalType(raw.ReturnType),
		}, nil

	case ClassBoundFunction:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &FunctionExpression{
			Header:     base,
			Name:       raw.Name,
			Children:   children,
			ReturnType: parseLogicalType(raw.ReturnType),
		}, nil

	case ClassBoundCast:
		child, err := parseExpression(raw.Child)
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		return &CastExpression{
			Header:     base,
			Child:      child,
			ReturnType: parseLogicalType(raw.ReturnType),
			TryCast:    raw.TryCast,
		}, nil

	case ClassBoundBetween:
		input, err := parseExpression(raw.Input)
		if err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		lower, err := parseExpression(raw.Lower)
		if err != nil {
			return nil, fmt.Errorf("invalid lower bound: %w", err)
		}
		upper, err := parseExpression(raw.Upper)
		if err != nil {
			return nil, fmt.Errorf("invalid upper bound: %w", err)
		}
		return &BetweenExpression{
			Header:         base,
			Input:          input,
			Lower:          lower,
			Upper:          upper,
			LowerInclusive: raw.LowerInclusive,
			UpperInclusive: raw.UpperInclusive,
		}, nil

	case ClassBoundOperator:
		children, err := parseChildren(raw.Children)
		if err != nil {
			return nil, err
		}
		return &OperatorExpression{
			Header:     base,
			Children:   children,
			ReturnType: parseLogicalType(raw.ReturnType),
		}, nil

	default:
		return &UnsupportedExpression{Header: base}, nil
	}
}

func parseChildren(raw []json.RawMessage) ([]Expression, error) {
	children := make([]Expression, 0, len(raw))
	for i, child := range raw {
		expr, err := parseExpression(child)
		if err != nil {
			return nil, fmt.Errorf("invalid child %d: %w", i, err)
		}
		children = append(children, expr)
	}
	return children, nil
}

// parseLogicalType reads the type id; malformed types become INVALID.
func parseLogicalType(data json.RawMessage) LogicalType {
	if len(data) == 0 || string(data) == "null" {
		return LogicalType{}
	}
	var raw struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogicalType{ID: TypeIDInvalid}
	}
	return LogicalType{ID: LogicalTypeID(raw.ID).Normalize()}
}

func parseValue(data json.RawMessage) (Value, error) {
	if len(data) == 0 || string(data) == "null" {
		return Value{IsNull: true}, nil
	}

	var raw struct {
		Type   json.RawMessage `json:"type"`
		IsNull bool            `json:"is_null"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("invalid value: %w", err)
	}

	v := Value{Type: parseLogicalType(raw.Type), IsNull: raw.IsNull}
	if raw.IsNull || len(raw.Value) == 0 || string(raw.Value) == "null" {
		v.IsNull = true
		return v, nil
	}

	var err error
	v.Data, err = parseValueData(raw.Value, v.Type)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value data: %w", err)
	}
	return v, nil
}

func parseValueData(data json.RawMessage, lt LogicalType) (any, error) {
	switch lt.ID {
	case TypeIDBoolean:
		var v bool
		err := json.Unmarshal(data, &v)
		return v, err

	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt:
		var v int64
		err := json.Unmarshal(data, &v)
		return v, err

	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		var v uint64
		err := json.Unmarshal(data, &v)
		return v, err

	case TypeIDFloat, TypeIDDouble:
		var v float64
		err := json.Unmarshal(data, &v)
		return v, err

	case TypeIDVarchar, TypeIDChar, TypeIDBlob:
		var b64 Base64String
		if err := json.Unmarshal(data, &b64); err == nil && b64.Base64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(b64.Base64)
			if err != nil {
				return nil, fmt.Errorf("invalid base64: %w", err)
			}
			if lt.ID == TypeIDBlob {
				return decoded, nil
			}
			return string(decoded), nil
		}
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if lt.ID == TypeIDBlob {
			return []byte(s), nil
		}
		return s, nil

	case TypeIDList, TypeIDArray:
		var raw struct {
			Children []json.RawMessage `json:"children"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		children := make([]Value, 0, len(raw.Children))
		for _, child := range raw.Children {
			v, err := parseValue(child)
			if err != nil {
				return nil, err
			}
			children = append(children, v)
		}
		return children, nil

	default:
		// decimals, temporal and nested types are kept as decoded JSON
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
