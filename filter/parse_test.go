package filter

import (
	"bytes"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		fp, err := Parse(data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(fp.Filters) != 0 {
			t.Errorf("expected 0 filters, got %d", len(fp.Filters))
		}
	}
}

func TestParseSimpleEquality(t *testing.T) {
	// WHERE id = 42
	json := []byte(`{
		"filters": [
			{
				"expression_class": "BOUND_COMPARISON",
				"type": "COMPARE_EQUAL",
				"alias": "",
				"left": {
					"expression_class": "BOUND_COLUMN_REF",
					"type": "BOUND_COLUMN_REF",
					"alias": "",
					"return_type": {"id": "INTEGER", "type_info": null},
					"binding": {"table_index": 0, "column_index": 0},
					"depth": 0
				},
				"right": {
					"expression_class": "BOUND_CONSTANT",
					"type": "VALUE_CONSTANT",
					"alias": "",
					"value": {
						"type": {"id": "INTEGER", "type_info": null},
						"is_null": false,
						"value": 42
					}
				}
			}
		],
		"column_binding_names_by_index": ["id", "name", "value"]
	}`)

	fp, err := Parse(json)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(fp.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(fp.Filters))
	}
	if len(fp.ColumnBindings) != 3 {
		t.Errorf("expected 3 column bindings, got %d", len(fp.ColumnBindings))
	}

	comp, ok := fp.Filters[0].(*ComparisonExpression)
	if !ok {
		t.Fatalf("expected ComparisonExpression, got %T", fp.Filters[0])
	}
	if comp.Class() != ClassBoundComparison || comp.Type() != TypeCompareEqual {
		t.Errorf("expected BOUND_COMPARISON/COMPARE_EQUAL, got %s/%s", comp.Class(), comp.Type())
	}

	colRef, ok := comp.Left.(*ColumnRefExpression)
	if !ok {
		t.Fatalf("expected ColumnRefExpression on left, got %T", comp.Left)
	}
	name, err := fp.ColumnName(colRef)
	if err != nil {
		t.Errorf("ColumnName failed: %v", err)
	}
	if name != "id" {
		t.Errorf("expected column name 'id', got '%s'", name)
	}
	if colRef.ReturnType.ID != TypeIDInteger {
		t.Errorf("expected INTEGER return type, got %s", colRef.ReturnType.ID)
	}

	constExpr, ok := comp.Right.(*ConstantExpression)
	if !ok {
		t.Fatalf("expected ConstantExpression on right, got %T", comp.Right)
	}
	if v, ok := constExpr.Value.Data.(int64); !ok || v != 42 {
		t.Errorf("expected value 42, got %v", constExpr.Value.Data)
	}
}

func TestParseConjunction(t *testing.T) {
	// WHERE status = 'active' OR age > 18
	data := jsonPushdown([]string{"status", "age"},
		jsonConjunction("CONJUNCTION_OR",
			jsonComparison("COMPARE_EQUAL", jsonColumn(0, "VARCHAR"), jsonConstant("VARCHAR", `"active"`)),
			jsonComparison("COMPARE_GREATERTHAN", jsonColumn(1, "INTEGER"), jsonConstant("INTEGER", "18")),
		))

	fp, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	conj, ok := fp.Filters[0].(*ConjunctionExpression)
	if !ok {
		t.Fatalf("expected ConjunctionExpression, got %T", fp.Filters[0])
	}
	if conj.Type() != TypeConjunctionOr {
		t.Errorf("expected CONJUNCTION_OR, got %s", conj.Type())
	}
	if len(conj.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(conj.Children))
	}
	if c, ok := conj.Children[1].(*ComparisonExpression); !ok || c.Type() != TypeCompareGreaterThan {
		t.Errorf("expected COMPARE_GREATERTHAN child, got %T", conj.Children[1])
	}
}

func TestParseFunction(t *testing.T) {
	// WHERE prefix(name, 'jo')
	data := jsonPushdown([]string{"name"},
		jsonFunction("prefix", "BOOLEAN", jsonColumn(0, "VARCHAR"), jsonConstant("VARCHAR", `"jo"`)))

	fp, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	fn, ok := fp.Filters[0].(*FunctionExpression)
	if !ok {
		t.Fatalf("expected FunctionExpression, got %T", fp.Filters[0])
	}
	if fn.Name != "prefix" {
		t.Errorf("expected function name 'prefix', got '%s'", fn.Name)
	}
	if len(fn.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(fn.Children))
	}
	if fn.ReturnType.ID != TypeIDBoolean {
		t.Errorf("expected BOOLEAN return type, got %s", fn.ReturnType.ID)
	}
}

func TestParseCast(t *testing.T) {
	// WHERE TRY_CAST(value AS INTEGER) > 10
	data := jsonPushdown([]string{"value"}, jsonComparison("COMPARE_GREATERTHAN", `{
		"expression_class": "BOUND_CAST",
		"type": "CAST",
		"alias": "",
		"child": `+jsonColumn(0, "VARCHAR")+`,
		"return_type": {"id": "INT4", "type_info": null},
		"try_cast": true
	}`, jsonConstant("INTEGER", "10")))

	fp, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	comp := fp.Filters[0].(*ComparisonExpression)
	castExpr, ok := comp.Left.(*CastExpression)
	if !ok {
		t.Fatalf("expected CastExpression on left, got %T", comp.Left)
	}
	// INT4 is an alias of INTEGER
	if castExpr.ReturnType.ID != TypeIDInteger {
		t.Errorf("expected INTEGER return type, got %s", castExpr.ReturnType.ID)
	}
	if !castExpr.TryCast {
		t.Error("expected TryCast to be true")
	}
	if _, ok := castExpr.Child.(*ColumnRefExpression); !ok {
		t.Errorf("expected ColumnRefExpression child, got %T", castExpr.Child)
	}
}

func TestParseBetween(t *testing.T) {
	// WHERE price BETWEEN 100 AND 500
	data := jsonPushdown([]string{"price"},
		jsonBetween(jsonColumn(0, "BIGINT"), jsonConstant("BIGINT", "100"), jsonConstant("BIGINT", "500"), true, false))

	fp, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	between, ok := fp.Filters[0].(*BetweenExpression)
	if !ok {
		t.Fatalf("expected BetweenExpression, got %T", fp.Filters[0])
	}
	if !between.LowerInclusive || between.UpperInclusive {
		t.Error("expected inclusive lower and exclusive upper bound")
	}
	if _, ok := between.Input.(*ColumnRefExpression); !ok {
		t.Fatalf("expected ColumnRefExpression for input, got %T", between.Input)
	}
}

func TestParseOperator(t *testing.T) {
	// WHERE deleted_at IS NULL
	data := jsonPushdown([]string{"deleted_at"}, jsonOperator("OPERATOR_IS_NULL", jsonColumn(0, "TIMESTAMP")))

	fp, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	op, ok := fp.Filters[0].(*OperatorExpression)
	if !ok {
		t.Fatalf("expected OperatorExpression, got %T", fp.Filters[0])
	}
	if op.Type() != TypeOperatorIsNull {
		t.Errorf("expected OPERATOR_IS_NULL, got %s", op.Type())
	}
	if len(op.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(op.Children))
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T, v Value)
	}{
		{
			name:  "unsigned",
			value: jsonConstant("UBIGINT", "18446744073709551615"),
			check: func(t *testing.T, v Value) {
				if d, ok := v.Data.(uint64); !ok || d != 18446744073709551615 {
					t.Errorf("expected max uint64, got %v (%T)", v.Data, v.Data)
				}
			},
		},
		{
			name:  "double",
			value: jsonConstant("FLOAT8", "2.5"),
			check: func(t *testing.T, v Value) {
				if v.Type.ID != TypeIDDouble {
					t.Errorf("expected DOUBLE, got %s", v.Type.ID)
				}
				if d, ok := v.Data.(float64); !ok || d != 2.5 {
					t.Errorf("expected 2.5, got %v", v.Data)
				}
			},
		},
		{
			name:  "base64 varchar",
			value: jsonConstant("VARCHAR", `{"base64": "aGVsbG8="}`),
			check: func(t *testing.T, v Value) {
				if d, ok := v.Data.(string); !ok || d != "hello" {
					t.Errorf("expected 'hello', got %v", v.Data)
				}
			},
		},
		{
			name:  "blob",
			value: jsonConstant("BLOB", `{"base64": "AQID"}`),
			check: func(t *testing.T, v Value) {
				if d, ok := v.Data.([]byte); !ok || !bytes.Equal(d, []byte{1, 2, 3}) {
					t.Errorf("expected bytes 010203, got %v", v.Data)
				}
			},
		},
		{
			name: "list",
			value: jsonConstant("LIST", `{"children": [
				{"type": {"id": "INTEGER"}, "is_null": false, "value": 1},
				{"type": {"id": "INTEGER"}, "is_null": true}
			]}`),
			check: func(t *testing.T, v Value) {
				elems, ok := v.Data.([]Value)
				if !ok || len(elems) != 2 {
					t.Fatalf("expected 2 list elements, got %v", v.Data)
				}
				if elems[0].Data != int64(1) || !elems[1].IsNull {
					t.Errorf("unexpected list elements %+v", elems)
				}
			},
		},
		{
			name:  "null",
			value: jsonNull("VARCHAR"),
			check: func(t *testing.T, v Value) {
				if !v.IsNull || v.Data != nil {
					t.Errorf("expected null value, got %+v", v)
				}
			},
		},
		{
			name:  "decimal kept as JSON",
			value: jsonConstant("DECIMAL", `"12.50"`),
			check: func(t *testing.T, v Value) {
				if d, ok := v.Data.(string); !ok || d != "12.50" {
					t.Errorf("expected raw decimal text, got %v", v.Data)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := Parse(jsonPushdown(nil, tt.value))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			c, ok := fp.Filters[0].(*ConstantExpression)
			if !ok {
				t.Fatalf("expected ConstantExpression, got %T", fp.Filters[0])
			}
			tt.check(t, c.Value)
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	tests := map[string]string{
		"syntax":        `{invalid json}`,
		"bad integer":   string(jsonPushdown(nil, jsonConstant("INTEGER", `"x"`))),
		"bad base64":    string(jsonPushdown(nil, jsonConstant("BLOB", `{"base64": "!!"}`))),
		"bad child":     string(jsonPushdown(nil, jsonConjunction("CONJUNCTION_AND", `[]`))),
		"bad left side": string(jsonPushdown(nil, jsonComparison("COMPARE_EQUAL", `"x"`, jsonConstant("INTEGER", "1")))),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Error("expected error for malformed input")
			}
		})
	}
}

func TestParseInvalidColumnBinding(t *testing.T) {
	fp, err := Parse(jsonPushdown([]string{"id"}, jsonColumn(5, "INTEGER")))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	colRef := fp.Filters[0].(*ColumnRefExpression)
	_, err = fp.ColumnName(colRef)
	if err == nil {
		t.Fatal("expected error for invalid column binding index")
	}
	if want := "column binding 5 out of range: pushdown binds 1 column(s)"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestParseUnsupportedExpression(t *testing.T) {
	// Unsupported expression class should still parse
	fp, err := Parse(jsonPushdown(nil, jsonUnsupported()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	u, ok := fp.Filters[0].(*UnsupportedExpression)
	if !ok {
		t.Fatalf("expected UnsupportedExpression, got %T", fp.Filters[0])
	}
	if u.Class() != "BOUND_SUBQUERY" {
		t.Errorf("expected BOUND_SUBQUERY class, got %s", u.Class())
	}
}
