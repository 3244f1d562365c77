package predicate

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/pushdown-go/expressions"
)

func mustToV2(t *testing.T, p Predicate) expressions.Predicate {
	t.Helper()
	v2, err := ToV2(p)
	if err != nil {
		t.Fatalf("ToV2(%s) failed: %v", p, err)
	}
	return v2
}

func TestToV2OperatorTable(t *testing.T) {
	tests := []struct {
		pred     Predicate
		operator string
		literals int
	}{
		{EqualTo{Attribute: "a", Value: IntValue(1)}, "=", 1},
		{EqualNullSafe{Attribute: "a", Value: IntValue(1)}, "<=>", 1},
		{GreaterThan{Attribute: "a", Value: IntValue(1)}, ">", 1},
		{GreaterThanOrEqual{Attribute: "a", Value: IntValue(1)}, ">=", 1},
		{LessThan{Attribute: "a", Value: IntValue(1)}, "<", 1},
		{LessThanOrEqual{Attribute: "a", Value: IntValue(1)}, "<=", 1},
		{In{Attribute: "a", Values: Values(1, 2)}, "IN", 2},
		{In{Attribute: "a"}, "IN", 0},
		{IsNull{Attribute: "a"}, "IS_NULL", 0},
		{IsNotNull{Attribute: "a"}, "IS_NOT_NULL", 0},
		{StringStartsWith{Attribute: "a", Value: "p"}, "STARTS_WITH", 1},
		{StringEndsWith{Attribute: "a", Value: "p"}, "ENDS_WITH", 1},
		{StringContains{Attribute: "a", Value: "p"}, "CONTAINS", 1},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			v2 := mustToV2(t, tt.pred)
			gp, ok := v2.(*expressions.GeneralPredicate)
			if !ok {
				t.Fatalf("expected *GeneralPredicate, got %T", v2)
			}
			if gp.Name() != tt.operator {
				t.Errorf("expected operator %s, got %s", tt.operator, gp.Name())
			}
			if len(gp.Args) != tt.literals+1 {
				t.Fatalf("expected %d args, got %d", tt.literals+1, len(gp.Args))
			}
			ref, ok := gp.Args[0].(expressions.NamedReference)
			if !ok {
				t.Fatalf("expected column reference first, got %T", gp.Args[0])
			}
			if !reflect.DeepEqual(ref.FieldNames(), []string{"a"}) {
				t.Errorf("expected column [a], got %v", ref.FieldNames())
			}
			for _, arg := range gp.Args[1:] {
				if _, ok := arg.(*expressions.LiteralValue); !ok {
					t.Errorf("expected literal operand, got %T", arg)
				}
			}
		})
	}
}

func TestToV2Literals(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		raw      any
		dataType arrow.DataType
	}{
		{"null", NullValue(), nil, arrow.Null},
		{"bool", BoolValue(true), true, arrow.FixedWidthTypes.Boolean},
		{"int", IntValue(42), int64(42), arrow.PrimitiveTypes.Int64},
		{"float", FloatValue(1.5), 1.5, arrow.PrimitiveTypes.Float64},
		{"string", StringValue("x"), "x", arrow.BinaryTypes.String},
		{"bytes", BytesValue([]byte{1, 2}), []byte{1, 2}, arrow.BinaryTypes.Binary},
		{"list", ListValue(IntValue(1), NullValue()), []any{int64(1), nil}, arrow.ListOf(arrow.PrimitiveTypes.Int64)},
		{"empty list", ListValue(), []any{}, arrow.ListOf(arrow.Null)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v2 := mustToV2(t, EqualTo{Attribute: "a", Value: tt.value})
			expected := expressions.NewPredicate("=", expressions.Column("a"), expressions.Literal(tt.raw, tt.dataType))
			if !expressions.Equal(v2, expected) {
				t.Errorf("expected %s, got %s", expected, v2)
			}
		})
	}
}

func TestToV2StringLiteralsAreText(t *testing.T) {
	// a typer that would never produce a string type
	c := &Converter{Typer: LiteralTyperFunc(func(v Value) (any, arrow.DataType, error) {
		return v.Str(), arrow.PrimitiveTypes.Int32, nil
	})}

	for _, p := range []Predicate{
		StringStartsWith{Attribute: "s", Value: "abc"},
		StringEndsWith{Attribute: "s", Value: "abc"},
		StringContains{Attribute: "s", Value: "abc"},
	} {
		v2, err := c.ToV2(p)
		if err != nil {
			t.Fatalf("ToV2 failed: %v", err)
		}
		lit := v2.Children()[1].(*expressions.LiteralValue)
		if !arrow.TypeEqual(lit.DataType, arrow.BinaryTypes.String) {
			t.Errorf("%s: expected string literal, got %s", p, lit.DataType)
		}
		if lit.Value != "abc" {
			t.Errorf("%s: expected value abc, got %v", p, lit.Value)
		}
	}
}

func TestToV2InPreservesOrder(t *testing.T) {
	v2 := mustToV2(t, In{Attribute: "a", Values: Values(3, 1, 2)})
	expected := expressions.NewPredicate("IN", expressions.Column("a"),
		expressions.Literal(int64(3), arrow.PrimitiveTypes.Int64),
		expressions.Literal(int64(1), arrow.PrimitiveTypes.Int64),
		expressions.Literal(int64(2), arrow.PrimitiveTypes.Int64),
	)
	if !expressions.Equal(v2, expected) {
		t.Errorf("expected %s, got %s", expected, v2)
	}
	if v2.String() != "a IN (3, 1, 2)" {
		t.Errorf("unexpected rendering %s", v2)
	}
}

func TestToV2Constants(t *testing.T) {
	for _, p := range []Predicate{True, AlwaysTrue{}, &AlwaysTrue{}} {
		v2 := mustToV2(t, p)
		if _, ok := v2.(expressions.AlwaysTrue); !ok {
			t.Errorf("expected AlwaysTrue node, got %T", v2)
		}
		if len(v2.Children()) != 0 {
			t.Errorf("expected no operands, got %d", len(v2.Children()))
		}
	}
	for _, p := range []Predicate{False, AlwaysFalse{}, &AlwaysFalse{}} {
		v2 := mustToV2(t, p)
		if _, ok := v2.(expressions.AlwaysFalse); !ok {
			t.Errorf("expected AlwaysFalse node, got %T", v2)
		}
		if len(v2.Children()) != 0 {
			t.Errorf("expected no operands, got %d", len(v2.Children()))
		}
	}
}

func TestToV2Combinators(t *testing.T) {
	l := EqualTo{Attribute: "a", Value: IntValue(1)}
	r := Or{Left: IsNull{Attribute: "b"}, Right: Not{Child: StringContains{Attribute: "c", Value: "x"}}}

	v2 := mustToV2(t, And{Left: l, Right: r})
	and, ok := v2.(*expressions.And)
	if !ok {
		t.Fatalf("expected *And, got %T", v2)
	}
	if !expressions.Equal(and.Left, mustToV2(t, l)) {
		t.Errorf("left child: expected %s, got %s", mustToV2(t, l), and.Left)
	}
	if !expressions.Equal(and.Right, mustToV2(t, r)) {
		t.Errorf("right child: expected %s, got %s", mustToV2(t, r), and.Right)
	}
}

func TestToV2RoundTripScenario(t *testing.T) {
	p := Not{Child: Or{
		Left:  GreaterThan{Attribute: "n", Value: IntValue(5)},
		Right: IsNull{Attribute: "n"},
	}}

	if refs := p.References(); !reflect.DeepEqual(refs, []string{"n", "n"}) {
		t.Errorf("expected [n n], got %v", refs)
	}

	expected := &expressions.Not{Child: &expressions.Or{
		Left:  expressions.NewPredicate(">", expressions.Column("n"), expressions.Literal(int64(5), arrow.PrimitiveTypes.Int64)),
		Right: expressions.NewPredicate("IS_NULL", expressions.Column("n")),
	}}
	v2 := mustToV2(t, p)
	if !expressions.Equal(v2, expected) {
		t.Errorf("expected %s, got %s", expected, v2)
	}
	if v2.String() != "NOT ((n > 5) OR (n IS NULL))" {
		t.Errorf("unexpected rendering %s", v2)
	}
}

func TestToV2DeepTree(t *testing.T) {
	var p Predicate = IsNull{Attribute: "leaf"}
	for i := 0; i < 200; i++ {
		p = And{Left: p, Right: GreaterThan{Attribute: "x", Value: IntValue(int64(i))}}
	}

	v2 := mustToV2(t, p)
	depth := 0
	for {
		and, ok := v2.(*expressions.And)
		if !ok {
			break
		}
		depth++
		v2 = and.Left
	}
	if depth != 200 {
		t.Errorf("expected depth 200, got %d", depth)
	}
	if v2.String() != "leaf IS NULL" {
		t.Errorf("unexpected innermost node %s", v2)
	}
}

func TestToV2NestedColumns(t *testing.T) {
	var buf bytes.Buffer
	c := &Converter{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	tests := []struct {
		attr     string
		expected []string
	}{
		{"a.b.c", []string{"a", "b", "c"}},
		{"`a.b`.c", []string{"a.b", "c"}},
		{"`unterminated.x", []string{"`unterminated.x"}},
	}

	for _, tt := range tests {
		v2, err := c.ToV2(IsNotNull{Attribute: tt.attr})
		if err != nil {
			t.Fatalf("ToV2 failed: %v", err)
		}
		ref := v2.Children()[0].(expressions.NamedReference)
		if !reflect.DeepEqual(ref.FieldNames(), tt.expected) {
			t.Errorf("%s: expected %q, got %q", tt.attr, tt.expected, ref.FieldNames())
		}
	}

	if !strings.Contains(buf.String(), "column path kept as a single segment") {
		t.Errorf("expected fallback to be logged, got %q", buf.String())
	}
}

func TestToV2CustomPathParser(t *testing.T) {
	c := &Converter{ParsePath: func(s string) ([]string, error) {
		return strings.Split(s, "/"), nil
	}}
	v2, err := c.ToV2(IsNull{Attribute: "a/b"})
	if err != nil {
		t.Fatalf("ToV2 failed: %v", err)
	}
	if got := expressions.References(v2); !reflect.DeepEqual(got, [][]string{{"a", "b"}}) {
		t.Errorf("expected [[a b]], got %v", got)
	}
	if got := c.V2References(IsNull{Attribute: "x/y"}); !reflect.DeepEqual(got, [][]string{{"x", "y"}}) {
		t.Errorf("expected [[x y]], got %v", got)
	}
}

func TestToV2TyperErrorsPropagate(t *testing.T) {
	p := And{
		Left:  IsNull{Attribute: "a"},
		Right: EqualTo{Attribute: "b", Value: PredicateValue(IsNull{Attribute: "c"})},
	}
	_, err := ToV2(p)
	if !errors.Is(err, ErrUntypeableLiteral) {
		t.Errorf("expected ErrUntypeableLiteral, got %v", err)
	}

	_, err = ToV2(In{Attribute: "a", Values: []Value{ListValue(IntValue(1), StringValue("x"))}})
	if !errors.Is(err, ErrUntypeableLiteral) {
		t.Errorf("expected ErrUntypeableLiteral for mixed list, got %v", err)
	}

	custom := errors.New("boom")
	c := &Converter{Typer: LiteralTyperFunc(func(Value) (any, arrow.DataType, error) { return nil, nil, custom })}
	if _, err := c.ToV2(Not{Child: LessThan{Attribute: "a", Value: IntValue(1)}}); !errors.Is(err, custom) {
		t.Errorf("expected typer error, got %v", err)
	}
}

func TestToV2Nil(t *testing.T) {
	if _, err := ToV2(nil); err == nil {
		t.Error("expected error for nil predicate")
	}
}

func TestConverterV2ReferencesParserFallback(t *testing.T) {
	c := &Converter{ParsePath: func(s string) ([]string, error) {
		if strings.HasPrefix(s, "!") {
			return nil, errors.New("bad path")
		}
		return strings.Split(s, "/"), nil
	}}
	p := Or{Left: IsNull{Attribute: "!raw"}, Right: EqualTo{Attribute: "s/t", Value: IntValue(1)}}

	want := [][]string{{"!raw"}, {"s", "t"}}
	if got := c.V2References(p); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
