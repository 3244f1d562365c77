package predicate

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/pushdown-go/expressions"
	"github.com/hugr-lab/pushdown-go/identifier"
)

// Converter turns predicates into V2 expressions.
// The zero value is ready to use.
type Converter struct {
	// Typer assigns literal types.
	// OPTIONAL: ArrowTyper is used if nil.
	Typer LiteralTyper

	// ParsePath splits an attribute into column path segments.
	// OPTIONAL: identifier.ParseMultipart is used if nil.
	// On error the whole attribute becomes a single segment.
	ParsePath func(string) ([]string, error)

	// Logger receives a debug record for every path parsing fallback.
	// OPTIONAL: slog.Default() is used if nil.
	Logger *slog.Logger
}

var defaultConverter Converter

// ToV2 converts p with the default Converter. Errors come only from literal
// typing; see ArrowTyper.
func ToV2(p Predicate) (expressions.Predicate, error) {
	return defaultConverter.ToV2(p)
}

// ToV2 converts p into the equivalent V2 predicate. Sub-predicates are
// converted before their parent. Path parsing failures never surface as
// errors; literal typing errors are returned unchanged.
func (c *Converter) ToV2(p Predicate) (expressions.Predicate, error) {
	if p == nil {
		return nil, fmt.Errorf("predicate: cannot convert nil predicate")
	}

	switch x := normalize(p).(type) {
	case EqualTo:
		return c.comparison(expressions.OpEqual, x.Attribute, x.Value)
	case EqualNullSafe:
		return c.comparison(expressions.OpNullSafeEqual, x.Attribute, x.Value)
	case GreaterThan:
		return c.comparison(expressions.OpGreaterThan, x.Attribute, x.Value)
	case GreaterThanOrEqual:
		return c.comparison(expressions.OpGreaterThanOrEqual, x.Attribute, x.Value)
	case LessThan:
		return c.comparison(expressions.OpLessThan, x.Attribute, x.Value)
	case LessThanOrEqual:
		return c.comparison(expressions.OpLessThanOrEqual, x.Attribute, x.Value)
	case In:
		args := make([]expressions.Expression, 0, len(x.Values)+1)
		args = append(args, c.column(x.Attribute))
		for _, v := range x.Values {
			lit, err := c.literal(v)
			if err != nil {
				return nil, err
			}
			args = append(args, lit)
		}
		return expressions.NewPredicate(expressions.OpIn, args...), nil
	case IsNull:
		return expressions.NewPredicate(expressions.OpIsNull, c.column(x.Attribute)), nil
	case IsNotNull:
		return expressions.NewPredicate(expressions.OpIsNotNull, c.column(x.Attribute)), nil
	case And:
		left, right, err := c.pair(x.Left, x.Right)
		if err != nil {
			return nil, err
		}
		return &expressions.And{Left: left, Right: right}, nil
	case Or:
		left, right, err := c.pair(x.Left, x.Right)
		if err != nil {
			return nil, err
		}
		return &expressions.Or{Left: left, Right: right}, nil
	case Not:
		child, err := c.ToV2(x.Child)
		if err != nil {
			return nil, err
		}
		return &expressions.Not{Child: child}, nil
	case StringStartsWith:
		return c.stringMatch(expressions.OpStartsWith, x.Attribute, x.Value)
	case StringEndsWith:
		return c.stringMatch(expressions.OpEndsWith, x.Attribute, x.Value)
	case StringContains:
		return c.stringMatch(expressions.OpContains, x.Attribute, x.Value)
	case AlwaysTrue:
		return expressions.AlwaysTrue{}, nil
	case AlwaysFalse:
		return expressions.AlwaysFalse{}, nil
	default:
		panic(fmt.Sprintf("predicate: unknown predicate type %T", p))
	}
}

// V2References is like the package-level V2References but uses c.ParsePath.
func (c *Converter) V2References(p Predicate) [][]string {
	return v2References(p, c.pathParser())
}

func (c *Converter) pair(l, r Predicate) (expressions.Predicate, expressions.Predicate, error) {
	left, err := c.ToV2(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := c.ToV2(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (c *Converter) comparison(op, attribute string, v Value) (expressions.Predicate, error) {
	lit, err := c.literal(v)
	if err != nil {
		return nil, err
	}
	return expressions.NewPredicate(op, c.column(attribute), lit), nil
}

// stringMatch builds a string predicate. The literal is always typed as a
// string whatever the typer infers.
func (c *Converter) stringMatch(op, attribute, s string) (expressions.Predicate, error) {
	raw, _, err := c.typer().TypeOf(StringValue(s))
	if err != nil {
		return nil, err
	}
	return expressions.NewPredicate(op, c.column(attribute), expressions.Literal(raw, arrow.BinaryTypes.String)), nil
}

func (c *Converter) literal(v Value) (*expressions.LiteralValue, error) {
	raw, dt, err := c.typer().TypeOf(v)
	if err != nil {
		return nil, err
	}
	return expressions.Literal(raw, dt), nil
}

func (c *Converter) column(attribute string) *expressions.FieldReference {
	return expressions.Column(c.parsePath(attribute)...)
}

func (c *Converter) pathParser() func(string) ([]string, error) {
	if c.ParsePath == nil {
		return identifier.ParseMultipart
	}
	return c.ParsePath
}

func (c *Converter) parsePath(attribute string) []string {
	parts, err := c.pathParser()(attribute)
	if err != nil || len(parts) == 0 {
		c.logger().Debug("column path kept as a single segment",
			slog.String("attribute", attribute),
			slog.Any("error", err))
		return []string{attribute}
	}
	return parts
}

func (c *Converter) typer() LiteralTyper {
	if c.Typer == nil {
		return ArrowTyper{}
	}
	return c.Typer
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
