package filter

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/pushdown-go/expressions"
	"github.com/hugr-lab/pushdown-go/identifier"
)

// DuckDBEncoder encodes V2 predicates to DuckDB SQL syntax.
type DuckDBEncoder struct {
	opts   *EncoderOptions
	logger *slog.Logger
}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DuckDBEncoder{opts: opts, logger: logger}
}

// EncodeFilters converts all predicates to a WHERE clause body.
// Returns the condition portion without "WHERE" keyword.
// Returns empty string if no predicates can be encoded.
func (e *DuckDBEncoder) EncodeFilters(preds []expressions.Predicate) string {
	var parts []string
	for _, p := range preds {
		encoded := e.Encode(p)
		if encoded != "" {
			parts = append(parts, encoded)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	if len(parts) == 1 {
		return parts[0]
	}

	return "(" + strings.Join(parts, ") AND (") + ")"
}

// Encode converts a single expression to SQL.
// Returns empty string if expression is unsupported.
func (e *DuckDBEncoder) Encode(expr expressions.Expression) string {
	return e.encode(expr, false)
}

// encode converts expr. With exact set, unsupported AND children make the
// whole AND unsupported; this is used below NOT.
func (e *DuckDBEncoder) encode(expr expressions.Expression, exact bool) string {
	switch ex := expr.(type) {
	case nil:
		return ""
	case *expressions.FieldReference:
		return e.encodeColumn(ex.FieldNames())
	case *expressions.LiteralValue:
		return e.encodeLiteral(ex)
	case *expressions.GeneralPredicate:
		return e.encodeGeneral(ex)
	case *expressions.And:
		return e.encodeAnd(ex, exact)
	case *expressions.Or:
		return e.encodeOr(ex, exact)
	case *expressions.Not:
		if ex == nil {
			return ""
		}
		child := e.encode(ex.Child, true)
		if child == "" {
			return e.unsupported(ex, "NOT child")
		}
		return "NOT (" + child + ")"
	case expressions.AlwaysTrue, *expressions.AlwaysTrue:
		return "TRUE"
	case expressions.AlwaysFalse, *expressions.AlwaysFalse:
		return "FALSE"
	default:
		return e.unsupported(expr, fmt.Sprintf("node %T", expr))
	}
}

// unsupported logs the dropped node and returns the empty encoding.
func (e *DuckDBEncoder) unsupported(expr expressions.Expression, reason string) string {
	e.logger.Debug("predicate not encoded",
		slog.String("predicate", describe(expr)),
		slog.String("reason", reason))
	return ""
}

// describe names a node without rendering its children, which may be nil.
func describe(expr expressions.Expression) string {
	if p, ok := expr.(expressions.Predicate); ok {
		return p.Name()
	}
	return fmt.Sprintf("%T", expr)
}

// encodeAnd skips unsupported children and keeps the others unless exact is set.
func (e *DuckDBEncoder) encodeAnd(a *expressions.And, exact bool) string {
	if a == nil {
		return ""
	}
	left := e.encode(a.Left, exact)
	right := e.encode(a.Right, exact)

	switch {
	case left != "" && right != "":
		return "(" + left + " AND " + right + ")"
	case exact:
		return e.unsupported(a, "AND child")
	case left != "":
		return left
	default:
		return right
	}
}

// encodeOr skips the entire OR if any child is unsupported.
func (e *DuckDBEncoder) encodeOr(o *expressions.Or, exact bool) string {
	if o == nil {
		return ""
	}
	left := e.encode(o.Left, exact)
	right := e.encode(o.Right, exact)
	if left == "" || right == "" {
		return e.unsupported(o, "OR child")
	}
	return "(" + left + " OR " + right + ")"
}

// encodeGeneral encodes leaf predicates: comparisons, IN, null tests and
// string matches.
func (e *DuckDBEncoder) encodeGeneral(p *expressions.GeneralPredicate) string {
	if p == nil {
		return ""
	}
	if len(p.Args) == 0 {
		return e.unsupported(p, "no arguments")
	}

	args := make([]string, 0, len(p.Args))
	for _, arg := range p.Args {
		encoded := e.encode(arg, true)
		if encoded == "" {
			return e.unsupported(p, "argument")
		}
		args = append(args, encoded)
	}

	switch p.Operator {
	case expressions.OpEqual, expressions.OpGreaterThan, expressions.OpGreaterThanOrEqual,
		expressions.OpLessThan, expressions.OpLessThanOrEqual:
		if len(args) != 2 {
			return e.unsupported(p, "comparison arity")
		}
		return args[0] + " " + p.Operator + " " + args[1]

	case expressions.OpNullSafeEqual:
		if len(args) != 2 {
			return e.unsupported(p, "comparison arity")
		}
		return args[0] + " IS NOT DISTINCT FROM " + args[1]

	case expressions.OpIn:
		if len(args) < 2 {
			return e.unsupported(p, "empty IN list")
		}
		return args[0] + " IN (" + strings.Join(args[1:], ", ") + ")"

	case expressions.OpIsNull:
		if len(args) != 1 {
			return e.unsupported(p, "null test arity")
		}
		return args[0] + " IS NULL"

	case expressions.OpIsNotNull:
		if len(args) != 1 {
			return e.unsupported(p, "null test arity")
		}
		return args[0] + " IS NOT NULL"

	case expressions.OpStartsWith:
		return e.encodeStringFunction(p, "starts_with", args)
	case expressions.OpEndsWith:
		return e.encodeStringFunction(p, "suffix", args)
	case expressions.OpContains:
		return e.encodeStringFunction(p, "contains", args)

	default:
		return e.unsupported(p, "operator "+p.Operator)
	}
}

func (e *DuckDBEncoder) encodeStringFunction(p *expressions.GeneralPredicate, name string, args []string) string {
	if len(args) != 2 {
		return e.unsupported(p, name+" arity")
	}
	return name + "(" + args[0] + ", " + args[1] + ")"
}

// encodeColumn encodes a column path. ColumnExpressions and ColumnMapping are
// looked up by the dotted path, then by the top-level column.
func (e *DuckDBEncoder) encodeColumn(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	path := identifier.Join(parts)

	// Check for expression mapping first (takes precedence)
	if expr, ok := e.opts.ColumnExpressions[path]; ok {
		return expr
	}
	if mapped, ok := e.opts.ColumnMapping[path]; ok {
		return quoteIdentifier(mapped)
	}

	head := quoteIdentifier(parts[0])
	if expr, ok := e.opts.ColumnExpressions[parts[0]]; ok {
		head = "(" + expr + ")"
	} else if mapped, ok := e.opts.ColumnMapping[parts[0]]; ok {
		head = quoteIdentifier(mapped)
	}

	var sb strings.Builder
	sb.WriteString(head)
	for _, part := range parts[1:] {
		sb.WriteByte('.')
		sb.WriteString(quoteIdentifier(part))
	}
	return sb.String()
}

// encodeLiteral formats a literal by its Arrow type.
func (e *DuckDBEncoder) encodeLiteral(l *expressions.LiteralValue) string {
	if l == nil {
		return ""
	}
	if l.Value == nil {
		return "NULL"
	}
	if l.DataType == nil {
		return e.unsupported(l, "untyped literal")
	}

	s := formatValue(l.Value, l.DataType)
	if s == "" {
		return e.unsupported(l, "literal of type "+l.DataType.String())
	}
	return s
}

// formatValue formats a Go value of the given Arrow type as a SQL literal.
// Returns empty string if the combination is not supported.
func formatValue(data any, dt arrow.DataType) string {
	if data == nil {
		return "NULL"
	}

	switch dt.ID() {
	case arrow.BOOL:
		if b, ok := data.(bool); ok {
			if b {
				return "TRUE"
			}
			return "FALSE"
		}
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		if v, ok := data.(int64); ok {
			return strconv.FormatInt(v, 10)
		}
	case arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		if v, ok := data.(uint64); ok {
			return strconv.FormatUint(v, 10)
		}
	case arrow.FLOAT32, arrow.FLOAT64:
		if v, ok := data.(float64); ok {
			return formatFloat(v)
		}
	case arrow.STRING, arrow.LARGE_STRING:
		if v, ok := data.(string); ok {
			return quoteLiteral(v)
		}
	case arrow.BINARY, arrow.LARGE_BINARY:
		if v, ok := data.([]byte); ok {
			return formatBlob(v)
		}
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		elems, ok := data.([]any)
		if !ok {
			return ""
		}
		var elemType arrow.DataType = arrow.Null
		if lt, ok := dt.(arrow.ListLikeType); ok {
			elemType = lt.Elem()
		}
		parts := make([]string, 0, len(elems))
		for _, elem := range elems {
			s := formatValue(elem, elemType)
			if s == "" {
				return ""
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// formatFloat formats a floating-point value. DuckDB spells non-finite
// values as quoted strings cast to DOUBLE.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	switch s {
	case "NaN", "+Inf", "-Inf":
		return "'" + strings.TrimPrefix(s, "+") + "'::DOUBLE"
	}
	return s
}

// formatBlob formats bytes as an escaped BLOB literal.
func formatBlob(v []byte) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, b := range v {
		fmt.Fprintf(&sb, "\\x%02X", b)
	}
	sb.WriteString("'::BLOB")
	return sb.String()
}
