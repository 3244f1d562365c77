package expressions

import (
	"encoding/hex"
	"strconv"
	"strings"
)

func formatGeneral(p *GeneralPredicate) string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		if a == nil {
			args[i] = "NULL"
			continue
		}
		args[i] = a.String()
	}

	switch p.Operator {
	case OpEqual, OpNullSafeEqual, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		if len(args) == 2 {
			return args[0] + " " + p.Operator + " " + args[1]
		}
	case OpIn:
		if len(args) >= 1 {
			return args[0] + " IN (" + strings.Join(args[1:], ", ") + ")"
		}
	case OpIsNull:
		if len(args) == 1 {
			return args[0] + " IS NULL"
		}
	case OpIsNotNull:
		if len(args) == 1 {
			return args[0] + " IS NOT NULL"
		}
	}
	return p.Operator + "(" + strings.Join(args, ", ") + ")"
}

func formatLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case []byte:
		return "X'" + hex.EncodeToString(x) + "'"
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatLiteral(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unknown>"
	}
}
