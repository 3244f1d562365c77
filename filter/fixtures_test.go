package filter

import (
	"fmt"
	"strings"
)

// JSON builders for filter pushdown fixtures, in the shape the DuckDB
// Airport extension serializes bound expressions.

func jsonColumn(index int, typ string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_COLUMN_REF",
		"type": "BOUND_COLUMN_REF",
		"alias": "",
		"return_type": {"id": %q, "type_info": null},
		"binding": {"table_index": 0, "column_index": %d},
		"depth": 0
	}`, typ, index)
}

// jsonConstant renders a constant; value is raw JSON.
func jsonConstant(typ, value string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CONSTANT",
		"type": "VALUE_CONSTANT",
		"alias": "",
		"value": {"type": {"id": %q, "type_info": null}, "is_null": false, "value": %s}
	}`, typ, value)
}

func jsonNull(typ string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CONSTANT",
		"type": "VALUE_CONSTANT",
		"alias": "",
		"value": {"type": {"id": %q, "type_info": null}, "is_null": true}
	}`, typ)
}

func jsonComparison(typ, left, right string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_COMPARISON",
		"type": %q,
		"alias": "",
		"left": %s,
		"right": %s
	}`, typ, left, right)
}

func jsonConjunction(typ string, children ...string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CONJUNCTION",
		"type": %q,
		"alias": "",
		"children": [%s]
	}`, typ, strings.Join(children, ", "))
}

func jsonOperator(typ string, children ...string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_OPERATOR",
		"type": %q,
		"alias": "",
		"return_type": {"id": "BOOLEAN", "type_info": null},
		"children": [%s]
	}`, typ, strings.Join(children, ", "))
}

func jsonFunction(name, returnType string, children ...string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_FUNCTION",
		"type": "BOUND_FUNCTION",
		"alias": "",
		"return_type": {"id": %q, "type_info": null},
		"children": [%s],
		"name": %q,
		"is_operator": false
	}`, returnType, strings.Join(children, ", "), name)
}

func jsonBetween(input, lower, upper string, lowerInclusive, upperInclusive bool) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_BETWEEN",
		"type": "COMPARE_BETWEEN",
		"alias": "",
		"input": %s,
		"lower": %s,
		"upper": %s,
		"lower_inclusive": %t,
		"upper_inclusive": %t
	}`, input, lower, upper, lowerInclusive, upperInclusive)
}

func jsonCast(child, target string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CAST",
		"type": "CAST",
		"alias": "",
		"child": %s,
		"return_type": {"id": %q, "type_info": null},
		"try_cast": false
	}`, child, target)
}

func jsonUnsupported() string {
	return `{"expression_class": "BOUND_SUBQUERY", "type": "SUBQUERY", "alias": ""}`
}

// jsonPushdown wraps filters and column names into a pushdown document.
func jsonPushdown(columns []string, filters ...string) []byte {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return []byte(fmt.Sprintf(`{
		"filters": [%s],
		"column_binding_names_by_index": [%s]
	}`, strings.Join(filters, ", "), strings.Join(quoted, ", ")))
}
