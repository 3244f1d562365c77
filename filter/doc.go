// Package filter bridges DuckDB Airport extension filter pushdown JSON and
// the predicate packages.
//
// This package enables connector developers to:
//   - Parse filter pushdown JSON from DuckDB into strongly-typed Go structures
//   - Translate parsed filters into source-independent predicates
//   - Encode V2 predicates to SQL for backend databases (primarily DuckDB)
//   - Map column names during encoding to translate between schemas
//
// # Basic Usage
//
//	fp, err := filter.Parse(data)
//	if err != nil {
//	    return err // Malformed JSON
//	}
//
//	preds, err := filter.NewTranslator(nil).Translate(fp)
//	if err != nil {
//	    return err // Invalid column binding
//	}
//
//	var v2 []expressions.Predicate
//	for _, p := range preds {
//	    e, err := predicate.ToV2(p)
//	    if err != nil {
//	        return err
//	    }
//	    v2 = append(v2, e)
//	}
//
//	where := filter.NewDuckDBEncoder(nil).EncodeFilters(v2)
//	if where != "" {
//	    query := "SELECT * FROM table WHERE " + where
//	}
//
// # Column Mapping
//
// Map column paths to backend storage names, or replace them with SQL
// expressions for computed columns:
//
//	enc := filter.NewDuckDBEncoder(&filter.EncoderOptions{
//	    ColumnMapping: map[string]string{
//	        "user_id": "uid",
//	    },
//	    ColumnExpressions: map[string]string{
//	        "full_name": "CONCAT(first_name, ' ', last_name)",
//	    },
//	})
//
// # Unsupported Expression Handling
//
// Translation and encoding drop what they cannot express:
//   - For AND: Skips unsupported children, keeps others
//   - For OR: If any child is unsupported, skips entire OR expression
//   - Below NOT: nothing is skipped, the whole NOT is dropped instead
//
// This produces the widest possible filter, which is safe because the DuckDB
// client applies filters client-side as a fallback.
package filter
