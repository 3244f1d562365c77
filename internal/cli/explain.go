package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/pushdown-go/expressions"
	"github.com/hugr-lab/pushdown-go/filter"
	"github.com/hugr-lab/pushdown-go/internal/recovery"
	"github.com/hugr-lab/pushdown-go/predicate"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	MappingFile string
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{}

	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Show translated predicates and their SQL",
		Long: `Read DuckDB Airport filter pushdown JSON (stdin if no file is given) and
print every translated predicate with its column references, whether it
touches a nested column, its V2 form and its DuckDB SQL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.MappingFile, "mapping", "m", "", "YAML file with column mappings")

	return cmd
}

func runExplain(rootOpts *RootOptions, opts *ExplainOptions, cmd *cobra.Command, args []string) error {
	logger := rootOpts.Logger()

	var mapping *Mapping
	if opts.MappingFile != "" {
		var err error
		mapping, err = LoadMapping(opts.MappingFile)
		if err != nil {
			return err
		}
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	preds, err := translateInput(data, logger)
	if err != nil {
		return err
	}

	conv := &predicate.Converter{Logger: logger}
	enc := filter.NewDuckDBEncoder(mapping.EncoderOptions(logger))
	out := cmd.OutOrStdout()

	v2 := make([]expressions.Predicate, 0, len(preds))
	for i, p := range preds {
		e, err := recovery.RecoverToValue(logger, "ToV2", func() (expressions.Predicate, error) {
			return conv.ToV2(p)
		})
		if err != nil {
			return fmt.Errorf("predicate %d: %w", i, err)
		}
		v2 = append(v2, e)
		writeExplain(out, i, p, e, enc.Encode(e))
	}

	where := enc.EncodeFilters(v2)
	if where == "" {
		where = "(none)"
	}
	fmt.Fprintf(out, "where: %s\n", where)
	return nil
}

func writeExplain(w io.Writer, i int, p predicate.Predicate, e expressions.Predicate, sql string) {
	paths := make([]string, 0)
	for _, path := range predicate.V2References(p) {
		paths = append(paths, "["+strings.Join(path, " ")+"]")
	}
	if sql == "" {
		sql = "(not encodable)"
	}

	fmt.Fprintf(w, "predicate %d: %s\n", i, p)
	fmt.Fprintf(w, "  references: %s\n", strings.Join(p.References(), ", "))
	fmt.Fprintf(w, "  paths: %s\n", strings.Join(paths, " "))
	fmt.Fprintf(w, "  nested: %t\n", predicate.ContainsNestedColumn(p))
	fmt.Fprintf(w, "  v2: %s\n", e)
	fmt.Fprintf(w, "  sql: %s\n", sql)
}
