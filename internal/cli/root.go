// Package cli implements the pushdown command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/pushdown-go/filter"
	"github.com/hugr-lab/pushdown-go/predicate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string // "debug" | "info" | "warn" | "error"

	logger *slog.Logger
}

// Logger returns the logger configured by the root command.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// NewRootCommand creates the root command for the pushdown CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pushdown",
		Short: "Inspect pushed-down filter predicates",
		Long: `Translate DuckDB Airport filter pushdown JSON into connector predicates
and show their column references, V2 form, wire encoding and DuckDB SQL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))

	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
	return level, nil
}

// readInput reads the named file, or stdin when no file is given or the name is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// translateInput parses filter pushdown JSON and translates it to predicates.
func translateInput(data []byte, logger *slog.Logger) ([]predicate.Predicate, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	fp, err := filter.Parse(data)
	if err != nil {
		return nil, err
	}
	return filter.NewTranslator(&filter.TranslateOptions{Logger: logger}).Translate(fp)
}
