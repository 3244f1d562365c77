package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/pushdown-go/filter"
)

// Mapping configures how column paths are written in generated SQL.
//
//	columns:
//	  user_id: uid
//	expressions:
//	  full_name: "first_name || ' ' || last_name"
type Mapping struct {
	// Columns renames column paths to backend column names.
	Columns map[string]string `yaml:"columns"`

	// Expressions replaces column paths with SQL expressions.
	// Takes precedence over Columns.
	Expressions map[string]string `yaml:"expressions"`
}

// LoadMapping reads a mapping file. Unknown keys are rejected.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	var m Mapping
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return &m, nil
}

// EncoderOptions returns encoder options for the mapping. A nil mapping
// yields options without column rewriting.
func (m *Mapping) EncoderOptions(logger *slog.Logger) *filter.EncoderOptions {
	opts := &filter.EncoderOptions{Logger: logger}
	if m != nil {
		opts.ColumnMapping = m.Columns
		opts.ColumnExpressions = m.Expressions
	}
	return opts
}
