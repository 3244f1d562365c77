package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/pushdown-go/filter"
	"github.com/hugr-lab/pushdown-go/wire"
)

// ValidWireFormats defines the allowed encode output formats.
var ValidWireFormats = []string{"json", "msgpack"}

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	Format string
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Write the wire form of the translated filter",
		Long: `Read DuckDB Airport filter pushdown JSON (stdin if no file is given),
AND all translated predicates together and write the wire encoding.
msgpack output is zstd compressed and base64 encoded.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidWireFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidWireFormats)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "wire format (json|msgpack)")

	return cmd
}

func runEncode(rootOpts *RootOptions, opts *EncodeOptions, cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	preds, err := translateInput(data, rootOpts.Logger())
	if err != nil {
		return err
	}
	p := filter.Combine(preds)

	var out []byte
	switch opts.Format {
	case "msgpack":
		codec, err := wire.NewCodec()
		if err != nil {
			return err
		}
		defer codec.Close()

		raw, err := codec.Encode(p)
		if err != nil {
			return err
		}
		out = []byte(base64.StdEncoding.EncodeToString(raw))
	default:
		out, err = wire.MarshalJSON(p)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
	return err
}
