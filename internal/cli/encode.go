package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/qbist"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Output string   // output file path
	Seed   int64    // recorded in metadata when --seed is given
	Meta   []string // key=value metadata entries

	// Clock overrides the encoding timestamp source (for testing).
	Clock qbist.Clock
}

// EncodeSummary is the JSON payload of the encode command when --output is set.
type EncodeSummary struct {
	Output     string `json:"output"`
	Qubits     int    `json:"qubits"`
	Operations int    `json:"operations"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode <circuit.{json,yaml}>",
		Short: "Encode a circuit into a QBIST payload",
		Long: `Encode a circuit description into the QBIST JSON payload.

The circuit must be an object with "qubits" and "operations". It is
validated against the circuit schema before encoding. Metadata is the
encoding timestamp and seed, then --meta entries, then the circuit's
own metadata, each layer overriding the previous one.

Without --output the payload is written to stdout.

Example:
  simulator encode bell.json
  simulator encode ghz.yaml -o ghz.qbist.json --seed 7 --meta run=3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed recorded in metadata")
	cmd.Flags().StringArrayVar(&opts.Meta, "meta", nil, "extra metadata as key=value (repeatable)")

	return cmd
}

func runEncode(opts *EncodeOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	meta, err := parseMeta(opts.Meta)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	circuit, err := qbist.LoadCircuit(path)
	if err != nil {
		return outputCircuitError(formatter, err)
	}
	formatter.VerboseLog("Loaded %s: %d qubit(s), %d operation(s)", path, len(circuit.Qubits), len(circuit.Operations))

	encodeOpts := []qbist.EncodeOption{qbist.WithMetadata(meta)}
	if cmd.Flags().Changed("seed") {
		encodeOpts = append(encodeOpts, qbist.WithSeed(opts.Seed))
	}
	if opts.Clock != nil {
		encodeOpts = append(encodeOpts, qbist.WithClock(opts.Clock))
	}
	payload, err := qbist.Encode(circuit, encodeOpts...)
	if err != nil {
		return outputCircuitError(formatter, err)
	}

	if opts.Output == "" {
		if formatter.Format == "json" {
			return formatter.Success(payload)
		}
		data, err := qbist.Marshal(payload)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
		}
		_, err = formatter.Writer.Write(data)
		return err
	}

	if err := qbist.WriteFile(opts.Output, payload); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(EncodeSummary{
			Output:     opts.Output,
			Qubits:     len(payload.Qubits),
			Operations: len(payload.Operations),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Encoded %d qubit(s), %d operation(s) to %s\n",
		len(payload.Qubits), len(payload.Operations), opts.Output)
	return nil
}

func outputCircuitError(formatter *OutputFormatter, err error) error {
	var schemaErr *qbist.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		details := make([]string, len(schemaErr.Problems))
		for i, p := range schemaErr.Problems {
			details[i] = p.String()
		}
		return formatter.Fail(ExitCommandError, ErrCodeSchema, "circuit does not match schema", details)
	case errors.Is(err, qbist.ErrUnsupportedCircuit):
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, err.Error(), nil)
	default:
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, err.Error(), nil)
	}
}

// parseMeta turns key=value entries into metadata. Values that parse as an
// integer, finite float or bool keep that type; everything else is a string.
func parseMeta(entries []string) (map[string]any, error) {
	meta := make(map[string]any, len(entries))
	for _, entry := range entries {
		key, raw, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: want key=value", entry)
		}
		meta[key] = parseMetaValue(raw)
	}
	return meta, nil
}

func parseMetaValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
