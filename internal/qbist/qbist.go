// Package qbist encodes quantum circuit structures into the QBIST JSON
// payload.
//
// The encoder is stateless apart from its clock. It has no dependency on the
// idea engine; the CLI exposes it as the encode command.
package qbist

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrUnsupportedCircuit is returned for input that is not a circuit
// structure (missing qubits or operations, or not an object at all).
var ErrUnsupportedCircuit = errors.New("unsupported circuit format for QBIST encoding")

// Circuit is the input structure.
type Circuit struct {
	Qubits     []int          `json:"qubits"`
	Operations []Operation    `json:"operations"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Operation is one gate application.
type Operation struct {
	Name   string `json:"name"`
	Qubits []int  `json:"qubits"`
	Clbits []int  `json:"clbits"`
	Params []any  `json:"params"`
}

// Payload is the encoded QBIST document.
type Payload struct {
	Qubits     []int          `json:"qubits"`
	Operations []Operation    `json:"operations"`
	Metadata   map[string]any `json:"metadata"`
}

// Clock supplies the encoding timestamp.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Metadata keys written by the encoder.
const (
	MetaTimestamp = "timestamp"
	MetaSeed      = "seed"
)

type encodeConfig struct {
	clock    Clock
	seed     *int64
	metadata map[string]any
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// WithSeed records seed in the payload metadata. Without it, seed is null.
func WithSeed(seed int64) EncodeOption {
	return func(c *encodeConfig) {
		c.seed = &seed
	}
}

// WithMetadata merges extra metadata over the encoder's own keys.
// Later calls override earlier ones key by key.
func WithMetadata(meta map[string]any) EncodeOption {
	return func(c *encodeConfig) {
		if c.metadata == nil {
			c.metadata = make(map[string]any, len(meta))
		}
		for k, v := range meta {
			c.metadata[k] = v
		}
	}
}

// WithClock sets the timestamp source. Default: UTC wall clock.
func WithClock(clock Clock) EncodeOption {
	return func(c *encodeConfig) {
		c.clock = clock
	}
}

// Encode converts c into a QBIST payload.
//
// Metadata is built in three layers, each overriding the previous one:
// timestamp and seed, then WithMetadata values, then c.Metadata.
// Operation params are normalized with NormalizeParam.
func Encode(c *Circuit, opts ...EncodeOption) (*Payload, error) {
	if c == nil || c.Qubits == nil || c.Operations == nil {
		return nil, ErrUnsupportedCircuit
	}

	cfg := encodeConfig{clock: systemClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	meta := map[string]any{
		MetaTimestamp: cfg.clock.Now().UTC().Format(time.RFC3339),
		MetaSeed:      nil,
	}
	if cfg.seed != nil {
		meta[MetaSeed] = *cfg.seed
	}
	for k, v := range cfg.metadata {
		meta[k] = v
	}
	for k, v := range c.Metadata {
		meta[k] = v
	}

	qubits := make([]int, len(c.Qubits))
	copy(qubits, c.Qubits)

	ops := make([]Operation, len(c.Operations))
	for i, op := range c.Operations {
		ops[i] = Operation{
			Name:   op.Name,
			Qubits: copyInts(op.Qubits),
			Clbits: copyInts(op.Clbits),
			Params: make([]any, len(op.Params)),
		}
		for j, p := range op.Params {
			ops[i].Params[j] = NormalizeParam(p)
		}
	}

	return &Payload{
		Qubits:     qubits,
		Operations: ops,
		Metadata:   meta,
	}, nil
}

func copyInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}

// NormalizeParam makes a gate parameter JSON friendly.
//
// Numbers, booleans, strings and nil pass through unchanged. Slices and
// arrays are normalized element by element. A fmt.Stringer becomes its
// String(); anything else becomes its default formatting.
func NormalizeParam(p any) any {
	switch v := p.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = NormalizeParam(rv.Index(i).Interface())
		}
		return out
	}
	return fmt.Sprint(p)
}
