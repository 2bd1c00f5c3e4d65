package qbist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Format names a circuit file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown file extension %q", ErrUnsupportedCircuit, filepath.Ext(path))
	}
}

// SchemaError reports a circuit that does not match the circuit schema.
type SchemaError struct {
	Problems []Problem
}

// Problem is a single schema violation.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "circuit schema: " + strings.Join(parts, "; ")
}

// LoadCircuit reads a JSON or YAML circuit file, validates it and decodes it.
func LoadCircuit(path string) (*Circuit, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit: %w", err)
	}
	return ParseCircuit(data, format)
}

// ParseCircuit decodes and validates circuit data.
//
// It returns ErrUnsupportedCircuit (wrapped) when the document is not an
// object with both qubits and operations, and *SchemaError when it is but
// does not match the schema.
func ParseCircuit(data []byte, format Format) (*Circuit, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is %T, not an object", ErrUnsupportedCircuit, raw)
	}
	for _, key := range []string{"qubits", "operations"} {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrUnsupportedCircuit, key)
		}
	}

	if err := Validate(obj); err != nil {
		return nil, err
	}

	// The schema has already constrained the shape, so this round trip only
	// moves values into typed fields.
	normalized, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("normalize circuit: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.UseNumber()
	var c Circuit
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode circuit: %w", err)
	}
	return &c, nil
}

func decodeRaw(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse circuit JSON: %w", err)
		}
		return fromJSONNumbers(raw), nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse circuit YAML: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrUnsupportedCircuit, format)
	}
}

// fromJSONNumbers replaces json.Number with int64 or float64 so that CUE
// sees integers as ints.
func fromJSONNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = fromJSONNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = fromJSONNumbers(val[k])
		}
		return val
	default:
		return v
	}
}

// Validate checks a decoded document against the circuit schema.
func Validate(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile circuit schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Circuit"))

	data := ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return newSchemaError(err)
	}

	if err := def.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return newSchemaError(err)
	}
	return nil
}

func newSchemaError(err error) *SchemaError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Problems: []Problem{{Message: err.Error()}}}
	}
	problems := make([]Problem, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		problems = append(problems, Problem{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return &SchemaError{Problems: problems}
}

// Marshal renders payload as indented JSON without HTML escaping.
func Marshal(payload *Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes payload to path as indented JSON.
func WriteFile(path string, payload *Payload) error {
	data, err := Marshal(payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
