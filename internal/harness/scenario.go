package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
)

// Scenario defines an engine scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the engine configuration under test.
	Config ScenarioConfig `yaml:"config"`

	// Ticks is the number of ticks to run.
	Ticks int `yaml:"ticks"`

	// ExpectError, when set, is the ConfigurationError code the engine must
	// reject Config with. Ticks and Assertions are then optional.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the trace and final counters.
	Assertions []Assertion `yaml:"assertions"`
}

// ScenarioConfig mirrors the engine construction parameters.
type ScenarioConfig struct {
	AgentCount    int     `yaml:"agent_count"`
	IdeaRate      float64 `yaml:"idea_rate"`
	Seed          int64   `yaml:"seed"`
	NetworkLayers []int   `yaml:"network_layers"`

	// Locale selects the summary language. Empty means engine.DefaultLocale.
	Locale string `yaml:"locale,omitempty"`

	// HistoryCapacity overrides the history size. Zero means the default.
	HistoryCapacity int `yaml:"history_capacity,omitempty"`
}

// Params converts the config to engine parameters.
func (c ScenarioConfig) Params() engine.Params {
	layers := make([]int, len(c.NetworkLayers))
	copy(layers, c.NetworkLayers)
	return engine.Params{
		AgentCount: c.AgentCount,
		Rate:       c.IdeaRate,
		Seed:       c.Seed,
		Layers:     layers,
	}
}

// Assertion validates the trace or final counters.
//
// Pointer fields distinguish "not given" from zero. trace_contains matches
// only the fields that are given.
type Assertion struct {
	// Type specifies the assertion type (see the Assert* constants).
	Type string `yaml:"type"`

	// Tick is the 1-based tick (tick_count, optionally trace_contains).
	Tick int `yaml:"tick,omitempty"`

	// Count is the expected number (tick_count, total_events, history_len,
	// category_count).
	Count *int `yaml:"count,omitempty"`

	// Agent is the agent id (agent_sequence, trace_contains).
	Agent *int `yaml:"agent,omitempty"`

	// Sequence is the expected sequence (agent_sequence, trace_contains).
	Sequence *int64 `yaml:"sequence,omitempty"`

	// Layer is the network layer (trace_contains).
	Layer *int `yaml:"layer,omitempty"`

	// Category is the idea category (trace_contains, category_count).
	Category string `yaml:"category,omitempty"`

	// Summary is the exact summary text (trace_contains).
	Summary string `yaml:"summary,omitempty"`
}

// Assertion type constants.
const (
	AssertTickCount     = "tick_count"
	AssertTotalEvents   = "total_events"
	AssertHistoryLen    = "history_len"
	AssertAgentSequence = "agent_sequence"
	AssertTraceContains = "trace_contains"
	AssertCategoryCount = "category_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Engine parameters are not checked here: rejecting them is the engine's job
// and scenarios may exercise that through expect_error.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", s.Ticks)
	}

	if s.ExpectError != "" {
		return nil
	}

	if s.Ticks == 0 {
		return fmt.Errorf("ticks is required and must be positive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Ticks); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, ticks int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	needCount := func() error {
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
		return nil
	}

	if a.Tick != 0 && (a.Tick < 1 || a.Tick > ticks) {
		return fmt.Errorf("assertions[%d]: tick %d out of range [1, %d]", index, a.Tick, ticks)
	}

	switch a.Type {
	case AssertTickCount:
		if a.Tick == 0 {
			return fmt.Errorf("assertions[%d]: tick is required for tick_count", index)
		}
		return needCount()
	case AssertTotalEvents, AssertHistoryLen:
		return needCount()
	case AssertAgentSequence:
		if a.Agent == nil {
			return fmt.Errorf("assertions[%d]: agent is required for agent_sequence", index)
		}
		if a.Sequence == nil {
			return fmt.Errorf("assertions[%d]: sequence is required for agent_sequence", index)
		}
	case AssertTraceContains:
		if a.Agent == nil && a.Sequence == nil && a.Layer == nil && a.Category == "" && a.Summary == "" && a.Tick == 0 {
			return fmt.Errorf("assertions[%d]: trace_contains needs at least one field to match", index)
		}
	case AssertCategoryCount:
		if !knownCategory(a.Category) {
			return fmt.Errorf("assertions[%d]: unknown category %q", index, a.Category)
		}
		return needCount()
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func knownCategory(c string) bool {
	for _, known := range engine.Categories {
		if string(known) == c {
			return true
		}
	}
	return false
}
