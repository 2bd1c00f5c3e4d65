// Package config loads simulator and server configuration.
//
// Simulator parameters come from a flat key/value file (YAML, or TOML when the
// file ends in .toml). Server settings come from the environment, optionally
// seeded from .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
)

// Default values for unset simulator keys.
const (
	DefaultBotCount = 100
	DefaultIdeaRate = 1.0
	DefaultSeed     = 0
)

// Simulator holds the engine construction parameters.
//
// The file format is flat:
//
//	bot_count: 24
//	idea_rate: 1.5
//	seed: 7
//	network_layers: [1, 2, 3]
type Simulator struct {
	// BotCount is the number of agents. Default 100.
	BotCount int `yaml:"bot_count" toml:"bot_count" json:"bot_count"`

	// IdeaRate is ideas per agent per tick; fractional values are carried. Default 1.
	IdeaRate float64 `yaml:"idea_rate" toml:"idea_rate" json:"idea_rate"`

	// Seed is reported back in status only. Default 0.
	Seed int64 `yaml:"seed" toml:"seed" json:"seed"`

	// NetworkLayers is the ordered layer set shared by every agent.
	// Default empty, which the engine rejects: a config must name its layers.
	NetworkLayers []int `yaml:"network_layers" toml:"network_layers" json:"network_layers"`
}

// Default returns a fully populated Simulator with every key at its default.
func Default() Simulator {
	return Simulator{
		BotCount:      DefaultBotCount,
		IdeaRate:      DefaultIdeaRate,
		Seed:          DefaultSeed,
		NetworkLayers: []int{},
	}
}

// Load reads a simulator config file. Keys absent from the file keep their
// defaults; unknown keys are ignored.
func Load(path string) (Simulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Simulator{}, fmt.Errorf("read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseYAML(data)
}

// ParseYAML decodes flat YAML on top of the defaults.
func ParseYAML(data []byte) (Simulator, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Simulator{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized(), nil
}

// ParseTOML decodes flat TOML on top of the defaults.
func ParseTOML(data []byte) (Simulator, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Simulator{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized(), nil
}

// normalized replaces an explicit null layer list with an empty one.
func (s Simulator) normalized() Simulator {
	if s.NetworkLayers == nil {
		s.NetworkLayers = []int{}
	}
	return s
}

// Params converts the config into engine construction parameters.
// Validation is left to engine.New.
func (s Simulator) Params() engine.Params {
	layers := make([]int, len(s.NetworkLayers))
	copy(layers, s.NetworkLayers)
	return engine.Params{
		AgentCount: s.BotCount,
		Rate:       s.IdeaRate,
		Seed:       s.Seed,
		Layers:     layers,
	}
}
