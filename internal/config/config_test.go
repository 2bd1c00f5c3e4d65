package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 100, cfg.BotCount)
	assert.Equal(t, 1.0, cfg.IdeaRate)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.NotNil(t, cfg.NetworkLayers)
	assert.Empty(t, cfg.NetworkLayers)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "simulator.yml", `
# simulator settings
bot_count: 24
idea_rate: 1.5
seed: 7
network_layers: [1, 2, 3]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Simulator{BotCount: 24, IdeaRate: 1.5, Seed: 7, NetworkLayers: []int{1, 2, 3}}, cfg)
}

func TestLoad_YAMLPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "simulator.yml", "network_layers: [5]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.BotCount)
	assert.Equal(t, 1.0, cfg.IdeaRate)
	assert.Equal(t, []int{5}, cfg.NetworkLayers)
}

func TestLoad_YAMLIntegerRate(t *testing.T) {
	cfg, err := ParseYAML([]byte("idea_rate: 2\nnetwork_layers: [1]\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.IdeaRate)
}

func TestLoad_YAMLIgnoresUnknownKeys(t *testing.T) {
	cfg, err := ParseYAML([]byte("simulator: quantum\nbot_count: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.BotCount)
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	path := writeFile(t, "simulator.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_NullLayersNormalized(t *testing.T) {
	cfg, err := ParseYAML([]byte("network_layers:\n"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.NetworkLayers)
	assert.Empty(t, cfg.NetworkLayers)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "simulator.toml", `
bot_count = 12
idea_rate = 0.25
seed = 99
network_layers = [4, 8]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Simulator{BotCount: 12, IdeaRate: 0.25, Seed: 99, NetworkLayers: []int{4, 8}}, cfg)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFile(t, "simulator.yml", "bot_count: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_WrongType(t *testing.T) {
	_, err := ParseYAML([]byte("bot_count: many\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestSimulator_Params(t *testing.T) {
	cfg := Simulator{BotCount: 2, IdeaRate: 1.5, Seed: 3, NetworkLayers: []int{10, 20}}

	p := cfg.Params()
	assert.Equal(t, engine.Params{AgentCount: 2, Rate: 1.5, Seed: 3, Layers: []int{10, 20}}, p)

	p.Layers[0] = 0
	assert.Equal(t, 10, cfg.NetworkLayers[0], "Params copies layers")
}

func TestSimulator_DefaultsRejectedByEngine(t *testing.T) {
	_, err := engine.New(Default().Params())

	require.Error(t, err)
	assert.True(t, engine.IsConfigurationError(err), "default layer set is empty")
}
