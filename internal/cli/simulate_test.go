package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simulatorYAML = `bot_count: 2
idea_rate: 1.5
seed: 7
network_layers: [1, 2, 3]
`

func TestSimulate_TextOutput(t *testing.T) {
	cfg := writeFile(t, "simulator.yml", simulatorYAML)

	out, _, err := executeRoot(t, "simulate", "--config", cfg, "--ticks", "2", "--recent", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "tick 1: 2 idea(s) (total 2)\n")
	assert.Contains(t, out, "tick 2: 4 idea(s) (total 6)\n")
	assert.Contains(t, out, "Bots: 2  Rate: 1.5  Seed: 7  Layers: 3\n")
	assert.Contains(t, out, "Total ideas: 6\n")
	assert.Contains(t, out, "Recent ideas (3):\n"+
		"  [bot 0 #3] latency optimization on layer 1\n"+
		"  [bot 1 #2] resilience testing on layer 1\n"+
		"  [bot 1 #3] consensus reinforcement on layer 2\n")
}

func TestSimulate_SpanishLocale(t *testing.T) {
	cfg := writeFile(t, "simulator.yml", simulatorYAML)

	out, _, err := executeRoot(t, "simulate", "--config", cfg, "--ticks", "2", "--recent", "1", "--locale", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "[bot 1 #3] Refuerzo de consenso en capa 2")
}

func TestSimulate_TOMLConfig(t *testing.T) {
	cfg := writeFile(t, "simulator.toml", "bot_count = 3\nidea_rate = 0.5\nnetwork_layers = [4]\n")

	out, _, err := executeRoot(t, "simulate", "--config", cfg, "--ticks", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "tick 1: 0 idea(s) (total 0)\n")
	assert.Contains(t, out, "tick 2: 3 idea(s) (total 3)\n")
}

func TestSimulate_JSONOutput(t *testing.T) {
	cfg := writeFile(t, "simulator.yml", simulatorYAML)

	out, _, err := executeRoot(t, "--format", "json", "simulate", "--config", cfg, "--ticks", "3", "--recent", "2")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   SimulateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int{2, 4, 2}, resp.Data.TickCounts)
	assert.Equal(t, int64(8), resp.Data.Status.TotalEvents)
	assert.Equal(t, 2, resp.Data.Status.AgentCount)
	require.NotNil(t, resp.Data.Status.LastCreatedAt)
	require.Len(t, resp.Data.Recent, 2)
	assert.Equal(t, 1, resp.Data.Recent[1].AgentID)
	assert.Equal(t, int64(4), resp.Data.Recent[1].Sequence)
}

func TestSimulate_ZeroTicks(t *testing.T) {
	cfg := writeFile(t, "simulator.yml", simulatorYAML)

	out, _, err := executeRoot(t, "simulate", "--config", cfg, "--ticks", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Total ideas: 0\n")
	assert.NotContains(t, out, "Recent ideas")
}

func TestSimulate_Errors(t *testing.T) {
	valid := writeFile(t, "simulator.yml", simulatorYAML)
	noLayers := writeFile(t, "simulator.yml", "bot_count: 2\nidea_rate: 1\n")
	zeroBots := writeFile(t, "simulator.yml", "bot_count: 0\nnetwork_layers: [1]\n")

	tests := []struct {
		name    string
		args    []string
		wantOut string
	}{
		{"negative ticks", []string{"--config", valid, "--ticks=-1"}, "--ticks must be non-negative"},
		{"missing config", []string{"--config", "/nonexistent/simulator.yml"}, "Error [E005]"},
		{"empty layers", []string{"--config", noLayers}, "EMPTY_LAYERS"},
		{"zero bots", []string{"--config", zeroBots}, "INVALID_AGENT_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeRoot(t, append([]string{"simulate"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestSimulate_InvalidConfigJSON(t *testing.T) {
	cfg := writeFile(t, "simulator.yml", "bot_count: 1\nidea_rate: -2\nnetwork_layers: [1]\n")

	out, _, err := executeRoot(t, "--format", "json", "simulate", "--config", cfg)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidConfig, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "INVALID_RATE")
}
