package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared scenario fixtures live at the repository root so the CLI test
// command and these tests read the same files.
const (
	scenarioDir       = "../../testdata/scenarios"
	scenarioGoldenDir = "../../testdata/scenarios/golden"
)

// goldenScenarios have a checked-in trace under scenarioGoldenDir.
var goldenScenarios = map[string]bool{
	"two_agents_fractional": true,
	"spanish_single_agent":  true,
	"half_rate_alternates":  true,
}

// TestScenarios runs every fixture scenario. These serve as:
// 1. End-to-end validation of the engine contract
// 2. Reference examples of the scenario format
// 3. Regression fixtures (via golden traces)
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join(scenarioDir, "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenarios found in %s", scenarioDir)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name must match its file name")

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario failed: %v", result.Errors)

			if goldenScenarios[name] {
				require.NoError(t, AssertGolden(t, scenarioGoldenDir, name, result))
			}
		})
	}
}
