// Package harness runs engine scenarios as executable contract tests.
//
// A scenario fixes an engine configuration, steps the engine a number of
// ticks and asserts on the resulting trace and counters.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	config:
//	  agent_count: 2
//	  idea_rate: 1.5
//	  seed: 7
//	  network_layers: [10, 20, 30]
//	  locale: en
//	ticks: 2
//	assertions:
//	  - type: tick_count
//	    tick: 2
//	    count: 4
//	  - type: trace_contains
//	    agent: 0
//	    sequence: 3
//	    layer: 10
//	    category: resilience testing
//
// A scenario may instead declare expect_error with a configuration error
// code (for example INVALID_RATE). The engine is then expected to reject the
// config and no ticks run.
//
// # Assertion Types
//
//   - tick_count: ideas generated on a given tick (1-based)
//   - total_events: ideas generated over the whole run
//   - history_len: ideas retained in history after the run
//   - agent_sequence: final sequence number of one agent
//   - trace_contains: an idea matching every given field exists
//   - category_count: ideas with a given category over the whole run
//
// # Deterministic Testing
//
// Every run uses a fresh engine with a fixed clock (testutil.Epoch), so
// traces are identical across runs and can be compared against golden
// files. Traces are serialized with canonical JSON (see package canonical).
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/two_agents_fractional.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
