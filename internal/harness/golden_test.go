package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/canon"
)

// scenarioDir holds the shared scenario files at the project root.
const scenarioDir = "../../testdata/scenarios"

func TestScenarios_Golden(t *testing.T) {
	paths, err := FindScenarios(scenarioDir)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario should pass: errors=%v", result.Errors)
		})
	}
}

func TestAssertGolden_FromResult(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join(scenarioDir, "anchor_fortnight.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, "anchor_fortnight", result))
}

func TestSnapshot_CanonicalDeterminism(t *testing.T) {
	snapshot := Snapshot{
		ScenarioName: "s",
		Trace:        []TraceEvent{{Date: "2025-12-20", Code: "癸亥", Palace: "遷移宮", Score: 25, Band: "flow", Status: "破軍祿"}},
	}

	first, err := canon.Marshal(snapshot.toCanonical())
	require.NoError(t, err)
	second, err := canon.Marshal(snapshot.toCanonical())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t,
		`{"scenario_name":"s","trace":[{"band":"flow","code":"癸亥","date":"2025-12-20","palace":"遷移宮","score":25,"status":"破軍祿"}]}`,
		string(first))
}
