package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/stats"
)

func newTestHarness() *Harness {
	return &Harness{engine: fortune.New()}
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	h := newTestHarness()

	errs := h.evaluateAssertions([]Assertion{
		{Type: AssertPeriodic, From: "2025-12-20", Days: 60},
		{Type: AssertIdempotent, From: "2025-12-20", Days: 14},
		{Type: AssertHistogramCoverage, From: "2025-01-01", Days: 365},
		{Type: AssertMonotonicBands},
		{Type: AssertRegistryComplete},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	h := newTestHarness()

	errs := h.evaluateAssertions([]Assertion{{Type: "trace_contains"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `assertions[0]: unknown assertion type "trace_contains"`)
}

func TestEvaluateAssertions_BadWindow(t *testing.T) {
	h := newTestHarness()

	errs := h.evaluateAssertions([]Assertion{
		{Type: AssertPeriodic, From: "2025-12-20", Days: 0},
		{Type: AssertIdempotent, From: "not a date", Days: 3},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "day count must be at least 1")
	assert.Contains(t, errs[1], "expected YYYY-MM-DD")
}

func TestHistogramCovers(t *testing.T) {
	scores := []int{25, -19, 13, 26}
	assert.NoError(t, histogramCovers(scores, stats.Histogram(scores)))

	err := histogramCovers(scores, []stats.Bin{{Min: -20, Max: 0, Count: 1}, {Min: 0, Max: 20, Count: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bins count 2 scores, series has 4")

	err = histogramCovers([]int{5}, []stats.Bin{{Min: 0, Max: 10, Count: 1}, {Min: 5, Max: 15, Count: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score 5 falls in 2 bins")
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertPeriodic,
		Expected: "2025-12-20 +60d = 癸亥 (25)",
		Actual:   "甲子 (-19)",
	}

	assert.Equal(t,
		"Assertion failed: periodic\n  Expected: 2025-12-20 +60d = 癸亥 (25)\n  Actual: 甲子 (-19)",
		err.Error())
}
