package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tianshu/internal/canon"
)

// Snapshot captures the deterministic output of a scenario execution.
type Snapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Range        *RangeTrace
}

// toCanonical converts the snapshot into values canon.Marshal accepts.
func (s *Snapshot) toCanonical() canon.Object {
	trace := make(canon.Array, len(s.Trace))
	for i, e := range s.Trace {
		trace[i] = canon.Object{
			"date":   e.Date,
			"code":   e.Code,
			"palace": e.Palace,
			"score":  e.Score,
			"band":   e.Band,
			"status": e.Status,
		}
	}

	out := canon.Object{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
	}
	if r := s.Range; r != nil {
		bins := make(canon.Array, len(r.Histogram))
		for i, b := range r.Histogram {
			bins[i] = []int{b[0], b[1], b[2]}
		}
		out["range"] = canon.Object{
			"start":     r.Start,
			"days":      r.Days,
			"count":     r.Count,
			"min":       r.Min,
			"max":       r.Max,
			"mean":      r.Mean,
			"median":    r.Median,
			"std_dev":   r.StdDev,
			"skewness":  r.Skewness,
			"histogram": bins,
			"top":       r.Top,
			"bottom":    r.Bottom,
		}
	}
	return out
}

// SnapshotJSON returns the canonical JSON snapshot of result, the bytes
// stored in golden files.
func SnapshotJSON(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Range:        result.Range,
	}
	return canon.Marshal(snapshot.toCanonical())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. A snapshot mismatch fails t.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the golden file for
// scenarioName without re-running it.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := SnapshotJSON(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
