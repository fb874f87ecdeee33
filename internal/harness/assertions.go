package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/tianshu/internal/chart"
	"github.com/roach88/tianshu/internal/cycle"
	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/narrative"
	"github.com/roach88/tianshu/internal/stats"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// bandProbeSpan bounds the scores checked by monotonic_bands. Every
// reachable score lies well inside it.
const bandProbeSpan = 200

// cyclePeriod is the length of the sexagenary day cycle.
const cyclePeriod = 60

func (h *Harness) evaluateAssertions(assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := h.evaluate(a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func (h *Harness) evaluate(a Assertion) error {
	switch a.Type {
	case AssertPeriodic:
		return h.assertPeriodic(a)
	case AssertIdempotent:
		return h.assertIdempotent(a)
	case AssertMonotonicBands:
		return assertMonotonicBands()
	case AssertHistogramCoverage:
		return h.assertHistogramCoverage(a)
	case AssertRegistryComplete:
		return assertRegistryComplete()
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func (h *Harness) window(a Assertion) ([]fortune.ScoreRecord, error) {
	from, err := h.engine.ParseDate(a.From)
	if err != nil {
		return nil, err
	}
	return h.engine.BuildSeries(from, a.Days)
}

func (h *Harness) assertPeriodic(a Assertion) error {
	records, err := h.window(a)
	if err != nil {
		return err
	}
	for _, r := range records {
		later := h.engine.ComputeDailyScore(r.Date.AddDate(0, 0, cyclePeriod))
		if later.Code != r.Code || later.Score != r.Score {
			return &AssertionError{
				Type:     AssertPeriodic,
				Expected: fmt.Sprintf("%s +60d = %s (%d)", r.Date.Format(fortune.DateLayout), r.Code, r.Score),
				Actual:   fmt.Sprintf("%s (%d)", later.Code, later.Score),
			}
		}
	}
	return nil
}

func (h *Harness) assertIdempotent(a Assertion) error {
	records, err := h.window(a)
	if err != nil {
		return err
	}
	for _, r := range records {
		first, err := fortune.Fingerprint(r)
		if err != nil {
			return err
		}
		second, err := fortune.Fingerprint(h.engine.ComputeDailyScore(r.Date))
		if err != nil {
			return err
		}
		if first != second {
			return &AssertionError{
				Type:     AssertIdempotent,
				Expected: fmt.Sprintf("%s fingerprint %s", r.Date.Format(fortune.DateLayout), first),
				Actual:   second,
			}
		}
	}
	return nil
}

func assertMonotonicBands() error {
	for s := -bandProbeSpan; s < bandProbeSpan; s++ {
		lo, hi := narrative.Classify(s), narrative.Classify(s+1)
		if lo.Better(hi) {
			return &AssertionError{
				Type:     AssertMonotonicBands,
				Expected: fmt.Sprintf("band(%d) <= band(%d)", s, s+1),
				Actual:   fmt.Sprintf("%s > %s", lo, hi),
			}
		}
	}
	return nil
}

func (h *Harness) assertHistogramCoverage(a Assertion) error {
	records, err := h.window(a)
	if err != nil {
		return err
	}
	scores := fortune.Scores(records)
	if err := histogramCovers(scores, stats.Histogram(scores)); err != nil {
		return &AssertionError{
			Type:     AssertHistogramCoverage,
			Expected: "every score in exactly one bin",
			Actual:   err.Error(),
		}
	}
	return nil
}

func assertRegistryComplete() error {
	for _, b := range cycle.Branches() {
		p := chart.PalaceFor(b)
		if p.Branch != b || p.Name == "" || !p.Position.Valid() {
			return &AssertionError{
				Type:     AssertRegistryComplete,
				Expected: fmt.Sprintf("palace for %s", b),
				Actual:   fmt.Sprintf("%+v", p),
			}
		}
	}
	for _, s := range cycle.Stems() {
		tr := chart.TransformationsFor(s)
		for _, slot := range chart.Slots() {
			if tr.Stem != s || !tr.Star(slot).Valid() {
				return &AssertionError{
					Type:     AssertRegistryComplete,
					Expected: fmt.Sprintf("%s transformation for %s", slot.Name(), s),
					Actual:   tr.Star(slot).String(),
				}
			}
		}
	}
	return nil
}
