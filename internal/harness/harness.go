package harness

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/stats"
)

// Harness executes a scenario against one engine instance.
type Harness struct {
	engine *fortune.Engine
	loc    *time.Location
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Build an engine in the scenario zone with no calendar formatter
// 2. Score and check each day
// 3. Summarize and check the range
// 4. Evaluate property assertions
//
// An error is returned only when the scenario itself cannot run; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	loc, err := scenario.location()
	if err != nil {
		return nil, fmt.Errorf("scenario timezone: %w", err)
	}

	h := &Harness{
		engine: fortune.New(fortune.WithLocation(loc)),
		loc:    loc,
	}

	result := NewResult()
	if err := h.runDays(scenario.Days, result); err != nil {
		return nil, fmt.Errorf("failed to run days: %w", err)
	}
	if scenario.Range != nil {
		if err := h.runRange(scenario.Range, result); err != nil {
			return nil, fmt.Errorf("failed to run range: %w", err)
		}
	}

	for _, msg := range h.evaluateAssertions(scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) runDays(days []DayCheck, result *Result) error {
	for i, check := range days {
		date, err := h.engine.ParseDate(check.Date)
		if err != nil {
			return fmt.Errorf("days[%d]: %w", i, err)
		}
		day := h.engine.Describe(date)
		result.Trace = append(result.Trace, TraceEvent{
			Date:   check.Date,
			Code:   day.Code.String(),
			Palace: day.Palace.Name,
			Score:  day.Score,
			Band:   day.Reading.Band.String(),
			Status: day.Reading.Status,
		})

		for _, msg := range compareDay(check.Date, check.Expect, day) {
			result.AddError(msg)
		}
	}
	return nil
}

func compareDay(date string, want DayExpect, got fortune.Day) []string {
	var errs []string
	check := func(field, want, got string) {
		if want != "" && want != got {
			errs = append(errs, fmt.Sprintf("%s: %s = %q, want %q", date, field, got, want))
		}
	}
	check("code", want.Code, got.Code.String())
	check("palace", want.Palace, got.Palace.Name)
	check("band", want.Band, got.Reading.Band.String())
	check("color", want.Color, got.Reading.Color.String())
	check("tone", want.Tone, got.Reading.Tone.String())
	check("status", want.Status, got.Reading.Status)
	if want.Score != nil && *want.Score != got.Score {
		errs = append(errs, fmt.Sprintf("%s: score = %d, want %d", date, got.Score, *want.Score))
	}
	return errs
}

func (h *Harness) runRange(rc *RangeCheck, result *Result) error {
	start, err := h.engine.ParseDate(rc.Start)
	if err != nil {
		return err
	}
	report, err := h.engine.SummarizeRange(start, rc.Days)
	if err != nil {
		return err
	}

	result.Range = rangeTrace(rc, report)
	for _, msg := range compareRange(rc.Expect, report) {
		result.AddError(msg)
	}
	return nil
}

func rangeTrace(rc *RangeCheck, report fortune.RangeReport) *RangeTrace {
	s := report.Summary
	bins := make([][3]int, len(s.Histogram))
	for i, b := range s.Histogram {
		bins[i] = [3]int{b.Min, b.Max, b.Count}
	}
	return &RangeTrace{
		Start:     report.Start.Format(fortune.DateLayout),
		Days:      rc.Days,
		Count:     s.Count,
		Min:       s.Min,
		Max:       s.Max,
		Mean:      fixed(s.Mean),
		Median:    fixed(s.Median),
		StdDev:    fixed(s.StdDev),
		Skewness:  fixed(s.Skewness),
		Histogram: bins,
		Top:       codes(report.Top),
		Bottom:    codes(report.Bottom),
	}
}

func compareRange(want RangeExpect, report fortune.RangeReport) []string {
	s := report.Summary
	var errs []string
	checkInt := func(field string, want *int, got int) {
		if want != nil && *want != got {
			errs = append(errs, fmt.Sprintf("range: %s = %d, want %d", field, got, *want))
		}
	}
	checkReal := func(field string, want *float64, got float64) {
		if want != nil && math.Abs(*want-got) > Tolerance {
			errs = append(errs, fmt.Sprintf("range: %s = %s, want %s", field, fixed(got), fixed(*want)))
		}
	}
	checkCodes := func(field string, want []string, got []fortune.ScoreRecord) {
		if want != nil && !slices.Equal(want, codes(got)) {
			errs = append(errs, fmt.Sprintf("range: %s = %v, want %v", field, codes(got), want))
		}
	}

	checkInt("count", want.Count, s.Count)
	checkInt("min", want.Min, s.Min)
	checkInt("max", want.Max, s.Max)
	checkInt("bins", want.Bins, len(s.Histogram))
	checkReal("mean", want.Mean, s.Mean)
	checkReal("median", want.Median, s.Median)
	checkReal("std_dev", want.StdDev, s.StdDev)
	checkCodes("top", want.Top, report.Top)
	checkCodes("bottom", want.Bottom, report.Bottom)
	return errs
}

// histogramCovers reports whether bins count every score exactly once.
func histogramCovers(scores []int, bins []stats.Bin) error {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(scores) {
		return fmt.Errorf("bins count %d scores, series has %d", total, len(scores))
	}
	for _, x := range scores {
		owners := 0
		for _, b := range bins {
			if b.Min <= x && x < b.Max {
				owners++
			}
		}
		if owners != 1 {
			return fmt.Errorf("score %d falls in %d bins", x, owners)
		}
	}
	return nil
}

func codes(records []fortune.ScoreRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Code.String()
	}
	return out
}

func fixed(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
