// Package fortune is the entry point to the daily energy engine. It joins
// the cycle mapper, chart registries, scorer and statistics into the three
// operations callers use: resolve a date's code, score a day, and
// summarize a run of days.
//
// Everything here is synchronous and pure apart from the optional calendar
// formatter and the clock used to decide "today". Repeated calls with the
// same date return identical records.
package fortune

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/tianshu/internal/chart"
	"github.com/roach88/tianshu/internal/cycle"
	"github.com/roach88/tianshu/internal/narrative"
	"github.com/roach88/tianshu/internal/scoring"
	"github.com/roach88/tianshu/internal/stats"
)

// ScoreRecord is the computed outcome for a single date.
type ScoreRecord struct {
	Date            time.Time
	Code            cycle.Code
	Palace          chart.Palace
	Transformations chart.Transformations
	Score           int
	Hits            scoring.Hits
}

// Reading composes the display text for the record.
func (r ScoreRecord) Reading() narrative.Reading {
	return narrative.Compose(r.Palace, r.Code.Stem, scoring.Result{Score: r.Score, Hits: r.Hits})
}

// Day is a ScoreRecord together with its display labels.
type Day struct {
	ScoreRecord
	Label   string // e.g. "癸亥日"
	Lunar   string // calendar formatter output or LunarPlaceholder
	Reading narrative.Reading
}

// RangeReport is the result of SummarizeRange.
type RangeReport struct {
	Start   time.Time
	Records []ScoreRecord
	Summary stats.Summary
	Top     []ScoreRecord
	Bottom  []ScoreRecord
}

// Engine computes daily scores. The zero value is not usable; call New.
type Engine struct {
	calendar CalendarFormatter
	clock    Clock
	location *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithCalendar sets the lunar calendar formatter. Without one every lunar
// label is LunarPlaceholder.
func WithCalendar(c CalendarFormatter) Option {
	return func(e *Engine) {
		e.calendar = c
	}
}

// WithClock sets the clock used by Today.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLocation sets the zone whose calendar day Today reports.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// New creates an Engine. Defaults: system clock, local zone, no calendar.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:    SystemClock{},
		location: time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the zone used for Today and date parsing.
func (e *Engine) Location() *time.Location {
	return e.location
}

// Today returns the current civil date in the engine's zone.
func (e *Engine) Today() time.Time {
	return civilDate(e.clock.Now().In(e.location))
}

// ParseDate parses s in the engine's zone.
func (e *Engine) ParseDate(s string) (time.Time, error) {
	return ParseDate(s, e.location)
}

// ResolveCycle returns the cyclical code of date.
func (e *Engine) ResolveCycle(date time.Time) cycle.Code {
	return cycle.Resolve(date)
}

// ComputeDailyScore scores the civil day of date.
func (e *Engine) ComputeDailyScore(date time.Time) ScoreRecord {
	code := cycle.Resolve(date)
	palace := chart.PalaceFor(code.Branch)
	tr := chart.TransformationsFor(code.Stem)
	res := scoring.Compute(palace, tr)

	return ScoreRecord{
		Date:            civilDate(date),
		Code:            code,
		Palace:          palace,
		Transformations: tr,
		Score:           res.Score,
		Hits:            res.Hits,
	}
}

// Describe scores date and attaches its day label, lunar label and reading.
// A failing calendar formatter yields LunarPlaceholder, never an error.
func (e *Engine) Describe(date time.Time) Day {
	rec := e.ComputeDailyScore(date)
	return Day{
		ScoreRecord: rec,
		Label:       rec.Code.DayLabel(),
		Lunar:       lunarLabel(e.calendar, rec.Date),
		Reading:     rec.Reading(),
	}
}

// BuildSeries scores dayCount consecutive days starting at start.
func (e *Engine) BuildSeries(start time.Time, dayCount int) ([]ScoreRecord, error) {
	if dayCount < 1 {
		return nil, &InvalidInputError{
			Field:  "days",
			Value:  strconv.Itoa(dayCount),
			Reason: "day count must be at least 1",
		}
	}

	first := civilDate(start)
	records := make([]ScoreRecord, dayCount)
	for i := range records {
		records[i] = e.ComputeDailyScore(first.AddDate(0, 0, i))
	}

	slog.Debug("series built",
		"start", first.Format(DateLayout),
		"days", dayCount,
	)
	return records, nil
}

// SummarizeRange builds the series for dayCount days from start and computes
// its statistics. Top and Bottom hold the extreme records in the order
// reported by the summary.
func (e *Engine) SummarizeRange(start time.Time, dayCount int) (RangeReport, error) {
	records, err := e.BuildSeries(start, dayCount)
	if err != nil {
		return RangeReport{}, err
	}

	summary := stats.Summarize(Scores(records))
	return RangeReport{
		Start:   records[0].Date,
		Records: records,
		Summary: summary,
		Top:     pick(records, summary.Top),
		Bottom:  pick(records, summary.Bottom),
	}, nil
}

// Scores extracts the score series from records.
func Scores(records []ScoreRecord) []int {
	scores := make([]int, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}
	return scores
}

func pick(records []ScoreRecord, extremes []stats.Extreme) []ScoreRecord {
	out := make([]ScoreRecord, len(extremes))
	for i, x := range extremes {
		out[i] = records[x.Index]
	}
	return out
}
