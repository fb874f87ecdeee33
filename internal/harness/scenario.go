package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/narrative"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Timezone is the IANA zone dates are parsed in. Defaults to UTC.
	Timezone string `yaml:"timezone,omitempty"`

	// Days lists single-day checks, evaluated in order.
	Days []DayCheck `yaml:"days,omitempty"`

	// Range is an optional series summary check.
	Range *RangeCheck `yaml:"range,omitempty"`

	// Assertions are property checks over windows of days.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// DayCheck scores one date and compares it against Expect.
type DayCheck struct {
	Date   string    `yaml:"date"`
	Expect DayExpect `yaml:"expect"`
}

// DayExpect lists expected values for a day. Empty fields are not checked.
type DayExpect struct {
	Code   string `yaml:"code,omitempty"`
	Palace string `yaml:"palace,omitempty"`
	Score  *int   `yaml:"score,omitempty"`
	Band   string `yaml:"band,omitempty"`
	Color  string `yaml:"color,omitempty"`
	Tone   string `yaml:"tone,omitempty"`
	Status string `yaml:"status,omitempty"`
}

// RangeCheck summarizes Days days from Start and compares against Expect.
type RangeCheck struct {
	Start  string      `yaml:"start"`
	Days   int         `yaml:"days"`
	Expect RangeExpect `yaml:"expect"`
}

// RangeExpect lists expected statistics. Nil fields are not checked; real
// values are compared to within Tolerance.
type RangeExpect struct {
	Count  *int     `yaml:"count,omitempty"`
	Min    *int     `yaml:"min,omitempty"`
	Max    *int     `yaml:"max,omitempty"`
	Mean   *float64 `yaml:"mean,omitempty"`
	Median *float64 `yaml:"median,omitempty"`
	StdDev *float64 `yaml:"std_dev,omitempty"`
	Bins   *int     `yaml:"bins,omitempty"`
	Top    []string `yaml:"top,omitempty"`
	Bottom []string `yaml:"bottom,omitempty"`
}

// Tolerance is the allowed difference for real-valued statistics.
const Tolerance = 1e-3

// Assertion is a property check.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// From is the first day of the window (periodic, idempotent,
	// histogram_coverage).
	From string `yaml:"from,omitempty"`

	// Days is the window length.
	Days int `yaml:"days,omitempty"`
}

// Assertion type constants.
const (
	AssertPeriodic          = "periodic"
	AssertIdempotent        = "idempotent"
	AssertMonotonicBands    = "monotonic_bands"
	AssertHistogramCoverage = "histogram_coverage"
	AssertRegistryComplete  = "registry_complete"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files directly under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// location returns the scenario zone, UTC when unset.
func (s *Scenario) location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Days) == 0 && s.Range == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("at least one of days, range or assertions is required")
	}

	loc, err := s.location()
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	for i, d := range s.Days {
		if _, err := fortune.ParseDate(d.Date, loc); err != nil {
			return fmt.Errorf("days[%d]: %w", i, err)
		}
		if b := d.Expect.Band; b != "" {
			if _, ok := narrative.ParseBand(b); !ok {
				return fmt.Errorf("days[%d].expect: unknown band %q", i, b)
			}
		}
	}

	if r := s.Range; r != nil {
		if _, err := fortune.ParseDate(r.Start, loc); err != nil {
			return fmt.Errorf("range: %w", err)
		}
		if r.Days < 1 {
			return fmt.Errorf("range: days must be at least 1")
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], loc); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, loc *time.Location) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPeriodic, AssertIdempotent, AssertHistogramCoverage:
		if _, err := fortune.ParseDate(a.From, loc); err != nil {
			return fmt.Errorf("assertions[%d]: from: %w", index, err)
		}
		if a.Days < 1 {
			return fmt.Errorf("assertions[%d]: days must be at least 1 for %s", index, a.Type)
		}
	case AssertMonotonicBands, AssertRegistryComplete:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
