// Package config loads the tianshu YAML configuration. Files are decoded
// strictly, missing keys take their defaults, and the result is checked
// against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is read when no --config flag is given.
const DefaultPath = "tianshu.yaml"

// Config is the runtime configuration.
type Config struct {
	// Database is the SQLite path for journal entries and recorded readings.
	Database string `yaml:"database" json:"database"`

	// Timezone is the IANA zone that decides "today". "Local" uses the host
	// zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RangeDays is the default day count for range summaries.
	RangeDays int `yaml:"range_days" json:"range_days"`

	// Lunar enables lunar calendar labels.
	Lunar bool `yaml:"lunar" json:"lunar"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Database:  "tianshu.db",
		Timezone:  "Local",
		RangeDays: 30,
		Lunar:     true,
	}
}

// ValidationError reports a configuration value rejected by the schema.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Load reads the file at path. A missing file yields Default unless
// mustExist is set.
func Load(path string, mustExist bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the schema and that its timezone loads.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	unified := def.Unify(ctx.Encode(cfg))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return &ValidationError{Field: "timezone", Message: err.Error()}
	}
	return nil
}

// Location loads the configured zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ValidationError{Field: "timezone", Message: err.Error()}
	}
	return loc, nil
}

// formatCUEError reports the first schema violation with its field path.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	return &ValidationError{
		Field:   strings.Join(fieldPath(first.Path()), "."),
		Message: fmt.Sprintf(format, args...),
	}
}

// fieldPath drops the schema definition label from a CUE error path.
func fieldPath(path []string) []string {
	if len(path) > 0 && path[0] == "#Config" {
		return path[1:]
	}
	return path
}
