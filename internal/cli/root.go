package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/config"
	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/lunar"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// clock overrides the system clock; set by tests.
	clock fortune.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tianshu CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tianshu",
		Short: "tianshu - daily fortune energy",
		Long: `Compute the daily energy score of the sexagenary day cycle against a
fixed natal chart, and summarize it over ranges of days.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath+" if present)")

	// Add subcommands
	cmd.AddCommand(NewCycleCommand(opts))
	cmd.AddCommand(NewDayCommand(opts))
	cmd.AddCommand(NewRangeCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// loadConfig reads --config, or the default path when it exists.
func (o *RootOptions) loadConfig() (config.Config, error) {
	path, mustExist := o.ConfigPath, true
	if path == "" {
		path, mustExist = config.DefaultPath, false
	}
	cfg, err := config.Load(path, mustExist)
	if err != nil {
		return config.Config{}, err
	}
	slog.Debug("config loaded", "path", path, "timezone", cfg.Timezone, "database", cfg.Database)
	return cfg, nil
}

// newEngine builds the engine described by cfg.
func (o *RootOptions) newEngine(cfg config.Config) (*fortune.Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts := []fortune.Option{fortune.WithLocation(loc)}
	if cfg.Lunar {
		opts = append(opts, fortune.WithCalendar(lunar.New()))
	}
	if o.clock != nil {
		opts = append(opts, fortune.WithClock(o.clock))
	}
	return fortune.New(opts...), nil
}

// setup loads the config and builds the engine, reporting failures as E202.
func (o *RootOptions) setup(f *OutputFormatter) (config.Config, *fortune.Engine, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return config.Config{}, nil, fail(f, ExitCommandError, ErrCodeConfig, err)
	}
	engine, err := o.newEngine(cfg)
	if err != nil {
		return config.Config{}, nil, fail(f, ExitCommandError, ErrCodeConfig, err)
	}
	return cfg, engine, nil
}

// dateArg parses s in the engine zone, or returns today when s is empty.
func dateArg(engine *fortune.Engine, s string) (time.Time, error) {
	if s == "" {
		return engine.Today(), nil
	}
	return engine.ParseDate(s)
}
