package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/config"
	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Start string
	Days  int
}

// RecordResult is the json payload of the record command.
type RecordResult struct {
	Start    string `json:"start"`
	Days     int    `json:"days"`
	Recorded int    `json:"recorded"`
	Existing int    `json:"existing"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Pin reading fingerprints in the store",
		Long: `Compute readings for a run of days and store their fingerprints so a later
verify can detect any change in the computed results. Days that already have
a recorded fingerprint are left untouched.

Examples:
  tianshu record
  tianshu record --start 2025-12-20 --days 60`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "first day (default today)")
	cmd.Flags().IntVar(&opts.Days, "days", 1, "number of days")

	return cmd
}

func runRecord(opts *RecordOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)
	cfg, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	start, err := dateArg(engine, opts.Start)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}
	records, err := engine.BuildSeries(start, opts.Days)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	st, err := openStore(f, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	result := RecordResult{
		Start: records[0].Date.Format(fortune.DateLayout),
		Days:  len(records),
	}
	for _, r := range records {
		fp, err := fortune.Fingerprint(r)
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeGeneric, err)
		}
		inserted, err := st.RecordReading(ctx, store.RecordedReading{
			Day:         r.Date.Format(fortune.DateLayout),
			Code:        r.Code.String(),
			Score:       r.Score,
			Fingerprint: fp,
		})
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeStore, err)
		}
		if inserted {
			result.Recorded++
		} else {
			result.Existing++
		}
	}

	if opts.Format == "json" {
		return f.Success(result)
	}
	fmt.Fprintf(f.Writer, "Recorded %d reading(s) from %s (%d already recorded)\n",
		result.Recorded, result.Start, result.Existing)
	return nil
}

// openStore opens the configured database, reporting failures as E203.
func openStore(f *OutputFormatter, cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fail(f, ExitCommandError, ErrCodeStore, err)
	}
	f.VerboseLog("Opened store %s", cfg.Database)
	return st, nil
}
