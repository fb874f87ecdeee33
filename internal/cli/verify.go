package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	From string
	To   string
}

// Mismatch describes a recorded reading that no longer reproduces.
type Mismatch struct {
	Day      string `json:"day"`
	Recorded string `json:"recorded"`
	Computed string `json:"computed"`
	Code     string `json:"code"`
	Score    int    `json:"score"`
	WasCode  string `json:"was_code"`
	WasScore int    `json:"was_score"`
}

// VerifyResult is the json payload of the verify command.
type VerifyResult struct {
	Checked       int        `json:"checked"`
	Mismatches    []Mismatch `json:"mismatches"`
	Deterministic bool       `json:"deterministic"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute recorded readings and compare fingerprints",
		Long: `Recompute every recorded reading and compare its fingerprint with the
one stored by record.

Exit codes:
  0 - All readings reproduce
  1 - One or more fingerprints differ
  2 - Command error (store unavailable, bad config, etc.)

Examples:
  tianshu verify
  tianshu verify --from 2025-12-01 --to 2025-12-31 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "first day to check (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last day to check (YYYY-MM-DD)")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)
	cfg, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	from, to, err := verifyBounds(engine, opts.From, opts.To)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	st, err := openStore(f, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	recorded, err := st.ReadReadings(ctx, from, to)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, err)
	}

	result := VerifyResult{
		Checked:    len(recorded),
		Mismatches: []Mismatch{},
	}
	for _, rec := range recorded {
		m, err := verifyReading(engine, rec)
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeStore, err)
		}
		if m != nil {
			result.Mismatches = append(result.Mismatches, *m)
		}
	}
	result.Deterministic = len(result.Mismatches) == 0

	if opts.Format == "json" {
		if !result.Deterministic {
			if err := f.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error: &CLIError{
					Code:    ErrCodeMismatch,
					Message: fmt.Sprintf("%d reading(s) differ from their recorded fingerprint", len(result.Mismatches)),
				},
			}); err != nil {
				return err
			}
			return &ExitError{Code: ExitFailure, Message: ErrCodeMismatch, Reported: true}
		}
		return f.Success(result)
	}

	w := f.Writer
	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "✗ %s  recorded %s (%d) %s\n", m.Day, m.WasCode, m.WasScore, short(m.Recorded))
		fmt.Fprintf(w, "  computed %s (%d) %s\n", m.Code, m.Score, short(m.Computed))
	}
	fmt.Fprintf(w, "Verified %d reading(s), %d mismatch(es)\n", result.Checked, len(result.Mismatches))
	if !result.Deterministic {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d reading(s) differ from their recorded fingerprint", len(result.Mismatches)),
			Reported: true,
		}
	}
	fmt.Fprintln(w, "✓ All recorded readings reproduce")
	return nil
}

// verifyBounds normalizes the optional --from/--to flags to YYYY-MM-DD.
func verifyBounds(engine *fortune.Engine, from, to string) (string, string, error) {
	var out [2]string
	for i, s := range []string{from, to} {
		if s == "" {
			continue
		}
		t, err := engine.ParseDate(s)
		if err != nil {
			return "", "", err
		}
		out[i] = t.Format(fortune.DateLayout)
	}
	return out[0], out[1], nil
}

// verifyReading recomputes rec. It returns nil when the fingerprint matches.
func verifyReading(engine *fortune.Engine, rec store.RecordedReading) (*Mismatch, error) {
	date, err := engine.ParseDate(rec.Day)
	if err != nil {
		return nil, fmt.Errorf("recorded day %q: %w", rec.Day, err)
	}
	r := engine.ComputeDailyScore(date)
	fp, err := fortune.Fingerprint(r)
	if err != nil {
		return nil, err
	}
	if fp == rec.Fingerprint {
		return nil, nil
	}
	return &Mismatch{
		Day:      rec.Day,
		Recorded: rec.Fingerprint,
		Computed: fp,
		Code:     r.Code.String(),
		Score:    r.Score,
		WasCode:  rec.Code,
		WasScore: rec.Score,
	}, nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
