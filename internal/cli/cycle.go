package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/fortune"
)

// CycleResult is the json payload of the cycle command.
type CycleResult struct {
	Date        string `json:"date"`
	Code        string `json:"code"`
	Label       string `json:"label"`
	Stem        string `json:"stem"`
	Branch      string `json:"branch"`
	StemIndex   int    `json:"stem_index"`
	BranchIndex int    `json:"branch_index"`
	CycleIndex  int    `json:"cycle_index"`
}

// NewCycleCommand creates the cycle command.
func NewCycleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle [date]",
		Short: "Show the sexagenary code of a day",
		Long: `Show the stem-branch code of a date (default today).

Examples:
  tianshu cycle
  tianshu cycle 2025-12-20
  tianshu cycle 2025-12-20 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycle(rootOpts, optionalArg(args), cmd)
		},
	}
	return cmd
}

func runCycle(opts *RootOptions, dateStr string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	_, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	date, err := dateArg(engine, dateStr)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	code := engine.ResolveCycle(date)
	index, _ := code.Index()
	result := CycleResult{
		Date:        date.Format(fortune.DateLayout),
		Code:        code.String(),
		Label:       code.DayLabel(),
		Stem:        code.Stem.Name(),
		Branch:      code.Branch.Name(),
		StemIndex:   int(code.Stem),
		BranchIndex: int(code.Branch),
		CycleIndex:  index,
	}

	if opts.Format == "json" {
		return f.Success(result)
	}
	fmt.Fprintf(f.Writer, "%s  %s  (%s-%s, #%d)\n", result.Date, result.Label, result.Stem, result.Branch, index+1)
	return nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
