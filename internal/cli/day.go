package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/narrative"
)

// DayResult is the json payload of the day command.
type DayResult struct {
	Date     string   `json:"date"`
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Lunar    string   `json:"lunar"`
	Palace   string   `json:"palace"`
	Position string   `json:"position"`
	Score    int      `json:"score"`
	Band     string   `json:"band"`
	Color    string   `json:"color"`
	Tone     string   `json:"tone"`
	Stars    string   `json:"stars"`
	Status   string   `json:"status"`
	Summary  string   `json:"summary"`
	Keynotes []string `json:"keynotes"`
}

// NewDayCommand creates the day command.
func NewDayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show the reading for a day",
		Long: `Score a date (default today in the configured timezone) and show its
band, fired transformations and summary.

Examples:
  tianshu day
  tianshu day 2025-12-20
  tianshu day 2025-12-20 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDay(rootOpts, optionalArg(args), cmd)
		},
	}
	return cmd
}

func runDay(opts *RootOptions, dateStr string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	_, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	date, err := dateArg(engine, dateStr)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	day := engine.Describe(date)
	result := newDayResult(day)
	if opts.Format == "json" {
		return f.Success(result)
	}

	fmt.Fprintln(f.Writer, renderDay(DefaultTheme(), day))
	return nil
}

func newDayResult(day fortune.Day) DayResult {
	r := day.Reading
	keynotes := r.Keynotes
	if keynotes == nil {
		keynotes = []string{}
	}
	return DayResult{
		Date:     day.Date.Format(fortune.DateLayout),
		Code:     day.Code.String(),
		Label:    day.Label,
		Lunar:    day.Lunar,
		Palace:   day.Palace.Name,
		Position: day.Palace.Position.String(),
		Score:    day.Score,
		Band:     r.Band.String(),
		Color:    r.Color.String(),
		Tone:     r.Tone.String(),
		Stars:    r.Stars,
		Status:   r.Status,
		Summary:  r.Summary,
		Keynotes: keynotes,
	}
}

func renderDay(theme Theme, day fortune.Day) string {
	r := day.Reading
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n",
		theme.Title.Render(day.Label),
		day.Date.Format(fortune.DateLayout),
		theme.Faint.Render(day.Lunar))
	fmt.Fprintf(&b, "%s  %s\n", day.Palace.Name, r.Stars)
	fmt.Fprintf(&b, "能量 %s  %s  %s\n",
		bandStyle(r.Band).Render(fmt.Sprintf("%d", day.Score)),
		bandStyle(r.Band).Render(r.Band.Label()),
		meter(r.Band))
	fmt.Fprintf(&b, "化曜 %s\n\n", statusText(r))
	b.WriteString(r.Summary)
	if len(r.Keynotes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Faint.Render(strings.Join(r.Keynotes, "\n")))
	}

	return theme.Card.Render(b.String())
}

func statusText(r narrative.Reading) string {
	if r.Status == narrative.Calm {
		return r.Status
	}
	return bandStyle(r.Band).Render(r.Status)
}
