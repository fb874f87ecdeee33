package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/narrative"
	"github.com/roach88/tianshu/internal/stats"
)

// RangeOptions holds flags for the range command.
type RangeOptions struct {
	*RootOptions
	Start string
	Days  int // 0 means the configured range_days
}

// RangeDay is one row of the range payload.
type RangeDay struct {
	Date   string `json:"date"`
	Code   string `json:"code"`
	Palace string `json:"palace"`
	Score  int    `json:"score"`
	Band   string `json:"band"`
	Status string `json:"status"`
}

// RangeResult is the json payload of the range command.
type RangeResult struct {
	Start   string        `json:"start"`
	Days    int           `json:"days"`
	Records []RangeDay    `json:"records"`
	Summary stats.Summary `json:"summary"`
	Top     []RangeDay    `json:"top"`
	Bottom  []RangeDay    `json:"bottom"`
}

// NewRangeCommand creates the range command.
func NewRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RangeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Score consecutive days and summarize them",
		Long: `Score a run of consecutive days and report the series with its mean,
median, standard deviation, skewness, histogram and extreme days.

Examples:
  tianshu range
  tianshu range --start 2025-12-20 --days 14
  tianshu range --days 60 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "first day (default today)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "number of days (default range_days from config)")

	return cmd
}

func runRange(opts *RangeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	start, err := dateArg(engine, opts.Start)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}
	days := opts.Days
	if !cmd.Flags().Changed("days") {
		days = cfg.RangeDays
	}

	report, err := engine.SummarizeRange(start, days)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}
	f.VerboseLog("Scored %d day(s) from %s", len(report.Records), report.Start.Format(fortune.DateLayout))

	if opts.Format == "json" {
		return f.Success(newRangeResult(report))
	}
	fmt.Fprint(f.Writer, renderRange(DefaultTheme(), report))
	return nil
}

func newRangeResult(report fortune.RangeReport) RangeResult {
	return RangeResult{
		Start:   report.Start.Format(fortune.DateLayout),
		Days:    len(report.Records),
		Records: rangeDays(report.Records),
		Summary: report.Summary,
		Top:     rangeDays(report.Top),
		Bottom:  rangeDays(report.Bottom),
	}
}

func rangeDays(records []fortune.ScoreRecord) []RangeDay {
	out := make([]RangeDay, len(records))
	for i, r := range records {
		out[i] = RangeDay{
			Date:   r.Date.Format(fortune.DateLayout),
			Code:   r.Code.String(),
			Palace: r.Palace.Name,
			Score:  r.Score,
			Band:   narrative.Classify(r.Score).String(),
			Status: narrative.StatusLine(r.Hits),
		}
	}
	return out
}

func renderRange(theme Theme, report fortune.RangeReport) string {
	var b strings.Builder

	rows := [][]string{{"日期", "干支", "宮位", "能量", "等級", "化曜"}}
	for _, d := range rangeDays(report.Records) {
		band, _ := narrative.ParseBand(d.Band)
		rows = append(rows, []string{d.Date, d.Code, d.Palace, strconv.Itoa(d.Score), band.Label(), d.Status})
	}
	b.WriteString(table(rows, 3))
	b.WriteByte('\n')

	s := report.Summary
	b.WriteString(theme.Title.Render("統計"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "平均 %.2f  中位數 %.1f  標準差 %.2f  偏度 %.3f  最低 %d  最高 %d\n",
		s.Mean, s.Median, s.StdDev, s.Skewness, s.Min, s.Max)
	fmt.Fprintf(&b, "最佳 %s\n", extremeLine(report.Top))
	fmt.Fprintf(&b, "最弱 %s\n\n", extremeLine(report.Bottom))

	b.WriteString(theme.Title.Render("分佈"))
	b.WriteByte('\n')
	b.WriteString(histogram(s))
	return b.String()
}

func extremeLine(records []fortune.ScoreRecord) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = fmt.Sprintf("%s %s (%d)", r.Date.Format(fortune.DateLayout), r.Code, r.Score)
	}
	return strings.Join(parts, ", ")
}

// histogram draws one bar per bin; the overlay value for the bin is shown
// as a marker column.
func histogram(s stats.Summary) string {
	rows := make([][]string, len(s.Histogram))
	for i, bin := range s.Histogram {
		bar := strings.Repeat("▇", bin.Count)
		band := narrative.Classify(bin.Min)
		curve := ""
		if i < len(s.Overlay) {
			curve = fmt.Sprintf("~%.1f", s.Overlay[i].Y)
		}
		rows[i] = []string{
			fmt.Sprintf("[%d, %d)", bin.Min, bin.Max),
			strconv.Itoa(bin.Count),
			bandStyle(band).Render(bar) + " " + curve,
		}
	}
	return table(rows, 1)
}
