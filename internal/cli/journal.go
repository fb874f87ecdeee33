package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tianshu/internal/canon"
	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/store"
)

// journalKinds lists the accepted awareness kinds with their display labels.
var journalKinds = []struct {
	Name  string
	Label string
}{
	{"anger", "轉化嗔火"},
	{"greed", "轉化貪執"},
	{"ignorance", "轉化愚癡"},
	{"pride", "轉化我慢"},
	{"doubt", "轉化疑懼"},
}

func kindLabel(kind string) string {
	for _, k := range journalKinds {
		if k.Name == kind {
			return k.Label
		}
	}
	return kind
}

func kindNames() []string {
	names := make([]string, len(journalKinds))
	for i, k := range journalKinds {
		names[i] = k.Name
	}
	return names
}

// JournalView is the json form of a journal entry.
type JournalView struct {
	ID       string `json:"id"`
	Day      string `json:"day"`
	Kind     string `json:"kind"`
	Note     string `json:"note"`
	BodyHash string `json:"body_hash"`
	Seq      int64  `json:"seq"`
}

// journalBody is the stored body layout. The store treats it as opaque.
type journalBody struct {
	Note string `json:"note"`
}

// NewJournalCommand creates the journal command group.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and list awareness notes",
		Long: `Keep short awareness notes alongside daily readings.

Kinds: ` + strings.Join(kindNames(), ", "),
	}

	cmd.AddCommand(newJournalAddCommand(rootOpts))
	cmd.AddCommand(newJournalListCommand(rootOpts))

	return cmd
}

// JournalAddOptions holds flags for journal add.
type JournalAddOptions struct {
	*RootOptions
	Day  string
	Kind string
	Note string
}

func newJournalAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal note",
		Long: `Add a journal note for a day (default today).

Examples:
  tianshu journal add --kind anger --note "traffic"
  tianshu journal add --day 2025-12-20 --kind doubt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "day of the note (default today)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "note kind: "+strings.Join(kindNames(), "|"))
	cmd.Flags().StringVar(&opts.Note, "note", "", "note text")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func runJournalAdd(opts *JournalAddOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)
	cfg, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	if !slices.Contains(kindNames(), opts.Kind) {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, &fortune.InvalidInputError{
			Field:  "kind",
			Value:  opts.Kind,
			Reason: "expected one of " + strings.Join(kindNames(), ", "),
		})
	}
	day, err := dateArg(engine, opts.Day)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	body, err := canon.Marshal(canon.Object{"note": opts.Note})
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
	}

	st, err := openStore(f, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entry, err := st.AddJournal(ctx, store.JournalEntry{
		Day:  day.Format(fortune.DateLayout),
		Kind: opts.Kind,
		Body: body,
	})
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, err)
	}

	view := journalView(entry)
	if opts.Format == "json" {
		return f.Success(view)
	}
	fmt.Fprintf(f.Writer, "Added %s note for %s (%s)\n", kindLabel(view.Kind), view.Day, view.ID)
	return nil
}

// JournalListOptions holds flags for journal list.
type JournalListOptions struct {
	*RootOptions
	Day   string
	Limit int
}

func newJournalListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal notes",
		Long: `List journal notes, newest first.

Examples:
  tianshu journal list
  tianshu journal list --day 2025-12-20 --limit 0`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "only notes for this day")
	cmd.Flags().IntVar(&opts.Limit, "limit", 3, "maximum notes to show (0 for all)")

	return cmd
}

func runJournalList(opts *JournalListOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)
	cfg, engine, err := opts.setup(f)
	if err != nil {
		return err
	}

	filter := store.JournalFilter{Limit: opts.Limit}
	if opts.Day != "" {
		day, err := engine.ParseDate(opts.Day)
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeInvalidInput, err)
		}
		filter.Day = day.Format(fortune.DateLayout)
	}

	st, err := openStore(f, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ListJournal(ctx, filter)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, err)
	}

	views := make([]JournalView, len(entries))
	for i, e := range entries {
		views[i] = journalView(e)
	}

	if opts.Format == "json" {
		return f.Success(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(f.Writer, "No journal notes.")
		return nil
	}
	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{v.Day, kindLabel(v.Kind), v.Note}
	}
	fmt.Fprint(f.Writer, table(rows))
	return nil
}

func journalView(e store.JournalEntry) JournalView {
	var body journalBody
	// Bodies written by other tools may not be JSON; show them raw.
	if err := json.Unmarshal(e.Body, &body); err != nil {
		body.Note = string(e.Body)
	}
	return JournalView{
		ID:       e.ID,
		Day:      e.Day,
		Kind:     e.Kind,
		Note:     body.Note,
		BodyHash: e.BodyHash,
		Seq:      e.Seq,
	}
}
