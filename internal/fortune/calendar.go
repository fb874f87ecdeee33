package fortune

import (
	"fmt"
	"log/slog"
	"time"
)

// LunarPlaceholder is shown when the calendar formatter cannot produce a
// label.
const LunarPlaceholder = "農曆運算中"

// CalendarFormatter renders a human-readable lunar calendar label for a
// date. Its output is opaque to the engine.
type CalendarFormatter interface {
	LunarLabel(t time.Time) (string, error)
}

// CalendarFunc adapts a function to CalendarFormatter.
type CalendarFunc func(t time.Time) (string, error)

// LunarLabel calls f.
func (f CalendarFunc) LunarLabel(t time.Time) (string, error) { return f(t) }

// lunarLabel asks cal for a label and substitutes LunarPlaceholder on error,
// panic, or empty output.
func lunarLabel(cal CalendarFormatter, t time.Time) (label string) {
	if cal == nil {
		return LunarPlaceholder
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("calendar formatter panicked", "date", t.Format(DateLayout), "panic", fmt.Sprint(r))
			label = LunarPlaceholder
		}
	}()
	label, err := cal.LunarLabel(t)
	if err != nil {
		slog.Debug("calendar formatter failed", "date", t.Format(DateLayout), "error", err)
		return LunarPlaceholder
	}
	if label == "" {
		return LunarPlaceholder
	}
	return label
}
