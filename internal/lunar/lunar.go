// Package lunar renders Chinese lunar calendar labels using
// github.com/6tail/lunar-go. It is the production calendar formatter for
// the fortune engine.
package lunar

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Formatter produces labels like "冬月 初一".
type Formatter struct{}

// New returns a Formatter.
func New() Formatter {
	return Formatter{}
}

// LunarLabel returns the lunar month and day of t's civil date.
func (Formatter) LunarLabel(t time.Time) (label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lunar label for %s: %v", t.Format("2006-01-02"), r)
		}
	}()
	l := convert(t)
	return l.GetMonthInChinese() + "月 " + l.GetDayInChinese(), nil
}

// DayGanZhi returns the sexagenary day name the calendar library assigns to
// t's civil date, e.g. "癸亥".
func (Formatter) DayGanZhi(t time.Time) string {
	return convert(t).GetDayInGanZhi()
}

func convert(t time.Time) *calendar.Lunar {
	y, m, d := t.Date()
	return calendar.NewSolarFromYmd(y, int(m), d).GetLunar()
}
