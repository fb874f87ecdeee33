// Package cycle maps calendar dates onto the sexagenary day cycle.
//
// Every civil date resolves to a Code: one of ten heavenly stems paired with
// one of twelve earthly branches. The pair advances by one step per elapsed
// day, so stems repeat every 10 days, branches every 12, and the combined
// code every 60.
//
// Resolution depends only on the civil date (year, month, day) of the input
// in its own location. Time of day and zone offset never shift the result.
package cycle

import (
	"fmt"
	"time"
)

// Stem is one of the ten heavenly stems.
type Stem int

// Heavenly stems in cycle order.
const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

// StemCount is the stem cycle length.
const StemCount = 10

var stemGlyphs = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemNames = [StemCount]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}

// String returns the stem glyph.
func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemGlyphs[s]
}

// Name returns the romanized stem name.
func (s Stem) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("stem(%d)", int(s))
	}
	return stemNames[s]
}

// Valid reports whether s is inside [0, StemCount).
func (s Stem) Valid() bool {
	return s >= 0 && s < StemCount
}

// Stems returns all stems in cycle order.
func Stems() []Stem {
	out := make([]Stem, StemCount)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Branch is one of the twelve earthly branches.
type Branch int

// Earthly branches in cycle order.
const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

// BranchCount is the branch cycle length.
const BranchCount = 12

var branchGlyphs = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchNames = [BranchCount]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}

// String returns the branch glyph.
func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchGlyphs[b]
}

// Name returns the romanized branch name.
func (b Branch) Name() string {
	if !b.Valid() {
		return fmt.Sprintf("branch(%d)", int(b))
	}
	return branchNames[b]
}

// Valid reports whether b is inside [0, BranchCount).
func (b Branch) Valid() bool {
	return b >= 0 && b < BranchCount
}

// Branches returns all branches in cycle order.
func Branches() []Branch {
	out := make([]Branch, BranchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Code is the (stem, branch) pair for one day.
type Code struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// String returns the two-glyph code, e.g. "癸亥".
func (c Code) String() string {
	return c.Stem.String() + c.Branch.String()
}

// DayLabel returns the code followed by 日, e.g. "癸亥日".
func (c Code) DayLabel() string {
	return c.String() + "日"
}

// Anchor is the externally verified reference day: 2025-12-20 is 癸亥.
const (
	AnchorYear   = 2025
	AnchorMonth  = time.December
	AnchorDay    = 20
	AnchorStem   = StemGui
	AnchorBranch = BranchHai
)

const secondsPerDay = 24 * 60 * 60

// civilNoon pins a date to noon UTC on its own civil (year, month, day).
// Both sides of a difference are pinned the same way, so the difference is
// always a whole number of days.
func civilNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

var anchorNoon = time.Date(AnchorYear, AnchorMonth, AnchorDay, 12, 0, 0, 0, time.UTC)

// DaysFromAnchor returns the signed number of whole days between the anchor
// and t. Unix seconds are used instead of time.Duration so that dates
// centuries away do not saturate.
func DaysFromAnchor(t time.Time) int64 {
	diff := civilNoon(t).Unix() - anchorNoon.Unix()
	return floorDiv(diff+secondsPerDay/2, secondsPerDay)
}

// Resolve returns the cyclical code for the civil date of t.
func Resolve(t time.Time) Code {
	days := DaysFromAnchor(t)
	return Code{
		Stem:   Stem(mod(int64(AnchorStem)+days, StemCount)),
		Branch: Branch(mod(int64(AnchorBranch)+days, BranchCount)),
	}
}

// Index returns the position of c in the 60-day cycle, with 甲子 at 0.
// The second return is false for the 60 impossible pairings (stem and
// branch parity differ).
func (c Code) Index() (int, bool) {
	if !c.Stem.Valid() || !c.Branch.Valid() {
		return 0, false
	}
	for i := 0; i < 60; i++ {
		if i%StemCount == int(c.Stem) && i%BranchCount == int(c.Branch) {
			return i, true
		}
	}
	return 0, false
}

func mod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
