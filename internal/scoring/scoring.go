// Package scoring turns a palace and the day's transformations into a
// single integer energy score.
package scoring

import (
	"math"

	"github.com/roach88/tianshu/internal/chart"
)

// Hit records which star triggered a transformation slot.
type Hit struct {
	Slot chart.Slot
	Star chart.Attribute
}

// Hits is the set of slots that fired, in slot order (lu, quan, ke, ji).
type Hits []Hit

// Star returns the star that triggered slot s, if it fired.
func (h Hits) Star(s chart.Slot) (chart.Attribute, bool) {
	for _, hit := range h {
		if hit.Slot == s {
			return hit.Star, true
		}
	}
	return 0, false
}

// Has reports whether slot s fired.
func (h Hits) Has(s chart.Slot) bool {
	_, ok := h.Star(s)
	return ok
}

// Result is the outcome of scoring one palace against one stem.
type Result struct {
	Score int
	// Raw is the unrounded total, kept for diagnostics.
	Raw  float64
	Hits Hits
}

// Compute scores palace p under transformations tr. It never fails: unknown
// stars weigh nothing and every palace/stem pair yields a finite score.
//
// Each star contributes base·benefic, or base·malefic for stars in the
// malefic set, with the coefficients taken from the palace position. Each
// slot whose star is present adds its fixed delta. The total is rounded half
// up.
func Compute(p chart.Palace, tr chart.Transformations) Result {
	stars := p.All()
	benefic, malefic := p.Position.Coefficients()

	var total float64
	for _, star := range stars {
		base := float64(star.BaseValue())
		if star.IsMalefic() {
			total += base * malefic
		} else {
			total += base * benefic
		}
	}

	var hits Hits
	for _, slot := range chart.Slots() {
		star := tr.Star(slot)
		if chart.Contains(stars, star) {
			total += float64(slot.Delta())
			hits = append(hits, Hit{Slot: slot, Star: star})
		}
	}

	return Result{
		Score: roundHalfUp(total),
		Raw:   total,
		Hits:  hits,
	}
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf, so 19.5
// becomes 20 and -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
