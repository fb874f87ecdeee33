// Package stats summarizes a series of daily scores: central tendency,
// spread, skew, a histogram with a fitted normal overlay, and the extreme
// days at either end.
package stats

import (
	"math"
	"slices"
	"sort"
)

// Bin is one half-open histogram bucket [Min, Max).
type Bin struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Count int `json:"count"`
}

// Point is one sample of the normal overlay, taken at a bin midpoint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extreme identifies a score by its position in the input series.
type Extreme struct {
	Index int `json:"index"`
	Score int `json:"score"`
}

// Summary holds the descriptive statistics of a score series.
type Summary struct {
	Count     int       `json:"count"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	StdDev    float64   `json:"std_dev"`
	Skewness  float64   `json:"skewness"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Histogram []Bin     `json:"histogram"`
	Overlay   []Point   `json:"overlay,omitempty"`
	Top       []Extreme `json:"top"`
	Bottom    []Extreme `json:"bottom"`
}

// Shape constants.
const (
	// TargetBins is the number of bins the width is chosen for.
	TargetBins = 7
	// MinBinWidth is the smallest allowed bin width.
	MinBinWidth = 5
	// ExtremeCount is how many entries Top and Bottom hold.
	ExtremeCount = 3
)

// Summarize computes the summary of scores. The input is not modified. An
// empty series yields the zero Summary.
func Summarize(scores []int) Summary {
	n := len(scores)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Count: n,
		Min:   slices.Min(scores),
		Max:   slices.Max(scores),
	}

	var sum float64
	for _, x := range scores {
		sum += float64(x)
	}
	s.Mean = sum / float64(n)
	s.Median = median(scores)

	var m2, m3 float64
	for _, x := range scores {
		d := float64(x) - s.Mean
		m2 += d * d
		m3 += d * d * d
	}
	s.StdDev = math.Sqrt(m2 / float64(n))
	if s.StdDev > 0 {
		s.Skewness = (m3 / float64(n)) / math.Pow(s.StdDev, 3)
	}

	s.Histogram = Histogram(scores)
	s.Overlay = Overlay(s.Histogram, s.Mean, s.StdDev)
	s.Top, s.Bottom = Extremes(scores, ExtremeCount)
	return s
}

func median(scores []int) float64 {
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// BinWidth returns the histogram bin width for a series spanning min..max.
func BinWidth(min, max int) int {
	w := (max - min + TargetBins - 1) / TargetBins
	if w < MinBinWidth {
		w = MinBinWidth
	}
	return w
}

// Histogram partitions scores into contiguous bins of equal width. The first
// bin starts at the largest multiple of the width not above the minimum and
// the last bin contains the maximum.
func Histogram(scores []int) []Bin {
	if len(scores) == 0 {
		return nil
	}
	lo, hi := slices.Min(scores), slices.Max(scores)
	width := BinWidth(lo, hi)
	start := floorDiv(lo, width) * width

	bins := make([]Bin, (hi-start)/width+1)
	for i := range bins {
		bins[i].Min = start + i*width
		bins[i].Max = bins[i].Min + width
	}
	for _, x := range scores {
		bins[(x-start)/width].Count++
	}
	return bins
}

// Overlay samples a normal density with the given mean and standard
// deviation at each bin midpoint, scaled so its peak equals the tallest bin.
// It returns nil when stdDev is zero or there are no bins.
func Overlay(bins []Bin, mean, stdDev float64) []Point {
	if stdDev == 0 || len(bins) == 0 {
		return nil
	}
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	points := make([]Point, len(bins))
	for i, b := range bins {
		x := float64(b.Min+b.Max) / 2
		z := (x - mean) / stdDev
		points[i] = Point{X: x, Y: float64(peak) * math.Exp(-z*z/2)}
	}
	return points
}

// Extremes returns the k highest and k lowest scores. Equal scores keep
// their series order.
func Extremes(scores []int, k int) (top, bottom []Extreme) {
	all := make([]Extreme, len(scores))
	for i, x := range scores {
		all[i] = Extreme{Index: i, Score: x}
	}
	k = min(k, len(all))

	desc := slices.Clone(all)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Score > desc[j].Score })
	asc := slices.Clone(all)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Score < asc[j].Score })

	return desc[:k], asc[:k]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
