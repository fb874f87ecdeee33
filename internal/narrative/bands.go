// Package narrative classifies scores and composes the display text for a
// day. Three scales live here and are deliberately independent: the five
// energy bands, the three-color visual coding, and the four summary tones.
// Each has its own threshold table.
package narrative

// Band is one of five ordered energy levels. Higher is better.
type Band int

const (
	BandRetreat Band = iota // 修煉
	BandBlocked             // 受阻
	BandStable              // 平穩
	BandSmooth              // 順暢
	BandFlow                // 極強
)

type bandInfo struct {
	floor   int
	name    string
	label   string
	percent int
	accent  string
}

// bandTable is ordered best first; the first floor a score reaches wins, so
// a score equal to a floor lands in the higher band.
var bandTable = []struct {
	band Band
	bandInfo
}{
	{BandFlow, bandInfo{25, "flow", "極強 (Flow)", 100, "amber"}},
	{BandSmooth, bandInfo{10, "smooth", "順暢 (Smooth)", 75, "emerald"}},
	{BandStable, bandInfo{-5, "stable", "平穩 (Stable)", 50, "slate"}},
	{BandBlocked, bandInfo{-20, "blocked", "受阻 (Blocked)", 25, "orange"}},
}

var retreat = bandInfo{name: "retreat", label: "修煉 (Retreat)", percent: 15, accent: "rose"}

// Classify maps a score to its band.
func Classify(score int) Band {
	for _, row := range bandTable {
		if score >= row.floor {
			return row.band
		}
	}
	return BandRetreat
}

func (b Band) info() bandInfo {
	for _, row := range bandTable {
		if row.band == b {
			return row.bandInfo
		}
	}
	return retreat
}

// String returns the lower-case band name, e.g. "flow".
func (b Band) String() string { return b.info().name }

// Label returns the display label, e.g. "極強 (Flow)".
func (b Band) Label() string { return b.info().label }

// Percent returns the meter fill for the band.
func (b Band) Percent() int { return b.info().percent }

// Accent returns the accent color name for the band.
func (b Band) Accent() string { return b.info().accent }

// Better reports whether b ranks strictly above other.
func (b Band) Better(other Band) bool { return b > other }

// ParseBand returns the band named s.
func ParseBand(s string) (Band, bool) {
	for _, b := range []Band{BandRetreat, BandBlocked, BandStable, BandSmooth, BandFlow} {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

// Color is the coarse three-way visual coding of a score.
type Color int

const (
	ColorUnfavorable Color = iota
	ColorNeutral
	ColorFavorable
)

// Three-color thresholds. These are not derived from the band floors.
const (
	favorableAbove   = 20
	unfavorableBelow = -15
)

// ColorOf maps a score to its visual color.
func ColorOf(score int) Color {
	switch {
	case score > favorableAbove:
		return ColorFavorable
	case score < unfavorableBelow:
		return ColorUnfavorable
	default:
		return ColorNeutral
	}
}

// String returns "favorable", "neutral" or "unfavorable".
func (c Color) String() string {
	switch c {
	case ColorFavorable:
		return "favorable"
	case ColorUnfavorable:
		return "unfavorable"
	default:
		return "neutral"
	}
}

// Tone is the opening line of a day's summary.
type Tone int

const (
	ToneFlowing Tone = iota // 順勢而為
	ToneSteady              // 持盈保泰
	ToneHidden              // 潛龍勿用
	ToneSoaring             // 飛龍在天
)

// ToneOf maps a score to its summary tone.
func ToneOf(score int) Tone {
	switch {
	case score < -15:
		return ToneHidden
	case score > 20:
		return ToneSoaring
	case score >= -5 && score <= 10:
		return ToneSteady
	default:
		return ToneFlowing
	}
}

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneHidden:
		return "hidden"
	case ToneSoaring:
		return "soaring"
	case ToneSteady:
		return "steady"
	default:
		return "flowing"
	}
}

// Title returns the four-character heading of the tone.
func (t Tone) Title() string {
	switch t {
	case ToneHidden:
		return "潛龍勿用"
	case ToneSoaring:
		return "飛龍在天"
	case ToneSteady:
		return "持盈保泰"
	default:
		return "順勢而為"
	}
}

func (t Tone) advice() string {
	switch t {
	case ToneHidden:
		return "環境阻力較大。適合「被動」應對，不宜主動出擊。多做內在修持，少做外在決策。"
	case ToneSoaring:
		return "氣場強旺。是執行重大計畫、談判或突破的最佳時機，請把握良機。"
	case ToneSteady:
		return "能量平穩，依循主星特質行事，保持正念，活在當下。"
	default:
		return "能量流動正常，保持覺知，應對變化。"
	}
}
