package chart

import "fmt"

// Position is the qualitative strength of a palace.
type Position int

// Palace strengths, strongest first.
const (
	Excellent   Position = iota // 廟
	Strong                      // 旺
	Favorable                   // 得
	Neutral                     // 利
	Weak                        // 平
	Unfavorable                 // 陷
	Substituted                 // 借星
	positionCount
)

type positionInfo struct {
	glyph   string
	name    string
	benefic float64
	malefic float64
}

// The malefic coefficient is signed. In a palace stronger than neutral a
// malefic star is tamed and contributes positively (|v|·c·0.8 of the plain
// coefficient c); in an unfavorable palace it bites harder (v·|c|·1.5).
var positions = [positionCount]positionInfo{
	Excellent:   {"廟", "excellent", 1.5, -1.2},
	Strong:      {"旺", "strong", 1.2, -0.96},
	Favorable:   {"得", "favorable", 1.1, -0.88},
	Neutral:     {"利", "neutral", 1.0, 1.0},
	Weak:        {"平", "weak", 0.6, 0.6},
	Unfavorable: {"陷", "unfavorable", -0.5, 0.75},
	Substituted: {"借星", "substituted", 0.4, 0.4},
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	return p >= 0 && p < positionCount
}

// String returns the position glyph.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positions[p].glyph
}

// Name returns the english tag, e.g. "excellent".
func (p Position) Name() string {
	if !p.Valid() {
		return fmt.Sprintf("position(%d)", int(p))
	}
	return positions[p].name
}

// Coefficients returns the multipliers applied to beneficial and malefic
// stars in a palace of this strength. Unknown positions scale by 1.
func (p Position) Coefficients() (benefic, malefic float64) {
	if !p.Valid() {
		return 1, 1
	}
	info := positions[p]
	return info.benefic, info.malefic
}

// Positions returns all positions, strongest first.
func Positions() []Position {
	out := make([]Position, positionCount)
	for i := range out {
		out[i] = Position(i)
	}
	return out
}
