package chart

import (
	"fmt"

	"github.com/roach88/tianshu/internal/cycle"
)

// Slot is one of the four transformations a stem applies.
type Slot int

const (
	SlotLu   Slot = iota // 化祿, strong positive
	SlotQuan             // 化權, moderate positive
	SlotKe               // 化科, mild positive
	SlotJi               // 化忌, strong negative
	slotCount
)

// SlotCount is the number of transformation slots.
const SlotCount = int(slotCount)

var slotInfo = [slotCount]struct {
	glyph string
	name  string
	delta int
}{
	SlotLu:   {"祿", "lu", 15},
	SlotQuan: {"權", "quan", 10},
	SlotKe:   {"科", "ke", 8},
	SlotJi:   {"忌", "ji", -15},
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

// String returns the slot glyph, e.g. "祿".
func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotInfo[s].glyph
}

// Name returns the romanized slot name used as a JSON key.
func (s Slot) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotInfo[s].name
}

// Delta returns the score adjustment when the slot's star is present.
func (s Slot) Delta() int {
	if !s.Valid() {
		return 0
	}
	return slotInfo[s].delta
}

// Slots returns the four slots in order lu, quan, ke, ji.
func Slots() []Slot {
	return []Slot{SlotLu, SlotQuan, SlotKe, SlotJi}
}

// Transformations names the star each slot transforms for one stem.
type Transformations struct {
	Stem  cycle.Stem
	Stars [SlotCount]Attribute
}

// Star returns the star assigned to slot s.
func (t Transformations) Star(s Slot) Attribute {
	if !s.Valid() {
		return Attribute(-1)
	}
	return t.Stars[s]
}

func tf(stem cycle.Stem, lu, quan, ke, ji Attribute) Transformations {
	return Transformations{Stem: stem, Stars: [SlotCount]Attribute{lu, quan, ke, ji}}
}

var transformations = [cycle.StemCount]Transformations{
	cycle.StemJia:  tf(cycle.StemJia, LianZhen, PoJun, WuQu, TaiYang),
	cycle.StemYi:   tf(cycle.StemYi, TianJi, TianLiang, ZiWei, TaiYin),
	cycle.StemBing: tf(cycle.StemBing, TianTong, TianJi, WenChang, LianZhen),
	cycle.StemDing: tf(cycle.StemDing, TaiYin, TianTong, TianJi, JuMen),
	cycle.StemWu:   tf(cycle.StemWu, TanLang, TaiYin, YouBi, TianJi),
	cycle.StemJi:   tf(cycle.StemJi, WuQu, TanLang, TianLiang, WenQu),
	cycle.StemGeng: tf(cycle.StemGeng, TaiYang, WuQu, TaiYin, TianTong),
	cycle.StemXin:  tf(cycle.StemXin, JuMen, TaiYang, WenQu, WenChang),
	cycle.StemRen:  tf(cycle.StemRen, TianLiang, ZiWei, ZuoFu, WuQu),
	cycle.StemGui:  tf(cycle.StemGui, PoJun, JuMen, TaiYin, TanLang),
}

// TransformationsFor returns the transformation set of stem s. An invalid
// stem yields a set whose slots name no known star.
func TransformationsFor(s cycle.Stem) Transformations {
	if !s.Valid() {
		none := Attribute(-1)
		return Transformations{Stem: s, Stars: [SlotCount]Attribute{none, none, none, none}}
	}
	return transformations[s]
}
