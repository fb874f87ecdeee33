// Package chart holds the fixed natal chart: the star weights, the palace
// occupying each earthly branch, and the four transformations each heavenly
// stem triggers.
//
// Every table here is a closed enumeration keyed by a cycle.Stem or
// cycle.Branch. Lookups cannot fail for valid keys, and the values encode a
// specific ruleset that must not be derived or tuned.
package chart

import "fmt"

// Attribute is a named star that may sit in a palace.
type Attribute int

// Major stars.
const (
	ZiWei Attribute = iota
	TianFu
	TaiYang
	TaiYin
	WuQu
	QiSha
	PoJun
	TanLang
	TianXiang
	TianLiang
	TianTong
	TianJi
	LianZhen
	JuMen

	// Auspicious stars.
	LuCun
	ZuoFu
	YouBi
	TianKui
	TianYue
	WenChang
	WenQu

	// Malefic stars.
	QingYang
	TuoLuo
	HuoXing
	LingXing
	DiKong
	DiJie

	attributeCount
)

type attributeInfo struct {
	glyph   string
	name    string
	base    int
	malefic bool
}

var attributes = [attributeCount]attributeInfo{
	ZiWei:     {"紫微", "ziwei", 10, false},
	TianFu:    {"天府", "tianfu", 9, false},
	TaiYang:   {"太陽", "taiyang", 8, false},
	TaiYin:    {"太陰", "taiyin", 8, false},
	WuQu:      {"武曲", "wuqu", 7, false},
	QiSha:     {"七殺", "qisha", 7, false},
	PoJun:     {"破軍", "pojun", 6, false},
	TanLang:   {"貪狼", "tanlang", 6, false},
	TianXiang: {"天相", "tianxiang", 6, false},
	TianLiang: {"天梁", "tianliang", 6, false},
	TianTong:  {"天同", "tiantong", 5, false},
	TianJi:    {"天機", "tianji", 5, false},
	LianZhen:  {"廉貞", "lianzhen", 5, false},
	JuMen:     {"巨門", "jumen", 4, false},
	LuCun:     {"祿存", "lucun", 5, false},
	ZuoFu:     {"左輔", "zuofu", 4, false},
	YouBi:     {"右弼", "youbi", 4, false},
	TianKui:   {"天魁", "tiankui", 4, false},
	TianYue:   {"天鉞", "tianyue", 4, false},
	WenChang:  {"文昌", "wenchang", 3, false},
	WenQu:     {"文曲", "wenqu", 3, false},
	QingYang:  {"擎羊", "qingyang", -5, true},
	TuoLuo:    {"陀羅", "tuoluo", -5, true},
	HuoXing:   {"火星", "huoxing", -4, true},
	LingXing:  {"鈴星", "lingxing", -4, true},
	DiKong:    {"地空", "dikong", -4, true},
	DiJie:     {"地劫", "dijie", -4, true},
}

// Valid reports whether a is a known star.
func (a Attribute) Valid() bool {
	return a >= 0 && a < attributeCount
}

// String returns the star glyphs, e.g. "紫微".
func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributes[a].glyph
}

// Name returns the romanized star name.
func (a Attribute) Name() string {
	if !a.Valid() {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return attributes[a].name
}

// BaseValue returns the signed base weight of a. Unknown attributes weigh 0.
func (a Attribute) BaseValue() int {
	if !a.Valid() {
		return 0
	}
	return attributes[a].base
}

// IsMalefic reports whether a belongs to the fixed malefic set. The flag is
// part of the ruleset and is not inferred from the sign of the base value.
func (a Attribute) IsMalefic() bool {
	if !a.Valid() {
		return false
	}
	return attributes[a].malefic
}

// Attributes returns every known star in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, attributeCount)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}

// Contains reports whether list holds a.
func Contains(list []Attribute, a Attribute) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
