package chart

import (
	"slices"

	"github.com/roach88/tianshu/internal/cycle"
)

// InfluenceKind says where a palace's effective stars come from.
type InfluenceKind int

const (
	// Primary means the palace holds its own major stars.
	Primary InfluenceKind = iota
	// Borrowed means the palace is empty and takes the major stars of the
	// opposite palace.
	Borrowed
)

// String returns "primary" or "borrowed".
func (k InfluenceKind) String() string {
	if k == Borrowed {
		return "borrowed"
	}
	return "primary"
}

// Influence is the tagged set of effective major stars of a palace. A palace
// holds either its own stars or borrowed ones, never both.
type Influence struct {
	Kind  InfluenceKind
	Stars []Attribute
}

// Own builds a Primary influence.
func Own(stars ...Attribute) Influence {
	return Influence{Kind: Primary, Stars: stars}
}

// Borrow builds a Borrowed influence.
func Borrow(stars ...Attribute) Influence {
	return Influence{Kind: Borrowed, Stars: stars}
}

// Palace is the chart record for one earthly branch.
type Palace struct {
	Branch    cycle.Branch
	Name      string
	Influence Influence
	Auxiliary []Attribute
	Position  Position
}

// PrimaryAttributes returns the palace's own major stars, empty when borrowed.
func (p Palace) PrimaryAttributes() []Attribute {
	if p.Influence.Kind != Primary {
		return nil
	}
	return slices.Clone(p.Influence.Stars)
}

// SubstituteAttributes returns the borrowed major stars, empty when primary.
func (p Palace) SubstituteAttributes() []Attribute {
	if p.Influence.Kind != Borrowed {
		return nil
	}
	return slices.Clone(p.Influence.Stars)
}

// Effective returns the major stars that count for the day: the primary
// stars, or the borrowed ones for an empty palace.
func (p Palace) Effective() []Attribute {
	return slices.Clone(p.Influence.Stars)
}

// All returns the effective stars followed by the auxiliary stars.
func (p Palace) All() []Attribute {
	out := make([]Attribute, 0, len(p.Influence.Stars)+len(p.Auxiliary))
	out = append(out, p.Influence.Stars...)
	out = append(out, p.Auxiliary...)
	return out
}

// HasAuxiliary reports whether a sits in the auxiliary layer.
func (p Palace) HasAuxiliary(a Attribute) bool {
	return Contains(p.Auxiliary, a)
}

func (p Palace) clone() Palace {
	p.Influence.Stars = slices.Clone(p.Influence.Stars)
	p.Auxiliary = slices.Clone(p.Auxiliary)
	return p
}

var palaces = [cycle.BranchCount]Palace{
	cycle.BranchZi:   {Branch: cycle.BranchZi, Name: "疾厄宮", Influence: Own(TaiYang), Position: Unfavorable},
	cycle.BranchChou: {Branch: cycle.BranchChou, Name: "財帛宮", Influence: Own(TianFu), Auxiliary: []Attribute{DiJie}, Position: Favorable},
	cycle.BranchYin:  {Branch: cycle.BranchYin, Name: "子女宮", Influence: Own(TianJi, TaiYin), Position: Strong},
	cycle.BranchMao:  {Branch: cycle.BranchMao, Name: "夫妻宮", Influence: Own(ZiWei, TanLang), Auxiliary: []Attribute{HuoXing}, Position: Strong},
	cycle.BranchChen: {Branch: cycle.BranchChen, Name: "兄弟宮", Influence: Own(JuMen), Auxiliary: []Attribute{TuoLuo}, Position: Unfavorable},
	cycle.BranchSi:   {Branch: cycle.BranchSi, Name: "本命宮", Influence: Own(TianXiang), Auxiliary: []Attribute{LuCun, LingXing, YouBi}, Position: Favorable},
	cycle.BranchWu:   {Branch: cycle.BranchWu, Name: "父母宮", Influence: Own(TianLiang), Auxiliary: []Attribute{QingYang, WenQu}, Position: Excellent},
	cycle.BranchWei:  {Branch: cycle.BranchWei, Name: "福德宮", Influence: Own(LianZhen, QiSha), Position: Excellent},
	cycle.BranchShen: {Branch: cycle.BranchShen, Name: "田宅宮", Influence: Borrow(TianJi, TaiYin), Auxiliary: []Attribute{WenChang}, Position: Substituted},
	cycle.BranchYou:  {Branch: cycle.BranchYou, Name: "官祿宮", Influence: Borrow(ZiWei, TanLang), Auxiliary: []Attribute{ZuoFu, TianYue, DiKong}, Position: Substituted},
	cycle.BranchXu:   {Branch: cycle.BranchXu, Name: "交友宮", Influence: Own(TianTong), Position: Weak},
	cycle.BranchHai:  {Branch: cycle.BranchHai, Name: "遷移宮", Influence: Own(WuQu, PoJun), Auxiliary: []Attribute{TianKui}, Position: Weak},
}

// PalaceFor returns the palace occupying branch b. The returned record is a
// copy; mutating it does not affect the chart.
func PalaceFor(b cycle.Branch) Palace {
	if !b.Valid() {
		return Palace{Branch: b, Position: Neutral}
	}
	return palaces[b].clone()
}

// Palaces returns all twelve palaces in branch order.
func Palaces() []Palace {
	out := make([]Palace, 0, len(palaces))
	for _, b := range cycle.Branches() {
		out = append(out, PalaceFor(b))
	}
	return out
}
