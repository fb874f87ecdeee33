package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/chart"
	"github.com/roach88/tianshu/internal/cycle"
)

// expectedScores[branch][stem], stems in order 甲..癸.
var expectedScores = [cycle.BranchCount][cycle.StemCount]int{
	cycle.BranchZi:   {-19, -4, -4, -4, -4, -4, 11, 6, -4, -4},
	cycle.BranchChou: {13, 13, 13, 13, 13, 13, 13, 13, 13, 13},
	cycle.BranchYin:  {16, 16, 26, 39, 11, 16, 24, 16, 16, 24},
	cycle.BranchMao:  {23, 31, 23, 23, 38, 33, 23, 23, 33, 8},
	cycle.BranchChen: {-6, -6, -6, -21, -6, -6, -6, 9, -6, 4},
	cycle.BranchSi:   {20, 20, 20, 20, 28, 20, 20, 20, 20, 20},
	cycle.BranchWu:   {20, 30, 20, 20, 20, 13, 20, 28, 35, 20},
	cycle.BranchWei:  {33, 18, 3, 18, 18, 18, 18, 18, 18, 18},
	cycle.BranchShen: {6, 6, 24, 29, 1, 6, 14, -9, 6, 14},
	cycle.BranchYou:  {8, 16, 8, 8, 23, 18, 8, 8, 26, -7},
	cycle.BranchXu:   {3, 3, 18, 13, 3, 3, -12, 3, 3, 3},
	cycle.BranchHai:  {28, 10, 10, 10, 10, 25, 20, 10, -5, 25},
}

func TestCompute_AllCombinations(t *testing.T) {
	count := 0
	for _, b := range cycle.Branches() {
		for _, s := range cycle.Stems() {
			res := Compute(chart.PalaceFor(b), chart.TransformationsFor(s))

			assert.False(t, math.IsNaN(res.Raw) || math.IsInf(res.Raw, 0), "%s%s", s, b)
			assert.Equal(t, expectedScores[b][s], res.Score, "stem %s branch %s", s, b)
			count++
		}
	}
	assert.Equal(t, 120, count)
}

func TestCompute_AnchorDay(t *testing.T) {
	// 癸亥: 遷移宮 (武曲 破軍 + 天魁, weak) with 破軍 transformed to 祿.
	res := Compute(chart.PalaceFor(cycle.BranchHai), chart.TransformationsFor(cycle.StemGui))

	assert.Equal(t, 25, res.Score)
	assert.InDelta(t, 25.2, res.Raw, 1e-9)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, Hit{Slot: chart.SlotLu, Star: chart.PoJun}, res.Hits[0])
}

func TestCompute_Idempotent(t *testing.T) {
	p := chart.PalaceFor(cycle.BranchWu)
	tr := chart.TransformationsFor(cycle.StemRen)

	first := Compute(p, tr)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(p, tr))
	}
}

func TestCompute_TamedMaleficInStrongPalace(t *testing.T) {
	// 午 父母宮 is excellent: 天梁 6·1.5 + 擎羊 -5·-1.2 + 文曲 3·1.5 = 19.5.
	res := Compute(chart.PalaceFor(cycle.BranchWu), chart.TransformationsFor(cycle.StemYi))

	assert.InDelta(t, 19.5+10, res.Raw, 1e-9, "天梁 takes quan under 乙")
	assert.Equal(t, 30, res.Score)
}

func TestCompute_MaleficAmplifiedInUnfavorablePalace(t *testing.T) {
	// 辰 兄弟宮 is unfavorable: 巨門 4·-0.5 + 陀羅 -5·0.75 = -5.75.
	res := Compute(chart.PalaceFor(cycle.BranchChen), chart.TransformationsFor(cycle.StemJia))

	assert.InDelta(t, -5.75, res.Raw, 1e-9)
	assert.Equal(t, -6, res.Score)
	assert.Empty(t, res.Hits)
}

func TestCompute_BorrowedStarsCount(t *testing.T) {
	// 酉 borrows 紫微 貪狼; 癸 transforms 貪狼 to 忌.
	res := Compute(chart.PalaceFor(cycle.BranchYou), chart.TransformationsFor(cycle.StemGui))

	star, ok := res.Hits.Star(chart.SlotJi)
	require.True(t, ok)
	assert.Equal(t, chart.TanLang, star)
	assert.Equal(t, -7, res.Score)
}

func TestCompute_MultipleHitsInSlotOrder(t *testing.T) {
	// 寅 子女宮 holds 天機 太陰; 丁 gives 太陰 lu, 天機 ke, 巨門 ji.
	res := Compute(chart.PalaceFor(cycle.BranchYin), chart.TransformationsFor(cycle.StemDing))

	require.Len(t, res.Hits, 2)
	assert.Equal(t, chart.SlotLu, res.Hits[0].Slot)
	assert.Equal(t, chart.TaiYin, res.Hits[0].Star)
	assert.Equal(t, chart.SlotKe, res.Hits[1].Slot)
	assert.Equal(t, chart.TianJi, res.Hits[1].Star)
	assert.False(t, res.Hits.Has(chart.SlotJi))
	assert.Equal(t, 39, res.Score)
}

func TestCompute_UnknownStarsWeighNothing(t *testing.T) {
	p := chart.Palace{
		Name:      "test",
		Influence: chart.Own(chart.Attribute(500)),
		Position:  chart.Neutral,
	}
	res := Compute(p, chart.TransformationsFor(cycle.StemJia))

	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Hits)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 20, roundHalfUp(19.5))
	assert.Equal(t, -2, roundHalfUp(-2.5))
	assert.Equal(t, -3, roundHalfUp(-2.51))
	assert.Equal(t, 25, roundHalfUp(25.2))
	assert.Equal(t, 0, roundHalfUp(-0.4))
}
