package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/chart"
	"github.com/roach88/tianshu/internal/cycle"
	"github.com/roach88/tianshu/internal/scoring"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{100, BandFlow},
		{25, BandFlow},
		{24, BandSmooth},
		{10, BandSmooth},
		{9, BandStable},
		{-5, BandStable},
		{-6, BandBlocked},
		{-20, BandBlocked},
		{-21, BandRetreat},
		{-500, BandRetreat},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.score), "score %d", c.score)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	for s := -60; s < 60; s++ {
		assert.False(t, Classify(s).Better(Classify(s+1)), "score %d ranks above %d", s, s+1)
	}
}

func TestBand_Metadata(t *testing.T) {
	assert.Equal(t, "極強 (Flow)", BandFlow.Label())
	assert.Equal(t, 100, BandFlow.Percent())
	assert.Equal(t, "amber", BandFlow.Accent())
	assert.Equal(t, "修煉 (Retreat)", BandRetreat.Label())
	assert.Equal(t, 15, BandRetreat.Percent())
	assert.Equal(t, "rose", BandRetreat.Accent())
	assert.Equal(t, "stable", BandStable.String())

	b, ok := ParseBand("blocked")
	require.True(t, ok)
	assert.Equal(t, BandBlocked, b)
	_, ok = ParseBand("great")
	assert.False(t, ok)
}

func TestColorOf_IndependentThresholds(t *testing.T) {
	assert.Equal(t, ColorFavorable, ColorOf(21))
	assert.Equal(t, ColorNeutral, ColorOf(20))
	assert.Equal(t, ColorNeutral, ColorOf(-15))
	assert.Equal(t, ColorUnfavorable, ColorOf(-16))

	// 24 is only "smooth" on the band scale but already favorable in color.
	assert.Equal(t, BandSmooth, Classify(24))
	assert.Equal(t, ColorFavorable, ColorOf(24))
	// -18 is "blocked" on the band scale and unfavorable in color.
	assert.Equal(t, BandBlocked, Classify(-18))
	assert.Equal(t, ColorUnfavorable, ColorOf(-18))
}

func TestColorOf_Monotonic(t *testing.T) {
	for s := -60; s < 60; s++ {
		assert.LessOrEqual(t, ColorOf(s), ColorOf(s+1), "score %d", s)
	}
}

func TestToneOf(t *testing.T) {
	assert.Equal(t, ToneHidden, ToneOf(-16))
	assert.Equal(t, ToneFlowing, ToneOf(-15))
	assert.Equal(t, ToneFlowing, ToneOf(-6))
	assert.Equal(t, ToneSteady, ToneOf(-5))
	assert.Equal(t, ToneSteady, ToneOf(10))
	assert.Equal(t, ToneFlowing, ToneOf(11))
	assert.Equal(t, ToneFlowing, ToneOf(20))
	assert.Equal(t, ToneSoaring, ToneOf(21))
	assert.Equal(t, "飛龍在天", ToneSoaring.Title())
}

func compose(b cycle.Branch, s cycle.Stem) Reading {
	p := chart.PalaceFor(b)
	return Compose(p, s, scoring.Compute(p, chart.TransformationsFor(s)))
}

func TestCompose_AnchorDay(t *testing.T) {
	r := compose(cycle.BranchHai, cycle.StemGui)

	assert.Equal(t, BandFlow, r.Band)
	assert.Equal(t, ColorFavorable, r.Color)
	assert.Equal(t, ToneSoaring, r.Tone)
	assert.Equal(t, "武曲 · 破軍 · 天魁", r.Stars)
	assert.Equal(t, "破軍祿", r.Status)
	assert.Contains(t, r.Summary, "【飛龍在天】 (能量指數 25)")
	assert.Contains(t, r.Summary, "天干【癸】引發【破軍化祿】")
	assert.Equal(t, []string{keynotes[chart.WuQu], keynotes[chart.PoJun]}, r.Keynotes)
}

func TestCompose_BorrowedStarsLine(t *testing.T) {
	r := compose(cycle.BranchYou, cycle.StemJia)

	assert.Equal(t, "(借)紫微·貪狼 · 左輔天鉞地空", r.Stars)
	assert.Equal(t, Calm, r.Status)
	assert.Contains(t, r.Keynotes, voidKeynote)
}

func TestCompose_JiWarningFromAuxiliary(t *testing.T) {
	// 申 holds 文昌 as an auxiliary star; 辛 turns it to ji.
	r := compose(cycle.BranchShen, cycle.StemXin)

	assert.Equal(t, "文昌忌", r.Status)
	assert.Contains(t, r.Summary, "【文昌化忌】")
	assert.Contains(t, r.Summary, "干擾來自細節或輔助層面。")
	assert.NotContains(t, r.Summary, "吉兆")
}

func TestCompose_JiWarningOnMajorStarWithVoid(t *testing.T) {
	// 酉 borrows 貪狼, which 癸 turns to ji; 地空 sits in the palace.
	r := compose(cycle.BranchYou, cycle.StemGui)

	assert.Contains(t, r.Summary, "主架構受到衝擊")
	assert.Contains(t, r.Summary, "逢空劫")
	assert.Equal(t, ToneFlowing, r.Tone)
	assert.Equal(t, BandBlocked, r.Band)
}

func TestCompose_MultipleHitsStatus(t *testing.T) {
	r := compose(cycle.BranchYin, cycle.StemDing)

	assert.Equal(t, "太陰祿 天機科", r.Status)
	assert.Equal(t, "天機 · 太陰", r.Stars)
}

func TestStarLine_SingleStarNoAuxiliary(t *testing.T) {
	assert.Equal(t, "太陽", StarLine(chart.PalaceFor(cycle.BranchZi)))
	assert.Equal(t, "天相 · 祿存鈴星右弼", StarLine(chart.PalaceFor(cycle.BranchSi)))
}
