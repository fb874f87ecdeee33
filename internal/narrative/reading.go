package narrative

import (
	"fmt"
	"strings"

	"github.com/roach88/tianshu/internal/chart"
	"github.com/roach88/tianshu/internal/cycle"
	"github.com/roach88/tianshu/internal/scoring"
)

// Reading is the display-ready interpretation of one scored day.
type Reading struct {
	Band     Band
	Color    Color
	Tone     Tone
	Stars    string   // e.g. "武曲 · 破軍 · 天魁" or "(借)天機·太陰 · 文昌"
	Status   string   // fired transformations, e.g. "破軍祿", or "平穩"
	Summary  string   // tone heading, advice and transformation note
	Keynotes []string // one line per leading effective star
}

// Calm is the status shown when no transformation fires.
const Calm = "平穩"

var keynotes = map[chart.Attribute]string{
	chart.ZiWei:     "紫微：尊貴包容，適合領導統御。",
	chart.TianFu:    "天府：穩健守成，適合盤點資源。",
	chart.TaiYang:   "太陽：博愛付出，燃燒自己照亮他人。",
	chart.WuQu:      "武曲：剛毅執行，果斷處理財務。",
	chart.TianTong:  "天同：協調享樂，保持赤子之心。",
	chart.LianZhen:  "廉貞：專注工作，轉化複雜能量。",
	chart.TaiYin:    "太陰：溫柔內斂，直覺敏銳。",
	chart.TanLang:   "貪狼：長袖善舞，學習慾望強烈。",
	chart.JuMen:     "巨門：觀察入微，謹言慎行。",
	chart.TianXiang: "天相：居中協調，展現平衡之美。",
	chart.TianLiang: "天梁：蔭庇眾生，公正解決難題。",
	chart.QiSha:     "七殺：獨當一面，勇於突破現狀。",
	chart.PoJun:     "破軍：除舊佈新，勇敢變革。",
	chart.TianJi:    "天機：機智規劃，避免鑽牛角尖。",
}

const voidKeynote = "空劫：靈感乍現，跳脫框架，但不利世俗財利，適合精神層面的感悟。"

// Compose builds the reading for palace p scored under stem's
// transformations.
func Compose(p chart.Palace, stem cycle.Stem, res scoring.Result) Reading {
	tone := ToneOf(res.Score)
	return Reading{
		Band:     Classify(res.Score),
		Color:    ColorOf(res.Score),
		Tone:     tone,
		Stars:    StarLine(p),
		Status:   StatusLine(res.Hits),
		Summary:  summary(p, stem, tone, res),
		Keynotes: keynoteLines(p),
	}
}

// StarLine renders the palace stars. Major stars are separated by " · ";
// auxiliary stars follow as one run. Borrowed stars carry a (借) prefix.
func StarLine(p chart.Palace) string {
	var b strings.Builder
	switch p.Influence.Kind {
	case chart.Borrowed:
		b.WriteString("(借)")
		b.WriteString(joinStars(p.Influence.Stars, "·"))
	default:
		b.WriteString(joinStars(p.Influence.Stars, " · "))
	}
	if len(p.Auxiliary) > 0 {
		b.WriteString(" · ")
		b.WriteString(joinStars(p.Auxiliary, ""))
	}
	return b.String()
}

// StatusLine lists fired transformations as star+slot, e.g. "破軍祿 巨門權".
func StatusLine(hits scoring.Hits) string {
	if len(hits) == 0 {
		return Calm
	}
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, h.Star.String()+h.Slot.String())
	}
	return strings.Join(parts, " ")
}

func summary(p chart.Palace, stem cycle.Stem, tone Tone, res scoring.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【%s】 (能量指數 %d)\n%s", tone.Title(), res.Score, tone.advice())

	if ji, ok := res.Hits.Star(chart.SlotJi); ok {
		fmt.Fprintf(&b, "\n\n注意：天干【%s】引發【%s化忌】。", stem, ji)
		if p.HasAuxiliary(ji) {
			b.WriteString("干擾來自細節或輔助層面。")
		} else {
			b.WriteString("主架構受到衝擊，需謹慎應對。")
		}
		if hasVoid(p) {
			b.WriteString(" (逢空劫，得失心勿重，轉為精神學習為佳。)")
		}
	} else if lu, ok := res.Hits.Star(chart.SlotLu); ok {
		fmt.Fprintf(&b, "\n\n吉兆：天干【%s】引發【%s化祿】。資源流動順暢，付出有回報。", stem, lu)
	}
	return b.String()
}

func keynoteLines(p chart.Palace) []string {
	var lines []string
	effective := p.Effective()
	if len(effective) > 2 {
		effective = effective[:2]
	}
	for _, star := range effective {
		if line, ok := keynotes[star]; ok {
			lines = append(lines, line)
		}
	}
	if hasVoid(p) {
		lines = append(lines, voidKeynote)
	}
	return lines
}

func hasVoid(p chart.Palace) bool {
	return p.HasAuxiliary(chart.DiKong) || p.HasAuxiliary(chart.DiJie)
}

func joinStars(stars []chart.Attribute, sep string) string {
	names := make([]string, len(stars))
	for i, s := range stars {
		names[i] = s.String()
	}
	return strings.Join(names, sep)
}
