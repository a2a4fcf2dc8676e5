package render

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/schema"
)

// TextPlan 记录一个文本 Schema 的排版结果：物理行与各行绘制原点。
// 渲染走的就是这份计划，因此它也可以单独导出用于调试或可视化。
type TextPlan struct {
	Schema string        `json:"schema"`
	Lines  []PlannedLine `json:"lines"`
}

// PlannedLine 是一条已定位的物理行。X/Y 为页面坐标（左下原点，mm），Y 是基线。
type PlannedLine struct {
	Text  string  `json:"text"`
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// planText 计算一个文本 Schema 的完整排版计划。
// fontSize/charSpacing 以 pt 声明，折行与定位统一换算到 mm 进行。
func planText(sc schema.Schema, input string, pageHeight float64, metrics func(string) (float64, error), threshold float64) (TextPlan, error) {
	fontSizeMM := layout.PtToMM(effectiveFontSize(sc))
	spacingMM := layout.PtToMM(sc.CharacterSpacing)
	align := layout.ParseAlignment(sc.Alignment)

	lines, err := layout.Wrap(input, layout.WrapParams{
		BoxWidth:         sc.Width,
		CharacterSpacing: spacingMM,
		SplitThreshold:   threshold,
		Measure:          metrics,
	})
	if err != nil {
		return TextPlan{}, err
	}

	// 首行基线：盒顶锚点向下一个字号
	firstBaseline := layout.MapY(sc.Position.Y, pageHeight, fontSizeMM)

	plan := TextPlan{Schema: sc.Name}
	for _, ln := range lines {
		w, err := layout.ContentWidth(ln.Text, spacingMM, metrics)
		if err != nil {
			return TextPlan{}, err
		}
		plan.Lines = append(plan.Lines, PlannedLine{
			Text:  ln.Text,
			Index: ln.Index,
			X:     layout.MapX(sc.Position.X, align, sc.Width, w),
			Y:     firstBaseline - layout.LineOffset(ln.Index, fontSizeMM, sc.LineHeight),
			Width: w,
		})
	}
	return plan, nil
}

func effectiveFontSize(sc schema.Schema) float64 {
	if sc.FontSize > 0 {
		return sc.FontSize
	}
	return defaultFontSizePt
}

// WritePlanJSON 将排版计划输出为 JSON 文件，便于调试或可视化。
func WritePlanJSON(plans []TextPlan, path string) error {
	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
