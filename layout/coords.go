package layout

import "strings"

// 该文件负责把 Schema 声明的锚点（左上角、y 向下）换算到页面坐标
// （左下角原点、y 向上）。文本基线、图片盒、背景矩形共用同一组公式。

// Alignment 表示文本的水平对齐方式。
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment 规范化对齐取值，未识别时回落为左对齐。
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "middle":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

// MapX 根据对齐方式计算内容的水平绘制原点。
// contentWidth 是被放置内容的实测宽度：多行文本逐行取各自宽度，
// 图片与背景矩形取整个盒宽。
func MapX(anchorX float64, align Alignment, boxWidth, contentWidth float64) float64 {
	switch align {
	case AlignRight:
		return anchorX + boxWidth - contentWidth
	case AlignCenter:
		return anchorX + (boxWidth-contentWidth)/2
	default:
		return anchorX
	}
}

// MapY 把自顶部声明的锚点换算为自底部度量的页面坐标。
// contentHeight 依内容而定：文本基线用字号，图片用显式高度。
func MapY(anchorY, pageHeight, contentHeight float64) float64 {
	return pageHeight - anchorY - contentHeight
}

// LineOffset 返回第 index 行基线相对首行基线的向下偏移量。
// lineHeight 为倍数；非 0 时额外减去 (lineHeight-1)×fontSize/2 的居中修正，
// 使单倍行距在其行槽内保持视觉居中。lineHeight 为 0 表示紧排，仅按字号堆叠。
func LineOffset(index int, fontSize, lineHeight float64) float64 {
	if lineHeight == 0 {
		return fontSize * float64(index)
	}
	return lineHeight*fontSize*float64(index) - (lineHeight-1)*fontSize/2
}
