package layout

import (
	"strings"
	"unicode/utf8"
)

// DefaultSplitThreshold 是折行判定的默认宽度余量（与盒宽同单位）。
// 它是针对当前宽度度量后端启发式调校的常量，用于抵消度量的系统性偏差；
// 更换度量后端时应重新调校，而不是沿用原值。
const DefaultSplitThreshold = 3.0

// PhysicalLine 表示折行产生的一行文本及其在整体流中的序号（从 0 开始）。
// 序号跨硬换行段连续累计，用于计算纵向偏移。
type PhysicalLine struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// SplitLines 对单行文本做贪心宽度折行：候选子串逐字符增长，一旦 isOverflow
// 判定超宽，就把触发字符之前的子串作为一行输出，并从触发字符重新开始扫描。
// 边界：
//   - 空输入返回恰好一个空行（源文本中的空行按位置保留）；
//   - 单个字符自身超宽时仍独占一行输出，保证扫描总能推进。
func SplitLines(line string, isOverflow func(string) bool) []string {
	runes := []rune(line)
	if len(runes) == 0 {
		return []string{""}
	}

	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isOverflow(string(runes[start : i+1])) {
			continue
		}
		if i == start {
			// 候选只有一个字符也超宽：强制独占一行
			out = append(out, string(runes[i]))
			start = i + 1
			continue
		}
		out = append(out, string(runes[start:i]))
		start = i
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// SplitHardBreaks 按显式换行符（\r\n、\r、\n）切分文本。
// 硬换行总是生效，与宽度无关。
func SplitHardBreaks(run string) []string {
	normalized := strings.ReplaceAll(run, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

// SplitRun 先按硬换行切段，再逐段做宽度折行，输出带全局行号的物理行。
// 行号跨段连续：第二段从第一段结束处继续编号，而不是清零。
func SplitRun(run string, isOverflow func(string) bool) []PhysicalLine {
	var out []PhysicalLine
	idx := 0
	for _, seg := range SplitHardBreaks(run) {
		for _, l := range SplitLines(seg, isOverflow) {
			out = append(out, PhysicalLine{Text: l, Index: idx})
			idx++
		}
	}
	return out
}

// WrapParams 描述宽度折行所需的度量参数。宽度单位与 BoxWidth 一致。
type WrapParams struct {
	BoxWidth         float64
	CharacterSpacing float64
	SplitThreshold   float64 // <=0 时使用 DefaultSplitThreshold
	Measure          func(text string) (float64, error)
}

// ContentWidth 返回文本在给定度量与字距下的占用宽度：
// measure(text) + (字符数-1) × spacing。空串宽度为 0。
func ContentWidth(text string, spacing float64, measure func(string) (float64, error)) (float64, error) {
	w, err := measure(text)
	if err != nil {
		return 0, err
	}
	if n := utf8.RuneCountInString(text); n > 1 {
		w += float64(n-1) * spacing
	}
	return w, nil
}

// Wrap 把一段原始文本折成物理行。度量失败立即中止并返回该错误，
// 绝不用零宽度顶替——那会污染整行的后续判定。
func Wrap(run string, p WrapParams) ([]PhysicalLine, error) {
	threshold := p.SplitThreshold
	if threshold <= 0 {
		threshold = DefaultSplitThreshold
	}

	var measureErr error
	overflow := func(candidate string) bool {
		if measureErr != nil {
			return false // 已失败，让扫描尽快收尾
		}
		w, err := ContentWidth(candidate, p.CharacterSpacing, p.Measure)
		if err != nil {
			measureErr = err
			return false
		}
		return p.BoxWidth-w <= threshold
	}

	lines := SplitRun(run, overflow)
	if measureErr != nil {
		return nil, measureErr
	}
	return lines, nil
}
