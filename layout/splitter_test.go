package layout

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedMeasure 返回每个字符等宽 w 的度量桩。
func fixedMeasure(w float64) func(string) (float64, error) {
	return func(s string) (float64, error) {
		return float64(utf8.RuneCountInString(s)) * w, nil
	}
}

// overflowAt 返回"宽度超过 limit 即超宽"的判定（每字符 10 个单位）。
func overflowAt(limit float64) func(string) bool {
	return func(s string) bool {
		return float64(utf8.RuneCountInString(s))*10 > limit
	}
}

func TestSplitLinesKeepsFittingLineWhole(t *testing.T) {
	lines := SplitLines("abcd", overflowAt(40))
	if len(lines) != 1 || lines[0] != "abcd" {
		t.Fatalf("宽度未超限的行应原样保留: got=%q", lines)
	}
}

func TestSplitLinesBreaksOnOverflow(t *testing.T) {
	lines := SplitLines("abcdef", overflowAt(30))
	want := []string{"abc", "def"}
	if len(lines) != len(want) {
		t.Fatalf("折行数不符: got=%d want=%d (%q)", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("第 %d 行不符: got=%q want=%q", i, lines[i], want[i])
		}
	}
}

// 每个字符单独就超宽时，N 个字符必须产出 N 行，保证算法终止且不丢字。
func TestSplitLinesSingleWideCharPerLine(t *testing.T) {
	always := func(string) bool { return true }
	lines := SplitLines("xyz", always)
	if len(lines) != 3 {
		t.Fatalf("期望 3 个单字符行，实际 %d: %q", len(lines), lines)
	}
	for i, want := range []string{"x", "y", "z"} {
		if lines[i] != want {
			t.Fatalf("第 %d 行不符: got=%q want=%q", i, lines[i], want)
		}
	}
}

func TestSplitLinesEmptyInput(t *testing.T) {
	lines := SplitLines("", overflowAt(100))
	if len(lines) != 1 || lines[0] != "" {
		t.Fatalf("空输入应产出恰好一个空行: got=%q", lines)
	}
}

// 拼接不变式：把物理行按原位置重新插回硬换行后，必须还原出原始内容，
// 一个字符都不能丢、不能重复。
func TestSplitRunConcatInvariant(t *testing.T) {
	run := "first line\r\nsecond\rthird\n\nlast"
	normalized := strings.ReplaceAll(strings.ReplaceAll(run, "\r\n", "\n"), "\r", "\n")

	lines := SplitRun(run, overflowAt(40))

	var joined strings.Builder
	for _, ln := range lines {
		joined.WriteString(ln.Text)
	}
	wantChars := strings.ReplaceAll(normalized, "\n", "")
	if joined.String() != wantChars {
		t.Fatalf("拼接后字符不一致:\ngot=%q\nwant=%q", joined.String(), wantChars)
	}

	// 行号必须从 0 连续递增
	for i, ln := range lines {
		if ln.Index != i {
			t.Fatalf("行号不连续: 第 %d 项 Index=%d", i, ln.Index)
		}
	}
}

// 不触发宽度折行时，物理行恰好就是硬换行切出的各段，空行按位置保留。
func TestSplitRunPreservesBlankLines(t *testing.T) {
	never := func(string) bool { return false }
	lines := SplitRun("foo\n\nbar", never)
	if len(lines) != 3 {
		t.Fatalf("期望 3 行（含空行），实际 %d", len(lines))
	}
	if lines[1].Text != "" {
		t.Fatalf("中间行应为空行: got=%q", lines[1].Text)
	}
	if lines[2].Text != "bar" || lines[2].Index != 2 {
		t.Fatalf("末行不符: %+v", lines[2])
	}
}

func TestContentWidthAddsCharacterSpacing(t *testing.T) {
	measure := fixedMeasure(2)

	w0, err := ContentWidth("hello", 0, measure)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}
	if w0 != 10 {
		t.Fatalf("零字距宽度不符: got=%g want=10", w0)
	}

	w1, err := ContentWidth("hello", 1, measure)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}
	if want := w0 + 4; math.Abs(w1-want) > 1e-9 {
		t.Fatalf("字距应增加 (n-1)×spacing: got=%g want=%g", w1, want)
	}

	we, err := ContentWidth("", 1, measure)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}
	if we != 0 {
		t.Fatalf("空串宽度应为 0: got=%g", we)
	}
}

// 参考字体夹具：各字符宽度（mm，12pt 下）回归锁定 "Hello, world!" 的测量值。
var refWidths = map[rune]float64{
	'H': 3, 'e': 2, 'l': 1, 'o': 2, ',': 1, ' ': 1,
	'w': 3, 'r': 1.5, 'd': 2, '!': 2.639414576,
}

func refMeasure(s string) (float64, error) {
	w := 0.0
	for _, r := range s {
		w += refWidths[r]
	}
	return w, nil
}

func TestReferenceFontWidthFixture(t *testing.T) {
	const want = 23.139414576
	got, err := ContentWidth("Hello, world!", 0, refMeasure)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("参考宽度回归失败: got=%.9f want=%.9f", got, want)
	}

	// 字距 1 使宽度增加 (13-1)×1
	spaced, err := ContentWidth("Hello, world!", 1, refMeasure)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}
	if math.Abs(spaced-(want+12)) > 1e-9 {
		t.Fatalf("字距宽度不符: got=%.9f want=%.9f", spaced, want+12)
	}
}

func TestWrapRespectsThreshold(t *testing.T) {
	run := strings.Repeat("a", 25)
	lines, err := Wrap(run, WrapParams{
		BoxWidth:       100,
		SplitThreshold: 0.5,
		Measure:        fixedMeasure(10),
	})
	if err != nil {
		t.Fatalf("Wrap 失败: %v", err)
	}
	// 100 宽的盒子，每字符 10：第 10 个字符使余量降为 0 ≤ 0.5，因此每行 9 个
	wantLens := []int{9, 9, 7}
	if len(lines) != len(wantLens) {
		t.Fatalf("行数不符: got=%d want=%d", len(lines), len(wantLens))
	}
	for i, n := range wantLens {
		if got := utf8.RuneCountInString(lines[i].Text); got != n {
			t.Fatalf("第 %d 行长度不符: got=%d want=%d", i, got, n)
		}
	}
}

func TestWrapPropagatesMeasureError(t *testing.T) {
	wantErr := "glyph 缺失"
	_, err := Wrap("abc", WrapParams{
		BoxWidth: 100,
		Measure: func(string) (float64, error) {
			return 0, errFixed(wantErr)
		},
	})
	if err == nil || err.Error() != wantErr {
		t.Fatalf("度量错误必须上抛，不得用零宽度顶替: err=%v", err)
	}
}

type errFixed string

func (e errFixed) Error() string { return string(e) }
