package binding

import "testing"

func TestInterpolateFlatRecord(t *testing.T) {
	record := map[string]string{"name": "Bob", "city": "Kyoto"}
	got := Interpolate("Hi ${name} from ${city}", record)
	if got != "Hi Bob from Kyoto" {
		t.Fatalf("插值结果不符: %q", got)
	}
}

func TestInterpolateNestedPath(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{
			"name":  "Alice",
			"items": []any{"pen", "book"},
		},
		"rows": []any{
			[]any{"a0", "a1"},
			[]any{"b0", "b1"},
		},
	}
	if got := Interpolate("${user.name} buys ${user.items[1]}", data); got != "Alice buys book" {
		t.Fatalf("嵌套路径插值不符: %q", got)
	}
	// 多级下标
	if got := Interpolate("${rows[1][0]}", data); got != "b0" {
		t.Fatalf("多级下标插值不符: %q", got)
	}
}

// 解析不了或找不到的占位符原样保留，不吞不改。
func TestInterpolateKeepsUnresolvedPlaceholders(t *testing.T) {
	record := map[string]string{"name": "Bob"}
	cases := []string{
		"Hi ${missing}",
		"Hi ${1abc}",
		"Hi ${}",
		"Hi ${name.deeper}",
		"Hi ${name[0]}",
	}
	for _, in := range cases {
		if got := Interpolate(in, record); got != in {
			t.Fatalf("未解析的占位符应原样保留: in=%q got=%q", in, got)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	in := "Hi ${name}"
	if got := Interpolate(in, nil); got != in {
		t.Fatalf("data 为空时不应改动文本: %q", got)
	}
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("a.b[2][3].c")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(p.Segments) != 3 {
		t.Fatalf("段数不符: %d", len(p.Segments))
	}
	if p.Segments[0].Name != "a" || len(p.Segments[0].Indexes) != 0 {
		t.Fatalf("首段不符: %+v", p.Segments[0])
	}
	if p.Segments[1].Name != "b" || len(p.Segments[1].Indexes) != 2 ||
		p.Segments[1].Indexes[0] != 2 || p.Segments[1].Indexes[1] != 3 {
		t.Fatalf("中段不符: %+v", p.Segments[1])
	}
	if p.Segments[2].Name != "c" {
		t.Fatalf("末段不符: %+v", p.Segments[2])
	}

	for _, bad := range []string{"", ".", "a..b", "[0]", "a[", "a]1", "0a"} {
		if _, err := ParsePath(bad); err == nil {
			t.Fatalf("非法路径 %q 应解析失败", bad)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	data := map[string]any{"items": []any{"only"}}
	p, err := ParsePath("items[1]")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if _, ok := p.Resolve(data); ok {
		t.Fatalf("越界下标不应命中")
	}
}
