package canvasdriver

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/imprint/renderer"
	"github.com/ByLCY/imprint/schema"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("生成测试 PNG 失败: %v", err)
	}
	return buf.Bytes()
}

// 不依赖字体：只走矩形与图片路径，验证页面生命周期与 PDF 输出。
func TestDriverProducesPDF(t *testing.T) {
	d := New(nil)
	d.SetMeta(schema.DocumentMeta{Title: "测试文档", Keywords: []string{"a", "b"}})

	if err := d.StartPage(210, 297); err != nil {
		t.Fatalf("开页失败: %v", err)
	}
	if err := d.DrawRect(renderer.RectOp{X: 10, Y: 200, Width: 50, Height: 20, Color: schema.Color{R: 255}}); err != nil {
		t.Fatalf("画矩形失败: %v", err)
	}

	ref, err := d.EmbedImage(testPNG(t))
	if err != nil {
		t.Fatalf("嵌入图片失败: %v", err)
	}
	if err := d.DrawImage(ref, renderer.ImageOp{X: 20, Y: 100, Width: 40, Height: 30}); err != nil {
		t.Fatalf("画图片失败: %v", err)
	}
	// 同一句柄在第二页重复绘制
	if err := d.StartPage(210, 297); err != nil {
		t.Fatalf("开第二页失败: %v", err)
	}
	if err := d.DrawImage(ref, renderer.ImageOp{X: 20, Y: 100, Width: 40, Height: 30, Rotate: 45}); err != nil {
		t.Fatalf("第二页画图片失败: %v", err)
	}

	out, err := d.Close()
	if err != nil {
		t.Fatalf("Close 失败: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatalf("输出应为 PDF 字节流，实际 %d 字节", len(out))
	}
}

func TestCloseWithoutPage(t *testing.T) {
	d := New(nil)
	if _, err := d.Close(); err == nil {
		t.Fatalf("没有页面时 Close 应报错")
	}
}

func TestStartPageRejectsEmptySize(t *testing.T) {
	d := New(nil)
	if err := d.StartPage(0, 297); err == nil {
		t.Fatalf("非法页面尺寸应报错")
	}
}

func TestMeasureWidthEmptyText(t *testing.T) {
	d := New(nil)
	// 空串宽度为 0，不需要任何字体
	w, err := d.MeasureWidth("", "Any", 12)
	if err != nil || w != 0 {
		t.Fatalf("空串宽度应为 0: w=%g err=%v", w, err)
	}
}

func TestMissingFontReported(t *testing.T) {
	d := New(nil)
	if _, err := d.MeasureWidth("hi", "Nope", 12); err == nil {
		t.Fatalf("注册表为空时度量应报错")
	}
	if err := d.StartPage(210, 297); err != nil {
		t.Fatalf("开页失败: %v", err)
	}
	if err := d.DrawText(renderer.TextOp{X: 10, Y: 10, Text: "hi", FontName: "Nope", FontSizePt: 12}); err == nil {
		t.Fatalf("缺字体时绘制应报错")
	}
}

func TestEmbedImageRejectsGarbage(t *testing.T) {
	d := New(nil)
	if _, err := d.EmbedImage([]byte("not an image")); err == nil {
		t.Fatalf("非法图片字节应报错")
	}
}

func TestDrawBeforePage(t *testing.T) {
	d := New(nil)
	if err := d.DrawRect(renderer.RectOp{Width: 10, Height: 10}); err == nil {
		t.Fatalf("未开页时绘制应报错")
	}
}

func TestParseFontStyle(t *testing.T) {
	cases := []struct {
		in   string
		want canvas.FontStyle
	}{
		{"", canvas.FontRegular},
		{"Bold", canvas.FontBold},
		{"SemiBold", canvas.FontSemiBold},
		{"BoldItalic", canvas.FontBold | canvas.FontItalic},
		{"Light", canvas.FontLight},
		{"Oblique", canvas.FontRegular | canvas.FontItalic},
	}
	for _, c := range cases {
		if got := parseFontStyle(c.in); got != c.want {
			t.Fatalf("parseFontStyle(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
