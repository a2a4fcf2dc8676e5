// Package canvasdriver 用 github.com/tdewolff/canvas 实现渲染后端：
// 字体加载与度量、文本/图片/矩形绘制，以及 PDF 页面输出。
package canvasdriver

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/imprint/fonts"
	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/renderer"
	"github.com/ByLCY/imprint/schema"
)

// Driver 是基于 canvas 的渲染后端。坐标系保持 canvas 默认的左下原点、
// y 向上，与上游坐标映射的约定一致。
type Driver struct {
	reg  *fonts.Registry
	meta schema.DocumentMeta

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry

	buf    bytes.Buffer
	writer *pdf.PDF
	c      *canvas.Canvas
	ctx    *canvas.Context
}

var (
	_ renderer.Driver     = (*Driver)(nil)
	_ renderer.MetaWriter = (*Driver)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// New 创建 canvas 后端；reg 为空时使用空注册表（任何度量/绘制都会报缺字体）。
func New(reg *fonts.Registry) *Driver {
	if reg == nil {
		reg = fonts.NewRegistry()
	}
	return &Driver{
		reg:          reg,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// SetMeta 记录文档元信息，在首页创建时写入 PDF info 字典。
func (d *Driver) SetMeta(meta schema.DocumentMeta) { d.meta = meta }

// StartPage 结束上一页（若有）并开始新页。
func (d *Driver) StartPage(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("非法页面尺寸：%gx%g", width, height)
	}
	if d.writer == nil {
		d.writer = pdf.New(&d.buf, width, height, nil)
		keywords := strings.Join(d.meta.Keywords, ", ")
		d.writer.SetInfo(d.meta.Title, d.meta.Subject, keywords, d.meta.Author, d.meta.Creator)
	} else {
		d.flushPage()
		d.writer.NewPage(width, height)
	}
	d.c = canvas.New(width, height)
	d.ctx = canvas.NewContext(d.c)
	return nil
}

func (d *Driver) flushPage() {
	if d.c != nil {
		d.c.RenderTo(d.writer)
		d.c = nil
		d.ctx = nil
	}
}

// Close 完成所有页面并返回 PDF 字节。
func (d *Driver) Close() ([]byte, error) {
	if d.writer == nil {
		return nil, fmt.Errorf("没有任何页面可输出")
	}
	d.flushPage()
	if err := d.writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return d.buf.Bytes(), nil
}

// MeasureWidth 返回文本宽度（mm）。canvas 的画布单位即 mm，
// 字体面以 pt 字号创建后 TextWidth 直接给出 mm 值。
func (d *Driver) MeasureWidth(text string, fontName string, fontSizePt float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	face, err := d.fontFace(fontName, fontSizePt, schema.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}

// DrawText 在基线 (X, Y) 处绘制一行文本。字距为正时逐字符推进绘制。
func (d *Driver) DrawText(op renderer.TextOp) error {
	if d.ctx == nil {
		return fmt.Errorf("尚未开始页面")
	}
	face, err := d.fontFace(op.FontName, op.FontSizePt, op.Color)
	if err != nil {
		return err
	}

	if op.Rotate != 0 {
		d.ctx.Push()
		d.ctx.ComposeView(canvas.Identity.RotateAbout(-op.Rotate, op.X, op.Y))
		defer d.ctx.Pop()
	}

	if op.CharSpacingPt <= 0 {
		d.ctx.DrawText(op.X, op.Y, canvas.NewTextLine(face, op.Text, canvas.Left))
		return nil
	}

	spacingMM := layout.PtToMM(op.CharSpacingPt)
	x := op.X
	for _, r := range op.Text {
		s := string(r)
		d.ctx.DrawText(x, op.Y, canvas.NewTextLine(face, s, canvas.Left))
		x += face.TextWidth(s) + spacingMM
	}
	return nil
}

// EmbedImage 解码一张图片并返回句柄；同一句柄可绘制多次。
func (d *Driver) EmbedImage(data []byte) (renderer.ImageRef, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %w", err)
	}
	return img, nil
}

// DrawImage 把已嵌入的图片铺满 (X, Y) 起的 Width×Height 盒子（mm）。
func (d *Driver) DrawImage(ref renderer.ImageRef, op renderer.ImageOp) error {
	if d.ctx == nil {
		return fmt.Errorf("尚未开始页面")
	}
	img, ok := ref.(image.Image)
	if !ok {
		return fmt.Errorf("非法的图片句柄：%T", ref)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || op.Width <= 0 || op.Height <= 0 {
		return fmt.Errorf("图片或目标盒尺寸为空")
	}

	d.ctx.Push()
	defer d.ctx.Pop()
	if op.Rotate != 0 {
		cx := op.X + op.Width/2
		cy := op.Y + op.Height/2
		d.ctx.ComposeView(canvas.Identity.RotateAbout(-op.Rotate, cx, cy))
	}
	// DPMM(1) 使 1 像素占 1mm，再整体缩放到目标盒，宽高都精确贴合
	sx := op.Width / float64(bounds.Dx())
	sy := op.Height / float64(bounds.Dy())
	d.ctx.ComposeView(canvas.Identity.Translate(op.X, op.Y).Scale(sx, sy))
	d.ctx.DrawImage(0, 0, img, canvas.DPMM(1))
	return nil
}

// DrawRect 绘制无描边的填充矩形。
func (d *Driver) DrawRect(op renderer.RectOp) error {
	if d.ctx == nil {
		return fmt.Errorf("尚未开始页面")
	}
	d.ctx.Push()
	defer d.ctx.Pop()
	if op.Rotate != 0 {
		cx := op.X + op.Width/2
		cy := op.Y + op.Height/2
		d.ctx.ComposeView(canvas.Identity.RotateAbout(-op.Rotate, cx, cy))
	}
	d.ctx.SetFillColor(colorFromSchema(op.Color))
	d.ctx.SetStrokeColor(color.RGBA{})
	d.ctx.DrawPath(op.X, op.Y, canvas.Rectangle(op.Width, op.Height))
	return nil
}

func (d *Driver) fontFace(name string, sizePt float64, col schema.Color) (*canvas.FontFace, error) {
	family, style, err := d.ensureFontFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromSchema(col), style, canvas.FontNormal), nil
}

func (d *Driver) ensureFontFamily(name string) (*canvas.FontFamily, canvas.FontStyle, error) {
	resolved, res, err := d.reg.Resolve(name)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	key := resolved + "|" + res.Style

	d.fontMu.Lock()
	defer d.fontMu.Unlock()
	if entry, ok := d.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	data, err := res.Load()
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	style := parseFontStyle(res.Style)
	family := canvas.NewFontFamily(resolved)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", resolved, err)
	}

	d.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	default:
		result = canvas.FontRegular
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromSchema(c schema.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
