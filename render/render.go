// Package render 把模板 Schema 与输入数据调度到渲染后端：
// 文本走折行+坐标映射，图片与条码走嵌入+会话缓存。
package render

import (
	"fmt"

	"github.com/ByLCY/imprint/barcode"
	"github.com/ByLCY/imprint/binding"
	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/renderer"
	"github.com/ByLCY/imprint/schema"
)

const (
	defaultFontSizePt = 13.0
	// 条码位图的采样密度（像素/mm）
	barcodeDPMM = 8.0
)

// Options 配置渲染行为。
type Options struct {
	// SplitThreshold 覆盖折行宽度余量；<=0 时用 layout.DefaultSplitThreshold。
	SplitThreshold float64
	// BaseDir 是按路径加载图片时的根目录。
	BaseDir string
	// LoadImage 覆盖默认的图片字节加载（默认支持 data: URI 与 BaseDir 路径）。
	LoadImage func(input string) ([]byte, error)
}

// Renderer 将模板与输入调度为对 Driver 的绘制调用序列。
type Renderer struct {
	drv  renderer.Driver
	opts Options
}

// New 创建渲染调度器。
func New(drv renderer.Driver, opts Options) *Renderer {
	return &Renderer{drv: drv, opts: opts}
}

// Generate 渲染整份文档：每条输入记录渲染一遍模板的全部页面。
// sess 承载本次渲染的缓存与诊断，由调用方创建并在结束后丢弃。
func (r *Renderer) Generate(tpl *schema.Template, inputs schema.Inputs, sess *Session) ([]byte, error) {
	if tpl == nil {
		return nil, fmt.Errorf("模板为空")
	}
	if sess == nil {
		return nil, fmt.Errorf("render: 缺少会话（用 NewSession 创建）")
	}
	pageW, pageH, err := tpl.PageSize()
	if err != nil {
		return nil, err
	}
	if mw, ok := r.drv.(renderer.MetaWriter); ok {
		mw.SetMeta(tpl.Meta)
	}

	if len(inputs) == 0 {
		inputs = schema.Inputs{{}}
	}
	for _, record := range inputs {
		for _, page := range tpl.Pages {
			if err := r.drv.StartPage(pageW, pageH); err != nil {
				return nil, err
			}
			if err := r.RenderPage(page, record, pageW, pageH, sess); err != nil {
				return nil, err
			}
		}
	}
	return r.drv.Close()
}

// RenderPage 按声明顺序渲染一页内的全部 Schema。
// 顺序是正确性要求：后面的 Schema 必须画在前面的之上。
func (r *Renderer) RenderPage(page []schema.Schema, record map[string]string, pageW, pageH float64, sess *Session) error {
	for _, sc := range page {
		if err := r.renderSchema(sc, record, pageH, sess); err != nil {
			return err
		}
	}
	return nil
}

// renderSchema 对单个 Schema 做种类分发。可跳过的输入问题在这里吸收：
// 一个 Schema 渲染失败不应拖垮整页，除非是资源或度量层面的致命错误。
func (r *Renderer) renderSchema(sc schema.Schema, record map[string]string, pageH float64, sess *Session) error {
	input, ok := resolveInput(sc, record)
	if !ok {
		sess.note(sc.Name, "缺少输入")
		return nil
	}

	switch sc.Type {
	case schema.KindText:
		return r.renderText(sc, input, pageH, sess)
	case schema.KindImage:
		return r.renderImage(sc, input, pageH, sess)
	case schema.KindBarcode:
		return r.renderBarcode(sc, input, pageH, sess)
	case schema.KindNone:
		sess.note(sc.Name, "缺少 type")
		return nil
	default:
		sess.note(sc.Name, fmt.Sprintf("未识别的 type：%s", sc.Type))
		return nil
	}
}

// resolveInput 取输入记录中的同名值，缺失时回退到 Schema 的静态默认值，
// 并对结果做 ${path} 插值（以整条记录为数据上下文）。
func resolveInput(sc schema.Schema, record map[string]string) (string, bool) {
	value, ok := record[sc.Name]
	if !ok || value == "" {
		value = sc.Text
	}
	if value == "" {
		return "", false
	}
	if record != nil {
		value = binding.Interpolate(value, record)
	}
	return value, true
}

func (r *Renderer) renderText(sc schema.Schema, input string, pageH float64, sess *Session) error {
	// 背景矩形先于文字绘制，覆盖整个声明盒
	if sc.BackgroundColor != "" {
		if bg, err := schema.ParseColor(sc.BackgroundColor); err == nil {
			op := renderer.RectOp{
				X:      sc.Position.X,
				Y:      layout.MapY(sc.Position.Y, pageH, sc.Height),
				Width:  sc.Width,
				Height: sc.Height,
				Color:  bg,
				Rotate: sc.Rotate,
			}
			if err := r.drv.DrawRect(op); err != nil {
				return &EmbedError{Schema: sc.Name, Err: err}
			}
		}
	}

	measure := func(text string) (float64, error) {
		return r.drv.MeasureWidth(text, sc.FontName, effectiveFontSize(sc))
	}
	plan, err := planText(sc, input, pageH, measure, r.opts.SplitThreshold)
	if err != nil {
		return &MetricsError{Schema: sc.Name, Err: err}
	}
	sess.addPlan(plan)

	fontColor := schema.Color{} // 默认黑
	if sc.FontColor != "" {
		if c, err := schema.ParseColor(sc.FontColor); err == nil {
			fontColor = c
		}
	}

	for _, ln := range plan.Lines {
		op := renderer.TextOp{
			X:             ln.X,
			Y:             ln.Y,
			Text:          ln.Text,
			FontName:      sc.FontName,
			FontSizePt:    effectiveFontSize(sc),
			CharSpacingPt: sc.CharacterSpacing,
			Color:         fontColor,
			Rotate:        sc.Rotate,
		}
		if err := r.drv.DrawText(op); err != nil {
			return &EmbedError{Schema: sc.Name, Err: err}
		}
	}
	return nil
}

func (r *Renderer) renderImage(sc schema.Schema, input string, pageH float64, sess *Session) error {
	key := cacheKey(sc, input)
	ref, ok := sess.lookup(key)
	if !ok {
		data, err := r.loadImage(input)
		if err != nil {
			return &EmbedError{Schema: sc.Name, Err: err}
		}
		ref, err = r.drv.EmbedImage(data)
		if err != nil {
			return &EmbedError{Schema: sc.Name, Err: err}
		}
		sess.store(key, ref)
	}
	return r.drawImageBox(sc, ref, pageH)
}

func (r *Renderer) renderBarcode(sc schema.Schema, input string, pageH float64, sess *Session) error {
	sym, ok := barcode.Parse(sc.BarcodeType)
	if !ok {
		sess.note(sc.Name, fmt.Sprintf("未识别的条码符号体系：%s", sc.BarcodeType))
		return nil
	}
	// 校验先于任何缓存查询与生成；未通过则静默跳过，只留诊断
	if !sym.Validate(input) {
		sess.note(sc.Name, fmt.Sprintf("输入不符合 %s 规则", sym))
		return nil
	}

	key := cacheKey(sc, input)
	ref, ok := sess.lookup(key)
	if !ok {
		widthPx := int(sc.Width * barcodeDPMM)
		heightPx := int(sc.Height * barcodeDPMM)
		data, err := barcode.Generate(sym, input, widthPx, heightPx)
		if err != nil {
			return &EmbedError{Schema: sc.Name, Err: err}
		}
		ref, err = r.drv.EmbedImage(data)
		if err != nil {
			return &EmbedError{Schema: sc.Name, Err: err}
		}
		sess.store(key, ref)
	}
	return r.drawImageBox(sc, ref, pageH)
}

func (r *Renderer) drawImageBox(sc schema.Schema, ref renderer.ImageRef, pageH float64) error {
	op := renderer.ImageOp{
		X:      sc.Position.X,
		Y:      layout.MapY(sc.Position.Y, pageH, sc.Height),
		Width:  sc.Width,
		Height: sc.Height,
		Rotate: sc.Rotate,
	}
	return r.drv.DrawImage(ref, op)
}
