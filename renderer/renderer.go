// Package renderer 定义渲染后端需要实现的绘制原语与文本度量接口。
// 渲染调度只依赖这里的接口；具体实现见 renderer/canvas。
package renderer

import "github.com/ByLCY/imprint/schema"

// ImageRef 是后端内部的图片句柄：嵌入一次，可多次绘制。
type ImageRef any

// Metrics 提供文本宽度度量。返回值与盒尺寸同单位（mm）；
// 对相同的 (text, fontName, fontSize) 必须返回相同结果。
type Metrics interface {
	MeasureWidth(text string, fontName string, fontSizePt float64) (float64, error)
}

// TextOp 描述一次文本绘制。X/Y 为页面坐标（左下原点，mm），Y 是基线。
type TextOp struct {
	X, Y             float64
	Text             string
	FontName         string
	FontSizePt       float64
	CharSpacingPt    float64
	Color            schema.Color
	Rotate           float64 // 顺时针角度（度），绕 (X, Y) 旋转
}

// ImageOp 描述一次图片绘制。X/Y 为盒子左下角的页面坐标（mm）。
type ImageOp struct {
	X, Y          float64
	Width, Height float64
	Rotate        float64 // 绕盒中心旋转
}

// RectOp 描述一次填充矩形绘制。X/Y 为矩形左下角的页面坐标（mm）。
type RectOp struct {
	X, Y          float64
	Width, Height float64
	Color         schema.Color
	Rotate        float64 // 绕矩形中心旋转
}

// Driver 是渲染后端：按顺序接收页面与绘制调用，最终产出文档字节。
// 同一页内的调用顺序就是叠放顺序——后画的覆盖先画的。
type Driver interface {
	Metrics

	// StartPage 开始一个新页面（mm）。首次调用前不得发出绘制调用。
	StartPage(width, height float64) error
	DrawText(op TextOp) error
	// EmbedImage 解码并嵌入一张图片，返回可重复绘制的句柄。
	EmbedImage(data []byte) (ImageRef, error)
	DrawImage(ref ImageRef, op ImageOp) error
	DrawRect(op RectOp) error
	// Close 完成所有页面并返回文档字节。
	Close() ([]byte, error)
}

// MetaWriter 由支持文档元信息的后端额外实现。
type MetaWriter interface {
	SetMeta(meta schema.DocumentMeta)
}
