package render

import "fmt"

// 错误分层：可跳过的输入问题只进诊断通道；资源嵌入与度量失败
// 对当前页渲染是致命的，原样上抛给页级调用方。

// Diagnostic 记录一个被跳过的 Schema 及原因。
type Diagnostic struct {
	Schema string `json:"schema"`
	Reason string `json:"reason"`
}

// EmbedError 表示字体、图片或条码资源嵌入失败（损坏的字节、不支持的编码等）。
type EmbedError struct {
	Schema string
	Err    error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("schema %s: 资源嵌入失败: %v", e.Schema, e.Err)
}

func (e *EmbedError) Unwrap() error { return e.Err }

// MetricsError 表示某个字体/文本的宽度度量失败。
// 不允许用零宽度顶替：那会破坏该行之后的每一个布局决策。
type MetricsError struct {
	Schema string
	Err    error
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("schema %s: 宽度度量失败: %v", e.Schema, e.Err)
}

func (e *MetricsError) Unwrap() error { return e.Err }
