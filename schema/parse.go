package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseTemplate 从 JSON 读取模板。只做解码，不做模板格式校验——
// 非法字段由上游校验器负责。
func ParseTemplate(r io.Reader) (*Template, error) {
	var tpl Template
	dec := json.NewDecoder(r)
	if err := dec.Decode(&tpl); err != nil {
		return nil, fmt.Errorf("解析模板 JSON 失败: %w", err)
	}
	return &tpl, nil
}

// ParseInputs 从 JSON 读取输入记录数组。
func ParseInputs(r io.Reader) (Inputs, error) {
	var in Inputs
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("解析输入 JSON 失败: %w", err)
	}
	return in, nil
}

// PageSize 返回页面宽高（mm）。显式 Width/Height 优先，其次按 Size 预设。
func (t *Template) PageSize() (float64, float64, error) {
	if t.Width > 0 && t.Height > 0 {
		return t.Width, t.Height, nil
	}
	name := t.Size
	if name == "" {
		name = "A4"
	}
	base, ok := pagePresets[strings.ToUpper(name)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	return base[0], base[1], nil
}
