package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to[0].value} 替换为 data 中的值。
// 若 data 为空、路径非法或不存在，则保留原占位符不动。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		raw := strings.TrimSpace(groups[1])
		if raw == "" {
			return match
		}
		path, err := ParsePath(raw)
		if err != nil {
			return match
		}
		if val, ok := path.Resolve(data); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Resolve 沿路径逐段下钻，支持 map 与数组两种容器。
func (p *Path) Resolve(data any) (any, bool) {
	current := data
	for _, seg := range p.Segments {
		var ok bool
		current, ok = descendMap(current, seg.Name)
		if !ok {
			return nil, false
		}
		for _, idx := range seg.Indexes {
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
