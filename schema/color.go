package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ParseColor 解析 #RGB / #RRGGBB / #RRGGBBAA 形式的颜色值（alpha 被忽略）。
func ParseColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		value = strings.Repeat(string(value[0]), 2) +
			strings.Repeat(string(value[1]), 2) +
			strings.Repeat(string(value[2]), 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}

	r, err := parseHex(value[0:2])
	if err != nil {
		return Color{}, err
	}
	g, err := parseHex(value[2:4])
	if err != nil {
		return Color{}, err
	}
	b, err := parseHex(value[4:6])
	if err != nil {
		return Color{}, err
	}
	return Color{R: r, G: g, B: b}, nil
}

func parseHex(s string) (int, error) {
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("颜色分量 %s 不是十六进制: %w", s, err)
	}
	return int(v), nil
}
