package render

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadImage 把图片输入解析为字节：支持 data: URI（base64）与磁盘路径。
// 未指定 BaseDir 时不允许相对路径，避免依赖进程工作目录。
func (r *Renderer) loadImage(input string) ([]byte, error) {
	if r.opts.LoadImage != nil {
		return r.opts.LoadImage(input)
	}
	if strings.HasPrefix(input, "data:") {
		idx := strings.Index(input, ",")
		if idx == -1 {
			return nil, fmt.Errorf("data URI 缺少逗号分隔的数据段")
		}
		data, err := base64.StdEncoding.DecodeString(input[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("解码 data URI 失败: %w", err)
		}
		return data, nil
	}

	path := input
	if !filepath.IsAbs(path) {
		if r.opts.BaseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许使用相对路径：%s", input)
		}
		path = filepath.Join(r.opts.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", input, err)
	}
	return data, nil
}
