// Package fonts 管理按名字注册的字体资源。
// 本仓库不内置任何字体文件：资源由调用方以字节或磁盘路径注入，
// 与渲染后端解耦。
package fonts

import (
	"fmt"
	"os"
	"sync"
)

// Resource 描述一个字体资源，Bytes 与 Path 二选一，Bytes 优先。
type Resource struct {
	Bytes []byte
	Path  string
	Style string // 例如 "Bold"、"Italic"；留空为 Regular
}

// Load 返回字体的字节数据。
func (r Resource) Load() ([]byte, error) {
	if len(r.Bytes) > 0 {
		return r.Bytes, nil
	}
	if r.Path == "" {
		return nil, fmt.Errorf("字体资源缺少 Bytes 或 Path")
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", r.Path, err)
	}
	return data, nil
}

// Registry 是名字到字体资源的并发安全映射，附带回落字体。
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]Resource
	fallback string
}

// NewRegistry 创建空注册表。
func NewRegistry() *Registry {
	return &Registry{entries: map[string]Resource{}}
}

// Register 注册一个字体；第一个注册的自动成为回落字体。
func (r *Registry) Register(name string, res Resource) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = res
	if r.fallback == "" {
		r.fallback = name
	}
}

// SetFallback 指定回落字体，名字未注册时忽略。
func (r *Registry) SetFallback(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		r.fallback = name
	}
}

// Resolve 按名字查找字体；未命中时回落，返回实际使用的名字。
// 注册表为空时报错——没有字体就无法排版。
func (r *Registry) Resolve(name string) (string, Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if res, ok := r.entries[name]; ok {
		return name, res, nil
	}
	if res, ok := r.entries[r.fallback]; ok {
		return r.fallback, res, nil
	}
	return "", Resource{}, fmt.Errorf("字体 %s 未注册，且没有可用的回落字体", name)
}
