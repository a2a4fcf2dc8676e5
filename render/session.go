package render

import (
	"sync"

	"github.com/ByLCY/imprint/renderer"
	"github.com/ByLCY/imprint/schema"
)

// Session 承载一次文档渲染的会话状态：图片/条码嵌入缓存、诊断记录
// 与可选的排版计划。每次文档渲染创建一个实例，渲染结束即丢弃，
// 绝不提升为全局状态。
//
// 缓存键是种类判别串与字面输入的拼接（不做哈希）：只有真正相同的输入
// 才会相撞，而相同输入本就应该只嵌入一次。条目写入后不再更改，
// 因此多页并发渲染共享同一会话时，读同一键是安全的。
type Session struct {
	mu    sync.Mutex
	cache map[string]renderer.ImageRef
	diags []Diagnostic
	plans []TextPlan
}

// NewSession 创建一个空会话。
func NewSession() *Session {
	return &Session{cache: map[string]renderer.ImageRef{}}
}

func cacheKey(sc schema.Schema, input string) string {
	kind := string(sc.Type)
	if sc.Type == schema.KindBarcode {
		kind += "/" + sc.BarcodeType
	}
	return kind + ":" + input
}

func (s *Session) lookup(key string) (renderer.ImageRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.cache[key]
	return ref, ok
}

func (s *Session) store(key string, ref renderer.ImageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = ref
}

// CacheSize 返回当前缓存条目数（测试与诊断用）。
func (s *Session) CacheSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

func (s *Session) note(schemaName, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, Diagnostic{Schema: schemaName, Reason: reason})
}

// Diagnostics 返回渲染过程中被跳过的 Schema 记录。
func (s *Session) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

func (s *Session) addPlan(p TextPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, p)
}

// Plans 返回所有文本 Schema 的排版计划（折行与各行绘制原点）。
func (s *Session) Plans() []TextPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TextPlan, len(s.plans))
	copy(out, s.plans)
	return out
}
