// Package fonts keeps the font bytes used by the rendering backends and the
// baseline corrections applied per font family.
package fonts

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'liansip.fonts'
func tracer() tracing.Trace {
	return tracing.Select("liansip.fonts")
}

// ErrEmptyFont 表示注册的字体数据为空。
var ErrEmptyFont = errors.New("fonts: 字体数据为空")

type faceKey struct {
	family string
	bold   bool
}

// Registry 按 (字族, 是否加粗) 保存字体数据。注册应在开始测量之前完成；
// 之后并发的 Lookup 是安全的。
type Registry struct {
	mu    sync.RWMutex
	faces map[faceKey][]byte
}

// NewRegistry 创建一个空的字体注册表。
func NewRegistry() *Registry {
	return &Registry{faces: map[faceKey][]byte{}}
}

// Register 登记一个字体，同名同粗细的字体后注册者覆盖先注册者。
func (r *Registry) Register(family string, bold bool, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFont, family)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[faceKey{family, bold}] = data
	tracer().Debugf("registered font %q bold=%v (%d bytes)", family, bold, len(data))
	return nil
}

// RegisterFile 读取 path（见 Load）并登记。
func (r *Registry) RegisterFile(family string, bold bool, path string) error {
	data, err := Load(path)
	if err != nil {
		return err
	}
	return r.Register(family, bold, data)
}

// Lookup 返回字体数据。缺少粗体时退回同一字族的常规体；字族完全缺失时
// 退回 Go 字体，此时 fallback 为 true，由调用方决定是否记录。
func (r *Registry) Lookup(family string, bold bool) (data []byte, fallback bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if data, ok := r.faces[faceKey{family, bold}]; ok {
		return data, false
	}
	if bold {
		if data, ok := r.faces[faceKey{family, false}]; ok {
			return data, false
		}
	}
	return Fallback(bold), true
}

// Families 按字母顺序列出已注册的字族。
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for k := range r.faces {
		if !seen[k.family] {
			seen[k.family] = true
			out = append(out, k.family)
		}
	}
	sort.Strings(out)
	return out
}
