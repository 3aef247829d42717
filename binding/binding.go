// Package binding fills ${path} placeholders in worksheet titles and
// practice text from JSON-decoded data.
package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolate 将 text 中的 ${path.to.value} 或 ${list[0]} 替换为 data 中的值。
// 无法解析的占位符原样保留；未闭合的 "${" 之后的内容也原样保留。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	var sb strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		end += start
		sb.WriteString(rest[:start])
		placeholder := rest[start : end+1]
		if val, ok := Lookup(data, rest[start+2:end]); ok {
			sb.WriteString(format(val))
		} else {
			sb.WriteString(placeholder)
		}
		rest = rest[end+1:]
	}
	sb.WriteString(rest)
	return sb.String()
}

// Lookup 沿着 "a.b[0].c" 形式的路径在 data 中取值。
func Lookup(data any, path string) (any, bool) {
	steps, ok := parsePath(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, st := range steps {
		if current, ok = st.descend(current); !ok {
			return nil, false
		}
	}
	return current, true
}

// step 是路径中的一段：键名或数组下标。
type step struct {
	key   string
	index int
	isIdx bool
}

func (s step) descend(v any) (any, bool) {
	if s.isIdx {
		list, ok := v.([]any)
		if !ok || s.index < 0 || s.index >= len(list) {
			return nil, false
		}
		return list[s.index], true
	}
	switch m := v.(type) {
	case map[string]any:
		val, ok := m[s.key]
		return val, ok
	case map[string]string:
		val, ok := m[s.key]
		return val, ok
	}
	return nil, false
}

func parsePath(path string) ([]step, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name := segment
		var indexes string
		if i := strings.IndexByte(segment, '['); i >= 0 {
			name, indexes = segment[:i], segment[i:]
		}
		if name == "" && indexes == "" {
			return nil, false
		}
		if name != "" {
			steps = append(steps, step{key: name})
		}
		for indexes != "" {
			end := strings.IndexByte(indexes, ']')
			if indexes[0] != '[' || end < 0 {
				return nil, false
			}
			n, err := strconv.Atoi(indexes[1:end])
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: n, isIdx: true})
			indexes = indexes[end+1:]
		}
	}
	return steps, true
}

// format 把 JSON 数字里的整数写成不带小数点的形式。
func format(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
