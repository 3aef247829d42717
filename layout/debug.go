package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或交给独立的渲染进程。
func WriteDebugJSON(l *Layout, path string) error {
	if l == nil {
		return nil
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON 读取 WriteDebugJSON 写出的布局。
func ReadJSON(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("读取布局 JSON 失败: %w", err)
	}
	return &l, nil
}

// MarshalJSON writes the items with a "type" discriminator.
func (p Page) MarshalJSON() ([]byte, error) {
	items := make([]taggedItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = taggedItem{item: item}
	}
	return json.Marshal(struct {
		Number int          `json:"pageNumber"`
		Items  []taggedItem `json:"items"`
	}{p.Number, items})
}

// UnmarshalJSON restores the concrete item types from their "type" field.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number int               `json:"pageNumber"`
		Items  []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make([]Item, 0, len(raw.Items))
	for i, msg := range raw.Items {
		item, err := decodeItem(msg)
		if err != nil {
			return fmt.Errorf("第 %d 页第 %d 个元素: %w", raw.Number, i+1, err)
		}
		items = append(items, item)
	}
	p.Number = raw.Number
	p.Items = items
	return nil
}

type taggedItem struct {
	item Item
}

func (t taggedItem) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(t.item)
	if err != nil {
		return nil, err
	}
	kind, err := json.Marshal(t.item.Kind())
	if err != nil {
		return nil, err
	}
	// 把 "type" 字段插在对象最前面
	out := make([]byte, 0, len(body)+len(kind)+9)
	out = append(out, `{"type":`...)
	out = append(out, kind...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	out = append(out, body[1:]...)
	return out, nil
}

func decodeItem(msg json.RawMessage) (Item, error) {
	var head struct {
		Type ItemKind `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindGuide:
		var g Guide
		err := json.Unmarshal(msg, &g)
		return g, err
	case KindText:
		var t Text
		err := json.Unmarshal(msg, &t)
		return t, err
	case KindTitle:
		var t Title
		err := json.Unmarshal(msg, &t)
		return t, err
	case KindFooter:
		var f Footer
		err := json.Unmarshal(msg, &f)
		return f, err
	default:
		return nil, fmt.Errorf("未知的元素类型 %q", head.Type)
	}
}
