package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDebugJSONCanBeReadBack(t *testing.T) {
	s := baseSettings("Hello World\nchi̍t")
	s.Title = "Liān-si̍p"
	s.Mode = Copying
	want := generate(t, s, runeMeasurer(0.5))

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(want, path); err != nil {
		t.Fatalf("写出调试 JSON 失败: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开调试 JSON 失败: %v", err)
	}
	defer f.Close()
	got, err := ReadJSON(f)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("读回的布局不一致 (-want +got):\n%s", diff)
	}
}

func TestItemsCarryTypeTag(t *testing.T) {
	p := Page{Number: 1, Items: []Item{
		Guide{X: 12, Y: 12, Width: 186, Height: 14, Style: GuideLight},
		Footer{X: 105, Y: 279, FontSize: 5, Font: FooterFont, Text: FooterText},
	}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var raw struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if raw.Items[0]["type"] != "guide" || raw.Items[0]["style"] != "light" {
		t.Fatalf("格线元素缺少类型或样式: %v", raw.Items[0])
	}
	if raw.Items[1]["type"] != "footer" {
		t.Fatalf("页脚元素缺少类型: %v", raw.Items[1])
	}
	if !bytes.HasPrefix(data, []byte(`{"pageNumber":1,"items":[{"type":"guide",`)) {
		t.Fatalf("类型字段应位于元素开头: %s", data)
	}
}

func TestReadJSONRejectsUnknownItem(t *testing.T) {
	in := `{"width":210,"height":297,"pages":[{"pageNumber":1,"items":[{"type":"stamp","x":1}]}]}`
	_, err := ReadJSON(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "stamp") {
		t.Fatalf("未知元素类型应报错，实际 %v", err)
	}
}

func TestWriteDebugJSONNilLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.json")
	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("nil 布局不应报错: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("nil 布局不应写出文件")
	}
}
