package dsl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/PehoejiKesi/LiansipChoa/binding"
	"github.com/PehoejiKesi/LiansipChoa/layout"
)

// DefaultFont 是未指定 font 时使用的字族。
const DefaultFont = "Lesson One"

// SettingError 指出工作表中出错的设置项及其位置。
type SettingError struct {
	Pos     lexer.Position
	Key     string
	Message string
}

func (e *SettingError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Key, e.Message)
}

// 枚举设置项允许的取值；键为小写。
var choices = map[string][]string{
	"paper":       {string(layout.PaperA4), string(layout.PaperA3)},
	"orientation": {string(layout.Portrait), string(layout.Landscape)},
	"mode":        {string(layout.Tracing), string(layout.Copying)},
	"following":   {string(layout.FillLines), string(layout.BlankLines)},
	"guides":      {string(layout.GuideNormal), string(layout.GuideLight), string(layout.GuideNone)},
	"color":       {string(layout.ColorBlack), string(layout.ColorGrey), "gray", string(layout.ColorLight)},
}

// Settings 把工作表转换为排版设置。data 非空时对标题与正文做 ${path} 插值。
// 未知或重复的设置项、无法识别的取值与非正的行高都会报错。
func (ws *Worksheet) Settings(data any) (layout.Settings, error) {
	s := layout.Settings{
		Paper:       layout.PaperA4,
		Orientation: layout.Portrait,
		LineHeight:  layout.DefaultLineHeight,
		FontFamily:  DefaultFont,
		Mode:        layout.Tracing,
		Following:   layout.BlankLines,
		Guides:      layout.GuideNormal,
		TextColor:   layout.ColorBlack,
	}
	if ws == nil {
		return s, fmt.Errorf("工作表为空")
	}
	seen := map[string]bool{}
	var paragraphs []string
	for _, entry := range ws.Entries {
		if entry.Text != nil {
			for _, p := range entry.Text.Paragraphs {
				paragraphs = append(paragraphs, string(p.Value))
			}
			continue
		}
		st := entry.Setting
		key := strings.ToLower(st.Key)
		if seen[key] {
			return s, &SettingError{Pos: st.Pos, Key: st.Key, Message: "重复的设置项"}
		}
		seen[key] = true
		if err := applySetting(&s, key, st); err != nil {
			return s, err
		}
	}
	s.Text = strings.Join(paragraphs, "\n")
	if data != nil {
		s.Title = binding.Interpolate(s.Title, data)
		s.Text = binding.Interpolate(s.Text, data)
	}
	return s, nil
}

func applySetting(s *layout.Settings, key string, st *Setting) error {
	raw := st.Value.Text()
	if opts, ok := choices[key]; ok {
		if !oneOf(raw, opts) {
			return &SettingError{Pos: st.Value.Pos, Key: st.Key,
				Message: fmt.Sprintf("无效的取值 %q，可选: %s", raw, strings.Join(opts, ", "))}
		}
	}
	switch key {
	case "title":
		s.Title = raw
	case "font":
		s.FontFamily = raw
	case "line-height":
		if st.Value.Number == nil {
			return &SettingError{Pos: st.Value.Pos, Key: st.Key, Message: fmt.Sprintf("行高必须是长度，实际 %q", raw)}
		}
		l, ok := layout.ParseRawLengthStr(raw)
		if !ok || l.IsZero() || l.Value < 0 {
			return &SettingError{Pos: st.Value.Pos, Key: st.Key, Message: fmt.Sprintf("无效的行高 %q", raw)}
		}
		s.LineHeight = l.ToMM()
	case "paper":
		s.Paper = layout.ParsePaperSize(raw)
	case "orientation":
		s.Orientation = layout.ParseOrientation(raw)
	case "mode":
		s.Mode = layout.ParsePracticeMode(raw)
	case "following":
		s.Following = layout.ParseTrailingLines(raw)
	case "guides":
		s.Guides = layout.ParseGuideStyle(raw)
	case "color":
		s.TextColor = layout.ParseTextColor(raw)
	default:
		return &SettingError{Pos: st.Pos, Key: st.Key, Message: "未知的设置项"}
	}
	return nil
}

func oneOf(v string, opts []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}
