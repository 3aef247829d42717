package layout

import (
	"math"
	"strings"
)

// DefaultLineHeight 是调用方在行高缺失或无效时应使用的默认值。
const DefaultLineHeight Millimeter = 14

// PaperSize 纸张尺寸。
type PaperSize string

const (
	PaperA4 PaperSize = "a4"
	PaperA3 PaperSize = "a3"
)

// Orientation 页面方向。
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PracticeMode 练习模式：描写（tracing）或抄写（copying）。
type PracticeMode string

const (
	Tracing PracticeMode = "tracing"
	Copying PracticeMode = "copying"
)

// TrailingLines 决定正文之后的剩余空间是否补满空白练习格。
type TrailingLines string

const (
	FillLines  TrailingLines = "fill"
	BlankLines TrailingLines = "blank"
)

// GuideStyle 练习格线条样式。
type GuideStyle string

const (
	GuideNormal GuideStyle = "normal"
	GuideLight  GuideStyle = "light"
	GuideNone   GuideStyle = "none"
)

// TextColor 练习文字颜色。
type TextColor string

const (
	ColorBlack TextColor = "black"
	ColorGrey  TextColor = "grey"
	ColorLight TextColor = "light"
)

// Settings 是一次排版的全部输入。引擎不会修改它。
type Settings struct {
	Text        string        `json:"text"`
	Paper       PaperSize     `json:"paperSize"`
	Orientation Orientation   `json:"orientation"`
	LineHeight  Millimeter    `json:"lineHeight"`
	FontFamily  string        `json:"fontFamily"`
	Title       string        `json:"pageTitle"`
	Mode        PracticeMode  `json:"practiceMode"`
	Following   TrailingLines `json:"followingLines"`
	Guides      GuideStyle    `json:"guideStyle"`
	TextColor   TextColor     `json:"textStyle"`
}

// WithDefaults returns a copy where every unknown token is replaced by its
// default and an absent or invalid line height becomes DefaultLineHeight.
func (s Settings) WithDefaults() Settings {
	s.Paper = ParsePaperSize(string(s.Paper))
	s.Orientation = ParseOrientation(string(s.Orientation))
	s.Mode = ParsePracticeMode(string(s.Mode))
	s.Following = ParseTrailingLines(string(s.Following))
	s.Guides = ParseGuideStyle(string(s.Guides))
	s.TextColor = ParseTextColor(string(s.TextColor))
	if !validLineHeight(s.LineHeight) {
		s.LineHeight = DefaultLineHeight
	}
	return s
}

func validLineHeight(h Millimeter) bool {
	v := float64(h)
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func token(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ParsePaperSize maps a token to a PaperSize; unknown tokens become A4.
func ParsePaperSize(v string) PaperSize {
	if token(v) == string(PaperA3) {
		return PaperA3
	}
	return PaperA4
}

// ParseOrientation maps a token to an Orientation; unknown tokens become portrait.
func ParseOrientation(v string) Orientation {
	if token(v) == string(Landscape) {
		return Landscape
	}
	return Portrait
}

// ParsePracticeMode maps a token to a PracticeMode; unknown tokens become tracing.
func ParsePracticeMode(v string) PracticeMode {
	if token(v) == string(Copying) {
		return Copying
	}
	return Tracing
}

// ParseTrailingLines maps a token to a TrailingLines policy.
// 只有 "fill" 会补满，其他值一律视为 blank。
func ParseTrailingLines(v string) TrailingLines {
	if token(v) == string(FillLines) {
		return FillLines
	}
	return BlankLines
}

// ParseGuideStyle maps a token to a GuideStyle; unknown tokens become normal.
func ParseGuideStyle(v string) GuideStyle {
	switch GuideStyle(token(v)) {
	case GuideLight:
		return GuideLight
	case GuideNone:
		return GuideNone
	default:
		return GuideNormal
	}
}

// ParseTextColor maps a token to a TextColor; unknown tokens become black.
func ParseTextColor(v string) TextColor {
	switch TextColor(token(v)) {
	case ColorGrey, "gray":
		return ColorGrey
	case ColorLight:
		return ColorLight
	default:
		return ColorBlack
	}
}

// paperDimensions 返回按方向调整后的纸张宽高。
func paperDimensions(size PaperSize, orientation Orientation) (Millimeter, Millimeter) {
	base, ok := paperPresets[ParsePaperSize(string(size))]
	if !ok {
		base = paperPresets[PaperA4]
	}
	width, height := base[0], base[1]
	if ParseOrientation(string(orientation)) == Landscape {
		width, height = height, width
	}
	return width, height
}

var paperPresets = map[PaperSize][2]Millimeter{
	PaperA4: {210, 297},
	PaperA3: {297, 420},
}
