package canvasrenderer

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/canvas"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
	"github.com/PehoejiKesi/LiansipChoa/layout"
)

// tracer traces with key 'liansip.render'
func tracer() tracing.Trace {
	return tracing.Select("liansip.render")
}

var (
	errNoLayout = errors.New("渲染结果为空")
	errNoPages  = errors.New("缺少可渲染的页面")
)

// Renderer owns the canvas font families built from a font registry. It
// measures text for the layout engine and is shared by the PDF and PNG
// backends so both draw with the faces that were measured.
type Renderer struct {
	fonts *fonts.Registry

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var _ layout.Measurer = (*Renderer)(nil)

// New creates a renderer reading font data from reg. A nil registry behaves
// like an empty one: every family falls back to the Go fonts.
func New(reg *fonts.Registry) *Renderer {
	if reg == nil {
		reg = fonts.NewRegistry()
	}
	return &Renderer{
		fonts:    reg,
		families: map[string]*canvas.FontFamily{},
	}
}

// Measure 实现 layout.Measurer：以 pt 字号创建字体面，量得的毫米宽度再换算为 pt。
func (r *Renderer) Measure(text string, font layout.FontSpec) (layout.Point, error) {
	if text == "" {
		return 0, nil
	}
	face, err := r.face(font.Family, float64(font.Size), font.Bold, canvas.Black)
	if err != nil {
		return 0, err
	}
	return layout.Millimeter(face.TextWidth(text)).Points(), nil
}

// face 返回指定字族与字号（pt）的字体面。
func (r *Renderer) face(family string, sizePt float64, bold bool, col color.Color) (*canvas.FontFace, error) {
	fam, err := r.family(family)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	return fam.Face(sizePt, col, style, canvas.FontNormal), nil
}

// family 懒加载字族的常规体与粗体；缺失的字体由注册表退回 Go 字体。
func (r *Renderer) family(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if fam, ok := r.families[name]; ok {
		return fam, nil
	}
	fam := canvas.NewFontFamily(name)
	for _, bold := range []bool{false, true} {
		data, fallback := r.fonts.Lookup(name, bold)
		if fallback && !bold {
			tracer().Infof("font family %q missing, drawing with Go fonts", name)
		}
		style := canvas.FontRegular
		if bold {
			style = canvas.FontBold
		}
		if err := fam.LoadFont(data, 0, style); err != nil {
			return nil, fmt.Errorf("加载字体 %q 失败: %w", name, err)
		}
	}
	r.families[name] = fam
	return fam, nil
}
