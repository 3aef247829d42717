package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
	"github.com/PehoejiKesi/LiansipChoa/layout"
	"github.com/PehoejiKesi/LiansipChoa/renderer"
)

// DefaultPreviewDPI 对应屏幕预览的两倍缩放。
const DefaultPreviewDPI = 144

var (
	previewGap        = float64(layout.Point(20).Millimeters())
	previewBackground = canvas.Hex("#eeeeee")
	previewBorder     = canvas.Hex("#cccccc")
)

// previewDash 返回在 dpi 分辨率下 5px 的虚线段长（mm）。
func previewDash(dpi float64) float64 {
	return 5 / dpi * 25.4
}

// PNG renders all pages of a layout stacked vertically into one image.
type PNG struct {
	r   *Renderer
	DPI float64
}

var _ renderer.Renderer = (*PNG)(nil)

// PNG returns the preview backend; dpi <= 0 selects DefaultPreviewDPI.
func (r *Renderer) PNG(dpi float64) *PNG {
	if dpi <= 0 {
		dpi = DefaultPreviewDPI
	}
	return &PNG{r: r, DPI: dpi}
}

// Render rasterizes the layout into PNG bytes.
func (p *PNG) Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, errNoLayout
	}
	if len(l.Pages) == 0 {
		return nil, errNoPages
	}
	pw, ph := float64(l.Width), float64(l.Height)
	n := float64(len(l.Pages))
	w := pw + 2*previewGap
	h := n*(ph+previewGap) + previewGap

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(previewBackground)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	dash := previewDash(p.DPI)
	for i, page := range l.Pages {
		oy := previewGap + float64(i)*(ph+previewGap)
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(previewBorder)
		ctx.SetStrokeWidth(guideLineWidth)
		ctx.SetDashes(0)
		ctx.DrawPath(previewGap, oy, canvas.Rectangle(pw, ph))

		d := &pageDrawer{r: p.r, ctx: ctx, ox: previewGap, oy: oy, target: fonts.Preview, dash: dash}
		if err := d.drawPage(page); err != nil {
			return nil, err
		}
	}

	img := rasterizer.Draw(c, canvas.DPMM(p.DPI/25.4), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	tracer().Debugf("png: %d page(s), %dx%d px", len(l.Pages), img.Bounds().Dx(), img.Bounds().Dy())
	return buf.Bytes(), nil
}
