package canvasrenderer

import (
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
	"github.com/PehoejiKesi/LiansipChoa/layout"
)

var (
	colorGuideNormal = canvas.Hex("#999999")
	colorGuideLight  = canvas.Hex("#dcdcdc")
	colorFooter      = canvas.Hex("#999999")
	colorTitle       = canvas.Black
)

// guideLineWidth 为练习格线宽 0.5pt（毫米）。
var guideLineWidth = float64(layout.Point(0.5).Millimeters())

func guideColor(s layout.GuideStyle) (color.Color, bool) {
	switch s {
	case layout.GuideNone:
		return nil, false
	case layout.GuideLight:
		return colorGuideLight, true
	default:
		return colorGuideNormal, true
	}
}

func textColor(c layout.TextColor) color.Color {
	switch c {
	case layout.ColorGrey:
		return canvas.Hex("#999999")
	case layout.ColorLight:
		return canvas.Hex("#dcdcdc")
	default:
		return canvas.Black
	}
}

// pageDrawer 在 (ox, oy) 处绘制一页布局元素，坐标均为毫米。
type pageDrawer struct {
	r      *Renderer
	ctx    *canvas.Context
	ox, oy float64
	target fonts.Target
	dash   float64 // 虚线段长（mm）
}

func (d *pageDrawer) drawPage(page layout.Page) error {
	for _, item := range page.Items {
		var err error
		switch it := item.(type) {
		case layout.Guide:
			d.drawGuide(it)
		case layout.Text:
			err = d.drawText(it)
		case layout.Title:
			err = d.drawTitle(it)
		case layout.Footer:
			err = d.drawFooter(it)
		default:
			err = fmt.Errorf("第 %d 页含有未知元素 %T", page.Number, item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// drawGuide 绘制一行练习格：0 与 .5 处为实线，.25 与 .75 处为虚线，两侧竖线到 .75 为止。
func (d *pageDrawer) drawGuide(g layout.Guide) {
	col, ok := guideColor(g.Style)
	if !ok {
		return
	}
	x, y := d.ox+float64(g.X), d.oy+float64(g.Y)
	w, h := float64(g.Width), float64(g.Height)

	d.ctx.SetFillColor(canvas.Transparent)
	d.ctx.SetStrokeColor(col)
	d.ctx.SetStrokeWidth(guideLineWidth)
	for i, frac := range []float64{0, 0.25, 0.5, 0.75} {
		d.line(x, y+h*frac, x+w, y+h*frac, i%2 == 1)
	}
	d.line(x, y, x, y+h*0.75, false)
	d.line(x+w, y, x+w, y+h*0.75, false)
	d.ctx.SetDashes(0)
}

func (d *pageDrawer) line(x1, y1, x2, y2 float64, dashed bool) {
	if dashed {
		d.ctx.SetDashes(0, d.dash, d.dash)
	} else {
		d.ctx.SetDashes(0)
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	d.ctx.DrawPath(x1, y1, p)
}

// drawText 绘制正文。预览按基线绘制；文档先按估算的上升部求出文字顶部，
// 再以字体面的实际上升部落到基线。
func (d *pageDrawer) drawText(t layout.Text) error {
	size := float64(t.FontSize)
	face, err := d.r.face(t.Font, float64(t.FontSize.Points()), false, textColor(t.Color))
	if err != nil {
		return err
	}
	baseline := d.oy + float64(t.Y)
	if d.target == fonts.Document {
		top := baseline - fonts.TopFromBaseline(t.Font, size, fonts.Document)
		baseline = top + face.Metrics().Ascent
	}
	d.ctx.DrawText(d.ox+float64(t.X), baseline, canvas.NewTextLine(face, t.Text, canvas.Left))
	return nil
}

// drawTitle 以测得的宽度居中绘制粗体标题，Y 为文字顶部。
func (d *pageDrawer) drawTitle(t layout.Title) error {
	face, err := d.r.face(t.Font, float64(t.FontSize.Points()), true, colorTitle)
	if err != nil {
		return err
	}
	x := d.ox + float64(t.X-t.Width/2)
	y := d.oy + float64(t.Y) + face.Metrics().Ascent
	d.ctx.DrawText(x, y, canvas.NewTextLine(face, t.Text, canvas.Left))
	return nil
}

func (d *pageDrawer) drawFooter(f layout.Footer) error {
	face, err := d.r.face(f.Font, float64(f.FontSize.Points()), false, colorFooter)
	if err != nil {
		return err
	}
	y := d.oy + float64(f.Y) + face.Metrics().Ascent
	d.ctx.DrawText(d.ox+float64(f.X), y, canvas.NewTextLine(face, f.Text, canvas.Center))
	return nil
}
