package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
	"github.com/PehoejiKesi/LiansipChoa/layout"
	"github.com/PehoejiKesi/LiansipChoa/renderer"
)

// DefaultPrefix 是生成文件名的默认前缀。
const DefaultPrefix = "POJ_LiansipChoa"

// documentDash 为文档中虚线的段长，2pt。
var documentDash = float64(layout.Point(2).Millimeters())

// DocumentInfo is written into the PDF document information dictionary.
// An empty Title is taken from the first title item of the layout.
type DocumentInfo struct {
	Title   string
	Subject string
	Creator string
}

// PDF renders a layout as a printable document, one PDF page per layout page.
type PDF struct {
	r    *Renderer
	Info DocumentInfo
}

var _ renderer.Renderer = (*PDF)(nil)

// PDF returns the document backend drawing with r's fonts.
func (r *Renderer) PDF(info DocumentInfo) *PDF {
	return &PDF{r: r, Info: info}
}

// Render renders the layout into a PDF byte slice.
func (p *PDF) Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, errNoLayout
	}
	if len(l.Pages) == 0 {
		return nil, errNoPages
	}
	w, h := float64(l.Width), float64(l.Height)

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	p.applyMeta(writer, l)
	for i, page := range l.Pages {
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		d := &pageDrawer{r: p.r, ctx: ctx, target: fonts.Document, dash: documentDash}
		if err := d.drawPage(page); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	tracer().Debugf("pdf: %d page(s), %d bytes", len(l.Pages), buf.Len())
	return buf.Bytes(), nil
}

func (p *PDF) applyMeta(writer *pdf.PDF, l *layout.Layout) {
	title := p.Info.Title
	if title == "" {
		title = firstTitle(l)
	}
	writer.SetInfo(title, p.Info.Subject, "", "", p.Info.Creator)
}

func firstTitle(l *layout.Layout) string {
	for _, page := range l.Pages {
		for _, item := range page.Items {
			if t, ok := item.(layout.Title); ok {
				return t.Text
			}
		}
	}
	return ""
}

var unsafeNameChars = strings.NewReplacer(
	"/", "-", `\`, "-", "?", "-", "%", "-", "*", "-",
	":", "-", "|", "-", `"`, "-", "<", "-", ">", "-",
)

// DocumentName 返回下载用的 PDF 文件名，例如 "POJ_LiansipChoa_Bó-im.pdf"。
func DocumentName(title string) string {
	return FileName(DefaultPrefix, title, ".pdf")
}

// FileName 拼接前缀与清理后的标题；标题为空时只用前缀。
func FileName(prefix, title, ext string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	name := prefix
	if t := strings.TrimSpace(title); t != "" {
		name += "_" + unsafeNameChars.Replace(t)
	}
	return name + ext
}
