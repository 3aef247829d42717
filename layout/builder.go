package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 版面常量。
const (
	PageMargin        Millimeter = 12
	FooterFontSize    Point      = 16
	FooterClearance   Millimeter = 5
	RowGap            Millimeter = 0.5
	TextPadding       Millimeter = 2
	TitleFontSize     Point      = 32
	TitleBottomMargin Millimeter = 10

	// BodyFontRatio 让正文字形落在第 1 与第 3 条格线之间。
	BodyFontRatio = 0.5
	// MaxFillRows 限制每页补满的空白行数，防止行高过小时死循环。
	MaxFillRows = 100

	FooterText = "kesi.poj.tw © Tâi-bûn Ke-si Mī"
	FooterFont = "Iansui"
)

var (
	ErrNoMeasurer        = errors.New("layout: 缺少测量接口 Measurer")
	ErrInvalidLineHeight = errors.New("layout: 行高必须为有限正数")
	ErrMeasurement       = errors.New("layout: 文本测量失败")
)

// Generate 根据设置计算练习纸的分页布局。
// 宽度只通过 m 获取；相同输入与确定性的 m 总是得到相同的结果。
func Generate(settings Settings, m Measurer) (*Layout, error) {
	if m == nil {
		return nil, ErrNoMeasurer
	}
	if !validLineHeight(settings.LineHeight) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidLineHeight, float64(settings.LineHeight))
	}
	settings = settings.WithDefaults()

	geo := newGeometry(settings)
	ms := measurer{port: m}
	title, err := placeTitle(settings.Title, settings.FontFamily, geo, ms)
	if err != nil {
		return nil, err
	}

	b := &builder{
		settings:  settings,
		geo:       geo,
		measure:   ms,
		bodyFont:  FontSpec{Family: settings.FontFamily, Size: geo.bodyFont.Points()},
		collector: newPageCollector(geo, title),
	}
	for _, paragraph := range splitParagraphs(norm.NFC.String(settings.Text)) {
		if err := b.addParagraph(paragraph); err != nil {
			return nil, err
		}
	}
	b.fillTrailing()

	pages := b.collector.finish()
	tracer().Debugf("layout: %d page(s), %gx%gmm, row %gmm", len(pages), float64(geo.width), float64(geo.height), float64(geo.rowHeight))
	return &Layout{
		Width:  geo.width,
		Height: geo.height,
		Pages:  pages,
	}, nil
}

// geometry 保存一次排版中由设置推导出的尺寸。
type geometry struct {
	width        Millimeter
	height       Millimeter
	contentWidth Millimeter
	textWidth    Millimeter // 正文可用宽度（扣除左右内边距）
	footerFont   Millimeter
	footerY      Millimeter
	maxContentY  Millimeter
	gridHeight   Millimeter
	rowHeight    Millimeter
	bodyFont     Millimeter
}

func newGeometry(s Settings) geometry {
	width, height := paperDimensions(s.Paper, s.Orientation)
	footerFont := FooterFontSize.Millimeters()
	footerY := height - PageMargin - footerFont
	contentWidth := width - 2*PageMargin
	return geometry{
		width:        width,
		height:       height,
		contentWidth: contentWidth,
		textWidth:    contentWidth - 2*TextPadding,
		footerFont:   footerFont,
		footerY:      footerY,
		maxContentY:  footerY - FooterClearance,
		gridHeight:   s.LineHeight,
		rowHeight:    s.LineHeight + RowGap,
		bodyFont:     s.LineHeight * BodyFontRatio,
	}
}

// measurer 把测量接口返回的 pt 宽度换算为毫米，并拒绝非有限值。
type measurer struct {
	port Measurer
}

func (m measurer) width(text string, font FontSpec) (Millimeter, error) {
	w, err := m.port.Measure(text, font)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrMeasurement, text, err)
	}
	if math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
		return 0, fmt.Errorf("%w %q: 宽度 %g 不是有限值", ErrMeasurement, text, float64(w))
	}
	return w.Millimeters(), nil
}

// titlePlacement 记录每页重复使用的标题元素与正文起始位置。
type titlePlacement struct {
	item    *Title
	bodyTop Millimeter
}

// placeTitle 测量标题；超出内容宽度时按比例缩小一次并重新测量一次。
// 字宽与字号并非严格线性，缩小后的宽度只是近似值，这里不再迭代。
func placeTitle(text, family string, geo geometry, m measurer) (titlePlacement, error) {
	if strings.TrimSpace(text) == "" {
		return titlePlacement{bodyTop: PageMargin}, nil
	}
	size := TitleFontSize.Millimeters()
	width, err := m.width(text, FontSpec{Family: family, Size: size.Points(), Bold: true})
	if err != nil {
		return titlePlacement{}, err
	}
	if width > geo.contentWidth {
		size = Millimeter(float64(size) * float64(geo.contentWidth) / float64(width))
		width, err = m.width(text, FontSpec{Family: family, Size: size.Points(), Bold: true})
		if err != nil {
			return titlePlacement{}, err
		}
	}
	title := &Title{
		X:        geo.width / 2,
		Y:        PageMargin,
		Width:    width,
		FontSize: size,
		Font:     family,
		Text:     text,
	}
	return titlePlacement{item: title, bodyTop: title.Y + size + TitleBottomMargin}, nil
}

type builder struct {
	settings  Settings
	geo       geometry
	measure   measurer
	bodyFont  FontSpec
	collector *pageCollector
}

// addParagraph 按空格分词并贪心折行。空白段落产生一行空白练习格。
func (b *builder) addParagraph(paragraph string) error {
	if strings.TrimSpace(paragraph) == "" {
		b.placeRow("")
		return nil
	}
	// 只按单个空格切分，连续空格会留下空词，从而在拼接时原样保留。
	var held []string
	for _, word := range strings.Split(paragraph, " ") {
		candidate := word
		if len(held) > 0 {
			candidate = strings.Join(held, " ") + " " + word
		}
		w, err := b.measure.width(candidate, b.bodyFont)
		if err != nil {
			return err
		}
		if w > b.geo.textWidth && len(held) > 0 {
			b.placeLine(strings.Join(held, " "))
			held = []string{word}
			continue
		}
		held = append(held, word)
	}
	if len(held) > 0 {
		b.placeLine(strings.Join(held, " "))
	}
	return nil
}

// placeLine 放置一行文字；抄写模式下紧跟一行空白格。
func (b *builder) placeLine(line string) {
	b.placeRow(line)
	if b.settings.Mode == Copying {
		b.placeRow("")
	}
}

func (b *builder) placeRow(line string) {
	b.collector.ensureSpace()
	b.collector.addRow(line, b.settings)
}

// fillTrailing 在 fill 策略（或当前页仍为空）时用空白格补满当前页。
func (b *builder) fillTrailing() {
	if b.settings.Following != FillLines && len(b.collector.curr().items) > 0 {
		return
	}
	for n := 0; n < MaxFillRows && b.collector.fits(); n++ {
		b.collector.addRow("", b.settings)
	}
}

// splitParagraphs 按换行拆分段落，兼容 \r\n 与单独的 \r。
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

type pageAccumulator struct {
	number int
	items  []Item
	rows   int
}

func (p *pageAccumulator) appendItem(item Item) {
	p.items = append(p.items, item)
}

func (p *pageAccumulator) page() Page {
	return Page{Number: p.number, Items: p.items}
}

type pageCollector struct {
	geo     geometry
	title   titlePlacement
	done    []*pageAccumulator
	current *pageAccumulator
	cursorY Millimeter
}

func newPageCollector(geo geometry, title titlePlacement) *pageCollector {
	pc := &pageCollector{geo: geo, title: title}
	pc.newPage()
	return pc
}

// newPage 开始新的一页，放置标题并把游标移到正文顶部。
func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{number: len(pc.done) + 1}
	if pc.title.item != nil {
		acc.appendItem(*pc.title.item)
	}
	pc.current = acc
	pc.cursorY = pc.title.bodyTop
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if pc.current == nil {
		return pc.newPage()
	}
	return pc.current
}

// fits 判断下一行是否还能放进内容区域。
func (pc *pageCollector) fits() bool {
	return pc.cursorY+pc.geo.rowHeight <= pc.geo.maxContentY
}

// ensureSpace 在下一行放不下时换页。尚无任何行的页面不会被关闭：
// 即使新页也放不下一行，这一行仍然放在当前页上（允许溢出）。
func (pc *pageCollector) ensureSpace() {
	if pc.fits() || pc.curr().rows == 0 {
		return
	}
	pc.pageBreak()
}

func (pc *pageCollector) pageBreak() {
	pc.done = append(pc.done, pc.curr())
	pc.newPage()
}

// addRow 在游标处放置一行练习格，line 非空时附带文字。
func (pc *pageCollector) addRow(line string, s Settings) {
	acc := pc.curr()
	acc.appendItem(Guide{
		X:      PageMargin,
		Y:      pc.cursorY,
		Width:  pc.geo.contentWidth,
		Height: pc.geo.gridHeight,
		Style:  s.Guides,
	})
	if line != "" {
		acc.appendItem(Text{
			X:        PageMargin + TextPadding,
			Y:        pc.cursorY + pc.geo.gridHeight*0.5,
			FontSize: pc.geo.bodyFont,
			Font:     s.FontFamily,
			Color:    s.TextColor,
			Text:     line,
			Align:    "left",
		})
	}
	acc.rows++
	pc.cursorY += pc.geo.rowHeight
}

// finish 收尾：保留非空的当前页（或在没有任何页面时保留它），
// 再为每一页追加页脚。
func (pc *pageCollector) finish() []Page {
	accs := pc.done
	if cur := pc.curr(); len(cur.items) > 0 || len(accs) == 0 {
		accs = append(accs, cur)
	}
	out := make([]Page, len(accs))
	for i, acc := range accs {
		acc.appendItem(Footer{
			X:        pc.geo.width / 2,
			Y:        pc.geo.footerY,
			FontSize: pc.geo.footerFont,
			Font:     FooterFont,
			Text:     FooterText,
		})
		out[i] = acc.page()
	}
	return out
}
