package layout

// 该文件定义排版结果，供预览渲染、文档渲染与调试 JSON 共用。
// 所有坐标均为毫米，原点在页面左上角。

// Layout 保存页面尺寸（已按方向调整）与排好的页面。
type Layout struct {
	Width  Millimeter `json:"width"`
	Height Millimeter `json:"height"`
	Pages  []Page     `json:"pages"`
}

// Page 记录页码（从 1 开始）与按绘制顺序排列的元素。
type Page struct {
	Number int    `json:"pageNumber"`
	Items  []Item `json:"items"`
}

// ItemKind 是元素类型的标签。
type ItemKind string

const (
	KindGuide  ItemKind = "guide"
	KindText   ItemKind = "text"
	KindTitle  ItemKind = "title"
	KindFooter ItemKind = "footer"
)

// Item 是页面元素的联合类型，只有 Guide、Text、Title、Footer 四种实现。
type Item interface {
	Kind() ItemKind
	isItem()
}

// Guide 是一行练习格：四条横线分别位于高度的 0、.25、.5、.75 处，
// 两条竖线从 0 延伸到 .75。
type Guide struct {
	X      Millimeter `json:"x"`
	Y      Millimeter `json:"y"`
	Width  Millimeter `json:"width"`
	Height Millimeter `json:"height"`
	Style  GuideStyle `json:"style"`
}

// Text 是一行练习文字，Y 为基线位置。
type Text struct {
	X        Millimeter `json:"x"`
	Y        Millimeter `json:"y"`
	FontSize Millimeter `json:"fontSize"`
	Font     string     `json:"font"`
	Color    TextColor  `json:"color"`
	Text     string     `json:"text"`
	Align    string     `json:"align"`
}

// Title 是每页重复的标题，X 为水平中心，Y 为顶部；
// Width 为自动缩小后实际测得的宽度。
type Title struct {
	X        Millimeter `json:"x"`
	Y        Millimeter `json:"y"`
	Width    Millimeter `json:"width"`
	FontSize Millimeter `json:"fontSize"`
	Font     string     `json:"font"`
	Text     string     `json:"text"`
}

// Footer 是每页底部的固定署名，X 为水平中心，Y 为顶部。
type Footer struct {
	X        Millimeter `json:"x"`
	Y        Millimeter `json:"y"`
	FontSize Millimeter `json:"fontSize"`
	Font     string     `json:"font"`
	Text     string     `json:"text"`
}

func (Guide) Kind() ItemKind  { return KindGuide }
func (Text) Kind() ItemKind   { return KindText }
func (Title) Kind() ItemKind  { return KindTitle }
func (Footer) Kind() ItemKind { return KindFooter }

func (Guide) isItem()  {}
func (Text) isItem()   {}
func (Title) isItem()  {}
func (Footer) isItem() {}

var (
	_ Item = Guide{}
	_ Item = Text{}
	_ Item = Title{}
	_ Item = Footer{}
)
