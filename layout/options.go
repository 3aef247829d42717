package layout

// FontSpec 描述一次测量所用的字体：字族、字号（pt）与是否加粗。
type FontSpec struct {
	Family string
	Size   Point
	Bold   bool
}

// Measurer 返回字符串在给定字体下的前进宽度，单位与字号相同（pt）。
// 排版引擎只通过它获取宽度，并立即换算回毫米。
type Measurer interface {
	Measure(text string, font FontSpec) (Point, error)
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(text string, font FontSpec) (Point, error)

// Measure calls f(text, font).
func (f MeasureFunc) Measure(text string, font FontSpec) (Point, error) {
	return f(text, font)
}
