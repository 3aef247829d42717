package fonts

// Target 区分渲染目标：预览图按精确基线绘制，文档按估算的上升部定位。
type Target int

const (
	Preview Target = iota
	Document
)

// AscentRatio 是文档目标估算上升部时使用的字号比例。
const AscentRatio = 0.85

// DefaultCorrection 用于未登记在表中的字族。
const DefaultCorrection = 0.95

var documentCorrections = map[string]float64{
	"Lesson One":  1.27,
	"Open Huninn": 1.00,
	"Iansui":      1.12,
	"Chiayi City": 1.36,
}

// Correction 返回 family 在 target 上的基线修正系数。预览目标总是 1。
func Correction(family string, target Target) float64 {
	if target != Document {
		return 1
	}
	if f, ok := documentCorrections[family]; ok {
		return f
	}
	return DefaultCorrection
}

// TopFromBaseline 返回文档目标下文字顶部相对基线的偏移（与字号同单位）。
func TopFromBaseline(family string, size float64, target Target) float64 {
	return size * AscentRatio * Correction(family, target)
}
