package layout

import (
	"strconv"
	"strings"
)

// 本文件定义带单位的长度类型。排版引擎内部一律使用毫米，
// 测量接口与渲染器使用点（pt），两者只能通过这里的方法互换。

// Conversion constants between pt and mm.
const (
	MmToPt = 72.0 / 25.4
	PtToMm = 25.4 / 72.0
)

// Millimeter 表示以毫米为单位的长度。
type Millimeter float64

// Point 表示以点（1/72 inch）为单位的长度。
type Point float64

// Points converts m to points.
func (m Millimeter) Points() Point { return Point(float64(m) * MmToPt) }

// Pixels converts m to device pixels at the given resolution.
func (m Millimeter) Pixels(dpi float64) float64 { return float64(m) / 25.4 * dpi }

// Millimeters converts p to millimeters.
func (p Point) Millimeters() Millimeter { return Millimeter(float64(p) * PtToMm) }

// Unit represents the original unit of a length value as written in a worksheet file.
type Unit int

const (
	UnitNone Unit = iota // 无单位数字，按毫米处理
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToMM converts the length to millimeters. Unit-less values are taken as millimeters.
func (l Length) ToMM() Millimeter {
	switch l.Unit {
	case UnitCM:
		return Millimeter(l.Value * 10)
	case UnitIN:
		return Millimeter(l.Value * 25.4)
	case UnitPT:
		return Point(l.Value).Millimeters()
	default:
		return Millimeter(l.Value)
	}
}

// ToPT converts the length to points.
func (l Length) ToPT() Point {
	if l.Unit == UnitPT {
		return Point(l.Value)
	}
	return l.ToMM().Points()
}

// ParseRawLengthStr parses a length string such as "14mm" or "0.5in" preserving its unit.
// ok 为 false 表示数值部分无法解析。
func ParseRawLengthStr(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
