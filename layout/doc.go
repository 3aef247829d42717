/*
Package layout turns practice text and worksheet settings into positioned
guide rows, text runs, titles and footers grouped into pages.

The engine works in millimeters only. Advance widths are obtained from an
injected Measurer (in points) and converted back immediately; the package
holds no global state and never looks at fonts or rendering targets itself.
*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'liansip.layout'
func tracer() tracing.Trace {
	return tracing.Select("liansip.layout")
}
