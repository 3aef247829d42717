package renderer

import "github.com/PehoejiKesi/LiansipChoa/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或预览图。
// Render 只遍历布局中的元素，不做任何排版决定。
type Renderer interface {
	Render(l *layout.Layout) ([]byte, error)
}
