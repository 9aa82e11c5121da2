package renderer

import "github.com/ByLCY/papyrus-table/layout"

// Renderer 是可输出为文件的绘制表面：布局通过 layout.Surface 测量并绘制，
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	layout.Surface
	Render() ([]byte, error)
}
