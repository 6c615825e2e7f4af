package renderer

import "github.com/ByLCY/playmat/layout"

// Renderer 将布局结果输出为最终文件（目前为 PNG 图像）。
// Render 返回编码后的字节以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
