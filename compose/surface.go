// Package compose 把背景、叠加层与遮罩合成为最终的桌垫图像。
package compose

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/ByLCY/playmat/icons"
	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
)

// 合成与画笔的默认值及取值范围。
const (
	DefaultBackground     = "#1f2233"
	DefaultOverlayColor   = "#c89b3c"
	DefaultOverlayOpacity = 0.85
	DefaultBrushSize      = 40.0
	DefaultFadeOpacity    = 0.4

	MinBrushSize   = 5.0
	MaxBrushSize   = 200.0
	MinFadeOpacity = 0.05
)

// Surface 是与桌垫等大的合成画布。
type Surface struct {
	width, height int
	background    color.RGBA
	backdrop      *image.RGBA // 按 cover 方式缩放好的背景图，nil 表示使用纯色
	overlay       image.Image
	opacity       float64
	showOverlay   bool
	mask          *Mask
}

// NewSurface 创建合成画布：纯色背景 #1f2233，叠加层不透明度 0.85，默认显示叠加层。
func NewSurface(size mat.Size) *Surface {
	w, h := max(size.Width, 1), max(size.Height, 1)
	bg, _ := layout.ParseColor(DefaultBackground)
	return &Surface{
		width:       w,
		height:      h,
		background:  rgba(bg),
		opacity:     DefaultOverlayOpacity,
		showOverlay: true,
		mask:        NewMask(w, h),
	}
}

// Size 返回画布尺寸。
func (s *Surface) Size() mat.Size { return mat.Size{Width: s.width, Height: s.height} }

// Mask 返回遮罩，画笔操作直接作用于它。
func (s *Surface) Mask() *Mask { return s.mask }

// SetBackgroundImage 以 cover 方式铺满画布并居中裁切；nil 恢复纯色背景。
func (s *Surface) SetBackgroundImage(img image.Image) {
	if img == nil || img.Bounds().Empty() {
		s.backdrop = nil
		return
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, CoverRect(b.Dx(), b.Dy(), s.width, s.height), img, b, draw.Src, nil)
	s.backdrop = dst
}

// SetBackgroundColor 设置纯色背景；无法解析时返回错误并保留原颜色。
func (s *Surface) SetBackgroundColor(value string) error {
	c, err := layout.ParseColor(value)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	s.background = rgba(c)
	return nil
}

// SetOverlay 设置叠加层图像（通常为渲染器输出的透明 PNG）。
func (s *Surface) SetOverlay(img image.Image) { s.overlay = img }

// SetOverlayOpacity 设置叠加层整体不透明度，限制在 [0,1]。
func (s *Surface) SetOverlayOpacity(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.opacity = math.Max(0, math.Min(1, v))
}

// SetShowOverlay 控制是否显示叠加层。
func (s *Surface) SetShowOverlay(show bool) { s.showOverlay = show }

// Paint 在遮罩上画一笔。画笔大小限制在 [5,200]，淡化强度限制在 [0.05,1]。
func (s *Surface) Paint(tool Tool, from, to Point, brushSize, fadeOpacity float64) {
	brushSize = math.Max(MinBrushSize, math.Min(MaxBrushSize, brushSize))
	fadeOpacity = math.Max(MinFadeOpacity, math.Min(1, fadeOpacity))
	s.mask.Paint(tool, from, to, brushSize, fadeOpacity)
}

// Composite 先画背景，再以 overlay × (1 − mask) × opacity 叠加。
func (s *Surface) Composite() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if s.backdrop != nil {
		draw.Draw(out, out.Bounds(), s.backdrop, image.Point{}, draw.Src)
	} else {
		draw.Draw(out, out.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	}
	if !s.showOverlay || s.overlay == nil {
		return out
	}

	weight := image.NewAlpha(out.Bounds())
	for i, m := range s.mask.alpha.Pix {
		weight.Pix[i] = uint8(math.Round(float64(255-m) * s.opacity))
	}
	draw.DrawMask(out, out.Bounds(), s.overlay, s.overlay.Bounds().Min, weight, image.Point{}, draw.Over)
	return out
}

// ExportPNG 把合成结果编码为 PNG，尺寸与桌垫一致。
func (s *Surface) ExportPNG(w io.Writer) error {
	if err := png.Encode(w, s.Composite()); err != nil {
		return fmt.Errorf("compose: 编码 PNG 失败: %w", err)
	}
	return nil
}

// CoverRect 计算 srcW×srcH 的图像按 cover 方式放入 dstW×dstH 时的目标矩形（可能超出画布）。
func CoverRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 {
		return image.Rectangle{}
	}
	scale := math.Max(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w := float64(srcW) * scale
	h := float64(srcH) * scale
	x := (float64(dstW) - w) / 2
	y := (float64(dstH) - h) / 2
	return image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
}

// LoadImage 读取 png/jpeg/gif 文件，也接受 data:image/... URL。
func LoadImage(path string) (image.Image, error) {
	if strings.HasPrefix(path, "data:") {
		return icons.DecodeImage(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开图片 %s 失败: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	return img, nil
}

func rgba(c layout.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}
