package compose

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Tool 是遮罩画笔工具。
type Tool int

const (
	ToolNone Tool = iota
	ToolEraser
	ToolFade
	ToolRestore
)

var toolNames = map[string]Tool{
	"none":    ToolNone,
	"eraser":  ToolEraser,
	"fade":    ToolFade,
	"restore": ToolRestore,
}

// ParseTool 解析工具名称（none / eraser / fade / restore）。
func ParseTool(name string) (Tool, error) {
	tool, ok := toolNames[name]
	if !ok {
		return ToolNone, fmt.Errorf("compose: 未知的画笔工具 %q", name)
	}
	return tool, nil
}

// Point 是画布像素坐标。
type Point struct {
	X, Y float64
}

// Mask 记录每个像素对叠加层的遮挡程度：0 表示完全显示，255 表示完全擦除。
type Mask struct {
	alpha *image.Alpha
}

// NewMask 创建与画布等大的空遮罩。
func NewMask(width, height int) *Mask {
	return &Mask{alpha: image.NewAlpha(image.Rect(0, 0, max(width, 1), max(height, 1)))}
}

// Bounds 返回遮罩范围。
func (m *Mask) Bounds() image.Rectangle { return m.alpha.Bounds() }

// Value 返回 (x, y) 处的遮挡程度（0..1）。
func (m *Mask) Value(x, y int) float64 {
	return float64(m.alpha.AlphaAt(x, y).A) / 255
}

// Clear 清空遮罩，叠加层恢复完整显示。
func (m *Mask) Clear() {
	clear(m.alpha.Pix)
}

// Paint 沿 from -> to 画一笔圆头线段，线宽为 brushSize。
// Eraser 以不透明度 1 叠加，Fade 以 fadeOpacity 叠加（source-over），
// Restore 按覆盖率削减已有遮挡（destination-out）。
func (m *Mask) Paint(tool Tool, from, to Point, brushSize, fadeOpacity float64) {
	if tool == ToolNone || !(brushSize > 0) {
		return
	}
	r := brushSize / 2
	area := image.Rect(
		int(math.Floor(math.Min(from.X, to.X)-r))-1,
		int(math.Floor(math.Min(from.Y, to.Y)-r))-1,
		int(math.Ceil(math.Max(from.X, to.X)+r))+1,
		int(math.Ceil(math.Max(from.Y, to.Y)+r))+1,
	).Intersect(m.alpha.Bounds())
	if area.Empty() {
		return
	}

	offset := Point{X: float64(area.Min.X), Y: float64(area.Min.Y)}
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	capsule(z, sub(from, offset), sub(to, offset), r)
	coverage := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	strength := 1.0
	if tool == ToolFade {
		strength = math.Max(0, math.Min(1, fadeOpacity))
	}
	for y := 0; y < area.Dy(); y++ {
		for x := 0; x < area.Dx(); x++ {
			cov := float64(coverage.Pix[y*coverage.Stride+x]) / 255
			if cov == 0 {
				continue
			}
			i := m.alpha.PixOffset(area.Min.X+x, area.Min.Y+y)
			dst := float64(m.alpha.Pix[i]) / 255
			switch tool {
			case ToolEraser, ToolFade:
				src := cov * strength
				dst = src + dst*(1-src)
			case ToolRestore:
				dst *= 1 - cov
			}
			m.alpha.Pix[i] = uint8(math.Round(dst * 255))
		}
	}
}

func sub(p, q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// capsule 构造线段 a-b 外扩 r 的闭合轮廓：b 端半圆接 a 端半圆，a == b 时即为整圆。
func capsule(z *vector.Rasterizer, a, b Point, r float64) {
	const steps = 24
	theta := math.Atan2(b.Y-a.Y, b.X-a.X)
	first := true
	arc := func(c Point, start float64) {
		for i := 0; i <= steps; i++ {
			ang := start + math.Pi*float64(i)/steps
			x, y := float32(c.X+r*math.Cos(ang)), float32(c.Y+r*math.Sin(ang))
			if first {
				z.MoveTo(x, y)
				first = false
				continue
			}
			z.LineTo(x, y)
		}
	}
	arc(b, theta-math.Pi/2)
	arc(a, theta+math.Pi/2)
	z.ClosePath()
}
