package layout

import (
	"math"

	"github.com/ByLCY/playmat/mat"
)

// 布局单位即输出像素。渲染器以 1 单位 = 1mm 建画布并按 DPMM(1) 光栅化，
// 因此字体系统需要的 pt 由像素按毫米换算得到。

// Conversion constants between pt and layout units.
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// ToPt converts a pixel font size to points.
func ToPt(px float64) float64 { return px * PxToPt }

// ToPx converts points back to pixels.
func ToPx(pt float64) float64 { return pt * PtToPx }

// roundHalf 按 JS Math.round 的方式取整（.5 向正无穷）。
func roundHalf(v float64) float64 {
	return math.Floor(v + 0.5)
}

// clamp 把 v 限制在 [lo, hi]，NaN 取 lo。
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// finiteOr 在 v 为 NaN/±Inf 时返回 def。
func finiteOr(v, def float64) float64 {
	if mat.IsFinite(v) {
		return v
	}
	return def
}

// finitePtr 解引用可选数值；空指针或非有限值视为未设置。
func finitePtr(p *float64) (float64, bool) {
	if p == nil || !mat.IsFinite(*p) {
		return 0, false
	}
	return *p, true
}
