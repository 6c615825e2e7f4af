package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// minTargetSize 是百分比矩形的最小宽高，避免退化的绘制目标。
const minTargetSize = 8.0

// Rows 是行带划分结果，Starts 相对于可绘制区域顶部。
type Rows struct {
	Starts  []float64 `json:"starts"`
	Heights []float64 `json:"heights"`
}

// Span 返回 [first, first+n) 这些行的顶部与总高度；越界部分被忽略。
func (r Rows) Span(first, n int) (top, height float64) {
	if first < 0 || first >= len(r.Starts) {
		return 0, 0
	}
	end := min(max(first+n, first), len(r.Heights))
	return r.Starts[first], floats.Sum(r.Heights[first:end])
}

// DistributeRows 把 height 分给 gridRows 行。weights 缺失、长度不符或总和非正时均分，
// 否则按权重比例分配（权重总和任意）。
func DistributeRows(gridRows int, weights []float64, height float64) Rows {
	if gridRows < 1 {
		gridRows = 1
	}
	heights := make([]float64, gridRows)
	total := 0.0
	if len(weights) == gridRows {
		total = floats.Sum(weights)
	}
	if len(weights) == gridRows && total > 0 && !math.IsInf(total, 0) && validWeights(weights) {
		for i, w := range weights {
			heights[i] = w / total * height
		}
	} else {
		for i := range heights {
			heights[i] = height / float64(gridRows)
		}
	}
	starts := make([]float64, gridRows)
	y := 0.0
	for i, h := range heights {
		starts[i] = y
		y += h
	}
	return Rows{Starts: starts, Heights: heights}
}

func validWeights(weights []float64) bool {
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return false
		}
	}
	return true
}

// PercentRect 把相对 (x, y, w, h) 的百分比映射到像素矩形。
// 每个百分比先被限制在 [0,100]，宽高不小于 8px。
func PercentRect(x, y, w, h, xPct, yPct, wPct, hPct float64) Rect {
	return Rect{
		X:      x + w*clamp01(xPct/100),
		Y:      y + h*clamp01(yPct/100),
		Width:  math.Max(minTargetSize, w*clamp01(wPct/100)),
		Height: math.Max(minTargetSize, h*clamp01(hPct/100)),
	}
}
