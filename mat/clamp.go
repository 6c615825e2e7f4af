package mat

import "math"

// 编辑边界上的数值钳制：非法输入静默纠正，从不作为错误向上传播。

// 网格尺寸上下限。
const (
	MinGrid = 1
	MaxGrid = 60
)

// ClampInt 将 v 限制在 [lo, hi]。
func ClampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat 将 v 限制在 [lo, hi]，NaN 取 lo。
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampGrid 钳制网格列数与行数。
func ClampGrid(cols, rows int) (int, int) {
	return ClampInt(cols, MinGrid, MaxGrid), ClampInt(rows, MinGrid, MaxGrid)
}

// Clamp 把区域的起止位置收进 cols×rows 网格：起点 ≥1，且 start+span-1 不越界。
func (z Zone) Clamp(cols, rows int) Zone {
	out := z
	out.ColStart = ClampInt(z.ColStart, 1, cols)
	out.ColSpan = ClampInt(z.ColSpan, 1, cols-out.ColStart+1)
	out.RowStart = ClampInt(z.RowStart, 1, rows)
	out.RowSpan = ClampInt(z.RowSpan, 1, rows-out.RowStart+1)
	return out
}

// WithGrid 修改网格尺寸，同时钳制所有区域与行权重。
// rowHeights 长度与新行数不一致时被丢弃（退回均分）。
func (c Configuration) WithGrid(cols, rows int) Configuration {
	out := c.Clone()
	out.GridCols, out.GridRows = ClampGrid(cols, rows)
	for i := range out.Zones {
		out.Zones[i] = out.Zones[i].Clamp(out.GridCols, out.GridRows)
	}
	if len(out.RowHeights) != out.GridRows {
		out.RowHeights = nil
	}
	return out
}

// ZoneByID 查找区域，返回下标；不存在时为 -1。
func (c Configuration) ZoneByID(id string) (Zone, int) {
	for i, z := range c.Zones {
		if z.ID == id {
			return z, i
		}
	}
	return Zone{}, -1
}
