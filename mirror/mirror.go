// Package mirror 负责双人桌垫的镜像同步：对一侧区域或计分轨道的修改
// 按几何、朝向、内容三条独立规则传播到对侧。
package mirror

import (
	"strings"

	"github.com/ByLCY/playmat/mat"
)

// 镜像配对使用的 ID 前缀。
const (
	PrefixP1 = "p1_"
	PrefixP2 = "p2_"
)

// MirrorID 交换 p1_/p2_ 前缀；没有前缀时 ok 为 false。
func MirrorID(id string) (string, bool) {
	if rest, found := strings.CutPrefix(id, PrefixP1); found {
		return PrefixP2 + rest, true
	}
	if rest, found := strings.CutPrefix(id, PrefixP2); found {
		return PrefixP1 + rest, true
	}
	return "", false
}

// IsMirroredPair 当且仅当至少有一个 p1_ 区域和一个 p2_ 区域时为 true。
func IsMirroredPair(zones []mat.Zone) bool {
	var p1, p2 bool
	for _, z := range zones {
		p1 = p1 || strings.HasPrefix(z.ID, PrefixP1)
		p2 = p2 || strings.HasPrefix(z.ID, PrefixP2)
	}
	return p1 && p2
}

// MirrorPosition 位置交换表：left↔right，center-left↔center-right，其余原样返回。
func MirrorPosition(position string) string {
	switch position {
	case mat.PositionLeft:
		return mat.PositionRight
	case mat.PositionRight:
		return mat.PositionLeft
	case mat.PositionCenterLeft:
		return mat.PositionCenterRight
	case mat.PositionCenterRight:
		return mat.PositionCenterLeft
	default:
		return position
	}
}

// MirroredGeometry 把区域在网格内旋转 180° 后的位置；跨度保持不变。
func MirroredGeometry(z mat.Zone, cols, rows int) (colStart, colSpan, rowStart, rowSpan int) {
	colStart = mat.ClampInt(cols-z.ColStart-z.ColSpan+2, 1, cols)
	colSpan = mat.ClampInt(z.ColSpan, 1, cols)
	rowStart = mat.ClampInt(rows-z.RowStart-z.RowSpan+2, 1, rows)
	rowSpan = mat.ClampInt(z.RowSpan, 1, rows)
	return
}
