package layout

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/ByLCY/playmat/mat"
)

// 计分轨道几何常量。
const (
	trackDefaultCX   = 52.0
	trackMaxStep     = 140.0
	trackMinRadius   = 11.0
	trackMaxRadius   = 38.0
	trackPointRadius = 26.0
	trackMinSpan     = 20.0
	trackLaneMinW    = 24.0
	trackNameOffset  = 26.0
	trackNameSize    = 20.0
	orbFillAlpha     = 0.12
	orbLabelAlpha    = 0.85
	trackNameAlpha   = 0.9
)

// lane 是侧边计分轨道所在的竖条。
type lane struct {
	cx    float64
	width float64
}

func (b *builder) sideLane(side string) lane {
	edgeInset := 0.0
	if b.opts.EdgeRunner.Enabled {
		edgeInset = b.edgeInset()
	}
	inner := areaMargin + sideTrackPad
	if side == mat.PositionRight {
		outer := b.width - edgeInset
		in := b.width - inner
		return lane{cx: (outer + in) / 2, width: math.Max(trackLaneMinW, outer-in)}
	}
	return lane{cx: (edgeInset + inner) / 2, width: math.Max(trackLaneMinW, inner-edgeInset)}
}

// trackCenter 返回轨道的水平中心：x 覆盖优先，其次按位置推导，未知位置使用固定值。
func (b *builder) trackCenter(t mat.ScoreTrack) float64 {
	if x, ok := finitePtr(t.X); ok {
		return x
	}
	switch t.EffectivePosition() {
	case mat.PositionLeft:
		return b.sideLane(mat.PositionLeft).cx
	case mat.PositionRight:
		return b.sideLane(mat.PositionRight).cx
	case mat.PositionCenterLeft:
		return b.width * 0.47
	case mat.PositionCenterRight:
		return b.width * 0.53
	default:
		return trackDefaultCX
	}
}

// track 展开一条计分轨道。轨道在绘制坐标系中定位后再整体翻转，
// 因此启用镜像时轨道的最终位置与未镜像时一致，只有边缘偏移随之反向。
func (b *builder) track(t mat.ScoreTrack) TrackBox {
	cx := b.trackCenter(t)
	if b.opts.Mirrored {
		cx = b.width - cx
	}
	if b.opts.EdgeRunner.Enabled {
		cx += finiteOr(t.EdgeRunnerXShift, 0)
	}

	switch l := t.Layout().(type) {
	case mat.ExplicitLayout:
		return TrackBox{Orbs: b.explicitOrbs(t, l.Points, cx)}
	case mat.EvenLayout:
		return b.evenTrack(t, l, cx)
	}
	return TrackBox{}
}

func (b *builder) orb(x, y, r float64, label string, upsideDown bool) Orb {
	o := Orb{
		CX:         b.outX(x),
		CY:         y,
		R:          r,
		Label:      label,
		FontSize:   roundHalf(r * 0.9),
		FillAlpha:  orbFillAlpha,
		LabelAlpha: orbLabelAlpha,
	}
	if upsideDown {
		o.Rotation = 180
	}
	return o
}

// explicitOrbs 平移整个点簇，使其质心落在目标中心：x 覆盖决定横向，
// yStart/yEnd（均给出时取中点）决定纵向，未给出的方向保持原位。
func (b *builder) explicitOrbs(t mat.ScoreTrack, points []mat.ExplicitPoint, cx float64) []Orb {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = cx, b.height*0.5
		if v, ok := finitePtr(p.XPct); ok {
			xs[i] = b.width * clamp01(v)
		} else if v, ok := finitePtr(p.X); ok {
			xs[i] = v
		}
		if v, ok := finitePtr(p.YPct); ok {
			ys[i] = b.height * clamp01(v)
		} else if v, ok := finitePtr(p.Y); ok {
			ys[i] = v
		}
	}
	baseCx := stat.Mean(xs, nil)
	baseCy := stat.Mean(ys, nil)

	targetCx := baseCx
	if x, ok := finitePtr(t.X); ok {
		targetCx = x
	}
	targetCy := baseCy
	yStart, hasStart := finitePtr(t.YStart)
	yEnd, hasEnd := finitePtr(t.YEnd)
	switch {
	case hasStart && hasEnd:
		targetCy = b.height * (yStart + yEnd) / 2
	case hasStart:
		targetCy = b.height * yStart
	case hasEnd:
		targetCy = b.height * yEnd
	}
	dx, dy := targetCx-baseCx, targetCy-baseCy

	r := clamp(trackPointRadius*t.EffectiveOrbScale(), trackMinRadius, trackMaxRadius)
	orbs := make([]Orb, 0, len(points))
	for i, p := range points {
		x := xs[i] + dx
		if b.opts.Mirrored {
			x = b.width - x
		}
		label := strconv.Itoa(t.StartValue + i)
		if p.Label != nil {
			label = string(*p.Label)
		}
		orbs = append(orbs, b.orb(x, ys[i]+dy, r, label, t.UpsideDown))
	}
	return orbs
}

// evenTrack 在 yStart..yEnd 之间均匀放置 Count 个圆点。
// 数值从下往上递增，倒置轨道反过来。
func (b *builder) evenTrack(t mat.ScoreTrack, l mat.EvenLayout, cx float64) TrackBox {
	start, end := t.Span()
	yA, yB := b.height*start, b.height*end
	yMin, yMax := math.Min(yA, yB), math.Max(yA, yB)
	avail := math.Max(trackMinSpan, yMax-yMin)
	count := l.Count
	step := math.Min(trackMaxStep, avail/math.Max(1, float64(count-1)))

	baseR := clamp(step*0.42, trackMinRadius, trackMaxRadius)
	r := clamp(baseR*t.EffectiveOrbScale(), trackMinRadius, trackMaxRadius)
	position := t.EffectivePosition()
	if _, ok := finitePtr(t.X); !ok && (position == mat.PositionLeft || position == mat.PositionRight) {
		ln := b.sideLane(position)
		r = math.Min(r, math.Max(trackMinRadius, ln.width/2-4))
	}

	totalH := float64(count-1) * step
	startY := (yMin + yMax) / 2
	if count > 1 {
		startY = yMin + math.Max(0, (avail-totalH)/2)
	}

	box := TrackBox{Orbs: make([]Orb, 0, count)}
	for i := 0; i < count; i++ {
		index := count - 1 - i
		if t.UpsideDown {
			index = i
		}
		y := startY + float64(index)*step
		box.Orbs = append(box.Orbs, b.orb(cx, y, r, strconv.Itoa(l.StartValue+i), t.UpsideDown))
	}

	if b.opts.ShowNames && t.Name != "" {
		box.Name = b.trackName(t, position, cx, (yMin+yMax)/2)
	}
	return box
}

// trackName 左侧轨道的名称放在右边、右侧轨道放在左边，其余居中；镜像时对齐方向互换。
func (b *builder) trackName(t mat.ScoreTrack, position string, cx, y float64) *Label {
	x, align := cx, mat.AlignCenter
	switch position {
	case mat.PositionLeft:
		x, align = cx+trackNameOffset, mat.AlignLeft
	case mat.PositionRight:
		x, align = cx-trackNameOffset, mat.AlignRight
	}
	if b.opts.Mirrored {
		switch align {
		case mat.AlignLeft:
			align = mat.AlignRight
		case mat.AlignRight:
			align = mat.AlignLeft
		}
	}
	label := &Label{
		Content:  t.Name,
		X:        b.outX(x),
		Y:        y,
		FontSize: trackNameSize,
		Font:     FontText,
		Bold:     true,
		Align:    align,
		Alpha:    trackNameAlpha,
	}
	if t.UpsideDown {
		label.Rotation = 180
	}
	return label
}
