package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/playmat/icons"
	"github.com/ByLCY/playmat/mat"
)

const (
	areaMargin       = 30.0 // 画布上下左右的固定留白
	sideTrackPad     = 75.0 // 与侧边计分轨道重叠时额外让出的宽度
	strokeWidth      = 3.0
	zoneRadius       = 14.0
	zoneFillAlpha    = 0.07
	cornerRatio      = 0.18
	cornerMaxRadius  = 10.0
	edgeRunnerRadius = 28.0
	edgeRunnerWidth  = 3.5
	edgeRunnerAlpha  = 0.4
	edgeRunnerMaxCut = 50.0
	iconAlpha        = 0.8
	textAlpha        = 0.92
	maxAutoFontSize  = 110.0
	minTextPadding   = 16.0

	// DefaultEdgeInset 是边缘装饰线的默认内缩距离。
	DefaultEdgeInset = 18.0
)

// DefaultColor 是颜色无法解析时使用的描边颜色（#c89b3c）。
var DefaultColor = Color{R: 200, G: 155, B: 60}

// builder 持有一次布局所需的只读输入。
// 内部以「绘制坐标系」计算，与原始画布只差一个可选的水平翻转，输出前统一换算。
type builder struct {
	opts   Options
	ts     Typesetter
	color  Color
	width  float64
	height float64
	cols   int
	rows   int
	tracks []mat.ScoreTrack
}

// Build 把桌垫配置展开为像素空间的图元。不修改 cfg，相同输入总是得到相同结果。
func Build(cfg mat.Configuration, color string, opts Options, ts Typesetter) (*Result, error) {
	if ts == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	size := mat.MatSize(cfg)
	cols, rows := mat.ClampGrid(cfg.GridCols, cfg.GridRows)
	b := &builder{
		opts:   opts,
		ts:     ts,
		color:  ResolveColor(color),
		width:  float64(size.Width),
		height: float64(size.Height),
		cols:   cols,
		rows:   rows,
		tracks: cfg.Tracks(),
	}

	res := &Result{
		Width:       b.width,
		Height:      b.height,
		Color:       b.color,
		StrokeWidth: strokeWidth,
		Mirrored:    opts.Mirrored,
		EdgeRunner:  b.edgeRunner(),
	}

	weights := cfg.RowHeights
	if len(weights) != rows {
		weights = nil
	}
	bands := DistributeRows(rows, weights, b.height-2*areaMargin)
	for _, z := range cfg.Zones {
		res.Zones = append(res.Zones, b.zone(z, bands))
	}
	for _, t := range b.tracks {
		res.Tracks = append(res.Tracks, b.track(t))
	}
	return res, nil
}

// outX 把绘制坐标系中的 x 换算到输出画布。
func (b *builder) outX(x float64) float64 {
	if b.opts.Mirrored {
		return b.width - x
	}
	return x
}

func (b *builder) outRect(r Rect) Rect {
	if b.opts.Mirrored {
		r.X = b.width - r.X - r.Width
	}
	return r
}

// edgeInset 返回装饰线内缩距离，非有限值退回默认值。
func (b *builder) edgeInset() float64 {
	return math.Max(0, finiteOr(b.opts.EdgeRunner.Inset, DefaultEdgeInset))
}

func (b *builder) edgeRunner() *EdgeRunner {
	er := b.opts.EdgeRunner
	if !er.Enabled {
		return nil
	}
	inset := b.edgeInset()
	rect := Rect{X: inset, Y: inset, Width: b.width - inset*2, Height: b.height - inset*2}
	out := &EdgeRunner{
		Rect:      rect,
		Pointed:   er.Pointed,
		LineWidth: edgeRunnerWidth,
		Alpha:     edgeRunnerAlpha,
	}
	if er.Pointed {
		out.Cut = math.Min(edgeRunnerMaxCut, math.Min(rect.Width, rect.Height)*0.04)
	} else {
		out.Radius = edgeRunnerRadius
	}
	return out
}

// zoneRect 计算区域在绘制坐标系中的矩形。
func (b *builder) zoneRect(z mat.Zone, bands Rows) Rect {
	gap := math.Max(0, finiteOr(b.opts.ZoneGap, 0))
	top, height := bands.Span(z.RowStart-1, z.RowSpan)
	y := areaMargin + top + gap/2
	h := height - gap

	padL, padR := b.sidePadding(y, y+h)
	cellW := (b.width - padL - padR) / float64(b.cols)
	x := padL + float64(z.ColStart-1)*cellW + gap/2
	w := float64(z.ColSpan)*cellW - gap
	return Rect{X: x, Y: y, Width: math.Max(1, w), Height: math.Max(1, h)}
}

// sidePadding 侧边计分轨道与区域纵向重叠时，在该侧多留出 sideTrackPad。
func (b *builder) sidePadding(y0, y1 float64) (left, right float64) {
	left, right = areaMargin, areaMargin
	for _, t := range b.tracks {
		start, end := t.Span()
		a0 := math.Min(start, end) * b.height
		a1 := math.Max(start, end) * b.height
		if !(y0 < a1 && y1 > a0) {
			continue
		}
		switch b.trackSide(t) {
		case mat.PositionLeft:
			left = areaMargin + sideTrackPad
		case mat.PositionRight:
			right = areaMargin + sideTrackPad
		}
	}
	return left, right
}

// trackSide 返回轨道占用的侧边（绘制坐标系），非侧边轨道返回空串。
// 只看显式写出的 position，未设置位置的轨道不挤占区域。
func (b *builder) trackSide(t mat.ScoreTrack) string {
	switch t.Position {
	case mat.PositionLeft:
		if b.opts.Mirrored {
			return mat.PositionRight
		}
		return mat.PositionLeft
	case mat.PositionRight:
		if b.opts.Mirrored {
			return mat.PositionLeft
		}
		return mat.PositionRight
	}
	return ""
}

func (b *builder) zone(z mat.Zone, bands Rows) ZoneBox {
	z = z.Clamp(b.cols, b.rows)
	rect := b.outRect(b.zoneRect(z, bands))
	box := ZoneBox{ID: z.ID, Rect: rect}
	if z.UpsideDown {
		box.Rotation = 180
	}

	switch b.opts.BorderStyle {
	case BorderFull, "":
		box.Border = BorderFull
		box.FillAlpha = zoneFillAlpha
		if b.opts.Rounded {
			box.Radius = zoneRadius
		}
	case BorderCorners:
		box.Border = BorderCorners
		length := math.Min(rect.Width, rect.Height) * cornerRatio
		corner := &Corners{Length: length}
		if b.opts.Rounded {
			corner.Radius = math.Min(length*0.35, cornerMaxRadius)
		}
		box.Corner = corner
	default:
		box.Border = BorderNone
	}

	b.zoneLabels(&box, z)
	if b.opts.TextOverlays {
		box.Texts = b.zoneTexts(rect, z)
	}
	return box
}

// zoneLabels 图标在上、名称在下；只有一项时居中。小区域使用较小的字号档位。
func (b *builder) zoneLabels(box *ZoneBox, z mat.Zone) {
	icon, name := "", ""
	if b.opts.ShowIcons {
		icon = z.Icon
	}
	if b.opts.ShowNames {
		name = z.Name
	}
	if icon == "" && name == "" {
		return
	}
	rect := box.Rect
	iconSz, nameSz := 56.0, 34.0
	if rect.Width < 400 && rect.Height < 500 {
		iconSz, nameSz = 42, 26
	}
	cx, midY := rect.Center()

	if icon != "" {
		y := midY
		if name != "" {
			y = midY - nameSz*0.65
		}
		if icons.IsImage(icon) {
			box.IconImage = &ImageBox{Src: icon, X: cx - iconSz/2, Y: y - iconSz/2, Width: iconSz, Height: iconSz, Alpha: iconAlpha}
		} else {
			box.Icon = &Label{Content: icon, X: cx, Y: y, FontSize: iconSz, Font: FontIcon, Align: mat.AlignCenter, Alpha: iconAlpha}
		}
	}
	if name != "" {
		y := midY
		if icon != "" {
			y = midY + iconSz*0.45
		}
		box.Title = &Label{Content: name, X: cx, Y: y, FontSize: nameSz, Font: FontText, Bold: true, Align: mat.AlignCenter, Alpha: 1}
	}
}

// zoneTexts 有 textEntries 时只用它们，否则退回旧的单个 text。
func (b *builder) zoneTexts(rect Rect, z mat.Zone) []TextBox {
	entries := z.TextEntries
	if entries == nil {
		entries = []mat.TextSpec{z.Text}
	}
	var out []TextBox
	for _, e := range entries {
		if !e.Enabled || e.Content == "" {
			continue
		}
		xp, yp, wp, hp := e.Box()
		target := PercentRect(rect.X, rect.Y, rect.Width, rect.Height, xp, yp, wp, hp)
		out = append(out, b.textBox(target, rect, e))
	}
	return out
}

// textBox 在 r 内自动适配字号并排版，纵向或横向超出 clip 的行被丢弃。
// 单词不会被拆开，因此比区域还宽的单词所在行整行丢弃。
func (b *builder) textBox(r, clip Rect, spec mat.TextSpec) TextBox {
	padX := math.Max(minTextPadding, r.Width*0.05)
	padY := math.Max(minTextPadding, r.Height*0.08)
	maxW := r.Width - padX*2
	maxH := r.Height - padY*2

	initial := spec.FontSize
	if initial <= 0 || !mat.IsFinite(initial) {
		initial = math.Min(r.Width*0.12, math.Min(r.Height*0.55, maxAutoFontSize))
	}
	fit := AutoFitFontSize(spec.Content, maxW, maxH, b.measureBold, initial)

	col := b.color
	if spec.Color != "" {
		if c, err := ParseColor(spec.Color); err == nil {
			col = c
		}
	}
	align := spec.Align
	if align == "" {
		align = mat.AlignCenter
	}
	var tx float64
	switch align {
	case mat.AlignLeft:
		tx = r.X + padX
	case mat.AlignRight:
		tx = r.X + r.Width - padX
	default:
		align = mat.AlignCenter
		tx = r.X + r.Width/2
	}

	var y float64
	switch spec.VAlign {
	case mat.VAlignTop:
		y = r.Y + padY
	case mat.VAlignBottom:
		y = r.Y + r.Height - padY - fit.Height
	default:
		y = r.Y + (r.Height-fit.Height)/2
	}

	tb := TextBox{
		Rect:            r,
		FontSize:        fit.FontSize,
		LineHeight:      fit.LineHeight,
		BlankLineHeight: fit.BlankLineHeight,
		Align:           align,
		Color:           col,
		Alpha:           textAlpha,
	}
	for _, line := range fit.Lines {
		if line == "" {
			y += fit.BlankLineHeight
			continue
		}
		w := b.measureBold(line, fit.FontSize)
		left := lineLeft(align, tx, w)
		inY := y >= clip.Y && y+fit.LineHeight <= clip.Y+clip.Height
		inX := left >= clip.X && left+w <= clip.X+clip.Width
		if inY && inX {
			tb.Lines = append(tb.Lines, TextLine{
				Content: line,
				X:       tx,
				Y:       y,
				Width:   w,
				Height:  fit.LineHeight,
			})
		}
		y += fit.LineHeight
	}
	return tb
}

// lineLeft 返回以 tx 为锚点、宽 w 的行的左边缘。
func lineLeft(align string, tx, w float64) float64 {
	switch align {
	case mat.AlignLeft:
		return tx
	case mat.AlignRight:
		return tx - w
	}
	return tx - w/2
}

func (b *builder) measureBold(s string, size float64) float64 {
	return b.ts.TextWidth(s, size, true)
}

// ResolveColor 解析 #rgb / #rrggbb / #rrggbbaa，失败时返回 DefaultColor。
func ResolveColor(value string) Color {
	if c, err := ParseColor(value); err == nil {
		return c
	}
	return DefaultColor
}

// ParseColor 解析 #rgb / #rrggbb / #rrggbbaa（忽略 alpha 分量）。
func ParseColor(value string) (Color, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = strings.Repeat(value[0:1], 2) + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var parts [3]int
	for i := range parts {
		v, err := strconv.ParseUint(value[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
		}
		parts[i] = int(v)
	}
	return Color{R: parts[0], G: parts[1], B: parts[2]}, nil
}
