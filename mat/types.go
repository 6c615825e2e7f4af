package mat

import "math"

// 该文件定义桌垫配置的数据模型，供布局、镜像同步、规则文本与 DSL 共用。
// 所有类型都是纯数据（可 JSON/YAML 序列化），不携带行为；修改统一通过返回新值的函数完成。

// 默认桌垫尺寸（像素）。
const (
	DefaultWidth  = 2450
	DefaultHeight = 1450
)

// Configuration 是一张桌垫的完整布局描述。
type Configuration struct {
	Canvas      *Canvas      `json:"canvas,omitempty" yaml:"canvas,omitempty"`
	GridCols    int          `json:"gridCols" yaml:"gridCols"`
	GridRows    int          `json:"gridRows" yaml:"gridRows"`
	RowHeights  []float64    `json:"rowHeights,omitempty" yaml:"rowHeights,omitempty"` // 相对权重，不是像素
	Zones       []Zone       `json:"zones" yaml:"zones"`
	ScoreTrack  *ScoreTrack  `json:"scoreTrack,omitempty" yaml:"scoreTrack,omitempty"`
	ScoreTracks []ScoreTrack `json:"scoreTracks,omitempty" yaml:"scoreTracks,omitempty"`
}

// Canvas 记录输出画布的像素尺寸。
type Canvas struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Size 是 MatSize 的返回值。
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Zone 是网格上的一个带标签的矩形区域。
// ID 以 p1_/p2_ 开头时表示参与双人镜像配对。
type Zone struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Icon       string   `json:"icon" yaml:"icon"` // unicode 字符、短文本或 data:image/... 图片
	ColStart   int      `json:"colStart" yaml:"colStart"`
	ColSpan    int      `json:"colSpan" yaml:"colSpan"`
	RowStart   int      `json:"rowStart" yaml:"rowStart"`
	RowSpan    int      `json:"rowSpan" yaml:"rowSpan"`
	Locked     bool     `json:"locked,omitempty" yaml:"locked,omitempty"`
	UpsideDown bool     `json:"upsideDown,omitempty" yaml:"upsideDown,omitempty"`
	Text       TextSpec `json:"text" yaml:"text"`

	// TextEntries 为 nil 表示未设置（渲染时退回到 Text）；空切片表示没有条目。
	TextEntries []TextSpec `json:"textEntries" yaml:"textEntries"`
}

// 文本对齐取值。
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// TextSpec 描述区域内的一段规则文本；百分比相对于区域自身矩形。
type TextSpec struct {
	Content  string   `json:"content" yaml:"content"`
	XPct     *float64 `json:"xPct,omitempty" yaml:"xPct,omitempty"`
	YPct     *float64 `json:"yPct,omitempty" yaml:"yPct,omitempty"`
	WPct     *float64 `json:"wPct,omitempty" yaml:"wPct,omitempty"`
	HPct     *float64 `json:"hPct,omitempty" yaml:"hPct,omitempty"`
	Align    string   `json:"align" yaml:"align"`
	VAlign   string   `json:"valign" yaml:"valign"`
	Color    string   `json:"color" yaml:"color"`       // 空字符串表示继承描边颜色
	FontSize float64  `json:"fontSize" yaml:"fontSize"` // 0 表示自动适配
	Enabled  bool     `json:"enabled" yaml:"enabled"`
}

// Box 返回四个百分比，缺省值为 0/0/100/100。
func (t TextSpec) Box() (x, y, w, h float64) {
	return valueOr(t.XPct, 0), valueOr(t.YPct, 0), valueOr(t.WPct, 100), valueOr(t.HPct, 100)
}

// EmptyText 返回预设中使用的空白文本定义。
func EmptyText() TextSpec {
	return TextSpec{Align: AlignCenter, VAlign: VAlignMiddle}
}

// Float 返回 v 的指针，便于构造可选字段。
func Float(v float64) *float64 { return &v }

// valueOr 在 p 为空或非有限值（NaN/±Inf）时返回 def。
func valueOr(p *float64, def float64) float64 {
	if p == nil || !IsFinite(*p) {
		return def
	}
	return *p
}

// IsFinite 报告 v 既不是 NaN 也不是 ±Inf。YAML 的 .nan/.inf 可以直接解码成这些值。
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MatSize 读取 canvas 尺寸，缺省为 2450×1450。无副作用，可在任何画布创建前调用。
func MatSize(cfg Configuration) Size {
	size := Size{Width: DefaultWidth, Height: DefaultHeight}
	if cfg.Canvas == nil {
		return size
	}
	if cfg.Canvas.Width > 0 {
		size.Width = cfg.Canvas.Width
	}
	if cfg.Canvas.Height > 0 {
		size.Height = cfg.Canvas.Height
	}
	return size
}
