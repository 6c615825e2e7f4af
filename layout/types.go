package layout

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。
// 所有坐标均为最终输出像素（左上角为原点，y 向下），镜像已在布局阶段处理完毕。

// Result 保存一张桌垫叠加层的全部图元。
type Result struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Color       Color       `json:"color"`
	StrokeWidth float64     `json:"strokeWidth"`
	Mirrored    bool        `json:"mirrored"`
	EdgeRunner  *EdgeRunner `json:"edgeRunner,omitempty"`
	Zones       []ZoneBox   `json:"zones"`
	Tracks      []TrackBox  `json:"tracks"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Rect 是轴对齐矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center 返回矩形中心。
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Overlaps 判断两个矩形是否有面积重叠（仅接触边界不算）。
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// EdgeRunner 是沿画布边缘的装饰描边，Pointed 时四角被切成八边形。
type EdgeRunner struct {
	Rect      Rect    `json:"rect"`
	Radius    float64 `json:"radius"`
	Pointed   bool    `json:"pointed"`
	Cut       float64 `json:"cut,omitempty"`
	LineWidth float64 `json:"lineWidth"`
	Alpha     float64 `json:"alpha"`
}

// 边框样式。
const (
	BorderFull    = "full"
	BorderCorners = "corners"
	BorderNone    = "none"
)

// ZoneBox 是一个已定位的区域。Rotation 为 180 时，区域内全部内容绕矩形中心旋转。
type ZoneBox struct {
	ID        string    `json:"id"`
	Rect      Rect      `json:"rect"`
	Rotation  float64   `json:"rotation"`
	Border    string    `json:"border"`
	Radius    float64   `json:"radius"`              // 圆角半径，0 为直角
	FillAlpha float64   `json:"fillAlpha,omitempty"` // 仅 full 边框
	Corner    *Corners  `json:"corner,omitempty"`
	Icon      *Label    `json:"icon,omitempty"`
	IconImage *ImageBox `json:"iconImage,omitempty"`
	Title     *Label    `json:"title,omitempty"`
	Texts     []TextBox `json:"texts,omitempty"`
}

// Corners 描述四角 L 形标记。
type Corners struct {
	Length float64 `json:"length"`
	Radius float64 `json:"radius"`
}

// 标签使用的字体角色。
const (
	FontIcon = "icon"
	FontText = "text"
)

// Label 是以 (X, Y) 为锚点、垂直居中的单行文字。Rotation 以锚点为轴。
type Label struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"fontSize"`
	Font     string  `json:"font"`
	Bold     bool    `json:"bold,omitempty"`
	Align    string  `json:"align"`
	Alpha    float64 `json:"alpha"`
	Rotation float64 `json:"rotation,omitempty"`
}

// ImageBox 是图片图标的放置位置（data: URL）。
type ImageBox struct {
	Src    string  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Alpha  float64 `json:"alpha"`
}

// TextBox 表示一个已经排好坐标的规则文本块。
type TextBox struct {
	Rect            Rect       `json:"rect"`
	FontSize        float64    `json:"fontSize"`
	LineHeight      float64    `json:"lineHeight"`
	BlankLineHeight float64    `json:"blankLineHeight"`
	Align           string     `json:"align"`
	Color           Color      `json:"color"`
	Alpha           float64    `json:"alpha"`
	Lines           []TextLine `json:"lines"`
}

// TextLine 记录一行文字的锚点（X 按 Align 解释，Y 为行顶）。
type TextLine struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// TrackBox 是一条已经展开的计分轨道。
type TrackBox struct {
	Orbs []Orb  `json:"orbs"`
	Name *Label `json:"name,omitempty"`
}

// Orb 是计分圆点，标签绕圆心旋转 Rotation 度。
type Orb struct {
	CX         float64 `json:"cx"`
	CY         float64 `json:"cy"`
	R          float64 `json:"r"`
	Label      string  `json:"label"`
	FontSize   float64 `json:"fontSize"`
	FillAlpha  float64 `json:"fillAlpha"`
	LabelAlpha float64 `json:"labelAlpha"`
	Rotation   float64 `json:"rotation,omitempty"`
}
