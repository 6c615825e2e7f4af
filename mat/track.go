package mat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// 计分轨道的位置取值。
const (
	PositionLeft        = "left"
	PositionRight       = "right"
	PositionCenterLeft  = "center-left"
	PositionCenterRight = "center-right"
)

// 计分轨道缺省值。
const (
	DefaultTrackCount  = 9
	DefaultTrackYStart = 0.08
	DefaultTrackYEnd   = 0.92
)

// ScoreTrack 描述一条计分轨道：要么 Count 个均匀分布的圆点，要么显式点列表。
type ScoreTrack struct {
	Count            int             `json:"count,omitempty" yaml:"count,omitempty"`
	StartValue       int             `json:"startValue,omitempty" yaml:"startValue,omitempty"`
	Points           []ExplicitPoint `json:"points,omitempty" yaml:"points,omitempty"`
	Position         string          `json:"position,omitempty" yaml:"position,omitempty"`
	YStart           *float64        `json:"yStart,omitempty" yaml:"yStart,omitempty"` // 画布高度的比例
	YEnd             *float64        `json:"yEnd,omitempty" yaml:"yEnd,omitempty"`
	X                *float64        `json:"x,omitempty" yaml:"x,omitempty"` // 绝对像素覆盖
	UpsideDown       bool            `json:"upsideDown,omitempty" yaml:"upsideDown,omitempty"`
	Name             string          `json:"name,omitempty" yaml:"name,omitempty"`
	OrbScale         float64         `json:"orbScale,omitempty" yaml:"orbScale,omitempty"`
	EdgeRunnerXShift float64         `json:"edgeRunnerXShift,omitempty" yaml:"edgeRunnerXShift,omitempty"`
}

// ExplicitPoint 是不规则布局中的一个圆点。XPct/YPct 为画布比例（0..1），X/Y 为像素。
type ExplicitPoint struct {
	XPct  *float64    `json:"xPct,omitempty" yaml:"xPct,omitempty"`
	YPct  *float64    `json:"yPct,omitempty" yaml:"yPct,omitempty"`
	X     *float64    `json:"x,omitempty" yaml:"x,omitempty"`
	Y     *float64    `json:"y,omitempty" yaml:"y,omitempty"`
	Label *PointLabel `json:"label,omitempty" yaml:"label,omitempty"`
}

// PointLabel 既可以写成数字也可以写成字符串。
type PointLabel string

// Label 构造一个指针形式的 PointLabel。
func Label(v any) *PointLabel {
	l := PointLabel(fmt.Sprint(v))
	return &l
}

// UnmarshalJSON 接受数字或字符串。
func (l *PointLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = PointLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("计分点标签 %s 无法解析: %w", string(data), err)
	}
	*l = PointLabel(n.String())
	return nil
}

// MarshalJSON 把纯数字标签写回数字。
func (l PointLabel) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(l), 64); err == nil {
		return []byte(l), nil
	}
	return json.Marshal(string(l))
}

// UnmarshalYAML 接受任意标量。
func (l *PointLabel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("计分点标签必须是标量（第 %d 行）", node.Line)
	}
	*l = PointLabel(strings.TrimSpace(node.Value))
	return nil
}

// TrackLayout 是计分轨道布局的标签联合：EvenLayout 或 ExplicitLayout。
type TrackLayout interface {
	trackLayout()
}

// EvenLayout 表示在 yStart..yEnd 之间均匀分布的 Count 个圆点。
type EvenLayout struct {
	Count      int
	StartValue int
}

// ExplicitLayout 表示显式给出的点列表。
type ExplicitLayout struct {
	Points []ExplicitPoint
}

func (EvenLayout) trackLayout()     {}
func (ExplicitLayout) trackLayout() {}

// Layout 返回轨道的布局变体。
func (t ScoreTrack) Layout() TrackLayout {
	if len(t.Points) > 0 {
		return ExplicitLayout{Points: t.Points}
	}
	return EvenLayout{Count: t.EffectiveCount(), StartValue: t.StartValue}
}

// EffectiveCount 返回圆点数量，未设置或非法时为 9。
func (t ScoreTrack) EffectiveCount() int {
	if t.Count < 1 {
		return DefaultTrackCount
	}
	return t.Count
}

// EffectivePosition 返回位置，未设置时为 left。
func (t ScoreTrack) EffectivePosition() string {
	if t.Position == "" {
		return PositionLeft
	}
	return t.Position
}

// Span 返回 yStart/yEnd（比例），缺省或非有限时为 0.08/0.92。
func (t ScoreTrack) Span() (start, end float64) {
	return valueOr(t.YStart, DefaultTrackYStart), valueOr(t.YEnd, DefaultTrackYEnd)
}

// EffectiveOrbScale 返回圆点缩放，0 与非有限值视为 1。
func (t ScoreTrack) EffectiveOrbScale() float64 {
	if t.OrbScale == 0 || !IsFinite(t.OrbScale) {
		return 1
	}
	return t.OrbScale
}

// Tracks 把 scoreTrack / scoreTracks 统一成一个列表；数组形式非空时优先。
func (c Configuration) Tracks() []ScoreTrack {
	if len(c.ScoreTracks) > 0 {
		out := make([]ScoreTrack, len(c.ScoreTracks))
		copy(out, c.ScoreTracks)
		return out
	}
	if c.ScoreTrack != nil {
		return []ScoreTrack{*c.ScoreTrack}
	}
	return nil
}

// WithTracks 以数组形式写回轨道列表，并清空单轨道字段。
func (c Configuration) WithTracks(tracks []ScoreTrack) Configuration {
	out := c.Clone()
	out.ScoreTrack = nil
	out.ScoreTracks = cloneTracks(tracks)
	return out
}
