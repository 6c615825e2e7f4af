// Package config 读取命令行工具的设置文件（JSON/YAML），并把 UI 开关映射为布局选项。
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ByLCY/playmat/compose"
	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
)

// 设置项的取值范围，与编辑器滑块一致。
const (
	MinZoneGap = 0.0
	MaxZoneGap = 60.0
	MinInset   = 6.0
	MaxInset   = 80.0
)

// Settings 是一次导出所需的全部设置。
type Settings struct {
	LogLevel   string             `mapstructure:"logLevel"`
	Preset     string             `mapstructure:"preset"`
	Overlay    OverlaySettings    `mapstructure:"overlay"`
	EdgeRunner EdgeRunnerSettings `mapstructure:"edgeRunner"`
	Background BackgroundSettings `mapstructure:"background"`
	Rules      RulesSettings      `mapstructure:"rules"`
	Fonts      FontSettings       `mapstructure:"fonts"`
	Brush      BrushSettings      `mapstructure:"brush"`
	Strokes    []Stroke           `mapstructure:"strokes"`

	// Source 是实际读取的设置文件，为空表示全部使用默认值。
	Source string `mapstructure:"-"`
}

// OverlaySettings 对应叠加层面板。
type OverlaySettings struct {
	Color        string  `mapstructure:"color"`
	Opacity      float64 `mapstructure:"opacity"`
	Show         bool    `mapstructure:"show"`
	BorderStyle  string  `mapstructure:"borderStyle"`
	Rounded      bool    `mapstructure:"rounded"`
	ShowNames    bool    `mapstructure:"showNames"`
	ShowIcons    bool    `mapstructure:"showIcons"`
	TextOverlays bool    `mapstructure:"textOverlays"`
	Mirrored     bool    `mapstructure:"mirrored"`
	ZoneGap      float64 `mapstructure:"zoneGap"`
}

type EdgeRunnerSettings struct {
	Enabled bool    `mapstructure:"enabled"`
	Inset   float64 `mapstructure:"inset"`
	Pointed bool    `mapstructure:"pointed"`
}

type BackgroundSettings struct {
	Color string `mapstructure:"color"`
	Image string `mapstructure:"image"` // 文件路径或 data:image/... URL
}

type RulesSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// FontSettings 中的路径可以是文件，也可以是 embed:regular / embed:bold。
type FontSettings struct {
	Text string `mapstructure:"text"`
	Icon string `mapstructure:"icon"`
}

type BrushSettings struct {
	Size        float64 `mapstructure:"size"`
	FadeOpacity float64 `mapstructure:"fadeOpacity"`
}

// Stroke 是预先录制的一笔遮罩操作；Size/Fade 为 0 时使用 brush 中的值。
type Stroke struct {
	Tool string    `mapstructure:"tool"`
	From []float64 `mapstructure:"from"`
	To   []float64 `mapstructure:"to"`
	Size float64   `mapstructure:"size"`
	Fade float64   `mapstructure:"fade"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("preset", mat.Preset1PWithBattlefield)

	v.SetDefault("overlay.color", compose.DefaultOverlayColor)
	v.SetDefault("overlay.opacity", compose.DefaultOverlayOpacity)
	v.SetDefault("overlay.show", true)
	v.SetDefault("overlay.borderStyle", layout.BorderFull)
	v.SetDefault("overlay.rounded", true)
	v.SetDefault("overlay.showNames", true)
	v.SetDefault("overlay.showIcons", true)
	v.SetDefault("overlay.textOverlays", false)
	v.SetDefault("overlay.mirrored", false)
	v.SetDefault("overlay.zoneGap", 20)

	v.SetDefault("edgeRunner.enabled", false)
	v.SetDefault("edgeRunner.inset", layout.DefaultEdgeInset)
	v.SetDefault("edgeRunner.pointed", false)

	v.SetDefault("background.color", compose.DefaultBackground)
	v.SetDefault("background.image", "")

	v.SetDefault("rules.enabled", false)

	v.SetDefault("fonts.text", "")
	v.SetDefault("fonts.icon", "")

	v.SetDefault("brush.size", compose.DefaultBrushSize)
	v.SetDefault("brush.fadeOpacity", compose.DefaultFadeOpacity)
}

// Load 先写入默认值，path 非空时再读取设置文件（按扩展名识别 JSON/YAML）。
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("解析设置失败: %w", err)
	}
	if !mat.HasPreset(s.Preset) {
		return Settings{}, fmt.Errorf("未知的预设 %q", s.Preset)
	}
	if _, err := layout.ParseColor(s.Overlay.Color); err != nil {
		return Settings{}, fmt.Errorf("overlay.color: %w", err)
	}
	if _, err := layout.ParseColor(s.Background.Color); err != nil {
		return Settings{}, fmt.Errorf("background.color: %w", err)
	}
	for i, st := range s.Strokes {
		if _, err := st.Points(); err != nil {
			return Settings{}, fmt.Errorf("strokes[%d]: %w", i, err)
		}
		if _, err := compose.ParseTool(strings.ToLower(st.Tool)); err != nil {
			return Settings{}, fmt.Errorf("strokes[%d]: %w", i, err)
		}
	}
	s.Source = v.ConfigFileUsed()
	return s, nil
}

// LogResolved 在 debug 级别记录设置的来源与关键取值。
// 日志级别本身来自设置文件，因此由调用方在配置好 logger 之后调用。
func (s Settings) LogResolved(l zerolog.Logger) {
	source := s.Source
	if source == "" {
		source = "defaults"
	}
	l.Debug().
		Str("source", source).
		Str("preset", s.Preset).
		Str("logLevel", s.LogLevel).
		Bool("mirrored", s.Overlay.Mirrored).
		Bool("edgeRunner", s.EdgeRunner.Enabled).
		Bool("rules", s.Rules.Enabled).
		Int("strokes", len(s.Strokes)).
		Msg("设置已解析")
}

// LayoutOptions 把设置映射为布局选项，数值在此处钳制到滑块范围。
func (s Settings) LayoutOptions() layout.Options {
	return layout.Options{
		BorderStyle:  s.Overlay.BorderStyle,
		Rounded:      s.Overlay.Rounded,
		ShowNames:    s.Overlay.ShowNames,
		ShowIcons:    s.Overlay.ShowIcons,
		TextOverlays: s.Overlay.TextOverlays,
		Mirrored:     s.Overlay.Mirrored,
		ZoneGap:      clamp(s.Overlay.ZoneGap, MinZoneGap, MaxZoneGap),
		EdgeRunner: layout.EdgeRunnerOptions{
			Enabled: s.EdgeRunner.Enabled,
			Inset:   clamp(s.EdgeRunner.Inset, MinInset, MaxInset),
			Pointed: s.EdgeRunner.Pointed,
		},
	}
}

// OverlayOpacity 返回钳制到 [0,1] 的叠加层不透明度。
func (s Settings) OverlayOpacity() float64 {
	return clamp(s.Overlay.Opacity, 0, 1)
}

// Points 返回笔画的起止点；只给 from 时视为单击。
func (st Stroke) Points() ([2]compose.Point, error) {
	var out [2]compose.Point
	if len(st.From) != 2 {
		return out, fmt.Errorf("from 需要 [x, y]")
	}
	out[0] = compose.Point{X: st.From[0], Y: st.From[1]}
	out[1] = out[0]
	switch len(st.To) {
	case 0:
	case 2:
		out[1] = compose.Point{X: st.To[0], Y: st.To[1]}
	default:
		return out, fmt.Errorf("to 需要 [x, y]")
	}
	return out, nil
}

// ApplyStrokes 在合成画布上重放设置中的全部笔画。
func (s Settings) ApplyStrokes(surface *compose.Surface) error {
	for i, st := range s.Strokes {
		tool, err := compose.ParseTool(strings.ToLower(st.Tool))
		if err != nil {
			return fmt.Errorf("strokes[%d]: %w", i, err)
		}
		pts, err := st.Points()
		if err != nil {
			return fmt.Errorf("strokes[%d]: %w", i, err)
		}
		size, fade := st.Size, st.Fade
		if size == 0 {
			size = s.Brush.Size
		}
		if fade == 0 {
			fade = s.Brush.FadeOpacity
		}
		surface.Paint(tool, pts[0], pts[1], size, fade)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
