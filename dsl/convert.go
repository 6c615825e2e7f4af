package dsl

import (
	"fmt"
	"math"

	"github.com/ByLCY/playmat/binding"
	"github.com/ByLCY/playmat/icons"
	"github.com/ByLCY/playmat/mat"
)

// ToConfiguration 把 .mat 文档转换为桌垫配置，字符串中的 ${path} 用 data 插值，
// "@sword" 形式的图标引用解析为预设字符。一条轨道写入 scoreTrack，多条写入 scoreTracks。
func ToConfiguration(doc *Document, data any) (mat.Configuration, error) {
	if doc == nil {
		return mat.Configuration{}, fmt.Errorf("dsl: 文档为空")
	}
	c := &converter{data: data}
	cfg := mat.Configuration{GridCols: 4, GridRows: 3}
	var tracks []mat.ScoreTrack
	seen := map[string]bool{}

	for _, st := range doc.Statements {
		if a := st.Assignment; a != nil {
			var err error
			switch a.Key {
			case "canvas":
				var w, h int
				if w, h, err = c.pair(a); err == nil {
					cfg.Canvas = &mat.Canvas{Width: w, Height: h}
				}
			case "grid":
				cfg.GridCols, cfg.GridRows, err = c.pair(a)
			case "rows":
				cfg.RowHeights, err = c.floats(a)
			default:
				err = unknownKey(a)
			}
			if err != nil {
				return mat.Configuration{}, err
			}
			continue
		}

		cmd := st.Command
		switch cmd.Name {
		case "zone":
			z, err := c.zone(cmd)
			if err != nil {
				return mat.Configuration{}, err
			}
			if seen[z.ID] {
				return mat.Configuration{}, fmt.Errorf("%s: 区域 %s 重复定义", cmd.Pos, z.ID)
			}
			seen[z.ID] = true
			cfg.Zones = append(cfg.Zones, z)
		case "track":
			t, err := c.track(cmd)
			if err != nil {
				return mat.Configuration{}, err
			}
			tracks = append(tracks, t)
		default:
			return mat.Configuration{}, fmt.Errorf("%s: 未知指令 %s", cmd.Pos, cmd.Name)
		}
	}

	switch len(tracks) {
	case 0:
	case 1:
		cfg.ScoreTrack = &tracks[0]
	default:
		cfg.ScoreTracks = tracks
	}
	return cfg, nil
}

// ParseConfiguration 解析并转换 .mat 源文本。
func ParseConfiguration(input string, data any) (mat.Configuration, error) {
	doc, err := ParseString(input)
	if err != nil {
		return mat.Configuration{}, fmt.Errorf("解析 .mat 失败: %w", err)
	}
	return ToConfiguration(doc, data)
}

// LoadFile 读取 .mat 文件并转换为配置。
func LoadFile(path string, data any) (mat.Configuration, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return mat.Configuration{}, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return ToConfiguration(doc, data)
}

type converter struct {
	data any
}

func (c *converter) zone(cmd *Command) (mat.Zone, error) {
	if len(cmd.Args) != 1 {
		return mat.Zone{}, fmt.Errorf("%s: zone 需要且只需要一个 id", cmd.Pos)
	}
	z := mat.Zone{
		ID:       c.interpolate(cmd.Args[0].Text()),
		ColStart: 1,
		ColSpan:  1,
		RowStart: 1,
		RowSpan:  1,
		Text:     mat.EmptyText(),
	}
	for _, st := range statements(cmd) {
		if st.Command != nil {
			if st.Command.Name != "text" {
				return mat.Zone{}, fmt.Errorf("%s: zone 中不支持 %s", st.Command.Pos, st.Command.Name)
			}
			entry, err := c.text(st.Command)
			if err != nil {
				return mat.Zone{}, err
			}
			z.TextEntries = append(z.TextEntries, entry)
			continue
		}
		a := st.Assignment
		var err error
		switch a.Key {
		case "name":
			z.Name, err = c.str(a)
		case "icon":
			var icon string
			icon, err = c.str(a)
			z.Icon = icons.Resolve(icon)
		case "cols":
			z.ColStart, z.ColSpan, err = c.pair(a)
		case "rows":
			z.RowStart, z.RowSpan, err = c.pair(a)
		case "locked":
			z.Locked, err = c.boolean(a)
		case "upsideDown":
			z.UpsideDown, err = c.boolean(a)
		case "text":
			var content string
			if content, err = c.str(a); err == nil {
				z.Text.Content = content
				z.Text.Enabled = content != ""
			}
		default:
			err = unknownKey(a)
		}
		if err != nil {
			return mat.Zone{}, err
		}
	}
	return z, nil
}

// text 解析 zone 内的 text { ... } 规则文本块，百分比相对于区域矩形。
func (c *converter) text(cmd *Command) (mat.TextSpec, error) {
	spec := mat.TextSpec{Align: mat.AlignCenter, VAlign: mat.VAlignMiddle, Enabled: true}
	for _, st := range statements(cmd) {
		if st.Command != nil {
			return spec, fmt.Errorf("%s: text 中不支持 %s", st.Command.Pos, st.Command.Name)
		}
		a := st.Assignment
		var err error
		switch a.Key {
		case "content":
			spec.Content, err = c.str(a)
		case "align":
			spec.Align, err = c.str(a)
		case "valign":
			spec.VAlign, err = c.str(a)
		case "color":
			spec.Color, err = c.str(a)
		case "size":
			spec.FontSize, err = c.num(a)
		case "enabled":
			spec.Enabled, err = c.boolean(a)
		case "x":
			spec.XPct, err = c.optional(a)
		case "y":
			spec.YPct, err = c.optional(a)
		case "w":
			spec.WPct, err = c.optional(a)
		case "h":
			spec.HPct, err = c.optional(a)
		default:
			err = unknownKey(a)
		}
		if err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func (c *converter) track(cmd *Command) (mat.ScoreTrack, error) {
	var t mat.ScoreTrack
	for _, st := range statements(cmd) {
		if st.Command != nil {
			if st.Command.Name != "point" {
				return t, fmt.Errorf("%s: track 中不支持 %s", st.Command.Pos, st.Command.Name)
			}
			p, err := c.point(st.Command)
			if err != nil {
				return t, err
			}
			t.Points = append(t.Points, p)
			continue
		}
		a := st.Assignment
		var err error
		switch a.Key {
		case "count":
			t.Count, err = c.integer(a)
		case "start":
			t.StartValue, err = c.integer(a)
		case "position":
			t.Position, err = c.str(a)
		case "name":
			t.Name, err = c.str(a)
		case "x":
			t.X, err = c.optional(a)
		case "yStart":
			t.YStart, err = c.optional(a)
		case "yEnd":
			t.YEnd, err = c.optional(a)
		case "orbScale":
			t.OrbScale, err = c.num(a)
		case "upsideDown":
			t.UpsideDown, err = c.boolean(a)
		case "shift":
			t.EdgeRunnerXShift, err = c.num(a)
		default:
			err = unknownKey(a)
		}
		if err != nil {
			return t, err
		}
	}
	return t, nil
}

// point 中 x/y 为画布比例，px/py 为像素。
func (c *converter) point(cmd *Command) (mat.ExplicitPoint, error) {
	var p mat.ExplicitPoint
	for _, st := range statements(cmd) {
		if st.Command != nil {
			return p, fmt.Errorf("%s: point 中不支持 %s", st.Command.Pos, st.Command.Name)
		}
		a := st.Assignment
		var err error
		switch a.Key {
		case "x":
			p.XPct, err = c.optional(a)
		case "y":
			p.YPct, err = c.optional(a)
		case "px":
			p.X, err = c.optional(a)
		case "py":
			p.Y, err = c.optional(a)
		case "label":
			if a.Value.Number != nil {
				p.Label = mat.Label(*a.Value.Number)
				break
			}
			var s string
			if s, err = c.str(a); err == nil {
				p.Label = mat.Label(s)
			}
		default:
			err = unknownKey(a)
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

func statements(cmd *Command) []*Statement {
	if cmd.Block == nil {
		return nil
	}
	return cmd.Block.Statements
}

func (c *converter) interpolate(s string) string {
	return binding.Interpolate(s, c.data)
}

func (c *converter) str(a *Assignment) (string, error) {
	v := a.Value
	switch {
	case v.String != nil:
		return c.interpolate(string(*v.String)), nil
	case v.Ident != nil:
		return *v.Ident, nil
	case v.Color != nil:
		return *v.Color, nil
	case v.Number != nil:
		return fmt.Sprint(*v.Number), nil
	}
	return "", typeError(a, "字符串")
}

func (c *converter) num(a *Assignment) (float64, error) {
	if a.Value.Number == nil {
		return 0, typeError(a, "数字")
	}
	return *a.Value.Number, nil
}

func (c *converter) optional(a *Assignment) (*float64, error) {
	v, err := c.num(a)
	if err != nil {
		return nil, err
	}
	return mat.Float(v), nil
}

func (c *converter) integer(a *Assignment) (int, error) {
	v, err := c.num(a)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, typeError(a, "整数")
	}
	return int(v), nil
}

func (c *converter) boolean(a *Assignment) (bool, error) {
	if a.Value.Bool == nil {
		return false, typeError(a, "true 或 false")
	}
	return bool(*a.Value.Bool), nil
}

func (c *converter) floats(a *Assignment) ([]float64, error) {
	if a.Value.Array == nil {
		return nil, typeError(a, "数组")
	}
	out := make([]float64, 0, len(a.Value.Array.Values))
	for _, v := range a.Value.Array.Values {
		if v.Number == nil {
			return nil, typeError(a, "数字数组")
		}
		out = append(out, *v.Number)
	}
	return out, nil
}

func (c *converter) pair(a *Assignment) (int, int, error) {
	vals, err := c.floats(a)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 || vals[0] != math.Trunc(vals[0]) || vals[1] != math.Trunc(vals[1]) {
		return 0, 0, typeError(a, "两个整数组成的数组")
	}
	return int(vals[0]), int(vals[1]), nil
}

func unknownKey(a *Assignment) error {
	return fmt.Errorf("%s: 未知属性 %s", a.Pos, a.Key)
}

func typeError(a *Assignment, want string) error {
	return fmt.Errorf("%s: %s 需要%s", a.Pos, a.Key, want)
}
