package mat

// Clone 返回配置的深拷贝，修改结果不会影响原对象（预设模板依赖这一点）。
func (c Configuration) Clone() Configuration {
	out := c
	if c.Canvas != nil {
		cv := *c.Canvas
		out.Canvas = &cv
	}
	if c.RowHeights != nil {
		out.RowHeights = append([]float64(nil), c.RowHeights...)
	}
	if c.Zones != nil {
		out.Zones = make([]Zone, len(c.Zones))
		for i, z := range c.Zones {
			out.Zones[i] = z.Clone()
		}
	}
	if c.ScoreTrack != nil {
		t := c.ScoreTrack.Clone()
		out.ScoreTrack = &t
	}
	out.ScoreTracks = cloneTracks(c.ScoreTracks)
	return out
}

// Clone 深拷贝一个区域。
func (z Zone) Clone() Zone {
	out := z
	out.Text = z.Text.Clone()
	if z.TextEntries != nil {
		out.TextEntries = make([]TextSpec, len(z.TextEntries))
		for i, e := range z.TextEntries {
			out.TextEntries[i] = e.Clone()
		}
	}
	return out
}

// Clone 深拷贝文本定义。
func (t TextSpec) Clone() TextSpec {
	out := t
	out.XPct = clonePtr(t.XPct)
	out.YPct = clonePtr(t.YPct)
	out.WPct = clonePtr(t.WPct)
	out.HPct = clonePtr(t.HPct)
	return out
}

// Clone 深拷贝计分轨道。
func (t ScoreTrack) Clone() ScoreTrack {
	out := t
	out.YStart = clonePtr(t.YStart)
	out.YEnd = clonePtr(t.YEnd)
	out.X = clonePtr(t.X)
	if t.Points != nil {
		out.Points = make([]ExplicitPoint, len(t.Points))
		for i, p := range t.Points {
			out.Points[i] = ExplicitPoint{
				XPct: clonePtr(p.XPct),
				YPct: clonePtr(p.YPct),
				X:    clonePtr(p.X),
				Y:    clonePtr(p.Y),
			}
			if p.Label != nil {
				l := *p.Label
				out.Points[i].Label = &l
			}
		}
	}
	return out
}

func cloneTracks(tracks []ScoreTrack) []ScoreTrack {
	if tracks == nil {
		return nil
	}
	out := make([]ScoreTrack, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
