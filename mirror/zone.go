package mirror

import "github.com/ByLCY/playmat/mat"

// ZonePatch 描述一次区域编辑。非 nil 字段即为本次修改的字段。
type ZonePatch struct {
	ColStart   *int
	ColSpan    *int
	RowStart   *int
	RowSpan    *int
	UpsideDown *bool
	Locked     *bool
	Name       *string
	Icon       *string
	Text       *mat.TextSpec
}

// Fields 返回被修改的字段名（与配置中的 JSON 键一致）。
func (p ZonePatch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.ColStart != nil, "colStart")
	add(p.ColSpan != nil, "colSpan")
	add(p.RowStart != nil, "rowStart")
	add(p.RowSpan != nil, "rowSpan")
	add(p.UpsideDown != nil, "upsideDown")
	add(p.Locked != nil, "locked")
	add(p.Name != nil, "name")
	add(p.Icon != nil, "icon")
	add(p.Text != nil, "text")
	return out
}

func (p ZonePatch) touchesGeometry() bool {
	return p.ColStart != nil || p.ColSpan != nil || p.RowStart != nil || p.RowSpan != nil
}

// Apply 把补丁写到区域上。
func (p ZonePatch) Apply(z mat.Zone) mat.Zone {
	out := z.Clone()
	setInt(&out.ColStart, p.ColStart)
	setInt(&out.ColSpan, p.ColSpan)
	setInt(&out.RowStart, p.RowStart)
	setInt(&out.RowSpan, p.RowSpan)
	if p.UpsideDown != nil {
		out.UpsideDown = *p.UpsideDown
	}
	if p.Locked != nil {
		out.Locked = *p.Locked
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.Text != nil {
		out.Text = p.Text.Clone()
	}
	return out
}

// ApplyZonePatch 修改 sourceID 对应的区域，并把相关字段同步到镜像区域。
// 找不到镜像区域时只应用直接修改。
func ApplyZonePatch(zones []mat.Zone, sourceID string, patch ZonePatch, cols, rows int) []mat.Zone {
	next := make([]mat.Zone, len(zones))
	sourceIdx := -1
	for i, z := range zones {
		if z.ID == sourceID {
			next[i] = patch.Apply(z)
			sourceIdx = i
			continue
		}
		next[i] = z
	}
	if sourceIdx < 0 {
		return next
	}
	mirrorID, ok := MirrorID(sourceID)
	if !ok {
		return next
	}
	for i := range next {
		if next[i].ID != mirrorID {
			continue
		}
		source := next[sourceIdx]
		target := next[i].Clone()
		target = mirrorGeometry(patch, source, target, cols, rows)
		target = mirrorOrientation(patch, source, target)
		target = mirrorContent(patch, source, target)
		next[i] = target
	}
	return next
}

// mirrorGeometry 任一网格字段变化时，镜像区域取源区域旋转 180° 后的位置。
func mirrorGeometry(patch ZonePatch, source, target mat.Zone, cols, rows int) mat.Zone {
	if !patch.touchesGeometry() {
		return target
	}
	target.ColStart, target.ColSpan, target.RowStart, target.RowSpan = MirroredGeometry(source, cols, rows)
	return target
}

// mirrorOrientation 镜像区域始终朝向相反。
func mirrorOrientation(patch ZonePatch, source, target mat.Zone) mat.Zone {
	if patch.UpsideDown != nil {
		target.UpsideDown = !source.UpsideDown
	}
	return target
}

// mirrorContent 名称、图标、文本原样复制。
func mirrorContent(patch ZonePatch, source, target mat.Zone) mat.Zone {
	if patch.Name != nil {
		target.Name = source.Name
	}
	if patch.Icon != nil {
		target.Icon = source.Icon
	}
	if patch.Text != nil {
		target.Text = source.Text.Clone()
	}
	return target
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
