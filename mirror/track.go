package mirror

import (
	"math"

	"github.com/ByLCY/playmat/mat"
)

// TrackPatch 描述一次计分轨道编辑。X 的修改需要能表达「清空」，
// 所以用 SetX 标记，X 为 nil 时表示改回按位置摆放。
type TrackPatch struct {
	Count      *int
	StartValue *int
	Name       *string
	OrbScale   *float64
	Position   *string
	YStart     *float64
	YEnd       *float64
	UpsideDown *bool
	SetX       bool
	X          *float64
}

// Fields 返回被修改的字段名。
func (p TrackPatch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.Count != nil, "count")
	add(p.StartValue != nil, "startValue")
	add(p.Name != nil, "name")
	add(p.OrbScale != nil, "orbScale")
	add(p.Position != nil, "position")
	add(p.YStart != nil, "yStart")
	add(p.YEnd != nil, "yEnd")
	add(p.UpsideDown != nil, "upsideDown")
	add(p.SetX, "x")
	return out
}

// Apply 把补丁写到轨道上。
func (p TrackPatch) Apply(t mat.ScoreTrack) mat.ScoreTrack {
	out := t.Clone()
	setInt(&out.Count, p.Count)
	setInt(&out.StartValue, p.StartValue)
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.OrbScale != nil {
		out.OrbScale = *p.OrbScale
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.YStart != nil {
		out.YStart = mat.Float(*p.YStart)
	}
	if p.YEnd != nil {
		out.YEnd = mat.Float(*p.YEnd)
	}
	if p.UpsideDown != nil {
		out.UpsideDown = *p.UpsideDown
	}
	if p.SetX {
		out.X = nil
		if p.X != nil {
			out.X = mat.Float(*p.X)
		}
	}
	return out
}

// ApplyScoreTrackPatch 修改第 idx 条轨道；恰好两条轨道时同步另一条。
//
// position 变化时只清空镜像轨道的 x，源轨道保留自己的 x。
func ApplyScoreTrackPatch(tracks []mat.ScoreTrack, idx int, patch TrackPatch, canvasWidth float64) []mat.ScoreTrack {
	next := make([]mat.ScoreTrack, len(tracks))
	for i, t := range tracks {
		if i == idx {
			next[i] = patch.Apply(t)
			continue
		}
		next[i] = t
	}
	if len(next) != 2 || idx < 0 || idx > 1 {
		return next
	}
	mirrorIdx := 1 - idx
	source := next[idx]
	target := next[mirrorIdx].Clone()

	if patch.Count != nil {
		target.Count = source.Count
	}
	if patch.Name != nil {
		target.Name = source.Name
	}
	if patch.OrbScale != nil {
		target.OrbScale = source.OrbScale
	}
	if patch.Position != nil {
		target.Position = MirrorPosition(source.Position)
		target.X = nil
	}
	if patch.YStart != nil || patch.YEnd != nil {
		start, end := source.Span()
		target.YStart = mat.Float(mat.ClampFloat(1-end, 0, 1))
		target.YEnd = mat.Float(mat.ClampFloat(1-start, 0, 1))
	}
	if patch.UpsideDown != nil {
		target.UpsideDown = !source.UpsideDown
	}
	if patch.SetX {
		target.X = nil
		if source.X != nil {
			target.X = mat.Float(math.Max(0, canvasWidth-*source.X))
		}
	}
	next[mirrorIdx] = target
	return next
}
