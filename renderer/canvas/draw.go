package canvasrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
)

var transparent = color.RGBA{0, 0, 0, 0}

// painter 绘制一个 layout.Result。布局坐标 y 向下，canvas 默认 y 向上，由 fy 换算。
type painter struct {
	r   *Renderer
	ctx *canvas.Context
	res *layout.Result
}

func (p *painter) fy(y float64) float64 { return p.res.Height - y }

func (p *painter) stroke(alpha, width float64) {
	p.ctx.SetFillColor(transparent)
	p.ctx.SetStrokeColor(colorFromLayout(p.res.Color, alpha))
	p.ctx.SetStrokeWidth(width)
}

func (p *painter) fill(alpha float64) {
	p.ctx.SetFillColor(colorFromLayout(p.res.Color, alpha))
	p.ctx.SetStrokeColor(transparent)
}

// rotated 在 fn 执行期间绕 (cx, cy) 旋转 rotation 度（布局坐标）。
func (p *painter) rotated(rotation, cx, cy float64, fn func() error) error {
	if rotation == 0 {
		return fn()
	}
	p.ctx.Push()
	defer p.ctx.Pop()
	p.ctx.ComposeView(canvas.Identity.RotateAbout(rotation, cx, p.fy(cy)))
	return fn()
}

// rectPath 返回矩形（可带圆角）路径，需在 (x, fy(y+h)) 处绘制。
func rectPath(r layout.Rect, radius float64) *canvas.Path {
	if radius > 0 {
		return canvas.RoundedRectangle(r.Width, r.Height, radius)
	}
	return canvas.Rectangle(r.Width, r.Height)
}

func (p *painter) edgeRunner(er layout.EdgeRunner) {
	p.stroke(er.Alpha, er.LineWidth)
	r := er.Rect
	if !er.Pointed {
		p.ctx.DrawPath(r.X, p.fy(r.Y+r.Height), rectPath(r, er.Radius))
		return
	}
	c := er.Cut
	path := &canvas.Path{}
	path.MoveTo(r.X+c, p.fy(r.Y))
	path.LineTo(r.X+r.Width-c, p.fy(r.Y))
	path.LineTo(r.X+r.Width, p.fy(r.Y+c))
	path.LineTo(r.X+r.Width, p.fy(r.Y+r.Height-c))
	path.LineTo(r.X+r.Width-c, p.fy(r.Y+r.Height))
	path.LineTo(r.X+c, p.fy(r.Y+r.Height))
	path.LineTo(r.X, p.fy(r.Y+r.Height-c))
	path.LineTo(r.X, p.fy(r.Y+c))
	path.Close()
	p.ctx.DrawPath(0, 0, path)
}

func (p *painter) zone(z layout.ZoneBox) error {
	cx, cy := z.Rect.Center()
	return p.rotated(z.Rotation, cx, cy, func() error {
		switch z.Border {
		case layout.BorderFull:
			shape := rectPath(z.Rect, z.Radius)
			p.fill(z.FillAlpha)
			p.ctx.DrawPath(z.Rect.X, p.fy(z.Rect.Y+z.Rect.Height), shape)
			p.stroke(1, p.res.StrokeWidth)
			p.ctx.DrawPath(z.Rect.X, p.fy(z.Rect.Y+z.Rect.Height), shape)
		case layout.BorderCorners:
			if z.Corner != nil {
				p.stroke(1, p.res.StrokeWidth)
				p.ctx.DrawPath(0, 0, p.cornersPath(z.Rect, *z.Corner))
			}
		}

		if z.Icon != nil {
			if err := p.label(*z.Icon); err != nil {
				return err
			}
		}
		if z.IconImage != nil {
			if err := p.image(*z.IconImage); err != nil {
				return err
			}
		}
		if z.Title != nil {
			if err := p.label(*z.Title); err != nil {
				return err
			}
		}
		for _, tb := range z.Texts {
			if err := p.textBox(tb); err != nil {
				return err
			}
		}
		return nil
	})
}

// cornersPath 四个角各画一段 L 形折线，圆角用二次曲线近似。
func (p *painter) cornersPath(r layout.Rect, c layout.Corners) *canvas.Path {
	L, rad := c.Length, c.Radius
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	path := &canvas.Path{}
	corner := func(ax, ay, bx, by, kx, ky, cx, cy, dx, dy float64) {
		path.MoveTo(ax, p.fy(ay))
		path.LineTo(bx, p.fy(by))
		if rad > 0 {
			path.QuadTo(kx, p.fy(ky), cx, p.fy(cy))
		}
		path.LineTo(dx, p.fy(dy))
	}
	corner(x0+L, y0, x0+rad, y0, x0, y0, x0, y0+rad, x0, y0+L)
	corner(x1-L, y0, x1-rad, y0, x1, y0, x1, y0+rad, x1, y0+L)
	corner(x1, y1-L, x1, y1-rad, x1, y1, x1-rad, y1, x1-L, y1)
	corner(x0+L, y1, x0+rad, y1, x0, y1, x0, y1-rad, x0, y1-L)
	return path
}

// label 绘制以 (X, Y) 为锚点、垂直居中的单行文字。
func (p *painter) label(l layout.Label) error {
	face, err := p.r.fontFace(l.Font, l.Bold, l.FontSize, p.res.Color, l.Alpha)
	if err != nil {
		return err
	}
	return p.rotated(l.Rotation, l.X, l.Y, func() error {
		m := face.Metrics()
		baseline := l.Y + (m.Ascent-m.Descent)/2
		p.ctx.DrawText(l.X, p.fy(baseline), canvas.NewTextLine(face, l.Content, textAlign(l.Align)))
		return nil
	})
}

func (p *painter) textBox(tb layout.TextBox) error {
	face, err := p.r.fontFace(layout.FontText, true, tb.FontSize, tb.Color, tb.Alpha)
	if err != nil {
		return err
	}
	align := textAlign(tb.Align)
	ascent := face.Metrics().Ascent
	for _, line := range tb.Lines {
		// 基线位置：行顶加上字体上升部
		p.ctx.DrawText(line.X, p.fy(line.Y+ascent), canvas.NewTextLine(face, line.Content, align))
	}
	return nil
}

// image 等比缩放到槽位宽度，并在槽位内垂直居中。无法解码的图片留空，不影响其余绘制。
func (p *painter) image(box layout.ImageBox) error {
	img, err := p.r.decodeImage(box.Src, box.Alpha)
	if err != nil {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || box.Width <= 0 {
		return nil
	}
	dpmm := float64(b.Dx()) / box.Width
	h := float64(b.Dy()) / dpmm
	top := box.Y + (box.Height-h)/2
	p.ctx.DrawImage(box.X, p.fy(top+h), img, canvas.DPMM(dpmm))
	return nil
}

func (p *painter) track(t layout.TrackBox) error {
	for _, o := range t.Orbs {
		circle := canvas.Circle(o.R)
		p.fill(o.FillAlpha)
		p.ctx.DrawPath(o.CX, p.fy(o.CY), circle)
		p.stroke(1, p.res.StrokeWidth)
		p.ctx.DrawPath(o.CX, p.fy(o.CY), circle)

		label := layout.Label{
			Content:  o.Label,
			X:        o.CX,
			Y:        o.CY,
			FontSize: o.FontSize,
			Font:     layout.FontText,
			Bold:     true,
			Align:    mat.AlignCenter,
			Alpha:    o.LabelAlpha,
			Rotation: o.Rotation,
		}
		if err := p.label(label); err != nil {
			return err
		}
	}
	if t.Name != nil {
		return p.label(*t.Name)
	}
	return nil
}

func textAlign(align string) canvas.TextAlign {
	switch align {
	case mat.AlignLeft:
		return canvas.Left
	case mat.AlignRight:
		return canvas.Right
	default:
		return canvas.Center
	}
}
