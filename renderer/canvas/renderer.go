package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"

	"github.com/ByLCY/playmat/fonts"
	"github.com/ByLCY/playmat/icons"
	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
	"github.com/ByLCY/playmat/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
// 画布以 1 单位 = 1mm 建立，按 DPMM(1) 光栅化后恰好 1 单位 = 1 像素。
type Renderer struct {
	// injected resources
	fontBlobs map[string][]byte // by font role (layout.FontIcon / layout.FontText)

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily

	imageMu sync.Mutex
	images  map[string]image.Image // decoded data URLs
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Fonts map[string]Resource // keyed by layout.FontIcon / layout.FontText
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that uses the built-in Go fonts for everything.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
// 读取失败的字体会被忽略，使用时退回内置字体。
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
		images:       map[string]image.Image{},
	}
	for role, res := range opts.Fonts {
		if role == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[role] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path)
			if len(data) > 0 {
				r.fontBlobs[role] = data
			}
		}
	}
	return r
}

// TextWidth 实现 layout.Typesetter，fontSize 与返回值均为像素。
func (r *Renderer) TextWidth(content string, fontSize float64, bold bool) float64 {
	face, err := r.fontFace(layout.FontText, bold, fontSize, layout.Color{}, 1)
	if err != nil {
		return float64(len([]rune(content))) * fontSize * 0.55
	}
	return face.TextWidth(content)
}

// Render 将布局结果光栅化并编码为 PNG。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	img, err := r.Rasterize(result)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize 把布局结果绘制到透明画布上，图像尺寸与桌垫尺寸一致。
func (r *Renderer) Rasterize(result *layout.Result) (*image.RGBA, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}
	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	if err := r.Draw(ctx, result); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

// Overlay 计算布局并光栅化为叠加层图像。
func (r *Renderer) Overlay(strokeColor string, cfg mat.Configuration, opts layout.Options) (*image.RGBA, error) {
	res, err := layout.Build(cfg, strokeColor, opts, r)
	if err != nil {
		return nil, err
	}
	return r.Rasterize(res)
}

// RenderOverlay 在调用方提供的画布上绘制叠加层，画布应与桌垫等大。
func (r *Renderer) RenderOverlay(ctx *canvas.Context, strokeColor string, cfg mat.Configuration, opts layout.Options) error {
	res, err := layout.Build(cfg, strokeColor, opts, r)
	if err != nil {
		return err
	}
	return r.Draw(ctx, res)
}

// Draw 按 边缘装饰线 -> 区域 -> 计分轨道 的顺序绘制。
// ctx 使用默认的 y 向上坐标系，布局坐标（y 向下）在这里统一翻转。
func (r *Renderer) Draw(ctx *canvas.Context, res *layout.Result) error {
	p := &painter{r: r, ctx: ctx, res: res}
	if res.EdgeRunner != nil {
		p.edgeRunner(*res.EdgeRunner)
	}
	for _, z := range res.Zones {
		if err := p.zone(z); err != nil {
			return err
		}
	}
	for _, t := range res.Tracks {
		if err := p.track(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) fontFace(role string, bold bool, sizePx float64, col layout.Color, alpha float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(role)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold && role == layout.FontText {
		style = canvas.FontBold
	}
	return family.Face(toPt(sizePx), colorFromLayout(col, alpha), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(role string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[role]; ok {
		return family, nil
	}

	family := canvas.NewFontFamily("playmat-" + role)
	if blob, ok := r.fontBlobs[role]; ok {
		if err := family.LoadFont(blob, 0, canvas.FontRegular); err == nil {
			if role == layout.FontText {
				_ = family.LoadFont(blob, 0, canvas.FontBold)
			}
			r.fontFamilies[role] = family
			return family, nil
		}
	}
	if err := family.LoadFont(fonts.Builtin(false), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体失败: %w", err)
	}
	if err := family.LoadFont(fonts.Builtin(true), 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("加载内置粗体失败: %w", err)
	}
	r.fontFamilies[role] = family
	return family, nil
}

// decodeImage 解码 data URL 图标，并按 alpha 预先调整透明度。结果按 (src, alpha) 缓存。
func (r *Renderer) decodeImage(src string, alpha float64) (image.Image, error) {
	key := fmt.Sprintf("%g|%s", alpha, src)
	r.imageMu.Lock()
	defer r.imageMu.Unlock()
	if img, ok := r.images[key]; ok {
		return img, nil
	}
	img, err := icons.DecodeImage(src)
	if err != nil {
		return nil, fmt.Errorf("解码图标图片失败: %w", err)
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(clampUnit(alpha)*255 + 0.5)})
	draw.DrawMask(out, out.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	r.images[key] = out
	return out, nil
}

func colorFromLayout(c layout.Color, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, clampUnit(alpha))
}

func clampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toPt 将像素字号转换为点(pt)。
func toPt(px float64) float64 { return layout.ToPt(px) }
