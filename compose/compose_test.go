package compose

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/playmat/mat"
)

var (
	defaultBG = color.RGBA{R: 0x1f, G: 0x22, B: 0x33, A: 255}
	red       = color.RGBA{R: 255, A: 255}
	blue      = color.RGBA{B: 255, A: 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func redSurface(t *testing.T) *Surface {
	t.Helper()
	s := NewSurface(mat.Size{Width: 100, Height: 100})
	s.SetOverlay(solid(100, 100, red))
	s.SetOverlayOpacity(1)
	return s
}

func TestDefaultSurfaceShowsBackground(t *testing.T) {
	s := NewSurface(mat.Size{Width: 40, Height: 30})
	out := s.Composite()
	assert.Equal(t, image.Rect(0, 0, 40, 30), out.Bounds())
	assert.Equal(t, defaultBG, out.RGBAAt(0, 0))
	assert.Equal(t, defaultBG, out.RGBAAt(39, 29))
}

func TestOverlayOpacity(t *testing.T) {
	s := redSurface(t)
	assert.Equal(t, red, s.Composite().RGBAAt(50, 50))

	s.SetOverlayOpacity(0.5)
	px := s.Composite().RGBAAt(50, 50)
	assert.InDelta(t, 0.5*255+0.5*0x1f, float64(px.R), 2)
	assert.InDelta(t, 0.5*0x33, float64(px.B), 2)

	s.SetOverlayOpacity(3)
	assert.Equal(t, red, s.Composite().RGBAAt(50, 50), "opacity is clamped to 1")
	s.SetOverlayOpacity(-1)
	assert.Equal(t, defaultBG, s.Composite().RGBAAt(50, 50), "opacity is clamped to 0")
}

func TestHiddenOverlay(t *testing.T) {
	s := redSurface(t)
	s.SetShowOverlay(false)
	assert.Equal(t, defaultBG, s.Composite().RGBAAt(50, 50))
}

func TestEraserRevealsBackground(t *testing.T) {
	s := redSurface(t)
	s.Paint(ToolEraser, Point{X: 50.5, Y: 50.5}, Point{X: 50.5, Y: 50.5}, DefaultBrushSize, DefaultFadeOpacity)

	out := s.Composite()
	assert.Equal(t, defaultBG, out.RGBAAt(50, 50))
	assert.Equal(t, defaultBG, out.RGBAAt(60, 50))
	assert.Equal(t, red, out.RGBAAt(90, 50), "outside the brush radius")
	assert.InDelta(t, 1, s.Mask().Value(50, 50), 1e-9)
	assert.Zero(t, s.Mask().Value(5, 5))
}

func TestStrokeCoversSegment(t *testing.T) {
	s := redSurface(t)
	s.Paint(ToolEraser, Point{X: 10, Y: 50}, Point{X: 90, Y: 50}, 10, 1)

	m := s.Mask()
	for _, x := range []int{10, 30, 50, 70, 89} {
		assert.InDelta(t, 1, m.Value(x, 50), 1e-9, "x=%d", x)
	}
	assert.Zero(t, m.Value(50, 70))
	assert.Zero(t, m.Value(50, 30))
}

func TestFadeAccumulates(t *testing.T) {
	m := NewMask(100, 100)
	p := Point{X: 50.5, Y: 50.5}
	m.Paint(ToolFade, p, p, 40, 0.4)
	assert.InDelta(t, 0.4, m.Value(50, 50), 0.01)
	m.Paint(ToolFade, p, p, 40, 0.4)
	assert.InDelta(t, 0.64, m.Value(50, 50), 0.01)
}

func TestFadeBlendsOverlay(t *testing.T) {
	s := redSurface(t)
	p := Point{X: 50.5, Y: 50.5}
	s.Paint(ToolFade, p, p, 40, 0.4)
	px := s.Composite().RGBAAt(50, 50)
	assert.InDelta(t, 0.6*255+0.4*0x1f, float64(px.R), 2)
}

func TestRestoreUndoesErase(t *testing.T) {
	s := redSurface(t)
	p := Point{X: 50.5, Y: 50.5}
	s.Paint(ToolEraser, p, p, 60, 1)
	s.Paint(ToolRestore, p, p, 20, 1)

	out := s.Composite()
	assert.Equal(t, red, out.RGBAAt(50, 50))
	assert.Equal(t, defaultBG, out.RGBAAt(50, 72))
}

func TestNoneToolAndClear(t *testing.T) {
	s := redSurface(t)
	p := Point{X: 50, Y: 50}
	s.Paint(ToolNone, p, p, 40, 1)
	assert.Zero(t, s.Mask().Value(50, 50))

	s.Paint(ToolEraser, p, p, 40, 1)
	require.NotZero(t, s.Mask().Value(50, 50))
	s.Mask().Clear()
	assert.Zero(t, s.Mask().Value(50, 50))
	assert.Equal(t, red, s.Composite().RGBAAt(50, 50))
}

func TestBrushSizeIsClamped(t *testing.T) {
	s := redSurface(t)
	p := Point{X: 50.5, Y: 50.5}
	s.Paint(ToolEraser, p, p, 0, 1)
	assert.InDelta(t, 1, s.Mask().Value(50, 50), 1e-9, "brush grows to the minimum")
	assert.Zero(t, s.Mask().Value(50, 45))
}

func TestStrokeOutsideCanvas(t *testing.T) {
	m := NewMask(10, 10)
	m.Paint(ToolEraser, Point{X: -100, Y: -100}, Point{X: -80, Y: -80}, 10, 1)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.Zero(t, m.Value(x, y))
		}
	}
}

func TestParseTool(t *testing.T) {
	for name, want := range map[string]Tool{"none": ToolNone, "eraser": ToolEraser, "fade": ToolFade, "restore": ToolRestore} {
		got, err := ParseTool(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTool("smudge")
	assert.Error(t, err)
}

func TestBackgroundColor(t *testing.T) {
	s := NewSurface(mat.Size{Width: 4, Height: 4})
	require.NoError(t, s.SetBackgroundColor("#00ff00"))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, s.Composite().RGBAAt(1, 1))

	assert.Error(t, s.SetBackgroundColor("green"))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, s.Composite().RGBAAt(1, 1))
}

func TestCoverRect(t *testing.T) {
	assert.Equal(t, image.Rect(-50, 0, 150, 100), CoverRect(2, 1, 100, 100))
	assert.Equal(t, image.Rect(0, -25, 100, 125), CoverRect(400, 600, 100, 100))
	assert.Equal(t, image.Rect(0, 0, 200, 100), CoverRect(20, 10, 200, 100))
	assert.True(t, CoverRect(0, 10, 100, 100).Empty())
}

func assertColorNear(t *testing.T, want, got color.RGBA, msg string) {
	t.Helper()
	assert.InDelta(t, float64(want.R), float64(got.R), 2, msg)
	assert.InDelta(t, float64(want.G), float64(got.G), 2, msg)
	assert.InDelta(t, float64(want.B), float64(got.B), 2, msg)
	assert.Equal(t, uint8(255), got.A, msg)
}

func TestBackgroundImageCover(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				src.SetRGBA(x, y, red)
			} else {
				src.SetRGBA(x, y, blue)
			}
		}
	}

	s := NewSurface(mat.Size{Width: 100, Height: 100})
	s.SetBackgroundImage(src)
	out := s.Composite()
	assertColorNear(t, red, out.RGBAAt(5, 50), "left edge shows the red half")
	assertColorNear(t, blue, out.RGBAAt(95, 50), "right edge shows the blue half")
	assertColorNear(t, red, out.RGBAAt(5, 0), "image covers the top row")

	s.SetBackgroundImage(nil)
	assert.Equal(t, defaultBG, s.Composite().RGBAAt(5, 50))
}

func TestExportPNG(t *testing.T) {
	s := redSurface(t)
	var buf bytes.Buffer
	require.NoError(t, s.ExportPNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	r, _, _, a := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestLoadImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(3, 2, blue)))

	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	img, err = LoadImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dy())

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
