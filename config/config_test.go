package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/playmat/compose"
	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, mat.Preset1PWithBattlefield, s.Preset)
	assert.Equal(t, "#c89b3c", s.Overlay.Color)
	assert.Equal(t, 0.85, s.Overlay.Opacity)
	assert.True(t, s.Overlay.Show)
	assert.Equal(t, "full", s.Overlay.BorderStyle)
	assert.True(t, s.Overlay.Rounded)
	assert.True(t, s.Overlay.ShowNames)
	assert.True(t, s.Overlay.ShowIcons)
	assert.False(t, s.Overlay.TextOverlays)
	assert.False(t, s.Overlay.Mirrored)
	assert.Equal(t, 20.0, s.Overlay.ZoneGap)
	assert.False(t, s.EdgeRunner.Enabled)
	assert.Equal(t, 18.0, s.EdgeRunner.Inset)
	assert.False(t, s.EdgeRunner.Pointed)
	assert.Equal(t, "#1f2233", s.Background.Color)
	assert.Empty(t, s.Background.Image)
	assert.False(t, s.Rules.Enabled)
	assert.Empty(t, s.Fonts.Icon)
	assert.Equal(t, 40.0, s.Brush.Size)
	assert.Equal(t, 0.4, s.Brush.FadeOpacity)
	assert.Empty(t, s.Strokes)
}

func TestLoad_WithJSONFile(t *testing.T) {
	path := writeFile(t, "settings.json", `{
		"logLevel": "debug",
		"preset": "2p-battlefield-alt-2",
		"overlay": { "color": "#ffffff", "mirrored": true, "zoneGap": 12 },
		"edgeRunner": { "enabled": true, "pointed": true },
		"rules": { "enabled": true }
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, mat.Preset2PBattlefieldAlt2, s.Preset)
	assert.Equal(t, "#ffffff", s.Overlay.Color)
	assert.True(t, s.Overlay.Mirrored)
	assert.Equal(t, 12.0, s.Overlay.ZoneGap)
	assert.True(t, s.Overlay.ShowNames, "unset keys keep their defaults")
	assert.True(t, s.EdgeRunner.Enabled)
	assert.Equal(t, 18.0, s.EdgeRunner.Inset)
	assert.True(t, s.Rules.Enabled)
}

func TestLoad_WithYAMLStrokes(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
background:
  color: "#000000"
brush:
  size: 60
strokes:
  - tool: eraser
    from: [100, 100]
    to: [300, 100]
  - tool: fade
    from: [50, 50]
    fade: 0.7
`)
	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Strokes, 2)
	assert.Equal(t, "eraser", s.Strokes[0].Tool)
	assert.Equal(t, []float64{300, 100}, s.Strokes[0].To)
	assert.Equal(t, 0.7, s.Strokes[1].Fade)

	pts, err := s.Strokes[1].Points()
	require.NoError(t, err)
	assert.Equal(t, pts[0], pts[1], "a stroke without 'to' is a single dab")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/settings.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	_, err = Load(writeFile(t, "bad-preset.json", `{"preset": "3p"}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad-color.json", `{"overlay": {"color": "gold"}}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad-tool.json", `{"strokes": [{"tool": "smudge", "from": [1, 2]}]}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad-point.json", `{"strokes": [{"tool": "eraser", "from": [1]}]}`))
	assert.Error(t, err)
}

func TestLayoutOptionsClamp(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	opts := s.LayoutOptions()
	assert.Equal(t, layout.BorderFull, opts.BorderStyle)
	assert.Equal(t, 20.0, opts.ZoneGap)
	assert.Equal(t, layout.DefaultEdgeInset, opts.EdgeRunner.Inset)
	assert.False(t, opts.TextOverlays)

	s.Overlay.ZoneGap = 500
	s.EdgeRunner.Inset = 1
	s.Overlay.Opacity = 1.5
	opts = s.LayoutOptions()
	assert.Equal(t, MaxZoneGap, opts.ZoneGap)
	assert.Equal(t, MinInset, opts.EdgeRunner.Inset)
	assert.Equal(t, 1.0, s.OverlayOpacity())

	s.Overlay.ZoneGap = -3
	s.Overlay.Opacity = -1
	assert.Equal(t, MinZoneGap, s.LayoutOptions().ZoneGap)
	assert.Equal(t, 0.0, s.OverlayOpacity())
}

func TestApplyStrokes(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	s.Strokes = []Stroke{
		{Tool: "eraser", From: []float64{20.5, 20.5}},
		{Tool: "Restore", From: []float64{20.5, 20.5}, Size: 10},
	}

	surface := compose.NewSurface(mat.Size{Width: 64, Height: 64})
	require.NoError(t, s.ApplyStrokes(surface))
	assert.Zero(t, surface.Mask().Value(20, 20), "restore undoes the center")
	assert.InDelta(t, 1, surface.Mask().Value(20, 35), 1e-9, "brush size falls back to the default")

	s.Strokes = []Stroke{{Tool: "eraser"}}
	assert.Error(t, s.ApplyStrokes(surface))
}

func TestLogResolved(t *testing.T) {
	readEvent := func(s Settings) map[string]any {
		var buf bytes.Buffer
		s.LogResolved(zerolog.New(&buf).Level(zerolog.DebugLevel))
		var event map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
		return event
	}

	s, err := Load("")
	require.NoError(t, err)
	event := readEvent(s)
	assert.Equal(t, "debug", event["level"])
	assert.Equal(t, "defaults", event["source"])
	assert.Equal(t, mat.Preset1PWithBattlefield, event["preset"])

	path := writeFile(t, "settings.yaml", "preset: 2p-battlefield-alt-2\nstrokes:\n  - tool: fade\n    from: [1, 2]\n")
	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source)
	event = readEvent(s)
	assert.Equal(t, path, event["source"])
	assert.Equal(t, mat.Preset2PBattlefieldAlt2, event["preset"])
	assert.EqualValues(t, 1, event["strokes"])

	var buf bytes.Buffer
	s.LogResolved(zerolog.New(&buf).Level(zerolog.InfoLevel))
	assert.Zero(t, buf.Len(), "summary stays below info level")
}
