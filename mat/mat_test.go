package mat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatSize_Default(t *testing.T) {
	assert.Equal(t, Size{Width: 2450, Height: 1450}, MatSize(Configuration{}))
}

func TestMatSize_Explicit(t *testing.T) {
	cfg := Configuration{Canvas: &Canvas{Width: 2040, Height: 1000}}
	assert.Equal(t, Size{Width: 2040, Height: 1000}, MatSize(cfg))
}

func TestPresets_ListStableIDs(t *testing.T) {
	var ids []string
	for _, p := range Presets() {
		ids = append(ids, p.ID)
		assert.NotEmpty(t, p.Label)
	}
	assert.Equal(t, []string{
		"1p-with-battlefield",
		"1p-no-battlefield",
		"2p-with-battlefield",
		"2p-battlefield-alt",
		"2p-battlefield-alt-2",
	}, ids)
}

func TestPreset_UnknownFallsBack(t *testing.T) {
	got := Preset("does-not-exist")
	want := Preset(DefaultPresetID)
	assert.Equal(t, want, got)
}

func TestPreset_ReturnsIndependentCopies(t *testing.T) {
	a := Preset(Preset2PBattlefieldAlt2)
	a.Zones[0].Name = "changed"
	a.RowHeights[0] = 99
	*a.ScoreTracks[0].Points[0].XPct = 0.9
	a.Canvas.Width = 1

	b := Preset(Preset2PBattlefieldAlt2)
	assert.Equal(t, "Rune Deck", b.Zones[0].Name)
	assert.Equal(t, 16.0, b.RowHeights[0])
	assert.Equal(t, 0.44, *b.ScoreTracks[0].Points[0].XPct)
	assert.Equal(t, 2040, b.Canvas.Width)
}

func TestPresets_ZonesInsideGrid(t *testing.T) {
	for _, info := range Presets() {
		cfg := Preset(info.ID)
		if cfg.RowHeights != nil {
			assert.Len(t, cfg.RowHeights, cfg.GridRows, info.ID)
		}
		seen := map[string]bool{}
		for _, z := range cfg.Zones {
			assert.False(t, seen[z.ID], "%s: duplicate zone %s", info.ID, z.ID)
			seen[z.ID] = true
			assert.GreaterOrEqual(t, z.ColStart, 1)
			assert.LessOrEqual(t, z.ColStart+z.ColSpan-1, cfg.GridCols, "%s/%s", info.ID, z.ID)
			assert.GreaterOrEqual(t, z.RowStart, 1)
			assert.LessOrEqual(t, z.RowStart+z.RowSpan-1, cfg.GridRows, "%s/%s", info.ID, z.ID)
		}
	}
}

func TestDefaultCustom_IsEditable(t *testing.T) {
	cfg := DefaultCustom()
	assert.Equal(t, 4, cfg.GridCols)
	assert.Equal(t, 3, cfg.GridRows)
	assert.Len(t, cfg.Zones, 5)
	assert.Empty(t, cfg.Tracks())
	for _, z := range cfg.Zones {
		assert.False(t, z.Locked)
	}
}

func TestTracks_ArrayWins(t *testing.T) {
	cfg := Configuration{
		ScoreTrack:  &ScoreTrack{Count: 3},
		ScoreTracks: []ScoreTrack{{Count: 5}, {Count: 6}},
	}
	tracks := cfg.Tracks()
	require.Len(t, tracks, 2)
	assert.Equal(t, 5, tracks[0].Count)

	cfg.ScoreTracks = nil
	tracks = cfg.Tracks()
	require.Len(t, tracks, 1)
	assert.Equal(t, 3, tracks[0].Count)
}

func TestScoreTrack_Layout(t *testing.T) {
	even := ScoreTrack{StartValue: 2}.Layout()
	assert.Equal(t, EvenLayout{Count: 9, StartValue: 2}, even)

	pts := []ExplicitPoint{{XPct: Float(0.5), YPct: Float(0.5)}}
	explicit := ScoreTrack{Count: 4, Points: pts}.Layout()
	assert.Equal(t, ExplicitLayout{Points: pts}, explicit)
}

func TestScoreTrack_Defaults(t *testing.T) {
	tr := ScoreTrack{}
	start, end := tr.Span()
	assert.Equal(t, 0.08, start)
	assert.Equal(t, 0.92, end)
	assert.Equal(t, "left", tr.EffectivePosition())
	assert.Equal(t, 1.0, tr.EffectiveOrbScale())
}

func TestZoneClamp(t *testing.T) {
	z := Zone{ColStart: 0, ColSpan: 50, RowStart: 9, RowSpan: 3}.Clamp(30, 3)
	assert.Equal(t, 1, z.ColStart)
	assert.Equal(t, 30, z.ColSpan)
	assert.Equal(t, 3, z.RowStart)
	assert.Equal(t, 1, z.RowSpan)
}

func TestWithGrid_DropsMismatchedRowHeights(t *testing.T) {
	cfg := Preset(Preset1PWithBattlefield).WithGrid(500, 2)
	assert.Equal(t, MaxGrid, cfg.GridCols)
	assert.Equal(t, 2, cfg.GridRows)
	assert.Nil(t, cfg.RowHeights)
	for _, z := range cfg.Zones {
		assert.LessOrEqual(t, z.RowStart+z.RowSpan-1, 2)
	}
}

func TestDecode_JSONWithNumericLabels(t *testing.T) {
	src := `{
		"gridCols": 2, "gridRows": 1,
		"zones": [{"id": "a", "name": "A", "icon": "", "colStart": 1, "colSpan": 2, "rowStart": 1, "rowSpan": 1, "text": {"content": ""}}],
		"scoreTracks": [{"points": [{"xPct": 0.1, "yPct": 0.2, "label": 3}, {"xPct": 0.2, "yPct": 0.2, "label": "G"}]}]
	}`
	cfg, err := Decode(strings.NewReader(src), FormatJSON)
	require.NoError(t, err)
	require.Len(t, cfg.ScoreTracks, 1)
	pts := cfg.ScoreTracks[0].Points
	assert.Equal(t, PointLabel("3"), *pts[0].Label)
	assert.Equal(t, PointLabel("G"), *pts[1].Label)
	assert.Nil(t, cfg.Zones[0].TextEntries)
}

func TestDecode_YAML(t *testing.T) {
	src := `
canvas: {width: 1000, height: 500}
gridCols: 3
gridRows: 2
rowHeights: [1, 3]
zones:
  - id: p1_base
    name: Base
    colStart: 1
    colSpan: 3
    rowStart: 1
    rowSpan: 1
    upsideDown: true
    textEntries: []
scoreTrack:
  count: 5
  position: right
  yStart: 0.1
`
	cfg, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1000, Height: 500}, MatSize(cfg))
	assert.True(t, cfg.Zones[0].UpsideDown)
	assert.NotNil(t, cfg.Zones[0].TextEntries)
	require.NotNil(t, cfg.ScoreTrack)
	start, end := cfg.ScoreTrack.Span()
	assert.Equal(t, 0.1, start)
	assert.Equal(t, 0.92, end)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := Preset(Preset2PBattlefieldAlt2)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cfg))
	back, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, cfg.ScoreTracks, back.ScoreTracks)
	assert.Equal(t, len(cfg.Zones), len(back.Zones))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = FormatFromPath("mat.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
