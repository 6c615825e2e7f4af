package dsl_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/playmat/dsl"
	"github.com/ByLCY/playmat/mat"
)

const riftbound1P = `
// Riftbound 单人桌垫
mat "Riftbound 1P" {
  canvas: [2450, 1450]
  grid: [30, 3]
  rows: [40, 30, 30]

  zone bf1 { name: "Battlefield" icon: "@sword" cols: [1, 14] rows: [1, 1] locked: true }
  zone bf2 { name: "Battlefield" icon: "@sword" cols: [17, 14] rows: [1, 1] locked: true }

  /* 第二行 */
  zone champion {
    name: "Champion"
    icon: "@pawn"
    cols: [1, 4]
    rows: [2, 1]
    locked: true
  }
  zone legend { name: "Legend" icon: "@star" cols: [5, 4] rows: [2, 1] locked: true }
  zone base { name: "Base" cols: [9, 18] rows: [2, 1] locked: true }
  zone main_deck { name: "Main Deck" icon: "@cards" cols: [27, 4] rows: [2, 1] locked: true }

  # 第三行
  zone rune_deck { name: "Rune Deck" icon: "@gem" cols: [1, 4] rows: [3, 1] locked: true }
  zone runes { name: "Runes" cols: [5, 22] rows: [3, 1]; locked: true }
  zone trash { name: "Trash" icon: "@trash" cols: [27, 4] rows: [3, 1] locked: true }

  track { count: 9 position: left }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(riftbound1P)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Riftbound 1P" {
		t.Fatalf("expected document name Riftbound 1P, got %s", doc.Name)
	}
	if len(doc.Statements) != 13 {
		t.Fatalf("expected 13 top-level statements, got %d", len(doc.Statements))
	}
	zone := doc.Statements[3].Command
	if zone == nil || zone.Name != "zone" || len(zone.Args) != 1 || zone.Args[0].Text() != "bf1" {
		t.Fatalf("unexpected zone command: %+v", zone)
	}
	if zone.Block == nil || len(zone.Block.Statements) != 5 {
		t.Fatalf("expected 5 zone properties")
	}
}

func TestPresetEquivalentMat(t *testing.T) {
	cfg, err := dsl.ParseConfiguration(riftbound1P, nil)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	want := mat.Preset(mat.Preset1PWithBattlefield)
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("mat file should match the built-in preset\n got: %+v\nwant: %+v", cfg, want)
	}
}

func TestTracksTextAndBinding(t *testing.T) {
	src := `
mat "custom" {
  grid: [4, 3]
  zone p1_base {
    name: "${player.name} Base"
    icon: "Ω"
    cols: [1, 2]
    rows: [1, 1]
    upsideDown: true
    text {
      content: "Win at ${rules.points} points"
      align: left
      valign: top
      color: #fff
      size: 18
      x: 3
      y: 6
      w: 94
      h: 88
    }
  }
  track {
    name: "P1"
    start: 1
    count: 8
    yStart: 0.04
    yEnd: 0.33
    x: -12.5
    shift: 5
  }
  track {
    orbScale: 1.1
    point { x: 0.44 y: 0.78 label: 3 }
    point { px: 400 py: 300 label: "★" }
  }
}
`
	data := map[string]any{
		"player": map[string]any{"name": "Ahri"},
		"rules":  map[string]any{"points": 8},
	}
	cfg, err := dsl.ParseConfiguration(src, data)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if cfg.Canvas != nil {
		t.Fatalf("canvas should stay unset")
	}
	z := cfg.Zones[0]
	if z.Name != "Ahri Base" || z.Icon != "Ω" || !z.UpsideDown || z.ColSpan != 2 {
		t.Fatalf("unexpected zone: %+v", z)
	}
	if len(z.TextEntries) != 1 {
		t.Fatalf("expected one text entry, got %d", len(z.TextEntries))
	}
	e := z.TextEntries[0]
	if e.Content != "Win at 8 points" || e.Align != "left" || e.VAlign != "top" || e.Color != "#fff" || e.FontSize != 18 || !e.Enabled {
		t.Fatalf("unexpected text entry: %+v", e)
	}
	if x, y, w, h := e.Box(); x != 3 || y != 6 || w != 94 || h != 88 {
		t.Fatalf("unexpected text box: %v %v %v %v", x, y, w, h)
	}

	if cfg.ScoreTrack != nil || len(cfg.ScoreTracks) != 2 {
		t.Fatalf("two tracks should go to scoreTracks")
	}
	even := cfg.ScoreTracks[0]
	if even.Name != "P1" || even.StartValue != 1 || even.Count != 8 || *even.X != -12.5 || even.EdgeRunnerXShift != 5 {
		t.Fatalf("unexpected track: %+v", even)
	}
	pts := cfg.ScoreTracks[1].Points
	if len(pts) != 2 || *pts[0].XPct != 0.44 || string(*pts[0].Label) != "3" || *pts[1].X != 400 || string(*pts[1].Label) != "★" {
		t.Fatalf("unexpected points: %+v", pts)
	}
}

func TestConversionErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":      `mat "x" { zone a { colour: 3 } }`,
		"wrong type":       `mat "x" { grid: "big" }`,
		"pair length":      `mat "x" { canvas: [1, 2, 3] }`,
		"duplicate zone":   `mat "x" { zone a { } zone a { } }`,
		"unknown command":  `mat "x" { tile a { } }`,
		"missing zone id":  `mat "x" { zone { } }`,
		"fractional count": `mat "x" { track { count: 2.5 } }`,
		"bool":             `mat "x" { zone a { locked: yes } }`,
	}
	for name, src := range cases {
		if _, err := dsl.ParseConfiguration(src, nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSyntaxErrorHasPosition(t *testing.T) {
	_, err := dsl.ParseConfiguration("mat \"x\" {\n  zone a {\n", nil)
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if !strings.Contains(err.Error(), ":") {
		t.Fatalf("error should carry a position: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.mat")
	if err := os.WriteFile(path, []byte(riftbound1P), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := dsl.LoadFile(path, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Zones) != 9 || cfg.ScoreTrack == nil {
		t.Fatalf("unexpected configuration: %d zones", len(cfg.Zones))
	}
	if _, err := dsl.LoadFile(filepath.Join(t.TempDir(), "missing.mat"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
