package mat

// 内置的 Riftbound 预设。模板只读，对外一律返回深拷贝。

// 预设 ID（对外稳定，UI 可能会保存它们）。
const (
	Preset1PWithBattlefield = "1p-with-battlefield"
	Preset1PNoBattlefield   = "1p-no-battlefield"
	Preset2PWithBattlefield = "2p-with-battlefield"
	Preset2PBattlefieldAlt  = "2p-battlefield-alt"
	Preset2PBattlefieldAlt2 = "2p-battlefield-alt-2"
	DefaultPresetID         = Preset1PWithBattlefield
	twoPlayerSize           = 2040
)

// PresetInfo 是预设目录中的一项。
type PresetInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type preset struct {
	info   PresetInfo
	config Configuration
}

var presets = []preset{
	{PresetInfo{Preset1PWithBattlefield, "1P Battlefield"}, riftbound1PWithBattlefield()},
	{PresetInfo{Preset1PNoBattlefield, "1P No Battlefield"}, riftbound1PNoBattlefield()},
	{PresetInfo{Preset2PWithBattlefield, "2P Battlefield"}, riftbound2PWithBattlefield()},
	{PresetInfo{Preset2PBattlefieldAlt, "2P Battlefield Alt"}, riftbound2PBattlefieldAlt()},
	{PresetInfo{Preset2PBattlefieldAlt2, "2P Battlefield Alt 2"}, riftbound2PBattlefieldAlt2()},
}

// Presets 列出全部内置预设。
func Presets() []PresetInfo {
	out := make([]PresetInfo, len(presets))
	for i, p := range presets {
		out[i] = p.info
	}
	return out
}

// Preset 返回 id 对应预设的深拷贝；未知 id 退回到默认预设，不会报错。
func Preset(id string) Configuration {
	for _, p := range presets {
		if p.info.ID == id {
			return p.config.Clone()
		}
	}
	return presets[0].config.Clone()
}

// HasPreset 判断 id 是否为内置预设。
func HasPreset(id string) bool {
	for _, p := range presets {
		if p.info.ID == id {
			return true
		}
	}
	return false
}

// DefaultCustom 返回可编辑的 4×3 自定义布局。
func DefaultCustom() Configuration {
	cfg := Configuration{
		Canvas:   &Canvas{Width: DefaultWidth, Height: DefaultHeight},
		GridCols: 4,
		GridRows: 3,
		Zones: []Zone{
			zone("z1", "Zone 1", "▣", 1, 2, 1, 1, false),
			zone("z2", "Zone 2", "◌", 3, 2, 1, 1, false),
			zone("z3", "Zone 3", "✦", 1, 1, 2, 2, false),
			zone("z4", "Zone 4", "◈", 2, 2, 2, 2, false),
			zone("z5", "Zone 5", "⚔", 4, 1, 2, 2, false),
		},
	}
	for i := range cfg.Zones {
		cfg.Zones[i].Locked = false
	}
	return cfg
}

func zone(id, name, icon string, colStart, colSpan, rowStart, rowSpan int, upsideDown bool) Zone {
	return Zone{
		ID:         id,
		Name:       name,
		Icon:       icon,
		ColStart:   colStart,
		ColSpan:    colSpan,
		RowStart:   rowStart,
		RowSpan:    rowSpan,
		Locked:     true,
		UpsideDown: upsideDown,
		Text:       EmptyText(),
	}
}

func riftbound1PWithBattlefield() Configuration {
	return Configuration{
		Canvas:     &Canvas{Width: DefaultWidth, Height: DefaultHeight},
		GridCols:   30,
		GridRows:   3,
		RowHeights: []float64{40, 30, 30},
		Zones: []Zone{
			zone("bf1", "Battlefield", "⚔", 1, 14, 1, 1, false),
			zone("bf2", "Battlefield", "⚔", 17, 14, 1, 1, false),
			zone("champion", "Champion", "♟", 1, 4, 2, 1, false),
			zone("legend", "Legend", "✦", 5, 4, 2, 1, false),
			zone("base", "Base", "", 9, 18, 2, 1, false),
			zone("main_deck", "Main Deck", "▣", 27, 4, 2, 1, false),
			zone("rune_deck", "Rune Deck", "◈", 1, 4, 3, 1, false),
			zone("runes", "Runes", "", 5, 22, 3, 1, false),
			zone("trash", "Trash", "✕", 27, 4, 3, 1, false),
		},
		ScoreTrack: &ScoreTrack{Count: 9, Position: PositionLeft},
	}
}

func riftbound1PNoBattlefield() Configuration {
	return Configuration{
		Canvas:     &Canvas{Width: DefaultWidth, Height: DefaultHeight},
		GridCols:   24,
		GridRows:   2,
		RowHeights: []float64{52, 48},
		Zones: []Zone{
			zone("champion", "Champion", "♟", 1, 4, 1, 1, false),
			zone("legend", "Legend", "✦", 5, 4, 1, 1, false),
			zone("base", "Base", "", 9, 12, 1, 1, false),
			zone("main_deck", "Main Deck", "▣", 21, 4, 1, 1, false),
			zone("rune_deck", "Rune Deck", "◈", 1, 4, 2, 1, false),
			zone("runes", "Runes", "", 5, 16, 2, 1, false),
			zone("trash", "Trash", "✕", 21, 4, 2, 1, false),
		},
		ScoreTrack: &ScoreTrack{Count: 9, Position: PositionLeft},
	}
}

// twoPlayerTop 是 p1 一侧（倒置）的牌库/符文/弃牌与主区域。
func twoPlayerTop(hero string) []Zone {
	heroName, heroIcon := "Champion", "♟"
	if hero == "hero" {
		heroName = "Hero"
	}
	return []Zone{
		zone("p1_rune_deck", "Rune Deck", "◈", 27, 4, 1, 1, true),
		zone("p1_runes", "Runes", "", 5, 22, 1, 1, true),
		zone("p1_trash", "Trash", "✕", 1, 4, 1, 1, true),
		zone("p1_"+hero, heroName, heroIcon, 27, 4, 2, 1, true),
		zone("p1_legend", "Legend", "✦", 23, 4, 2, 1, true),
		zone("p1_base", "Base", "", 5, 18, 2, 1, true),
		zone("p1_main_deck", "Main Deck", "▣", 1, 4, 2, 1, true),
	}
}

func twoPlayerBottom(hero string) []Zone {
	heroName, heroIcon := "Champion", "♟"
	if hero == "hero" {
		heroName = "Hero"
	}
	return []Zone{
		zone("p2_"+hero, heroName, heroIcon, 1, 4, 6, 1, false),
		zone("p2_legend", "Legend", "✦", 5, 4, 6, 1, false),
		zone("p2_base", "Base", "", 9, 18, 6, 1, false),
		zone("p2_main_deck", "Main Deck", "▣", 27, 4, 6, 1, false),
		zone("p2_rune_deck", "Rune Deck", "◈", 1, 4, 7, 1, false),
		zone("p2_runes", "Runes", "", 5, 22, 7, 1, false),
		zone("p2_trash", "Trash", "✕", 27, 4, 7, 1, false),
	}
}

func twoPlayerBase(zones []Zone) Configuration {
	return Configuration{
		Canvas:     &Canvas{Width: twoPlayerSize, Height: twoPlayerSize},
		GridCols:   30,
		GridRows:   7,
		RowHeights: []float64{16, 16, 7, 14, 7, 16, 16},
		Zones:      zones,
	}
}

func riftbound2PWithBattlefield() Configuration {
	zones := twoPlayerTop("champion")
	zones = append(zones,
		zone("p1_bf", "Battlefield", "⚔", 1, 13, 3, 3, false),
		zone("p2_bf", "Battlefield", "⚔", 18, 13, 3, 3, true),
	)
	cfg := twoPlayerBase(append(zones, twoPlayerBottom("champion")...))
	cfg.ScoreTracks = []ScoreTrack{
		{Count: 9, Position: PositionCenterRight, YStart: Float(0.39), YEnd: Float(0.62), UpsideDown: true, OrbScale: 0.95},
		{Count: 9, Position: PositionCenterLeft, YStart: Float(0.39), YEnd: Float(0.62), OrbScale: 0.95},
	}
	return cfg
}

func riftbound2PBattlefieldAlt() Configuration {
	zones := twoPlayerTop("hero")
	zones = append(zones,
		zone("p1_bf", "Battlefield", "⚔", 16, 15, 3, 3, true),
		zone("p2_bf", "Battlefield", "⚔", 1, 15, 3, 3, false),
	)
	cfg := twoPlayerBase(append(zones, twoPlayerBottom("hero")...))
	cfg.ScoreTracks = []ScoreTrack{
		{Count: 9, Position: PositionRight, YStart: Float(0.04), YEnd: Float(0.33), UpsideDown: true, EdgeRunnerXShift: 5, OrbScale: 0.95},
		{Count: 9, Position: PositionLeft, YStart: Float(0.67), YEnd: Float(0.96), EdgeRunnerXShift: 5, OrbScale: 0.95},
	}
	return cfg
}

func riftbound2PBattlefieldAlt2() Configuration {
	zones := twoPlayerTop("champion")
	zones = append(zones,
		zone("p1_bf", "Battlefield", "⚔", 1, 12, 3, 3, false),
		zone("p2_bf", "Battlefield", "⚔", 19, 12, 3, 3, true),
	)
	cfg := twoPlayerBase(append(zones, twoPlayerBottom("champion")...))
	cfg.ScoreTracks = []ScoreTrack{
		{
			Position: PositionCenterLeft,
			OrbScale: 1.1,
			YEnd:     Float(0.59),
			Points:   pointGrid(0.78, 0.72, []int{3, 2, 1, 0}, []int{7, 6, 5, 4}),
		},
		{
			Position:   PositionCenterLeft,
			OrbScale:   1.1,
			UpsideDown: true,
			YEnd:       Float(0.41),
			Points:     pointGrid(0.48, 0.42, []int{4, 5, 6, 7}, []int{0, 1, 2, 3}),
		},
		{
			Count:      1,
			StartValue: 8,
			X:          Float(1020),
			YStart:     Float(0.41),
			YEnd:       Float(0.41),
			OrbScale:   1.5,
		},
	}
	return cfg
}

// pointGrid 生成两行四列的计分点，列位置固定为 0.44..0.56。
func pointGrid(yFirst, ySecond float64, first, second []int) []ExplicitPoint {
	xs := []float64{0.44, 0.48, 0.52, 0.56}
	var pts []ExplicitPoint
	for row, labels := range [][]int{first, second} {
		y := yFirst
		if row == 1 {
			y = ySecond
		}
		for i, label := range labels {
			pts = append(pts, ExplicitPoint{XPct: Float(xs[i]), YPct: Float(y), Label: Label(label)})
		}
	}
	return pts
}
