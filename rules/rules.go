// Package rules 维护绑定到区域的规则文本条目，并把它们注入到配置的 textEntries。
package rules

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ByLCY/playmat/mat"
	"github.com/ByLCY/playmat/mirror"
)

// 模板 ID。
const (
	TemplateBlank  = "blank"
	TemplateTurn   = "turn"
	TemplateCombat = "combat"
)

// Template 是一段内置规则文本。
type Template struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

const turnText = `START OF TURN
A - Awaken: Ready your cards and runes.
B - Beginning: Start of Turn abilities and Hold points.
C - Channel: Play two runes.
D - Draw: Draw 1 from your deck.

SCORING
- 8 points to win.
- Maximum 1 point per battlefield per turn.
- To get the 8th point, hold 1 battlefield OR score them all in one turn.`

const combatText = `YOUR TURN
- Play cards from hand.
- Play your champion unit (if not already on the board).
- Use abilities of cards.
- Move units to a battlefield.

COMBAT
1. Resolve defend and attack triggers.
2. Starting with the attacker, players may play actions or reactions.
3. Resolve each right away, unless players play reactions.
4. Units deal damage, then if attackers survive, they score and conquer.`

var templates = []Template{
	{ID: TemplateBlank, Label: "Blank"},
	{ID: TemplateTurn, Label: "Start Of Turn + Scoring", Text: turnText},
	{ID: TemplateCombat, Label: "Your Turn + Combat", Text: combatText},
}

// Templates 返回全部内置模板。
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// TemplateText 返回模板文本；未知模板为空串。
func TemplateText(id string) string {
	for _, t := range templates {
		if t.ID == id {
			return t.Text
		}
	}
	return ""
}

// Entry 是一条规则文本条目，百分比相对于目标区域。
type Entry struct {
	ID         string  `json:"id" yaml:"id"`
	ZoneID     string  `json:"zoneId" yaml:"zoneId"`
	TemplateID string  `json:"templateId" yaml:"templateId"`
	Text       string  `json:"text" yaml:"text"`
	XPct       float64 `json:"xPct" yaml:"xPct"`
	YPct       float64 `json:"yPct" yaml:"yPct"`
	WPct       float64 `json:"wPct" yaml:"wPct"`
	HPct       float64 `json:"hPct" yaml:"hPct"`
	FontSize   float64 `json:"fontSize" yaml:"fontSize"` // 0 表示自动
}

// NewBlankEntry 创建一个指向 zoneID 的空白条目。
func NewBlankEntry(zoneID string) Entry {
	return Entry{
		ID:         "rule-" + uuid.NewString(),
		ZoneID:     zoneID,
		TemplateID: TemplateBlank,
		XPct:       3,
		YPct:       6,
		WPct:       94,
		HPct:       88,
	}
}

// WithTemplate 切换模板，并用模板文本覆盖 Text。
func (e Entry) WithTemplate(id string) Entry {
	e.TemplateID = id
	e.Text = TemplateText(id)
	return e
}

// BuildDefaultEntries 按区域名称猜测默认条目：base 区放回合/计分，runes 区放战斗。
func BuildDefaultEntries(cfg mat.Configuration) []Entry {
	var out []Entry
	if id := pickZoneID(cfg.Zones, "base"); id != "" {
		out = append(out, NewBlankEntry(id).WithTemplate(TemplateTurn))
	}
	if id := pickZoneID(cfg.Zones, "runes"); id != "" {
		out = append(out, NewBlankEntry(id).WithTemplate(TemplateCombat))
	}
	return out
}

// pickZoneID 名称完全相等（忽略大小写）优先于包含。
func pickZoneID(zones []mat.Zone, name string) string {
	for _, z := range zones {
		if strings.ToLower(z.Name) == name {
			return z.ID
		}
	}
	for _, z := range zones {
		if strings.Contains(strings.ToLower(z.Name), name) {
			return z.ID
		}
	}
	return ""
}

// ApplyEntries 返回注入了规则文本的新配置，不修改 cfg。
// 每个区域的 textEntries 都会被设置（disabled 时为空），旧的 text 字段一律关闭。
func ApplyEntries(cfg mat.Configuration, entries []Entry, enabled bool) mat.Configuration {
	out := cfg.Clone()
	paired := mirror.IsMirroredPair(out.Zones)
	grouped := map[string][]mat.TextSpec{}

	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if e.ZoneID == "" || text == "" {
			continue
		}
		spec := e.pack(text)
		grouped[e.ZoneID] = append(grouped[e.ZoneID], spec)
		if !paired {
			continue
		}
		if mirrorID, ok := mirror.MirrorID(e.ZoneID); ok {
			grouped[mirrorID] = append(grouped[mirrorID], spec.Clone())
		}
	}

	for i := range out.Zones {
		z := &out.Zones[i]
		z.TextEntries = []mat.TextSpec{}
		if enabled && len(grouped[z.ID]) > 0 {
			z.TextEntries = grouped[z.ID]
		}
		z.Text.Enabled = false
		z.Text.Content = ""
		z.Text.Align = mat.AlignLeft
		z.Text.VAlign = mat.VAlignTop
	}
	return out
}

func (e Entry) pack(text string) mat.TextSpec {
	return mat.TextSpec{
		Content:  text,
		XPct:     mat.Float(clampPct(e.XPct, 0)),
		YPct:     mat.Float(clampPct(e.YPct, 0)),
		WPct:     mat.Float(clampPct(e.WPct, 100)),
		HPct:     mat.Float(clampPct(e.HPct, 100)),
		FontSize: fontSize(e.FontSize),
		Align:    mat.AlignLeft,
		VAlign:   mat.VAlignTop,
		Enabled:  true,
	}
}

// clampPct 把百分比限制到 [0,100]，NaN 取 fallback。
func clampPct(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return mat.ClampFloat(v, 0, 100)
}

func fontSize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
