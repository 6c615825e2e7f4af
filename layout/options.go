package layout

// Options 对应编辑器上的每一个开关，按值传入 Build，布局阶段不读取任何全局状态。
type Options struct {
	BorderStyle  string            `json:"borderStyle"` // full | corners | none
	Rounded      bool              `json:"rounded"`
	ShowNames    bool              `json:"showNames"`
	ShowIcons    bool              `json:"showIcons"`
	TextOverlays bool              `json:"textOverlays"`
	Mirrored     bool              `json:"mirrored"`
	ZoneGap      float64           `json:"zoneGap"` // px
	EdgeRunner   EdgeRunnerOptions `json:"edgeRunner"`
}

// EdgeRunnerOptions 控制边缘装饰线。
type EdgeRunnerOptions struct {
	Enabled bool    `json:"enabled"`
	Inset   float64 `json:"inset"`
	Pointed bool    `json:"pointed"`
}

// DefaultOptions 返回默认开关组合。
func DefaultOptions() Options {
	return Options{
		BorderStyle:  BorderFull,
		Rounded:      true,
		ShowNames:    true,
		ShowIcons:    true,
		TextOverlays: true,
		ZoneGap:      20,
		EdgeRunner:   EdgeRunnerOptions{Inset: DefaultEdgeInset},
	}
}

// Typesetter 负责测量文本宽度，由渲染器基于真实字体实现。
// fontSize 与返回值均为像素。
type Typesetter interface {
	TextWidth(content string, fontSize float64, bold bool) float64
}
