package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ByLCY/playmat/binding"
	"github.com/ByLCY/playmat/compose"
	"github.com/ByLCY/playmat/config"
	"github.com/ByLCY/playmat/dsl"
	"github.com/ByLCY/playmat/fonts"
	"github.com/ByLCY/playmat/icons"
	"github.com/ByLCY/playmat/layout"
	"github.com/ByLCY/playmat/mat"
	"github.com/ByLCY/playmat/renderer"
	canvasrenderer "github.com/ByLCY/playmat/renderer/canvas"
	"github.com/ByLCY/playmat/rules"
)

var logger zerolog.Logger

func main() {
	input := flag.String("in", "", "配置文件路径（.json / .yaml / .mat），为空时使用预设")
	preset := flag.String("preset", "", "预设 ID，覆盖设置文件中的 preset")
	settingsPath := flag.String("settings", "", "设置文件路径（JSON / YAML）")
	dataPath := flag.String("data", "", "绑定到配置的数据文件（JSON / YAML）")
	output := flag.String("out", "output/playmat.png", "PNG 输出路径")
	overlayOnly := flag.Bool("overlay-only", false, "只输出透明叠加层，不做背景合成")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	listPresets := flag.Bool("list-presets", false, "列出内置预设")
	listIcons := flag.Bool("list-icons", false, "列出预设图标")
	flag.Parse()

	if *listPresets {
		for _, p := range mat.Presets() {
			fmt.Printf("%-22s %s\n", p.ID, p.Label)
		}
		return
	}
	if *listIcons {
		for _, ic := range icons.Presets() {
			fmt.Printf("@%-10s %s  %s\n", ic.ID, ic.Glyph, ic.Label)
		}
		return
	}

	settings, err := config.Load(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取设置失败: %v\n", err)
		os.Exit(1)
	}
	setupLogging(settings.LogLevel)
	if *preset != "" {
		settings.Preset = *preset
	}
	settings.LogResolved(logger)

	opts := runOptions{
		input:       *input,
		dataPath:    *dataPath,
		output:      *output,
		debug:       *debug,
		overlayOnly: *overlayOnly,
	}
	if err := run(settings, opts); err != nil {
		logger.Fatal().Err(err).Msg("生成桌垫失败")
	}
	logger.Info().Str("out", *output).Msg("已生成桌垫 PNG")
}

func setupLogging(level string) {
	var logLevelActual zerolog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevelActual = zerolog.DebugLevel
	case "WARN":
		logLevelActual = zerolog.WarnLevel
	case "ERROR":
		logLevelActual = zerolog.ErrorLevel
	case "TRACE":
		logLevelActual = zerolog.TraceLevel
	default:
		logLevelActual = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevelActual)
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

type runOptions struct {
	input       string
	dataPath    string
	output      string
	debug       string
	overlayOnly bool
}

// run 串联 配置 -> 规则文本 -> 布局 -> 光栅化 -> 合成。
func run(settings config.Settings, opts runOptions) error {
	var data any
	if opts.dataPath != "" {
		var err error
		if data, err = binding.Load(opts.dataPath); err != nil {
			return err
		}
	}

	cfg, err := loadConfiguration(opts.input, settings.Preset, data)
	if err != nil {
		return err
	}
	size := mat.MatSize(cfg)
	logger.Debug().
		Int("zones", len(cfg.Zones)).
		Int("tracks", len(cfg.Tracks())).
		Int("width", size.Width).
		Int("height", size.Height).
		Msg("配置已加载")

	if settings.Rules.Enabled {
		entries := rules.BuildDefaultEntries(cfg)
		cfg = rules.ApplyEntries(cfg, entries, true)
		logger.Debug().Int("entries", len(entries)).Msg("已注入规则文本")
	}

	r, err := newRenderer(settings.Fonts)
	if err != nil {
		return err
	}
	layoutOpts := settings.LayoutOptions()
	result, err := layout.Build(cfg, settings.Overlay.Color, layoutOpts, r)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	if opts.debug != "" {
		if err := layout.WriteDebugJSON(result, opts.debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
		logger.Debug().Str("path", opts.debug).Msg("已写出布局调试 JSON")
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if opts.overlayOnly {
		return writeOverlay(r, result, opts.output)
	}

	overlay, err := r.Rasterize(result)
	if err != nil {
		return fmt.Errorf("渲染叠加层失败: %w", err)
	}
	surface := compose.NewSurface(size)
	if err := surface.SetBackgroundColor(settings.Background.Color); err != nil {
		return err
	}
	if settings.Background.Image != "" {
		img, err := compose.LoadImage(settings.Background.Image)
		if err != nil {
			return err
		}
		surface.SetBackgroundImage(img)
	}
	surface.SetOverlay(overlay)
	surface.SetOverlayOpacity(settings.OverlayOpacity())
	surface.SetShowOverlay(settings.Overlay.Show)
	if err := settings.ApplyStrokes(surface); err != nil {
		return err
	}

	return writeComposite(surface, opts.output)
}

// writeComposite 导出合成结果；关闭文件时的错误同样视为写入失败。
func writeComposite(surface *compose.Surface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := surface.ExportPNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	return nil
}

// loadConfiguration 按扩展名选择读取方式；未指定输入时使用预设。
func loadConfiguration(input, preset string, data any) (mat.Configuration, error) {
	switch {
	case input == "":
		if !mat.HasPreset(preset) {
			return mat.Configuration{}, fmt.Errorf("未知的预设 %q", preset)
		}
		return binding.Apply(mat.Preset(preset), data), nil
	case strings.EqualFold(filepath.Ext(input), ".mat"):
		return dsl.LoadFile(input, data)
	default:
		cfg, err := mat.LoadFile(input)
		if err != nil {
			return mat.Configuration{}, err
		}
		return binding.Apply(cfg, data), nil
	}
}

func newRenderer(fs config.FontSettings) (*canvasrenderer.Renderer, error) {
	ro := canvasrenderer.Options{Fonts: map[string]canvasrenderer.Resource{}}
	for role, src := range map[string]string{layout.FontText: fs.Text, layout.FontIcon: fs.Icon} {
		if src == "" {
			continue
		}
		blob, err := fonts.Load(src)
		if err != nil {
			return nil, err
		}
		ro.Fonts[role] = canvasrenderer.Resource{Bytes: blob}
	}
	return canvasrenderer.NewRendererWithOptions(ro), nil
}

func writeOverlay(r renderer.Renderer, result *layout.Result, path string) error {
	pngBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染叠加层失败: %w", err)
	}
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	return nil
}
