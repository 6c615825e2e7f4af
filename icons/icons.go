// Package icons 提供区域图标的预设表与校验。
// 图标可以是 unicode 字符、短文本，或 data:image/... 形式的内嵌图片。
package icons

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ByLCY/playmat/mat"
)

// MaxImageSize 是上传图标图片的大小上限（2MB）。
const MaxImageSize = 2 * 1024 * 1024

const dataImagePrefix = "data:image/"

var (
	// ErrNotImage 表示上传的文件不是图片。
	ErrNotImage = errors.New("icons: 文件必须是图片")
	// ErrTooLarge 表示图片超过 MaxImageSize。
	ErrTooLarge = errors.New("icons: 图片过大（最大 2MB）")
	// ErrBadDataURL 表示 data URL 无法解析。
	ErrBadDataURL = errors.New("icons: 无效的 data URL")
)

// Icon 是预设表中的一项。
type Icon struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Glyph    string `json:"icon"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

var presets = []Icon{
	{ID: "sword", Label: "Sword", Glyph: "⚔"},
	{ID: "shield", Label: "Shield", Glyph: "🛡"},
	{ID: "crown", Label: "Crown", Glyph: "👑"},
	{ID: "star", Label: "Star", Glyph: "✦"},
	{ID: "cards", Label: "Cards", Glyph: "▣"},
	{ID: "gem", Label: "Gem", Glyph: "◈"},
	{ID: "diamond", Label: "Diamond", Glyph: "◆"},
	{ID: "circle", Label: "Circle", Glyph: "●"},
	{ID: "pawn", Label: "Pawn", Glyph: "♟"},
	{ID: "rook", Label: "Rook", Glyph: "♜"},
	{ID: "knight", Label: "Knight", Glyph: "♞"},
	{ID: "bishop", Label: "Bishop", Glyph: "♝"},
	{ID: "trash", Label: "Trash", Glyph: "✕"},
	{ID: "x", Label: "X", Glyph: "✗"},
	{ID: "check", Label: "Check", Glyph: "✔"},
	{ID: "plus", Label: "Plus", Glyph: "+"},
	{ID: "fire", Label: "Fire", Glyph: "🔥"},
	{ID: "water", Label: "Water", Glyph: "💧"},
	{ID: "leaf", Label: "Leaf", Glyph: "🍃"},
	{ID: "gear", Label: "Gear", Glyph: "⚙"},
	{ID: "empty", Label: "Empty", Glyph: ""},
}

// Presets 返回全部预设图标。
func Presets() []Icon {
	return append([]Icon(nil), presets...)
}

// Lookup 按 id 查找预设图标。
func Lookup(id string) (Icon, bool) {
	for _, ic := range presets {
		if ic.ID == id {
			return ic, true
		}
	}
	return Icon{}, false
}

// Resolve 把 DSL 中的 "@sword" 形式替换为对应字符，其余原样返回。
func Resolve(icon string) string {
	if name, ok := strings.CutPrefix(icon, "@"); ok {
		if ic, found := Lookup(name); found {
			return ic.Glyph
		}
	}
	return icon
}

// Used 返回区域中用到的不重复图标（保持首次出现的顺序）。
func Used(zones []mat.Zone) []string {
	seen := map[string]bool{}
	var out []string
	for _, z := range zones {
		if z.Icon == "" || seen[z.Icon] {
			continue
		}
		seen[z.Icon] = true
		out = append(out, z.Icon)
	}
	return out
}

// Suggestions 先列出区域中用到但不在预设表里的图标，再列出全部预设。
func Suggestions(zones []mat.Zone) []Icon {
	var out []Icon
	for _, glyph := range Used(zones) {
		if isPresetGlyph(glyph) {
			continue
		}
		out = append(out, Icon{ID: "custom-" + glyph, Label: glyph + " (used)", Glyph: glyph, IsCustom: true})
	}
	return append(out, presets...)
}

func isPresetGlyph(glyph string) bool {
	for _, ic := range presets {
		if ic.Glyph == glyph {
			return true
		}
	}
	return false
}

// Kind 是图标的类别。
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindImage
)

// Classify 判断图标类别；任何字符串都是合法图标。
func Classify(icon string) Kind {
	switch {
	case icon == "":
		return KindEmpty
	case IsImage(icon):
		return KindImage
	default:
		return KindText
	}
}

// IsImage 判断是否为 data:image/ 图片图标。
func IsImage(icon string) bool {
	return strings.HasPrefix(icon, dataImagePrefix)
}

// DecodeImage 解码 data:image/...;base64, 图标。
func DecodeImage(icon string) (image.Image, error) {
	if !IsImage(icon) {
		return nil, fmt.Errorf("%w: 缺少 data:image/ 前缀", ErrBadDataURL)
	}
	meta, payload, ok := strings.Cut(icon, ",")
	if !ok {
		return nil, fmt.Errorf("%w: 缺少数据段", ErrBadDataURL)
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = raw
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = []byte(unescaped)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("图标图片解码失败: %w", err)
	}
	return img, nil
}

// ValidateUpload 校验上传的图标文件类型与大小。
func ValidateUpload(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	if size > MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// FromFile 读取图片文件并转为 data URL 图标。
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取图标文件 %s 失败: %w", path, err)
	}
	return FromBytes(data)
}

// FromBytes 把图片字节转为 data URL 图标。
func FromBytes(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if err := ValidateUpload(contentType, int64(len(data))); err != nil {
		return "", err
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
