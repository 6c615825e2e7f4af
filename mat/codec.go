package mat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// 配置文件格式。
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat 表示无法识别的配置文件格式。
var ErrUnknownFormat = errors.New("mat: 未知的配置格式")

// FormatFromPath 根据扩展名推断格式。
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode 从 r 读取 JSON 或 YAML 配置。
func Decode(r io.Reader, format string) (Configuration, error) {
	var cfg Configuration
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("解析 JSON 配置失败: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("解析 YAML 配置失败: %w", err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return cfg, nil
}

// LoadFile 按扩展名读取配置文件。
func LoadFile(path string) (Configuration, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Configuration{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, format)
}

// Encode 以缩进 JSON 写出配置。
func Encode(w io.Writer, cfg Configuration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}
