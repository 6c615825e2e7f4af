package binding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/playmat/mat"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则返回原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Apply 对区域名称、图标、规则文本与轨道名称做插值，返回新的配置。
func Apply(cfg mat.Configuration, data any) mat.Configuration {
	out := cfg.Clone()
	if data == nil {
		return out
	}
	for i := range out.Zones {
		z := &out.Zones[i]
		z.Name = Interpolate(z.Name, data)
		z.Icon = Interpolate(z.Icon, data)
		z.Text.Content = Interpolate(z.Text.Content, data)
		for j := range z.TextEntries {
			z.TextEntries[j].Content = Interpolate(z.TextEntries[j].Content, data)
		}
	}
	if out.ScoreTrack != nil {
		out.ScoreTrack.Name = Interpolate(out.ScoreTrack.Name, data)
	}
	for i := range out.ScoreTracks {
		out.ScoreTracks[i].Name = Interpolate(out.ScoreTracks[i].Name, data)
	}
	return out
}

// Load 读取 JSON 或 YAML 数据文件（按扩展名判断，默认 JSON）。
func Load(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件 %s 失败: %w", path, err)
	}
	var data any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		err = dec.Decode(&data)
	}
	if err != nil {
		return nil, fmt.Errorf("解析数据文件 %s 失败: %w", path, err)
	}
	return data, nil
}

// step 是路径中的一级：map 键或数组下标。
type step struct {
	key     string
	index   int
	isIndex bool
}

// parsePath 把 a.b[0][1].c 拆成逐级访问步骤，格式不对时返回 false。
func parsePath(path string) ([]step, bool) {
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name, rest, hasIndex := strings.Cut(segment, "[")
		if name != "" {
			steps = append(steps, step{key: name})
		}
		for hasIndex {
			var idx string
			idx, rest, hasIndex = strings.Cut(rest, "]")
			if !hasIndex {
				return nil, false
			}
			n, err := strconv.Atoi(idx)
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: n, isIndex: true})
			if rest == "" {
				break
			}
			if rest[0] != '[' {
				return nil, false
			}
			rest = rest[1:]
		}
	}
	return steps, true
}

func resolvePath(data any, path string) (any, bool) {
	steps, ok := parsePath(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, s := range steps {
		if current, ok = s.descend(current); !ok {
			return nil, false
		}
	}
	return current, true
}

// descend 支持 JSON 解出的 map[string]any 与 YAML 解出的 map[any]any。
func (s step) descend(current any) (any, bool) {
	if s.isIndex {
		arr, ok := current.([]any)
		if !ok || s.index < 0 || s.index >= len(arr) {
			return nil, false
		}
		return arr[s.index], true
	}
	switch m := current.(type) {
	case map[string]any:
		v, ok := m[s.key]
		return v, ok
	case map[any]any:
		v, ok := m[s.key]
		return v, ok
	}
	return nil, false
}
