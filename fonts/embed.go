package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "regular"
	Bold    = "bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Load 返回字体的字节数据。src 可写为 "embed:regular" / "embed:bold" 或字体文件路径。
func Load(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, found := builtin[name]
		if !found {
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// Builtin 返回内置字体，bold 选择粗体。
func Builtin(bold bool) []byte {
	if bold {
		return builtin[Bold]
	}
	return builtin[Regular]
}
