package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体的名称，可在配置中写作 "builtin:go-regular"。
const (
	BuiltinRegular = "go-regular"
	BuiltinBold    = "go-bold"
)

var builtins = map[string][]byte{
	BuiltinRegular: goregular.TTF,
	BuiltinBold:    gobold.TTF,
}

// Fallback 返回缺失字体时使用的 Go 字体。
func Fallback(bold bool) []byte {
	if bold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Load 返回字体文件的字节数据。path 可写为 "builtin:go-regular"、"builtin:go-bold" 或普通文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, "builtin:"); ok {
		data, found := builtins[name]
		if !found {
			return nil, fmt.Errorf("未知的内置字体 %s", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
