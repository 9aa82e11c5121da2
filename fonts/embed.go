package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名（不含 "embed:" 前缀）
const (
	Regular  = "goregular"
	Bold     = "gobold"
	Mono     = "gomono"
	MonoBold = "gomonobold"
)

var builtin = map[string][]byte{
	Regular:  goregular.TTF,
	Bold:     gobold.TTF,
	Mono:     gomono.TTF,
	MonoBold: gomonobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:gomono" 或直接 "gomono"。
func Load(name string) ([]byte, error) {
	key := strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf")
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("内置字体 %s 不存在", name)
	}
	return data, nil
}

// IsEmbedded 判断 src 是否指向内置字体。
func IsEmbedded(src string) bool {
	return strings.HasPrefix(src, "embed:")
}

// ForFamily 为字体族挑选内置字体：等宽族（Courier 等）映射到 gomono，其余映射到 goregular。
func ForFamily(family string, bold bool) string {
	mono := isMonospace(family)
	switch {
	case mono && bold:
		return MonoBold
	case mono:
		return Mono
	case bold:
		return Bold
	default:
		return Regular
	}
}

func isMonospace(family string) bool {
	f := strings.ToLower(family)
	for _, m := range []string{"courier", "mono", "consolas", "menlo"} {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}
