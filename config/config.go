// Package config 读取 papyrus-table 的 TOML 配置文件。
//
//	[font]
//	family = "Courier"
//	size = 10
//
//	[layout]
//	summary_padding = "10pt"
//	line_width = "1pt"
//	header_line_width = "2pt"
//	table_spacing = "5mm"
//
//	[text]
//	cell_width = 2
//	line_height = 5
//
//	[output]
//	format = "pdf"
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/papyrus-table/layout"
	textrenderer "github.com/ByLCY/papyrus-table/renderer/text"
)

// 支持的输出格式
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
	FormatTXT = "txt"
)

type Config struct {
	Font   FontConfig   `toml:"font"`
	Layout LayoutConfig `toml:"layout"`
	Text   TextConfig   `toml:"text"`
	Output OutputConfig `toml:"output"`
}

type FontConfig struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"` // pt
	Src    string  `toml:"src"`
}

// LayoutConfig 中的长度均为带单位字符串（mm/cm/in/pt），无单位按 mm。
type LayoutConfig struct {
	SummaryPadding  string `toml:"summary_padding"`
	LineWidth       string `toml:"line_width"`
	HeaderLineWidth string `toml:"header_line_width"`
	TableSpacing    string `toml:"table_spacing"`
}

type TextConfig struct {
	CellWidth  float64 `toml:"cell_width"`  // mm
	LineHeight float64 `toml:"line_height"` // mm
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Font: FontConfig{
			Family: layout.DefaultFont().Family,
			Size:   layout.DefaultFont().Size,
		},
		Layout: LayoutConfig{
			SummaryPadding:  "10pt",
			LineWidth:       "1pt",
			HeaderLineWidth: "2pt",
			TableSpacing:    "5mm",
		},
		Text: TextConfig{
			CellWidth:  textrenderer.DefaultOptions().CellWidth,
			LineHeight: textrenderer.DefaultOptions().LineHeight,
		},
		Output: OutputConfig{Format: FormatPDF},
	}
}

// Load 在默认配置之上读取 path；path 为空时直接返回默认配置。
// 文件中出现未知键视为错误。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, fmt.Errorf("配置 %s 含未知字段: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查数值与长度字段。
func (c Config) Validate() error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size 必须为正数")
	}
	for key, val := range map[string]string{
		"layout.summary_padding":   c.Layout.SummaryPadding,
		"layout.line_width":        c.Layout.LineWidth,
		"layout.header_line_width": c.Layout.HeaderLineWidth,
		"layout.table_spacing":     c.Layout.TableSpacing,
	} {
		l, ok := layout.ParseLengthStr(val)
		if !ok || l.Value < 0 || l.Unit == layout.UnitPercent {
			return fmt.Errorf("%s 不是有效长度: %q", key, val)
		}
	}
	if c.Text.CellWidth <= 0 || c.Text.LineHeight <= 0 {
		return fmt.Errorf("text.cell_width 与 text.line_height 必须为正数")
	}
	switch c.Output.Format {
	case FormatPDF, FormatSVG, FormatTXT:
	default:
		return fmt.Errorf("output.format 不支持 %q", c.Output.Format)
	}
	return nil
}

// LayoutOptions 转换为 layout.Options（长度统一为 mm）。
func (c Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.SummaryPadding = layout.ParseMM(c.Layout.SummaryPadding, 0)
	opts.Pen.Width = layout.ParseMM(c.Layout.LineWidth, 0)
	opts.HeaderPen.Width = layout.ParseMM(c.Layout.HeaderLineWidth, 0)
	return opts
}

// TableSpacing 返回表格间距（mm）。
func (c Config) TableSpacing() float64 {
	return layout.ParseMM(c.Layout.TableSpacing, 0)
}

// DefaultFont 返回表格未指定字体时使用的字体。
func (c Config) DefaultFont() layout.Font {
	return layout.Font{Family: c.Font.Family, Size: c.Font.Size, Src: c.Font.Src}
}

// TextOptions 返回字符格渲染器的换算参数。
func (c Config) TextOptions() textrenderer.Options {
	return textrenderer.Options{
		CellWidth:  c.Text.CellWidth,
		LineHeight: c.Text.LineHeight,
		HeavyWidth: layout.ParseMM(c.Layout.HeaderLineWidth, 0),
	}
}
