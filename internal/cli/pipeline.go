package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/papyrus-table/config"
	"github.com/ByLCY/papyrus-table/dsl"
	"github.com/ByLCY/papyrus-table/layout"
	"github.com/ByLCY/papyrus-table/renderer"
	canvasrenderer "github.com/ByLCY/papyrus-table/renderer/canvas"
	textrenderer "github.com/ByLCY/papyrus-table/renderer/text"
)

// pipeline 串联解析、数据绑定、布局与绘制。
type pipeline struct {
	input   string
	dataArg string
	cfg     config.Config
	logger  *log.Logger
}

// laidOut 是一次完整排版的产物。
type laidOut struct {
	doc     *layout.Document
	results []*layout.Result
	surface renderer.Renderer
}

func (p *pipeline) run() (*laidOut, error) {
	doc, err := parseDocument(p.input)
	if err != nil {
		return nil, err
	}
	data, err := loadData(p.dataArg)
	if err != nil {
		return nil, err
	}

	surface := p.newSurface()
	opts := p.cfg.LayoutOptions()
	opts.Logger = p.logger

	spacing := p.cfg.TableSpacing()
	built, err := layout.Build(doc, data, layout.BuildOptions{
		Surface:      surface,
		Options:      opts,
		TableSpacing: &spacing,
		DefaultFont:  p.cfg.DefaultFont(),
	})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	p.logger.Debug("文档已构建", "name", built.Name, "page", built.Page.Size, "tables", len(built.Tables))

	if cr, ok := surface.(*canvasrenderer.Renderer); ok {
		m := built.Meta
		cr.SetPage(built.Page.Width, built.Page.Height, canvasrenderer.Meta{
			Title:    m.Title,
			Subject:  m.Subject,
			Author:   m.Author,
			Creator:  m.Creator,
			Keywords: m.Keywords,
		})
	}

	results := make([]*layout.Result, 0, len(built.Tables))
	for i, tbl := range built.Tables {
		res, err := tbl.Draw(surface, opts)
		if err != nil {
			return nil, fmt.Errorf("绘制第 %d 个表格失败: %w", i+1, err)
		}
		results = append(results, res)
	}
	return &laidOut{doc: built, results: results, surface: surface}, nil
}

func (p *pipeline) newSurface() renderer.Renderer {
	switch p.cfg.Output.Format {
	case config.FormatTXT:
		return textrenderer.New(p.cfg.TextOptions())
	case config.FormatSVG:
		return canvasrenderer.New(canvasrenderer.Options{Format: canvasrenderer.FormatSVG, BaseDir: filepath.Dir(p.input), Logger: p.logger})
	default:
		return canvasrenderer.New(canvasrenderer.Options{Format: canvasrenderer.FormatPDF, BaseDir: filepath.Dir(p.input), Logger: p.logger})
	}
}

func parseDocument(path string) (*dsl.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	return doc, nil
}

// loadData 接受内联 JSON（以 { 或 [ 开头）或 JSON 文件路径；空串返回 nil。
func loadData(arg string) (any, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	raw := []byte(arg)
	if !strings.HasPrefix(arg, "{") && !strings.HasPrefix(arg, "[") {
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		raw = b
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

func loadConfig(path, format string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if format != "" {
		cfg.Output.Format = strings.ToLower(format)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
