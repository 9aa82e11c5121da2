package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/papyrus-table/fonts"
	"github.com/ByLCY/papyrus-table/layout"
	"github.com/ByLCY/papyrus-table/renderer"
)

// Format 输出格式
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

var textColor = layout.Color{R: 30, G: 30, B: 30}

// Renderer draws tables onto a single tdewolff/canvas page (millimetres, top-left origin).
type Renderer struct {
	opts Options

	c   *canvas.Canvas
	ctx *canvas.Context

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily map[bool]*canvas.FontFamily

	// Surface 方法没有错误返回，首个字体错误留到 Render 时报告
	errMu sync.Mutex
	err   error
}

var _ renderer.Renderer = (*Renderer)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// Options configures the canvas renderer.
type Options struct {
	Width   float64 // mm
	Height  float64 // mm
	Format  Format
	BaseDir string // 相对字体路径的根目录
	Meta    Meta
	Logger  *log.Logger
}

// New creates a renderer for one page of the given size.
// 画布在第一次绘制时创建，此前可用 SetPage 调整页面尺寸。
func New(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	return &Renderer{
		opts:           opts,
		fontFamilies:   map[string]*fontFamilyEntry{},
		fallbackFamily: map[bool]*canvas.FontFamily{},
	}
}

// SetPage 设置页面尺寸与文档信息；只能在绘制之前调用。
func (r *Renderer) SetPage(width, height float64, meta Meta) {
	r.opts.Width, r.opts.Height = width, height
	r.opts.Meta = meta
}

func (r *Renderer) drawContext() *canvas.Context {
	if r.ctx == nil {
		r.c = canvas.New(r.opts.Width, r.opts.Height)
		r.ctx = canvas.NewContext(r.c)
		r.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	}
	return r.ctx
}

// MeasureText 返回单行文本的宽度与行高（mm）。
func (r *Renderer) MeasureText(text string, font layout.Font) layout.Size {
	face := r.face(font)
	if face == nil {
		return layout.Size{}
	}
	return layout.Size{Width: face.TextWidth(text), Height: face.Metrics().LineHeight}
}

// DrawLine 以 pen 描一条直线。
func (r *Renderer) DrawLine(pen layout.Pen, a, b layout.Point) {
	ctx := r.drawContext()
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(colorFromLayout(pen.Color))
	ctx.SetStrokeWidth(pen.Width)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(b.X-a.X, b.Y-a.Y)
	ctx.DrawPath(a.X, a.Y, p)
}

// DrawText 在 rect 内绘制单行文本，垂直居中。
func (r *Renderer) DrawText(text string, font layout.Font, rect layout.Rect, align layout.Align) {
	face := r.face(font)
	if face == nil {
		return
	}
	var textAlign canvas.TextAlign
	var anchorX float64
	switch align {
	case layout.AlignLeft:
		textAlign = canvas.Left
		anchorX = rect.X
	case layout.AlignRight:
		textAlign = canvas.Right
		anchorX = rect.X + rect.Width
	default:
		textAlign = canvas.Center
		anchorX = rect.X + rect.Width/2
	}
	// 基线：使上升部与下降部整体落在 rect 垂直中线两侧
	m := face.Metrics()
	baseline := rect.Y + rect.Height/2 + (m.Ascent-m.Descent)/2
	r.drawContext().DrawText(anchorX, baseline, canvas.NewTextLine(face, text, textAlign))
}

// Render 输出 PDF 或 SVG 字节。
func (r *Renderer) Render() ([]byte, error) {
	r.errMu.Lock()
	err := r.err
	r.errMu.Unlock()
	if err != nil {
		return nil, err
	}

	r.drawContext()
	var buf bytes.Buffer
	switch r.opts.Format {
	case FormatPDF:
		writer := pdf.New(&buf, r.opts.Width, r.opts.Height, nil)
		meta := r.opts.Meta
		writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
		r.c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case FormatSVG:
		writer := svg.New(&buf, r.opts.Width, r.opts.Height, nil)
		r.c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.opts.Format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) face(font layout.Font) *canvas.FontFace {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		r.fail(err)
		return nil
	}
	return family.Face(font.Size, colorFromLayout(textColor), style, canvas.FontNormal)
}

func (r *Renderer) fail(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

func (r *Renderer) ensureFontFamily(font layout.Font) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	bold := font.Weight == layout.WeightBold
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	name := font.Family
	if name == "" {
		name = "Cell"
	}
	family := canvas.NewFontFamily(name)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		r.logger().Warn("字体加载失败，使用内置字体", "family", font.Family, "src", font.Src, "err", err)
		fallback, fbErr := r.fallback(bold)
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: style}
		return fallback, style, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.Font, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.Font) ([]byte, error) {
	src := font.Src
	if src == "" {
		return fonts.Load(fonts.ForFamily(font.Family, font.Weight == layout.WeightBold))
	}
	if fonts.IsEmbedded(src) {
		return fonts.Load(src)
	}
	path := src
	if r.opts.BaseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.opts.BaseDir, path)
	}
	return os.ReadFile(path)
}

func (r *Renderer) fallback(bold bool) (*canvas.FontFamily, error) {
	if family, ok := r.fallbackFamily[bold]; ok {
		return family, nil
	}
	name, style := fonts.Regular, canvas.FontRegular
	if bold {
		name, style = fonts.Bold, canvas.FontBold
	}
	data, err := fonts.Load(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("papyrus-fallback")
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, err
	}
	r.fallbackFamily[bold] = family
	return family, nil
}

func (r *Renderer) logger() *log.Logger {
	if r.opts.Logger != nil {
		return r.opts.Logger
	}
	return log.Default()
}

func fontCacheKey(font layout.Font) string {
	return fmt.Sprintf("%s|%s|%s", font.Family, font.Src, font.Weight)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
