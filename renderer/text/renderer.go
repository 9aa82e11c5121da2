// Package textrenderer draws tables onto a character grid for terminals and plain-text files.
package textrenderer

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/papyrus-table/layout"
	"github.com/ByLCY/papyrus-table/renderer"
)

// Options 描述毫米到字符格的换算。
//
// 每个文本行占两格高：一格文字，一格留给分隔线，因此 y 方向按 LineHeight/2 一格换算。
type Options struct {
	CellWidth  float64 // 每个字符格的宽度（mm）
	LineHeight float64 // 单行文本高度（mm）
	HeavyWidth float64 // 笔宽不小于该值时画 '='
}

// DefaultOptions 返回与 Courier 10pt 相近的换算。
func DefaultOptions() Options {
	return Options{
		CellWidth:  2,
		LineHeight: 5,
		HeavyWidth: layout.DefaultOptions().HeaderPen.Width,
	}
}

// Renderer 是基于字符格的 layout.Surface。
type Renderer struct {
	opts Options
	grid [][]string // 宽字符占两格，第二格为 ""
}

var _ renderer.Renderer = (*Renderer)(nil)

// New 创建字符格渲染器；零值字段取默认值。
func New(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.CellWidth <= 0 {
		opts.CellWidth = def.CellWidth
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = def.LineHeight
	}
	if opts.HeavyWidth <= 0 {
		opts.HeavyWidth = def.HeavyWidth
	}
	return &Renderer{opts: opts}
}

// MeasureText 按显示宽度（CJK 计 2 格）换算为毫米。
func (r *Renderer) MeasureText(text string, _ layout.Font) layout.Size {
	return layout.Size{
		Width:  float64(runewidth.StringWidth(text)) * r.opts.CellWidth,
		Height: r.opts.LineHeight,
	}
}

// DrawLine 只支持水平线与竖线，斜线忽略。
func (r *Renderer) DrawLine(pen layout.Pen, a, b layout.Point) {
	c0, c1 := r.col(a.X), r.col(b.X)
	r0, r1 := r.row(a.Y), r.row(b.Y)
	switch {
	case r0 == r1:
		glyph := "-"
		if pen.Width >= r.opts.HeavyWidth {
			glyph = "="
		}
		if c0 > c1 {
			c0, c1 = c1, c0
		}
		for c := c0; c <= c1; c++ {
			r.set(r0, c, mergeHorizontal(r.get(r0, c), glyph))
		}
	case c0 == c1:
		if r0 > r1 {
			r0, r1 = r1, r0
		}
		for row := r0; row <= r1; row++ {
			r.set(row, c0, mergeVertical(r.get(row, c0)))
		}
	}
}

// DrawText 把文本写在 rect 垂直中线所在的格行，左右各让出一格边框。
// 超出可用宽度的部分被截断。
func (r *Renderer) DrawText(text string, _ layout.Font, rect layout.Rect, align layout.Align) {
	left := r.col(rect.X) + 1
	right := r.col(rect.X + rect.Width)
	span := right - left
	if span <= 0 {
		return
	}
	text = runewidth.Truncate(text, span, "")
	pad := span - runewidth.StringWidth(text)
	switch align {
	case layout.AlignLeft:
		pad = 0
	case layout.AlignCenter:
		pad /= 2
	}
	row := r.row(rect.Y + rect.Height/2)
	c := left + pad
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.set(row, c, string(ch))
		for k := 1; k < w; k++ {
			r.set(row, c+k, "")
		}
		c += w
	}
}

// Render 返回字符格内容，行尾空白被去除。
func (r *Renderer) Render() ([]byte, error) {
	var sb strings.Builder
	for _, line := range r.grid {
		var lb strings.Builder
		for _, cell := range line {
			lb.WriteString(cell)
		}
		sb.WriteString(strings.TrimRight(lb.String(), " "))
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// String 便于调试输出。
func (r *Renderer) String() string {
	out, _ := r.Render()
	return string(out)
}

func (r *Renderer) col(x float64) int {
	return int(math.Round(x / r.opts.CellWidth))
}

func (r *Renderer) row(y float64) int {
	return int(math.Round(y * 2 / r.opts.LineHeight))
}

func (r *Renderer) get(row, col int) string {
	if row < 0 || row >= len(r.grid) || col < 0 || col >= len(r.grid[row]) {
		return " "
	}
	return r.grid[row][col]
}

func (r *Renderer) set(row, col int, s string) {
	if row < 0 || col < 0 {
		return
	}
	for len(r.grid) <= row {
		r.grid = append(r.grid, nil)
	}
	for len(r.grid[row]) <= col {
		r.grid[row] = append(r.grid[row], " ")
	}
	r.grid[row][col] = s
}

func mergeHorizontal(existing, glyph string) string {
	switch existing {
	case "|", "+":
		return "+"
	case "=":
		return "="
	default:
		return glyph
	}
}

func mergeVertical(existing string) string {
	switch existing {
	case "-", "=", "+":
		return "+"
	default:
		return "|"
	}
}
