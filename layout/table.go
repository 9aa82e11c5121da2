package layout

import "fmt"

// DefaultFont 是未指定字体时单元格使用的等宽字体。
func DefaultFont() Font {
	return Font{Family: "Courier", Size: 10, Weight: WeightRegular}
}

func (t *Table) font() Font {
	f := t.Font
	if f.Family == "" && f.Src == "" {
		f.Family = DefaultFont().Family
	}
	if f.Size <= 0 {
		f.Size = DefaultFont().Size
	}
	f.Weight = WeightRegular
	return f
}

// Layout 计算列边界、各行片段与高度，不产生任何绘制调用。
// 行的纵向起点依次衔接：表头 → 主体行 → 汇总行。
func (t *Table) Layout(s Surface, opts Options) (*Result, error) {
	cols, err := NormalizeColumns(t.weights(), t.Width, t.X)
	if err != nil {
		return nil, err
	}
	opts.debugf("列右边界: %v", cols.Edges)

	font := t.font()
	res := &Result{X: t.X, Y: t.Y, Width: t.Width, Columns: cols}
	y := t.Y

	if t.Header != nil {
		row, err := layoutRow(s, *t.Header, RowHeader, y, font, cols, opts)
		if err != nil {
			return nil, err
		}
		res.Header = &row
		y = row.Bottom()
	}

	res.Rows = make([]LaidOutRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		row, err := layoutRow(s, r, RowBody, y, font, cols, opts)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", i+1, err)
		}
		res.Rows = append(res.Rows, row)
		y = row.Bottom()
	}

	if t.Summary != nil {
		row, err := layoutRow(s, *t.Summary, RowSummary, y, font.Bold(), cols, opts)
		if err != nil {
			return nil, err
		}
		res.Summary = &row
	}

	res.Height = res.totalHeight()
	return res, nil
}

// Draw 完成布局后依次绘制外框、网格线与文本；布局失败时不会产生任何绘制调用。
// 绘制完成后 t.Height 为表格实际高度。
func (t *Table) Draw(s Surface, opts Options) (*Result, error) {
	res, err := t.Layout(s, opts)
	if err != nil {
		return nil, err
	}
	t.Height = res.Height
	res.Draw(s, opts)
	return res, nil
}

func (r *Result) totalHeight() float64 {
	h := 0.0
	if r.Header != nil {
		h += r.Header.Height
	}
	for _, row := range r.Rows {
		h += row.Height
	}
	if r.Summary != nil {
		h += r.Summary.Height
	}
	return h
}

// Draw 将已完成的布局输出到绘图表面。
func (r *Result) Draw(s Surface, opts Options) {
	r.drawBorders(s, opts.Pen)
	r.drawGrid(s, opts)
	r.drawText(s)
}

func (r *Result) drawBorders(s Surface, pen Pen) {
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	s.DrawLine(pen, Point{left, top}, Point{right, top})
	s.DrawLine(pen, Point{left, top}, Point{left, bottom})
	s.DrawLine(pen, Point{right, top}, Point{right, bottom})
	s.DrawLine(pen, Point{left, bottom}, Point{right, bottom})
}

func (r *Result) drawGrid(s Surface, opts Options) {
	left, right := r.X, r.X+r.Width
	if r.Header != nil {
		y := r.Header.Bottom()
		s.DrawLine(opts.HeaderPen, Point{left, y}, Point{right, y})
	}
	for _, row := range r.Rows {
		y := row.Bottom()
		s.DrawLine(opts.Pen, Point{left, y}, Point{right, y})
	}
	if r.Summary != nil {
		y := r.Summary.Bottom()
		s.DrawLine(opts.Pen, Point{left, y}, Point{right, y})
	}
	for _, x := range r.Columns.Edges {
		s.DrawLine(opts.Pen, Point{x, r.Y}, Point{x, r.Y + r.Height})
	}
}

// drawText 将行高按片段数均分，每个片段在自己的矩形内居中绘制。
func (r *Result) drawText(s Surface) {
	for _, row := range r.AllRows() {
		for _, frags := range row.Fragments {
			n := float64(len(frags))
			if n == 0 {
				continue
			}
			slot := row.Height / n
			for i, f := range frags {
				rect := Rect{X: f.X, Y: row.Y + float64(i)*slot, Width: f.Width, Height: slot}
				s.DrawText(f.Text, row.Font, rect, AlignCenter)
			}
		}
	}
}
