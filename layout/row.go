package layout

import (
	"errors"
	"fmt"
)

// ErrRowLength 表示某一行的单元格数量与列数不一致。
var ErrRowLength = errors.New("layout: 单元格数量与列数不一致")

// layoutRow 为一行生成逐列片段并计算行高。
// 每列的片段都从行顶部 y 开始向下堆叠，较矮的列下方留白；
// 行高取各列 片段数*单行高度 的最大值，粗体（汇总）行再追加固定留白。
func layoutRow(s Surface, row Row, kind RowKind, y float64, font Font, cols ColumnEdges, opts Options) (LaidOutRow, error) {
	if len(row.Cells) != cols.Count() {
		return LaidOutRow{}, fmt.Errorf("%w: %s 行有 %d 个单元格，表格有 %d 列", ErrRowLength, kind, len(row.Cells), cols.Count())
	}

	out := LaidOutRow{
		Kind:      kind,
		Y:         y,
		Font:      font,
		Fragments: make([][]CellContent, len(row.Cells)),
	}
	for i, text := range row.Cells {
		x := cols.LeftOf(i)
		width := cols.WidthOf(i)
		wrap := WrapText(s, text, font, width)
		lineHeight := wrap.Measured.Height
		if len(wrap.Lines) > 1 {
			opts.debugf("%s 行第 %d 列折为 %d 段 (文本宽 %.2f, 列宽 %.2f)", kind, i, len(wrap.Lines), wrap.Measured.Width, width)
		}

		frags := make([]CellContent, len(wrap.Lines))
		for j, line := range wrap.Lines {
			frags[j] = CellContent{
				Text:         line,
				Width:        width,
				StringHeight: lineHeight,
				X:            x,
				Y:            y + float64(j)*lineHeight,
			}
		}
		out.Fragments[i] = frags

		if h := float64(len(frags)) * lineHeight; h > out.Height {
			out.Height = h
		}
	}
	if font.Weight == WeightBold {
		out.Height += opts.SummaryPadding
	}
	return out, nil
}
