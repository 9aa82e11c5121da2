package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumns 表示表格没有任何列。
	ErrNoColumns = errors.New("layout: 表格没有列")
	// ErrZeroWeights 表示列宽权重之和为零，无法按比例分配宽度。
	ErrZeroWeights = errors.New("layout: 列宽权重之和为零")
)

// ColumnEdges 保存每一列右边界的绝对 x 坐标（而不是列宽）。
// 第 i 列的宽度为 Edges[i]-Edges[i-1]，第 0 列为 Edges[0]-Origin。
type ColumnEdges struct {
	Origin float64   `json:"origin"`
	Edges  []float64 `json:"edges"`
}

// NormalizeColumns 将相对权重换算为累计右边界：
// 每列宽度 = width * weight / sum(weights)。
func NormalizeColumns(weights []float64, width, origin float64) (ColumnEdges, error) {
	if len(weights) == 0 {
		return ColumnEdges{}, ErrNoColumns
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 {
			return ColumnEdges{}, fmt.Errorf("layout: 第 %d 列权重为负数 %g", i, w)
		}
		sum += w
	}
	if sum == 0 {
		return ColumnEdges{}, ErrZeroWeights
	}

	edges := make([]float64, len(weights))
	x := origin
	for i, w := range weights {
		x += width / sum * w
		edges[i] = x
	}
	return ColumnEdges{Origin: origin, Edges: edges}, nil
}

// EqualWeights 返回 n 个相同的权重，包括最后一列。
func EqualWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// Count 返回列数。
func (c ColumnEdges) Count() int { return len(c.Edges) }

// LeftOf 返回第 i 列左边界。
func (c ColumnEdges) LeftOf(i int) float64 {
	if i == 0 {
		return c.Origin
	}
	return c.Edges[i-1]
}

// WidthOf 返回第 i 列宽度。
func (c ColumnEdges) WidthOf(i int) float64 {
	return c.Edges[i] - c.LeftOf(i)
}

// Right 返回最后一列的右边界。
func (c ColumnEdges) Right() float64 {
	if len(c.Edges) == 0 {
		return c.Origin
	}
	return c.Edges[len(c.Edges)-1]
}

// weights 根据表格配置得到最终的列权重。
func (t *Table) weights() []float64 {
	if t.EqualColumns {
		return EqualWeights(t.Columns)
	}
	return t.Weights
}

// ColumnCount 返回表格声明的列数。
func (t *Table) ColumnCount() int {
	if t.EqualColumns {
		return t.Columns
	}
	return len(t.Weights)
}
