package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizeColumnsEqualWeights(t *testing.T) {
	cols, err := NormalizeColumns([]float64{1, 1, 1}, 300, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{100, 200, 300}
	if diff := cmp.Diff(want, cols.Edges, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
	for i := 0; i < 3; i++ {
		if w := cols.WidthOf(i); math.Abs(w-100) > 1e-9 {
			t.Fatalf("column %d width = %g, want 100", i, w)
		}
	}
}

// TestNormalizeColumnsLastEdge 最后一个右边界始终等于 origin + width。
func TestNormalizeColumnsLastEdge(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		width   float64
		origin  float64
	}{
		{"single", []float64{3}, 120, 15},
		{"uneven", []float64{1, 2, 1}, 180, 15},
		{"fractions", []float64{0.1, 0.2, 0.3, 0.4}, 97.3, 0},
		{"zero column", []float64{2, 0, 5}, 50, -7.5},
		{"many", []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 210, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := NormalizeColumns(tt.weights, tt.width, tt.origin)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got, want := cols.Right(), tt.origin+tt.width; math.Abs(got-want) > 1e-9 {
				t.Fatalf("last edge = %g, want %g", got, want)
			}
			prev := tt.origin
			sum := 0.0
			for i, e := range cols.Edges {
				if e < prev {
					t.Fatalf("edge %d (%g) is left of previous edge %g", i, e, prev)
				}
				sum += cols.WidthOf(i)
				prev = e
			}
			if math.Abs(sum-tt.width) > 1e-9 {
				t.Fatalf("sum of widths = %g, want %g", sum, tt.width)
			}
		})
	}
}

func TestNormalizeColumnsProportions(t *testing.T) {
	cols, err := NormalizeColumns([]float64{1, 2, 1}, 200, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]float64{60, 160, 210}, cols.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
	if got := cols.LeftOf(0); got != 10 {
		t.Fatalf("LeftOf(0) = %g, want origin 10", got)
	}
	if got := cols.LeftOf(2); got != 160 {
		t.Fatalf("LeftOf(2) = %g, want 160", got)
	}
	if got := cols.WidthOf(1); got != 100 {
		t.Fatalf("WidthOf(1) = %g, want 100", got)
	}
}

func TestNormalizeColumnsErrors(t *testing.T) {
	if _, err := NormalizeColumns(nil, 100, 0); !errors.Is(err, ErrNoColumns) {
		t.Fatalf("empty weights: got %v, want ErrNoColumns", err)
	}
	if _, err := NormalizeColumns([]float64{0, 0, 0}, 100, 0); !errors.Is(err, ErrZeroWeights) {
		t.Fatalf("zero weights: got %v, want ErrZeroWeights", err)
	}
	if _, err := NormalizeColumns([]float64{1, -1, 1}, 100, 0); err == nil {
		t.Fatalf("negative weight should fail")
	}
}

// 等宽列包括最后一列在内全部取相同权重。
func TestEqualColumnsIncludeLast(t *testing.T) {
	if diff := cmp.Diff([]float64{1, 1, 1, 1}, EqualWeights(4)); diff != "" {
		t.Fatalf("weights mismatch (-want +got):\n%s", diff)
	}
	if EqualWeights(0) != nil {
		t.Fatalf("EqualWeights(0) should be nil")
	}

	tbl := &Table{X: 10, Width: 200, EqualColumns: true, Columns: 4, Weights: []float64{9, 9}}
	if got := tbl.ColumnCount(); got != 4 {
		t.Fatalf("ColumnCount = %d, want 4", got)
	}
	cols, err := NormalizeColumns(tbl.weights(), tbl.Width, tbl.X)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]float64{60, 110, 160, 210}, cols.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}
