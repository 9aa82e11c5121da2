package layout

// 该文件定义表格的输入模型、布局结果与绘图原语，供布局计算、渲染与调试 JSON 共用。

// Weight 表示字重。
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "regular"
}

// Font 描述单元格字体：family 名称、字号（pt）与字重。
// Src 可选，格式与渲染器约定一致（embed:<name> 或相对 baseDir 的路径）。
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Weight Weight  `json:"weight"`
	Src    string  `json:"src,omitempty"`
}

// Bold 返回同 family、同字号的粗体版本，汇总行使用。
func (f Font) Bold() Font {
	f.Weight = WeightBold
	return f
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Pen 描述线条的颜色与宽度（与坐标同单位）。
type Pen struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// Point 是绘图表面上的绝对坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 是以左上角为原点的矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size 是测量结果。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Align 为文本在矩形内的水平对齐方式。
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Row 是调用方提供的一行原始单元格文本，长度必须等于列数。
type Row struct {
	Cells []string `json:"cells"`
}

// NewRow 便于以可变参数构造一行。
func NewRow(cells ...string) Row {
	return Row{Cells: cells}
}

// Table 描述待排版的表格。
//
// Weights 为列宽的相对权重；当 EqualColumns 为 true 时忽略 Weights，
// 按 Columns 生成等宽列。Height 在 Layout 完成后才有意义。
type Table struct {
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Weights      []float64 `json:"weights"`
	EqualColumns bool      `json:"equalColumns"`
	Columns      int       `json:"columns"`
	Header       *Row      `json:"header,omitempty"`
	Rows         []Row     `json:"rows"`
	Summary      *Row      `json:"summary,omitempty"`
	Font         Font      `json:"font"`
}

// CellContent 是单元格折行后的一个可绘制片段。
type CellContent struct {
	Text         string  `json:"text"`
	Width        float64 `json:"width"`
	StringHeight float64 `json:"stringHeight"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// RowKind 标记行在表格中的角色。
type RowKind string

const (
	RowHeader  RowKind = "header"
	RowBody    RowKind = "body"
	RowSummary RowKind = "summary"
)

// LaidOutRow 是一行排版后的结果：起点、高度与逐列片段。
type LaidOutRow struct {
	Kind      RowKind         `json:"kind"`
	Y         float64         `json:"y"`
	Height    float64         `json:"height"`
	Font      Font            `json:"font"`
	Fragments [][]CellContent `json:"fragments"`
}

// Bottom 返回该行底边的 y 坐标。
func (r LaidOutRow) Bottom() float64 { return r.Y + r.Height }

// Result 是一张表格的完整布局。
type Result struct {
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Columns ColumnEdges  `json:"columns"`
	Header  *LaidOutRow  `json:"header,omitempty"`
	Rows    []LaidOutRow `json:"rows"`
	Summary *LaidOutRow  `json:"summary,omitempty"`
}

// AllRows 依次返回表头、主体行与汇总行。
func (r *Result) AllRows() []LaidOutRow {
	out := make([]LaidOutRow, 0, len(r.Rows)+2)
	if r.Header != nil {
		out = append(out, *r.Header)
	}
	out = append(out, r.Rows...)
	if r.Summary != nil {
		out = append(out, *r.Summary)
	}
	return out
}
