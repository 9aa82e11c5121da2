package layout

// monoSurface 是测试用的等宽测量表面：每个字节宽 charWidth，单行高 lineHeight。
// 绘制调用按顺序记录下来，便于断言。
type monoSurface struct {
	charWidth  float64
	lineHeight float64
	measured   int
	lines      []drawnLine
	texts      []drawnText
}

type drawnLine struct {
	Pen  Pen
	A, B Point
}

type drawnText struct {
	Text  string
	Font  Font
	Rect  Rect
	Align Align
}

func newMonoSurface() *monoSurface {
	return &monoSurface{charWidth: 1, lineHeight: 10}
}

func (m *monoSurface) MeasureText(text string, font Font) Size {
	m.measured++
	return Size{Width: float64(len(text)) * m.charWidth, Height: m.lineHeight}
}

func (m *monoSurface) DrawLine(pen Pen, a, b Point) {
	m.lines = append(m.lines, drawnLine{Pen: pen, A: a, B: b})
}

func (m *monoSurface) DrawText(text string, font Font, rect Rect, align Align) {
	m.texts = append(m.texts, drawnText{Text: text, Font: font, Rect: rect, Align: align})
}

// verticalRules 按绘制顺序返回所有竖线。
func (m *monoSurface) verticalRules() []drawnLine {
	var out []drawnLine
	for _, l := range m.lines {
		if l.A.X == l.B.X {
			out = append(out, l)
		}
	}
	return out
}

var testOptions = Options{
	SummaryPadding: 4,
	Pen:            Pen{Width: 1},
	HeaderPen:      Pen{Width: 2},
}
