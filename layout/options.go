package layout

import "github.com/charmbracelet/log"

//go:generate mockgen -source=options.go -destination=mock_surface_test.go -package=layout

// Surface 是外部提供的绘图表面与文本测量服务。
// 布局只读取 MeasureText 的结果，DrawLine/DrawText 只产生副作用。
type Surface interface {
	MeasureText(text string, font Font) Size
	DrawLine(pen Pen, a, b Point)
	DrawText(text string, font Font, rect Rect, align Align)
}

// Options 配置布局与绘制阶段的参数。
type Options struct {
	// SummaryPadding 为汇总（粗体）行追加的固定高度，单位与坐标一致。
	SummaryPadding float64
	// Pen 用于外框、行线与列线。
	Pen Pen
	// HeaderPen 用于表头下方的强调分隔线。
	HeaderPen Pen
	// Logger 可选，输出折行与列宽计算的调试信息。
	Logger *log.Logger
}

// DefaultOptions 以 mm 为单位：10pt 汇总留白，1pt/2pt 线宽。
func DefaultOptions() Options {
	return Options{
		SummaryPadding: 10 * PtToMm,
		Pen:            Pen{Width: 1 * PtToMm},
		HeaderPen:      Pen{Width: 2 * PtToMm},
	}
}

func (o Options) debugf(format string, args ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debugf(format, args...)
}
