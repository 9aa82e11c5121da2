package layout

import (
	"math"
	"strings"
)

// breakKind 标记一次断点搜索的结果类型。
type breakKind int

const (
	// breakFound 在 index 处找到可用空格。
	breakFound breakKind = iota
	// breakEndOfString 没有更多空格，剩余部分整体作为最后一段（可能溢出）。
	breakEndOfString
	// breakFits 没有更多空格，且剩余部分不超过目标长度。
	breakFits
)

type breakResult struct {
	kind  breakKind
	index int
}

// Wrap 是一次折行的结果。Measured 为整串文本的单行测量值，
// 所有片段共用这一次测量得到的行高。
type Wrap struct {
	Lines    []string
	Measured Size
}

// WrapText 按列宽对文本折行：整串宽度不超过列宽时原样返回一段；
// 否则按平均字符宽度估算每段的目标字符数，再在空格处贪心断开。
// 不做连字符处理，也不在词内截断，没有空格的长词会溢出列宽。
func WrapText(s Surface, text string, font Font, width float64) Wrap {
	size := s.MeasureText(text, font)
	if size.Width <= width {
		return Wrap{Lines: []string{text}, Measured: size}
	}
	parts := size.Width / width
	target := int(math.Floor(float64(len(text)) / parts))
	return Wrap{Lines: splitAtBreaks(text, target), Measured: size}
}

// splitAtBreaks 以 target 为每段的目标长度反复搜索断点。
// 断点处的空格被丢弃，用单个空格拼接各段即可还原原文。
func splitAtBreaks(text string, target int) []string {
	var lines []string
	start := 0
	for {
		br := findBreak(text, target, start)
		if br.kind != breakFound {
			return append(lines, text[start:])
		}
		lines = append(lines, text[start:br.index])
		start = br.index + 1
	}
}

// findBreak 从上一个断点 last 开始向后扫描空格，选出离 target 最近且不超出的位置。
// 扫描游标只会前进，循环次数不超过文本长度。
func findBreak(text string, target, last int) breakResult {
	cursor := last
	for {
		idx := indexSpace(text, cursor)
		if idx < 0 {
			if len(text)-last <= target {
				return breakResult{kind: breakFits}
			}
			idx = len(text)
		}
		switch dist := idx - last; {
		case dist < target:
			cursor = idx + 1
		case dist == target:
			return breakResult{kind: breakFound, index: idx}
		case cursor != last:
			// 已越过目标长度，退回上一次扫描到的空格
			return breakResult{kind: breakFound, index: cursor - 1}
		case idx == len(text):
			return breakResult{kind: breakEndOfString}
		default:
			return breakResult{kind: breakFound, index: idx}
		}
	}
}

func indexSpace(text string, from int) int {
	if from >= len(text) {
		return -1
	}
	i := strings.IndexByte(text[from:], ' ')
	if i < 0 {
		return -1
	}
	return from + i
}
