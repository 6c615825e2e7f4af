package layout

import (
	"math"
	"strings"
)

// 自动适配参数。
const (
	minFontSize     = 10.0
	fitShrinkFactor = 0.94
	lineHeightRatio = 1.08
	blankLineRatio  = 0.55
)

// WrapText 贪心换行：按空白分词、单个空格连接，超宽时换行。
// 段落之间的空行保留为空字符串；单词本身超过 maxWidth 时独占一行，从不在词内拆分。
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	text = strings.ReplaceAll(text, "\r", "")
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// Fit 是 AutoFitFontSize 的结果。
type Fit struct {
	FontSize        float64  `json:"fontSize"`
	Lines           []string `json:"lines"`
	LineHeight      float64  `json:"lineHeight"`
	BlankLineHeight float64  `json:"blankLineHeight"`
	Height          float64  `json:"height"`
	MaxLineWidth    float64  `json:"maxLineWidth"`
}

// AutoFitFontSize 从 initial（不小于 10）开始，每轮乘以 0.94 缩小字号，
// 直到换行后的总高度不超过 boxH 且最宽行不超过 boxW，或字号已降到 10。
// 空行的高度为字号的 0.55 倍，其余行为 1.08 倍。
func AutoFitFontSize(content string, boxW, boxH float64, measure func(text string, size float64) float64, initial float64) Fit {
	size := math.Max(minFontSize, initial)
	fit := fitAtSize(content, boxW, measure, size)
	for size > minFontSize && (fit.Height > boxH || fit.MaxLineWidth > boxW) {
		size = math.Max(minFontSize, size*fitShrinkFactor)
		fit = fitAtSize(content, boxW, measure, size)
	}
	return fit
}

func fitAtSize(content string, boxW float64, measure func(string, float64) float64, size float64) Fit {
	at := func(s string) float64 { return measure(s, size) }
	fit := Fit{
		FontSize:        size,
		Lines:           WrapText(content, boxW, at),
		LineHeight:      size * lineHeightRatio,
		BlankLineHeight: size * blankLineRatio,
	}
	for _, line := range fit.Lines {
		if line == "" {
			fit.Height += fit.BlankLineHeight
			continue
		}
		fit.Height += fit.LineHeight
		fit.MaxLineWidth = math.Max(fit.MaxLineWidth, at(line))
	}
	return fit
}
