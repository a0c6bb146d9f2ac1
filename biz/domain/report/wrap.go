package report

import "strings"

// charWidth 估算一个字符占用的宽度(毫米)
// 精确测量属于渲染层, 这里按字号的半em近似, pt转mm
func charWidth(size int) float64 {
	return float64(size) * 0.5 * 25.4 / 72.0
}

// WrapText 将文本按给定宽度折行, 按词断行, 超长的词整词独占一行
// 相同输入永远产出相同行序列
func WrapText(text string, width float64, size int) []string {
	if text == "" {
		return nil
	}
	perLine := int(width / charWidth(size))
	if perLine < 1 {
		perLine = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) <= perLine {
				line += " " + w
			} else {
				lines = append(lines, line)
				line = w
			}
		}
		lines = append(lines, line)
	}
	return lines
}
