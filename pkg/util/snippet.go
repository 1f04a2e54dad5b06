package util

import "unicode"

// ExtractContext returns the text surrounding [start,end) padded by radius
// runes on each side, with ellipses marking truncated edges. Offsets are byte
// offsets; slicing is rune safe.
// ExtractContext 提取匹配位置两侧各 radius 个字符的上下文，截断处以省略号标记
func ExtractContext(text string, start, end, radius int) string {
	if start < 0 || end > len(text) || start > end {
		return ""
	}

	runes := []rune(text)
	startRune := len([]rune(text[:start]))
	endRune := startRune + len([]rune(text[start:end]))

	from := startRune - radius
	if from < 0 {
		from = 0
	}
	to := endRune + radius
	if to > len(runes) {
		to = len(runes)
	}

	snippet := string(runes[from:to])
	if from > 0 {
		snippet = "..." + snippet
	}
	if to < len(runes) {
		snippet = snippet + "..."
	}
	return snippet
}

// IndexFold returns the byte offset of the first case-insensitive occurrence
// of substr in s at or after the byte offset from, or -1. The fold is
// rune-wise so offsets always land on rune boundaries of s.
// IndexFold 返回 s 中从 from 起第一次忽略大小写出现 substr 的字节偏移，找不到返回 -1
func IndexFold(s, substr string, from int) int {
	if substr == "" || from < 0 || from > len(s) {
		return -1
	}

	needle := foldRunes(substr)
	hay := []rune(s[from:])
	if len(needle) > len(hay) {
		return -1
	}

	offset := from
	for i := 0; i+len(needle) <= len(hay); i++ {
		if foldEqual(hay[i:i+len(needle)], needle) {
			return offset
		}
		offset += len(string(hay[i]))
	}
	return -1
}

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func foldEqual(a, b []rune) bool {
	for i := range b {
		if unicode.ToLower(a[i]) != b[i] {
			return false
		}
	}
	return true
}
