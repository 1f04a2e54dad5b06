// Package diff 提供基于 diff-match-patch 的文本比较
// 用于展示笔记历史版本之间的内容变化
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change 一处内容变化
type Change struct {
	// Op 变化类型：equal / insert / delete
	Op string `json:"op"`
	// Text 变化涉及的文本
	Text string `json:"text"`
}

// Result 两个版本之间的比较结果
type Result struct {
	// Changes 按文档顺序排列的全部变化
	Changes []Change `json:"changes"`
	// Inserted 新增字符数
	Inserted int `json:"inserted"`
	// Deleted 删除字符数
	Deleted int `json:"deleted"`
	// Patch 统一补丁文本，便于日志与导出
	Patch string `json:"patch"`
}

// Texts 比较 from 与 to 两个文本，按语义清理后返回变化列表
func Texts(from, to string) *Result {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	result := &Result{Changes: make([]Change, 0, len(diffs))}
	for _, d := range diffs {
		change := Change{Text: d.Text}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			change.Op = "insert"
			result.Inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			change.Op = "delete"
			result.Deleted += len([]rune(d.Text))
		default:
			change.Op = "equal"
		}
		result.Changes = append(result.Changes, change)
	}

	patches := dmp.PatchMake(from, diffs)
	result.Patch = dmp.PatchToText(patches)
	return result
}

// Unified 以逐行标记的形式渲染比较结果，未变化的长段落折叠为省略行
func Unified(from, to string) string {
	result := Texts(from, to)

	var b strings.Builder
	for _, c := range result.Changes {
		switch c.Op {
		case "insert":
			writeMarked(&b, "+", c.Text)
		case "delete":
			writeMarked(&b, "-", c.Text)
		default:
			writeContext(&b, c.Text)
		}
	}
	return b.String()
}

// HasChanges 判断两个文本是否存在差异
func HasChanges(from, to string) bool {
	return from != to
}

// writeMarked 将文本逐行写入并加上变更前缀
func writeMarked(b *strings.Builder, mark, text string) {
	for _, line := range splitKeepNonEmpty(text) {
		fmt.Fprintf(b, "%s %s\n", mark, line)
	}
}

// contextLines 未变化区域首尾各保留的行数
const contextLines = 2

// writeContext 写入未变化区域，中间部分折叠
func writeContext(b *strings.Builder, text string) {
	lines := splitKeepNonEmpty(text)
	if len(lines) <= contextLines*2 {
		for _, line := range lines {
			fmt.Fprintf(b, "  %s\n", line)
		}
		return
	}
	for _, line := range lines[:contextLines] {
		fmt.Fprintf(b, "  %s\n", line)
	}
	fmt.Fprintf(b, "  ... (%d lines)\n", len(lines)-contextLines*2)
	for _, line := range lines[len(lines)-contextLines:] {
		fmt.Fprintf(b, "  %s\n", line)
	}
}

func splitKeepNonEmpty(text string) []string {
	trimmed := strings.Trim(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
