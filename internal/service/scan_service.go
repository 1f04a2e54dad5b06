// Package service 实现业务逻辑层
package service

import (
	"strings"
	"unicode/utf8"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
)

// ScanService 扫描笔记内容中的引用
// 显式引用为 [[标题]] / [[标题|别名]] 双链标记，![[...]] 嵌入标记仅识别不入链；
// 裸标题提及在纯文本投影上做忽略大小写的字面匹配
type ScanService interface {
	// ScanLinks 按出现顺序返回内容中的全部双链标记，包含嵌入标记
	ScanLinks(content string) []*domain.ScannedLink

	// LinkTargets 返回去重后的非嵌入链接目标，按首次出现顺序排列，
	// 目标标题忽略大小写去重，偏移取首次出现位置
	LinkTargets(content string) []*domain.ScannedLink

	// FindMentions 在纯文本投影 plain 中查找 title 的全部字面出现，
	// 返回每次出现的偏移与上下文片段
	FindMentions(plain string, title string) []*domain.MentionCandidate

	// LinkContext 为指向 title 的链接重新计算上下文片段：
	// 优先在存储偏移附近查找标题，其次取首次出现，最后退回内容开头
	LinkContext(content string, title string, offset int) string
}

type scanService struct {
	config *ServiceConfig
}

// NewScanService 创建 ScanService 实例
func NewScanService(config *ServiceConfig) ScanService {
	return &scanService{config: config}
}

func (s *scanService) radius() int {
	return s.config.ContextRadiusOrDefault()
}

// ScanLinks 按出现顺序返回内容中的全部双链标记
func (s *scanService) ScanLinks(content string) []*domain.ScannedLink {
	tokens := util.ParseWikiLinks(content)
	if len(tokens) == 0 {
		return nil
	}
	links := make([]*domain.ScannedLink, 0, len(tokens))
	for _, t := range tokens {
		links = append(links, &domain.ScannedLink{
			TargetTitle: t.Title,
			Alias:       t.Alias,
			MatchedText: t.Raw,
			StartOffset: t.Start,
			EndOffset:   t.End,
			IsEmbed:     t.IsEmbed,
		})
	}
	return links
}

// LinkTargets 返回去重后的非嵌入链接目标
func (s *scanService) LinkTargets(content string) []*domain.ScannedLink {
	all := s.ScanLinks(content)
	if len(all) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(all))
	targets := make([]*domain.ScannedLink, 0, len(all))
	for _, l := range all {
		if l.IsEmbed {
			continue
		}
		key := strings.ToLower(l.TargetTitle)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		targets = append(targets, l)
	}
	return targets
}

// FindMentions 在纯文本投影中查找标题的全部字面出现
func (s *scanService) FindMentions(plain string, title string) []*domain.MentionCandidate {
	title = strings.TrimSpace(title)
	if title == "" || plain == "" {
		return nil
	}

	var mentions []*domain.MentionCandidate
	from := 0
	for {
		idx := util.IndexFold(plain, title, from)
		if idx < 0 {
			break
		}
		end := foldSpanEnd(plain, idx, title)
		mentions = append(mentions, &domain.MentionCandidate{
			MatchedText: plain[idx:end],
			StartOffset: idx,
			Context:     util.ExtractContext(plain, idx, end, s.radius()),
		})
		from = end
	}
	return mentions
}

// LinkContext 重新计算链接上下文片段
func (s *scanService) LinkContext(content string, title string, offset int) string {
	if content == "" {
		return ""
	}

	idx := -1
	if offset >= 0 && offset <= len(content) {
		// 存储偏移指向链接标记的起点，标题字面量在几个字节之后；
		// 内容被编辑后偏移可能漂移，超出窗口则视为失效
		if near := util.IndexFold(content, title, offset); near >= 0 && near-offset <= linkOffsetSlack {
			idx = near
		}
	}
	if idx < 0 {
		idx = util.IndexFold(content, title, 0)
	}
	if idx < 0 {
		return util.ExtractContext(content, 0, 0, s.radius())
	}

	return util.ExtractContext(content, idx, foldSpanEnd(content, idx, title), s.radius())
}

// linkOffsetSlack 存储偏移与标题字面量之间允许的最大距离（字节）
const linkOffsetSlack = 64

// foldSpanEnd 返回 s 中从 idx 起与 needle 等长（按字符数）片段的结束字节偏移
func foldSpanEnd(s string, idx int, needle string) int {
	end := idx
	for range needle {
		_, size := utf8.DecodeRuneInString(s[end:])
		if size == 0 {
			break
		}
		end += size
	}
	return end
}

var _ ScanService = (*scanService)(nil)
