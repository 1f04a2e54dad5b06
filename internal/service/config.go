// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	App AppServiceConfig // App related config // 应用相关配置
	AI  AIServiceConfig  // AI suggestion related config // AI 建议相关配置
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	SoftDeleteRetentionTime string // Soft delete retention time (e.g., 7d, 24h, 30m, 0/empty for no cleanup) // 软删除保留时间（支持格式：7d、24h、30m、0 或空表示不自动清理）
	HistoryKeepVersions     int    // History versions to keep // 历史记录保留版本数
	HistoryRetentionTime    string // History retention time beyond kept versions // 超出保留版本数的历史记录保留时间
	ContextRadius           int    // Context snippet radius in runes // 上下文片段半径（字符数）
}

// AIServiceConfig AI suggestion configuration
// AIServiceConfig AI 建议配置
type AIServiceConfig struct {
	Enable              bool          // Whether AI suggestions are enabled // 是否启用 AI 建议
	ConfidenceThreshold float64       // Minimum confidence to keep a suggestion // 建议保留的最低置信度
	MaxCandidates       int           // Candidate cap per suggestion request // 单次建议的候选数量上限
	ExcerptMaxChars     int           // Note excerpt length sent to the model // 发送给模型的笔记摘要长度
	AutoRateLimit       time.Duration // Min interval between automatic suggestions per note // 同一笔记自动建议的最小间隔
}

// 服务层默认值，配置缺省时由 App 容器填充
const (
	DefaultContextRadius       = 25
	DefaultConfidenceThreshold = 0.5
	DefaultMaxCandidates       = 20
	DefaultExcerptMaxChars     = 200
	DefaultAutoRateLimit       = 5 * time.Second
)

// ContextRadiusOrDefault 返回配置的上下文半径，未配置时使用默认值
func (c *ServiceConfig) ContextRadiusOrDefault() int {
	if c == nil || c.App.ContextRadius <= 0 {
		return DefaultContextRadius
	}
	return c.App.ContextRadius
}

// AIThresholdOrDefault 返回配置的置信度阈值，未配置时使用默认值
func (c *ServiceConfig) AIThresholdOrDefault() float64 {
	if c == nil || c.AI.ConfidenceThreshold <= 0 {
		return DefaultConfidenceThreshold
	}
	return c.AI.ConfidenceThreshold
}

// MaxCandidatesOrDefault 返回配置的候选上限，未配置时使用默认值
func (c *ServiceConfig) MaxCandidatesOrDefault() int {
	if c == nil || c.AI.MaxCandidates <= 0 {
		return DefaultMaxCandidates
	}
	return c.AI.MaxCandidates
}

// ExcerptMaxCharsOrDefault 返回配置的摘要长度，未配置时使用默认值
func (c *ServiceConfig) ExcerptMaxCharsOrDefault() int {
	if c == nil || c.AI.ExcerptMaxChars <= 0 {
		return DefaultExcerptMaxChars
	}
	return c.AI.ExcerptMaxChars
}

// AutoRateLimitOrDefault 返回自动建议的最小间隔，未配置时使用默认值
func (c *ServiceConfig) AutoRateLimitOrDefault() time.Duration {
	if c == nil || c.AI.AutoRateLimit <= 0 {
		return DefaultAutoRateLimit
	}
	return c.AI.AutoRateLimit
}
