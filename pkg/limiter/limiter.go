// Package limiter provides token-bucket rate limiting keyed by request path
// Package limiter 提供按请求路径分桶的令牌桶限流
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter interface consumed by the RateLimiter middleware
// Face 是限流中间件使用的限流器接口
type Face interface {
	// Key 从请求中提取限流键
	Key(c *gin.Context) string
	// GetBucket 获取键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule one bucket definition
// BucketRule 一条令牌桶规则
type BucketRule struct {
	// Key 匹配的路径前缀
	Key string
	// FillInterval 放置令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放置的令牌数量
	Quantum int64
}

// MethodLimiter limits by URI prefix
// MethodLimiter 按 URI 前缀限流
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// NewMethodLimiter creates an empty prefix limiter
// NewMethodLimiter 创建一个空的前缀限流器
func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: map[string]*ratelimit.Bucket{},
	}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	index := strings.Index(uri, "?")
	if index == -1 {
		return uri
	}
	return uri[:index]
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.limiterBuckets {
		if strings.HasPrefix(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
