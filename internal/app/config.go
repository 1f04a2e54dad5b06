// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	storagecfg "github.com/Nicoding1996/momentum-notes-sub000/internal/config"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dao"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/service"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/llm"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/mailer"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/workerpool"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string                   `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig             `yaml:"server"`
	Log      LogConfig                `yaml:"log"`
	Database DatabaseConfig           `yaml:"database"`
	App      AppSettings              `yaml:"app"`
	Security SecurityConfig           `yaml:"security"`
	AI       AIConfig                 `yaml:"ai"`
	Tunnel   service.TunnelConfig     `yaml:"tunnel"`
	Storage  storagecfg.StorageConfig `yaml:"storage"`
	Mail     mailer.Config            `yaml:"mail"`
	Tracer   TracerConfig             `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（/metrics、/debug）
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig 安全配置
// Password 与 AuthToken 都为空时认证整体关闭，本地单机模式直接放行
type SecurityConfig struct {
	// Password 管理口令，支持 bcrypt 哈希或明文
	Password string `yaml:"password"`
	// AuthToken 插件客户端使用的静态 Token
	AuthToken string `yaml:"auth-token" default:"momentum-graph-Auth-Token"`
	// AuthTokenKey 会话 JWT 签名密钥，缺省复用 AuthToken
	AuthTokenKey string `yaml:"auth-token-key"`
	// TokenExpiry 会话 Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"30d"`
}

// Enabled 认证是否启用
func (c *SecurityConfig) Enabled() bool {
	return c.Password != "" || c.AuthToken != ""
}

// SigningKey 会话 JWT 签名密钥
func (c *SecurityConfig) SigningKey() string {
	if c.AuthTokenKey != "" {
		return c.AuthTokenKey
	}
	return c.AuthToken
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas 只读副本主机列表，仅 mysql/postgres 生效
	Replicas []string `yaml:"replicas"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"20"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TempPath 备份归档临时路径
	TempPath string `yaml:"temp-path" default:"storage/temp"`
	// IsReturnSussess 是否返回无数据的成功信息
	IsReturnSussess bool `yaml:"is-return-sussess" default:"false"`
	// SoftDeleteRetentionTime 软删除笔记保留时间，0 或空表示不自动清理
	SoftDeleteRetentionTime string `yaml:"soft-delete-retention-time" default:"7d"`
	// HistoryKeepVersions 历史记录保留版本数，默认 100
	HistoryKeepVersions int `yaml:"history-keep-versions" default:"100"`
	// HistoryRetentionTime 超出保留版本数的历史记录保留时间
	HistoryRetentionTime string `yaml:"history-retention-time" default:"90d"`
	// ContextRadius 反链/提及上下文片段半径（字符数）
	ContextRadius int `yaml:"context-radius" default:"25"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// AIConfig 语言模型建议配置
type AIConfig struct {
	// Enable 是否启用 AI 连接建议
	Enable bool `yaml:"enable" default:"false"`
	// Endpoint OpenAI 兼容 chat-completions 地址
	Endpoint string `yaml:"endpoint" default:"https://api.openai.com/v1/chat/completions"`
	// APIKey 服务密钥
	APIKey string `yaml:"api-key"`
	// Model 模型名
	Model string `yaml:"model" default:"gpt-4o-mini"`
	// Temperature 采样温度
	Temperature float64 `yaml:"temperature" default:"0.2"`
	// MaxTokens 单次回复的最大 token 数
	MaxTokens int `yaml:"max-tokens" default:"1024"`
	// Timeout 请求超时，支持格式：60s、2m
	Timeout string `yaml:"timeout" default:"60s"`
	// ConfidenceThreshold 建议采纳的最低置信度
	ConfidenceThreshold float64 `yaml:"confidence-threshold" default:"0.5"`
	// MaxCandidates 单次建议的候选数量上限
	MaxCandidates int `yaml:"max-candidates" default:"20"`
	// ExcerptMaxChars 发送给模型的笔记摘要长度
	ExcerptMaxChars int `yaml:"excerpt-max-chars" default:"200"`
	// AutoSuggestInterval 同一笔记自动建议的最小间隔
	AutoSuggestInterval string `yaml:"auto-suggest-interval" default:"5s"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent Jaeger agent 地址，为空时不上报
	JaegerAgent string `yaml:"jaeger-agent"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetDatabaseConfig 装配 DAO 层数据库配置，时长字符串折算为秒
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: int(parseDurationOr(c.Database.ConnMaxLifetime, 30*time.Minute).Seconds()),
		ConnMaxIdleTime: int(parseDurationOr(c.Database.ConnMaxIdleTime, 10*time.Minute).Seconds()),
		Replicas:        c.Database.Replicas,
		RunMode:         c.Server.RunMode,
	}
}

// GetServiceConfig 装配服务层配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	return &service.ServiceConfig{
		App: service.AppServiceConfig{
			SoftDeleteRetentionTime: c.App.SoftDeleteRetentionTime,
			HistoryKeepVersions:     c.App.HistoryKeepVersions,
			HistoryRetentionTime:    c.App.HistoryRetentionTime,
			ContextRadius:           c.App.ContextRadius,
		},
		AI: service.AIServiceConfig{
			Enable:              c.AI.Enable,
			ConfidenceThreshold: c.AI.ConfidenceThreshold,
			MaxCandidates:       c.AI.MaxCandidates,
			ExcerptMaxChars:     c.AI.ExcerptMaxChars,
			AutoRateLimit:       parseDurationOr(c.AI.AutoSuggestInterval, service.DefaultAutoRateLimit),
		},
	}
}

// GetLLMConfig 装配语言模型客户端配置
func (c *AppConfig) GetLLMConfig() *llm.Config {
	return &llm.Config{
		Endpoint:    c.AI.Endpoint,
		APIKey:      c.AI.APIKey,
		Model:       c.AI.Model,
		Temperature: c.AI.Temperature,
		MaxTokens:   c.AI.MaxTokens,
		Timeout:     parseDurationOr(c.AI.Timeout, 60*time.Second),
	}
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetTokenExpiry 获取会话 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	return parseDurationOr(c.Security.TokenExpiry, 30*24*time.Hour)
}

// parseDurationOr 解析时长字符串，失败时返回回退值
func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := util.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
