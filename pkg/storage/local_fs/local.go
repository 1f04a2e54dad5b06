package local_fs

import (
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/backup"`
	CustomPath     string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*LocalFS)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(p *LocalFS) {
		p.logger = logger
	}
}

// NewClient 创建本地文件存储实例
func NewClient(conf *Config, opts ...Option) (*LocalFS, error) {
	p := &LocalFS{
		Config: conf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}
