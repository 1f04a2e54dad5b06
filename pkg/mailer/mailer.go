// Package mailer 通过 SMTP 发送告警邮件
package mailer

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Config 邮件服务配置
type Config struct {
	IsEnabled bool     `yaml:"is-enabled" default:"false"`
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port" default:"587"`
	User      string   `yaml:"user"`
	Password  string   `yaml:"password"`
	From      string   `yaml:"from"`
	To        []string `yaml:"to"`
}

// Mailer 邮件发送器
type Mailer struct {
	Config *Config
	logger *zap.Logger
}

// Option 配置选项函数类型
type Option func(*Mailer)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mailer) {
		m.logger = logger
	}
}

// NewMailer 创建邮件发送器
func NewMailer(config *Config, opts ...Option) *Mailer {
	m := &Mailer{
		Config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send 发送一封纯文本邮件给配置的全部收件人
// 未启用或收件人为空时静默跳过
func (m *Mailer) Send(subject string, body string) error {
	if !m.Config.IsEnabled || len(m.Config.To) == 0 {
		return nil
	}

	from := m.Config.From
	if from == "" {
		from = m.Config.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.Config.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Config.Host, m.Config.Port, m.Config.User, m.Config.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "mailer")
	}

	m.logger.Info("Alert mail sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(m.Config.To)),
	)
	return nil
}
