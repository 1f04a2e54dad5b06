// Package llm 提供 OpenAI 兼容聊天接口的精简客户端
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config 语言模型服务配置
type Config struct {
	Endpoint    string        `yaml:"endpoint" default:"https://api.openai.com/v1/chat/completions"`
	APIKey      string        `yaml:"api-key"`
	Model       string        `yaml:"model" default:"gpt-4o-mini"`
	Temperature float64       `yaml:"temperature" default:"0.2"`
	MaxTokens   int           `yaml:"max-tokens" default:"1024"`
	Timeout     time.Duration `yaml:"-"`
}

// Client 调用外部语言模型服务
// 响应文本视为不可信内容，由调用方通过 DecodeSuggestions 解析
type Client interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

type chatClient struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Client = (*chatClient)(nil)

// Option 配置选项函数类型
type Option func(*chatClient)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(c *chatClient) {
		c.logger = logger
	}
}

// WithHTTPClient 设置自定义 HTTP 客户端，测试时注入
func WithHTTPClient(hc *http.Client) Option {
	return func(c *chatClient) {
		c.httpClient = hc
	}
}

// NewClient 创建语言模型客户端
func NewClient(config *Config, opts ...Option) Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &chatClient{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete 发送一次对话请求并返回模型的文本回复
// 失败直接返回错误，不做自动重试
func (c *chatClient) Complete(ctx context.Context, system string, user string) (string, error) {
	reqBody := chatRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}
	if system != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "system", Content: system})
	}
	reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "user", Content: user})

	payload, err := sonic.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "llm")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "llm")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "llm")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "llm")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("llm: http %d: %s", resp.StatusCode, truncateBody(raw))
	}

	var chat chatResponse
	if err := sonic.Unmarshal(raw, &chat); err != nil {
		return "", errors.Wrap(err, "llm")
	}
	if chat.Error != nil {
		return "", errors.Errorf("llm: %s: %s", chat.Error.Type, chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("llm: empty choices")
	}

	c.logger.Debug("Model completion finished",
		zap.String("model", c.config.Model),
		zap.Duration("duration", time.Since(start)),
		zap.String("finishReason", chat.Choices[0].FinishReason),
	)

	return chat.Choices[0].Message.Content, nil
}

func truncateBody(raw []byte) string {
	const max = 512
	if len(raw) <= max {
		return string(raw)
	}
	return fmt.Sprintf("%s... (%d bytes)", raw[:max], len(raw))
}
