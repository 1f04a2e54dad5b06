// Package logger builds the application zap logger
// Package logger 构建应用 zap 日志器
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config logger configuration
// Config 日志配置
type Config struct {
	// Level 日志级别: debug / info / warn / error
	Level string
	// File 日志文件路径，为空时仅输出到控制台
	File string
	// Production 生产模式：JSON 编码、无彩色
	Production bool
}

// NewLogger creates a zap logger writing to console and, when configured, a file
// NewLogger 创建 zap 日志器，输出到控制台，配置了文件时同时写入文件
func NewLogger(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil && cfg.Level != "" {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Production {
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores = append(cores, zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	))

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0754); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		fileEncoderConfig := zap.NewProductionEncoderConfig()
		fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			zapcore.Lock(zapcore.AddSync(f)),
			level,
		))
	}

	lg := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return lg, nil
}
