// Package logging 基于 zap 的结构化日志构建，并提供适配器供 core 层
// 以注入方式使用。
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置。
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New 按配置构建日志器。CLI 默认 console 编码，便于人读。
func New(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var config zap.Config
	if cfg.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// NewNop 返回不输出任何内容的日志器，用于测试。
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// Adapter 把 *zap.SugaredLogger 适配为 core 层的格式化日志接口
// （httpclient.Logger）。
type Adapter struct {
	s *zap.SugaredLogger
}

// NewAdapter 创建适配器。
func NewAdapter(logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{s: logger.Sugar()}
}

// Debugf 输出调试日志。
func (a *Adapter) Debugf(format string, args ...any) {
	a.s.Debugf(format, args...)
}

// Errorf 输出错误日志。
func (a *Adapter) Errorf(format string, args ...any) {
	a.s.Errorf(format, args...)
}
