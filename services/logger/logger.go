package logger

import (
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Config cấu hình logger
type Config struct {
	Debug       bool
	SentryDSN   string
	Environment string
}

// ZapLogger implement Logger bằng zap
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	sentry *sentry.Client
}

// New tạo logger; lỗi mức Error được gửi lên Sentry nếu có DSN
func New(cfg Config) (*ZapLogger, error) {
	var zapConfig zap.Config
	if cfg.Debug {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	base, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	l := &ZapLogger{base: base}
	if cfg.SentryDSN != "" {
		client, err := sentry.NewClient(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Debug:       cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		core, err := zapsentry.NewCore(zapsentry.Configuration{
			Level:             zapcore.ErrorLevel,
			EnableBreadcrumbs: true,
			BreadcrumbLevel:   zapcore.InfoLevel,
		}, zapsentry.NewSentryClientFromClient(client))
		if err != nil {
			return nil, err
		}
		l.base = zapsentry.AttachCoreToLogger(core, base)
		l.sentry = client
	}
	l.sugar = l.base.Sugar()
	return l, nil
}

// NewNop trả về logger không ghi gì, dùng trong test
func NewNop() *ZapLogger {
	base := zap.NewNop()
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

// Zap trả về zap.Logger gốc cho các middleware cần field có cấu trúc
func (l *ZapLogger) Zap() *zap.Logger {
	return l.base
}

// Info log thông tin
func (l *ZapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warn log cảnh báo
func (l *ZapLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error log lỗi
func (l *ZapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug log debug
func (l *ZapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Sync flush buffer của zap và các event Sentry còn chờ
func (l *ZapLogger) Sync() {
	_ = l.base.Sync()
	if l.sentry != nil {
		l.sentry.Flush(2 * time.Second)
	}
}
