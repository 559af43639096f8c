package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

func NewLogger(logger *zap.Logger, level string) gormLogger.Interface {
	return gormLogger.New(&zapWriter{logger: logger},
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
}

func parseLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

type zapWriter struct {
	logger *zap.Logger
}

func (z *zapWriter) Printf(format string, args ...interface{}) {
	z.logger.Info(fmt.Sprintf(format, args...))
}
