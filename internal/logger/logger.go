// Package logger предоставляет структурированное логирование на zap.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init инициализирует глобальный логгер. Для "production" используется JSON,
// для остальных окружений - консольный вывод. level принимает DEBUG, INFO,
// WARN, ERROR; пустое или неизвестное значение означает INFO.
func Init(env, level string) {
	once.Do(func() {
		var zcfg zap.Config
		if env == "production" {
			zcfg = zap.NewProductionConfig()
		} else {
			zcfg = zap.NewDevelopmentConfig()
		}
		zcfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

		base, err := zcfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Get возвращает глобальный логгер. Без Init создается логгер для разработки.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", "INFO")
	}
	return sugar
}

// Sync сбрасывает буферы. Вызывать перед выходом.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
