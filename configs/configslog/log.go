// Package configslog uygulama genelinde kullanılan zap logger'ını tutar.
package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log yapılandırılmış loglama için, SLog printf tarzı loglama için kullanılır.
// InitLogger çağrılana kadar ikisi de hiçbir şey yazmayan (nop) logger'dır.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// Options logger kurulum seçenekleri.
type Options struct {
	Level       string // debug, info, warn, error
	File        string // boşsa dosyaya yazılmaz
	Development bool   // konsolda okunabilir format
}

// InitLogger global logger'ları verilen seçeneklerle kurar.
func InitLogger(opts Options) {
	level := parseLevel(opts.Level)

	var consoleEncoder zapcore.Encoder
	if opts.Development {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if opts.File != "" {
		// Dosya çıktısı lumberjack ile döndürülür
		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     7, // gün
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), fileSyncer, level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	SLog = Log.Sugar()
}

// SyncLogger tamponda kalan logları yazar. main içinde defer ile çağrılmalı.
func SyncLogger() {
	_ = Log.Sync()
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
