package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// Init builds the global logger. Production config when ENV=production,
// human-readable development config otherwise.
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = l
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func L() *zap.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

func Info(msg string, fields ...zapcore.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { L().Error(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { L().Fatal(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { L().Debug(msg, fields...) }
