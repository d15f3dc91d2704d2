// Package logger configures the process-wide zap logger and exposes the
// sugared helpers the rest of the repository logs through.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings stores config for Setup
type Settings struct {
	Path       string `env:"GOLDAP_LOG_PATH"`
	Name       string `env:"GOLDAP_LOG_NAME,default=goldap"`
	Level      string `env:"GOLDAP_LOG_LEVEL,default=info"`
	MaxSizeMB  int    `env:"GOLDAP_LOG_MAX_SIZE_MB,default=64"`
	MaxBackups int    `env:"GOLDAP_LOG_MAX_BACKUPS,default=3"`
}

var (
	base    *zap.Logger
	sugared *zap.SugaredLogger
)

func init() {
	base = newStdoutLogger(zapcore.InfoLevel)
	sugared = base.Sugar()
}

func newStdoutLogger(level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return zap.New(core, zap.AddCaller())
}

// Setup replaces the package logger according to settings; with a non-empty
// Path it tees JSON output into a size-rotated file
func Setup(settings *Settings) {
	level := zapcore.InfoLevel
	if err := level.Set(settings.Level); err != nil {
		level = zapcore.InfoLevel
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stdout),
			level,
		),
	}
	if settings.Path != "" {
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(settings.Path, settings.Name+".log"),
			MaxSize:    settings.MaxSizeMB,
			MaxBackups: settings.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			level,
		))
	}
	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	sugared = base.Sugar()
}

// L returns the structured logger, for injection into components that log
func L() *zap.Logger {
	return base
}

// Debug logs a debug message
func Debug(v ...interface{}) {
	sugared.Debug(v...)
}

// Debugf logs a formatted debug message
func Debugf(format string, v ...interface{}) {
	sugared.Debugf(format, v...)
}

// Info logs a message
func Info(v ...interface{}) {
	sugared.Info(v...)
}

// Infof logs a formatted message
func Infof(format string, v ...interface{}) {
	sugared.Infof(format, v...)
}

// Warn logs a warning message
func Warn(v ...interface{}) {
	sugared.Warn(v...)
}

// Error logs an error message
func Error(v ...interface{}) {
	sugared.Error(v...)
}

// Errorf logs a formatted error message
func Errorf(format string, v ...interface{}) {
	sugared.Errorf(format, v...)
}

// Fatal logs the message then stops the program
func Fatal(v ...interface{}) {
	sugared.Fatal(v...)
}
