package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// JSONLogger emits one JSON object per message through zap. Messages are
// not translated so that log processors see stable text.
type JSONLogger struct {
	sugar *zap.SugaredLogger
}

func NewJSON(level LogLevel) *JSONLogger {
	return NewJSONWriter(level, zapcore.Lock(os.Stderr))
}

func NewJSONWriter(level LogLevel, w zapcore.WriteSyncer) *JSONLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, zapLevel(level))

	return &JSONLogger{sugar: zap.New(core).Sugar()}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelQuiet:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

func (l *JSONLogger) Debug(msg string, args ...interface{}) {
	l.sugar.Debug(fmt.Sprintf(msg, args...))
}

func (l *JSONLogger) Info(msg string, args ...interface{}) {
	l.sugar.Info(fmt.Sprintf(msg, args...))
}

func (l *JSONLogger) Warn(msg string, args ...interface{}) {
	l.sugar.Warn(fmt.Sprintf(msg, args...))
}

func (l *JSONLogger) Error(msg string, args ...interface{}) {
	l.sugar.Error(fmt.Sprintf(msg, args...))
}

func (l *JSONLogger) WithComponent(component string) Logger {
	return &JSONLogger{sugar: l.sugar.With("component", component)}
}

// Sync flushes buffered entries.
func (l *JSONLogger) Sync() error {
	return l.sugar.Sync()
}

var _ Logger = (*JSONLogger)(nil)
