package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global structured logger
	Log *zap.Logger
	// SugaredLog is the global sugared logger for printf-style logging
	SugaredLog *zap.SugaredLogger
)

// Initialize sets up the global loggers. Console output is human readable;
// the rotating file sink is JSON for ingestion.
func Initialize() error {
	logLevel := parseLogLevel(os.Getenv("LOG_LEVEL"))

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "server.log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), logLevel),
		zapcore.NewCore(fileEncoder, fileWriter, logLevel),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SugaredLog = Log.Sugar()

	return nil
}

// InitializeForTests sets up a no-op logger so packages under test can log
// without touching the filesystem.
func InitializeForTests() {
	Log = zap.NewNop()
	SugaredLog = Log.Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithUserID returns a user-id field for structured logging
func WithUserID(userID string) zap.Field {
	return zap.String("user_id", userID)
}

// WithPostID returns a post-id field for structured logging
func WithPostID(postID string) zap.Field {
	return zap.String("post_id", postID)
}

// WithRequestID returns a request-id field for structured logging
func WithRequestID(requestID string) zap.Field {
	return zap.String("request_id", requestID)
}

// WithError returns an error field for structured logging
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// ErrorWithFields logs an error message with structured fields
func ErrorWithFields(msg string, fields ...zap.Field) {
	if Log != nil {
		Log.Error(msg, fields...)
	}
}

// WarnWithFields logs a warning message with structured fields
func WarnWithFields(msg string, fields ...zap.Field) {
	if Log != nil {
		Log.Warn(msg, fields...)
	}
}

// InfoWithFields logs an info message with structured fields
func InfoWithFields(msg string, fields ...zap.Field) {
	if Log != nil {
		Log.Info(msg, fields...)
	}
}
