// Package logging provides structured logging functionality using Go's slog package.
// It supports both text and JSON output formats, configurable log levels,
// log file rotation, and context-aware logging for the nmapreport application.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// File permissions for directories and log files.
	logDirPerm  = 0750
	logFilePerm = 0600
)

// LogLevel represents the available log levels.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the available log formats.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// RotationConfig holds log rotation settings. Rotation only applies when
// the output is a file path.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool `yaml:"compress" json:"compress"`
}

// Config holds logging configuration.
type Config struct {
	Level     LogLevel        `yaml:"level" json:"level"`
	Format    LogFormat       `yaml:"format" json:"format"`
	Output    string          `yaml:"output" json:"output"`
	AddSource bool            `yaml:"add_source" json:"add_source"`
	Rotation  *RotationConfig `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// DefaultConfig returns a default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    "stderr",
		AddSource: false,
	}
}

// Logger wraps slog.Logger with additional functionality.
type Logger struct {
	*slog.Logger
	config Config
}

// New creates a new structured logger with the given configuration.
func New(cfg Config) (*Logger, error) {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(string(cfg.Level)) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Determine output writer
	var writer io.Writer
	switch cfg.Output {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		// Assume it's a file path
		if err := os.MkdirAll(filepath.Dir(cfg.Output), logDirPerm); err != nil {
			return nil, err
		}
		if cfg.Rotation != nil {
			writer = &lumberjack.Logger{
				Filename:   cfg.Output,
				MaxSize:    cfg.Rotation.MaxSizeMB,
				MaxBackups: cfg.Rotation.MaxBackups,
				MaxAge:     cfg.Rotation.MaxAgeDays,
				Compress:   cfg.Rotation.Compress,
			}
		} else {
			file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
			if err != nil {
				return nil, err
			}
			writer = file
		}
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
		config: cfg,
	}, nil
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	logger, _ := New(DefaultConfig())
	return logger
}

// WithContext adds context to the logger for structured logging.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.With(),
		config: l.config,
	}
}

// WithFields adds structured fields to the logger.
func (l *Logger) WithFields(fields ...any) *Logger {
	return &Logger{
		Logger: l.With(fields...),
		config: l.config,
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// WithFile adds a source document field to the logger.
func (l *Logger) WithFile(file string) *Logger {
	return l.WithFields("file", file)
}

// WithArtifact adds an output artifact field to the logger.
func (l *Logger) WithArtifact(artifact string) *Logger {
	return l.WithFields("artifact", artifact)
}

// WithError adds an error field to the logger.
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err)
}

// InfoParse logs parsing-related information.
func (l *Logger) InfoParse(msg, file string, fields ...any) {
	allFields := append([]any{"file", file}, fields...)
	l.Info(msg, allFields...)
}

// WarnParse logs per-document failures that were skipped.
func (l *Logger) WarnParse(msg, file string, err error, fields ...any) {
	allFields := append([]any{"file", file, "error", err}, fields...)
	l.Warn(msg, allFields...)
}

// InfoReport logs report generation information.
func (l *Logger) InfoReport(msg string, fields ...any) {
	allFields := append([]any{"component", "report"}, fields...)
	l.Info(msg, allFields...)
}

// ErrorReport logs report generation errors.
func (l *Logger) ErrorReport(msg string, err error, fields ...any) {
	allFields := append([]any{"component", "report", "error", err}, fields...)
	l.Error(msg, allFields...)
}

// InfoPreview logs preview server information.
func (l *Logger) InfoPreview(msg string, fields ...any) {
	allFields := append([]any{"component", "preview"}, fields...)
	l.Info(msg, allFields...)
}

// ErrorPreview logs preview server errors.
func (l *Logger) ErrorPreview(msg string, err error, fields ...any) {
	allFields := append([]any{"component", "preview", "error", err}, fields...)
	l.Error(msg, allFields...)
}

// Global logger instance - can be replaced for testing.
var defaultLogger = NewDefault()

// SetDefault sets the default logger instance.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// Debug logs at debug level using the default logger.
func Debug(msg string, fields ...any) {
	defaultLogger.Debug(msg, fields...)
}

// Info logs at info level using the default logger.
func Info(msg string, fields ...any) {
	defaultLogger.Info(msg, fields...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, fields ...any) {
	defaultLogger.Warn(msg, fields...)
}

// Error logs at error level using the default logger.
func Error(msg string, fields ...any) {
	defaultLogger.Error(msg, fields...)
}

// InfoParse logs parsing-related information using the default logger.
func InfoParse(msg, file string, fields ...any) {
	defaultLogger.InfoParse(msg, file, fields...)
}

// WarnParse logs skipped documents using the default logger.
func WarnParse(msg, file string, err error, fields ...any) {
	defaultLogger.WarnParse(msg, file, err, fields...)
}

// InfoReport logs report generation information using the default logger.
func InfoReport(msg string, fields ...any) {
	defaultLogger.InfoReport(msg, fields...)
}

// ErrorReport logs report generation errors using the default logger.
func ErrorReport(msg string, err error, fields ...any) {
	defaultLogger.ErrorReport(msg, err, fields...)
}

// InfoPreview logs preview server information using the default logger.
func InfoPreview(msg string, fields ...any) {
	defaultLogger.InfoPreview(msg, fields...)
}

// ErrorPreview logs preview server errors using the default logger.
func ErrorPreview(msg string, err error, fields ...any) {
	defaultLogger.ErrorPreview(msg, err, fields...)
}
