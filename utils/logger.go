// Package utils provides logging and command-line helpers shared by the commands.
package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	unsupportedLogLevelTemplate  = "unsupported log level: %s"
	unsupportedLogFormatTemplate = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported console encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// AvailableLogLevels and AvailableLogFormats list the accepted flag values.
var (
	AvailableLogLevels  = []string{string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError)}
	AvailableLogFormats = []string{string(LogFormatConsole), string(LogFormatStructured)}
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	console  zapcore.WriteSyncer
	colorize bool
}

// NewLoggerFactory constructs a logger factory writing console output to stderr,
// with colored levels when stderr is a terminal.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{
		console:  zapcore.Lock(os.Stderr),
		colorize: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// WithConsole redirects console output to w.
func (factory *LoggerFactory) WithConsole(w io.Writer, colorize bool) *LoggerFactory {
	return &LoggerFactory{console: zapcore.AddSync(w), colorize: colorize}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
// When runLogPath is set, every entry is also written to that file as JSON. The
// file and its directory are created with the first entry, so a logger that never
// logs leaves nothing behind. The returned close function releases the file and
// must be called once logging is done.
func (factory *LoggerFactory) CreateLogger(level LogLevel, format LogFormat, runLogPath string) (*zap.Logger, func() error, error) {
	zapLevel, ok := logLevelMapping[level]
	if !ok {
		return nil, nil, fmt.Errorf(unsupportedLogLevelTemplate, level)
	}

	var consoleEncoder zapcore.Encoder

	switch format {
	case LogFormatConsole:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if factory.colorize {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	case LogFormatStructured:
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, nil, fmt.Errorf(unsupportedLogFormatTemplate, format)
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, factory.console, zapLevel)}
	closeFn := func() error { return nil }

	if runLogPath != "" {
		runLog := &lazyFile{path: runLogPath}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), runLog, zapLevel))
		closeFn = runLog.Close
	}

	logger := zap.New(zapcore.NewTee(cores...))

	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}

// lazyFile is a zapcore.WriteSyncer that opens its file for appending on the first write.
type lazyFile struct {
	mu   sync.Mutex
	path string
	file *os.File
	err  error
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil && l.err == nil {
		l.file, l.err = openAppend(l.path)
	}
	if l.err != nil {
		return 0, l.err
	}

	return l.file.Write(p)
}

func (l *lazyFile) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	return l.file.Sync()
}

func (l *lazyFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file, l.err = nil, os.ErrClosed

	return err
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create run log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	return file, nil
}
