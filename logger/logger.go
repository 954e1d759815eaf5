package logger

import (
	"fmt"
	"strings"

	wbflog "github.com/wb-go/wbf/logger"
)

type Level = wbflog.Level

const (
	DebugLevel = wbflog.DebugLevel
	InfoLevel  = wbflog.InfoLevel
	WarnLevel  = wbflog.WarnLevel
	ErrorLevel = wbflog.ErrorLevel
)

// ParseLevel maps LOG_LEVEL values to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// ParseEngine maps LOG_ENGINE values to a wbf engine, defaulting to slog.
func ParseEngine(s string) wbflog.Engine {
	switch e := wbflog.Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case wbflog.ZapEngine, wbflog.ZerologEngine, wbflog.LogrusEngine:
		return e
	default:
		return wbflog.SlogEngine
	}
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Options struct {
	Engine  string
	Level   Level
	AppName string
	Env     string
	// File enables rotated file output next to stdout.
	File string
}

// DefaultLogger formats printf-style call sites into records on a wbf logger.
type DefaultLogger struct {
	out wbflog.Logger
}

func New(opts Options) (*DefaultLogger, error) {
	wopts := []wbflog.Option{wbflog.WithLevel(opts.Level)}
	if opts.File != "" {
		wopts = append(wopts, wbflog.WithRotation(opts.File, 100, 7, 30))
	}
	out, err := wbflog.InitLogger(ParseEngine(opts.Engine), opts.AppName, opts.Env, wopts...)
	if err != nil {
		return nil, fmt.Errorf("init %s logger: %w", opts.Engine, err)
	}
	return &DefaultLogger{out: out}, nil
}

// Wrap adapts an already configured wbf logger.
func Wrap(out wbflog.Logger) *DefaultLogger {
	return &DefaultLogger{out: out}
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.out.Debug(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.out.Info(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.out.Warn(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.out.Error(fmt.Sprintf(format, v...))
}

type discard struct{}

func (discard) Debug(string, ...interface{}) {}
func (discard) Info(string, ...interface{})  {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}

// Discard drops everything; used by tests.
func Discard() Logger {
	return discard{}
}
