// Package logging defines the Logger interface used by the proposers, the resolver and the round coordinator.
// It also includes functions for setting the global log level and a per-package log level.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevel      = zapcore.InfoLevel
	packageLevels = make(map[string]zapcore.Level)
	mut           sync.RWMutex
)

// ParseLevel returns the zap level with the given name.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel, nil
	case "info", "":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "panic":
		return zap.PanicLevel, nil
	case "fatal":
		return zap.FatalLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("invalid log level '%s'", level)
	}
}

// SetLogLevel sets the global log level.
func SetLogLevel(levelStr string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}
	mut.Lock()
	logLevel = level
	mut.Unlock()
	return nil
}

// SetPackageLogLevel sets a log level for a package, overriding the global level.
func SetPackageLogLevel(packageName, levelStr string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}
	mut.Lock()
	packageLevels[packageName] = level
	mut.Unlock()
	return nil
}

// SetPackageLogLevels parses a list of package:level strings and applies each of them.
func SetPackageLogLevels(entries []string) error {
	for _, entry := range entries {
		pkg, level, ok := strings.Cut(entry, ":")
		if !ok {
			return fmt.Errorf("package log level must be of the form package:level, got '%s'", entry)
		}
		if err := SetPackageLogLevel(pkg, level); err != nil {
			return err
		}
	}
	return nil
}

// Logger is the logging interface used throughout the module. It is based on zap.SugaredLogger.
type Logger interface {
	Debug(args ...any)
	Debugf(template string, args ...any)
	Info(args ...any)
	Infof(template string, args ...any)
	Warn(args ...any)
	Warnf(template string, args ...any)
	Error(args ...any)
	Errorf(template string, args ...any)
}

type wrapper struct {
	inner *zap.SugaredLogger
	level zap.AtomicLevel
	mut   sync.Mutex
}

// with adjusts the level to that of the calling package before running fn.
func (wr *wrapper) with(fn func(l *zap.SugaredLogger)) {
	wr.mut.Lock()
	defer wr.mut.Unlock()
	wr.updateLevel()
	fn(wr.inner)
}

func (wr *wrapper) updateLevel() {
	mut.RLock()
	defer mut.RUnlock()

	if len(packageLevels) > 0 {
		// skip updateLevel, with and the exported method
		if _, file, _, ok := runtime.Caller(3); ok {
			for pkg, level := range packageLevels {
				if strings.Contains(file, pkg) {
					wr.level.SetLevel(level)
					return
				}
			}
		}
	}
	wr.level.SetLevel(logLevel)
}

func (wr *wrapper) Debug(args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Debug(args...) })
}

func (wr *wrapper) Debugf(template string, args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Debugf(template, args...) })
}

func (wr *wrapper) Info(args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Info(args...) })
}

func (wr *wrapper) Infof(template string, args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Infof(template, args...) })
}

func (wr *wrapper) Warn(args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Warn(args...) })
}

func (wr *wrapper) Warnf(template string, args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Warnf(template, args...) })
}

func (wr *wrapper) Error(args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Error(args...) })
}

func (wr *wrapper) Errorf(template string, args ...any) {
	wr.with(func(l *zap.SugaredLogger) { l.Errorf(template, args...) })
}

func currentLevel() zapcore.Level {
	mut.RLock()
	defer mut.RUnlock()
	return logLevel
}

// New returns a new logger for stderr with the given name.
// Setting MAJORITY_LOG_TYPE=json selects the production JSON encoder.
func New(name string) Logger {
	var config zap.Config
	if strings.ToLower(os.Getenv("MAJORITY_LOG_TYPE")) == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	config.Level.SetLevel(currentLevel())
	// the wrapper adds three frames between the caller and zap
	l, err := config.Build(zap.AddCallerSkip(3))
	if err != nil {
		panic(err)
	}
	return &wrapper{inner: l.Sugar().Named(name), level: config.Level}
}

// NewWithDest returns a new logger for the given destination with the given name.
func NewWithDest(dest io.Writer, name string) Logger {
	atom := zap.NewAtomicLevelAt(currentLevel())
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(dest), atom)
	l := zap.New(core, zap.AddCallerSkip(3))
	return &wrapper{inner: l.Sugar().Named(name), level: atom}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return zap.NewNop().Sugar()
}
