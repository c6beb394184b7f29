// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where loggers write. An empty Directory disables the file
// core.
type Config struct {
	Level        logging.Level
	DisplayLevel logging.Level
	Directory    string
	MaxSize      int // megabytes
	MaxFiles     int
	MaxAge       int // days
	Compress     bool
	// Quiet discards console output, for commands whose stdout is parsed.
	Quiet bool
}

func DefaultConfig() Config {
	return Config{
		Level:        logging.Info,
		DisplayLevel: logging.Info,
		MaxSize:      8,
		MaxFiles:     4,
		MaxAge:       7,
	}
}

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     *zap.AtomicLevel
}

// Factory builds named loggers with a colored console core on stderr and a
// rotated JSON file core.
type Factory struct {
	config Config
	lock   sync.Mutex

	loggers map[string]logWrapper
}

func NewFactory(config Config) *Factory {
	return &Factory{
		config:  config,
		loggers: make(map[string]logWrapper),
	}
}

func (f *Factory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, ok := f.loggers[name]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", name)
	}

	var consoleWriter io.WriteCloser = os.Stderr
	if f.config.Quiet {
		consoleWriter = discardWriteCloser{io.Discard}
	}
	consoleCore := logging.NewWrappedCore(f.config.DisplayLevel, consoleWriter, logging.Colors.ConsoleEncoder())
	consoleCore.WriterDisabled = f.config.Quiet
	cores := []logging.WrappedCore{consoleCore}

	w := logWrapper{displayLevel: consoleCore.AtomicLevel}
	if f.config.Directory != "" {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(f.config.Directory, name+".log"),
			MaxSize:    f.config.MaxSize,
			MaxAge:     f.config.MaxAge,
			MaxBackups: f.config.MaxFiles,
			Compress:   f.config.Compress,
		}
		fileCore := logging.NewWrappedCore(f.config.Level, rw, logging.JSON.FileEncoder())
		cores = append(cores, fileCore)
		w.logLevel = &fileCore.AtomicLevel
	}

	w.logger = logging.NewLogger(logging.Colors.WrapPrefix(name), cores...)
	f.loggers[name] = w
	return w.logger, nil
}

// SetLevel changes the display level and, when files are written, the file
// level of the logger [name].
func (f *Factory) SetLevel(name string, level logging.Level) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	w, ok := f.loggers[name]
	if !ok {
		return fmt.Errorf("logger with name %q not found", name)
	}
	w.displayLevel.SetLevel(zapcore.Level(level))
	if w.logLevel != nil {
		w.logLevel.SetLevel(zapcore.Level(level))
	}
	return nil
}

func (f *Factory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, w := range f.loggers {
		w.logger.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}
