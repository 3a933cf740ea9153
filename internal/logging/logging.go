// Package logging builds the application logger. The terminal belongs to the
// editor, so logs only ever go to a file.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kilo-tui/internal/config"
)

// New opens the log file from cfg and returns a JSON logger writing to it.
// A file larger than cfg.MaxSize is moved to "<file>.1" first. The returned
// close function flushes and closes the file.
func New(cfg config.LoggingConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.FilePath == "" {
		return nil, nil, errors.New("log file: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	if err := rotate(cfg.FilePath, cfg.MaxSize); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(f), level)
	logger := zap.New(core, zap.AddCaller())

	closeFn := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, closeFn, nil
}

// NewOrNop is New that falls back to a no-op logger.
func NewOrNop(cfg config.LoggingConfig) (*zap.Logger, func()) {
	logger, closeFn, err := New(cfg)
	if err != nil {
		return zap.NewNop(), func() {}
	}
	return logger, closeFn
}

func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil || maxSize <= 0 || info.Size() <= maxSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
