// Package logging builds the structured logger used by every command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSize  = 10 // MB
	defaultMaxFiles = 5
	defaultMaxAge   = 30 // days
)

// Config holds logging configuration.
type Config struct {
	Level    string `yaml:"level"`     // debug, info, warn, error (default: warn)
	File     string `yaml:"file"`      // empty logs to stderr
	MaxSize  int    `yaml:"max_size"`  // MB before rotation
	MaxFiles int    `yaml:"max_files"` // rotated files to keep
}

// FromViper reads the logging.* keys.
func FromViper(v *viper.Viper) Config {
	return Config{
		Level:    v.GetString("logging.level"),
		File:     v.GetString("logging.file"),
		MaxSize:  v.GetInt("logging.max_size"),
		MaxFiles: v.GetInt("logging.max_files"),
	}
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a logger for cfg. With no file configured it writes text to
// stderr; otherwise JSON lines go to a rotating file. The returned closer
// releases the file and is never nil.
func New(cfg Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), io.NopCloser(nil), nil
	}

	path, err := expandHome(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     defaultMaxAge,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
