package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ja7ad/loadshift/pkg/config"
)

// New builds a zerolog logger writing to stderr and, when cfg.LogFile is set,
// to a size-rotated file.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return newWithConsole(cfg, os.Stderr)
}

func newWithConsole(cfg config.LogConfig, console io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("logger: invalid log level %q: %w", cfg.LogLevel, err)
		}
		level = l
	}

	writers := []io.Writer{consoleWriter(cfg.LogFormat, console)}
	if cfg.LogFile != "" {
		fw, err := fileWriter(cfg)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fw)
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func consoleWriter(format string, out io.Writer) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return out
	case "text":
		return zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.DateTime}
	default:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}
}

// fileWriter returns a lumberjack writer. Console format in a file is written
// without colors; json stays json.
func fileWriter(cfg config.LogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}

	maxSize := cfg.MaxLogSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultMaxLogSizeMB
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}

	if strings.ToLower(cfg.LogFormat) == "json" {
		return lj, nil
	}
	return zerolog.ConsoleWriter{Out: lj, NoColor: true, TimeFormat: time.DateTime}, nil
}
