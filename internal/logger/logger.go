// Package logger sets up the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config is the logger configuration.
type Config struct {
	Output string // "stdout", "stderr", "file" or a file path
	Level  string // "debug", "info", "warn", "error"
	File   string // log file path when Output is "file"
}

// Init configures the global logger and returns it.
// Console outputs get colored human-readable lines, files get JSON.
func Init(cfg Config) (zerolog.Logger, error) {
	level := parseLevel(cfg.Level)

	writer, console, err := openOutput(cfg)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		parts := strings.Split(file, string(filepath.Separator))
		if len(parts) > 1 {
			return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
		}
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	if console {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly}
	}
	ctx := zerolog.New(writer).With().Timestamp()
	if level == zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()

	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger
	return logger, nil
}

func openOutput(cfg Config) (io.Writer, bool, error) {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		return os.Stdout, true, nil
	case "stderr", "":
		return os.Stderr, true, nil
	case "file":
		return openFile(cfg.File)
	default:
		return openFile(cfg.Output)
	}
}

func openFile(path string) (io.Writer, bool, error) {
	if path == "" {
		return nil, false, errors.New("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, errors.Wrap(err, "open log file")
	}
	return f, false, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
