package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	// Level types
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Format types
	FormatJSON = "json"
	FormatText = "text"
	FormatRaw  = "raw"
)

// Opts holds logging configuration options.
type Opts struct {
	Level    string `long:"level" env:"LEVEL" description:"Log level: debug, info, warn, error" default:"info"`
	Format   string `long:"format" env:"FORMAT" description:"Log format: json, text, raw" default:"text"`
	FilePath string `long:"file" env:"FILE" description:"Log to file instead of stderr"`
}

// Init initializes the default slog logger based on the provided options.
func Init(opts *Opts) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func NewLogger(opts *Opts) (*slog.Logger, error) {
	writer := io.Writer(os.Stderr)
	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
	}
	handler, err := newHandler(writer, opts.Format, parseLevel(opts.Level))
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(writer io.Writer, format string, level slog.Level) (slog.Handler, error) {
	handlerOpts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(writer, handlerOpts), nil
	case FormatText:
		return slog.NewTextHandler(writer, handlerOpts), nil
	case FormatRaw:
		return NewRawHandler(writer, handlerOpts), nil
	default:
		return nil, fmt.Errorf("unrecognized format: %s", format)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
