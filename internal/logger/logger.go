package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogConfig описывает параметры логгера
type SlogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" или "text"
	File   string // путь к файлу лога, пусто — только консоль
	// Console — куда писать лог, по умолчанию os.Stdout
	Console io.Writer
}

// NewSlog создаёт и настраивает slog.Logger.
// Второе значение закрывает файл лога (nil, если файл не задан).
func NewSlog(cfg SlogConfig) (*slog.Logger, io.Closer) {
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}
	out, closer := buildWriter(console, cfg.File)
	return slog.New(buildHandler(out, cfg)), closer
}

// ParseLevel переводит строковый уровень в slog.Level, по умолчанию info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildWriter(console io.Writer, path string) (io.Writer, io.Closer) {
	if path == "" {
		return console, nil
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     30, // дней
	}
	return io.MultiWriter(console, lj), lj
}

func buildHandler(w io.Writer, cfg SlogConfig) slog.Handler {
	lvl := ParseLevel(cfg.Level)

	// Выбираем формат вывода
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
		// timestamp в человекочитаемом виде
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
}
