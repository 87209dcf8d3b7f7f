package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/GoArmGo/FlickrSearch/internal/app"
	"github.com/GoArmGo/FlickrSearch/internal/di"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	mode := flag.String("mode", app.ModeServer, "Режим запуска приложения: server, worker или search")
	text := flag.String("text", "", "Текст запроса для режима search")
	width := flag.Float64("width", 0, "Ширина для режима search (0 — не задана)")
	height := flag.Float64("height", 0, "Высота для режима search (0 — не задана)")
	flag.Parse()

	// bootstrap-логгер (используется только на этапе инициализации)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		bootstrapLogger.Info(fmt.Sprintf(format, args...))
	})); err != nil {
		bootstrapLogger.Warn("failed to set GOMAXPROCS", "error", err)
	}

	application, err := di.BuildApp(*mode)
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	logger := application.LoggerIns()

	err = application.Run(context.Background(), app.RunOptions{
		Mode:   *mode,
		Text:   *text,
		Width:  *width,
		Height: *height,
		Out:    os.Stdout,
	})
	if err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
