package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/FlickrSearch/internal/config"
	"github.com/GoArmGo/FlickrSearch/internal/core/ports"
	"github.com/GoArmGo/FlickrSearch/internal/metrics"
	"github.com/GoArmGo/FlickrSearch/internal/usecase"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
	ModeSearch = "search"
)

// Deps — зависимости приложения, собранные в di.
// Publisher, Consumer и ResultPublisher равны nil, если RabbitMQ не настроен.
type Deps struct {
	Config          *config.Config
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	PhotoUseCase    usecase.PhotoUseCase
	Publisher       ports.PhotoSearchPublisher
	Consumer        ports.PhotoSearchConsumer
	ResultPublisher ports.PhotoSearchResultPublisher
	Closers         []io.Closer
}

// RunOptions — параметры запуска из командной строки.
type RunOptions struct {
	Mode string

	// Для режима search
	Text   string
	Width  float64
	Height float64
	Out    io.Writer
}

type App struct {
	Config               *config.Config
	logger               *slog.Logger
	metrics              *metrics.Metrics
	photoUseCase         usecase.PhotoUseCase
	photoSearchPublisher ports.PhotoSearchPublisher
	photoSearchConsumer  ports.PhotoSearchConsumer
	resultPublisher      ports.PhotoSearchResultPublisher
	closers              []io.Closer
}

func NewApp(d Deps) *App {
	return &App{
		Config:               d.Config,
		logger:               d.Logger,
		metrics:              d.Metrics,
		photoUseCase:         d.PhotoUseCase,
		photoSearchPublisher: d.Publisher,
		photoSearchConsumer:  d.Consumer,
		resultPublisher:      d.ResultPublisher,
		closers:              d.Closers,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до SIGINT/SIGTERM
// (для режима search — до завершения поиска).
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", opts.Mode)

	var err error
	switch opts.Mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.serverHandler(), a.logger)
	case ModeWorker:
		if a.photoSearchConsumer == nil || a.resultPublisher == nil {
			err = fmt.Errorf("режим worker: %w", config.ErrRabbitMQNotConfigured)
			break
		}
		err = runWorker(ctx, a.photoUseCase, a.photoSearchConsumer, a.resultPublisher, a.logger)
	case ModeSearch:
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		err = runSearch(ctx, a.photoUseCase, opts, out)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'search')", opts.Mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
