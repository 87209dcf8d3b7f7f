package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/FlickrSearch/internal/config"
	"github.com/GoArmGo/FlickrSearch/internal/handler"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func (a *App) serverHandler() http.Handler {
	photoHandler := handler.NewPhotoHandler(a.photoUseCase, a.photoSearchPublisher, a.logger)

	rc := handler.RouterConfig{
		RequestTimeout: a.Config.RequestTimeout,
		AllowedOrigins: a.Config.CORSAllowedOrigins,
	}
	if a.metrics != nil {
		rc.Metrics = a.metrics.Handler()
		rc.Observer = a.metrics
	}
	return handler.NewRouter(photoHandler, a.logger, rc)
}

// runServer запускает HTTP сервер и останавливает его при отмене ctx
func runServer(ctx context.Context, cfg *config.Config, h http.Handler, logger *slog.Logger) error {
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
