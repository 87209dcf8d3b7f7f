package di

import (
	"io"
	"os"

	"github.com/GoArmGo/FlickrSearch/internal/adapter/flickr"
	"github.com/GoArmGo/FlickrSearch/internal/app"
	"github.com/GoArmGo/FlickrSearch/internal/config"
	"github.com/GoArmGo/FlickrSearch/internal/logger"
	"github.com/GoArmGo/FlickrSearch/internal/metrics"
	"github.com/GoArmGo/FlickrSearch/internal/rabbitmq"
	"github.com/GoArmGo/FlickrSearch/internal/usecase"
)

// BuildApp инициализирует все зависимости для режима mode и возвращает готовый объект App.
func BuildApp(mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger, logCloser := logger.NewSlog(loggerConfig(cfg, mode))
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat, "file", cfg.LogFile)

	var closers []io.Closer
	if logCloser != nil {
		closers = append(closers, logCloser)
	}

	// 2. Метрики
	m := metrics.New()

	// 3. Клиент Flickr
	transport := flickr.NewCallbackTransport(flickr.NewHTTPClient(cfg.FlickrHTTPTimeout), slogger)
	flickrClient := flickr.NewClient(flickr.ClientConfig{
		APIKey:        cfg.FlickrAPIKey,
		Endpoint:      cfg.FlickrEndpoint,
		CallbackParam: cfg.FlickrCallbackParam,
	}, transport, slogger)

	// 4. Бизнес-логика
	photoUseCase := usecase.NewPhotoUseCase(flickrClient, m, slogger)

	deps := app.Deps{
		Config:       cfg,
		Logger:       slogger,
		Metrics:      m,
		PhotoUseCase: photoUseCase,
	}

	// 5. RabbitMQ: обязателен для worker, для server — только если задан
	if mode == app.ModeWorker {
		if err := cfg.RequireRabbitMQ(); err != nil {
			closeAll(closers)
			return nil, err
		}
	}
	if (mode == app.ModeServer || mode == app.ModeWorker) && cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		deps.Publisher = rabbitMQClient
		deps.Consumer = rabbitMQClient
		deps.ResultPublisher = rabbitMQClient
		closers = append(closers, rabbitMQClient)
	} else if mode == app.ModeServer {
		slogger.Warn("RABBITMQ_URL not set, async search disabled")
	}

	deps.Closers = closers

	slogger.Info("dependencies initialized", "mode", mode)
	return app.NewApp(deps), nil
}

// loggerConfig собирает настройки логгера для режима mode.
func loggerConfig(cfg *config.Config, mode string) logger.SlogConfig {
	logCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}
	if mode == app.ModeSearch {
		// stdout занят результатом поиска
		logCfg.Console = os.Stderr
	}
	return logCfg
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
