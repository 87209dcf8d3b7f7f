package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrRabbitMQNotConfigured возвращается, когда режиму нужен RabbitMQ, а RABBITMQ_URL пуст.
var ErrRabbitMQNotConfigured = errors.New("RABBITMQ_URL не задан")

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// Настройки Flickr
	FlickrAPIKey        string        `env:"FLICKR_API_KEY,required"`
	FlickrEndpoint      string        `env:"FLICKR_ENDPOINT" envDefault:"https://api.flickr.com/services/rest/"`
	FlickrCallbackParam string        `env:"FLICKR_CALLBACK_PARAM" envDefault:"jsoncallback"`
	FlickrHTTPTimeout   time.Duration `env:"FLICKR_HTTP_TIMEOUT" envDefault:"10s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`

	RabbitMQ struct {
		RabbitMQURL             string `env:"RABBITMQ_URL"`
		RabbitMQQueueName       string `env:"RABBITMQ_QUEUE_NAME" envDefault:"photo_search_queue"`
		RabbitMQResultQueueName string `env:"RABBITMQ_RESULT_QUEUE_NAME" envDefault:"photo_search_results"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.FlickrAPIKey == "" {
		return nil, errors.New("FLICKR_API_KEY не может быть пустым")
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return &cfg, nil
}

// RequireRabbitMQ проверяет, что для режима с очередью задан адрес брокера.
func (c *Config) RequireRabbitMQ() error {
	if c.RabbitMQ.RabbitMQURL == "" {
		return ErrRabbitMQNotConfigured
	}
	return nil
}
