package flickr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/GoArmGo/FlickrSearch/internal/domain"
)

const (
	defaultEndpoint      = "https://api.flickr.com/services/rest/"
	defaultCallbackParam = "jsoncallback"

	searchMethod = "flickr.photos.search"
	searchSort   = "interestingness-desc"
	searchExtras = "o_dims,url_o"
)

// ClientConfig — параметры клиента Flickr.
type ClientConfig struct {
	APIKey        string
	Endpoint      string
	CallbackParam string
}

// Client представляет клиент для поиска фотографий во Flickr.
type Client struct {
	cfg     ClientConfig
	fetcher CallbackFetcher
	logger  *slog.Logger
}

// NewClient создает новый экземпляр Client. Пустые Endpoint и CallbackParam
// заменяются значениями по умолчанию.
func NewClient(cfg ClientConfig, fetcher CallbackFetcher, logger *slog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.CallbackParam == "" {
		cfg.CallbackParam = defaultCallbackParam
	}
	return &Client{cfg: cfg, fetcher: fetcher, logger: logger}
}

// SearchURL строит URL запроса поиска. Текст запроса экранируется.
func (c *Client) SearchURL(query string) (string, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("некорректный эндпоинт Flickr %q: %w", c.cfg.Endpoint, err)
	}

	params := u.Query()
	params.Set("method", searchMethod)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("text", query)
	params.Set("sort", searchSort)
	params.Set("extras", searchExtras)
	params.Set("format", "json")
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Search выполняет flickr.photos.search и возвращает поле photos ответа.
// Любая ошибка возвращается как *RequestFailedError, повторов нет.
func (c *Client) Search(ctx context.Context, query string) (*domain.Photos, error) {
	start := time.Now()

	photos, err := c.search(ctx, query)
	if err != nil {
		c.logger.Error("flickr search failed", "query", query, "error", err)
		return nil, &RequestFailedError{Query: query, Err: err}
	}

	c.logger.Info("flickr search completed",
		"query", query,
		"found", len(photos.Photo),
		"total", photos.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, nil
}

func (c *Client) search(ctx context.Context, query string) (*domain.Photos, error) {
	endpoint, err := c.SearchURL(query)
	if err != nil {
		return nil, err
	}

	payload, err := c.fetcher.FetchViaCallback(ctx, endpoint, c.cfg.CallbackParam)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if resp.Stat != statOK {
		return nil, &APIError{Code: resp.Code, Message: resp.Message}
	}
	if resp.Photos == nil {
		return nil, fmt.Errorf("%w: в ответе нет поля photos", ErrMalformedPayload)
	}

	return resp.Photos, nil
}
