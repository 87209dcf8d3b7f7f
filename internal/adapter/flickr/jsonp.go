package flickr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxPayloadBytes   = 10 << 20
	maxErrorBodyBytes = 4 << 10
)

// secretParams — параметры запроса, которые не должны попасть в текст ошибок и логи.
var secretParams = []string{"api_key"}

// CallbackFetcher получает JSON-документ, который сервер отдаёт обёрнутым в вызов
// callback-функции (JSONP). param — имя параметра запроса, через который
// передаётся имя callback-функции.
type CallbackFetcher interface {
	FetchViaCallback(ctx context.Context, rawURL, param string) (json.RawMessage, error)
}

// CallbackTransport — реализация CallbackFetcher поверх net/http.
type CallbackTransport struct {
	httpClient   *http.Client
	logger       *slog.Logger
	callbackName func() string
}

// NewHTTPClient создаёт HTTP-клиент для запросов к Flickr с трассировкой исходящих запросов.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewCallbackTransport создает новый экземпляр CallbackTransport.
func NewCallbackTransport(httpClient *http.Client, logger *slog.Logger) *CallbackTransport {
	return &CallbackTransport{
		httpClient:   httpClient,
		logger:       logger,
		callbackName: newCallbackName,
	}
}

func newCallbackName() string {
	return "jsonp_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FetchViaCallback выполняет один GET-запрос и возвращает JSON из тела ответа
// вида name({...}).
func (t *CallbackTransport) FetchViaCallback(ctx context.Context, rawURL, param string) (json.RawMessage, error) {
	start := time.Now()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("некорректный URL запроса: %w", redactURLError(err))
	}

	name := t.callbackName()
	q := u.Query()
	q.Set(param, name)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", redactURLError(err))
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP-запроса: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела ответа: %w", err)
	}

	payload, err := unwrapCallback(body, name)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("callback payload received",
		"host", u.Host,
		"bytes", len(payload),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return payload, nil
}

// unwrapCallback снимает обёртку name( ... ) и проверяет, что внутри корректный JSON.
func unwrapCallback(body []byte, name string) (json.RawMessage, error) {
	b := bytes.TrimSpace(body)
	b = bytes.TrimPrefix(b, []byte("/**/"))

	if !bytes.HasPrefix(b, []byte(name+"(")) {
		return nil, fmt.Errorf("%w: нет вызова %s(", ErrMalformedPayload, name)
	}
	b = b[len(name)+1:]

	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte(";"))
	b = bytes.TrimSpace(b)
	if !bytes.HasSuffix(b, []byte(")")) {
		return nil, fmt.Errorf("%w: нет закрывающей скобки", ErrMalformedPayload)
	}
	b = bytes.TrimSpace(b[:len(b)-1])

	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: тело не является JSON", ErrMalformedPayload)
	}
	return json.RawMessage(b), nil
}

// redactURLError заменяет URL внутри *url.Error на копию без секретных параметров.
// Причина ошибки остаётся доступной через errors.Is/errors.As.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
