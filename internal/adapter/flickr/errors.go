package flickr

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload — ответ не удалось разобрать как JSONP с JSON-документом внутри.
var ErrMalformedPayload = errors.New("malformed flickr payload")

// RequestFailedError оборачивает любую ошибку запроса поиска.
// Исходная ошибка доступна через errors.Is / errors.As.
type RequestFailedError struct {
	Query string
	Err   error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("flickr: search %q failed: %v", e.Query, e.Err)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// APIError — ответ Flickr со stat "fail".
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flickr API error %d: %s", e.Code, e.Message)
}

// StatusError — HTTP-ответ с кодом, отличным от 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("flickr вернул статус %d: %s", e.StatusCode, e.Body)
}
