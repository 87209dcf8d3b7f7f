package ports

import (
	"context"

	"github.com/GoArmGo/FlickrSearch/internal/messaging/payloads"
)

// PhotoSearchPublisher определяет методы для публикации сообщений о поиске фото
// Этот интерфейс используется обработчиком HTTP-запросов
type PhotoSearchPublisher interface {
	PublishPhotoSearchRequest(ctx context.Context, payload payloads.PhotoSearchPayload) error
}

// PhotoSearchConsumer определяет методы для потребления сообщений о поиске фото
// используется воркером для получения задач из очереди
type PhotoSearchConsumer interface {
	// StartConsumingPhotoSearchRequests начинает прослушивание очереди для сообщений о поиске фото
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения.
	// Возвращаемый канал закрывается, когда потребитель обработал последнее сообщение и остановился.
	StartConsumingPhotoSearchRequests(ctx context.Context, handler func(context.Context, payloads.PhotoSearchPayload) error) (<-chan struct{}, error)
}

// PhotoSearchResultPublisher публикует результаты выполненных воркером поисков
type PhotoSearchResultPublisher interface {
	PublishPhotoSearchResult(ctx context.Context, result payloads.PhotoSearchResultPayload) error
}
