package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/GoArmGo/FlickrSearch/internal/domain"
)

// ErrEmptyQuery возвращается, если текст запроса пуст.
var ErrEmptyQuery = errors.New("пустой поисковый запрос")

// PhotoUseCase определяет интерфейс бизнес-логики поиска фото.
type PhotoUseCase interface {
	// SearchPhotos ищет фото во Flickr и возвращает поле photos ответа без изменений.
	SearchPhotos(ctx context.Context, query string) (*domain.Photos, error)

	// SearchPhotoViews ищет фото и для каждого вычисляет адрес картинки и размеры
	// с учетом необязательного ограничения.
	SearchPhotoViews(ctx context.Context, query string, constraint *domain.SizeConstraint) (*domain.SearchResult, error)
}

// SearchObserver получает исход и длительность каждого поиска (метрики).
type SearchObserver interface {
	ObserveSearch(outcome string, duration time.Duration)
}

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
