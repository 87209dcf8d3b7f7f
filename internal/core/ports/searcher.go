package ports

import (
	"context"

	"github.com/GoArmGo/FlickrSearch/internal/domain"
)

// PhotoSearcher определяет поиск фотографий во внешнем источнике (Flickr).
// Реализация возвращает поле photos ответа без изменений.
type PhotoSearcher interface {
	Search(ctx context.Context, query string) (*domain.Photos, error)
}
