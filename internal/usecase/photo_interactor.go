package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/FlickrSearch/internal/core/ports"
	"github.com/GoArmGo/FlickrSearch/internal/domain"
)

// photoUseCase implements PhotoUseCase
type photoUseCase struct {
	searcher ports.PhotoSearcher
	observer SearchObserver
	logger   *slog.Logger
}

// NewPhotoUseCase создает новый экземпляр PhotoUseCase.
// observer может быть nil.
func NewPhotoUseCase(searcher ports.PhotoSearcher, observer SearchObserver, logger *slog.Logger) PhotoUseCase {
	return &photoUseCase{
		searcher: searcher,
		observer: observer,
		logger:   logger,
	}
}

// SearchPhotos ищет фото во внешнем API. Ошибка источника оборачивается, но
// остается доступной через errors.Is / errors.As.
func (uc *photoUseCase) SearchPhotos(ctx context.Context, query string) (*domain.Photos, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	uc.logger.Debug("searching photos", "query", query)

	photos, err := uc.searcher.Search(ctx, query)
	uc.observe(err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске фото во внешнем API: %w", err)
	}

	uc.logger.Info("photos search completed",
		"query", query,
		"found", len(photos.Photo),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, nil
}

// SearchPhotoViews ищет фото и готовит их к отображению.
func (uc *photoUseCase) SearchPhotoViews(ctx context.Context, query string, constraint *domain.SizeConstraint) (*domain.SearchResult, error) {
	photos, err := uc.SearchPhotos(ctx, query)
	if err != nil {
		return nil, err
	}
	return domain.NewSearchResult(query, photos, constraint), nil
}

func (uc *photoUseCase) observe(err error, d time.Duration) {
	if uc.observer == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	uc.observer.ObserveSearch(outcome, d)
}
