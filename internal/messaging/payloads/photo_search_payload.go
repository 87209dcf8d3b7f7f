package payloads

import (
	"github.com/GoArmGo/FlickrSearch/internal/domain"
	"github.com/google/uuid"
)

// PhotoSearchPayload представляет данные, необходимые для поиска фотографий
// через RabbitMQ. Width и Height — необязательное ограничение размера.
type PhotoSearchPayload struct {
	RequestID uuid.UUID `json:"request_id"`
	Query     string    `json:"query"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
}

// Constraint возвращает ограничение размера или nil, если ни одна сторона не задана.
func (p PhotoSearchPayload) Constraint() *domain.SizeConstraint {
	return domain.NewSizeConstraint(p.Width, p.Height)
}

// PhotoSearchResultPayload — результат поиска, который воркер публикует в очередь результатов.
// При ошибке заполнено Error, а Result пуст.
type PhotoSearchResultPayload struct {
	RequestID uuid.UUID            `json:"request_id"`
	Query     string               `json:"query"`
	Result    *domain.SearchResult `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
}
