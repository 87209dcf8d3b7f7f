package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/FlickrSearch/internal/core/ports"
	"github.com/GoArmGo/FlickrSearch/internal/messaging/payloads"
	"github.com/GoArmGo/FlickrSearch/internal/usecase"
)

// errConsumerStopped возвращается, если потребитель остановился раньше отмены ctx.
var errConsumerStopped = errors.New("потребитель RabbitMQ остановился")

// runWorker запускает потребителя RabbitMQ и обрабатывает сообщения до отмены ctx.
// Возвращается только после того, как потребитель закончил текущее сообщение.
func runWorker(
	ctx context.Context,
	photoUseCase usecase.PhotoUseCase,
	consumer ports.PhotoSearchConsumer,
	results ports.PhotoSearchResultPublisher,
	logger *slog.Logger,
) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	done, err := consumer.StartConsumingPhotoSearchRequests(workerCtx, searchJobHandler(photoUseCase, results, logger))
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for messages")

	select {
	case <-ctx.Done():
		cancelWorker()
		<-done
		logger.Info("worker stopped")
		return nil
	case <-done:
		return errConsumerStopped
	}
}

// searchJobHandler выполняет поиск из сообщения и публикует результат.
// Ошибка поиска не повторяется: она уходит в очередь результатов, а сообщение
// подтверждается. Ошибка возвращается, если не удалось опубликовать результат или
// поиск прерван остановкой воркера; в этом случае результат не публикуется.
func searchJobHandler(
	photoUseCase usecase.PhotoUseCase,
	results ports.PhotoSearchResultPublisher,
	logger *slog.Logger,
) func(context.Context, payloads.PhotoSearchPayload) error {
	return func(ctx context.Context, payload payloads.PhotoSearchPayload) error {
		logger.Info("processing search job", "request_id", payload.RequestID, "query", payload.Query)

		out := payloads.PhotoSearchResultPayload{
			RequestID: payload.RequestID,
			Query:     payload.Query,
		}

		result, err := photoUseCase.SearchPhotoViews(ctx, payload.Query, payload.Constraint())
		if err != nil && ctx.Err() != nil {
			logger.Warn("search job interrupted by shutdown", "request_id", payload.RequestID)
			return fmt.Errorf("поиск %s прерван: %w", payload.RequestID, err)
		}
		if err != nil {
			logger.Error("search job failed", "request_id", payload.RequestID, "error", err)
			out.Error = err.Error()
		} else {
			out.Result = result
		}

		if err := results.PublishPhotoSearchResult(ctx, out); err != nil {
			return fmt.Errorf("публикация результата %s: %w", payload.RequestID, err)
		}
		return nil
	}
}
