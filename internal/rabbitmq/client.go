package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/FlickrSearch/internal/config"
	"github.com/GoArmGo/FlickrSearch/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Client представляет собой клиент RabbitMQ.
// Реализует ports.PhotoSearchPublisher, ports.PhotoSearchConsumer и ports.PhotoSearchResultPublisher.
type Client struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	queue       amqp.Queue
	resultQueue amqp.Queue
	logger      *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn
	logger.Info("connected to RabbitMQ")

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Объявление очереди идемпотентно: очередь создается, если ее нет.
	client.queue, err = declareQueue(ch, cfg.RabbitMQ.RabbitMQQueueName)
	if err != nil {
		client.Close()
		return nil, err
	}
	client.resultQueue, err = declareQueue(ch, cfg.RabbitMQ.RabbitMQResultQueueName)
	if err != nil {
		client.Close()
		return nil, err
	}

	logger.Info("queues declared",
		"queue", client.queue.Name,
		"queue_messages", client.queue.Messages,
		"result_queue", client.resultQueue.Name,
	)
	return client, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %q: %w", name, err)
	}
	return q, nil
}

// Close закрывает канал и соединение RabbitMQ
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close RabbitMQ channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close RabbitMQ connection: %w", err))
		}
	}
	c.logger.Info("RabbitMQ connection closed")
	return errors.Join(errs...)
}

// PublishPhotoSearchRequest публикует запрос на поиск фото в очередь задач.
func (c *Client) PublishPhotoSearchRequest(ctx context.Context, payload payloads.PhotoSearchPayload) error {
	if err := c.publishJSON(ctx, c.queue.Name, payload); err != nil {
		return err
	}
	c.logger.Info("search request published", "queue", c.queue.Name, "request_id", payload.RequestID, "query", payload.Query)
	return nil
}

// PublishPhotoSearchResult публикует результат поиска в очередь результатов.
func (c *Client) PublishPhotoSearchResult(ctx context.Context, result payloads.PhotoSearchResultPayload) error {
	if err := c.publishJSON(ctx, c.resultQueue.Name, result); err != nil {
		return err
	}
	c.logger.Info("search result published", "queue", c.resultQueue.Name, "request_id", result.RequestID)
	return nil
}

func (c *Client) publishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message to %q: %w", queue, err)
	}
	return nil
}

// StartConsumingPhotoSearchRequests начинает потребление сообщений из очереди задач.
// Сообщения обрабатываются в отдельной горутине до отмены ctx или закрытия канала;
// возвращаемый канал закрывается при выходе из этой горутины.
func (c *Client) StartConsumingPhotoSearchRequests(ctx context.Context, handler func(context.Context, payloads.PhotoSearchPayload) error) (<-chan struct{}, error) {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack (подтверждаем вручную)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn("RabbitMQ delivery channel closed, stopping consumer")
					return
				}
				c.process(ctx, msg.Body, msg.Redelivered, &msg, handler)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return done, nil
}

// acknowledger — часть amqp.Delivery, нужная для подтверждения сообщения.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// process обрабатывает одно сообщение. Сообщение с некорректным JSON отклоняется
// без возврата в очередь. При ошибке обработчика сообщение возвращается в очередь
// один раз; повторно доставленное и снова упавшее сообщение отбрасывается.
// Если ctx отменён (остановка воркера), сообщение всегда возвращается в очередь.
func (c *Client) process(ctx context.Context, body []byte, redelivered bool, ack acknowledger, handler func(context.Context, payloads.PhotoSearchPayload) error) {
	var payload payloads.PhotoSearchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("failed to unmarshal message", "error", err, "body", string(body))
		if err := ack.Nack(false, false); err != nil {
			c.logger.Error("failed to NACK message after unmarshal failure", "error", err)
		}
		return
	}

	c.logger.Debug("message received", "request_id", payload.RequestID, "query", payload.Query)

	if err := handler(ctx, payload); err != nil {
		requeue := !redelivered || ctx.Err() != nil
		c.logger.Error("failed to process message",
			"request_id", payload.RequestID,
			"requeue", requeue,
			"error", err,
		)
		if err := ack.Nack(false, requeue); err != nil {
			c.logger.Error("failed to NACK message after processing failure", "error", err)
		}
		return
	}

	if err := ack.Ack(false); err != nil {
		c.logger.Error("failed to ACK message", "error", err)
		return
	}
	c.logger.Debug("message processed and ACKed", "request_id", payload.RequestID)
}
