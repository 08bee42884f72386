package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(url, queueName string, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Идемпотентно: очередь будет создана, если ее нет
	q, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q
	logger.Info("rabbitmq queue declared", "queue", q.Name, "messages", q.Messages)

	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
		}
	}
	c.logger.Info("rabbitmq connection closed")
}

// PublishExerciseLogged публикует событие о добавленном упражнении.
// Реализует ports.ExerciseEventPublisher.
func (c *Client) PublishExerciseLogged(ctx context.Context, payload payloads.ExerciseLoggedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.ExerciseID,
			Timestamp:    payload.LoggedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	c.logger.Debug("message published", "queue", c.queue.Name, "exercise_id", payload.ExerciseID)
	return nil
}

// StartConsumingExerciseLogged начинает потребление сообщений из очереди.
// Реализует ports.ExerciseEventConsumer.
func (c *Client) StartConsumingExerciseLogged(ctx context.Context, handler func(context.Context, payloads.ExerciseLoggedPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("rabbitmq delivery channel closed, stopping consumer")
					return
				}
				processDelivery(ctx, msg.Body, &msg, handler, c.logger)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping rabbitmq consumer")
				return
			}
		}
	}()

	return nil
}

// acknowledger — часть amqp.Delivery, нужная для подтверждения
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// processDelivery декодирует сообщение и вызывает handler.
// Битое или невалидное сообщение отбрасывается без requeue, остальные ошибки обработки возвращают его в очередь
func processDelivery(ctx context.Context, body []byte, ack acknowledger, handler func(context.Context, payloads.ExerciseLoggedPayload) error, logger *slog.Logger) {
	var payload payloads.ExerciseLoggedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error("error unmarshalling message", "error", err, "body", string(body))
		if err := ack.Nack(false, false); err != nil {
			logger.Error("error NACKing message after unmarshal failure", "error", err)
		}
		return
	}

	if err := handler(ctx, payload); err != nil {
		if errors.Is(err, payloads.ErrInvalidPayload) {
			logger.Error("dropping invalid message", "exercise_id", payload.ExerciseID, "error", err)
			if err := ack.Nack(false, false); err != nil {
				logger.Error("error NACKing invalid message", "error", err)
			}
			return
		}
		logger.Error("error processing message", "exercise_id", payload.ExerciseID, "error", err)
		if err := ack.Nack(false, true); err != nil {
			logger.Error("error NACKing message after processing failure", "error", err)
		}
		return
	}

	if err := ack.Ack(false); err != nil {
		logger.Error("error ACKing message", "error", err)
		return
	}
	logger.Debug("message processed and ACKed", "exercise_id", payload.ExerciseID)
}
