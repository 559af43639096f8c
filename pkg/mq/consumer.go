package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewRabbitConsumer(ch *amqp.Channel, logger *zap.Logger) *RabbitConsumer {
	return &RabbitConsumer{ch: ch, logger: logger}
}

// Consume blocks until ctx is done or the delivery channel closes.
// Handler errors marked Temporary are requeued; any other error dead-letters the message.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	tag := "consumer-" + queue
	deliveries, err := c.ch.Consume(queue, tag, false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel(tag, false)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			err := handler(ctx, d.Body)
			if err == nil {
				_ = d.Ack(false)
				continue
			}

			requeue := IsTemporary(err)
			c.logger.Warn("Message handling failed",
				zap.String("queue", queue),
				zap.Bool("requeue", requeue),
				zap.Error(err))
			_ = d.Nack(false, requeue)
		}
	}
}
