package rabbitmq

import (
	"context"
	"course-studio/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"sync"
)

type Consumer[T any] interface {
	Consume(ctx context.Context, dependencies T) error
}

type consumer[T any] struct {
	conn       *amqp.Connection
	cfg        *config.RabbitMQ
	topology   Topology
	handler    func(ctx context.Context, msg amqp.Delivery, dependencies T) error
	numWorkers int
}

// Consume dispatches deliveries to numWorkers goroutines until ctx is done or
// the channel closes. A handler error dead-letters the message.
func (c consumer[T]) Consume(ctx context.Context, dependencies T) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declare(ctx, ch, c.cfg.Kind, c.topology); err != nil {
		return err
	}

	err = ch.Qos(c.numWorkers, 0, false)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", c.topology.Queue).Msg("failed to set QoS")
		return err
	}

	deliveries, err := ch.Consume(c.topology.Queue, "", false, false, false, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", c.topology.Queue).Msg("failed to consume queue")
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("queue", c.topology.Queue).
		Str("exchange", c.topology.Exchange).
		Str("routing_key", c.topology.RoutingKey).
		Int("workers", c.numWorkers).
		Msg("consumer started")

	jobs := make(chan amqp.Delivery, c.numWorkers)
	var wg sync.WaitGroup
	for i := 1; i <= c.numWorkers; i++ {
		wg.Add(1)
		go func(workerId int) {
			defer wg.Done()
			for msg := range jobs {
				if err := c.handler(ctx, msg, dependencies); err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Int("worker_id", workerId).Msg("failed to handle message, dead-lettering")
					if nackErr := msg.Nack(false, false); nackErr != nil {
						zerolog.Ctx(ctx).Error().Err(nackErr).Msg("failed to nack message")
					}
					continue
				}
				if err := msg.Ack(false); err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Msg("failed to acknowledge message")
				}
			}
		}(i)
	}

	for {
		select {
		case delivery, ok := <-deliveries:
			if !ok {
				close(jobs)
				wg.Wait()
				return nil
			}

			jobs <- delivery
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
}

func NewConsumer[T any](
	conn *amqp.Connection,
	cfg *config.RabbitMQ,
	topology Topology,
	numWorkers int,
	handler func(ctx context.Context, msg amqp.Delivery, dependencies T) error,
) Consumer[T] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &consumer[T]{
		conn:       conn,
		cfg:        cfg,
		topology:   topology,
		handler:    handler,
		numWorkers: numWorkers,
	}
}
