package rabbitmq

import (
	"context"
	"course-studio/config"
	"encoding/json"
	amqp "github.com/rabbitmq/amqp091-go"
	"sync"
	"time"
)

const publishTimeout = 5 * time.Second

// Publisher sends JSON encoded messages of type T to a topology's exchange.
type Publisher[T any] struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	topology Topology
}

func NewPublisher[T any](ctx context.Context, conn *amqp.Connection, cfg *config.RabbitMQ, topology Topology) (*Publisher[T], error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := declare(ctx, ch, cfg.Kind, topology); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Publisher[T]{ch: ch, topology: topology}, nil
}

// Enqueue publishes msg as a persistent message. It is safe for concurrent use.
func (p *Publisher[T]) Enqueue(ctx context.Context, msg T) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.topology.Exchange, p.topology.RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Publisher[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
