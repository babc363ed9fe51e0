package rabbitmq

import (
	"context"
	"course-studio/constant"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Topology names a work queue bound to an exchange, with a dead letter queue
// receiving the messages its consumers reject.
type Topology struct {
	Exchange             string
	Queue                string
	RoutingKey           string
	DeadLetterExchange   string
	DeadLetterQueue      string
	DeadLetterRoutingKey string
}

// declare creates the exchanges and queues of t. It is idempotent, so both
// publishers and consumers call it.
func declare(ctx context.Context, ch *amqp.Channel, kind string, t Topology) error {
	if kind == "" {
		kind = amqp.ExchangeDirect
	}
	logger := zerolog.Ctx(ctx).With().Str("exchange", t.Exchange).Str("queue", t.Queue).Logger()

	err := ch.ExchangeDeclare(t.Exchange, kind, true, false, false, false, nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to declare exchange")
		return err
	}

	var args amqp.Table
	if t.DeadLetterExchange != "" {
		err = ch.ExchangeDeclare(t.DeadLetterExchange, kind, true, false, false, false, nil)
		if err != nil {
			logger.Error().Err(err).Str("dlx", t.DeadLetterExchange).Msg("failed to declare dlx")
			return err
		}
		dlq, err := ch.QueueDeclare(t.DeadLetterQueue, true, false, false, false, nil)
		if err != nil {
			logger.Error().Err(err).Str("dlq", t.DeadLetterQueue).Msg("failed to declare dlq")
			return err
		}
		err = ch.QueueBind(dlq.Name, t.DeadLetterRoutingKey, t.DeadLetterExchange, false, nil)
		if err != nil {
			logger.Error().Err(err).Msg("failed to bind dlq")
			return err
		}
		args = amqp.Table{
			"x-dead-letter-exchange":    t.DeadLetterExchange,
			"x-dead-letter-routing-key": t.DeadLetterRoutingKey,
		}
	}

	q, err := ch.QueueDeclare(t.Queue, true, false, false, false, args)
	if err != nil {
		logger.Error().Err(err).Msg("failed to declare queue")
		return err
	}
	err = ch.QueueBind(q.Name, t.RoutingKey, t.Exchange, false, nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to bind queue")
		return err
	}
	return nil
}

// AssetCleanupTopology routes cleanup requests through exchange, or the
// default exchange name when it is empty. The dead letter exchange is derived
// from it.
func AssetCleanupTopology(exchange string) Topology {
	if exchange == "" {
		exchange = constant.AssetCleanupExchange
	}
	return Topology{
		Exchange:             exchange,
		Queue:                constant.AssetCleanupQueue,
		RoutingKey:           constant.AssetCleanupRoutingKey,
		DeadLetterExchange:   exchange + "_dlx",
		DeadLetterQueue:      constant.AssetCleanupDLQ,
		DeadLetterRoutingKey: constant.AssetCleanupDLQKey,
	}
}
