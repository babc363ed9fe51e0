package config

import (
	"context"
	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"time"
)

const rabbitMQDialTries = 5

// URI builds the AMQP connection string for the default vhost.
func (r *RabbitMQ) URI() string {
	return amqp.URI{
		Scheme:   "amqp",
		Host:     r.Host,
		Port:     r.Port,
		Username: r.User,
		Password: r.Pass,
		Vhost:    "/",
	}.String()
}

// NewRabbitMQConn dials with exponential backoff and closes the connection
// when ctx is done.
func NewRabbitMQConn(ctx context.Context, cfg *RabbitMQ) (*amqp.Connection, error) {
	logger := zerolog.Ctx(ctx).With().Str("host", cfg.Host).Int("port", cfg.Port).Logger()

	operation := func() (*amqp.Connection, error) {
		conn, err := amqp.Dial(cfg.URI())
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to RabbitMQ, retrying")
			return nil, err
		}
		return conn, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 10 * time.Second
	conn, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(rabbitMQDialTries))
	if err != nil {
		logger.Error().Err(err).Msg("giving up connecting to RabbitMQ")
		return nil, err
	}

	logger.Info().Msg("connected to RabbitMQ")
	go func() {
		<-ctx.Done()
		if err := conn.Close(); err != nil && !conn.IsClosed() {
			logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
			return
		}
		logger.Info().Msg("RabbitMQ connection closed")
	}()

	return conn, nil
}
