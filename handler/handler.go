package handler

import (
	"context"
	"course-studio/dto"
	"course-studio/service"
	"encoding/json"
	"errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type ServiceDependencies struct {
	AssetCleanupService service.AssetCleanupService
}

// AssetCleanupHandler decodes a cleanup request and deletes the remote asset.
func AssetCleanupHandler(ctx context.Context, msg amqp.Delivery, deps ServiceDependencies) error {
	var cleanup dto.AssetCleanupMessage
	if err := json.Unmarshal(msg.Body, &cleanup); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal asset cleanup message")
		return errors.Join(service.ErrNonRetryable, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("asset_id", cleanup.AssetId).
		Str("chapter_id", cleanup.ChapterId.String()).
		Str("reason", string(cleanup.Reason)).
		Msg("received asset cleanup message")

	return deps.AssetCleanupService.Process(ctx, cleanup)
}
