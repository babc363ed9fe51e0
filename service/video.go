package service

import (
	"context"
	"course-studio/constant"
	"course-studio/dto"
	"course-studio/entities"
	"course-studio/pkg/mux"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CleanupQueue hands remote assets that could not be deleted synchronously to
// the background reconciler.
type CleanupQueue interface {
	Enqueue(ctx context.Context, msg dto.AssetCleanupMessage) error
}

// videoAssets owns the remote half of a chapter video binding.
type videoAssets struct {
	client mux.Client
	queue  CleanupQueue
}

// create provisions a remote asset for sourceURL and returns the MuxData row to
// persist. When the provider created an asset but gave no playback id, the
// orphan is released before the error is returned.
func (v *videoAssets) create(ctx context.Context, chapterId uuid.UUID, sourceURL string) (*entities.MuxData, error) {
	asset, err := v.client.CreateAsset(ctx, sourceURL)
	if err != nil {
		if asset != nil && asset.Id != "" {
			v.release(ctx, chapterId, asset.Id, constant.CleanupReasonCompensation)
		}
		return nil, fmt.Errorf("%w: %w", ErrAssetCreation, err)
	}
	playbackId, ok := asset.PublicPlaybackId()
	if !ok {
		v.release(ctx, chapterId, asset.Id, constant.CleanupReasonCompensation)
		return nil, fmt.Errorf("%w: %w", ErrAssetCreation, mux.ErrNoPlaybackId)
	}

	zerolog.Ctx(ctx).Info().
		Str("chapter_id", chapterId.String()).
		Str("asset_id", asset.Id).
		Msg("video asset created")
	return &entities.MuxData{
		ChapterId:  chapterId,
		AssetId:    asset.Id,
		PlaybackId: &playbackId,
	}, nil
}

// release deletes a remote asset. An asset already gone counts as deleted. Any
// other failure is logged and queued for reconciliation; it never fails the
// caller's operation.
func (v *videoAssets) release(ctx context.Context, chapterId uuid.UUID, assetId string, reason constant.CleanupReason) {
	logger := zerolog.Ctx(ctx).With().
		Str("chapter_id", chapterId.String()).
		Str("asset_id", assetId).
		Str("reason", string(reason)).
		Logger()

	err := v.client.DeleteAsset(ctx, assetId)
	if err == nil || errors.Is(err, mux.ErrAssetNotFound) {
		logger.Info().Msg("video asset released")
		return
	}
	logger.Warn().Err(err).Msg("failed to delete video asset, scheduling cleanup")

	if v.queue == nil {
		logger.Error().Msg("no cleanup queue configured, video asset orphaned")
		return
	}
	msg := dto.AssetCleanupMessage{AssetId: assetId, ChapterId: chapterId, Reason: reason}
	if err := v.queue.Enqueue(ctx, msg); err != nil {
		logger.Error().Err(err).Msg("failed to enqueue video asset cleanup")
	}
}
