package service

import (
	"context"
	"course-studio/dto"
	"course-studio/pkg/mux"
	"errors"
	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"time"
)

type AssetCleanupService interface {
	// Process deletes the remote asset named by msg, retrying transient
	// failures. An asset that is already gone counts as deleted. Rejected
	// requests are not retried.
	Process(ctx context.Context, msg dto.AssetCleanupMessage) error
}

type assetCleanupService struct {
	videos          mux.Client
	maxTries        uint
	initialInterval time.Duration
}

func NewAssetCleanupService(videos mux.Client, maxTries uint, initialInterval time.Duration) AssetCleanupService {
	if maxTries == 0 {
		maxTries = 1
	}
	return &assetCleanupService{
		videos:          videos,
		maxTries:        maxTries,
		initialInterval: initialInterval,
	}
}

func (s *assetCleanupService) Process(ctx context.Context, msg dto.AssetCleanupMessage) error {
	if msg.AssetId == "" {
		return errors.Join(ErrNonRetryable, errors.New("cleanup message has no asset id"))
	}
	logger := zerolog.Ctx(ctx).With().
		Str("asset_id", msg.AssetId).
		Str("chapter_id", msg.ChapterId.String()).
		Str("reason", string(msg.Reason)).
		Logger()

	operation := func() (struct{}, error) {
		err := s.videos.DeleteAsset(ctx, msg.AssetId)
		if err == nil || errors.Is(err, mux.ErrAssetNotFound) {
			return struct{}{}, nil
		}
		var status *mux.StatusError
		if errors.As(err, &status) && status.Permanent() {
			logger.Error().Err(err).Int("status", status.StatusCode).Msg("video asset cleanup rejected")
			return struct{}{}, backoff.Permanent(err)
		}
		logger.Warn().Err(err).Msg("video asset cleanup attempt failed")
		return struct{}{}, err
	}

	bo := backoff.NewExponentialBackOff()
	if s.initialInterval > 0 {
		bo.InitialInterval = s.initialInterval
	}
	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(s.maxTries))
	if err != nil {
		logger.Error().Err(err).Msg("video asset cleanup gave up")
		return errors.Join(ErrNonRetryable, err)
	}
	logger.Info().Msg("video asset cleaned up")
	return nil
}
