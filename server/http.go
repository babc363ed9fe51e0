package server

import (
	"context"
	"course-studio/config"
	"course-studio/constant"
	"course-studio/dto"
	cleanupHandler "course-studio/handler"
	"course-studio/pkg/auth"
	"course-studio/pkg/cache"
	"course-studio/pkg/mux"
	"course-studio/pkg/rabbitmq"
	"course-studio/repository"
	"course-studio/service"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	shutdownTimeout      = 15 * time.Second
	cleanupRetryInterval = 2 * time.Second
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(SetupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	isProduction := cfg.App.Environment == constant.EnvironmentProduction.String()
	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", isProduction).Send()
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := repository.NewRepo(cfg.DB, cfg.App.Environment == constant.EnvironmentDevelop.String())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to open database")
		return
	}

	courseCache := cache.CourseCache(cache.Nop{})
	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("redis unavailable, caching and rate limiting disabled")
		rdb = nil
	} else {
		courseCache = cache.NewCourseCache(rdb)
	}

	videos := mux.NewClient(mux.Options{
		TokenId:     cfg.Mux.TokenId,
		TokenSecret: cfg.Mux.TokenSecret,
		BaseURL:     cfg.Mux.BaseURL,
		Timeout:     cfg.Mux.Timeout,
	})

	var queue service.CleanupQueue
	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn, failed video deletes will not be retried")
	} else {
		topology := rabbitmq.AssetCleanupTopology(cfg.Queue.ExchangeName)
		publisher, err := rabbitmq.NewPublisher[dto.AssetCleanupMessage](ctx, conn, cfg.Queue, topology)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create cleanup publisher")
		} else {
			defer publisher.Close()
			queue = publisher
		}

		serviceDeps := cleanupHandler.ServiceDependencies{
			AssetCleanupService: service.NewAssetCleanupService(videos, cfg.Mux.CleanupMaxTries, cleanupRetryInterval),
		}
		cleanupConsumer := rabbitmq.NewConsumer(conn, cfg.Queue, topology, cfg.Server.Workers, cleanupHandler.AssetCleanupHandler)
		go func() {
			err := cleanupConsumer.Consume(ctx, serviceDeps)
			if err != nil && !errors.Is(err, context.Canceled) {
				zerolog.Ctx(ctx).Error().Err(err).Msg("asset cleanup consumer error")
			}
		}()
	}

	r := NewRouter(Dependencies{
		Courses:          service.NewCourseService(repo, videos, queue, courseCache),
		Chapters:         service.NewChapterService(repo, videos, queue, courseCache),
		Attachments:      service.NewAttachmentService(repo, courseCache),
		Uploads:          service.NewUploadService(cfg.Storage, cfg.MinIOBucket, cfg.PublicStorageURL),
		Tokens:           auth.NewTokenManager(cfg.Auth.JWTSecret),
		Limiter:          NewRateLimiter(rdb),
		Logger:           *zerolog.Ctx(ctx),
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		MaxUploadBytes:   cfg.Upload.MaxSizeMB << 20,
		UploadsPerMinute: cfg.Upload.RateLimitPerMinute,
	})

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("addr", handler.Addr).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
			cancel()
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()
	if err := handler.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

// SetupLogger returns a base context carrying the process logger.
func SetupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
