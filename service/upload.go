package service

import (
	"context"
	"course-studio/constant"
	"course-studio/dto"
	"fmt"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"io"
	"path"
	"strings"
)

// ObjectStorage is the part of *minio.Client uploads need.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UploadService interface {
	Upload(ctx context.Context, file UploadFile) (*dto.UploadResponse, error)
}

type uploadService struct {
	storage   ObjectStorage
	bucket    string
	publicURL string
}

func NewUploadService(storage ObjectStorage, bucket, publicURL string) UploadService {
	return &uploadService{
		storage:   storage,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func ResourceTypeOf(contentType string) constant.ResourceType {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return constant.ResourceTypeVideo
	case strings.HasPrefix(contentType, "image/"):
		return constant.ResourceTypeImage
	default:
		return constant.ResourceTypeFile
	}
}

func (s *uploadService) Upload(ctx context.Context, file UploadFile) (*dto.UploadResponse, error) {
	if file.Reader == nil || file.Size <= 0 {
		return nil, newValidationError("file", "file is required")
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resourceType := ResourceTypeOf(contentType)
	objectName := fmt.Sprintf("%s/%s%s", resourceType.Prefix(), uuid.NewString(), strings.ToLower(path.Ext(file.Name)))

	_, err := s.storage.PutObject(ctx, s.bucket, objectName, file.Reader, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %w", ErrRemoteService, objectName, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("object", objectName).
		Str("resource_type", string(resourceType)).
		Int64("size", file.Size).
		Msg("file uploaded")
	return &dto.UploadResponse{
		Url:          fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName),
		Name:         file.Name,
		ResourceType: resourceType,
	}, nil
}
