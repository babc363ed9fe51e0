package service

import (
	"context"
	"course-studio/constant"
	"course-studio/dto"
	"course-studio/entities"
	"course-studio/pkg/cache"
	"course-studio/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"strings"
)

type AttachmentService interface {
	Create(ctx context.Context, userId string, courseId uuid.UUID, req dto.CreateAttachmentRequest) (*entities.Attachment, error)
	Delete(ctx context.Context, userId string, courseId, attachmentId uuid.UUID) error
}

type attachmentService struct {
	repo  repository.Repository
	cache cache.CourseCache
}

func NewAttachmentService(repo repository.Repository, courseCache cache.CourseCache) AttachmentService {
	if courseCache == nil {
		courseCache = cache.Nop{}
	}
	return &attachmentService{repo: repo, cache: courseCache}
}

func (s *attachmentService) Create(ctx context.Context, userId string, courseId uuid.UUID, req dto.CreateAttachmentRequest) (*entities.Attachment, error) {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(req.Url)
	if url == "" {
		return nil, newValidationError("url", "url is required")
	}

	attachment := &entities.Attachment{
		CourseId: courseId,
		Name:     AttachmentName(url),
		Url:      url,
	}
	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Str("attachment_id", attachment.ID.String()).
		Msg("attachment created")
	return attachment, nil
}

func (s *attachmentService) Delete(ctx context.Context, userId string, courseId, attachmentId uuid.UUID) error {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteAttachment(ctx, attachmentId, courseId)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.cache.Invalidate(ctx, courseId)
	return nil
}

// AttachmentName is the last path segment of url, or "unnamed" when the URL
// ends with a slash.
func AttachmentName(url string) string {
	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		return constant.UnnamedAttachment
	}
	return name
}
