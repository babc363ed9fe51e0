package service

import (
	"context"
	"course-studio/constant"
	"course-studio/dto"
	"course-studio/entities"
	"course-studio/pkg/cache"
	"course-studio/pkg/mux"
	"course-studio/repository"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"strings"
)

// positionRetries bounds how often Create recomputes the next position when a
// concurrent insert took it.
const positionRetries = 3

type ChapterService interface {
	Create(ctx context.Context, userId string, courseId uuid.UUID, req dto.CreateChapterRequest) (*entities.Chapter, error)
	Get(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*dto.ChapterDetail, error)
	Rename(ctx context.Context, userId string, courseId, chapterId uuid.UUID, title string) (*entities.Chapter, error)
	Update(ctx context.Context, userId string, courseId, chapterId uuid.UUID, req dto.UpdateChapterRequest) (*entities.Chapter, error)
	Delete(ctx context.Context, userId string, courseId, chapterId uuid.UUID) error
	Reorder(ctx context.Context, userId string, courseId uuid.UUID, req dto.ReorderChaptersRequest) (*dto.ReorderChaptersResponse, error)
	Publish(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*entities.Chapter, error)
	Unpublish(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*entities.Chapter, error)
}

type chapterService struct {
	repo   repository.Repository
	videos *videoAssets
	cache  cache.CourseCache
}

func NewChapterService(repo repository.Repository, videos mux.Client, queue CleanupQueue, courseCache cache.CourseCache) ChapterService {
	if courseCache == nil {
		courseCache = cache.Nop{}
	}
	return &chapterService{
		repo:   repo,
		videos: &videoAssets{client: videos, queue: queue},
		cache:  courseCache,
	}
}

func (s *chapterService) Create(ctx context.Context, userId string, courseId uuid.UUID, req dto.CreateChapterRequest) (*entities.Chapter, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newValidationError("title", "title is required")
	}
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
	}

	var chapter *entities.Chapter
	var err error
	for attempt := 1; attempt <= positionRetries; attempt++ {
		chapter, err = s.insertAtEnd(ctx, courseId, title)
		if !errors.Is(err, repository.ErrPositionTaken) {
			break
		}
		zerolog.Ctx(ctx).Debug().Int("attempt", attempt).Msg("chapter position taken, retrying")
	}
	if err != nil {
		if errors.Is(err, repository.ErrPositionTaken) {
			return nil, fmt.Errorf("%w: chapter position contended", ErrConflict)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Str("chapter_id", chapter.ID.String()).
		Int("position", chapter.Position).
		Msg("chapter created")
	return chapter, nil
}

func (s *chapterService) insertAtEnd(ctx context.Context, courseId uuid.UUID, title string) (*entities.Chapter, error) {
	chapter := &entities.Chapter{CourseId: courseId, Title: title}
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		position, err := s.repo.NextChapterPosition(ctx, courseId)
		if err != nil {
			return err
		}
		chapter.Position = position
		return s.repo.CreateChapter(ctx, chapter)
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *chapterService) Get(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*dto.ChapterDetail, error) {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
	}
	chapter, err := s.repo.FindChapter(ctx, courseId, chapterId)
	if err != nil {
		return nil, notFound(err, "chapter")
	}
	return &dto.ChapterDetail{
		Chapter:    chapter,
		Completion: ChapterCompleteness(chapter).Completion(),
	}, nil
}

func (s *chapterService) Rename(ctx context.Context, userId string, courseId, chapterId uuid.UUID, title string) (*entities.Chapter, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, newValidationError("title", "title must not be empty")
	}
	return s.Update(ctx, userId, courseId, chapterId, dto.UpdateChapterRequest{Title: &title})
}

// Update applies a partial update. A new video URL is bound create-then-swap:
// the remote asset is created first, the row swap is committed, and only then
// is the previous asset released. A failed commit releases the new asset.
func (s *chapterService) Update(ctx context.Context, userId string, courseId, chapterId uuid.UUID, req dto.UpdateChapterRequest) (*entities.Chapter, error) {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
	}
	chapter, err := s.repo.FindChapter(ctx, courseId, chapterId)
	if err != nil {
		return nil, notFound(err, "chapter")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, newValidationError("title", "title must not be empty")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = nullable(*req.Description)
	}
	if req.IsFree != nil {
		fields["is_free"] = *req.IsFree
	}

	var bound *entities.MuxData
	if req.VideoUrl != nil {
		videoUrl := strings.TrimSpace(*req.VideoUrl)
		if videoUrl == "" {
			return nil, newValidationError("videoUrl", "videoUrl must not be empty")
		}
		sameVideo := chapter.VideoUrl != nil && *chapter.VideoUrl == videoUrl && chapter.MuxData != nil
		if !sameVideo {
			bound, err = s.videos.create(ctx, chapter.ID, videoUrl)
			if err != nil {
				return nil, err
			}
		}
		fields["video_url"] = videoUrl
	}

	var replaced *entities.MuxData
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		if bound != nil {
			previous, err := s.repo.FindMuxDataByChapter(ctx, chapter.ID)
			switch {
			case err == nil:
				if err := s.repo.DeleteMuxData(ctx, previous.ID); err != nil {
					return err
				}
				replaced = previous
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			if err := s.repo.CreateMuxData(ctx, bound); err != nil {
				return err
			}
		}
		return s.repo.UpdateChapterFields(ctx, chapter.ID, fields)
	})
	if err != nil {
		if bound != nil {
			s.videos.release(ctx, chapter.ID, bound.AssetId, constant.CleanupReasonCompensation)
		}
		return nil, notFound(err, "chapter")
	}
	if replaced != nil && replaced.AssetId != bound.AssetId {
		s.videos.release(ctx, chapter.ID, replaced.AssetId, constant.CleanupReasonVideoReplaced)
	}

	s.cache.Invalidate(ctx, courseId)
	updated, err := s.repo.FindChapter(ctx, courseId, chapterId)
	if err != nil {
		return nil, notFound(err, "chapter")
	}
	return updated, nil
}

// Delete removes the chapter and its video binding. When it was the last
// published chapter the course drops back to draft in the same transaction.
func (s *chapterService) Delete(ctx context.Context, userId string, courseId, chapterId uuid.UUID) error {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return err
	}
	chapter, err := s.repo.FindChapter(ctx, courseId, chapterId)
	if err != nil {
		return notFound(err, "chapter")
	}
	if chapter.MuxData != nil {
		s.videos.release(ctx, chapter.ID, chapter.MuxData.AssetId, constant.CleanupReasonChapterDeleted)
	}

	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		course, err := ensureOwner(ctx, s.repo, userId, courseId)
		if err != nil {
			return err
		}
		if chapter.MuxData != nil {
			if err := s.repo.DeleteMuxData(ctx, chapter.MuxData.ID); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteChapter(ctx, chapter.ID); err != nil {
			return err
		}
		return s.syncCoursePublished(ctx, course)
	})
	if err != nil {
		return notFound(err, "chapter")
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Str("chapter_id", chapterId.String()).
		Msg("chapter deleted")
	return nil
}

// syncCoursePublished unpublishes a published course that no longer has any
// published chapter. It must run in the transaction that changed the chapters.
func (s *chapterService) syncCoursePublished(ctx context.Context, course *entities.Course) error {
	if !course.IsPublished {
		return nil
	}
	published, err := s.repo.CountPublishedChapters(ctx, course.ID)
	if err != nil {
		return err
	}
	if published > 0 {
		return nil
	}
	if err := s.repo.SetCoursePublished(ctx, course.ID, false); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("course_id", course.ID.String()).Msg("course unpublished, no published chapters left")
	return nil
}

// Reorder applies the whole batch or nothing. Version, when given, must match
// the course's current version; the new version is returned either way.
func (s *chapterService) Reorder(ctx context.Context, userId string, courseId uuid.UUID, req dto.ReorderChaptersRequest) (*dto.ReorderChaptersResponse, error) {
	if err := validateReorder(req.Updates); err != nil {
		return nil, err
	}

	var version int
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
			return err
		}
		chapters, err := s.repo.FindChaptersByCourse(ctx, courseId)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]struct{}, len(chapters))
		for _, ch := range chapters {
			known[ch.ID] = struct{}{}
		}
		for _, update := range req.Updates {
			if _, ok := known[update.ID]; !ok {
				return newValidationError("updates", fmt.Sprintf("chapter %s does not belong to this course", update.ID))
			}
		}

		version, err = s.repo.BumpCourseVersion(ctx, courseId, req.Version)
		if err != nil {
			if errors.Is(err, repository.ErrVersionMismatch) {
				return fmt.Errorf("%w: course was modified, reload and retry", ErrConflict)
			}
			return err
		}
		if err := s.repo.UpdateChapterPositions(ctx, courseId, req.Updates); err != nil {
			if errors.Is(err, repository.ErrPositionTaken) {
				return newValidationError("updates", "position is already used by a chapter outside the batch")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Int("chapters", len(req.Updates)).
		Int("version", version).
		Msg("chapters reordered")
	return &dto.ReorderChaptersResponse{Version: version}, nil
}

func validateReorder(updates []dto.ChapterPosition) error {
	if len(updates) == 0 {
		return newValidationError("updates", "at least one update is required")
	}
	ids := make(map[uuid.UUID]struct{}, len(updates))
	positions := make(map[int]struct{}, len(updates))
	for _, update := range updates {
		if update.ID == uuid.Nil {
			return newValidationError("updates", "chapter id is required")
		}
		if update.Position == nil || *update.Position < 0 {
			return newValidationError("updates", "position must be a non-negative integer")
		}
		if _, dup := ids[update.ID]; dup {
			return newValidationError("updates", fmt.Sprintf("chapter %s listed more than once", update.ID))
		}
		if _, dup := positions[*update.Position]; dup {
			return newValidationError("updates", fmt.Sprintf("position %d assigned more than once", *update.Position))
		}
		ids[update.ID] = struct{}{}
		positions[*update.Position] = struct{}{}
	}
	return nil
}

func (s *chapterService) Publish(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*entities.Chapter, error) {
	return s.setPublished(ctx, userId, courseId, chapterId, true)
}

func (s *chapterService) Unpublish(ctx context.Context, userId string, courseId, chapterId uuid.UUID) (*entities.Chapter, error) {
	return s.setPublished(ctx, userId, courseId, chapterId, false)
}

func (s *chapterService) setPublished(ctx context.Context, userId string, courseId, chapterId uuid.UUID, requested bool) (*entities.Chapter, error) {
	var chapter *entities.Chapter
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		course, err := ensureOwner(ctx, s.repo, userId, courseId)
		if err != nil {
			return err
		}
		chapter, err = s.repo.FindChapter(ctx, courseId, chapterId)
		if err != nil {
			return notFound(err, "chapter")
		}
		next, err := TransitionPublish(chapter.IsPublished, requested, ChapterCompleteness(chapter))
		if err != nil {
			return err
		}
		if next != chapter.IsPublished {
			if err := s.repo.UpdateChapterFields(ctx, chapter.ID, map[string]interface{}{"is_published": next}); err != nil {
				return err
			}
			chapter.IsPublished = next
		}
		if !next {
			return s.syncCoursePublished(ctx, course)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("chapter_id", chapterId.String()).
		Bool("is_published", chapter.IsPublished).
		Msg("chapter publish state changed")
	return chapter, nil
}
