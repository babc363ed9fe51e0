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
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"strings"
)

type CourseService interface {
	Create(ctx context.Context, userId string, req dto.CreateCourseRequest) (*entities.Course, error)
	List(ctx context.Context, userId string) ([]*entities.Course, error)
	Get(ctx context.Context, userId string, courseId uuid.UUID) (*dto.CourseDetail, error)
	Update(ctx context.Context, userId string, courseId uuid.UUID, req dto.UpdateCourseRequest) (*entities.Course, error)
	Delete(ctx context.Context, userId string, courseId uuid.UUID) error
	Publish(ctx context.Context, userId string, courseId uuid.UUID) (*entities.Course, error)
	Unpublish(ctx context.Context, userId string, courseId uuid.UUID) (*entities.Course, error)
	Search(ctx context.Context, query dto.SearchCoursesQuery) ([]dto.CatalogCourse, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
}

type courseService struct {
	repo   repository.Repository
	videos *videoAssets
	cache  cache.CourseCache
}

func NewCourseService(repo repository.Repository, videos mux.Client, queue CleanupQueue, courseCache cache.CourseCache) CourseService {
	if courseCache == nil {
		courseCache = cache.Nop{}
	}
	return &courseService{
		repo:   repo,
		videos: &videoAssets{client: videos, queue: queue},
		cache:  courseCache,
	}
}

func (s *courseService) Create(ctx context.Context, userId string, req dto.CreateCourseRequest) (*entities.Course, error) {
	if userId == "" {
		return nil, ErrUnauthorized
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newValidationError("title", "title is required")
	}

	course := &entities.Course{
		OwnerUserId: userId,
		Title:       title,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("course_id", course.ID.String()).Msg("course created")
	return course, nil
}

func (s *courseService) List(ctx context.Context, userId string) ([]*entities.Course, error) {
	if userId == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListCoursesByOwner(ctx, userId)
}

func (s *courseService) Get(ctx context.Context, userId string, courseId uuid.UUID) (*dto.CourseDetail, error) {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
	}
	if detail, ok := s.cache.GetDetail(ctx, courseId); ok {
		return detail, nil
	}

	course, err := s.repo.FindCourseWithContent(ctx, courseId)
	if err != nil {
		return nil, notFound(err, "course")
	}
	var published int64
	for _, chapter := range course.Chapters {
		if chapter.IsPublished {
			published++
		}
	}
	detail := &dto.CourseDetail{
		Course:     course,
		Completion: CourseCompleteness(course, published).Completion(),
	}
	s.cache.SetDetail(ctx, detail)
	return detail, nil
}

func (s *courseService) Update(ctx context.Context, userId string, courseId uuid.UUID, req dto.UpdateCourseRequest) (*entities.Course, error) {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return nil, err
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
	if req.ImageUrl != nil {
		fields["image_url"] = nullable(*req.ImageUrl)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, newValidationError("price", "price must not be negative")
		}
		fields["price"] = *req.Price
	}
	if req.CategoryId != nil {
		categoryId, err := s.resolveCategory(ctx, *req.CategoryId)
		if err != nil {
			return nil, err
		}
		if categoryId == nil {
			fields["category_id"] = nil
		} else {
			fields["category_id"] = *categoryId
		}
	}

	if err := s.repo.UpdateCourseFields(ctx, courseId, fields); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, courseId)
	return s.repo.FindOwnedCourse(ctx, courseId, userId)
}

// resolveCategory returns nil for an empty id, which clears the category.
func (s *courseService) resolveCategory(ctx context.Context, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, newValidationError("categoryId", "invalid category id")
	}
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("categoryId", "category does not exist")
		}
		return nil, err
	}
	return &id, nil
}

// Delete releases every chapter video first, then removes the course and its
// dependents in one transaction. Remote failures are queued, not fatal.
func (s *courseService) Delete(ctx context.Context, userId string, courseId uuid.UUID) error {
	if _, err := ensureOwner(ctx, s.repo, userId, courseId); err != nil {
		return err
	}
	chapters, err := s.repo.FindChaptersByCourse(ctx, courseId)
	if err != nil {
		return err
	}
	for _, chapter := range chapters {
		if chapter.MuxData != nil {
			s.videos.release(ctx, chapter.ID, chapter.MuxData.AssetId, constant.CleanupReasonCourseDeleted)
		}
	}

	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteMuxDataByCourse(ctx, courseId); err != nil {
			return err
		}
		if err := s.repo.DeleteChaptersByCourse(ctx, courseId); err != nil {
			return err
		}
		if err := s.repo.DeleteAttachmentsByCourse(ctx, courseId); err != nil {
			return err
		}
		return s.repo.DeleteCourse(ctx, courseId)
	})
	if err != nil {
		return notFound(err, "course")
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Int("chapters", len(chapters)).
		Msg("course deleted")
	return nil
}

func (s *courseService) Publish(ctx context.Context, userId string, courseId uuid.UUID) (*entities.Course, error) {
	return s.setPublished(ctx, userId, courseId, true)
}

func (s *courseService) Unpublish(ctx context.Context, userId string, courseId uuid.UUID) (*entities.Course, error) {
	return s.setPublished(ctx, userId, courseId, false)
}

func (s *courseService) setPublished(ctx context.Context, userId string, courseId uuid.UUID, requested bool) (*entities.Course, error) {
	var course *entities.Course
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		var err error
		course, err = ensureOwner(ctx, s.repo, userId, courseId)
		if err != nil {
			return err
		}
		published, err := s.repo.CountPublishedChapters(ctx, courseId)
		if err != nil {
			return err
		}
		next, err := TransitionPublish(course.IsPublished, requested, CourseCompleteness(course, published))
		if err != nil {
			return err
		}
		if next != course.IsPublished {
			if err := s.repo.SetCoursePublished(ctx, courseId, next); err != nil {
				return err
			}
		}
		course, err = s.repo.FindOwnedCourse(ctx, courseId, userId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, courseId)
	zerolog.Ctx(ctx).Info().
		Str("course_id", courseId.String()).
		Bool("is_published", course.IsPublished).
		Msg("course publish state changed")
	return course, nil
}

func (s *courseService) Search(ctx context.Context, query dto.SearchCoursesQuery) ([]dto.CatalogCourse, error) {
	query.Title = strings.TrimSpace(query.Title)
	query.CategoryId = strings.TrimSpace(query.CategoryId)
	if result, ok := s.cache.GetSearch(ctx, query); ok {
		return result, nil
	}

	var categoryId *uuid.UUID
	if query.CategoryId != "" {
		id, err := uuid.Parse(query.CategoryId)
		if err != nil {
			return nil, newValidationError("categoryId", "invalid category id")
		}
		categoryId = &id
	}

	courses, err := s.repo.SearchPublishedCourses(ctx, query.Title, categoryId)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	counts, err := s.repo.CountPublishedChaptersByCourses(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CatalogCourse, 0, len(courses))
	for _, c := range courses {
		result = append(result, dto.CatalogCourse{
			Course:            *c,
			PublishedChapters: counts[c.ID],
		})
	}
	s.cache.SetSearch(ctx, query, result)
	return result, nil
}

func (s *courseService) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return s.repo.ListCategories(ctx)
}

func nullable(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
