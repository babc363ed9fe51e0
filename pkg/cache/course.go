package cache

import (
	"context"
	"course-studio/dto"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"strings"
	"time"
)

const (
	detailTTL = time.Hour
	searchTTL = time.Minute
)

// CourseCache keeps owner course detail and catalog search results in Redis.
// Cache failures are logged and treated as misses.
type CourseCache interface {
	GetDetail(ctx context.Context, courseId uuid.UUID) (*dto.CourseDetail, bool)
	SetDetail(ctx context.Context, detail *dto.CourseDetail)
	Invalidate(ctx context.Context, courseId uuid.UUID)
	GetSearch(ctx context.Context, query dto.SearchCoursesQuery) ([]dto.CatalogCourse, bool)
	SetSearch(ctx context.Context, query dto.SearchCoursesQuery, result []dto.CatalogCourse)
}

type redisCourseCache struct {
	rdb *redis.Client
}

func NewCourseCache(rdb *redis.Client) CourseCache {
	return &redisCourseCache{rdb: rdb}
}

func detailKey(courseId uuid.UUID) string {
	return "course:detail:" + courseId.String()
}

func searchKey(query dto.SearchCoursesQuery) string {
	return fmt.Sprintf("courses:search:%s:%s", strings.ToLower(query.Title), query.CategoryId)
}

func (c *redisCourseCache) GetDetail(ctx context.Context, courseId uuid.UUID) (*dto.CourseDetail, bool) {
	val, err := c.rdb.Get(ctx, detailKey(courseId)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("course_id", courseId.String()).Msg("failed to read course cache")
		}
		return nil, false
	}
	var detail dto.CourseDetail
	if err := json.Unmarshal(val, &detail); err != nil {
		return nil, false
	}
	return &detail, true
}

func (c *redisCourseCache) SetDetail(ctx context.Context, detail *dto.CourseDetail) {
	data, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, detailKey(detail.Course.ID), data, detailTTL).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("course_id", detail.Course.ID.String()).Msg("failed to write course cache")
	}
}

func (c *redisCourseCache) Invalidate(ctx context.Context, courseId uuid.UUID) {
	if err := c.rdb.Del(ctx, detailKey(courseId)).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("course_id", courseId.String()).Msg("failed to invalidate course cache")
	}
}

func (c *redisCourseCache) GetSearch(ctx context.Context, query dto.SearchCoursesQuery) ([]dto.CatalogCourse, bool) {
	val, err := c.rdb.Get(ctx, searchKey(query)).Bytes()
	if err != nil {
		return nil, false
	}
	var result []dto.CatalogCourse
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false
	}
	return result, true
}

// SetSearch stores catalog results briefly; publish changes are not pushed to
// search keys, they expire instead.
func (c *redisCourseCache) SetSearch(ctx context.Context, query dto.SearchCoursesQuery, result []dto.CatalogCourse) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, searchKey(query), data, searchTTL).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to write search cache")
	}
}

// Nop is used when Redis is not configured.
type Nop struct{}

func (Nop) GetDetail(context.Context, uuid.UUID) (*dto.CourseDetail, bool) { return nil, false }
func (Nop) SetDetail(context.Context, *dto.CourseDetail)                   {}
func (Nop) Invalidate(context.Context, uuid.UUID)                          {}
func (Nop) GetSearch(context.Context, dto.SearchCoursesQuery) ([]dto.CatalogCourse, bool) {
	return nil, false
}
func (Nop) SetSearch(context.Context, dto.SearchCoursesQuery, []dto.CatalogCourse) {}
