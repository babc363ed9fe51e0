package repository

import (
	"context"
	"course-studio/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

func (r *repo) CreateCourse(ctx context.Context, course *entities.Course) error {
	return r.conn(ctx).Create(course).Error
}

func (r *repo) FindOwnedCourse(ctx context.Context, courseId uuid.UUID, userId string) (*entities.Course, error) {
	course := &entities.Course{}
	err := r.conn(ctx).First(course, "id = ? AND owner_user_id = ?", courseId, userId).Error
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (r *repo) FindCourseWithContent(ctx context.Context, courseId uuid.UUID) (*entities.Course, error) {
	course := &entities.Course{}
	err := r.conn(ctx).
		Preload("Category").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(course, "id = ?", courseId).Error
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (r *repo) ListCoursesByOwner(ctx context.Context, userId string) ([]*entities.Course, error) {
	var courses []*entities.Course
	err := r.conn(ctx).Where("owner_user_id = ?", userId).Order("created_at DESC").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repo) SearchPublishedCourses(ctx context.Context, title string, categoryId *uuid.UUID) ([]*entities.Course, error) {
	var courses []*entities.Course
	query := r.conn(ctx).Preload("Category").Where("is_published = ?", true)
	if title != "" {
		query = query.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, "%"+likeEscaper.Replace(title)+"%")
	}
	if categoryId != nil {
		query = query.Where("category_id = ?", *categoryId)
	}
	err := query.Order("created_at DESC").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) UpdateCourseFields(ctx context.Context, courseId uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&entities.Course{}).Where("id = ?", courseId).Updates(fields).Error
}

func (r *repo) SetCoursePublished(ctx context.Context, courseId uuid.UUID, published bool) error {
	return r.conn(ctx).Model(&entities.Course{}).Where("id = ?", courseId).Update("is_published", published).Error
}

// BumpCourseVersion increments the optimistic concurrency token. When expected
// is set the bump only happens if it still matches.
func (r *repo) BumpCourseVersion(ctx context.Context, courseId uuid.UUID, expected *int) (int, error) {
	query := r.conn(ctx).Model(&entities.Course{}).Where("id = ?", courseId)
	if expected != nil {
		query = query.Where("version = ?", *expected)
	}
	result := query.Update("version", gorm.Expr("version + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		if expected != nil {
			return 0, ErrVersionMismatch
		}
		return 0, gorm.ErrRecordNotFound
	}

	var version int
	err := r.conn(ctx).Model(&entities.Course{}).Where("id = ?", courseId).Pluck("version", &version).Error
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (r *repo) DeleteCourse(ctx context.Context, courseId uuid.UUID) error {
	result := r.conn(ctx).Delete(&entities.Course{}, "id = ?", courseId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
