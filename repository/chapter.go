package repository

import (
	"context"
	"course-studio/dto"
	"course-studio/entities"
	"database/sql"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *repo) CreateChapter(ctx context.Context, chapter *entities.Chapter) error {
	err := r.conn(ctx).Create(chapter).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPositionTaken
	}
	return err
}

func (r *repo) NextChapterPosition(ctx context.Context, courseId uuid.UUID) (int, error) {
	var last sql.NullInt64
	err := r.conn(ctx).Model(&entities.Chapter{}).
		Where("course_id = ?", courseId).
		Select("MAX(position)").
		Row().
		Scan(&last)
	if err != nil {
		return 0, err
	}
	if !last.Valid {
		return 0, nil
	}
	return int(last.Int64) + 1, nil
}

func (r *repo) FindChapter(ctx context.Context, courseId, chapterId uuid.UUID) (*entities.Chapter, error) {
	chapter := &entities.Chapter{}
	err := r.conn(ctx).Preload("MuxData").First(chapter, "id = ? AND course_id = ?", chapterId, courseId).Error
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func (r *repo) FindChaptersByCourse(ctx context.Context, courseId uuid.UUID) ([]*entities.Chapter, error) {
	var chapters []*entities.Chapter
	err := r.conn(ctx).Preload("MuxData").Where("course_id = ?", courseId).Order("position ASC").Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *repo) UpdateChapterFields(ctx context.Context, chapterId uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.conn(ctx).Model(&entities.Chapter{}).Where("id = ?", chapterId).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateChapterPositions rewrites positions in two passes: every listed chapter
// is first parked on a unique negative slot, then moved to its target, so the
// (course_id, position) unique index never sees a transient duplicate. Callers
// must run it inside Transaction for the batch to be atomic.
func (r *repo) UpdateChapterPositions(ctx context.Context, courseId uuid.UUID, updates []dto.ChapterPosition) error {
	for i, update := range updates {
		if err := r.setPosition(ctx, courseId, update.ID, -(i + 1)); err != nil {
			return err
		}
	}
	for _, update := range updates {
		if update.Position == nil {
			return gorm.ErrInvalidValue
		}
		if err := r.setPosition(ctx, courseId, update.ID, *update.Position); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) setPosition(ctx context.Context, courseId, chapterId uuid.UUID, position int) error {
	result := r.conn(ctx).Model(&entities.Chapter{}).
		Where("id = ? AND course_id = ?", chapterId, courseId).
		Update("position", position)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrPositionTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) CountPublishedChapters(ctx context.Context, courseId uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entities.Chapter{}).
		Where("course_id = ? AND is_published = ?", courseId, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) CountPublishedChaptersByCourses(ctx context.Context, courseIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(courseIds))
	if len(courseIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseId uuid.UUID
		Total    int64
	}
	err := r.conn(ctx).Model(&entities.Chapter{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ? AND is_published = ?", courseIds, true).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseId] = row.Total
	}
	return counts, nil
}

func (r *repo) DeleteChapter(ctx context.Context, chapterId uuid.UUID) error {
	result := r.conn(ctx).Delete(&entities.Chapter{}, "id = ?", chapterId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) DeleteChaptersByCourse(ctx context.Context, courseId uuid.UUID) error {
	return r.conn(ctx).Where("course_id = ?", courseId).Delete(&entities.Chapter{}).Error
}
