package repository

import (
	"context"
	"course-studio/entities"
	"github.com/google/uuid"
)

func (r *repo) FindMuxDataByChapter(ctx context.Context, chapterId uuid.UUID) (*entities.MuxData, error) {
	muxData := &entities.MuxData{}
	err := r.conn(ctx).First(muxData, "chapter_id = ?", chapterId).Error
	if err != nil {
		return nil, err
	}
	return muxData, nil
}

func (r *repo) CreateMuxData(ctx context.Context, muxData *entities.MuxData) error {
	return r.conn(ctx).Create(muxData).Error
}

func (r *repo) DeleteMuxData(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entities.MuxData{}, "id = ?", id).Error
}

func (r *repo) DeleteMuxDataByCourse(ctx context.Context, courseId uuid.UUID) error {
	chapterIds := r.conn(ctx).Model(&entities.Chapter{}).Select("id").Where("course_id = ?", courseId)
	return r.conn(ctx).Where("chapter_id IN (?)", chapterIds).Delete(&entities.MuxData{}).Error
}
