package repository

import (
	"context"
	"course-studio/entities"
	"github.com/google/uuid"
)

func (r *repo) CreateAttachment(ctx context.Context, attachment *entities.Attachment) error {
	return r.conn(ctx).Create(attachment).Error
}

// DeleteAttachment removes the attachment only if it belongs to courseId and
// reports how many rows went away.
func (r *repo) DeleteAttachment(ctx context.Context, attachmentId, courseId uuid.UUID) (int64, error) {
	result := r.conn(ctx).Where("id = ? AND course_id = ?", attachmentId, courseId).Delete(&entities.Attachment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repo) DeleteAttachmentsByCourse(ctx context.Context, courseId uuid.UUID) error {
	return r.conn(ctx).Where("course_id = ?", courseId).Delete(&entities.Attachment{}).Error
}
