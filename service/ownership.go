package service

import (
	"context"
	"course-studio/entities"
	"course-studio/repository"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ensureOwner loads the course only if userId owns it. It is evaluated on every
// call, inside the caller's transaction when ctx carries one.
func ensureOwner(ctx context.Context, repo repository.Repository, userId string, courseId uuid.UUID) (*entities.Course, error) {
	if userId == "" {
		return nil, ErrUnauthorized
	}
	course, err := repo.FindOwnedCourse(ctx, courseId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return course, nil
}
