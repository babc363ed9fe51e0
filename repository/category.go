package repository

import (
	"context"
	"course-studio/entities"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (r *repo) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	err := r.conn(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) FindCategory(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	category := &entities.Category{}
	err := r.conn(ctx).First(category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return category, nil
}

// CreateCategories inserts the names that do not exist yet.
func (r *repo) CreateCategories(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	categories := make([]entities.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, entities.Category{Name: name})
	}
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error
}
