package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Course struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	OwnerUserId string       `json:"ownerUserId" gorm:"type:varchar(255);not null;index:idx_courses_owner_user_id"`
	Title       string       `json:"title" gorm:"type:text;not null"`
	Description *string      `json:"description" gorm:"type:text"`
	ImageUrl    *string      `json:"imageUrl" gorm:"type:text"`
	Price       *float64     `json:"price" gorm:"type:numeric(10,2)"`
	IsPublished bool         `json:"isPublished" gorm:"not null;default:false;index:idx_courses_is_published"`
	CategoryId  *uuid.UUID   `json:"categoryId" gorm:"type:uuid;index:idx_courses_category_id"`
	Version     int          `json:"version" gorm:"not null;default:1"`
	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryId"`
	Chapters    []Chapter    `json:"chapters,omitempty" gorm:"foreignKey:CourseId"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:CourseId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
