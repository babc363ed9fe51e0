package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Attachment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CourseId  uuid.UUID `json:"courseId" gorm:"type:uuid;not null;index:idx_attachments_course_id"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Url       string    `json:"url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
