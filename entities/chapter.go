package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Chapter struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CourseId    uuid.UUID `json:"courseId" gorm:"type:uuid;not null;uniqueIndex:idx_chapters_course_position,priority:1"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	VideoUrl    *string   `json:"videoUrl" gorm:"type:text"`
	Position    int       `json:"position" gorm:"not null;uniqueIndex:idx_chapters_course_position,priority:2"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:false"`
	IsFree      bool      `json:"isFree" gorm:"not null;default:false"`
	MuxData     *MuxData  `json:"muxData,omitempty" gorm:"foreignKey:ChapterId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Chapter) TableName() string {
	return "chapters"
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
