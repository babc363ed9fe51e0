package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:unique_category_name"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// All returns every model managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Course{},
		&Chapter{},
		&MuxData{},
		&Attachment{},
	}
}
