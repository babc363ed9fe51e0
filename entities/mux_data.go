package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MuxData points a chapter at its hosted video asset.
type MuxData struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ChapterId  uuid.UUID `json:"chapterId" gorm:"type:uuid;not null;uniqueIndex:unique_mux_data_chapter_id"`
	AssetId    string    `json:"assetId" gorm:"type:varchar(255);not null"`
	PlaybackId *string   `json:"playbackId" gorm:"type:varchar(255)"`
}

func (MuxData) TableName() string {
	return "mux_data"
}

func (m *MuxData) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
