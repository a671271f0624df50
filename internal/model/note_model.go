package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Note is the remote collection row. Timestamps are stored as millisecond
// epochs to match the wire format the clients consume.
type Note struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title     string         `gorm:"type:varchar(255)"`
	Content   string         `gorm:"type:text"`
	FolderId  string         `gorm:"type:varchar(64);index"`
	Color     string         `gorm:"type:varchar(32)"`
	IsPinned  bool           `gorm:"index"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	Summary   string         `gorm:"type:text"`
	CreatedAt int64          `gorm:"autoCreateTime:milli"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli;index"`
}

func (Note) TableName() string {
	return "notes"
}
