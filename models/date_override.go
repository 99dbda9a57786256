package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateOverride replaces a date's weekly rules entirely. At most one
// override per (salon, date); IsClosed means zero open periods that day.
type DateOverride struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_salon_date,priority:1;not null"`
	Date      string    `gorm:"type:varchar(10);uniqueIndex:idx_salon_date,priority:2;not null"` // "YYYY-MM-DD"
	StartTime string    `gorm:"type:varchar(5)"`
	EndTime   string    `gorm:"type:varchar(5)"`
	IsClosed  bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *DateOverride) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
