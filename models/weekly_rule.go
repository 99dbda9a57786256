package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyRule is one recurring open-hours range for a weekday.
// Weekday is Monday=0 .. Sunday=6. A weekday may carry several
// ranges as long as they do not overlap (checked at write time).
type WeeklyRule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Weekday   int       `gorm:"not null"`
	StartTime string    `gorm:"type:varchar(5);not null"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null"` // "HH:MM"
	IsClosed  bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *WeeklyRule) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
