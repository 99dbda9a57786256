package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chair struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"not null"`
	Color    string    `gorm:"type:varchar(20)"`
	IsActive bool      `gorm:"default:true"` // only active chairs get slots

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Chair) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
