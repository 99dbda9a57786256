package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking status values for a slot. A freshly generated or cleared
// slot is SlotStatusFree with no customer attached.
const (
	SlotStatusFree      = "free"
	SlotStatusBooked    = "booked"
	SlotStatusCompleted = "completed"
	SlotStatusCancelled = "cancelled"
)

// Slot is the atomic bookable unit for one chair at one time of day.
//
// Duration is the generated slot length and stays fixed for the life of
// the row; EndTime may drift past StartTime+Duration while a booking is
// extended or has absorbed neighbouring slots. The two are reconciled
// (EndTime == StartTime + Duration) whenever the slot is cleared.
type Slot struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_slot_identity,priority:1;not null"`

	Date      string `gorm:"type:varchar(10);uniqueIndex:idx_slot_identity,priority:2;index;not null"` // "YYYY-MM-DD"
	StartTime string `gorm:"type:varchar(5);uniqueIndex:idx_slot_identity,priority:3;not null"`        // "HH:MM"
	EndTime   string `gorm:"type:varchar(5);not null"`
	Duration  int    `gorm:"not null"` // minutes, the generated length

	ChairID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_slot_identity,priority:4;index"`
	StaffID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"` // nil means free

	Status string `gorm:"type:varchar(20);default:'free'"`

	Chair    *Chair    `gorm:"foreignKey:ChairID"`
	Staff    *User     `gorm:"foreignKey:StaffID"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Services []Service `gorm:"many2many:slot_services"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Slot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// SlotService is the slot/service join row. Booking operations insert
// and delete these in bulk rather than through the association API.
type SlotService struct {
	SlotID    uuid.UUID `gorm:"type:uuid;primary_key"`
	ServiceID uuid.UUID `gorm:"type:uuid;primary_key"`
}

func (SlotService) TableName() string {
	return "slot_services"
}
