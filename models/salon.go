package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string

	SlotLength         int   `gorm:"default:15"` // minutes, generation unit
	ChairsCount        int   `gorm:"default:1"`  // capacity ceiling for chairs
	AdvanceBookingDays int   `gorm:"default:30"`
	CancellationHours  int   `gorm:"default:24"`
	Settings           JSONB `gorm:"type:jsonb;default:'{}'"`

	Users         []User         `gorm:"foreignKey:SalonID"`
	Customers     []Customer     `gorm:"foreignKey:SalonID"`
	Services      []Service      `gorm:"foreignKey:SalonID"`
	Chairs        []Chair        `gorm:"foreignKey:SalonID"`
	WeeklyRules   []WeeklyRule   `gorm:"foreignKey:SalonID"`
	DateOverrides []DateOverride `gorm:"foreignKey:SalonID"`
	Slots         []Slot         `gorm:"foreignKey:SalonID"`
}

// Initialize UUID before creating
func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Custom JSONB type for salon settings
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("type assertion for JSONB failed")
	}
}
