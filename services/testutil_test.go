package services

import (
	"fmt"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Chair{},
		&models.WeeklyRule{},
		&models.DateOverride{},
		&models.Slot{},
		&models.SlotService{},
	))

	return db
}

func createTestSalon(t *testing.T, db *gorm.DB, slotLength int) *models.Salon {
	t.Helper()
	salon := &models.Salon{
		Name:        "Test Salon",
		SlotLength:  slotLength,
		ChairsCount: 5,
	}
	require.NoError(t, db.Create(salon).Error)
	return salon
}

func createTestChair(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string) *models.Chair {
	t.Helper()
	chair := &models.Chair{SalonID: salonID, Name: name, IsActive: true}
	require.NoError(t, db.Create(chair).Error)
	return chair
}

func createTestRule(t *testing.T, db *gorm.DB, salonID uuid.UUID, weekday int, start, end string) *models.WeeklyRule {
	t.Helper()
	rule := &models.WeeklyRule{SalonID: salonID, Weekday: weekday, StartTime: start, EndTime: end}
	require.NoError(t, db.Create(rule).Error)
	return rule
}

func createTestCustomer(t *testing.T, db *gorm.DB, salonID uuid.UUID, phone string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		SalonID:         salonID,
		CreatedByUserID: uuid.New(),
		Name:            "Test Customer",
		Phone:           phone,
		IsActive:        true,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createTestService(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string, duration int) *models.Service {
	t.Helper()
	service := &models.Service{
		SalonID:  salonID,
		Name:     name,
		Price:    20,
		Duration: duration,
		IsActive: true,
	}
	require.NoError(t, db.Create(service).Error)
	return service
}

func slotLinkCount(t *testing.T, db *gorm.DB, slotID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.SlotService{}).Where("slot_id = ?", slotID).Count(&count).Error)
	return count
}

func findSlotByStart(t *testing.T, db *gorm.DB, salonID uuid.UUID, date, start string) *models.Slot {
	t.Helper()
	var slot models.Slot
	require.NoError(t, db.Where("salon_id = ? AND date = ? AND start_time = ?", salonID, date, start).First(&slot).Error)
	return &slot
}
