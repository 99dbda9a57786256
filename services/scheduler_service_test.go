package services

import (
	"salonbook-backend/models"
	"salonbook-backend/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingWindow(t *testing.T) {
	db := newTestDB(t)
	schedule := NewScheduleService(db)

	now := time.Date(2025, 1, 6, 14, 30, 0, 0, time.UTC)

	start, end := schedule.UpcomingWindow(&models.Salon{AdvanceBookingDays: 14}, now)
	assert.Equal(t, "2025-01-06", start)
	assert.Equal(t, "2025-01-20", end)

	// unset advance window falls back to 30 days
	start, end = schedule.UpcomingWindow(&models.Salon{}, now)
	assert.Equal(t, "2025-01-06", start)
	assert.Equal(t, "2025-02-05", end)
}

func TestGenerateUpcomingSlots(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 60)
	salon.AdvanceBookingDays = 2
	require.NoError(t, db.Save(salon).Error)
	createTestChair(t, db, salon.ID, "Chair 1")

	// open every day so the run date does not matter
	for weekday := 0; weekday < 7; weekday++ {
		createTestRule(t, db, salon.ID, weekday, "09:00", "11:00")
	}

	// a salon without chairs is skipped, not an error
	empty := createTestSalon(t, db, 30)

	maintenance := NewMaintenanceService(db)
	maintenance.GenerateUpcomingSlots()

	var count int64
	require.NoError(t, db.Model(&models.Slot{}).Where("salon_id = ?", salon.ID).Count(&count).Error)
	assert.EqualValues(t, 6, count) // 2 slots per day, 3 days in the window

	var emptyCount int64
	require.NoError(t, db.Model(&models.Slot{}).Where("salon_id = ?", empty.ID).Count(&emptyCount).Error)
	assert.EqualValues(t, 0, emptyCount)

	var today int64
	date := time.Now().Format(utils.DateLayout)
	require.NoError(t, db.Model(&models.Slot{}).
		Where("salon_id = ? AND date = ?", salon.ID, date).Count(&today).Error)
	assert.EqualValues(t, 2, today)
}
