package services

import (
	"salonbook-backend/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-01-06 is a Monday (weekday index 0).
const monday = "2025-01-06"

func TestResolvePeriods_WeeklyRules(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestRule(t, db, salon.ID, 0, "09:00", "12:00")
	createTestRule(t, db, salon.ID, 0, "13:00", "18:00")
	createTestRule(t, db, salon.ID, 1, "10:00", "16:00") // different weekday

	schedule := NewScheduleService(db)
	periods, err := schedule.ResolvePeriods(salon.ID, monday)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Period{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "18:00"},
	}, periods)
}

func TestResolvePeriods_ClosedRulesIgnored(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	rule := &models.WeeklyRule{SalonID: salon.ID, Weekday: 0, StartTime: "09:00", EndTime: "18:00", IsClosed: true}
	require.NoError(t, db.Create(rule).Error)

	schedule := NewScheduleService(db)
	periods, err := schedule.ResolvePeriods(salon.ID, monday)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestResolvePeriods_OverrideReplacesRules(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestRule(t, db, salon.ID, 0, "09:00", "18:00")
	override := &models.DateOverride{SalonID: salon.ID, Date: monday, StartTime: "11:00", EndTime: "14:00"}
	require.NoError(t, db.Create(override).Error)

	schedule := NewScheduleService(db)
	periods, err := schedule.ResolvePeriods(salon.ID, monday)
	require.NoError(t, err)

	assert.Equal(t, []Period{{Start: "11:00", End: "14:00"}}, periods)
}

func TestResolvePeriods_ClosedOverrideMeansNoPeriods(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestRule(t, db, salon.ID, 0, "09:00", "18:00")
	override := &models.DateOverride{SalonID: salon.ID, Date: monday, IsClosed: true}
	require.NoError(t, db.Create(override).Error)

	schedule := NewScheduleService(db)
	periods, err := schedule.ResolvePeriods(salon.ID, monday)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestGenerateSlots_CountAndBounds(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestChair(t, db, salon.ID, "Chair 1")
	// 70 minutes of open time: 4 full slots, trailing 10 minutes dropped
	createTestRule(t, db, salon.ID, 0, "09:00", "10:10")

	schedule := NewScheduleService(db)
	created, err := schedule.GenerateSlots(salon.ID, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	var slots []models.Slot
	require.NoError(t, db.Where("salon_id = ?", salon.ID).Order("start_time asc").Find(&slots).Error)
	require.Len(t, slots, 4)

	starts := make([]string, len(slots))
	for i, slot := range slots {
		starts[i] = slot.StartTime
		assert.Equal(t, 15, slot.Duration)
		assert.Equal(t, models.SlotStatusFree, slot.Status)
		assert.NotNil(t, slot.ChairID)
		assert.Nil(t, slot.CustomerID)
		assert.LessOrEqual(t, slot.EndTime, "10:10")
	}
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, starts)
	assert.Equal(t, "10:00", slots[3].EndTime)
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 30)
	createTestChair(t, db, salon.ID, "Chair 1")
	createTestRule(t, db, salon.ID, 0, "09:00", "12:00")

	schedule := NewScheduleService(db)
	first, err := schedule.GenerateSlots(salon.ID, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 6, first)

	second, err := schedule.GenerateSlots(salon.ID, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, second)

	var count int64
	require.NoError(t, db.Model(&models.Slot{}).Where("salon_id = ?", salon.ID).Count(&count).Error)
	assert.EqualValues(t, 6, count)
}

func TestGenerateSlots_MultipleChairsAndDays(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 60)
	createTestChair(t, db, salon.ID, "Chair 1")
	createTestChair(t, db, salon.ID, "Chair 2")
	inactive := &models.Chair{SalonID: salon.ID, Name: "Broken", IsActive: false}
	require.NoError(t, db.Create(inactive).Error)

	createTestRule(t, db, salon.ID, 0, "09:00", "12:00") // Monday: 3 slots per chair
	createTestRule(t, db, salon.ID, 1, "09:00", "11:00") // Tuesday: 2 slots per chair

	schedule := NewScheduleService(db)
	created, err := schedule.GenerateSlots(salon.ID, monday, "2025-01-07")
	require.NoError(t, err)
	assert.Equal(t, 10, created) // (3 + 2) * 2 chairs

	var onInactive int64
	require.NoError(t, db.Model(&models.Slot{}).Where("chair_id = ?", inactive.ID).Count(&onInactive).Error)
	assert.EqualValues(t, 0, onInactive)
}

func TestGenerateSlots_ClosedOverrideSkipsDate(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 30)
	createTestChair(t, db, salon.ID, "Chair 1")
	createTestRule(t, db, salon.ID, 0, "09:00", "12:00")
	createTestRule(t, db, salon.ID, 1, "09:00", "12:00")
	override := &models.DateOverride{SalonID: salon.ID, Date: monday, IsClosed: true}
	require.NoError(t, db.Create(override).Error)

	schedule := NewScheduleService(db)
	created, err := schedule.GenerateSlots(salon.ID, monday, "2025-01-07")
	require.NoError(t, err)
	assert.Equal(t, 6, created) // Tuesday only

	var onMonday int64
	require.NoError(t, db.Model(&models.Slot{}).Where("date = ?", monday).Count(&onMonday).Error)
	assert.EqualValues(t, 0, onMonday)
}

func TestGenerateSlots_NoActiveChairs(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestRule(t, db, salon.ID, 0, "09:00", "12:00")

	schedule := NewScheduleService(db)
	created, err := schedule.GenerateSlots(salon.ID, monday, monday)
	assert.ErrorIs(t, err, ErrNoActiveChairs)
	assert.Zero(t, created)
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestChair(t, db, salon.ID, "Chair 1")

	schedule := NewScheduleService(db)

	var validation *ValidationError
	_, err := schedule.GenerateSlots(salon.ID, "06-01-2025", monday)
	assert.ErrorAs(t, err, &validation)

	_, err = schedule.GenerateSlots(salon.ID, "2025-01-07", monday)
	assert.ErrorAs(t, err, &validation)
}

func TestValidateRuleOverlap(t *testing.T) {
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	existing := createTestRule(t, db, salon.ID, 2, "10:30", "11:30")

	schedule := NewScheduleService(db)

	cases := []struct {
		name    string
		start   string
		end     string
		exclude uuid.UUID
		wantErr error
	}{
		{name: "overlapping range rejected", start: "10:00", end: "11:00", wantErr: ErrRuleOverlap},
		{name: "contained range rejected", start: "10:45", end: "11:00", wantErr: ErrRuleOverlap},
		{name: "touching range allowed", start: "09:00", end: "10:30"},
		{name: "disjoint range allowed", start: "12:00", end: "14:00"},
		{name: "editing the rule itself allowed", start: "10:00", end: "11:00", exclude: existing.ID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schedule.ValidateRuleOverlap(salon.ID, 2, tc.start, tc.end, tc.exclude)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// different weekday never conflicts
	assert.NoError(t, schedule.ValidateRuleOverlap(salon.ID, 3, "10:00", "11:00", uuid.Nil))

	// inverted range is a validation error
	var validation *ValidationError
	err := schedule.ValidateRuleOverlap(salon.ID, 2, "14:00", "13:00", uuid.Nil)
	assert.ErrorAs(t, err, &validation)
}
