package services

import (
	"salonbook-backend/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// bookingFixture generates four 15-minute slots on a Monday morning
// (09:00, 09:15, 09:30, 09:45) plus a customer to book them for.
type bookingFixture struct {
	db       *gorm.DB
	salon    *models.Salon
	customer *models.Customer
	booking  *BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	db := newTestDB(t)
	salon := createTestSalon(t, db, 15)
	createTestChair(t, db, salon.ID, "Chair 1")
	createTestRule(t, db, salon.ID, 0, "09:00", "10:00")

	schedule := NewScheduleService(db)
	created, err := schedule.GenerateSlots(salon.ID, monday, monday)
	require.NoError(t, err)
	require.Equal(t, 4, created)

	return &bookingFixture{
		db:       db,
		salon:    salon,
		customer: createTestCustomer(t, db, salon.ID, "+15550001111"),
		booking:  NewBookingService(db),
	}
}

func (f *bookingFixture) slot(t *testing.T, start string) *models.Slot {
	return findSlotByStart(t, f.db, f.salon.ID, monday, start)
}

func (f *bookingFixture) command(t *testing.T, start string, serviceIDs ...uuid.UUID) BookSlotCommand {
	return BookSlotCommand{
		SalonID:    f.salon.ID,
		SlotID:     f.slot(t, start).ID,
		CustomerID: f.customer.ID,
		ServiceIDs: serviceIDs,
	}
}

func TestBookSlot_FitsAndClearsRoundTrip(t *testing.T) {
	f := newBookingFixture(t)
	trim := createTestService(t, f.db, f.salon.ID, "Trim", 10)

	booked, err := f.booking.BookSlot(f.command(t, "09:00", trim.ID))
	require.NoError(t, err)

	assert.Equal(t, models.SlotStatusBooked, booked.Status)
	require.NotNil(t, booked.CustomerID)
	assert.Equal(t, f.customer.ID, *booked.CustomerID)
	assert.Equal(t, "09:15", booked.EndTime)
	require.Len(t, booked.Services, 1)
	assert.Equal(t, trim.ID, booked.Services[0].ID)

	cleared, err := f.booking.ClearSlot(f.salon.ID, booked.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SlotStatusFree, cleared.Status)
	assert.Nil(t, cleared.CustomerID)
	assert.Nil(t, cleared.StaffID)
	assert.Equal(t, "09:15", cleared.EndTime) // start + duration
	assert.EqualValues(t, 0, slotLinkCount(t, f.db, cleared.ID))
}

func TestBookSlot_DurationMismatch(t *testing.T) {
	f := newBookingFixture(t)
	cut := createTestService(t, f.db, f.salon.ID, "Cut", 25)
	color := createTestService(t, f.db, f.salon.ID, "Color", 15)

	_, err := f.booking.BookSlot(f.command(t, "09:00", cut.ID, color.ID))

	var mismatch *DurationMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 40, mismatch.RequiredMinutes)
	assert.Equal(t, 15, mismatch.AllocatedMinutes)

	// nothing was written
	slot := f.slot(t, "09:00")
	assert.Equal(t, models.SlotStatusFree, slot.Status)
	assert.Nil(t, slot.CustomerID)
	assert.EqualValues(t, 0, slotLinkCount(t, f.db, slot.ID))
}

func TestExtendSlot(t *testing.T) {
	f := newBookingFixture(t)
	cut := createTestService(t, f.db, f.salon.ID, "Cut", 25)
	color := createTestService(t, f.db, f.salon.ID, "Color", 15)

	extended, err := f.booking.ExtendSlot(f.command(t, "09:00", cut.ID, color.ID))
	require.NoError(t, err)

	assert.Equal(t, "09:00", extended.StartTime)
	assert.Equal(t, "09:40", extended.EndTime)
	assert.Equal(t, 15, extended.Duration) // generated duration untouched
	assert.Equal(t, models.SlotStatusBooked, extended.Status)
	assert.EqualValues(t, 2, slotLinkCount(t, f.db, extended.ID))

	// no neighbouring slot is consumed
	next := f.slot(t, "09:15")
	assert.Equal(t, models.SlotStatusFree, next.Status)
	assert.Nil(t, next.CustomerID)
}

func TestClearRestoresAfterExtend(t *testing.T) {
	f := newBookingFixture(t)
	cut := createTestService(t, f.db, f.salon.ID, "Cut", 40)

	extended, err := f.booking.ExtendSlot(f.command(t, "09:00", cut.ID))
	require.NoError(t, err)
	assert.Equal(t, "09:40", extended.EndTime)

	cleared, err := f.booking.ClearSlot(f.salon.ID, extended.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:15", cleared.EndTime) // back to start + duration
	assert.Equal(t, models.SlotStatusFree, cleared.Status)
}

func TestAbsorbConsecutive(t *testing.T) {
	f := newBookingFixture(t)
	cut := createTestService(t, f.db, f.salon.ID, "Cut", 25)
	color := createTestService(t, f.db, f.salon.ID, "Color", 20)

	// 45 minutes needed, lead covers 15: absorbs 09:15 and 09:30
	lead, err := f.booking.AbsorbConsecutive(f.command(t, "09:00", cut.ID, color.ID))
	require.NoError(t, err)

	assert.Equal(t, "09:00", lead.StartTime)
	assert.Equal(t, "09:45", lead.EndTime)
	assert.Equal(t, 15, lead.Duration)
	assert.Equal(t, models.SlotStatusBooked, lead.Status)
	assert.EqualValues(t, 2, slotLinkCount(t, f.db, lead.ID))

	for _, start := range []string{"09:15", "09:30"} {
		absorbed := f.slot(t, start)
		assert.Equal(t, models.SlotStatusBooked, absorbed.Status, start)
		require.NotNil(t, absorbed.CustomerID, start)
		assert.Equal(t, f.customer.ID, *absorbed.CustomerID, start)
		// the full service set fans out to every absorbed slot
		assert.EqualValues(t, 2, slotLinkCount(t, f.db, absorbed.ID), start)
	}

	// the slot after the run is untouched
	after := f.slot(t, "09:45")
	assert.Equal(t, models.SlotStatusFree, after.Status)
	assert.Nil(t, after.CustomerID)
}

func TestAbsorbConsecutive_InsufficientCapacity(t *testing.T) {
	f := newBookingFixture(t)
	long := createTestService(t, f.db, f.salon.ID, "Full Treatment", 60)

	// occupy 09:45 so only 30 contiguous free minutes follow the lead
	other := createTestCustomer(t, f.db, f.salon.ID, "+15550002222")
	blocked := f.slot(t, "09:45")
	require.NoError(t, f.db.Model(blocked).Updates(map[string]interface{}{
		"customer_id": other.ID,
		"status":      models.SlotStatusBooked,
	}).Error)

	_, err := f.booking.AbsorbConsecutive(f.command(t, "09:00", long.ID))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	// zero slots mutated
	for _, start := range []string{"09:00", "09:15", "09:30"} {
		slot := f.slot(t, start)
		assert.Equal(t, models.SlotStatusFree, slot.Status, start)
		assert.Nil(t, slot.CustomerID, start)
		assert.EqualValues(t, 0, slotLinkCount(t, f.db, slot.ID), start)
	}
}

func TestAbsorbConsecutive_GapEndsRun(t *testing.T) {
	f := newBookingFixture(t)
	long := createTestService(t, f.db, f.salon.ID, "Full Treatment", 45)

	// book out 09:30: free slots at 09:15 and 09:45 are separated by a gap,
	// so only 09:15 can join the run and 45 minutes cannot be covered
	other := createTestCustomer(t, f.db, f.salon.ID, "+15550002222")
	gap := f.slot(t, "09:30")
	require.NoError(t, f.db.Model(gap).Updates(map[string]interface{}{
		"customer_id": other.ID,
		"status":      models.SlotStatusBooked,
	}).Error)

	_, err := f.booking.AbsorbConsecutive(f.command(t, "09:00", long.ID))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	beyond := f.slot(t, "09:45")
	assert.Equal(t, models.SlotStatusFree, beyond.Status)
	assert.Nil(t, beyond.CustomerID)
}

func TestClearSlots_Bulk(t *testing.T) {
	f := newBookingFixture(t)
	trim := createTestService(t, f.db, f.salon.ID, "Trim", 10)

	first, err := f.booking.BookSlot(f.command(t, "09:00", trim.ID))
	require.NoError(t, err)
	second, err := f.booking.BookSlot(f.command(t, "09:30", trim.ID))
	require.NoError(t, err)

	cleared, err := f.booking.ClearSlots(f.salon.ID, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	for _, start := range []string{"09:00", "09:30"} {
		slot := f.slot(t, start)
		assert.Equal(t, models.SlotStatusFree, slot.Status, start)
		assert.Nil(t, slot.CustomerID, start)
		assert.EqualValues(t, 0, slotLinkCount(t, f.db, slot.ID), start)
	}
}

func TestDeleteSlots(t *testing.T) {
	f := newBookingFixture(t)

	ids := []uuid.UUID{f.slot(t, "09:00").ID, f.slot(t, "09:15").ID}
	deleted, err := f.booking.DeleteSlots(f.salon.ID, ids)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var remaining int64
	require.NoError(t, f.db.Model(&models.Slot{}).Where("salon_id = ?", f.salon.ID).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)
}

func TestBookSlot_UnknownService(t *testing.T) {
	f := newBookingFixture(t)

	var validation *ValidationError
	_, err := f.booking.BookSlot(f.command(t, "09:00", uuid.New()))
	assert.ErrorAs(t, err, &validation)

	_, err = f.booking.BookSlot(f.command(t, "09:00"))
	assert.ErrorAs(t, err, &validation)
}

func TestCheckDuration(t *testing.T) {
	f := newBookingFixture(t)
	cut := createTestService(t, f.db, f.salon.ID, "Cut", 25)

	required, allocated, err := f.booking.CheckDuration(f.salon.ID, f.slot(t, "09:00").ID, []uuid.UUID{cut.ID})
	require.NoError(t, err)
	assert.Equal(t, 25, required)
	assert.Equal(t, 15, allocated)
}
