package services

import (
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookSlotCommand carries everything a booking edit needs. Controllers
// build it from the request; the service never reads ambient state.
type BookSlotCommand struct {
	SalonID    uuid.UUID
	SlotID     uuid.UUID
	CustomerID uuid.UUID
	StaffID    *uuid.UUID
	StartTime  string // optional edited times, "HH:MM"
	EndTime    string
	ServiceIDs []uuid.UUID
}

// BookingService books, extends, absorbs and clears slots. Every
// multi-step write runs inside a single transaction, so a failed step
// leaves no partial state behind.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// CheckDuration returns the total minutes the selected services need and
// the minutes the slot currently covers.
func (s *BookingService) CheckDuration(salonID, slotID uuid.UUID, serviceIDs []uuid.UUID) (required, allocated int, err error) {
	var slot models.Slot
	if err := s.db.Where("salon_id = ? AND id = ?", salonID, slotID).First(&slot).Error; err != nil {
		return 0, 0, err
	}
	required, err = s.requiredMinutes(s.db, salonID, serviceIDs)
	if err != nil {
		return 0, 0, err
	}
	allocated, err = spanMinutes(slot.StartTime, slot.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return required, allocated, nil
}

// BookSlot commits a booking whose services fit within the slot's span.
// When they do not fit, it returns a DurationMismatchError carrying both
// durations and writes nothing; the caller then resolves the shortfall
// with ExtendSlot or AbsorbConsecutive, or abandons the edit.
func (s *BookingService) BookSlot(cmd BookSlotCommand) (*models.Slot, error) {
	var booked models.Slot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slot, err := s.loadSlot(tx, cmd.SalonID, cmd.SlotID)
		if err != nil {
			return err
		}

		required, err := s.requiredMinutes(tx, cmd.SalonID, cmd.ServiceIDs)
		if err != nil {
			return err
		}

		startTime := slot.StartTime
		if cmd.StartTime != "" {
			startTime = cmd.StartTime
		}
		endTime := slot.EndTime
		if cmd.EndTime != "" {
			endTime = cmd.EndTime
		}
		allocated, err := spanMinutes(startTime, endTime)
		if err != nil {
			return err
		}
		if required > allocated {
			return &DurationMismatchError{RequiredMinutes: required, AllocatedMinutes: allocated}
		}

		updates := map[string]interface{}{
			"start_time":  startTime,
			"end_time":    endTime,
			"customer_id": cmd.CustomerID,
			"staff_id":    cmd.StaffID,
			"status":      models.SlotStatusBooked,
		}
		if err := tx.Model(slot).Updates(updates).Error; err != nil {
			return err
		}
		if err := s.replaceServiceLinks(tx, slot.ID, cmd.ServiceIDs); err != nil {
			return err
		}
		return tx.Preload("Services").First(&booked, "id = ?", slot.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &booked, nil
}

// ExtendSlot resolves a duration shortfall by pushing the slot's end time
// out to cover the full service total. No neighbouring slot is consumed,
// and the new end time is not checked against later rows, so it may come
// to cover a range still present as a separate free slot.
func (s *BookingService) ExtendSlot(cmd BookSlotCommand) (*models.Slot, error) {
	var extended models.Slot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slot, err := s.loadSlot(tx, cmd.SalonID, cmd.SlotID)
		if err != nil {
			return err
		}

		required, err := s.requiredMinutes(tx, cmd.SalonID, cmd.ServiceIDs)
		if err != nil {
			return err
		}

		startTime := slot.StartTime
		if cmd.StartTime != "" {
			startTime = cmd.StartTime
		}
		startMin, err := utils.ParseHHMM(startTime)
		if err != nil {
			return NewValidationError("invalid start time %q", startTime)
		}

		updates := map[string]interface{}{
			"start_time":  startTime,
			"end_time":    utils.FormatHHMM(startMin + required),
			"customer_id": cmd.CustomerID,
			"staff_id":    cmd.StaffID,
			"status":      models.SlotStatusBooked,
		}
		if err := tx.Model(slot).Updates(updates).Error; err != nil {
			return err
		}
		if err := s.replaceServiceLinks(tx, slot.ID, cmd.ServiceIDs); err != nil {
			return err
		}
		return tx.Preload("Services").First(&extended, "id = ?", slot.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &extended, nil
}

// AbsorbConsecutive resolves a duration shortfall by consuming the run of
// free slots that starts exactly at the lead slot's current end time.
// Every absorbed slot must touch the end of the run so far; the walk
// stops once enough minutes are collected, and a gap ends the run. If the
// contiguous capacity falls short, ErrInsufficientCapacity is returned
// and nothing is written.
//
// Absorbed slots take the lead's customer and staff, become booked, and
// carry the full selected service set alongside the lead. The lead's end
// time moves to the final absorbed slot's end.
func (s *BookingService) AbsorbConsecutive(cmd BookSlotCommand) (*models.Slot, error) {
	var lead models.Slot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slot, err := s.loadSlot(tx, cmd.SalonID, cmd.SlotID)
		if err != nil {
			return err
		}

		required, err := s.requiredMinutes(tx, cmd.SalonID, cmd.ServiceIDs)
		if err != nil {
			return err
		}

		allocated, err := spanMinutes(slot.StartTime, slot.EndTime)
		if err != nil {
			return err
		}
		if allocated < 0 {
			allocated = 0
		}
		needed := required - allocated

		staffID := cmd.StaffID
		if staffID == nil {
			staffID = slot.StaffID
		}

		runEnd := slot.EndTime
		var absorbed []models.Slot
		sum := 0

		if needed > 0 {
			query := tx.
				Where("salon_id = ? AND date = ? AND customer_id IS NULL AND id <> ?",
					cmd.SalonID, slot.Date, slot.ID).
				Order("start_time asc")
			if staffID != nil {
				query = query.Where("(staff_id IS NULL OR staff_id = ?)", *staffID)
			} else {
				query = query.Where("staff_id IS NULL")
			}

			var candidates []models.Slot
			if err := query.Find(&candidates).Error; err != nil {
				return err
			}

			for _, candidate := range candidates {
				if candidate.StartTime != runEnd {
					continue // only a slot touching the run so far can join it
				}
				absorbed = append(absorbed, candidate)
				sum += candidate.Duration
				runEnd = candidate.EndTime
				if sum >= needed {
					break
				}
			}

			if sum < needed {
				return ErrInsufficientCapacity
			}
		}

		if len(absorbed) > 0 {
			ids := make([]uuid.UUID, len(absorbed))
			for i, a := range absorbed {
				ids[i] = a.ID
			}

			updates := map[string]interface{}{
				"customer_id": cmd.CustomerID,
				"staff_id":    staffID,
				"status":      models.SlotStatusBooked,
			}
			if err := tx.Model(&models.Slot{}).Where("id IN ?", ids).Updates(updates).Error; err != nil {
				return err
			}

			// every absorbed slot carries the full service set
			for _, id := range ids {
				if err := s.replaceServiceLinks(tx, id, cmd.ServiceIDs); err != nil {
					return err
				}
			}
		}

		leadUpdates := map[string]interface{}{
			"customer_id": cmd.CustomerID,
			"staff_id":    staffID,
			"status":      models.SlotStatusBooked,
		}
		if len(absorbed) > 0 {
			leadUpdates["end_time"] = runEnd
		}
		if err := tx.Model(slot).Updates(leadUpdates).Error; err != nil {
			return err
		}
		if err := s.replaceServiceLinks(tx, slot.ID, cmd.ServiceIDs); err != nil {
			return err
		}

		config.Log.Info("absorbed consecutive slots",
			zap.String("leadSlotId", slot.ID.String()),
			zap.Int("absorbed", len(absorbed)),
			zap.Int("requiredMinutes", required),
		)

		return tx.Preload("Services").First(&lead, "id = ?", slot.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// ClearSlot restores a slot to its unbooked state: customer, staff and
// services are removed and the end time is recomputed from the slot's
// original generated duration. The restore is the second step because
// EndTime may have drifted from StartTime+Duration while booked.
func (s *BookingService) ClearSlot(salonID, slotID uuid.UUID) (*models.Slot, error) {
	var cleared models.Slot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slot, err := s.loadSlot(tx, salonID, slotID)
		if err != nil {
			return err
		}
		if err := clearOne(tx, slot); err != nil {
			return err
		}
		return tx.First(&cleared, "id = ?", slot.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &cleared, nil
}

// ClearSlots is the bulk variant of ClearSlot for a selected group.
func (s *BookingService) ClearSlots(salonID uuid.UUID, slotIDs []uuid.UUID) (int, error) {
	if len(slotIDs) == 0 {
		return 0, NewValidationError("no slots selected")
	}

	cleared := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var slots []models.Slot
		if err := tx.Where("salon_id = ? AND id IN ?", salonID, slotIDs).Find(&slots).Error; err != nil {
			return err
		}
		for i := range slots {
			if err := clearOne(tx, &slots[i]); err != nil {
				return err
			}
			cleared++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

// DeleteSlots removes a selected group of slots and their service links.
func (s *BookingService) DeleteSlots(salonID uuid.UUID, slotIDs []uuid.UUID) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, NewValidationError("no slots selected")
	}

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot_id IN ?", slotIDs).Delete(&models.SlotService{}).Error; err != nil {
			return err
		}
		result := tx.Where("salon_id = ? AND id IN ?", salonID, slotIDs).Delete(&models.Slot{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *BookingService) loadSlot(tx *gorm.DB, salonID, slotID uuid.UUID) (*models.Slot, error) {
	var slot models.Slot
	if err := tx.Where("salon_id = ? AND id = ?", salonID, slotID).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// requiredMinutes sums the durations of the selected salon services.
func (s *BookingService) requiredMinutes(tx *gorm.DB, salonID uuid.UUID, serviceIDs []uuid.UUID) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, NewValidationError("at least one service must be selected")
	}

	var selected []models.Service
	if err := tx.Where("salon_id = ? AND id IN ?", salonID, serviceIDs).Find(&selected).Error; err != nil {
		return 0, err
	}
	if len(selected) != len(serviceIDs) {
		return 0, NewValidationError("one or more selected services do not exist")
	}

	total := 0
	for _, service := range selected {
		total += service.Duration
	}
	return total, nil
}

// replaceServiceLinks rewrites a slot's service set.
func (s *BookingService) replaceServiceLinks(tx *gorm.DB, slotID uuid.UUID, serviceIDs []uuid.UUID) error {
	if err := tx.Where("slot_id = ?", slotID).Delete(&models.SlotService{}).Error; err != nil {
		return err
	}
	links := make([]models.SlotService, len(serviceIDs))
	for i, serviceID := range serviceIDs {
		links[i] = models.SlotService{SlotID: slotID, ServiceID: serviceID}
	}
	return tx.Create(&links).Error
}

func clearOne(tx *gorm.DB, slot *models.Slot) error {
	if err := tx.Where("slot_id = ?", slot.ID).Delete(&models.SlotService{}).Error; err != nil {
		return err
	}

	// step one: drop the booking fields
	if err := tx.Model(slot).Updates(map[string]interface{}{
		"customer_id": nil,
		"staff_id":    nil,
		"status":      models.SlotStatusFree,
	}).Error; err != nil {
		return err
	}

	// step two: reconcile the end time with the generated duration
	startMin, err := utils.ParseHHMM(slot.StartTime)
	if err != nil {
		return NewValidationError("slot has invalid start time %q", slot.StartTime)
	}
	return tx.Model(slot).Update("end_time", utils.FormatHHMM(startMin+slot.Duration)).Error
}

// spanMinutes returns end − start in minutes.
func spanMinutes(startTime, endTime string) (int, error) {
	startMin, err := utils.ParseHHMM(startTime)
	if err != nil {
		return 0, NewValidationError("invalid start time %q", startTime)
	}
	endMin, err := utils.ParseHHMM(endTime)
	if err != nil {
		return 0, NewValidationError("invalid end time %q", endTime)
	}
	return endMin - startMin, nil
}
