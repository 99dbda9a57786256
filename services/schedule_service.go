package services

import (
	"errors"
	"fmt"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Period is one contiguous open-hours interval for a date.
type Period struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// ScheduleService resolves open hours and materializes bookable slots.
type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// ResolvePeriods returns the open periods for a salon on a calendar date.
//
// A date override wins over the weekly rules: closed means no periods at
// all, open means the override's single range. Without an override the
// non-closed weekly rules for that weekday apply as-is (ranges are kept
// non-overlapping at write time, so no merging is needed here).
func (s *ScheduleService) ResolvePeriods(salonID uuid.UUID, date string) ([]Period, error) {
	var override models.DateOverride
	err := s.db.Where("salon_id = ? AND date = ?", salonID, date).First(&override).Error
	if err == nil {
		if override.IsClosed {
			return nil, nil
		}
		return []Period{{Start: override.StartTime, End: override.EndTime}}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, NewValidationError("invalid date %q", date)
	}

	var rules []models.WeeklyRule
	if err := s.db.
		Where("salon_id = ? AND weekday = ? AND is_closed = ?", salonID, utils.WeekdayIndex(day), false).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	periods := make([]Period, 0, len(rules))
	for _, rule := range rules {
		periods = append(periods, Period{Start: rule.StartTime, End: rule.EndTime})
	}
	return periods, nil
}

// GenerateSlots creates slots for every date in [startDate, endDate] and
// every active chair, stepping through each open period in slot-length
// increments. A trailing interval shorter than the slot length is
// dropped. Slots that already exist for (date, start, chair) are skipped,
// so re-running over the same range never duplicates.
//
// Returns the number of slots created. Generation is not atomic across
// the range: an insert failure aborts and reports the partial count
// alongside the error. The unique index on the slot identity keeps
// concurrent runs from inserting duplicates.
func (s *ScheduleService) GenerateSlots(salonID uuid.UUID, startDate, endDate string) (int, error) {
	if !utils.ValidateDate(startDate) || !utils.ValidateDate(endDate) {
		return 0, NewValidationError("date range must be given as YYYY-MM-DD")
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return 0, NewValidationError("invalid start date %q", startDate)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return 0, NewValidationError("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return 0, NewValidationError("end date is before start date")
	}

	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", salonID).Error; err != nil {
		return 0, err
	}
	slotLength := salon.SlotLength
	if slotLength <= 0 {
		return 0, NewValidationError("salon slot length must be positive")
	}

	var chairs []models.Chair
	if err := s.db.Where("salon_id = ? AND is_active = ?", salonID, true).Find(&chairs).Error; err != nil {
		return 0, err
	}
	if len(chairs) == 0 {
		return 0, ErrNoActiveChairs
	}

	created := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(utils.DateLayout)

		periods, err := s.ResolvePeriods(salonID, date)
		if err != nil {
			return created, err
		}

		for _, chair := range chairs {
			for _, period := range periods {
				startMin, err := utils.ParseHHMM(period.Start)
				if err != nil {
					return created, NewValidationError("invalid period start %q on %s", period.Start, date)
				}
				endMin, err := utils.ParseHHMM(period.End)
				if err != nil {
					return created, NewValidationError("invalid period end %q on %s", period.End, date)
				}

				for m := startMin; m+slotLength <= endMin; m += slotLength {
					slotStart := utils.FormatHHMM(m)

					var existing models.Slot
					err := s.db.
						Where("salon_id = ? AND date = ? AND start_time = ? AND chair_id = ?",
							salonID, date, slotStart, chair.ID).
						First(&existing).Error
					if err == nil {
						continue // already generated
					}
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return created, err
					}

					chairID := chair.ID
					slot := models.Slot{
						SalonID:   salonID,
						Date:      date,
						StartTime: slotStart,
						EndTime:   utils.FormatHHMM(m + slotLength),
						Duration:  slotLength,
						ChairID:   &chairID,
						Status:    models.SlotStatusFree,
					}
					if err := s.db.Create(&slot).Error; err != nil {
						return created, fmt.Errorf("failed to create slot %s %s: %w", date, slotStart, err)
					}
					created++
				}
			}
		}
	}

	config.Log.Info("slot generation finished",
		zap.String("salonId", salonID.String()),
		zap.String("from", startDate),
		zap.String("to", endDate),
		zap.Int("created", created),
	)

	return created, nil
}

// ValidateRuleOverlap rejects a weekly rule range that intersects an
// existing non-closed range on the same weekday. excludeID skips the
// rule being edited.
func (s *ScheduleService) ValidateRuleOverlap(salonID uuid.UUID, weekday int, startTime, endTime string, excludeID uuid.UUID) error {
	newStart, err := utils.ParseHHMM(startTime)
	if err != nil {
		return NewValidationError("invalid start time %q", startTime)
	}
	newEnd, err := utils.ParseHHMM(endTime)
	if err != nil {
		return NewValidationError("invalid end time %q", endTime)
	}
	if newEnd <= newStart {
		return NewValidationError("end time must be after start time")
	}

	var rules []models.WeeklyRule
	if err := s.db.
		Where("salon_id = ? AND weekday = ? AND is_closed = ?", salonID, weekday, false).
		Find(&rules).Error; err != nil {
		return err
	}

	for _, rule := range rules {
		if rule.ID == excludeID {
			continue
		}
		existingStart, err := utils.ParseHHMM(rule.StartTime)
		if err != nil {
			continue
		}
		existingEnd, err := utils.ParseHHMM(rule.EndTime)
		if err != nil {
			continue
		}
		if newStart < existingEnd && existingStart < newEnd {
			return ErrRuleOverlap
		}
	}
	return nil
}

// UpcomingWindow returns the generation window for a salon starting
// today, sized by its advance booking setting.
func (s *ScheduleService) UpcomingWindow(salon *models.Salon, now time.Time) (string, string) {
	days := salon.AdvanceBookingDays
	if days <= 0 {
		days = 30
	}
	start := utils.BeginningOfDay(now)
	end := start.AddDate(0, 0, days)
	return start.Format(utils.DateLayout), end.Format(utils.DateLayout)
}
