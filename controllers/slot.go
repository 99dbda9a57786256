package controllers

import (
	"errors"
	"net/http"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerateSlotsInput struct {
	StartDate string `json:"startDate" binding:"required"` // "YYYY-MM-DD"
	EndDate   string `json:"endDate" binding:"required"`
}

type BookSlotInput struct {
	CustomerID uuid.UUID   `json:"customerId" binding:"required"`
	StaffID    *uuid.UUID  `json:"staffId"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime"`
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required"`
}

type SlotSelectionInput struct {
	SlotIDs []uuid.UUID `json:"slotIds" binding:"required"`
}

// GenerateSlots materializes slots over a date range for all active chairs
func GenerateSlots(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input GenerateSlotsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	schedule := services.NewScheduleService(config.DB)
	created, err := schedule.GenerateSlots(salonUUID, input.StartDate, input.EndDate)
	if err != nil {
		var validation *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNoActiveChairs):
			utils.RespondWithError(c, http.StatusUnprocessableEntity, "Add at least one active chair before generating slots")
		case errors.As(err, &validation):
			utils.RespondWithError(c, http.StatusBadRequest, validation.Message)
		default:
			// generation aborts on the first failed insert; report how far it got
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Slot generation failed partway through",
				"created": created,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

// GetSlots lists slots for a date, optionally filtered by chair or staff
func GetSlots(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if !utils.ValidateDate(date) {
		utils.RespondWithError(c, http.StatusBadRequest, "date query parameter must be given as YYYY-MM-DD")
		return
	}

	query := config.DB.Preload("Services").Preload("Chair").Preload("Customer").
		Where("salon_id = ? AND date = ?", salonUUID, date)

	if chair := c.Query("chairId"); chair != "" {
		chairUUID, err := uuid.Parse(chair)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid chair ID format")
			return
		}
		query = query.Where("chair_id = ?", chairUUID)
	}
	if staff := c.Query("staffId"); staff != "" {
		staffUUID, err := uuid.Parse(staff)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
			return
		}
		query = query.Where("staff_id = ?", staffUUID)
	}

	var slots []models.Slot
	if err := query.Order("start_time asc").Find(&slots).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve slots")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// BookSlot books services into a slot. When the services need more time
// than the slot covers, it responds 409 with both durations so the client
// can offer extend/absorb.
func BookSlot(c *gin.Context) {
	cmd, ok := bindBookingCommand(c)
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	slot, err := booking.BookSlot(cmd)
	if err != nil {
		var mismatch *services.DurationMismatchError
		if errors.As(err, &mismatch) {
			c.JSON(http.StatusConflict, gin.H{
				"error":            "Selected services exceed the slot duration",
				"requiredMinutes":  mismatch.RequiredMinutes,
				"allocatedMinutes": mismatch.AllocatedMinutes,
			})
			return
		}
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ExtendSlot pushes the slot's end time out to cover the full service total
func ExtendSlot(c *gin.Context) {
	cmd, ok := bindBookingCommand(c)
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	slot, err := booking.ExtendSlot(cmd)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// AbsorbSlot books by consuming the consecutive free slots after this one
func AbsorbSlot(c *gin.Context) {
	cmd, ok := bindBookingCommand(c)
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	slot, err := booking.AbsorbConsecutive(cmd)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCapacity) {
			utils.RespondWithError(c, http.StatusConflict, "Not enough consecutive free slots to cover the selected services")
			return
		}
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ClearSlot restores a slot to its free, single-slot-duration state
func ClearSlot(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	slotUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	slot, err := booking.ClearSlot(salonUUID, slotUUID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ClearSlots is the bulk variant for a selected group of slots
func ClearSlots(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input SlotSelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := services.NewBookingService(config.DB)
	cleared, err := booking.ClearSlots(salonUUID, input.SlotIDs)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// DeleteSlots removes a selected group of slots entirely
func DeleteSlots(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input SlotSelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := services.NewBookingService(config.DB)
	deleted, err := booking.DeleteSlots(salonUUID, input.SlotIDs)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func bindBookingCommand(c *gin.Context) (services.BookSlotCommand, bool) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return services.BookSlotCommand{}, false
	}

	slotUUID, ok := idParam(c, "id")
	if !ok {
		return services.BookSlotCommand{}, false
	}

	var input BookSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return services.BookSlotCommand{}, false
	}

	if input.StartTime != "" && !utils.ValidateTimeOfDay(input.StartTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Start time must be given as HH:MM")
		return services.BookSlotCommand{}, false
	}
	if input.EndTime != "" && !utils.ValidateTimeOfDay(input.EndTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "End time must be given as HH:MM")
		return services.BookSlotCommand{}, false
	}

	return services.BookSlotCommand{
		SalonID:    salonUUID,
		SlotID:     slotUUID,
		CustomerID: input.CustomerID,
		StaffID:    input.StaffID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		ServiceIDs: input.ServiceIDs,
	}, true
}

func respondBookingError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Slot not found")
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, validation.Message)
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
