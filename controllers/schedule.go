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

type WeeklyRuleInput struct {
	Weekday   *int   `json:"weekday" binding:"required"` // Monday=0 .. Sunday=6
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsClosed  bool   `json:"isClosed"`
}

type DateOverrideInput struct {
	Date      string `json:"date" binding:"required"` // "YYYY-MM-DD"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsClosed  bool   `json:"isClosed"`
}

func validateRuleTimes(input *WeeklyRuleInput) string {
	if *input.Weekday < 0 || *input.Weekday > 6 {
		return "Weekday must be between 0 (Monday) and 6 (Sunday)"
	}
	if input.IsClosed {
		return ""
	}
	if !utils.ValidateTimeOfDay(input.StartTime) || !utils.ValidateTimeOfDay(input.EndTime) {
		return "Start and end time must be given as HH:MM"
	}
	return ""
}

// CreateWeeklyRule adds an open-hours range, rejecting overlaps on the weekday
func CreateWeeklyRule(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input WeeklyRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := validateRuleTimes(&input); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	schedule := services.NewScheduleService(config.DB)
	if !input.IsClosed {
		if err := schedule.ValidateRuleOverlap(salonUUID, *input.Weekday, input.StartTime, input.EndTime, uuid.Nil); err != nil {
			respondScheduleError(c, err)
			return
		}
	}

	rule := models.WeeklyRule{
		SalonID:   salonUUID,
		Weekday:   *input.Weekday,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		IsClosed:  input.IsClosed,
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// GetWeeklyRules lists the salon's weekly rules ordered by weekday and time
func GetWeeklyRules(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var rules []models.WeeklyRule
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("weekday asc, start_time asc").Find(&rules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdateWeeklyRule edits a rule, re-checking overlap against its siblings
func UpdateWeeklyRule(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	ruleUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input WeeklyRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := validateRuleTimes(&input); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var rule models.WeeklyRule
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, ruleUUID).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	schedule := services.NewScheduleService(config.DB)
	if !input.IsClosed {
		if err := schedule.ValidateRuleOverlap(salonUUID, *input.Weekday, input.StartTime, input.EndTime, rule.ID); err != nil {
			respondScheduleError(c, err)
			return
		}
	}

	rule.Weekday = *input.Weekday
	rule.StartTime = input.StartTime
	rule.EndTime = input.EndTime
	rule.IsClosed = input.IsClosed

	if err := config.DB.Save(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteWeeklyRule removes a rule
func DeleteWeeklyRule(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	ruleUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, ruleUUID).
		Delete(&models.WeeklyRule{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete rule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Rule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted successfully"})
}

// UpsertDateOverride creates or replaces the single override for a date
func UpsertDateOverride(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input DateOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be given as YYYY-MM-DD")
		return
	}
	if !input.IsClosed {
		if !utils.ValidateTimeOfDay(input.StartTime) || !utils.ValidateTimeOfDay(input.EndTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Start and end time must be given as HH:MM")
			return
		}
	}

	var override models.DateOverride
	err := config.DB.Where("salon_id = ? AND date = ?", salonUUID, input.Date).
		First(&override).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	override.SalonID = salonUUID
	override.Date = input.Date
	override.StartTime = input.StartTime
	override.EndTime = input.EndTime
	override.IsClosed = input.IsClosed

	if err := config.DB.Save(&override).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save override")
		return
	}

	c.JSON(http.StatusOK, override)
}

// GetDateOverrides lists the salon's overrides
func GetDateOverrides(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var overrides []models.DateOverride
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("date asc").Find(&overrides).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve overrides")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

// DeleteDateOverride removes an override; the weekly rules apply again
func DeleteDateOverride(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	overrideUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, overrideUUID).
		Delete(&models.DateOverride{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete override")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Override not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Override deleted successfully"})
}

func respondScheduleError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.Is(err, services.ErrRuleOverlap):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, validation.Message)
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
