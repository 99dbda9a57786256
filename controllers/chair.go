package controllers

import (
	"errors"
	"net/http"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateChairInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateChairInput struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"isActive"`
}

// CreateChair adds a chair, enforcing the salon's chair capacity
func CreateChair(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateChairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var chairCount int64
	if err := config.DB.Model(&models.Chair{}).Where("salon_id = ?", salonUUID).
		Count(&chairCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if int(chairCount) >= salon.ChairsCount {
		utils.RespondWithError(c, http.StatusBadRequest, "Chair limit reached for this salon")
		return
	}

	chair := models.Chair{
		SalonID:  salonUUID,
		Name:     input.Name,
		Color:    input.Color,
		IsActive: true,
	}

	if err := config.DB.Create(&chair).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create chair")
		return
	}

	c.JSON(http.StatusCreated, chair)
}

// GetChairs retrieves all chairs for the salon
func GetChairs(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var chairs []models.Chair
	if err := config.DB.Where("salon_id = ?", salonUUID).Order("created_at asc").
		Find(&chairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve chairs")
		return
	}

	c.JSON(http.StatusOK, chairs)
}

// UpdateChair updates name, color or active state
func UpdateChair(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	chairUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input UpdateChairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var chair models.Chair
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, chairUUID).
		First(&chair).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Chair not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		chair.Name = *input.Name
	}
	if input.Color != nil {
		chair.Color = *input.Color
	}
	if input.IsActive != nil {
		chair.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&chair).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update chair")
		return
	}

	c.JSON(http.StatusOK, chair)
}

// DeleteChair removes a chair
func DeleteChair(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	chairUUID, ok := idParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, chairUUID).
		Delete(&models.Chair{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete chair")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Chair not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chair deleted successfully"})
}
