package controllers

import (
	"net/http"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSalonInput struct {
	Name               *string      `json:"name"`
	Address            *string      `json:"address"`
	SlotLength         *int         `json:"slotLength"`
	ChairsCount        *int         `json:"chairsCount"`
	AdvanceBookingDays *int         `json:"advanceBookingDays"`
	CancellationHours  *int         `json:"cancellationHours"`
	Settings           models.JSONB `json:"settings"`
}

// GetProfile returns the caller's account and salon settings
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.Preload("Salon").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
		"salon": gin.H{
			"name":               user.Salon.Name,
			"address":            user.Salon.Address,
			"slotLength":         user.Salon.SlotLength,
			"chairsCount":        user.Salon.ChairsCount,
			"advanceBookingDays": user.Salon.AdvanceBookingDays,
			"cancellationHours":  user.Salon.CancellationHours,
			"settings":           user.Salon.Settings,
		},
	})
}

// UpdateSalonProfile edits the salon's booking settings. A changed slot
// length only affects slots generated afterwards; existing rows keep the
// duration they were generated with.
func UpdateSalonProfile(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.SlotLength != nil {
		if *input.SlotLength <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Slot length must be positive")
			return
		}
		salon.SlotLength = *input.SlotLength
	}
	if input.ChairsCount != nil {
		if *input.ChairsCount <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Chairs count must be positive")
			return
		}
		salon.ChairsCount = *input.ChairsCount
	}
	if input.AdvanceBookingDays != nil {
		salon.AdvanceBookingDays = *input.AdvanceBookingDays
	}
	if input.CancellationHours != nil {
		salon.CancellationHours = *input.CancellationHours
	}
	if input.Settings != nil {
		salon.Settings = input.Settings
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}
