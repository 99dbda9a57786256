package controllers

import (
	"net/http"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type UpcomingAppointment struct {
	CustomerName string `json:"customerName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	ChairName    string `json:"chairName"`
}

// GetDashboardOverview summarises today's schedule for the salon
func GetDashboardOverview(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	today := time.Now().Format(utils.DateLayout)

	// Total Customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).
		Where("salon_id = ? AND deleted_at IS NULL", salonUUID).Count(&totalCustomers)

	// Today's slot counts
	var totalSlots int64
	config.DB.Model(&models.Slot{}).
		Where("salon_id = ? AND date = ?", salonUUID, today).Count(&totalSlots)

	var bookedSlots int64
	config.DB.Model(&models.Slot{}).
		Where("salon_id = ? AND date = ? AND status = ?", salonUUID, today, models.SlotStatusBooked).
		Count(&bookedSlots)

	var freeSlots int64
	config.DB.Model(&models.Slot{}).
		Where("salon_id = ? AND date = ? AND customer_id IS NULL", salonUUID, today).
		Count(&freeSlots)

	// Next booked appointments from now on
	nowTime := time.Now().Format("15:04")
	var upcoming []UpcomingAppointment
	config.DB.Raw(`
        SELECT cu.name AS customer_name, s.start_time, s.end_time, ch.name AS chair_name
        FROM slots s
        JOIN customers cu ON cu.id = s.customer_id
        LEFT JOIN chairs ch ON ch.id = s.chair_id
        WHERE s.salon_id = ? AND s.date = ? AND s.status = ? AND s.start_time >= ?
        ORDER BY s.start_time ASC
        LIMIT 7
    `, salonUUID, today, models.SlotStatusBooked, nowTime).Scan(&upcoming)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers": totalCustomers,
		"todaySlots": gin.H{
			"total":  totalSlots,
			"booked": bookedSlots,
			"free":   freeSlots,
		},
		"upcomingAppointments": upcoming,
	})
}
