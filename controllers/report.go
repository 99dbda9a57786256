// controllers/report.go
package controllers

import (
	"net/http"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// DayOccupancy is the per-day utilisation line of the occupancy report
type DayOccupancy struct {
	Date          string  `json:"date"`
	TotalSlots    int     `json:"totalSlots"`
	BookedSlots   int     `json:"bookedSlots"`
	OccupancyRate float64 `json:"occupancyRate"` // percentage
}

// GetOccupancyReport returns booked-versus-total slot counts per day
// over a date range
func (rc *ReportController) GetOccupancyReport(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if !utils.ValidateDate(startDate) || !utils.ValidateDate(endDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "startDate and endDate must be given as YYYY-MM-DD")
		return
	}

	days, err := rc.getOccupancy(salonUUID, startDate, endDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute occupancy")
		return
	}

	totalSlots := 0
	totalBooked := 0
	for _, day := range days {
		totalSlots += day.TotalSlots
		totalBooked += day.BookedSlots
	}
	overall := 0.0
	if totalSlots > 0 {
		overall = float64(totalBooked) / float64(totalSlots) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"days":        days,
		"totalSlots":  totalSlots,
		"bookedSlots": totalBooked,
		"overallRate": overall,
	})
}

func (rc *ReportController) getOccupancy(salonID uuid.UUID, startDate, endDate string) ([]DayOccupancy, error) {
	type row struct {
		Date   string
		Total  int
		Booked int
	}

	var rows []row
	err := config.DB.Raw(`
        SELECT date,
               COUNT(*) AS total,
               SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS booked
        FROM slots
        WHERE salon_id = ? AND date BETWEEN ? AND ?
        GROUP BY date
        ORDER BY date ASC
    `, models.SlotStatusBooked, salonID, startDate, endDate).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	days := make([]DayOccupancy, 0, len(rows))
	for _, r := range rows {
		rate := 0.0
		if r.Total > 0 {
			rate = float64(r.Booked) / float64(r.Total) * 100
		}
		days = append(days, DayOccupancy{
			Date:          r.Date,
			TotalSlots:    r.Total,
			BookedSlots:   r.Booked,
			OccupancyRate: rate,
		})
	}
	return days, nil
}
