package services

import (
	"errors"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaintenanceService keeps every salon's bookable window topped up by
// generating slots ahead of time.
type MaintenanceService struct {
	db       *gorm.DB
	schedule *ScheduleService
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{
		db:       db,
		schedule: NewScheduleService(db),
	}
}

func (s *MaintenanceService) StartScheduler() {
	c := cron.New()

	// Run every day just after midnight
	c.AddFunc("5 0 * * *", s.GenerateUpcomingSlots)

	c.Start()
	config.Log.Info("slot maintenance scheduler started")
}

// GenerateUpcomingSlots runs generation for every salon over its advance
// booking window. A salon without active chairs is skipped; other
// failures are logged and do not stop the remaining salons.
func (s *MaintenanceService) GenerateUpcomingSlots() {
	var salons []models.Salon
	if err := s.db.Find(&salons).Error; err != nil {
		config.Log.Error("failed to fetch salons for slot maintenance", zap.Error(err))
		return
	}

	now := time.Now()
	for i := range salons {
		salon := &salons[i]
		startDate, endDate := s.schedule.UpcomingWindow(salon, now)

		created, err := s.schedule.GenerateSlots(salon.ID, startDate, endDate)
		if err != nil {
			if errors.Is(err, ErrNoActiveChairs) {
				continue
			}
			config.Log.Error("slot maintenance failed",
				zap.String("salonId", salon.ID.String()),
				zap.Int("created", created),
				zap.Error(err),
			)
			continue
		}
	}
}
