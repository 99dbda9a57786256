package main

import (
	"fmt"
	"log"
	"os"
	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/routes"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Chair{},
		&models.WeeklyRule{},
		&models.DateOverride{},
		&models.Slot{},
		&models.SlotService{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maintenance := services.NewMaintenanceService(config.DB)
	maintenance.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
