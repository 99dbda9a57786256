package routes

import (
	"os"
	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/utils"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Chair routes
		chairs := api.Group("/chairs")
		{
			chairs.POST("", controllers.CreateChair)
			chairs.GET("", controllers.GetChairs)
			chairs.PUT("/:id", controllers.UpdateChair)
			chairs.DELETE("/:id", controllers.DeleteChair)
		}

		// Open-hours schedule routes
		schedule := api.Group("/schedule")
		{
			schedule.POST("/rules", controllers.CreateWeeklyRule)
			schedule.GET("/rules", controllers.GetWeeklyRules)
			schedule.PUT("/rules/:id", controllers.UpdateWeeklyRule)
			schedule.DELETE("/rules/:id", controllers.DeleteWeeklyRule)

			schedule.POST("/overrides", controllers.UpsertDateOverride)
			schedule.GET("/overrides", controllers.GetDateOverrides)
			schedule.DELETE("/overrides/:id", controllers.DeleteDateOverride)
		}

		// Slot routes
		slots := api.Group("/slots")
		{
			slots.GET("", controllers.GetSlots)
			slots.POST("/generate", controllers.GenerateSlots)
			slots.PUT("/:id/book", controllers.BookSlot)
			slots.PUT("/:id/extend", controllers.ExtendSlot)
			slots.PUT("/:id/absorb", controllers.AbsorbSlot)
			slots.PUT("/:id/clear", controllers.ClearSlot)
			slots.POST("/clear", controllers.ClearSlots)
			slots.POST("/delete", controllers.DeleteSlots)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports/occupancy", reportController.GetOccupancyReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := auth.Group("/profile", utils.AuthMiddleware())
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-salon", controllers.UpdateSalonProfile)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	return r
}
