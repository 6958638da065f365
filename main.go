package main

import (
	"fmt"
	"log"
	"os"

	"beautysalon-backend/config"
	"beautysalon-backend/controllers"
	"beautysalon-backend/models"
	"beautysalon-backend/routes"
	"beautysalon-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Appointment{},
		&models.LoyaltyTransaction{},
		&models.LoyaltyReward{},
		&models.Settings{},
		&models.ReminderLog{},
	)

	if err := services.SeedSettings(config.DB); err != nil {
		log.Printf("Failed to seed settings: %v", err)
	}
	if err := services.SeedCatalog(config.DB); err != nil {
		log.Printf("Failed to seed service catalog: %v", err)
	}

	controllers.Init(config.DB)
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
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
