package routes

import (
	"beautysalon-backend/config"
	"beautysalon-backend/controllers"
	"beautysalon-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
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
		// Self-service booking
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.BookAppointment)
			appointments.GET("", controllers.GetMyAppointments)
			appointments.DELETE("/:id", controllers.CancelAppointment)
		}

		// Loyalty
		api.GET("/rewards", controllers.GetRewards)
		api.POST("/rewards/:id/redeem", controllers.RedeemReward)
		api.GET("/loyalty/transactions", controllers.GetMyTransactions)

		admin := api.Group("/admin")
		admin.Use(utils.AdminMiddleware())
		{
			// Appointment management
			adminAppointments := admin.Group("/appointments")
			{
				adminAppointments.GET("", controllers.GetAppointments)
				adminAppointments.POST("", controllers.CreateAppointmentAdmin)
				adminAppointments.PUT("/:id", controllers.UpdateAppointment)
				adminAppointments.DELETE("/:id", controllers.DeleteAppointment)
				adminAppointments.POST("/:id/complete", controllers.CompleteAppointment)
				adminAppointments.POST("/:id/uncomplete", controllers.UncompleteAppointment)
				adminAppointments.PUT("/:id/assign", controllers.AssignAppointmentEmployee)
				adminAppointments.POST("/:id/discount", controllers.ApplyDiscount)
			}

			// Employee routes
			employees := admin.Group("/employees")
			{
				employees.GET("", controllers.GetEmployees)
				employees.POST("", controllers.AddEmployee)
				employees.PUT("/:id", controllers.UpdateEmployee)
				employees.DELETE("/:id", controllers.DeleteEmployee)
			}

			// Service catalog routes
			services := admin.Group("/services")
			{
				services.POST("", controllers.CreateService)
				services.GET("", controllers.GetServices)
				services.GET("/:id", controllers.GetService)
				services.PUT("/:id", controllers.UpdateService)
				services.DELETE("/:id", controllers.DeleteService)
			}

			// Customer accounts
			admin.GET("/users", controllers.GetUsers)
			admin.GET("/users/:id", controllers.GetUser)

			// Loyalty management
			admin.POST("/loyalty/adjust", controllers.AdjustPoints)
			rewards := admin.Group("/rewards")
			{
				rewards.POST("", controllers.CreateReward)
				rewards.PUT("/:id", controllers.UpdateReward)
				rewards.DELETE("/:id", controllers.DeleteReward)
			}

			// Settings routes
			admin.GET("/settings", controllers.GetSettings)
			admin.PUT("/settings", controllers.UpdateSettings)
		}
	}

	return r
}
