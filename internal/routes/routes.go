package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"consultorio-server/internal/config"
	"consultorio-server/internal/consistency"
	"consultorio-server/internal/handlers"
	"consultorio-server/internal/middleware"
	"consultorio-server/internal/reports"
	"consultorio-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	s := store.New(db)
	sync := consistency.NewSynchronizer(s.Appointments)
	reportService := reports.NewService(s)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s, cfg)
	userHandler := handlers.NewUserHandler(s)
	photoHandler := handlers.NewPhotoHandler(s, cfg.UploadDir)
	appointmentHandler := handlers.NewAppointmentHandler(s, reportService)
	paymentHandler := handlers.NewPaymentHandler(s, sync)
	noteHandler := handlers.NewClinicalNoteHandler(s, sync)
	reportHandler := handlers.NewReportHandler(reportService)
	systemHandler := handlers.NewSystemHandler(s, cfg.Seed.AdminUsername)

	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/me", middleware.AuthMiddleware(cfg), authHandler.GetProfile)

		userRoutes := api.Group("/users")
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
			userRoutes.POST("/:id/upload-photo", photoHandler.UploadPhoto)
			userRoutes.GET("/:id/photo/:filename", photoHandler.GetPhoto)
		}
		api.GET("/psicologos", userHandler.GetPsychologists)
		api.GET("/pacientes", userHandler.GetPatients)

		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/search", appointmentHandler.SearchAppointments)
			appointmentRoutes.GET("/patient/:id", appointmentHandler.GetPatientAppointments)
			appointmentRoutes.GET("/psychologist/:id", appointmentHandler.GetPsychologistAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
			appointmentRoutes.PUT("/:id/pay", appointmentHandler.PayAppointment)
		}

		paymentRoutes := api.Group("/payments")
		{
			paymentRoutes.POST("", paymentHandler.CreatePayment)
			paymentRoutes.GET("", paymentHandler.GetPayments)
			paymentRoutes.GET("/pending", paymentHandler.GetPendingPayments)
			paymentRoutes.GET("/patient/:id", paymentHandler.GetPatientPayments)
			paymentRoutes.GET("/psychologist/:id", paymentHandler.GetPsychologistPayments)
			paymentRoutes.PUT("/:id", paymentHandler.UpdatePayment)
			paymentRoutes.GET("/:id/receipt", paymentHandler.GetReceipt)
		}

		noteRoutes := api.Group("/clinical-notes")
		{
			noteRoutes.POST("", noteHandler.CreateClinicalNote)
			noteRoutes.GET("", noteHandler.GetClinicalNotes)
			noteRoutes.GET("/follow-ups", noteHandler.GetFollowUps)
			noteRoutes.GET("/patient/:id", noteHandler.GetPatientNotes)
			noteRoutes.GET("/psychologist/:id", noteHandler.GetPsychologistNotes)
			noteRoutes.GET("/appointment/:id", noteHandler.GetAppointmentNotes)
			noteRoutes.GET("/:id", noteHandler.GetClinicalNoteByID)
			noteRoutes.PUT("/:id", noteHandler.UpdateClinicalNote)
			noteRoutes.DELETE("/:id", noteHandler.DeleteClinicalNote)
		}

		reportRoutes := api.Group("/reports")
		{
			reportRoutes.GET("", reportHandler.GetSummary)
			reportRoutes.GET("/detailed", reportHandler.GetDetailed)
			reportRoutes.GET("/export", reportHandler.ExportWorkbook)
			reportRoutes.GET("/psychologist/:id", reportHandler.GetPsychologistReport)
			reportRoutes.GET("/patient/:id", reportHandler.GetPatientReport)
		}
		api.GET("/patients/:id/complete-history", reportHandler.GetPatientHistory)

		api.GET("/test-data", systemHandler.TestData)
		api.GET("/health", systemHandler.Health)
	}

	// Simple health check endpoint
	router.GET("/health", systemHandler.Health)
}
