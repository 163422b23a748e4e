package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"myhealth-server/internal/config"
	"myhealth-server/internal/events"
	"myhealth-server/internal/handlers"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/middleware"
	"myhealth-server/internal/models"
	"myhealth-server/internal/services"
	"myhealth-server/internal/store"
)

// Services groups the application services behind the routes.
type Services struct {
	Measurements *services.MeasurementService
	Agenda       *services.AgendaService
	Reminders    *services.ReminderService
	Alerts       *services.AlertService
	Doctor       *services.DoctorService
}

// NewServices wires the services on top of the stores. The agenda reads the
// wall clock in loc.
func NewServices(st *store.Store, publisher events.Publisher, logger zerolog.Logger, loc *time.Location) *Services {
	measurements := services.NewMeasurementService(st.Measurements, st.Alerts, publisher, logger)
	agenda := services.NewAgendaService(st.Appointments, publisher, logger).WithClock(services.ClockIn(loc))
	alerts := services.NewAlertService(st.Alerts)
	return &Services{
		Measurements: measurements,
		Agenda:       agenda,
		Reminders:    services.NewReminderService(st.Reminders),
		Alerts:       alerts,
		Doctor:       services.NewDoctorService(st.Users, alerts, agenda, measurements),
	}
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config, st *store.Store, svc *Services) {
	fallback, ok := i18n.Parse(cfg.DefaultLang)
	if !ok {
		fallback = i18n.Default
	}

	authHandler := handlers.NewAuthHandler(st.Users, cfg)
	userHandler := handlers.NewUserHandler(st.Users)
	measurementHandler := handlers.NewMeasurementHandler(svc.Measurements)
	reminderHandler := handlers.NewReminderHandler(svc.Reminders)
	appointmentHandler := handlers.NewAppointmentHandler(svc.Agenda)
	doctorHandler := handlers.NewDoctorHandler(svc.Doctor, svc.Agenda, svc.Alerts)

	patientOnly := middleware.RoleAuthMiddleware(models.RolePatient)
	doctorOnly := middleware.RoleAuthMiddleware(models.RoleDoctor)

	api := router.Group("/api/v1")
	api.Use(middleware.LocaleMiddleware(fallback))

	// Public routes (no authentication required)
	public := api.Group("")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		private.GET("/users/doctors", userHandler.GetDoctors)

		measurementRoutes := private.Group("/measurements")
		measurementRoutes.Use(patientOnly)
		{
			measurementRoutes.POST("", measurementHandler.Submit)
			measurementRoutes.GET("", measurementHandler.List)
			measurementRoutes.GET("/history", measurementHandler.History)
			measurementRoutes.DELETE("/:id", measurementHandler.Delete)
		}
		private.GET("/advice", patientOnly, measurementHandler.Advice)

		// Reminders belong to their owner; ownership is checked in the service.
		reminderRoutes := private.Group("/reminders")
		{
			reminderRoutes.GET("", reminderHandler.List)
			reminderRoutes.POST("", reminderHandler.Create)
			reminderRoutes.PATCH("/:id/toggle", reminderHandler.Toggle)
			reminderRoutes.DELETE("/:id", reminderHandler.Delete)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/free", appointmentHandler.GetFreeSlots)
			appointmentRoutes.POST("/slots", doctorOnly, appointmentHandler.CreateSlot)
			appointmentRoutes.POST("/:id/book", patientOnly, appointmentHandler.BookSlot)
			appointmentRoutes.PATCH("/:id/accept", doctorOnly, appointmentHandler.Accept)
			appointmentRoutes.PATCH("/:id/reject", doctorOnly, appointmentHandler.Reject)
			appointmentRoutes.PATCH("/:id/complete", doctorOnly, appointmentHandler.Complete)
			// Owner doctor or booked patient, checked in the service
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.Cancel)
		}

		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(doctorOnly)
		{
			doctorRoutes.GET("/dashboard", doctorHandler.Dashboard)
			doctorRoutes.GET("/agenda", doctorHandler.DayAgenda)
			doctorRoutes.GET("/patients", doctorHandler.Patients)
			doctorRoutes.GET("/patients/:id/history", doctorHandler.PatientHistory)
			doctorRoutes.GET("/alerts", doctorHandler.Alerts)
			doctorRoutes.PATCH("/alerts/:id/acknowledge", doctorHandler.AcknowledgeAlert)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
