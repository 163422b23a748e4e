package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"myhealth-server/internal/config"
	"myhealth-server/internal/events"
	"myhealth-server/internal/jobs"
	"myhealth-server/internal/logging"
	"myhealth-server/internal/models"
	"myhealth-server/internal/routes"
	"myhealth-server/internal/store"
)

func main() {
	// Load environment variables; a missing .env is fine when the
	// environment is already set.
	envErr := godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		if errors.Is(envErr, fs.ErrNotExist) {
			logger.Info().Msg("no .env file, using process environment")
		} else {
			logger.Fatal().Err(envErr).Msg("error loading .env file")
		}
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Database.Debug,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("error connecting to database")
	}
	st := store.New(db)

	publisher := newPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("closing event publisher")
		}
	}()

	dispatcher := jobs.NewReminderDispatcher(st.Reminders, publisher, logger, cfg.Timezone)
	scheduler, err := dispatcher.Start(cfg.ReminderSchedule)
	if err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.ReminderSchedule).Msg("invalid reminder schedule")
	}
	defer scheduler.Stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logging.RequestID(), logging.Logger(logger), logging.Recovery(logger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", logging.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logging.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, cfg, st, routes.NewServices(st, publisher, logger, cfg.Timezone))

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", serverAddr).Str("env", cfg.Environment).Msg("server running")
	if err := router.Run(serverAddr); err != nil {
		logger.Error().Err(err).Msg("failed to start server")
	}
}

// newPublisher returns a Kafka publisher when brokers are configured and a
// log-only publisher otherwise.
func newPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info().Msg("KAFKA_BROKERS not set, events are only logged")
		return events.NewLogPublisher(logger)
	}
	p, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:          cfg.Kafka.Brokers,
		AlertTopic:       cfg.Kafka.AlertTopic,
		ReminderTopic:    cfg.Kafka.ReminderTopic,
		AppointmentTopic: cfg.Kafka.AppointmentTopic,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating kafka publisher")
	}
	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("publishing events to kafka")
	return p
}
