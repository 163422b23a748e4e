package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	DefaultLang               string
	LogLevel                  string
	Timezone                  *time.Location
	Database                  DatabaseConfig
	Kafka                     KafkaConfig
	ReminderSchedule          string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
	Debug    bool
}

// KafkaConfig holds the event broker settings. No brokers means events are
// only logged.
type KafkaConfig struct {
	Brokers          []string
	AlertTopic       string
	ReminderTopic    string
	AppointmentTopic string
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "myhealth"),
	}

	dsn, err := buildDSN(dbConfig)
	if err != nil {
		return nil, err
	}
	dbConfig.DSN = dsn

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	dbDebug, err := strconv.ParseBool(getEnv("DB_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_DEBUG: %w", err)
	}
	dbConfig.Debug = dbDebug

	tz, err := time.LoadLocation(getEnv("TZ_NAME", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME: %w", err)
	}

	environment := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               environment,
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		DefaultLang:               getEnv("DEFAULT_LANG", "fr"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		Timezone:                  tz,
		Database:                  dbConfig,
		Kafka: KafkaConfig{
			Brokers:          splitList(getEnv("KAFKA_BROKERS", "")),
			AlertTopic:       getEnv("KAFKA_ALERT_TOPIC", "health.alerts"),
			ReminderTopic:    getEnv("KAFKA_REMINDER_TOPIC", "health.reminders"),
			AppointmentTopic: getEnv("KAFKA_APPOINTMENT_TOPIC", "health.appointments"),
		},
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "* * * * *"),
	}, nil
}

func buildDSN(db DatabaseConfig) (string, error) {
	switch db.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			db.Username, db.Password, db.Host, db.Port, db.Name), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.Name), nil
	default:
		return "", fmt.Errorf("invalid DB_DRIVER %q: want mysql or postgres", db.Driver)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
