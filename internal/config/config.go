package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	SessionSecret string
	SessionTTL    time.Duration
	UploadDir     string
	CORSOrigins   []string
	ReminderCron  string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
}

// NewConfig loads configuration from the environment, reading a local .env
// file first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=taskmanager sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		SessionSecret: getEnv("SESSION_SECRET", "secret"),
		SessionTTL:    time.Duration(ttlHours) * time.Hour,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "")),
		ReminderCron:  getEnv("REMINDER_CRON", "0 8 * * *"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "noreply@taskmanager.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("UPLOAD_DIR is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
