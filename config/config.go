package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	LogFormat   string
	DBUrl       string
	FrontendURL string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Kafka Configuration
	KafkaBrokers         []string
	KafkaOnboardingTopic string
	KafkaClientID        string
	// Invite token secret (HS256). Empty disables authentication.
	OnboardingJWTSecret string
	// Onboarding engine
	CatalogPath              string
	Timezone                 string
	SessionIdleMinutes       int
	SubmissionTimeoutSeconds int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitSubmitThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Kafka Configuration
		KafkaBrokers:         getEnvList("KAFKA_BROKERS"),
		KafkaOnboardingTopic: getEnv("KAFKA_TOPIC_ONBOARDING", "onboarding.submissions"),
		KafkaClientID:        getEnv("KAFKA_CLIENT_ID", "employee-onboarding-backend"),
		OnboardingJWTSecret:  getEnv("ONBOARDING_JWT_SECRET", ""),
		// Onboarding engine
		CatalogPath:              getEnv("CATALOG_PATH", ""),
		Timezone:                 getEnv("ONBOARDING_TIMEZONE", "UTC"),
		SessionIdleMinutes:       getEnvInt("SESSION_IDLE_MINUTES", 120),
		SubmissionTimeoutSeconds: getEnvInt("SUBMISSION_TIMEOUT_SECONDS", 15),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		RateLimitSubmitThreshold: getEnvInt("RATE_LIMIT_SUBMIT_THRESHOLD", 5),   // 5 submissions per window
	}

	if cfg.DBUrl == "" && len(cfg.KafkaBrokers) == 0 {
		log.Println("WARNING: neither DATABASE_URL nor KAFKA_BROKERS is set. Submissions will fail.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.OnboardingJWTSecret == "" {
		log.Println("WARNING: ONBOARDING_JWT_SECRET not configured. Onboarding routes are unauthenticated.")
	}

	return cfg, nil
}

// Location resolves Timezone, falling back to UTC for unknown names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown ONBOARDING_TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func (c *Config) SubmissionTimeout() time.Duration {
	return time.Duration(c.SubmissionTimeoutSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
