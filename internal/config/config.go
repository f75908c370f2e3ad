package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port                string
	DatabaseURL         string
	Version             string
	LogLevel            string
	OpenAIKey           string
	AnalyzerModel       string // Chat model used for email analysis
	AnalyzerTimeout     int    // Analyzer request timeout in seconds
	AnalysisConcurrency int    // Max in-flight analyzer calls (default 1 to respect rate limits)
	SendGridAPIKey      string // SendGrid API key for sending draft replies
	FromEmail           string // From address used when sending draft replies
	DashboardCacheTTL   int    // Dashboard aggregates cache TTL in seconds
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Version:             getEnv("VERSION", "1.0.0"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		AnalyzerModel:       getEnv("ANALYZER_MODEL", ""),
		AnalyzerTimeout:     getEnvInt("ANALYZER_TIMEOUT", 60),
		AnalysisConcurrency: getEnvInt("ANALYSIS_CONCURRENCY", 1),
		SendGridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		FromEmail:           getEnv("FROM_EMAIL", "noreply@mailsift.io"),
		DashboardCacheTTL:   getEnvInt("DASHBOARD_CACHE_TTL", 60),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	// Configure zerolog to output JSON without newlines
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Create logger with JSON output to stdout
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "mailsift").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
