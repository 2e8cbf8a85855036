package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port               string
	Environment        string
	CorsAllowedOrigins []string
	LogFilePath        string

	// Optional Groq (OpenAI-compatible) fast path for intent resolution.
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string
	LLMTimeout  time.Duration

	// Session eviction policy.
	SessionTTL           time.Duration
	SessionPurgeInterval time.Duration

	// Hard cap on points per chart payload.
	MaxChartPoints int
}

// Load reads .env (if present) and builds the config with defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		Port:               getEnv("PORT", "8003"),
		Environment:        getEnv("GO_ENV", "development"),
		CorsAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),
		LogFilePath:        getEnv("LOG_FILE_PATH", ""),

		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMTimeout:  getEnvAsDuration("LLM_TIMEOUT", 8*time.Second),

		SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionPurgeInterval: getEnvAsDuration("SESSION_PURGE_INTERVAL", 10*time.Minute),

		MaxChartPoints: getEnvAsInt("MAX_CHART_POINTS", 100),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
