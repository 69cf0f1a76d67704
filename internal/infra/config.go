package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	JWTSecret         string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	IdeogramAPIKey    string
	IdeogramModel     string
	IdeogramBaseURL   string
	GenerateFanout    int
	ImageRatePerSec   float64
	ImageRateBurst    int
	SweepInterval     time.Duration
	RetentionAge      time.Duration
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
	DBMaxConns        int32
	IdeaSessionTTL    time.Duration
	SignupCredits     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		IdeogramAPIKey:   os.Getenv("IDEOGRAM_API_KEY"),
		IdeogramModel:    getEnv("IDEOGRAM_MODEL", "V_2"),
		IdeogramBaseURL:  getEnv("IDEOGRAM_BASE_URL", "https://api.ideogram.ai"),
		GenerateFanout:   getEnvInt("GENERATE_FANOUT", 4),
		ImageRatePerSec:  getEnvFloat("IMAGE_RATE_PER_SECOND", 2),
		ImageRateBurst:   getEnvInt("IMAGE_RATE_BURST", 4),
		SweepInterval:    time.Minute * time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 60)),
		RetentionAge:     time.Minute * time.Duration(getEnvInt("RETENTION_AGE_MINUTES", 23*60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		DBMaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
		IdeaSessionTTL:   time.Minute * time.Duration(getEnvInt("IDEA_SESSION_TTL_MINUTES", 30)),
		SignupCredits:    getEnvInt("SIGNUP_CREDITS", 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.GenerateFanout < 1 {
		cfg.GenerateFanout = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
