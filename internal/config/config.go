package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rehber-app/anket-client/internal/validator"
)

const (
	SubmitEndpointCurrent = "current"
	SubmitEndpointLegacy  = "legacy"
)

type Config struct {
	Port           string        `validate:"required"`
	APIBaseURL     string        `validate:"required,url"`
	APIToken       string        `validate:"-"`
	HTTPTimeout    time.Duration `validate:"gt=0"`
	SubmitEndpoint string        `validate:"oneof=current legacy"`
	DatabaseURL    string        `validate:"-"`
	RedisURL       string        `validate:"-"`
	SurveyCacheTTL time.Duration `validate:"gt=0"`
	SessionIdle    time.Duration `validate:"gt=0"`
	Environment    string        `validate:"oneof=development production test"`
	Events         EventConfig
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000"),
		APIToken:       getEnv("API_TOKEN", ""),
		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 15*time.Second),
		SubmitEndpoint: getEnv("SUBMIT_ENDPOINT", SubmitEndpointCurrent),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		SurveyCacheTTL: getDuration("SURVEY_CACHE_TTL", 5*time.Minute),
		SessionIdle:    getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		Environment:    getEnv("ENVIRONMENT", "development"),
		Events: EventConfig{
			Enabled:      getEnv("EVENTS_ENABLED", "false") == "true",
			Publisher:    getEnv("EVENTS_PUBLISHER", "mock"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			SurveyTopic:  getEnv("SURVEY_EVENTS_TOPIC", "survey-events"),
		},
	}

	if err := validator.New().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) UseLegacySubmit() bool {
	return c.SubmitEndpoint == SubmitEndpointLegacy
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration falls back to the default when the value is missing or unparsable.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
