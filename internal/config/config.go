package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backends de almacenamiento soportados.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Proveedores de LLM soportados.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogMode  string `env:"LOG_MODE" envDefault:"production"`

	StoreBackend   string `env:"STORE_BACKEND" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SkillCacheTTL time.Duration `env:"SKILL_CACHE_TTL" envDefault:"24h"`

	LLMProvider        string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMAPIKey          string        `env:"LLM_API_KEY"`
	LLMBaseURL         string        `env:"LLM_BASE_URL"`
	LLMModel           string        `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
	LLMTimeout         time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	LLMTemperature     float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTopK            int           `env:"LLM_TOP_K" envDefault:"40"`
	LLMTopP            float32       `env:"LLM_TOP_P" envDefault:"0.95"`
	LLMMaxOutputTokens int           `env:"LLM_MAX_OUTPUT_TOKENS" envDefault:"2048"`

	CareerMaxAttempts int           `env:"CAREER_MAX_ATTEMPTS" envDefault:"3"`
	CareerBackoffBase time.Duration `env:"CAREER_BACKOFF_BASE" envDefault:"2s"`
	QuizScriptBypass  bool          `env:"QUIZ_SCRIPT_BYPASS" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"career-compass"`
	OTelExporter    string  `env:"OTEL_EXPORTER" envDefault:"otlp"`
	OTelSamplerRate float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"1.0"`
}

// LoadConfig carga la configuración desde variables de entorno y la valida.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres"))
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when STORE_BACKEND=redis"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	if c.LogMode != "production" && c.LogMode != "development" {
		errs = append(errs, fmt.Errorf("unknown LOG_MODE %q", c.LogMode))
	}
	if c.OTelExporter != "otlp" && c.OTelExporter != "stdout" {
		errs = append(errs, fmt.Errorf("unknown OTEL_EXPORTER %q", c.OTelExporter))
	}
	if c.OTelSamplerRate < 0 || c.OTelSamplerRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0,1], got %v", c.OTelSamplerRate))
	}
	if c.CareerMaxAttempts < 1 {
		errs = append(errs, errors.New("CAREER_MAX_ATTEMPTS must be at least 1"))
	}
	if c.LLMMaxOutputTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_OUTPUT_TOKENS must be positive"))
	}

	return errors.Join(errs...)
}
