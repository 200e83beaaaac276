// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/logging"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr          string
	Store         string
	DBPath        string // empty means the default XDG path
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Cookie        Cookie
	Log           logging.Config
	OverridesFile string
	LLM           llm.Config
}

// Cookie configures the web learner cookie.
type Cookie struct {
	Name   string
	Secret string // empty generates a per-process key
	Secure bool
}

type rawConfig struct {
	Addr          string        `env:"MATHDRILLS_ADDR" envDefault:":8080"`
	Store         string        `env:"MATHDRILLS_STORE" envDefault:"memory"`
	DBPath        string        `env:"MATHDRILLS_DB"`
	SessionTTL    time.Duration `env:"MATHDRILLS_SESSION_TTL" envDefault:"12h"`
	SweepInterval time.Duration `env:"MATHDRILLS_SWEEP_INTERVAL" envDefault:"10m"`

	CookieName   string `env:"MATHDRILLS_COOKIE_NAME" envDefault:"mathdrills"`
	CookieSecret string `env:"MATHDRILLS_COOKIE_SECRET"`
	CookieSecure bool   `env:"MATHDRILLS_COOKIE_SECURE" envDefault:"false"`

	LogLevel  string `env:"MATHDRILLS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MATHDRILLS_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"MATHDRILLS_LOG_FILE"`

	OverridesFile string `env:"MATHDRILLS_ACTIVITIES"`

	LLMProvider     string        `env:"MATHDRILLS_LLM_PROVIDER"`
	LLMTimeout      time.Duration `env:"MATHDRILLS_LLM_TIMEOUT" envDefault:"20s"`
	AnthropicKey    string        `env:"MATHDRILLS_ANTHROPIC_API_KEY"`
	AnthropicModel  string        `env:"MATHDRILLS_ANTHROPIC_MODEL"`
	OpenAIKey       string        `env:"MATHDRILLS_OPENAI_API_KEY"`
	OpenAIModel     string        `env:"MATHDRILLS_OPENAI_MODEL"`
	OpenAIBaseURL   string        `env:"MATHDRILLS_OPENAI_BASE_URL"`
	OpenRouterKey   string        `env:"MATHDRILLS_OPENROUTER_API_KEY"`
	OpenRouterModel string        `env:"MATHDRILLS_OPENROUTER_MODEL"`
	GeminiKey       string        `env:"MATHDRILLS_GEMINI_API_KEY"`
	GeminiModel     string        `env:"MATHDRILLS_GEMINI_MODEL"`
}

// Load reads .env (if present) and the environment, then validates the
// result.
func Load() (Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	var raw rawConfig
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg := raw.resolve()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (r rawConfig) resolve() Config {
	l := llm.DefaultConfig()
	l.Provider = r.LLMProvider
	l.Timeout = r.LLMTimeout

	// Bare vendor keys are accepted as fallbacks.
	l.Anthropic.APIKey = firstNonEmpty(r.AnthropicKey, os.Getenv("ANTHROPIC_API_KEY"))
	l.OpenAI.APIKey = firstNonEmpty(r.OpenAIKey, os.Getenv("OPENAI_API_KEY"))
	l.OpenRouter.APIKey = firstNonEmpty(r.OpenRouterKey, os.Getenv("OPENROUTER_API_KEY"))
	l.Gemini.APIKey = firstNonEmpty(r.GeminiKey, os.Getenv("GEMINI_API_KEY"))

	l.Anthropic.Model = firstNonEmpty(r.AnthropicModel, l.Anthropic.Model)
	l.OpenAI.Model = firstNonEmpty(r.OpenAIModel, l.OpenAI.Model)
	l.OpenAI.BaseURL = r.OpenAIBaseURL
	l.OpenRouter.Model = firstNonEmpty(r.OpenRouterModel, l.OpenRouter.Model)
	l.Gemini.Model = firstNonEmpty(r.GeminiModel, l.Gemini.Model)

	return Config{
		Addr:          r.Addr,
		Store:         r.Store,
		DBPath:        r.DBPath,
		SessionTTL:    r.SessionTTL,
		SweepInterval: r.SweepInterval,
		Cookie: Cookie{
			Name:   r.CookieName,
			Secret: r.CookieSecret,
			Secure: r.CookieSecure,
		},
		Log: logging.Config{
			Level:  r.LogLevel,
			Format: r.LogFormat,
			File:   r.LogFile,
		},
		OverridesFile: r.OverridesFile,
		LLM:           l,
	}
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("store must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session TTL must not be negative, got %s", c.SessionTTL))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval))
	}
	if c.Cookie.Name == "" {
		errs = append(errs, errors.New("cookie name is required"))
	}
	if c.Cookie.Secret != "" && len(c.Cookie.Secret) < 32 {
		errs = append(errs, fmt.Errorf("cookie secret must be at least 32 bytes, got %d", len(c.Cookie.Secret)))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
