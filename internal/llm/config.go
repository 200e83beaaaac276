package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = ""
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects a provider and its credentials. An empty Provider disables
// model calls altogether.
type Config struct {
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	OpenRouter Endpoint
	Gemini     Endpoint

	// Timeout bounds one Complete call including retries.
	Timeout time.Duration
	Retry   Backoff
}

// Endpoint is one provider's credentials and model.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string // optional override
}

// DefaultConfig returns a disabled Config with default models and retry
// settings.
func DefaultConfig() Config {
	return Config{
		Anthropic:  Endpoint{Model: "claude-haiku-4-5"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		OpenRouter: Endpoint{Model: "google/gemini-2.0-flash-001", BaseURL: openRouterBaseURL},
		Gemini:     Endpoint{Model: "gemini-2.0-flash"},
		Timeout:    20 * time.Second,
		Retry:      DefaultBackoff(),
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ProviderNone
}

// Endpoint returns the settings of the selected provider.
func (c Config) Endpoint() Endpoint {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderOpenRouter:
		return c.OpenRouter
	case ProviderGemini:
		return c.Gemini
	}
	return Endpoint{}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.Endpoint().APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
		if c.Endpoint().Model == "" {
			return fmt.Errorf("a model is required for the %s provider", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
