package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// New builds the configured provider wrapped as caller → retry → logging →
// provider. It returns nil, nil when no provider is configured.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderNone:
		return nil, nil
	case ProviderMock:
		base = NewMock()
	case ProviderAnthropic:
		base, err = NewAnthropic(cfg.Anthropic)
	case ProviderOpenAI, ProviderOpenRouter:
		base, err = NewOpenAI(cfg.Endpoint())
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, logger.With("provider", cfg.Provider)), cfg.Retry), nil
}
