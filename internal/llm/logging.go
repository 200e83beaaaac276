package llm

import (
	"context"
	"log/slog"
	"time"
)

type logged struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging logs every request's outcome, latency and token usage. Prompts
// and replies are logged only at debug level.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	return &logged{inner: p, logger: logger.With("model", p.Model())}
}

func (l *logged) Model() string { return l.inner.Model() }

func (l *logged) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Complete(ctx, req)

	attrs := []any{
		"purpose", req.Purpose,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, "error", err)...)
		return nil, err
	}

	attrs = append(attrs,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"truncated", resp.Truncated,
	)
	l.logger.InfoContext(ctx, "llm request", attrs...)
	l.logger.DebugContext(ctx, "llm exchange", "purpose", req.Purpose, "prompt", req.Prompt, "reply", string(resp.Content))
	return resp, nil
}
