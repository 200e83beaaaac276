// Package llm talks to hosted language models. Every request asks for a JSON
// reply that is checked against a schema before it is returned.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt to a model and returns its JSON reply.
type Provider interface {
	// Complete sends req and returns the reply. When req.Schema is set the
	// reply has already been validated against it.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Model returns the model identifier requests are sent to.
	Model() string
}

// Request is a single-turn prompt.
type Request struct {
	// Purpose labels the request in logs, e.g. "tutor-explain".
	Purpose string

	System string
	Prompt string

	// Schema, when set, asks the provider for structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Response is a model reply.
type Response struct {
	Content   json.RawMessage
	Model     string
	Usage     Usage
	Truncated bool // generation hit MaxTokens
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Decode unmarshals the reply content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}
