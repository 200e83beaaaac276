// Package tutor produces an alternative explanation after a wrong answer.
// It uses a language model when one is configured and falls back to the
// question's own worked solution otherwise. It never changes grading.
package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
)

// Note is an alternative explanation.
type Note struct {
	Explanation string
	Tip         string

	// FromModel is false when the note is the built-in fallback.
	FromModel bool
}

// String formats the note for display.
func (n Note) String() string {
	if n.Tip == "" {
		return n.Explanation
	}
	return n.Explanation + "\n\nTip: " + n.Tip
}

// Explainer asks a provider to re-explain a question.
type Explainer struct {
	provider  llm.Provider
	timeout   time.Duration
	maxTokens int
	logger    *slog.Logger
}

// Option configures an Explainer.
type Option func(*Explainer)

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(e *Explainer) { e.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Explainer) { e.logger = l }
}

// New returns an Explainer. A nil provider makes every note a fallback.
func New(provider llm.Provider, opts ...Option) *Explainer {
	e := &Explainer{
		provider:  provider,
		timeout:   20 * time.Second,
		maxTokens: 600,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Enabled reports whether a provider is configured.
func (e *Explainer) Enabled() bool {
	return e != nil && e.provider != nil
}

type noteOutput struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

// Explain returns an alternative explanation of q for a learner who answered
// given. Provider failures are logged and answered with the fallback note.
func (e *Explainer) Explain(ctx context.Context, activityName string, q *problemgen.Question, given problemgen.Answer) Note {
	if q == nil {
		return Note{}
	}
	if !e.Enabled() {
		return Fallback(q)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.provider.Complete(ctx, llm.Request{
		Purpose:     "tutor",
		System:      systemPrompt,
		Prompt:      buildPrompt(activityName, q, given),
		Schema:      NoteSchema,
		MaxTokens:   e.maxTokens,
		Temperature: 0.4,
	})
	if err != nil {
		e.logger.WarnContext(ctx, "tutor fell back to built-in explanation", "activity", q.ActivityID, "error", err)
		return Fallback(q)
	}

	var out noteOutput
	if err := resp.Decode(&out); err != nil || strings.TrimSpace(out.Explanation) == "" {
		e.logger.WarnContext(ctx, "tutor reply unusable", "activity", q.ActivityID, "error", err)
		return Fallback(q)
	}
	return Note{
		Explanation: strings.TrimSpace(out.Explanation),
		Tip:         strings.TrimSpace(out.Tip),
		FromModel:   true,
	}
}

// Annotate stores a note on s for its graded question. It does nothing unless
// s shows feedback for a wrong answer or already has a note.
func (e *Explainer) Annotate(ctx context.Context, activityName string, s *session.Session) bool {
	if s == nil || !s.ShowFeedback || s.LastCorrect || s.TutorNote != "" || s.Active == nil {
		return false
	}
	var given problemgen.Answer
	if s.LastAnswer != nil {
		given = *s.LastAnswer
	}
	s.TutorNote = e.Explain(ctx, activityName, s.Active, given).String()
	return true
}

// Fallback builds a note from the question's worked solution and a hint for
// its answer shape.
func Fallback(q *problemgen.Question) Note {
	return Note{
		Explanation: fmt.Sprintf("%s The answer is %s.", strings.TrimSpace(q.Explanation), problemgen.Expected(q)),
		Tip:         hint(q),
	}
}

func hint(q *problemgen.Question) string {
	switch p := q.Payload.(type) {
	case *problemgen.Choice:
		if p.Extreme != nil {
			return "Look at every value before you pick. More than one entry can share the top or bottom spot."
		}
		return "Rule out the options you know are wrong first."
	case *problemgen.Sequence:
		if p.Descending {
			return "Find the largest value first, then the next largest."
		}
		return "Find the smallest value first, then the next smallest."
	case *problemgen.Blanks:
		return "Fill in one blank at a time and check each against the picture."
	case *problemgen.Clock:
		if p.Format == problemgen.Clock12 {
			return "Hours after 12 in 24-hour time are P.M.: subtract 12."
		}
		return "For P.M. times add 12 to the hour."
	case *problemgen.Numeric:
		switch p.Type {
		case problemgen.AnswerTypeDecimal:
			return "Line up the decimal points before you compare or add."
		case problemgen.AnswerTypeFraction:
			return "Simplify by dividing the top and bottom by the same number."
		}
	}
	return "Estimate first, then check that your answer is close to the estimate."
}
