// Package session runs the adaptive drill cycle for one activity:
// generate, present, submit, feedback, next.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

var (
	// ErrNoActiveQuestion is returned by Submit when nothing is on screen.
	ErrNoActiveQuestion = errors.New("no active question")

	// ErrAlreadySubmitted is returned by Submit when the active question has
	// already been graded.
	ErrAlreadySubmitted = errors.New("answer already submitted")
)

// Result is the outcome of a graded submission.
type Result struct {
	Correct     bool
	Expected    string
	Explanation string
	Change      difficulty.Change
}

// Engine binds one activity to the drill cycle. It holds no per-learner
// state and is safe for concurrent use as long as each Session is used by
// one goroutine at a time.
type Engine struct {
	act        activity.Activity
	ctrl       *difficulty.Controller
	validators []problemgen.Validator
	seeds      func() uint64
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeedSource sets the function that picks seeds for new questions.
func WithSeedSource(f func() uint64) Option {
	return func(e *Engine) { e.seeds = f }
}

// WithClock sets the time source for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithValidators replaces the default validator chain.
func WithValidators(v []problemgen.Validator) Option {
	return func(e *Engine) { e.validators = v }
}

// NewEngine creates an engine for act.
func NewEngine(act activity.Activity, opts ...Option) *Engine {
	e := &Engine{
		act:        act,
		ctrl:       act.Controller(),
		validators: problemgen.DefaultValidators(),
		seeds:      rand.Uint64,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	e.logger = e.logger.With("activity", act.ID)
	return e
}

// Activity returns the activity the engine drills.
func (e *Engine) Activity() activity.Activity { return e.act }

// NewSession creates a session at tier 1. An empty id gets a random one.
func (e *Engine) NewSession(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := e.now()
	return &Session{
		ID:         id,
		ActivityID: e.act.ID,
		Difficulty: difficulty.NewState(),
		StartedAt:  now,
		UpdatedAt:  now,
	}
}

// Ensure generates a question if the session has none.
func (e *Engine) Ensure(s *Session) error {
	if s.Active != nil {
		return nil
	}
	s.Difficulty.Tier = e.ctrl.Clamp(s.Difficulty.Tier)
	q, err := e.build(s.Difficulty.Tier, e.seeds())
	if err != nil {
		return err
	}
	s.Active = q
	s.UpdatedAt = e.now()
	e.logger.Debug("question generated", "session", s.ID, "tier", q.Tier, "seed", q.Seed)
	return nil
}

func (e *Engine) build(tier int, seed uint64) (*problemgen.Question, error) {
	q, err := problemgen.Build(e.act.Generator, e.act.ID, tier, seed, e.validators)
	if err != nil {
		e.logger.Error("question generation failed", "tier", tier, "seed", seed, "error", err)
		return nil, err
	}
	return q, nil
}

// Submit grades a against the active question. A blank answer returns
// problemgen.ErrEmptyAnswer and leaves the session untouched.
func (e *Engine) Submit(s *Session, a problemgen.Answer) (Result, error) {
	q := s.Active
	if q == nil {
		return Result{}, ErrNoActiveQuestion
	}
	if s.AnswerSubmitted {
		return Result{}, ErrAlreadySubmitted
	}

	correct, err := problemgen.Grade(q, a)
	if err != nil {
		return Result{}, fmt.Errorf("submit: %w", err)
	}

	s.TotalAttempted++
	if correct {
		s.TotalCorrect++
	}
	change := e.ctrl.Record(&s.Difficulty, correct)

	answer := a
	s.LastAnswer = &answer
	s.LastCorrect = correct
	s.LastChange = change
	s.AnswerSubmitted = true
	s.ShowFeedback = true
	s.UpdatedAt = e.now()

	e.logger.Debug("answer graded", "session", s.ID, "correct", correct, "tier_from", change.From, "tier_to", change.To)

	return Result{
		Correct:     correct,
		Expected:    problemgen.Expected(q),
		Explanation: q.Explanation,
		Change:      change,
	}, nil
}

// Reset clears the active question and per-question fields. Difficulty and
// counters are kept. Calling it twice is the same as calling it once.
func (e *Engine) Reset(s *Session) {
	Reset(s)
}

// Next resets the session and generates a fresh question.
func (e *Engine) Next(s *Session) error {
	Reset(s)
	s.UpdatedAt = e.now()
	return e.Ensure(s)
}

// Reset clears the per-question state of s.
func Reset(s *Session) {
	s.Active = nil
	s.AnswerSubmitted = false
	s.ShowFeedback = false
	s.LastAnswer = nil
	s.LastCorrect = false
	s.LastChange = difficulty.Change{}
	s.TutorNote = ""
}
