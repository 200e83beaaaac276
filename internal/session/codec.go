package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

// recordVersion is bumped whenever the stored record layout changes.
// Records with another version are discarded.
const recordVersion = 1

// ErrNoSession is returned by Load when the learner has no stored session
// for the activity.
var ErrNoSession = errors.New("no stored session")

// Key returns the KV key a session for activityID is stored under.
func Key(activityID string) string {
	return "activity:" + activityID
}

// questionRef identifies a question by what reproduces it. Questions are
// never stored; Load rebuilds them from the generator.
type questionRef struct {
	Tier int    `json:"tier"`
	Seed uint64 `json:"seed"`
}

type record struct {
	Version         int               `json:"version"`
	ID              string            `json:"id"`
	ActivityID      string            `json:"activity_id"`
	Difficulty      difficulty.State  `json:"difficulty"`
	TotalAttempted  int               `json:"total_attempted"`
	TotalCorrect    int               `json:"total_correct"`
	Question        *questionRef      `json:"question,omitempty"`
	AnswerSubmitted bool              `json:"answer_submitted"`
	ShowFeedback    bool              `json:"show_feedback"`
	LastAnswer      []string          `json:"last_answer,omitempty"`
	LastCorrect     bool              `json:"last_correct"`
	LastChange      difficulty.Change `json:"last_change"`
	TutorNote       string            `json:"tutor_note,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Save stores s in kv under Key(s.ActivityID).
func Save(ctx context.Context, kv KV, s *Session) error {
	rec := record{
		Version:         recordVersion,
		ID:              s.ID,
		ActivityID:      s.ActivityID,
		Difficulty:      s.Difficulty,
		TotalAttempted:  s.TotalAttempted,
		TotalCorrect:    s.TotalCorrect,
		AnswerSubmitted: s.AnswerSubmitted,
		ShowFeedback:    s.ShowFeedback,
		LastCorrect:     s.LastCorrect,
		LastChange:      s.LastChange,
		TutorNote:       s.TutorNote,
		StartedAt:       s.StartedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Active != nil {
		rec.Question = &questionRef{Tier: s.Active.Tier, Seed: s.Active.Seed}
	}
	if s.LastAnswer != nil {
		rec.LastAnswer = s.LastAnswer.Values
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := kv.Set(ctx, Key(s.ActivityID), data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads the session for e's activity from kv and rebuilds its active
// question. It returns ErrNoSession when nothing usable is stored.
func Load(ctx context.Context, kv KV, e *Engine) (*Session, error) {
	data, ok, err := kv.Get(ctx, Key(e.act.ID))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNoSession
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		e.logger.Warn("discarding unreadable session record", "error", err)
		return nil, ErrNoSession
	}
	if rec.Version != recordVersion || rec.ActivityID != e.act.ID {
		e.logger.Warn("discarding stale session record", "version", rec.Version, "stored_activity", rec.ActivityID)
		return nil, ErrNoSession
	}

	s := &Session{
		ID:              rec.ID,
		ActivityID:      rec.ActivityID,
		Difficulty:      rec.Difficulty,
		TotalAttempted:  rec.TotalAttempted,
		TotalCorrect:    rec.TotalCorrect,
		AnswerSubmitted: rec.AnswerSubmitted,
		ShowFeedback:    rec.ShowFeedback,
		LastCorrect:     rec.LastCorrect,
		LastChange:      rec.LastChange,
		TutorNote:       rec.TutorNote,
		StartedAt:       rec.StartedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	s.Difficulty.Tier = e.ctrl.Clamp(s.Difficulty.Tier)
	if rec.LastAnswer != nil {
		a := problemgen.NewAnswer(rec.LastAnswer...)
		s.LastAnswer = &a
	}

	if rec.Question != nil {
		q, err := e.build(rec.Question.Tier, rec.Question.Seed)
		if err != nil {
			return nil, fmt.Errorf("rebuild question: %w", err)
		}
		s.Active = q
	}
	if s.Active == nil {
		// Flags without a question would break grading; start the question over.
		Reset(s)
	}
	return s, nil
}

// Forget deletes the stored session for activityID.
func Forget(ctx context.Context, kv KV, activityID string) error {
	if err := kv.Delete(ctx, Key(activityID)); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}

// Open loads the learner's session for e's activity, or starts a new one,
// and makes sure a question is active. The session is not saved.
func (e *Engine) Open(ctx context.Context, kv KV) (*Session, error) {
	s, err := Load(ctx, kv, e)
	switch {
	case errors.Is(err, ErrNoSession):
		s = e.NewSession("")
	case err != nil:
		return nil, err
	}
	if err := e.Ensure(s); err != nil {
		return nil, err
	}
	return s, nil
}
