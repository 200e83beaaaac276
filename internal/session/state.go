package session

import (
	"time"

	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

// Phase is the drill-cycle position derived from a session's flags.
type Phase int

const (
	PhaseIdle     Phase = iota // No active question; the next render generates one
	PhaseQuestion              // Waiting for an answer
	PhaseFeedback              // Answer graded, feedback showing
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestion:
		return "question"
	case PhaseFeedback:
		return "feedback"
	default:
		return "idle"
	}
}

// Session is one learner's ephemeral state for one activity.
//
// Invariants: Active is non-nil whenever AnswerSubmitted is true, and
// Difficulty.Tier stays within the activity's tier range.
type Session struct {
	// ID identifies the session for logs and the admin CLI.
	ID string

	// ActivityID is the activity this session drills.
	ActivityID string

	// Difficulty holds the tier, streak counters and rolling window.
	Difficulty difficulty.State

	// TotalAttempted and TotalCorrect count graded answers. Reset leaves them
	// alone.
	TotalAttempted int
	TotalCorrect   int

	// Active is the question on screen, or nil between questions.
	Active *problemgen.Question

	// AnswerSubmitted is set once Active has been graded.
	AnswerSubmitted bool

	// ShowFeedback is set while feedback for Active is displayed.
	ShowFeedback bool

	// LastAnswer is the learner's submission for Active.
	LastAnswer *problemgen.Answer

	// LastCorrect is the grade of LastAnswer.
	LastCorrect bool

	// LastChange is the tier change caused by LastAnswer.
	LastChange difficulty.Change

	// TutorNote is an alternative explanation fetched for Active.
	TutorNote string

	StartedAt time.Time
	UpdatedAt time.Time
}

// Tier returns the current difficulty tier.
func (s *Session) Tier() int { return s.Difficulty.Tier }

// Phase reports where the session is in the drill cycle.
func (s *Session) Phase() Phase {
	switch {
	case s.Active == nil:
		return PhaseIdle
	case s.ShowFeedback:
		return PhaseFeedback
	default:
		return PhaseQuestion
	}
}

// Accuracy returns TotalCorrect / TotalAttempted, or 0 before any answer.
func (s *Session) Accuracy() float64 {
	if s.TotalAttempted == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAttempted)
}
