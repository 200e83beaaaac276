package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	ActivityID   string
	ActivityName string
	Duration     time.Duration
	Attempted    int
	Correct      int
	Accuracy     float64
	Tier         int
	MaxTier      int
}

// BuildSummary creates a Summary from the current session state.
func (e *Engine) BuildSummary(s *Session) *Summary {
	return &Summary{
		ActivityID:   e.act.ID,
		ActivityName: e.act.Name,
		Duration:     s.UpdatedAt.Sub(s.StartedAt),
		Attempted:    s.TotalAttempted,
		Correct:      s.TotalCorrect,
		Accuracy:     s.Accuracy(),
		Tier:         s.Difficulty.Tier,
		MaxTier:      e.act.MaxTier,
	}
}
