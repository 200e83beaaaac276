// Package difficulty adapts an activity's tier to the learner's recent
// answers. The tier always stays within [1, MaxTier].
package difficulty

import (
	"errors"
	"fmt"
)

// State is the per-activity difficulty state kept in the learner's session.
type State struct {
	Tier          int    `json:"tier"`
	StreakCorrect int    `json:"streak_correct"`
	StreakWrong   int    `json:"streak_wrong"`
	Recent        []bool `json:"recent,omitempty"` // rolling window, oldest first
}

// NewState returns the initial state: tier 1, no streaks.
func NewState() State {
	return State{Tier: 1}
}

// Change reports a tier transition caused by one answer.
type Change struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Raised reports whether the tier went up.
func (c Change) Raised() bool { return c.To > c.From }

// Lowered reports whether the tier went down.
func (c Change) Lowered() bool { return c.To < c.From }

// Changed reports whether the tier moved at all.
func (c Change) Changed() bool { return c.To != c.From }

// Policy decides when the tier moves. The set of implementations is closed:
// Streak and Rolling.
type Policy interface {
	fmt.Stringer
	Validate() error
	isPolicy()
}

// Streak moves the tier up after Up consecutive correct answers and down
// after Down consecutive wrong ones.
type Streak struct {
	Up   int `json:"up" yaml:"up"`
	Down int `json:"down" yaml:"down"`
}

// Rolling moves the tier by accuracy over the last Window answers: up at or
// above Raise, down at or below Lower. The window restarts after a move.
type Rolling struct {
	Window int     `json:"window" yaml:"window"`
	Raise  float64 `json:"raise" yaml:"raise"`
	Lower  float64 `json:"lower" yaml:"lower"`
}

func (Streak) isPolicy()  {}
func (Rolling) isPolicy() {}

func (p Streak) String() string { return fmt.Sprintf("streak %d/%d", p.Up, p.Down) }

func (p Rolling) String() string {
	return fmt.Sprintf("rolling %d (>=%.2f up, <=%.2f down)", p.Window, p.Raise, p.Lower)
}

// ErrInvalidPolicy is wrapped by Validate failures.
var ErrInvalidPolicy = errors.New("invalid difficulty policy")

func (p Streak) Validate() error {
	if p.Up < 1 || p.Down < 1 {
		return fmt.Errorf("%w: streak thresholds must be at least 1, got %d/%d", ErrInvalidPolicy, p.Up, p.Down)
	}
	return nil
}

func (p Rolling) Validate() error {
	if p.Window < 1 {
		return fmt.Errorf("%w: rolling window must be at least 1, got %d", ErrInvalidPolicy, p.Window)
	}
	if p.Lower < 0 || p.Raise > 1 || p.Lower >= p.Raise {
		return fmt.Errorf("%w: need 0 <= lower < raise <= 1, got %.2f/%.2f", ErrInvalidPolicy, p.Lower, p.Raise)
	}
	return nil
}

// Controller applies a policy to a state for an activity with MaxTier tiers.
type Controller struct {
	MaxTier int
	Policy  Policy
}

// New returns a controller. It fails on a non-positive tier count or an
// invalid policy.
func New(maxTier int, policy Policy) (*Controller, error) {
	if maxTier < 1 {
		return nil, fmt.Errorf("max tier must be at least 1, got %d", maxTier)
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidPolicy)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Controller{MaxTier: maxTier, Policy: policy}, nil
}

// Record updates s for one graded answer and reports the tier change.
// Streak counters are updated under every policy.
func (c *Controller) Record(s *State, correct bool) Change {
	s.Tier = c.Clamp(s.Tier)
	from := s.Tier

	if correct {
		s.StreakCorrect++
		s.StreakWrong = 0
	} else {
		s.StreakWrong++
		s.StreakCorrect = 0
	}

	switch p := c.Policy.(type) {
	case Streak:
		c.applyStreak(s, p)
	case Rolling:
		c.applyRolling(s, p, correct)
	}

	s.Tier = c.Clamp(s.Tier)
	return Change{From: from, To: s.Tier}
}

func (c *Controller) applyStreak(s *State, p Streak) {
	if s.StreakCorrect >= p.Up {
		s.Tier = min(s.Tier+1, c.MaxTier)
		s.StreakCorrect = 0
	}
	if s.StreakWrong >= p.Down {
		s.Tier = max(s.Tier-1, 1)
		s.StreakWrong = 0
	}
}

func (c *Controller) applyRolling(s *State, p Rolling, correct bool) {
	s.Recent = append(s.Recent, correct)
	if len(s.Recent) > p.Window {
		s.Recent = s.Recent[len(s.Recent)-p.Window:]
	}
	if len(s.Recent) < p.Window {
		return
	}

	acc := Accuracy(s.Recent)
	switch {
	case acc >= p.Raise && s.Tier < c.MaxTier:
		s.Tier++
		s.Recent = nil
	case acc <= p.Lower && s.Tier > 1:
		s.Tier--
		s.Recent = nil
	}
}

// Clamp bounds tier to [1, MaxTier].
func (c *Controller) Clamp(tier int) int {
	return max(1, min(tier, c.MaxTier))
}

// Accuracy returns the share of true values, or 0 for an empty window.
func Accuracy(window []bool) float64 {
	if len(window) == 0 {
		return 0
	}
	n := 0
	for _, ok := range window {
		if ok {
			n++
		}
	}
	return float64(n) / float64(len(window))
}
