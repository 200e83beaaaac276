package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/tutor"
	"github.com/abhisek/mathdrills/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// line, such as the current tier, in the header.
type StatusProvider interface {
	Status() string
}

// BackHandler is implemented by screens that handle Esc themselves instead
// of being popped.
type BackHandler interface {
	HandlesBack() bool
}

// Env is what screens need to start and persist drills.
type Env struct {
	Catalog   *activity.Catalog
	Backend   session.Backend
	LearnerID string
	Tutor     *tutor.Explainer

	// EngineOptions are passed to every session.NewEngine call.
	EngineOptions []session.Option
}

// KV returns the learner's storage scope.
func (e *Env) KV() session.KV {
	return e.Backend.Scope(e.LearnerID)
}
