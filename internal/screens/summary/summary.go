package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrills/internal/router"
	"github.com/abhisek/mathdrills/internal/screen"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/ui/components"
	"github.com/abhisek/mathdrills/internal/ui/layout"
	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// SummaryScreen displays the results of a drill.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render(sum.ActivityName)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Subtitle.Render(fmt.Sprintf("Time: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	if sum.Attempted == 0 {
		b.WriteString(center(theme.Body.Render("No questions answered yet. Come back any time!")))
		b.WriteString("\n")
		return b.String()
	}

	stats := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Attempted, sum.Correct, sum.Accuracy*100)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	b.WriteString(center(components.NewTierBar(sum.Tier, sum.MaxTier, min(width-8, 50)).View()))
	b.WriteString("\n\n")

	msg, style := "Keep practicing, you're getting there.", theme.Body
	switch {
	case sum.Accuracy >= 0.9:
		msg, style = "Outstanding work!", theme.Notice("success")
	case sum.Accuracy >= 0.7:
		msg, style = "Nice job!", theme.Notice("info")
	}
	b.WriteString(center(style.Render(msg)))
	b.WriteString("\n")
	return b.String()
}
