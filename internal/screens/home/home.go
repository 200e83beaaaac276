package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/router"
	"github.com/abhisek/mathdrills/internal/screen"
	"github.com/abhisek/mathdrills/internal/screens/drill"
	"github.com/abhisek/mathdrills/internal/ui/components"
	"github.com/abhisek/mathdrills/internal/ui/layout"
	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// HomeScreen lists the enabled activities grouped by topic.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	byTopic := env.Catalog.ByTopic()

	var items []components.MenuItem
	for _, t := range env.Catalog.Topics() {
		items = append(items, components.MenuItem{Label: t.DisplayName(), Header: true})
		for _, a := range byTopic[t] {
			items = append(items, components.MenuItem{
				Label:  a.Name,
				Detail: fmt.Sprintf("Grade %d", a.Grade),
				Action: startDrill(env, a),
			})
		}
	}
	items = append(items,
		components.MenuItem{Label: "", Header: true},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	return &HomeScreen{menu: components.NewMenu(items)}
}

func startDrill(env *screen.Env, a activity.Activity) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: drill.New(env, a)}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("What would you like to practice?")
	menu := h.menu.View()

	// Keep the selected item on screen when the list is taller than the
	// content area.
	lines := strings.Split(strings.TrimRight(menu, "\n"), "\n")
	room := max(height-4, 5)
	if len(lines) > room {
		start := min(max(h.menu.SelectedLine()-room/2, 0), len(lines)-room)
		lines = lines[start : start+room]
	}

	body := title + "\n\n" + strings.Join(lines, "\n")
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
