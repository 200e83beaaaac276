package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// Choice is a single-choice selector. Options are picked with the arrow
// keys or their number. When every option is itself a number, a digit key
// picks the option with that text and the list is not numbered.
type Choice struct {
	Label    string
	Options  []string
	Cursor   int
	Chosen   int // -1 until an option is picked
	Focused  bool
}

// NewChoice creates a choice with nothing picked.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options, Chosen: -1}
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		c.Chosen = c.Cursor
	default:
		n, ok := digit(key)
		if !ok {
			break
		}
		if NumeralOptions(c.Options) {
			for i, opt := range c.Options {
				if opt == key {
					c.Cursor, c.Chosen = i, i
				}
			}
		} else if n >= 1 && n <= len(c.Options) {
			c.Cursor, c.Chosen = n-1, n-1
		}
	}
	return c, nil
}

// Value returns the chosen option text, or "" when nothing is chosen.
func (c Choice) Value() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// View renders the choice list.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(c.Label))
	b.WriteString("\n")
	numerals := NumeralOptions(c.Options)
	for i, opt := range c.Options {
		mark := "( )"
		if i == c.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		if c.Focused && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d %s %s", prefix, i+1, mark, opt)
		if numerals {
			line = fmt.Sprintf("%s%s %s", prefix, mark, opt)
		}
		if i == c.Chosen || (c.Focused && i == c.Cursor) {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NumeralOptions reports whether every option is a whole number written in
// digits. Such options cannot also be picked by their position.
func NumeralOptions(options []string) bool {
	if len(options) == 0 {
		return false
	}
	for _, opt := range options {
		if opt == "" {
			return false
		}
		for i := 0; i < len(opt); i++ {
			if opt[i] < '0' || opt[i] > '9' {
				return false
			}
		}
	}
	return true
}

func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}
