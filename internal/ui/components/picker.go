package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// Picker collects an ordering of Items. Pressing an item's number appends
// it; backspace removes the last pick.
type Picker struct {
	Label   string
	Items   []string
	Picked  []int
	Focused bool
}

// NewPicker creates an empty picker.
func NewPicker(label string, items []string) Picker {
	return Picker{Label: label, Items: items}
}

// Update handles number keys and backspace.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}
	key := kmsg.String()
	if key == "backspace" {
		if len(p.Picked) > 0 {
			p.Picked = p.Picked[:len(p.Picked)-1]
		}
		return p, nil
	}
	if n, ok := digit(key); ok && n >= 1 && n <= len(p.Items) && !slices.Contains(p.Picked, n-1) {
		p.Picked = append(p.Picked, n-1)
	}
	return p, nil
}

// Complete reports whether every item has been picked.
func (p Picker) Complete() bool {
	return len(p.Picked) == len(p.Items)
}

// View renders the items and the order picked so far.
func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(p.Label))
	b.WriteString("\n")
	for i, item := range p.Items {
		line := fmt.Sprintf("  %d  %s", i+1, item)
		if slices.Contains(p.Picked, i) {
			b.WriteString(theme.Picked.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	order := make([]string, len(p.Picked))
	for i, idx := range p.Picked {
		order[i] = p.Items[idx]
	}
	cursor := ""
	if p.Focused && !p.Complete() {
		cursor = "_"
	}
	b.WriteString(theme.Body.Render("  Order: " + strings.Join(order, ", ") + cursor))
	b.WriteString("\n")
	return b.String()
}
