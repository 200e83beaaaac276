package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// numberChars are the characters a numeric field accepts.
const numberChars = "0123456789.,-/"

// TextInput wraps bubbles/textinput with the app styling.
type TextInput struct {
	Model       textinput.Model
	Label       string
	Hint        string
	NumericOnly bool
}

// NewTextInput creates a new styled text input. The input starts blurred.
func NewTextInput(label, hint string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = hint
	ti.Prompt = "› "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return TextInput{
		Model:       ti,
		Label:       label,
		Hint:        hint,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. Numeric inputs drop keys that cannot appear in
// a number, a fraction or a grouped integer.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			if txt := kmsg.Text; txt != "" && !strings.ContainsAny(txt, numberChars) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input.
func (t TextInput) View() string {
	label := theme.Label.Render(t.Label)
	return label + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
