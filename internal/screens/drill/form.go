package drill

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/ui/components"
)

type fieldKind int

const (
	fieldInput fieldKind = iota
	fieldChoice
	fieldPicker
)

// field is one answer widget bound to a form field name.
type field struct {
	name   string
	kind   fieldKind
	input  components.TextInput
	choice components.Choice
	picker components.Picker
}

func (f *field) value() string {
	switch f.kind {
	case fieldChoice:
		return f.choice.Value()
	case fieldPicker:
		return present.FormatOrder(f.picker.Picked)
	default:
		return f.input.Value()
	}
}

func (f *field) view() string {
	switch f.kind {
	case fieldChoice:
		return f.choice.View()
	case fieldPicker:
		return f.picker.View()
	default:
		return f.input.View()
	}
}

func (f *field) setFocus(on bool) tea.Cmd {
	f.choice.Focused = on
	f.picker.Focused = on
	if f.kind != fieldInput {
		return nil
	}
	if on {
		return f.input.Focus()
	}
	f.input.Blur()
	return nil
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.kind {
	case fieldChoice:
		f.choice, cmd = f.choice.Update(msg)
	case fieldPicker:
		f.picker, cmd = f.picker.Update(msg)
	default:
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

// form holds the answer widgets for one question. Tab moves focus.
type form struct {
	fields []*field
	focus  int
}

// newForm builds widgets for the input blocks of a view, looking inside
// columns.
func newForm(blocks []present.Block) *form {
	f := &form{}
	f.collect(blocks)
	return f
}

func (f *form) collect(blocks []present.Block) {
	for _, b := range blocks {
		switch b := b.(type) {
		case present.Input:
			f.fields = append(f.fields, &field{
				name:  b.Name,
				kind:  fieldInput,
				input: components.NewTextInput(b.Label, b.Hint, b.Numeric, 24),
			})
		case present.Buttons:
			f.fields = append(f.fields, &field{
				name:   b.Name,
				kind:   fieldChoice,
				choice: components.NewChoice(b.Label, b.Options),
			})
		case present.Picker:
			f.fields = append(f.fields, &field{
				name:   b.Name,
				kind:   fieldPicker,
				picker: components.NewPicker(b.Label, b.Items),
			})
		case present.Columns:
			for _, c := range b.Columns {
				f.collect(c)
			}
		}
	}
}

// focusCurrent focuses the current field and blurs the rest.
func (f *form) focusCurrent() tea.Cmd {
	var cmds []tea.Cmd
	for i, fld := range f.fields {
		cmds = append(cmds, fld.setFocus(i == f.focus))
	}
	return tea.Batch(cmds...)
}

func (f *form) move(delta int) tea.Cmd {
	if len(f.fields) < 2 {
		return nil
	}
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.focusCurrent()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].update(msg)
}

// value returns the posted value for name, "" if there is no such field.
func (f *form) value(name string) string {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value()
		}
	}
	return ""
}

// widget implements components.WidgetFunc.
func (f *form) widget(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.view(), true
		}
	}
	return "", false
}
