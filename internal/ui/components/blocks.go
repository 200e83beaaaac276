package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/ui/theme"
)

// WidgetFunc returns the live widget view for a form field. ok is false when
// the field has no widget, in which case a static rendering is drawn.
type WidgetFunc func(name string) (view string, ok bool)

// RenderBlocks draws view blocks for a terminal of the given width.
func RenderBlocks(blocks []present.Block, width int, widget WidgetFunc) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := renderBlock(b, width, widget); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b present.Block, width int, widget WidgetFunc) string {
	switch b := b.(type) {
	case present.Heading:
		return theme.Title.Render(b.Text)
	case present.Text:
		return theme.Body.Width(width).Render(b.Text)
	case present.Notice:
		return theme.Notice(string(b.Level)).Width(width - 2).Render(b.Text)
	case present.Chart:
		return renderChart(b, width)
	case present.Grid:
		return renderGrid(b)
	case present.Table:
		return renderTable(b.Header, b.Rows)
	case present.Figure:
		return renderFigure(b)
	case present.Input:
		if v, ok := lookup(widget, b.Name); ok {
			return v
		}
		return theme.Label.Render(b.Label) + "\n" + theme.Hint.Render("› "+b.Hint)
	case present.Buttons:
		if v, ok := lookup(widget, b.Name); ok {
			return v
		}
		return NewChoice(b.Label, b.Options).View()
	case present.Picker:
		if v, ok := lookup(widget, b.Name); ok {
			return v
		}
		return NewPicker(b.Label, b.Items).View()
	case present.Columns:
		colWidth := max(width/max(len(b.Columns), 1)-2, 10)
		cols := make([]string, len(b.Columns))
		for i, c := range b.Columns {
			cols[i] = lipgloss.NewStyle().Width(colWidth).MarginRight(2).
				Render(RenderBlocks(c, colWidth, widget))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	case present.Expander:
		if !b.Open {
			return theme.Hint.Render("▸ " + b.Title)
		}
		body := RenderBlocks(b.Body, width-2, widget)
		return theme.Label.Render("▾ "+b.Title) + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(body)
	case present.Actions:
		keys := make([]string, len(b.Actions))
		for i, a := range b.Actions {
			keys[i] = theme.KeyCap.Render("["+actionKey(a.Name)+"]") + " " + theme.Subtitle.Render(a.Label)
		}
		return strings.Join(keys, "   ")
	}
	return ""
}

func lookup(widget WidgetFunc, name string) (string, bool) {
	if widget == nil {
		return "", false
	}
	return widget(name)
}

// actionKey is the key the drill screen binds to a cycle action.
func actionKey(name string) string {
	switch name {
	case present.ActionSubmit, present.ActionNext:
		return "Enter"
	case present.ActionExplain:
		return "e"
	case present.ActionRestart:
		return "ctrl+r"
	}
	return name
}

func renderChart(c present.Chart, width int) string {
	labelWidth, top := 0, 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		top = max(top, b.Value)
	}
	barMax := max(width-labelWidth-12, 10)

	var sb strings.Builder
	sb.WriteString(theme.Label.Render(c.Title))
	if c.Unit != "" {
		sb.WriteString(theme.Hint.Render(" (" + c.Unit + ")"))
	}
	for _, b := range c.Bars {
		n := 0
		if top > 0 {
			n = b.Value * barMax / top
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%*s ", labelWidth, b.Label))
		sb.WriteString(theme.BarFill.Render(strings.Repeat("█", n)))
		sb.WriteString(theme.Subtitle.Render(fmt.Sprintf(" %d", b.Value)))
	}
	return sb.String()
}

func renderGrid(g present.Grid) string {
	header := append([]string{g.Corner}, g.Cols...)
	rows := make([][]string, len(g.Rows))
	for i, r := range g.Rows {
		rows[i] = append([]string{r.Header}, r.Cells...)
	}
	return renderTable(header, rows)
}

func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
		return strings.Join(padded, " │ ")
	}

	var sb strings.Builder
	head := line(header)
	sb.WriteString(theme.Label.Render(head))
	sb.WriteString("\n")
	sb.WriteString(theme.Rule.Render(strings.Repeat("─", lipgloss.Width(head))))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(theme.Body.Render(line(r)))
	}
	return theme.Card.Render(sb.String())
}

// renderFigure draws a rectangle scaled to the terminal with its side
// labels. Other shapes fall back to a text description.
func renderFigure(f present.Figure) string {
	if f.Shape != "rectangle" {
		return theme.Body.Render(fmt.Sprintf("%s %s by %s", f.Shape, f.WidthLabel, f.HeightLabel))
	}
	w := min(max(f.Width*2, 8), 40)
	h := min(max(f.Height, 2), 8)

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Secondary).
		Width(w).
		Height(h).
		Render("")
	top := lipgloss.PlaceHorizontal(lipgloss.Width(box), lipgloss.Center, theme.Label.Render(f.WidthLabel))
	side := lipgloss.PlaceVertical(lipgloss.Height(box), lipgloss.Center, " "+theme.Label.Render(f.HeightLabel))
	return top + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, box, side)
}
