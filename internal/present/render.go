package present

import (
	"fmt"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
)

// Form field names posted back by front ends.
const (
	FieldAnswer      = "answer"
	FieldOrder       = "order"
	FieldBlankPrefix = "blank."
)

// View is everything a front end needs to draw one screen of a drill.
type View struct {
	ActivityID string
	Title      string
	Subtitle   string
	Phase      session.Phase
	Tier       int
	MaxTier    int
	Attempted  int
	Correct    int
	Blocks     []Block
}

// Render maps the session to a view. It never mutates s.
func Render(act activity.Activity, s *session.Session) View {
	v := View{
		ActivityID: act.ID,
		Title:      act.Name,
		Subtitle:   fmt.Sprintf("%s · Grade %d", act.Topic.DisplayName(), act.Grade),
		Phase:      s.Phase(),
		Tier:       s.Tier(),
		MaxTier:    act.MaxTier,
		Attempted:  s.TotalAttempted,
		Correct:    s.TotalCorrect,
	}

	q := s.Active
	if q == nil {
		v.Blocks = []Block{Notice{Level: LevelInfo, Text: "Getting the next question ready..."}}
		return v
	}

	v.Blocks = append(v.Blocks, Text{Text: q.Prompt})
	if d := displayBlock(q.Display, s.ShowFeedback); d != nil {
		v.Blocks = append(v.Blocks, d)
	}

	if s.ShowFeedback {
		v.Blocks = append(v.Blocks, feedbackBlocks(q, s)...)
		return v
	}

	v.Blocks = append(v.Blocks, inputBlocks(q)...)
	v.Blocks = append(v.Blocks, Actions{Actions: []Action{{Name: ActionSubmit, Label: "Check answer"}}})
	return v
}

// WithWarning returns a copy of v with a warning notice above the inputs.
func (v View) WithWarning(msg string) View {
	blocks := make([]Block, 0, len(v.Blocks)+1)
	blocks = append(blocks, Notice{Level: LevelWarning, Text: msg})
	v.Blocks = append(blocks, v.Blocks...)
	return v
}

func displayBlock(d problemgen.Display, reveal bool) Block {
	switch d := d.(type) {
	case *problemgen.BarChart:
		bars := make([]Bar, len(d.Labels))
		for i, l := range d.Labels {
			bars[i] = Bar{Label: l, Value: d.Values[i]}
		}
		return Chart{Title: d.Title, Unit: d.Unit, Bars: bars}
	case *problemgen.ProductGrid:
		g := Grid{Corner: "×"}
		for _, c := range d.Cols {
			g.Cols = append(g.Cols, problemgen.FormatInt(c))
		}
		for i, r := range d.Rows {
			row := GridRow{Header: problemgen.FormatInt(r)}
			for _, cell := range d.Cells[i] {
				text := problemgen.FormatInt(cell.Value)
				if cell.Hidden && !reveal {
					text = "?"
				}
				row.Cells = append(row.Cells, text)
			}
			g.Rows = append(g.Rows, row)
		}
		return g
	case *problemgen.Table:
		return Table{Header: d.Header, Rows: d.Rows}
	case *problemgen.Rectangle:
		f := Figure{Shape: "rectangle", Width: d.Width, Height: d.Height, WidthLabel: "?", HeightLabel: "?"}
		if d.ShowWidth || reveal {
			f.WidthLabel = fmt.Sprintf("%d %s", d.Width, d.Unit)
		}
		if d.ShowHeight || reveal {
			f.HeightLabel = fmt.Sprintf("%d %s", d.Height, d.Unit)
		}
		return f
	}
	return nil
}

func inputBlocks(q *problemgen.Question) []Block {
	switch p := q.Payload.(type) {
	case *problemgen.Numeric:
		label := "Answer"
		if p.Unit != "" {
			label = fmt.Sprintf("Answer (%s)", p.Unit)
		}
		return []Block{Input{Name: FieldAnswer, Label: label, Numeric: isNumber(p.Type), Hint: typeHint(p.Type, "")}}
	case *problemgen.Choice:
		return []Block{Buttons{Name: FieldAnswer, Label: "Choose one", Options: p.Options}}
	case *problemgen.Sequence:
		label := "Pick the items from least to greatest"
		if p.Descending {
			label = "Pick the items from greatest to least"
		}
		return []Block{Picker{Name: FieldOrder, Label: label, Items: p.Items}}
	case *problemgen.Blanks:
		blocks := make([]Block, 0, len(p.Blanks))
		for _, b := range p.Blanks {
			name := FieldBlankPrefix + b.Name
			if len(b.Options) > 0 {
				blocks = append(blocks, Buttons{Name: name, Label: b.Label, Options: b.Options})
				continue
			}
			blocks = append(blocks, Input{Name: name, Label: b.Label, Numeric: isNumber(b.Type), Hint: typeHint(b.Type, b.Format)})
		}
		if len(blocks) > 1 && len(blocks) <= 3 {
			cols := make([][]Block, len(blocks))
			for i, b := range blocks {
				cols[i] = []Block{b}
			}
			return []Block{Columns{Columns: cols}}
		}
		return blocks
	case *problemgen.Clock:
		return []Block{Input{Name: FieldAnswer, Label: "Time", Hint: typeHint(problemgen.AnswerTypeTime, p.Format)}}
	}
	return nil
}

func isNumber(t problemgen.AnswerType) bool {
	return t == problemgen.AnswerTypeInteger || t == problemgen.AnswerTypeDecimal
}

func typeHint(t problemgen.AnswerType, f problemgen.ClockFormat) string {
	switch t {
	case problemgen.AnswerTypeFraction:
		return "e.g. 3/4"
	case problemgen.AnswerTypeTime:
		if f == problemgen.Clock12 {
			return "e.g. 2:30 P.M."
		}
		return "e.g. 14:30"
	}
	return ""
}

func feedbackBlocks(q *problemgen.Question, s *session.Session) []Block {
	var blocks []Block
	if s.LastCorrect {
		blocks = append(blocks, Notice{Level: LevelSuccess, Text: "Correct!"})
	} else {
		blocks = append(blocks, Notice{Level: LevelError, Text: "Not quite"})
	}

	if s.LastAnswer != nil {
		blocks = append(blocks, Text{Text: "Your answer: " + problemgen.Describe(*s.LastAnswer)})
	}
	blocks = append(blocks, Text{Text: "Correct answer: " + problemgen.Expected(q)})

	exp := Expander{Title: "Explanation", Open: !s.LastCorrect, Body: []Block{Text{Text: q.Explanation}}}
	blocks = append(blocks, exp)
	if s.TutorNote != "" {
		blocks = append(blocks, Expander{Title: "Another way to see it", Open: true, Body: []Block{Text{Text: s.TutorNote}}})
	}

	switch c := s.LastChange; {
	case c.Raised():
		blocks = append(blocks, Notice{Level: LevelSuccess, Text: fmt.Sprintf("Level up! Now at tier %d.", c.To)})
	case c.Lowered():
		blocks = append(blocks, Notice{Level: LevelInfo, Text: fmt.Sprintf("Let's practice a bit more at tier %d.", c.To)})
	}

	actions := []Action{{Name: ActionNext, Label: "Next question"}}
	if !s.LastCorrect && s.TutorNote == "" {
		actions = append(actions, Action{Name: ActionExplain, Label: "Explain it another way"})
	}
	blocks = append(blocks, Actions{Actions: actions})
	return blocks
}
