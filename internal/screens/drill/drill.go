package drill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/router"
	"github.com/abhisek/mathdrills/internal/screen"
	"github.com/abhisek/mathdrills/internal/screens/summary"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/tutor"
	"github.com/abhisek/mathdrills/internal/ui/components"
	"github.com/abhisek/mathdrills/internal/ui/layout"
	"github.com/abhisek/mathdrills/internal/ui/theme"
)

const emptyWarning = "Please enter an answer before checking."

// sessionOpenedMsg carries the learner's session once it is loaded.
type sessionOpenedMsg struct {
	Session *session.Session
	Err     error
}

// explainedMsg carries a tutor note for the question with seed Seed.
type explainedMsg struct {
	Seed uint64
	Note tutor.Note
}

// DrillScreen runs the question/answer cycle for one activity.
type DrillScreen struct {
	env        *screen.Env
	eng        *session.Engine
	s          *session.Session
	form       *form
	formSeed   uint64
	warning    string
	errMsg     string
	explaining bool
}

var (
	_ screen.Screen          = (*DrillScreen)(nil)
	_ screen.KeyHintProvider = (*DrillScreen)(nil)
	_ screen.StatusProvider  = (*DrillScreen)(nil)
	_ screen.BackHandler     = (*DrillScreen)(nil)
)

// New creates a drill screen for act.
func New(env *screen.Env, act activity.Activity) *DrillScreen {
	return &DrillScreen{
		env: env,
		eng: session.NewEngine(act, env.EngineOptions...),
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	eng, kv := d.eng, d.env.KV()
	return func() tea.Msg {
		ctx := context.Background()
		s, err := eng.Open(ctx, kv)
		if err == nil {
			err = session.Save(ctx, kv, s)
		}
		return sessionOpenedMsg{Session: s, Err: err}
	}
}

func (d *DrillScreen) Title() string {
	return d.eng.Activity().Name
}

// Status shows the tier and score.
func (d *DrillScreen) Status() string {
	if d.s == nil {
		return ""
	}
	return fmt.Sprintf("Level %d  %d/%d  ", d.s.Tier(), d.s.TotalCorrect, d.s.TotalAttempted)
}

// HandlesBack reports that Esc opens the summary instead of popping.
func (d *DrillScreen) HandlesBack() bool {
	return true
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	if d.s == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if d.s.ShowFeedback {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
		if d.canExplain() {
			hints = append(hints, layout.KeyHint{Key: "e", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
	if d.form != nil && len(d.form.fields) > 1 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next field"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Finish"},
	)
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionOpenedMsg:
		if msg.Err != nil {
			d.errMsg = "Could not open this activity: " + msg.Err.Error()
			return d, nil
		}
		d.s = msg.Session
		return d, d.syncForm()

	case explainedMsg:
		d.explaining = false
		if d.canExplain() && d.s.Active.Seed == msg.Seed {
			d.s.TutorNote = msg.Note.String()
			d.persist()
		}
		return d, nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}

	if d.form != nil && d.s != nil && d.s.Phase() == session.PhaseQuestion {
		return d, d.form.update(msg)
	}
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if d.s == nil {
		if key == "esc" {
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return d, nil
	}

	switch key {
	case "esc":
		sum := summary.New(d.eng.BuildSummary(d.s))
		return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
	case "ctrl+r":
		return d, d.restart()
	}

	if d.s.ShowFeedback {
		switch key {
		case "enter", "n":
			return d, d.next()
		case "e":
			if d.canExplain() && !d.explaining {
				d.explaining = true
				return d, d.explain()
			}
		}
		return d, nil
	}
	if d.form == nil {
		return d, nil
	}

	switch key {
	case "enter":
		d.submit()
		return d, nil
	case "tab":
		return d, d.form.move(1)
	case "shift+tab":
		return d, d.form.move(-1)
	}
	return d, d.form.update(msg)
}

func (d *DrillScreen) submit() {
	if d.form == nil || d.s.Active == nil {
		return
	}
	ans := present.AnswerFromForm(d.s.Active, d.form.value)
	_, err := d.eng.Submit(d.s, ans)
	switch {
	case errors.Is(err, problemgen.ErrEmptyAnswer):
		d.warning = emptyWarning
		return
	case errors.Is(err, session.ErrAlreadySubmitted):
		return
	case err != nil:
		d.errMsg = err.Error()
		return
	}
	d.warning = ""
	d.persist()
}

func (d *DrillScreen) next() tea.Cmd {
	if err := d.eng.Next(d.s); err != nil {
		d.errMsg = err.Error()
		return nil
	}
	d.warning = ""
	d.explaining = false
	d.persist()
	return d.syncForm()
}

func (d *DrillScreen) restart() tea.Cmd {
	ctx := context.Background()
	if err := session.Forget(ctx, d.env.KV(), d.eng.Activity().ID); err != nil {
		d.errMsg = err.Error()
		return nil
	}
	s := d.eng.NewSession("")
	if err := d.eng.Ensure(s); err != nil {
		d.errMsg = err.Error()
		return nil
	}
	d.s = s
	d.warning = ""
	d.explaining = false
	d.persist()
	return d.syncForm()
}

func (d *DrillScreen) canExplain() bool {
	return d.s != nil && d.s.Active != nil && d.s.ShowFeedback && !d.s.LastCorrect && d.s.TutorNote == ""
}

// explain asks the tutor off the UI goroutine. The reply is applied only if
// the same question is still graded on screen.
func (d *DrillScreen) explain() tea.Cmd {
	q := d.s.Active
	var given problemgen.Answer
	if d.s.LastAnswer != nil {
		given = *d.s.LastAnswer
	}
	t, name := d.env.Tutor, d.eng.Activity().Name
	return func() tea.Msg {
		return explainedMsg{Seed: q.Seed, Note: t.Explain(context.Background(), name, q, given)}
	}
}

func (d *DrillScreen) persist() {
	if err := session.Save(context.Background(), d.env.KV(), d.s); err != nil {
		d.errMsg = "Could not save progress: " + err.Error()
	}
}

// syncForm rebuilds the answer widgets when a new question is on screen.
func (d *DrillScreen) syncForm() tea.Cmd {
	q := d.s.Active
	if q == nil || d.s.ShowFeedback {
		return nil
	}
	if d.form != nil && d.formSeed == q.Seed {
		return nil
	}
	d.form = newForm(present.Render(d.eng.Activity(), d.s).Blocks)
	d.formSeed = q.Seed
	return d.form.focusCurrent()
}

func (d *DrillScreen) View(width, height int) string {
	inner := max(width-4, 20)
	pad := lipgloss.NewStyle().Padding(1, 2)

	if d.errMsg != "" {
		return pad.Render(theme.Notice("error").Width(inner - 2).Render(d.errMsg))
	}
	if d.s == nil {
		return pad.Render(theme.Subtitle.Render("Loading..."))
	}

	v := present.Render(d.eng.Activity(), d.s)
	if d.warning != "" {
		v = v.WithWarning(d.warning)
	}

	var widget components.WidgetFunc
	if d.form != nil && !d.s.ShowFeedback {
		widget = d.form.widget
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(v.Subtitle))
	b.WriteString("\n")
	b.WriteString(components.NewTierBar(v.Tier, v.MaxTier, min(inner, 50)).View())
	b.WriteString("\n")
	b.WriteString(theme.Rule.Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")
	b.WriteString(components.RenderBlocks(v.Blocks, inner, widget))
	if d.explaining {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Thinking of another way to explain it..."))
	}
	return pad.Render(b.String())
}
