package present

import (
	"reflect"
	"testing"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
)

func testActivity(t *testing.T, id string) activity.Activity {
	t.Helper()
	a, err := activity.Default().Get(id)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func find[T Block](blocks []Block) []T {
	var out []T
	for _, b := range blocks {
		switch b := b.(type) {
		case T:
			out = append(out, b)
		case Columns:
			for _, col := range b.Columns {
				out = append(out, find[T](col)...)
			}
		}
	}
	return out
}

func partialProductsQuestion() *problemgen.Question {
	return &problemgen.Question{
		Prompt:      "Find the hidden partial products of 47 × 38.",
		Explanation: "40×30 + 7×30 + 40×8 + 7×8 = 1,786",
		Display: &problemgen.ProductGrid{
			A: 47, B: 38, Rows: []int{40, 7}, Cols: []int{30, 8},
			Cells: [][]problemgen.GridCell{
				{{Value: 1200}, {Value: 320, Hidden: true, Blank: "p01"}},
				{{Value: 210}, {Value: 56}},
			},
		},
		Payload: &problemgen.Blanks{Blanks: []problemgen.Blank{
			{Name: "p01", Label: "40 × 8", Value: "320", Type: problemgen.AnswerTypeInteger},
			{Name: "total", Label: "47 × 38", Value: "1786", Type: problemgen.AnswerTypeInteger},
		}},
	}
}

func TestRender_Question(t *testing.T) {
	act := testActivity(t, "partial-products")
	s := &session.Session{Difficulty: difficulty.State{Tier: 2}, Active: partialProductsQuestion()}

	v := Render(act, s)
	if v.Phase != session.PhaseQuestion || v.Tier != 2 || v.MaxTier != 4 {
		t.Errorf("header = %v tier %d/%d", v.Phase, v.Tier, v.MaxTier)
	}
	grids := find[Grid](v.Blocks)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	if got := grids[0].Rows[0].Cells; !reflect.DeepEqual(got, []string{"1,200", "?"}) {
		t.Errorf("grid row 0 = %v, want hidden cell", got)
	}
	inputs := find[Input](v.Blocks)
	if len(inputs) != 2 || inputs[0].Name != "blank.p01" || inputs[1].Name != "blank.total" || !inputs[0].Numeric {
		t.Errorf("inputs = %+v", inputs)
	}
	actions := find[Actions](v.Blocks)
	if len(actions) != 1 || actions[0].Actions[0].Name != ActionSubmit {
		t.Errorf("actions = %+v", actions)
	}
}

func TestRender_WidgetPerKind(t *testing.T) {
	tests := []struct {
		name    string
		payload problemgen.Payload
		check   func(t *testing.T, blocks []Block)
	}{
		{"choice", &problemgen.Choice{Options: []string{"<", "=", ">"}, Correct: []int{2}}, func(t *testing.T, blocks []Block) {
			b := find[Buttons](blocks)
			if len(b) != 1 || b[0].Name != FieldAnswer || len(b[0].Options) != 3 {
				t.Errorf("buttons = %+v", b)
			}
		}},
		{"numeric", &problemgen.Numeric{Value: "42", Type: problemgen.AnswerTypeInteger}, func(t *testing.T, blocks []Block) {
			in := find[Input](blocks)
			if len(in) != 1 || in[0].Name != FieldAnswer || !in[0].Numeric {
				t.Errorf("inputs = %+v", in)
			}
		}},
		{"fraction", &problemgen.Numeric{Value: "3/4", Type: problemgen.AnswerTypeFraction}, func(t *testing.T, blocks []Block) {
			in := find[Input](blocks)
			if len(in) != 1 || in[0].Numeric || in[0].Hint == "" {
				t.Errorf("inputs = %+v", in)
			}
		}},
		{"sequence", &problemgen.Sequence{Items: []string{"4.5", "4.05", "4.55"}, Order: []int{1, 0, 2}}, func(t *testing.T, blocks []Block) {
			p := find[Picker](blocks)
			if len(p) != 1 || p[0].Name != FieldOrder || len(p[0].Items) != 3 {
				t.Errorf("pickers = %+v", p)
			}
		}},
		{"time", &problemgen.Clock{Value: "14:30", Format: problemgen.Clock24}, func(t *testing.T, blocks []Block) {
			in := find[Input](blocks)
			if len(in) != 1 || in[0].Numeric || in[0].Hint != "e.g. 14:30" {
				t.Errorf("inputs = %+v", in)
			}
		}},
		{"blanks with options", &problemgen.Blanks{Blanks: []problemgen.Blank{
			{Name: "time", Label: "Time", Value: "01:30", Type: problemgen.AnswerTypeTime, Format: problemgen.Clock24},
			{Name: "day", Label: "Day", Value: "next day", Type: problemgen.AnswerTypeText, Options: []string{"previous day", "same day", "next day"}},
		}}, func(t *testing.T, blocks []Block) {
			if len(find[Columns](blocks)) != 1 {
				t.Error("expected blanks laid out in columns")
			}
			in, b := find[Input](blocks), find[Buttons](blocks)
			if len(in) != 1 || in[0].Name != "blank.time" || len(b) != 1 || b[0].Name != "blank.day" {
				t.Errorf("inputs = %+v, buttons = %+v", in, b)
			}
		}},
	}
	act := testActivity(t, "times-tables")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &session.Session{Difficulty: difficulty.NewState(), Active: &problemgen.Question{Prompt: "Q", Explanation: "E", Payload: tt.payload}}
			tt.check(t, Render(act, s).Blocks)
		})
	}
}

func TestRender_Feedback(t *testing.T) {
	act := testActivity(t, "partial-products")
	answer := problemgen.NewAnswer("280", "1746")
	s := &session.Session{
		Difficulty:      difficulty.State{Tier: 1},
		Active:          partialProductsQuestion(),
		AnswerSubmitted: true,
		ShowFeedback:    true,
		LastAnswer:      &answer,
		LastChange:      difficulty.Change{From: 2, To: 1},
		TotalAttempted:  3,
		TotalCorrect:    2,
	}

	v := Render(act, s)
	if v.Phase != session.PhaseFeedback {
		t.Errorf("Phase = %v, want feedback", v.Phase)
	}
	if len(find[Input](v.Blocks)) != 0 {
		t.Error("feedback view still has inputs")
	}
	if got := find[Grid](v.Blocks)[0].Rows[0].Cells[1]; got != "320" {
		t.Errorf("hidden cell = %q, want revealed 320", got)
	}

	notices := find[Notice](v.Blocks)
	if len(notices) != 2 || notices[0].Level != LevelError || notices[1].Level != LevelInfo {
		t.Errorf("notices = %+v", notices)
	}

	var texts []string
	for _, b := range find[Text](v.Blocks) {
		texts = append(texts, b.Text)
	}
	want := []string{
		"Find the hidden partial products of 47 × 38.",
		"Your answer: 280, 1746",
		"Correct answer: 40 × 8 320; 47 × 38 1786",
	}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}

	exp := find[Expander](v.Blocks)
	if len(exp) != 1 || !exp[0].Open {
		t.Errorf("expanders = %+v, want one open explanation", exp)
	}
	acts := find[Actions](v.Blocks)[0].Actions
	if len(acts) != 2 || acts[0].Name != ActionNext || acts[1].Name != ActionExplain {
		t.Errorf("actions = %+v", acts)
	}
}

func TestRender_FeedbackWithTutorNote(t *testing.T) {
	act := testActivity(t, "partial-products")
	s := &session.Session{
		Difficulty:      difficulty.State{Tier: 1},
		Active:          partialProductsQuestion(),
		AnswerSubmitted: true,
		ShowFeedback:    true,
		TutorNote:       "Think of 38 as 30 and 8.",
	}
	v := Render(act, s)
	if got := len(find[Expander](v.Blocks)); got != 2 {
		t.Errorf("got %d expanders, want 2", got)
	}
	for _, a := range find[Actions](v.Blocks)[0].Actions {
		if a.Name == ActionExplain {
			t.Error("explain offered again after a tutor note")
		}
	}
}

func TestRender_DoesNotMutate(t *testing.T) {
	act := testActivity(t, "partial-products")
	s := &session.Session{Difficulty: difficulty.State{Tier: 2, Recent: []bool{true}}, Active: partialProductsQuestion()}
	before := *s
	_ = Render(act, s)
	_ = Render(act, s).WithWarning("Please enter an answer.")
	if !reflect.DeepEqual(*s, before) {
		t.Error("Render mutated the session")
	}
}

func TestRender_Idle(t *testing.T) {
	v := Render(testActivity(t, "rounding"), &session.Session{Difficulty: difficulty.NewState()})
	if v.Phase != session.PhaseIdle || len(v.Blocks) != 1 {
		t.Errorf("idle view = %+v", v)
	}
}

func TestWithWarning(t *testing.T) {
	v := View{Blocks: []Block{Text{Text: "Q"}}}
	w := v.WithWarning("Please enter an answer.")
	if n, ok := w.Blocks[0].(Notice); !ok || n.Level != LevelWarning {
		t.Errorf("first block = %+v, want warning", w.Blocks[0])
	}
	if len(v.Blocks) != 1 {
		t.Error("WithWarning changed the original view")
	}
}

func TestAnswerFromForm(t *testing.T) {
	form := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}
	seq := &problemgen.Sequence{Items: []string{"4.5", "4.05", "4.55"}, Order: []int{1, 0, 2}}

	tests := []struct {
		name    string
		payload problemgen.Payload
		fields  map[string]string
		want    []string
	}{
		{"numeric", &problemgen.Numeric{Value: "5"}, map[string]string{"answer": " 5 "}, []string{"5"}},
		{"choice", &problemgen.Choice{Options: []string{"a", "b"}}, map[string]string{"answer": "b"}, []string{"b"}},
		{"blanks", partialProductsQuestion().Payload, map[string]string{"blank.total": "1786", "blank.p01": "320"}, []string{"320", "1786"}},
		{"blanks missing", partialProductsQuestion().Payload, map[string]string{"blank.total": "1786"}, []string{"", "1786"}},
		{"order by number", seq, map[string]string{"order": "2,1,3"}, []string{"4.05", "4.5", "4.55"}},
		{"order by text", seq, map[string]string{"order": "4.05 4.5 4.55"}, []string{"4.05", "4.5", "4.55"}},
		{"order with junk", seq, map[string]string{"order": "2, x, 9"}, []string{"4.05", "x", "9"}},
		{"order empty", seq, map[string]string{}, nil},
	}
	for _, tt := range tests {
		q := &problemgen.Question{Payload: tt.payload}
		got := AnswerFromForm(q, form(tt.fields))
		if !reflect.DeepEqual(got.Values, tt.want) {
			t.Errorf("%s: values = %q, want %q", tt.name, got.Values, tt.want)
		}
	}
}

func TestAnswerFromForm_GradesPickerOrder(t *testing.T) {
	q := &problemgen.Question{Payload: &problemgen.Sequence{
		Items: []string{"4.5", "4.05", "4.55"}, Order: []int{1, 0, 2}, Type: problemgen.AnswerTypeDecimal,
	}}
	a := AnswerFromForm(q, func(string) string { return FormatOrder([]int{1, 0, 2}) })
	ok, err := problemgen.Grade(q, a)
	if err != nil || !ok {
		t.Errorf("Grade = %v, %v, want correct", ok, err)
	}
}
