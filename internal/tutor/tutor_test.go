package tutor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleQuestion() *problemgen.Question {
	return &problemgen.Question{
		ActivityID:  "remainders",
		Prompt:      "23 apples are shared among 5 baskets. How many in each basket and how many left over?",
		Explanation: "23 ÷ 5 = 4 remainder 3.",
		Payload: &problemgen.Blanks{Blanks: []problemgen.Blank{
			{Name: "quotient", Label: "Each basket", Value: "4", Type: problemgen.AnswerTypeInteger},
			{Name: "remainder", Label: "Left over", Value: "3", Type: problemgen.AnswerTypeInteger},
		}},
	}
}

func TestExplain_NoProvider(t *testing.T) {
	e := New(nil)
	if e.Enabled() {
		t.Fatal("Enabled = true, want false")
	}
	n := e.Explain(context.Background(), "Remainders", sampleQuestion(), problemgen.NewAnswer("5", "0"))
	if n.FromModel {
		t.Error("FromModel = true, want false")
	}
	if !strings.Contains(n.Explanation, "23 ÷ 5 = 4 remainder 3.") || !strings.Contains(n.Explanation, "Each basket 4; Left over 3") {
		t.Errorf("Explanation = %q", n.Explanation)
	}
	if n.Tip == "" {
		t.Error("Tip is empty")
	}
}

func TestExplain_FromModel(t *testing.T) {
	mock := llm.NewMock(llm.Reply{Content: `{"explanation":"Put 5 apples in each basket until you run out.","tip":"The remainder is always smaller than 5."}`})
	e := New(mock, WithLogger(quietLogger()))

	n := e.Explain(context.Background(), "Remainders", sampleQuestion(), problemgen.NewAnswer("5", "0"))
	if !n.FromModel {
		t.Fatal("FromModel = false, want true")
	}
	if n.Tip != "The remainder is always smaller than 5." {
		t.Errorf("Tip = %q", n.Tip)
	}

	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	for _, want := range []string{"Activity: Remainders", "Learner's answer: 5, 0", "Correct answer: Each basket 4; Left over 3"} {
		if !strings.Contains(reqs[0].Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, reqs[0].Prompt)
		}
	}
	if reqs[0].Schema != NoteSchema || reqs[0].Purpose != "tutor" {
		t.Errorf("request = %+v", reqs[0])
	}
}

func TestExplain_FallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply llm.Reply
	}{
		{"provider error", llm.Reply{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"schema mismatch", llm.Reply{Content: `{"text":"hi"}`}},
		{"blank explanation", llm.Reply{Content: `{"explanation":"  ","tip":""}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(llm.NewMock(tt.reply), WithLogger(quietLogger()))
			n := e.Explain(context.Background(), "Remainders", sampleQuestion(), problemgen.Answer{})
			if n.FromModel {
				t.Error("FromModel = true, want fallback")
			}
			if n != Fallback(sampleQuestion()) {
				t.Errorf("note = %+v, want fallback", n)
			}
		})
	}
}

type slowProvider struct{}

func (slowProvider) Model() string { return "slow" }

func (slowProvider) Complete(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestExplain_Timeout(t *testing.T) {
	e := New(slowProvider{}, WithTimeout(10*time.Millisecond), WithLogger(quietLogger()))
	n := e.Explain(context.Background(), "Remainders", sampleQuestion(), problemgen.Answer{})
	if n.FromModel {
		t.Error("FromModel = true, want fallback after timeout")
	}
}

func TestAnnotate(t *testing.T) {
	q := sampleQuestion()
	given := problemgen.NewAnswer("5", "0")

	tests := []struct {
		name    string
		session session.Session
		want    bool
	}{
		{"wrong answer", session.Session{Active: q, AnswerSubmitted: true, ShowFeedback: true, LastAnswer: &given}, true},
		{"correct answer", session.Session{Active: q, AnswerSubmitted: true, ShowFeedback: true, LastCorrect: true}, false},
		{"no feedback", session.Session{Active: q}, false},
		{"already noted", session.Session{Active: q, ShowFeedback: true, TutorNote: "seen"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session
			before := s
			got := New(nil).Annotate(context.Background(), "Remainders", &s)
			if got != tt.want {
				t.Fatalf("Annotate = %v, want %v", got, tt.want)
			}
			if !got && s.TutorNote != before.TutorNote {
				t.Errorf("TutorNote changed to %q", s.TutorNote)
			}
			if got && s.TutorNote == "" {
				t.Error("TutorNote is empty")
			}
			if s.TotalAttempted != before.TotalAttempted || s.LastCorrect != before.LastCorrect || s.Difficulty.Tier != before.Difficulty.Tier {
				t.Error("Annotate changed grading state")
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		payload problemgen.Payload
		want    string
	}{
		{&problemgen.Sequence{Descending: true}, "largest"},
		{&problemgen.Sequence{}, "smallest"},
		{&problemgen.Clock{Format: problemgen.Clock12}, "subtract 12"},
		{&problemgen.Numeric{Type: problemgen.AnswerTypeDecimal}, "decimal points"},
		{&problemgen.Choice{Extreme: &problemgen.Extreme{}}, "share"},
	}
	for _, tt := range tests {
		got := hint(&problemgen.Question{Payload: tt.payload})
		if !strings.Contains(got, tt.want) {
			t.Errorf("hint(%T) = %q, want it to mention %q", tt.payload, got, tt.want)
		}
	}
}
