package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/store"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("MATHDRILLS_STORE", "memory")
	t.Setenv("MATHDRILLS_LLM_PROVIDER", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestActivitiesCommand(t *testing.T) {
	out, err := execute(t, "", "activities")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ID", "times-tables", "Partial Products", "streak 3/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPreviewCommand(t *testing.T) {
	act, err := activity.Default().Get("times-tables")
	if err != nil {
		t.Fatal(err)
	}
	q, err := problemgen.Build(act.Generator, act.ID, 1, 42, problemgen.DefaultValidators())
	if err != nil {
		t.Fatal(err)
	}
	answer := q.Payload.(*problemgen.Numeric).Value

	// First question right, then a blank line, then a wrong answer.
	stdin := answer + "\n\n-1\n"
	out, err := execute(t, stdin, "preview", "--activity", "times-tables", "--seed", "42", "--count", "2", "--tier", "1")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		q.Prompt,
		"✓ Correct!",
		"Please enter an answer before checking.",
		"✗ Not quite",
		"Summary: 1/2 correct",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestPreviewCommand_UnknownActivity(t *testing.T) {
	_, err := execute(t, "", "preview", "--activity", "long-division")
	if err == nil || !strings.Contains(err.Error(), "unknown activity") {
		t.Errorf("err = %v, want unknown activity", err)
	}
}

func TestSessionsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")

	out, err := execute(t, "", "sessions", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No live sessions.") {
		t.Errorf("list output = %q", out)
	}

	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Scope("learner-7").Set(context.Background(), "session:times-tables", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	st.Close()

	out, err = execute(t, "", "sessions", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "learner-7") {
		t.Errorf("list output missing learner:\n%s", out)
	}

	out, err = execute(t, "", "sessions", "purge", "learner-7", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `Deleted 1 values for learner "learner-7"`) {
		t.Errorf("purge output = %q", out)
	}

	out, err = execute(t, "", "sessions", "purge", "learner-7", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No sessions") {
		t.Errorf("second purge output = %q", out)
	}

	out, err = execute(t, "", "sessions", "sweep", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Swept 0 expired values.") {
		t.Errorf("sweep output = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mathdrills ") {
		t.Errorf("output = %q", out)
	}
}

func TestOptionText(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		input   string
		want    string
	}{
		{"number picks option", []string{"Mia", "Leo"}, "2", "Leo"},
		{"exact text", []string{"Mia", "Leo"}, "Mia", "Mia"},
		{"number past the list", []string{"Mia", "Leo"}, "3", "3"},
		{"numeral options are text", []string{"0", "1", "2", "3", "4"}, "1", "1"},
		{"numeral past the options", []string{"0", "1", "2", "3", "4"}, "5", "5"},
		{"decimal options by number", []string{"4.52", "4.47"}, "1", "4.52"},
	}
	for _, tc := range tests {
		if got := optionText(tc.options, tc.input); got != tc.want {
			t.Errorf("%s: optionText(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestNumeralButtons(t *testing.T) {
	blocks := []present.Block{
		present.Columns{Columns: [][]present.Block{{
			present.Buttons{Name: "answer", Label: "Lines of symmetry", Options: []string{"0", "1", "2"}},
		}}},
		present.Buttons{Name: "other", Label: "Pick", Options: []string{"<", ">"}},
	}
	widget := numeralButtons(blocks)

	got, ok := widget("answer")
	if !ok || !strings.Contains(got, "Options: 0, 1, 2") {
		t.Errorf("widget(answer) = %q, %v", got, ok)
	}
	if _, ok := widget("other"); ok {
		t.Error("non-numeral buttons should use the numbered list")
	}
}
