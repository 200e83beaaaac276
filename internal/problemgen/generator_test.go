package problemgen

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

var allGenerators = map[string]Generator{
	"times-tables":          TimesTables{},
	"partial-products":      PartialProducts{},
	"remainders":            Remainders{},
	"decimal-compare":       DecimalCompare{},
	"decimal-order":         DecimalOrder{},
	"decimal-word-problems": DecimalWordProblems{},
	"clock-24h":             Clock24h{},
	"elapsed-time":          ElapsedTime{},
	"time-zones":            TimeZones{},
	"bar-graph":             BarGraph{},
	"temperature-table":     TemperatureTable{},
	"area-perimeter":        AreaPerimeter{},
	"symmetry":              Symmetry{},
	"metric-units":          MetricUnits{},
	"place-value":           PlaceValue{},
	"rounding":              Rounding{},
	"fraction-compare":      FractionCompare{},
}

// correctAnswer builds the answer a learner would submit to get q right.
func correctAnswer(q *Question) Answer {
	switch p := q.Payload.(type) {
	case *Numeric:
		return NewAnswer(p.Value)
	case *Choice:
		return NewAnswer(p.Options[p.Correct[0]])
	case *Sequence:
		vals := make([]string, len(p.Order))
		for i, idx := range p.Order {
			vals[i] = p.Items[idx]
		}
		return Answer{Values: vals}
	case *Blanks:
		vals := make([]string, len(p.Blanks))
		for i, b := range p.Blanks {
			vals[i] = b.Value
		}
		return Answer{Values: vals}
	case *Clock:
		return NewAnswer(p.Value)
	}
	return Answer{}
}

func TestBuild_EveryGeneratorAndTier(t *testing.T) {
	for id, gen := range allGenerators {
		for tier := 1; tier <= gen.MaxTier(); tier++ {
			for seed := uint64(0); seed < 200; seed++ {
				q, err := Build(gen, id, tier, seed, DefaultValidators())
				if err != nil {
					t.Fatalf("%s tier %d seed %d: %v", id, tier, seed, err)
				}
				if q.ActivityID != id || q.Tier != tier || q.Seed != seed {
					t.Fatalf("%s: question stamped %s/%d/%d", id, q.ActivityID, q.Tier, q.Seed)
				}
				ok, err := Grade(q, correctAnswer(q))
				if err != nil || !ok {
					t.Fatalf("%s tier %d seed %d: own answer graded %v, %v (%q)", id, tier, seed, ok, err, Expected(q))
				}
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	for id, gen := range allGenerators {
		for tier := 1; tier <= gen.MaxTier(); tier++ {
			a, err := Build(gen, id, tier, 42, DefaultValidators())
			if err != nil {
				t.Fatal(err)
			}
			b, err := Build(gen, id, tier, 42, DefaultValidators())
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(a, b) {
				t.Errorf("%s tier %d: same seed built different questions", id, tier)
			}
		}
	}
}

func TestBuild_ClampsTier(t *testing.T) {
	gen := Remainders{}
	tests := []struct {
		tier, want int
	}{
		{-3, 1},
		{0, 1},
		{2, 2},
		{3, 3},
		{99, 3},
	}
	for _, tc := range tests {
		q, err := Build(gen, "remainders", tc.tier, 7, DefaultValidators())
		if err != nil {
			t.Fatal(err)
		}
		if q.Tier != tc.want {
			t.Errorf("Build(tier %d).Tier = %d, want %d", tc.tier, q.Tier, tc.want)
		}
	}
}

// scriptedGenerator hands out questions in order, one per Generate call.
type scriptedGenerator struct {
	questions []*Question
	calls     int
}

func (g *scriptedGenerator) MaxTier() int { return 1 }

func (g *scriptedGenerator) Generate(int, *rand.Rand) (*Question, error) {
	q := g.questions[min(g.calls, len(g.questions)-1)]
	g.calls++
	c := *q
	return &c, nil
}

func tiedChoice() *Question {
	return &Question{
		Prompt:      "Which is colder?",
		Explanation: "Compare.",
		Payload: &Choice{Options: []string{"a", "b"}, Correct: []int{0, 1},
			Extreme: &Extreme{Want: ExtremeMin, Values: []int{3, 3}, Ties: TiesForbidden}},
	}
}

func TestBuild_RetriesRetryableFailures(t *testing.T) {
	gen := &scriptedGenerator{questions: []*Question{tiedChoice(), tiedChoice(), validQuestion()}}
	q, err := Build(gen, "x", 1, 1, DefaultValidators())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if gen.calls != 3 {
		t.Errorf("Generate called %d times, want 3", gen.calls)
	}
	if q.Prompt != validQuestion().Prompt {
		t.Errorf("got prompt %q", q.Prompt)
	}
}

func TestBuild_GivesUpAfterMaxAttempts(t *testing.T) {
	gen := &scriptedGenerator{questions: []*Question{tiedChoice()}}
	_, err := Build(gen, "x", 1, 1, DefaultValidators())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if gen.calls != MaxAttempts {
		t.Errorf("Generate called %d times, want %d", gen.calls, MaxAttempts)
	}
}

func TestBuild_StopsOnStructuralFailure(t *testing.T) {
	bad := validQuestion()
	bad.Prompt = ""
	gen := &scriptedGenerator{questions: []*Question{bad, validQuestion()}}
	_, err := Build(gen, "x", 1, 1, DefaultValidators())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if gen.calls != 1 {
		t.Errorf("Generate called %d times, want 1", gen.calls)
	}
}

func TestPickN_Distinct(t *testing.T) {
	rng := NewRand(3)
	for range 100 {
		got := pickN(rng, []int{1, 2, 3, 4, 5}, 3)
		if len(got) != 3 {
			t.Fatalf("pickN returned %d items", len(got))
		}
		if got[0] == got[1] || got[1] == got[2] || got[0] == got[2] {
			t.Fatalf("pickN returned duplicates: %v", got)
		}
	}
}
