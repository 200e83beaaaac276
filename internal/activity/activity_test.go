package activity

import (
	"errors"
	"testing"

	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

func TestDefault_Count(t *testing.T) {
	if got := len(Default().All()); got != 17 {
		t.Errorf("got %d activities, want 17", got)
	}
}

func TestGet_Exists(t *testing.T) {
	a, err := Default().Get("partial-products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MaxTier != 4 {
		t.Errorf("MaxTier = %d, want 4", a.MaxTier)
	}
	if a.Policy != (difficulty.Streak{Up: 3, Down: 3}) {
		t.Errorf("Policy = %v, want streak 3/3", a.Policy)
	}
	if a.Topic != TopicMultDiv {
		t.Errorf("Topic = %q, want %q", a.Topic, TopicMultDiv)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Default().Get("nonexistent")
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
}

func TestTiePolicies(t *testing.T) {
	tests := []struct {
		id   string
		want problemgen.TiePolicy
	}{
		{"bar-graph", problemgen.TiesAcceptAll},
		{"temperature-table", problemgen.TiesForbidden},
		{"decimal-compare", problemgen.TiesForbidden},
		{"decimal-order", problemgen.TiesForbidden},
		{"times-tables", ""},
	}
	c := Default()
	for _, tt := range tests {
		a, err := c.Get(tt.id)
		if err != nil {
			t.Fatal(err)
		}
		if a.Ties != tt.want {
			t.Errorf("%s: Ties = %q, want %q", tt.id, a.Ties, tt.want)
		}
	}
}

func TestRollingPolicies(t *testing.T) {
	c := Default()
	for _, id := range []string{"decimal-order", "time-zones"} {
		a, _ := c.Get(id)
		if _, ok := a.Policy.(difficulty.Rolling); !ok {
			t.Errorf("%s: policy %v, want rolling", id, a.Policy)
		}
	}
}

func TestByTopic(t *testing.T) {
	tests := []struct {
		topic Topic
		want  int
	}{
		{TopicMultDiv, 3},
		{TopicDecimals, 3},
		{TopicTime, 3},
		{TopicData, 2},
		{TopicGeometry, 3},
		{TopicNumberSense, 3},
	}
	groups := Default().ByTopic()
	for _, tt := range tests {
		if got := len(groups[tt.topic]); got != tt.want {
			t.Errorf("ByTopic(%q): got %d, want %d", tt.topic, got, tt.want)
		}
	}
}

func TestByTopic_SortedByGrade(t *testing.T) {
	for topic, acts := range Default().ByTopic() {
		for i := 1; i < len(acts); i++ {
			if acts[i].Grade < acts[i-1].Grade {
				t.Errorf("%s: %q (grade %d) after %q (grade %d)", topic, acts[i].ID, acts[i].Grade, acts[i-1].ID, acts[i-1].Grade)
			}
		}
	}
}

func TestEveryActivityBuildsAtEveryTier(t *testing.T) {
	for _, a := range Default().All() {
		for tier := 1; tier <= a.MaxTier; tier++ {
			if _, err := problemgen.Build(a.Generator, a.ID, tier, 1, problemgen.DefaultValidators()); err != nil {
				t.Errorf("%s tier %d: %v", a.ID, tier, err)
			}
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	c := Default()
	err := c.ApplyOverrides(map[string]Override{
		"symmetry":     {Disabled: true},
		"times-tables": {Policy: difficulty.Streak{Up: 5, Down: 1}},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if _, err := c.Get("symmetry"); !errors.Is(err, ErrUnknownActivity) {
		t.Errorf("disabled activity still reachable: %v", err)
	}
	if got := len(c.All()); got != 16 {
		t.Errorf("All() = %d activities, want 16", got)
	}
	a, _ := c.Get("times-tables")
	if a.Policy != (difficulty.Streak{Up: 5, Down: 1}) {
		t.Errorf("Policy = %v, want streak 5/1", a.Policy)
	}
}

func TestApplyOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]Override
	}{
		{"unknown id", map[string]Override{"nope": {Disabled: true}}},
		{"bad policy", map[string]Override{"rounding": {Policy: difficulty.Streak{Up: 0, Down: 1}}}},
	}
	for _, tt := range tests {
		c := Default()
		if err := c.ApplyOverrides(tt.overrides); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if got := len(c.All()); got != 17 {
			t.Errorf("%s: catalog changed on error, %d activities", tt.name, got)
		}
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	ok := Activity{ID: "x", Name: "X", MaxTier: 3, Policy: difficulty.Streak{Up: 1, Down: 1}, Generator: problemgen.Remainders{}}

	tooHigh := ok
	tooHigh.MaxTier = 4
	noPolicy := ok
	noPolicy.Policy = nil
	noGen := ok
	noGen.Generator = nil

	tests := []struct {
		name string
		acts []Activity
	}{
		{"duplicate id", []Activity{ok, ok}},
		{"tier above generator", []Activity{tooHigh}},
		{"no policy", []Activity{noPolicy}},
		{"no generator", []Activity{noGen}},
	}
	for _, tt := range tests {
		if _, err := NewCatalog(tt.acts); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestTopicDisplayName(t *testing.T) {
	if got := TopicGeometry.DisplayName(); got != "Geometry & Measurement" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := Topic("other").DisplayName(); got != "other" {
		t.Errorf("DisplayName = %q", got)
	}
}
