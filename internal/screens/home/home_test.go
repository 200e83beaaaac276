package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/router"
	"github.com/abhisek/mathdrills/internal/screen"
	"github.com/abhisek/mathdrills/internal/screens/drill"
	"github.com/abhisek/mathdrills/internal/session"
)

func testEnv() *screen.Env {
	return &screen.Env{
		Catalog:   activity.Default(),
		Backend:   session.NewMemoryBackend(time.Hour),
		LearnerID: "learner-1",
	}
}

func TestHomeScreen_ListsActivitiesByTopic(t *testing.T) {
	h := New(testEnv())
	view := h.View(100, 80)
	for _, want := range []string{"Times Tables", "Partial Products", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_EnterPushesDrill(t *testing.T) {
	h := New(testEnv())
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	action := cmd()
	msg, ok := action.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", action)
	}
	d, ok := msg.Screen.(*drill.DrillScreen)
	if !ok {
		t.Fatalf("pushed %T, want drill", msg.Screen)
	}
	if d.Title() != "Times Tables" {
		t.Errorf("drill title = %q", d.Title())
	}
}

func TestHomeScreen_SkipsHeaders(t *testing.T) {
	h := New(testEnv())
	first := h.menu.Selected
	if h.menu.Items[first].Header {
		t.Fatal("header selected")
	}
	for range len(h.menu.Items) {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		if h.menu.Items[h.menu.Selected].Header {
			t.Fatalf("header %q selected", h.menu.Items[h.menu.Selected].Label)
		}
	}
	if got := h.menu.Items[h.menu.Selected].Label; got != "Quit" {
		t.Errorf("last item = %q, want Quit", got)
	}
}

func TestHomeScreen_DisabledActivityHidden(t *testing.T) {
	env := testEnv()
	if err := env.Catalog.ApplyOverrides(map[string]activity.Override{"times-tables": {Disabled: true}}); err != nil {
		t.Fatal(err)
	}
	view := New(env).View(100, 80)
	if strings.Contains(view, "Times Tables") {
		t.Error("disabled activity listed")
	}
}
