package problemgen

import (
	"strings"
	"testing"
)

func TestBind(t *testing.T) {
	got, err := Bind("{{.name}} has {{.total}} stickers for {{.divisor}} friends.",
		Slots{"name": "Maya", "total": "23", "divisor": "4"})
	if err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	if want := "Maya has 23 stickers for 4 friends."; got != want {
		t.Errorf("Bind = %q, want %q", got, want)
	}
}

func TestBind_ValueLooksLikeSlot(t *testing.T) {
	// A bound value that resembles another slot must be left alone.
	got, err := Bind("{{.a}} and {{.b}}", Slots{"a": "{{.b}}", "b": "x"})
	if err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	if want := "{{.b}} and x"; got != want {
		t.Errorf("Bind = %q, want %q", got, want)
	}
}

func TestBind_MissingSlot(t *testing.T) {
	_, err := Bind("{{.name}} bought {{.count}} pens", Slots{"name": "Leo"})
	if err == nil {
		t.Fatal("expected error for missing slot")
	}
	if !strings.Contains(err.Error(), "count") {
		t.Errorf("error %q does not name the missing slot", err)
	}
}

func TestBind_SyntaxError(t *testing.T) {
	if _, err := Bind("{{.name", Slots{"name": "Leo"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestMustTemplate_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTemplate did not panic on bad syntax")
		}
	}()
	MustTemplate("bad", "{{.x")
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatInt(4732), "4,732"},
		{FormatInt(-1200000), "-1,200,000"},
		{FormatInt(7), "7"},
		{FormatFixed(452, 2), "4.52"},
		{FormatFixed(5, 2), "0.05"},
		{FormatFixed(123456, 1), "12,345.6"},
		{FormatFixed(-75, 2), "-0.75"},
		{FormatMoney(345), "$3.45"},
		{FormatMoney(120000), "$1,200.00"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}
