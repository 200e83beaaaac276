package problemgen

import (
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Slots maps template slot names to their rendered values.
type Slots map[string]string

// Template is a word-problem template with named slots such as {{.total}}.
// All slots are bound in a single pass, so a value that happens to look like
// another slot is never substituted again.
type Template struct {
	t *template.Template
}

// MustTemplate parses a template and panics on a syntax error. It is meant
// for package-level template tables.
func MustTemplate(name, text string) Template {
	return Template{t: template.Must(template.New(name).Option("missingkey=error").Parse(text))}
}

// Bind renders the template. A slot referenced by the template but missing
// from slots is an error.
func (t Template) Bind(slots Slots) (string, error) {
	var b strings.Builder
	if err := t.t.Execute(&b, map[string]string(slots)); err != nil {
		return "", fmt.Errorf("bind %s: %w", t.t.Name(), err)
	}
	return b.String(), nil
}

// Bind parses and renders a one-off template.
func Bind(text string, slots Slots) (string, error) {
	t, err := template.New("inline").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	return Template{t: t}.Bind(slots)
}

var printer = message.NewPrinter(language.English)

// FormatInt renders n with thousands separators, e.g. 4732 as "4,732".
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatFixed renders a fixed-point value stored as an integer count of
// 10^-places units, e.g. FormatFixed(452, 2) is "4.52".
func FormatFixed(v, places int) string {
	if places == 0 {
		return FormatInt(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	scale := pow10(places)
	return fmt.Sprintf("%s%s.%0*d", sign, FormatInt(v/scale), places, v%scale)
}

// FormatMoney renders a cent amount as dollars, e.g. 345 as "$3.45".
func FormatMoney(cents int) string {
	return "$" + FormatFixed(cents, 2)
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}
