package present

import (
	"strconv"
	"strings"

	"github.com/abhisek/mathdrills/internal/problemgen"
)

// AnswerFromForm reads the posted fields for q into an Answer. get returns
// "" for fields that were not posted.
func AnswerFromForm(q *problemgen.Question, get func(name string) string) problemgen.Answer {
	switch p := q.Payload.(type) {
	case *problemgen.Blanks:
		vals := make([]string, len(p.Blanks))
		for i, b := range p.Blanks {
			vals[i] = strings.TrimSpace(get(FieldBlankPrefix + b.Name))
		}
		return problemgen.NewAnswer(vals...)
	case *problemgen.Sequence:
		return problemgen.NewAnswer(parseOrder(p.Items, get(FieldOrder))...)
	default:
		return problemgen.NewAnswer(strings.TrimSpace(get(FieldAnswer)))
	}
}

// parseOrder splits a picker value into item texts. Tokens are separated by
// commas, or by spaces when there is no comma. Each token names an item by
// its text or by its 1-based number; anything else is kept as typed.
func parseOrder(items []string, raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var tokens []string
	if strings.Contains(raw, ",") {
		tokens = strings.Split(raw, ",")
	} else {
		tokens = strings.Fields(raw)
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, resolveItem(items, tok))
	}
	return out
}

func resolveItem(items []string, tok string) string {
	for _, it := range items {
		if it == tok {
			return it
		}
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= len(items) {
		return items[n-1]
	}
	return tok
}

// FormatOrder is the inverse of the picker parsing: it renders picked item
// indices (0-based) as a posted value.
func FormatOrder(picked []int) string {
	parts := make([]string, len(picked))
	for i, idx := range picked {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ",")
}
