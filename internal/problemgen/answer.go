package problemgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyAnswer is returned by Grade when a required answer slot is blank.
// The submission is not graded.
var ErrEmptyAnswer = errors.New("answer is empty")

// Grade compares the learner's answer against the question's correct answer.
// An answer is wholly correct or wholly incorrect.
//
// Rules per kind:
//   - numeric: normalized equality (leading zeros, trailing decimal zeros,
//     thousands separators and equivalent fractions are ignored)
//   - choice: the value is the text of an option in the correct set
//   - sequence: exact order, item by item
//   - blanks: every blank must match
//   - time: same time of day written in the expected clock notation
//
// A blank slot returns ErrEmptyAnswer. Input that cannot be parsed grades as
// incorrect without an error.
func Grade(q *Question, a Answer) (bool, error) {
	if q == nil || q.Payload == nil {
		return false, errors.New("grade: question has no payload")
	}
	if missing(q.Payload, a) {
		return false, ErrEmptyAnswer
	}

	switch p := q.Payload.(type) {
	case *Numeric:
		return matchValue(a.Values[0], p.Value, p.Type), nil
	case *Choice:
		return p.accepts(a.Values[0]), nil
	case *Sequence:
		return p.matches(a.Values), nil
	case *Blanks:
		for i, b := range p.Blanks {
			if !b.matches(a.Values[i]) {
				return false, nil
			}
		}
		return true, nil
	case *Clock:
		return matchClock(a.Values[0], p.Value, p.Format), nil
	default:
		return false, fmt.Errorf("grade: unsupported payload %T", p)
	}
}

// SlotCount returns the number of answer values a payload expects.
func SlotCount(p Payload) int {
	switch p := p.(type) {
	case *Sequence:
		return len(p.Items)
	case *Blanks:
		return len(p.Blanks)
	case nil:
		return 0
	default:
		return 1
	}
}

// missing reports whether any required slot of the answer is blank.
func missing(p Payload, a Answer) bool {
	n := SlotCount(p)
	if len(a.Values) < n {
		return true
	}
	for _, v := range a.Values[:n] {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// accepts reports whether v names any option in the correct set.
func (c *Choice) accepts(v string) bool {
	idx := c.Lookup(v)
	if idx < 0 {
		return false
	}
	for _, ci := range c.Correct {
		if ci == idx {
			return true
		}
	}
	return false
}

// Lookup resolves a submitted value to the index of the option with the same
// text. Returns -1 when nothing matches. Option numbers shown by a surface are
// translated to text there, never here.
func (c *Choice) Lookup(v string) int {
	v = normalizeText(v)
	for i, opt := range c.Options {
		if normalizeText(opt) == v {
			return i
		}
	}
	return -1
}

func (s *Sequence) matches(values []string) bool {
	if len(values) < len(s.Order) {
		return false
	}
	for i, idx := range s.Order {
		if !matchValue(values[i], s.Items[idx], s.Type) {
			return false
		}
	}
	return true
}

func (b Blank) matches(v string) bool {
	if b.Type == AnswerTypeTime {
		return matchClock(v, b.Value, b.Format)
	}
	return matchValue(v, b.Value, b.Type)
}

// matchValue compares a learner value to the expected value after
// normalizing both for the answer type.
func matchValue(got, want string, t AnswerType) bool {
	ng, err := normalizeAnswer(got, t)
	if err != nil {
		return false
	}
	nw, err := normalizeAnswer(want, t)
	if err != nil {
		return false
	}
	return ng == nw
}

// normalizeAnswer normalizes an answer string for comparison.
func normalizeAnswer(answer string, answerType AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch answerType {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(stripGrouping(answer), 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		plain := stripGrouping(answer)
		if !isPlainDecimal(plain) {
			return "", fmt.Errorf("invalid decimal %q", answer)
		}
		f, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case AnswerTypeFraction:
		num, den, err := parseFraction(answer)
		if err != nil {
			return "", err
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		if den < 0 {
			num = -num
			den = -den
		}
		g := gcd(abs(num), den)
		if g == 0 {
			g = 1
		}
		return fmt.Sprintf("%d/%d", num/g, den/g), nil

	case AnswerTypeTime:
		t, _, err := ParseTimeOfDay(answer)
		if err != nil {
			return "", err
		}
		return t.Format24(), nil

	default:
		return normalizeText(answer), nil
	}
}

// isPlainDecimal reports whether s is an optional minus sign followed by
// digits with at most one '.', and at least one digit. Exponents, hex floats
// and Inf/NaN are rejected.
func isPlainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// normalizeText lowercases and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

var groupingReplacer = strings.NewReplacer(",", "", "$", "")

// stripGrouping removes thousands separators and a dollar sign so "$1,200"
// parses as 1200.
func stripGrouping(s string) string {
	return groupingReplacer.Replace(s)
}

// parseFraction parses "a/b" into numerator and denominator. A whole number
// is read as n/1.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 1 {
		n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
		}
		return n, 1, nil
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Expected renders the correct answer for feedback. Tied choices are joined
// with "or".
func Expected(q *Question) string {
	if q == nil {
		return ""
	}
	switch p := q.Payload.(type) {
	case *Numeric:
		if p.Unit != "" {
			return p.Value + " " + p.Unit
		}
		return p.Value
	case *Choice:
		names := make([]string, 0, len(p.Correct))
		for _, i := range p.Correct {
			names = append(names, p.Options[i])
		}
		return strings.Join(names, " or ")
	case *Sequence:
		items := make([]string, 0, len(p.Order))
		for _, i := range p.Order {
			items = append(items, p.Items[i])
		}
		return strings.Join(items, ", ")
	case *Blanks:
		parts := make([]string, 0, len(p.Blanks))
		for _, b := range p.Blanks {
			parts = append(parts, b.Label+" "+b.Value)
		}
		return strings.Join(parts, "; ")
	case *Clock:
		return p.Value
	}
	return ""
}

// Describe renders a submitted answer for feedback.
func Describe(a Answer) string {
	return strings.Join(a.Values, ", ")
}
