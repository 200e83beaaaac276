package problemgen

import "fmt"

// StructuralValidator checks that required fields are present and that the
// payload is well formed for its kind. A structural failure is a generator
// defect, so it is never retryable.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Prompt == "" {
		return v.fail("prompt is empty")
	}
	if len(q.Prompt) > 600 {
		return v.fail("prompt exceeds 600 characters")
	}
	if q.Explanation == "" {
		return v.fail("explanation is empty")
	}

	switch p := q.Payload.(type) {
	case *Numeric:
		if _, err := normalizeAnswer(p.Value, p.Type); err != nil || p.Value == "" {
			return v.fail(fmt.Sprintf("answer %q is not a valid %s", p.Value, p.Type))
		}
	case *Choice:
		return v.validateChoice(p)
	case *Sequence:
		return v.validateSequence(p)
	case *Blanks:
		return v.validateBlanks(p)
	case *Clock:
		if !matchClock(p.Value, p.Value, p.Format) {
			return v.fail(fmt.Sprintf("time %q is not valid %s notation", p.Value, p.Format))
		}
	case nil:
		return v.fail("payload is missing")
	default:
		return v.fail(fmt.Sprintf("unsupported payload %T", p))
	}
	return nil
}

func (v *StructuralValidator) validateChoice(p *Choice) *ValidationError {
	if len(p.Options) < 2 {
		return v.fail("choice needs at least 2 options")
	}
	seen := make(map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		key := normalizeText(opt)
		if key == "" {
			return v.fail("choice has an empty option")
		}
		if seen[key] {
			return v.fail(fmt.Sprintf("duplicate option %q", opt))
		}
		seen[key] = true
	}
	if len(p.Correct) == 0 {
		return v.fail("choice has no correct option")
	}
	picked := make(map[int]bool, len(p.Correct))
	for _, i := range p.Correct {
		if i < 0 || i >= len(p.Options) {
			return v.fail(fmt.Sprintf("correct index %d out of range", i))
		}
		if picked[i] {
			return v.fail(fmt.Sprintf("correct index %d listed twice", i))
		}
		picked[i] = true
	}
	return nil
}

func (v *StructuralValidator) validateSequence(p *Sequence) *ValidationError {
	if len(p.Items) < 2 {
		return v.fail("sequence needs at least 2 items")
	}
	if !isPermutation(p.Order, len(p.Items)) {
		return v.fail("sequence order is not a permutation of its items")
	}
	return nil
}

func (v *StructuralValidator) validateBlanks(p *Blanks) *ValidationError {
	if len(p.Blanks) == 0 {
		return v.fail("blanks payload has no blanks")
	}
	names := make(map[string]bool, len(p.Blanks))
	for _, b := range p.Blanks {
		if b.Name == "" {
			return v.fail("blank has no name")
		}
		if names[b.Name] {
			return v.fail(fmt.Sprintf("duplicate blank %q", b.Name))
		}
		names[b.Name] = true
		if !b.matches(b.Value) {
			return v.fail(fmt.Sprintf("blank %q value %q is not a valid %s", b.Name, b.Value, b.Type))
		}
		if len(b.Options) > 0 && !containsText(b.Options, b.Value) {
			return v.fail(fmt.Sprintf("blank %q value %q is not among its options", b.Name, b.Value))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func containsText(options []string, v string) bool {
	for _, o := range options {
		if normalizeText(o) == normalizeText(v) {
			return true
		}
	}
	return false
}
