package problemgen

import "fmt"

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, used in error
	// messages and logs, e.g. "structural" or "consistency".
	Name() string

	// Validate returns nil if the question passes, or a ValidationError
	// describing the first problem found.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether resampling is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard validator chain. Validators run in
// order and the first failure stops the chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&ConsistencyValidator{},
	}
}

// Validate runs the chain and returns the first failure.
func Validate(q *Question, validators []Validator) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
