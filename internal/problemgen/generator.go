package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Generator produces questions for one activity.
type Generator interface {
	// MaxTier is the highest tier the generator knows. Tiers start at 1.
	MaxTier() int

	// Generate produces a question for the tier. The tier has already been
	// clamped to [1, MaxTier]. Output must depend only on tier and rng.
	Generate(tier int, rng *rand.Rand) (*Question, error)
}

// MaxAttempts bounds how many times Build resamples after a retryable
// validation failure.
const MaxAttempts = 16

// ErrGenerationFailed is returned when no attempt produced a valid question.
var ErrGenerationFailed = errors.New("question generation failed")

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ClampTier clamps tier into [1, maxTier].
func ClampTier(tier, maxTier int) int {
	return max(1, min(tier, maxTier))
}

// Build generates a validated question. The same generator, tier and seed
// always yield the same question: retryable validation failures resample
// with seeds derived from the original one, and the returned question keeps
// the original seed.
func Build(gen Generator, activityID string, tier int, seed uint64, validators []Validator) (*Question, error) {
	tier = ClampTier(tier, gen.MaxTier())

	var lastErr error
	for attempt := range MaxAttempts {
		rng := NewRand(seed + uint64(attempt)*0x9e3779b97f4a7c15)
		q, err := gen.Generate(tier, rng)
		if err != nil {
			return nil, fmt.Errorf("generate %s tier %d: %w", activityID, tier, err)
		}
		q.ActivityID = activityID
		q.Tier = tier
		q.Seed = seed

		verr := Validate(q, validators)
		if verr == nil {
			return q, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
	}
	return nil, fmt.Errorf("%w: %s tier %d: %w", ErrGenerationFailed, activityID, tier, lastErr)
}

// randRange returns a uniform int in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// pick returns a uniformly chosen element of xs.
func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

// pickN returns n distinct elements of xs in random order.
func pickN[T any](rng *rand.Rand, xs []T, n int) []T {
	perm := rng.Perm(len(xs))
	out := make([]T, 0, n)
	for _, i := range perm[:min(n, len(xs))] {
		out = append(out, xs[i])
	}
	return out
}
