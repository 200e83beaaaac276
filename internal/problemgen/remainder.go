package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Remainders are sharing word problems answered as a quotient and a
// remainder. Both parts must match.
//
//	Tier 1: divisors 2-5, quotients up to 9
//	Tier 2: divisors 3-9, quotients 3-12
//	Tier 3: divisors 6-12, quotients 5-15, always a remainder
type Remainders struct{}

func (Remainders) MaxTier() int { return 3 }

type remainderContext struct {
	text      Template
	quotient  string
	remainder string
}

var remainderContexts = []remainderContext{
	{
		MustTemplate("stickers", "{{.name}} has {{.total}} stickers to share equally among {{.divisor}} friends. How many stickers does each friend get, and how many are left over?"),
		"Stickers each friend gets", "Stickers left over",
	},
	{
		MustTemplate("vans", "{{.total}} students are going on a trip. Each van holds {{.divisor}} students. How many vans are completely full, and how many students are in the last van?"),
		"Full vans", "Students in the last van",
	},
	{
		MustTemplate("eggs", "A farmer packs {{.total}} eggs into cartons of {{.divisor}}. How many cartons are filled, and how many eggs are left?"),
		"Cartons filled", "Eggs left",
	},
	{
		MustTemplate("teams", "{{.total}} players sign up for a game. The coach makes teams of {{.divisor}}. How many full teams are there, and how many players are left without a team?"),
		"Full teams", "Players left",
	},
}

func (Remainders) Generate(tier int, rng *rand.Rand) (*Question, error) {
	total, divisor := drawRemainder(tier, rng)
	return buildRemainder(pick(rng, remainderContexts), pick(rng, learnerNames), total, divisor)
}

// drawRemainder draws the dividend and divisor for a tier. The dividend is
// built from a quotient and remainder so every tier controls both.
func drawRemainder(tier int, rng *rand.Rand) (total, divisor int) {
	var quotient, rem int
	switch tier {
	case 1:
		divisor = randRange(rng, 2, 5)
		quotient = randRange(rng, 1, 9)
		rem = randRange(rng, 0, divisor-1)
	case 2:
		divisor = randRange(rng, 3, 9)
		quotient = randRange(rng, 3, 12)
		rem = randRange(rng, 0, divisor-1)
	default:
		divisor = randRange(rng, 6, 12)
		quotient = randRange(rng, 5, 15)
		rem = randRange(rng, 1, divisor-1)
	}
	return quotient*divisor + rem, divisor
}

// DivideWithRemainder returns the whole-number quotient and remainder of
// total ÷ divisor.
func DivideWithRemainder(total, divisor int) (quotient, remainder int) {
	return total / divisor, total % divisor
}

func buildRemainder(ctx remainderContext, name string, total, divisor int) (*Question, error) {
	if divisor <= 0 || total < 0 {
		return nil, fmt.Errorf("remainder: invalid %d ÷ %d", total, divisor)
	}
	q, r := DivideWithRemainder(total, divisor)

	prompt, err := ctx.text.Bind(Slots{"name": name, "total": FormatInt(total), "divisor": FormatInt(divisor)})
	if err != nil {
		return nil, err
	}

	return &Question{
		Prompt: prompt,
		Explanation: fmt.Sprintf("%s ÷ %s = %s R %s, because %s × %s = %s and %s − %s = %s.",
			FormatInt(total), FormatInt(divisor), FormatInt(q), FormatInt(r),
			FormatInt(q), FormatInt(divisor), FormatInt(q*divisor),
			FormatInt(total), FormatInt(q*divisor), FormatInt(r)),
		Payload: &Blanks{Blanks: []Blank{
			{Name: "quotient", Label: ctx.quotient, Value: strconv.Itoa(q), Type: AnswerTypeInteger},
			{Name: "remainder", Label: ctx.remainder, Value: strconv.Itoa(r), Type: AnswerTypeInteger},
		}},
	}, nil
}
