package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// TimesTables drills multiplication and division facts.
//
//	Tier 1: the 2, 5 and 10 tables
//	Tier 2: tables 2-9
//	Tier 3: tables 2-12, including missing factors
//	Tier 4: division facts and missing factors up to 12 × 12
type TimesTables struct{}

func (TimesTables) MaxTier() int { return 4 }

func (TimesTables) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var a, b int
	switch tier {
	case 1:
		a, b = pick(rng, []int{2, 5, 10}), randRange(rng, 1, 10)
	case 2:
		a, b = randRange(rng, 2, 9), randRange(rng, 1, 10)
	default:
		a, b = randRange(rng, 2, 12), randRange(rng, 2, 12)
	}
	if rng.IntN(2) == 0 {
		a, b = b, a
	}

	form := "product"
	switch {
	case tier == 3 && rng.IntN(3) == 0:
		form = "missing"
	case tier >= 4:
		form = pick(rng, []string{"quotient", "quotient", "missing"})
	}
	return buildFact(form, a, b), nil
}

func buildFact(form string, a, b int) *Question {
	p := a * b
	switch form {
	case "missing":
		return &Question{
			Prompt:      fmt.Sprintf("%d × ? = %d. What is the missing factor?", a, p),
			Explanation: fmt.Sprintf("Think %d ÷ %d = %d, because %d × %d = %d.", p, a, b, a, b, p),
			Payload:     &Numeric{Value: strconv.Itoa(b), Type: AnswerTypeInteger},
		}
	case "quotient":
		return &Question{
			Prompt:      fmt.Sprintf("%d ÷ %d = ?", p, a),
			Explanation: fmt.Sprintf("Division undoes multiplication: %d × %d = %d, so %d ÷ %d = %d.", a, b, p, p, a, b),
			Payload:     &Numeric{Value: strconv.Itoa(b), Type: AnswerTypeInteger},
		}
	default:
		return &Question{
			Prompt:      fmt.Sprintf("%d × %d = ?", a, b),
			Explanation: fmt.Sprintf("%d groups of %d make %d.", a, b, p),
			Payload:     &Numeric{Value: strconv.Itoa(p), Type: AnswerTypeInteger},
		}
	}
}

var placeNames = []string{"ones", "tens", "hundreds", "thousands", "ten thousands", "hundred thousands"}

// PlaceValue asks for the value of one digit in a number. The digit asked
// about appears only once in the number.
//
//	Tier 1: 3-digit numbers
//	Tier 2: 4-digit numbers
//	Tier 3: 5- and 6-digit numbers
//	Tier 4: numbers with tenths and hundredths
type PlaceValue struct{}

func (PlaceValue) MaxTier() int { return 4 }

func (PlaceValue) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var digits, places int
	switch tier {
	case 1:
		digits = 3
	case 2:
		digits = 4
	case 3:
		digits = randRange(rng, 5, 6)
	default:
		digits, places = randRange(rng, 3, 4), 2
	}

	// Distinct non-zero digits keep the asked digit unique and its value
	// non-zero.
	ds := pickN(rng, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, digits)
	n := 0
	for _, d := range ds {
		n = n*10 + d
	}
	return buildPlaceValue(n, places, rng.IntN(digits))
}

// buildPlaceValue asks about the digit at position pos, counted from the
// rightmost digit, of n scaled down by 10^places.
func buildPlaceValue(n, places, pos int) (*Question, error) {
	s := strconv.Itoa(n)
	if pos < 0 || pos >= len(s) {
		return nil, fmt.Errorf("place value: position %d out of range for %d", pos, n)
	}
	digit := int(s[len(s)-1-pos] - '0')
	if strings.Count(s, string(s[len(s)-1-pos])) != 1 {
		return nil, fmt.Errorf("place value: digit %d repeats in %d", digit, n)
	}

	number := FormatFixed(n, places)
	exp := pos - places
	var value, place string
	switch {
	case exp >= 0:
		value = FormatInt(digit * pow10(exp))
		place = placeNames[exp]
	case exp == -1:
		value = FormatFixed(digit, 1)
		place = "tenths"
	default:
		value = FormatFixed(digit, -exp)
		place = "hundredths"
	}

	return &Question{
		Prompt:      fmt.Sprintf("What is the value of the digit %d in %s?", digit, number),
		Explanation: fmt.Sprintf("The %d is in the %s place, so its value is %s.", digit, place, value),
		Payload:     &Numeric{Value: value, Type: placeValueType(exp)},
	}, nil
}

func placeValueType(exp int) AnswerType {
	if exp < 0 {
		return AnswerTypeDecimal
	}
	return AnswerTypeInteger
}

// Rounding rounds whole numbers to a place. A 5 in the deciding digit rounds
// up.
//
//	Tier 1: 2-digit numbers to the nearest 10
//	Tier 2: 3- and 4-digit numbers to the nearest 10 or 100
//	Tier 3: up to 6 digits to the nearest 10, 100 or 1,000
type Rounding struct{}

func (Rounding) MaxTier() int { return 3 }

func (Rounding) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var n, place int
	switch tier {
	case 1:
		n, place = randRange(rng, 11, 99), 10
	case 2:
		n, place = randRange(rng, 101, 9999), pick(rng, []int{10, 100})
	default:
		n, place = randRange(rng, 1001, 999999), pick(rng, []int{10, 100, 1000})
	}
	if rng.IntN(4) == 0 {
		// Put a 5 in the deciding digit to practice the halfway case.
		decider := place / 10
		if decider == 0 {
			decider = 1
		}
		n = n - (n/decider%10)*decider + 5*decider
	}
	return buildRounding(n, place), nil
}

// RoundHalfUp rounds n to the nearest multiple of place, halves rounding up.
func RoundHalfUp(n, place int) int {
	return (n + place/2) / place * place
}

func buildRounding(n, place int) *Question {
	r := RoundHalfUp(n, place)
	decider := n / (place / 10) % 10
	direction := "down"
	if decider >= 5 {
		direction = "up"
	}
	return &Question{
		Prompt: fmt.Sprintf("Round %s to the nearest %s.", FormatInt(n), FormatInt(place)),
		Explanation: fmt.Sprintf("Look at the digit to the right of the %s place. It is %d, so round %s: %s.",
			placeNames[len(strconv.Itoa(place))-1], decider, direction, FormatInt(r)),
		Payload: &Numeric{Value: strconv.Itoa(r), Type: AnswerTypeInteger},
	}
}

// CompareSigns are the options of a fraction comparison, in option order.
var CompareSigns = []string{"<", "=", ">"}

// FractionCompare compares two fractions with <, = or >.
//
//	Tier 1: same denominator
//	Tier 2: one denominator a multiple of the other, equal fractions possible
//	Tier 3: unlike denominators up to 12
type FractionCompare struct{}

func (FractionCompare) MaxTier() int { return 3 }

func (FractionCompare) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var an, ad, bn, bd int
	switch tier {
	case 1:
		ad = randRange(rng, 3, 12)
		bd = ad
		ab := pickN(rng, rangeInts(1, ad-1), 2)
		an, bn = ab[0], ab[1]
	case 2:
		ad = randRange(rng, 2, 6)
		bd = ad * randRange(rng, 2, 3)
		an = randRange(rng, 1, ad-1)
		if rng.IntN(3) == 0 {
			bn = an * bd / ad
		} else {
			bn = randRange(rng, 1, bd-1)
		}
	default:
		for {
			ad, bd = randRange(rng, 2, 12), randRange(rng, 2, 12)
			if ad != bd {
				break
			}
		}
		an, bn = randRange(rng, 1, ad-1), randRange(rng, 1, bd-1)
	}
	if rng.IntN(2) == 0 {
		an, ad, bn, bd = bn, bd, an, ad
	}
	return buildFractionCompare(an, ad, bn, bd), nil
}

func buildFractionCompare(an, ad, bn, bd int) *Question {
	// Cross-multiply to compare without floating point.
	left, right := an*bd, bn*ad
	sign := 1
	switch {
	case left < right:
		sign = 0
	case left > right:
		sign = 2
	}

	var explanation string
	if ad == bd {
		explanation = fmt.Sprintf("The denominators match, so compare numerators: %d/%d %s %d/%d.",
			an, ad, CompareSigns[sign], bn, bd)
	} else {
		common := ad * bd / int(gcd(int64(ad), int64(bd)))
		explanation = fmt.Sprintf("Use the common denominator %d: %d/%d = %d/%d and %d/%d = %d/%d, so %d/%d %s %d/%d.",
			common, an, ad, an*common/ad, common, bn, bd, bn*common/bd, common,
			an, ad, CompareSigns[sign], bn, bd)
	}

	return &Question{
		Prompt:      fmt.Sprintf("Compare the fractions: %d/%d ? %d/%d. Choose <, = or >.", an, ad, bn, bd),
		Explanation: explanation,
		Payload:     &Choice{Options: slices.Clone(CompareSigns), Correct: []int{sign}},
	}
}

func rangeInts(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
