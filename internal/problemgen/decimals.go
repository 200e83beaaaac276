package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

var learnerNames = []string{
	"Maya", "Leo", "Ava", "Noah", "Priya", "Sam", "Zara", "Omar", "Lily", "Kenji", "Rosa", "Eli",
}

// decimalValue is a decimal held as an integer count of thousandths so that
// comparisons never go through floating point. Places is how many decimal
// places it is written with.
type decimalValue struct {
	Milli  int
	Places int
}

func (d decimalValue) String() string {
	return FormatFixed(d.Milli/pow10(3-d.Places), d.Places)
}

// drawDecimal draws a value in (0, 10) written with the given places.
// When whole >= 0 the integer part is fixed to it.
func drawDecimal(rng *rand.Rand, places, whole int) decimalValue {
	scale := pow10(places)
	var v int
	if whole >= 0 {
		v = whole*scale + randRange(rng, 1, scale-1)
	} else {
		v = randRange(rng, 1, 10*scale-1)
	}
	return decimalValue{Milli: v * pow10(3-places), Places: places}
}

// drawDistinctDecimals draws n decimals with pairwise distinct values,
// resampling any value that collides with one already drawn.
func drawDistinctDecimals(rng *rand.Rand, n int, draw func() decimalValue) []decimalValue {
	out := make([]decimalValue, 0, n)
	seen := make(map[int]bool, n)
	for len(out) < n {
		d := draw()
		if seen[d.Milli] {
			continue
		}
		seen[d.Milli] = true
		out = append(out, d)
	}
	return out
}

// DecimalCompare asks which of two people has the larger (or smaller)
// decimal measurement. Values are always distinct.
//
//	Tier 1: tenths
//	Tier 2: hundredths in [0.01, 9.99]
//	Tier 3: mixed tenths, hundredths and thousandths sharing a whole part
type DecimalCompare struct{}

func (DecimalCompare) MaxTier() int { return 3 }

type compareContext struct {
	text Template
	want ExtremeKind
}

var compareContexts = []compareContext{
	{MustTemplate("jump", "{{.a}} jumped {{.x}} m and {{.b}} jumped {{.y}} m. Who jumped farther?"), ExtremeMax},
	{MustTemplate("plant", "{{.a}}'s plant is {{.x}} cm tall and {{.b}}'s plant is {{.y}} cm tall. Whose plant is shorter?"), ExtremeMin},
	{MustTemplate("juice", "{{.a}} drank {{.x}} L of juice and {{.b}} drank {{.y}} L. Who drank more?"), ExtremeMax},
	{MustTemplate("ribbon", "{{.a}}'s ribbon is {{.x}} m long and {{.b}}'s ribbon is {{.y}} m long. Whose ribbon is shorter?"), ExtremeMin},
}

func (DecimalCompare) Generate(tier int, rng *rand.Rand) (*Question, error) {
	names := pickN(rng, learnerNames, 2)
	ctx := pick(rng, compareContexts)

	var vals []decimalValue
	switch tier {
	case 1:
		vals = drawDistinctDecimals(rng, 2, func() decimalValue { return drawDecimal(rng, 1, -1) })
	case 2:
		vals = drawDistinctDecimals(rng, 2, func() decimalValue { return drawDecimal(rng, 2, -1) })
	default:
		whole := randRange(rng, 1, 9)
		vals = drawDistinctDecimals(rng, 2, func() decimalValue { return drawDecimal(rng, randRange(rng, 1, 3), whole) })
	}
	return buildDecimalCompare(ctx, names, vals)
}

func buildDecimalCompare(ctx compareContext, names []string, vals []decimalValue) (*Question, error) {
	prompt, err := ctx.text.Bind(Slots{"a": names[0], "b": names[1], "x": vals[0].String(), "y": vals[1].String()})
	if err != nil {
		return nil, err
	}

	ranked := []int{vals[0].Milli, vals[1].Milli}
	correct := ExtremeIndices(ranked, ctx.want)
	win, lose := correct[0], 1-correct[0]
	sign := ">"
	if vals[win].Milli < vals[lose].Milli {
		sign = "<"
	}

	explanation := fmt.Sprintf("Line up the decimal points and compare place by place: %s %s %s. The answer is %s.",
		padPlaces(vals[win], vals[lose]), sign, padPlaces(vals[lose], vals[win]), names[win])

	return &Question{
		Prompt:      prompt,
		Explanation: explanation,
		Payload: &Choice{
			Options: names,
			Correct: correct,
			Extreme: &Extreme{Want: ctx.want, Values: ranked, Ties: TiesForbidden},
		},
	}, nil
}

// padPlaces writes d with as many places as the wider of d and other, so
// 4.5 next to 4.47 reads 4.50.
func padPlaces(d, other decimalValue) string {
	places := max(d.Places, other.Places)
	return FormatFixed(d.Milli/pow10(3-places), places)
}

// DecimalOrder asks the learner to order distinct decimals.
//
//	Tier 1: three tenths, least to greatest
//	Tier 2: four hundredths, either direction
//	Tier 3: five values with mixed places sharing a whole part
type DecimalOrder struct{}

func (DecimalOrder) MaxTier() int { return 3 }

func (DecimalOrder) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var vals []decimalValue
	descending := false
	switch tier {
	case 1:
		vals = drawDistinctDecimals(rng, 3, func() decimalValue { return drawDecimal(rng, 1, -1) })
	case 2:
		vals = drawDistinctDecimals(rng, 4, func() decimalValue { return drawDecimal(rng, 2, -1) })
		descending = rng.IntN(2) == 0
	default:
		whole := randRange(rng, 0, 9)
		vals = drawDistinctDecimals(rng, 5, func() decimalValue { return drawDecimal(rng, randRange(rng, 1, 3), whole) })
		descending = rng.IntN(2) == 0
	}
	return buildDecimalOrder(vals, descending), nil
}

func buildDecimalOrder(vals []decimalValue, descending bool) *Question {
	items := make([]string, len(vals))
	order := make([]int, len(vals))
	for i, v := range vals {
		items[i] = v.String()
		order[i] = i
	}
	slices.SortFunc(order, func(x, y int) int {
		if descending {
			return vals[y].Milli - vals[x].Milli
		}
		return vals[x].Milli - vals[y].Milli
	})

	direction := "least to greatest"
	if descending {
		direction = "greatest to least"
	}

	widest := 0
	for _, v := range vals {
		widest = max(widest, v.Places)
	}
	padded := make([]string, len(order))
	for i, idx := range order {
		padded[i] = FormatFixed(vals[idx].Milli/pow10(3-widest), widest)
	}

	return &Question{
		Prompt: fmt.Sprintf("Order these decimals from %s: %s.", direction, strings.Join(items, ", ")),
		Explanation: fmt.Sprintf("Write every number with %d decimal places and compare digit by digit: %s.",
			widest, strings.Join(padded, joinSign(descending))),
		Payload: &Sequence{
			Items:      items,
			Order:      order,
			Type:       AnswerTypeDecimal,
			Descending: descending,
		},
	}
}

func joinSign(descending bool) string {
	if descending {
		return " > "
	}
	return " < "
}

// DecimalWordProblems are money word problems worked in cents.
//
//	Tier 1: add two prices
//	Tier 2: change from a $10 or $20 bill
//	Tier 3: several of the same item, or three prices added
type DecimalWordProblems struct{}

func (DecimalWordProblems) MaxTier() int { return 3 }

var (
	shopItems = []string{"notebook", "pencil case", "sandwich", "comic book", "water bottle", "kite", "puzzle", "box of crayons"}

	addTemplate    = MustTemplate("add", "{{.name}} buys a {{.item1}} for {{.p1}} and a {{.item2}} for {{.p2}}. How much does {{.name}} spend in all?")
	changeTemplate = MustTemplate("change", "{{.name}} pays for a {{.item1}} that costs {{.p1}} with a {{.bill}} bill. How much change does {{.name}} get?")
	timesTemplate  = MustTemplate("times", "One {{.item1}} costs {{.p1}}. How much do {{.n}} of them cost?")
	threeTemplate  = MustTemplate("three", "{{.name}} buys a {{.item1}} for {{.p1}}, a {{.item2}} for {{.p2}} and a {{.item3}} for {{.p3}}. What is the total cost?")
)

func (DecimalWordProblems) Generate(tier int, rng *rand.Rand) (*Question, error) {
	name := pick(rng, learnerNames)
	items := pickN(rng, shopItems, 3)
	p1, p2, p3 := randRange(rng, 105, 995), randRange(rng, 105, 995), randRange(rng, 105, 995)
	slots := Slots{
		"name": name, "item1": items[0], "item2": items[1], "item3": items[2],
		"p1": FormatMoney(p1), "p2": FormatMoney(p2), "p3": FormatMoney(p3),
	}

	var tmpl Template
	var cents int
	var working string
	switch {
	case tier == 1:
		tmpl, cents = addTemplate, p1+p2
		working = fmt.Sprintf("%s + %s = %s", FormatMoney(p1), FormatMoney(p2), FormatMoney(cents))
	case tier == 2:
		bill := 1000
		if p1 > 800 || rng.IntN(2) == 0 {
			bill = 2000
		}
		slots["bill"] = FormatMoney(bill)
		tmpl, cents = changeTemplate, bill-p1
		working = fmt.Sprintf("%s − %s = %s", FormatMoney(bill), FormatMoney(p1), FormatMoney(cents))
	case rng.IntN(2) == 0:
		n := randRange(rng, 2, 6)
		slots["n"] = fmt.Sprint(n)
		tmpl, cents = timesTemplate, n*p1
		working = fmt.Sprintf("%d × %s = %s", n, FormatMoney(p1), FormatMoney(cents))
	default:
		tmpl, cents = threeTemplate, p1+p2+p3
		working = fmt.Sprintf("%s + %s + %s = %s", FormatMoney(p1), FormatMoney(p2), FormatMoney(p3), FormatMoney(cents))
	}

	prompt, err := tmpl.Bind(slots)
	if err != nil {
		return nil, err
	}
	return &Question{
		Prompt:      prompt,
		Explanation: "Line up the decimal points and work in dollars and cents: " + working + ".",
		Payload:     &Numeric{Value: FormatFixed(cents, 2), Type: AnswerTypeDecimal, Unit: "dollars"},
	}, nil
}
