package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type barTopic struct {
	title      string
	unit       string
	categories []string
	most       string
	fewest     string
}

var barTopics = []barTopic{
	{"Favorite fruit", "votes", []string{"Apples", "Bananas", "Grapes", "Mangoes", "Pears", "Cherries"},
		"Which fruit got the most votes?", "Which fruit got the fewest votes?"},
	{"Books read this month", "books", []string{"Class A", "Class B", "Class C", "Class D", "Class E"},
		"Which class read the most books?", "Which class read the fewest books?"},
	{"Pets owned", "students", []string{"Dogs", "Cats", "Fish", "Birds", "Rabbits", "Hamsters"},
		"Which pet is owned by the most students?", "Which pet is owned by the fewest students?"},
	{"Cans collected", "cans", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		"On which day were the most cans collected?", "On which day were the fewest cans collected?"},
}

// BarGraph asks which bar is highest or lowest. Bars may tie, and any tied
// category is accepted.
//
//	Tier 1: three bars, values 1-10
//	Tier 2: four bars up to 20, often with a tie at the extreme
//	Tier 3: five bars in steps of 5 up to 50, or the difference between two bars
type BarGraph struct{}

func (BarGraph) MaxTier() int { return 3 }

func (BarGraph) Generate(tier int, rng *rand.Rand) (*Question, error) {
	topic := pick(rng, barTopics)
	want := pick(rng, []ExtremeKind{ExtremeMax, ExtremeMin})

	var n int
	switch tier {
	case 1:
		n = 3
	case 2:
		n = 4
	default:
		n = 5
	}
	labels := pickN(rng, topic.categories, n)
	values := make([]int, n)
	for i := range values {
		switch tier {
		case 1:
			values[i] = randRange(rng, 1, 10)
		case 2:
			values[i] = randRange(rng, 2, 20)
		default:
			values[i] = 5 * randRange(rng, 1, 10)
		}
	}
	if tier == 2 && rng.IntN(2) == 0 {
		// Copy the extreme onto another bar so the learner meets a tie.
		e := ExtremeIndices(values, want)[0]
		values[(e+1+rng.IntN(n-1))%n] = values[e]
	}

	chart := &BarChart{Title: topic.title, Unit: topic.unit, Labels: labels, Values: values}
	if tier >= 3 && rng.IntN(2) == 0 {
		ij := rng.Perm(n)[:2]
		if values[ij[0]] != values[ij[1]] {
			return buildBarDifference(chart, ij[0], ij[1]), nil
		}
	}
	prompt := topic.most
	if want == ExtremeMin {
		prompt = topic.fewest
	}
	return buildBarGraph(chart, prompt, want), nil
}

// buildBarGraph asks for the highest or lowest bar. Every tied bar is correct.
func buildBarGraph(chart *BarChart, prompt string, want ExtremeKind) *Question {
	correct := ExtremeIndices(chart.Values, want)
	best := chart.Values[correct[0]]

	names := make([]string, len(correct))
	for i, c := range correct {
		names[i] = chart.Labels[c]
	}
	word := "highest"
	if want == ExtremeMin {
		word = "lowest"
	}
	explanation := fmt.Sprintf("Read the top of each bar. The %s value is %d %s, for %s.",
		word, best, chart.Unit, strings.Join(names, " and "))
	if len(correct) > 1 {
		explanation += " Those bars are tied, so any of them is correct."
	}

	return &Question{
		Prompt:      prompt,
		Explanation: explanation,
		Display:     chart,
		Payload: &Choice{
			Options: chart.Labels,
			Correct: correct,
			Extreme: &Extreme{Want: want, Values: chart.Values, Ties: TiesAcceptAll},
		},
	}
}

func buildBarDifference(chart *BarChart, i, j int) *Question {
	if chart.Values[i] < chart.Values[j] {
		i, j = j, i
	}
	diff := chart.Values[i] - chart.Values[j]
	return &Question{
		Prompt: fmt.Sprintf("How many more %s does %s have than %s?", chart.Unit, chart.Labels[i], chart.Labels[j]),
		Explanation: fmt.Sprintf("%s has %d and %s has %d, so %d − %d = %d.",
			chart.Labels[i], chart.Values[i], chart.Labels[j], chart.Values[j],
			chart.Values[i], chart.Values[j], diff),
		Display: chart,
		Payload: &Numeric{Value: strconv.Itoa(diff), Type: AnswerTypeInteger, Unit: chart.Unit},
	}
}

var (
	weekDays   = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	tableTowns = []string{"Oslo", "Denver", "Lima", "Perth", "Quebec", "Seoul", "Nairobi", "Reykjavik"}
)

// TemperatureTable shows a table of temperatures and asks for the warmest or
// coldest entry, or the range between them. The extreme is always unique.
//
//	Tier 1: five days, 10 °C to 30 °C
//	Tier 2: five days that may dip below zero
//	Tier 3: six towns below and above zero, extreme or range
type TemperatureTable struct{}

func (TemperatureTable) MaxTier() int { return 3 }

func (TemperatureTable) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var labels []string
	var lo, hi int
	switch tier {
	case 1:
		labels, lo, hi = weekDays[:5], 10, 30
	case 2:
		labels, lo, hi = weekDays[:5], -8, 12
	default:
		labels, lo, hi = pickN(rng, tableTowns, 6), -15, 25
	}
	header := "Day"
	if tier >= 3 {
		header = "Town"
	}

	want := pick(rng, []ExtremeKind{ExtremeMax, ExtremeMin})
	temps := drawUniqueExtreme(rng, len(labels), lo, hi, want)
	if tier >= 3 && rng.IntN(2) == 0 {
		return buildTemperatureRange(header, labels, temps), nil
	}
	return buildTemperatureTable(header, labels, temps, want), nil
}

// drawUniqueExtreme draws n values in [lo, hi], resampling until exactly one
// entry holds the wanted extreme.
func drawUniqueExtreme(rng *rand.Rand, n, lo, hi int, want ExtremeKind) []int {
	vals := make([]int, n)
	for {
		for i := range vals {
			vals[i] = randRange(rng, lo, hi)
		}
		if len(ExtremeIndices(vals, want)) == 1 {
			return vals
		}
	}
}

func temperatureDisplay(header string, labels []string, temps []int) *Table {
	t := &Table{Header: []string{header, "Temperature (°C)"}}
	for i, l := range labels {
		t.Rows = append(t.Rows, []string{l, strconv.Itoa(temps[i])})
	}
	return t
}

func buildTemperatureTable(header string, labels []string, temps []int, want ExtremeKind) *Question {
	word, cmp := "warmest", "highest"
	if want == ExtremeMin {
		word, cmp = "coldest", "lowest"
	}
	correct := ExtremeIndices(temps, want)
	place := "day"
	if header == "Town" {
		place = "town"
	}

	explanation := fmt.Sprintf("The %s temperature in the table is %d °C, so %s was %s.",
		cmp, temps[correct[0]], labels[correct[0]], word)
	if temps[correct[0]] < 0 {
		explanation += " Remember that below zero, the number farther from zero is colder."
	}

	return &Question{
		Prompt:      fmt.Sprintf("Which %s was the %s?", place, word),
		Explanation: explanation,
		Display:     temperatureDisplay(header, labels, temps),
		Payload: &Choice{
			Options: labels,
			Correct: correct,
			Extreme: &Extreme{Want: want, Values: temps, Ties: TiesForbidden},
		},
	}
}

func buildTemperatureRange(header string, labels []string, temps []int) *Question {
	hi := temps[ExtremeIndices(temps, ExtremeMax)[0]]
	lo := temps[ExtremeIndices(temps, ExtremeMin)[0]]
	return &Question{
		Prompt: "How many degrees warmer is the warmest temperature than the coldest?",
		Explanation: fmt.Sprintf("The warmest is %d °C and the coldest is %d °C. %d − (%d) = %d degrees.",
			hi, lo, hi, lo, hi-lo),
		Display: temperatureDisplay(header, labels, temps),
		Payload: &Numeric{Value: strconv.Itoa(hi - lo), Type: AnswerTypeInteger, Unit: "°C"},
	}
}
