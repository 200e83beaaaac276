package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// AreaPerimeter works with rectangles drawn with labelled sides.
//
//	Tier 1: area, sides 2-10
//	Tier 2: area or perimeter, sides up to 15
//	Tier 3: a missing side from the area or perimeter, or both measures at once
type AreaPerimeter struct{}

func (AreaPerimeter) MaxTier() int { return 3 }

func (AreaPerimeter) Generate(tier int, rng *rand.Rand) (*Question, error) {
	unit := pick(rng, []string{"cm", "m", "in", "ft"})
	switch tier {
	case 1:
		return buildArea(randRange(rng, 2, 10), randRange(rng, 2, 10), unit), nil
	case 2:
		w, h := randRange(rng, 2, 15), randRange(rng, 2, 15)
		if rng.IntN(2) == 0 {
			return buildPerimeter(w, h, unit), nil
		}
		return buildArea(w, h, unit), nil
	default:
		w, h := randRange(rng, 3, 20), randRange(rng, 2, 12)
		switch rng.IntN(3) {
		case 0:
			return buildMissingSide(w, h, unit, true), nil
		case 1:
			return buildMissingSide(w, h, unit, false), nil
		default:
			return buildAreaAndPerimeter(w, h, unit), nil
		}
	}
}

func buildArea(w, h int, unit string) *Question {
	return &Question{
		Prompt:      fmt.Sprintf("What is the area of the rectangle in square %s?", unit),
		Explanation: fmt.Sprintf("Area = length × width = %d × %d = %d square %s.", w, h, w*h, unit),
		Display:     &Rectangle{Width: w, Height: h, Unit: unit, ShowWidth: true, ShowHeight: true},
		Payload:     &Numeric{Value: strconv.Itoa(w * h), Type: AnswerTypeInteger, Unit: "square " + unit},
	}
}

func buildPerimeter(w, h int, unit string) *Question {
	p := 2 * (w + h)
	return &Question{
		Prompt:      fmt.Sprintf("What is the perimeter of the rectangle in %s?", unit),
		Explanation: fmt.Sprintf("Perimeter = 2 × (length + width) = 2 × (%d + %d) = %d %s.", w, h, p, unit),
		Display:     &Rectangle{Width: w, Height: h, Unit: unit, ShowWidth: true, ShowHeight: true},
		Payload:     &Numeric{Value: strconv.Itoa(p), Type: AnswerTypeInteger, Unit: unit},
	}
}

// buildMissingSide hides the height and gives the area (fromArea) or the
// perimeter instead.
func buildMissingSide(w, h int, unit string, fromArea bool) *Question {
	q := &Question{
		Display: &Rectangle{Width: w, Height: h, Unit: unit, ShowWidth: true},
		Payload: &Numeric{Value: strconv.Itoa(h), Type: AnswerTypeInteger, Unit: unit},
	}
	if fromArea {
		q.Prompt = fmt.Sprintf("A rectangle has an area of %d square %s and a length of %d %s. What is its width?", w*h, unit, w, unit)
		q.Explanation = fmt.Sprintf("Width = area ÷ length = %d ÷ %d = %d %s.", w*h, w, h, unit)
		return q
	}
	p := 2 * (w + h)
	q.Prompt = fmt.Sprintf("A rectangle has a perimeter of %d %s and a length of %d %s. What is its width?", p, unit, w, unit)
	q.Explanation = fmt.Sprintf("Half the perimeter is length + width: %d ÷ 2 = %d, and %d − %d = %d %s.", p, p/2, p/2, w, h, unit)
	return q
}

func buildAreaAndPerimeter(w, h int, unit string) *Question {
	return &Question{
		Prompt: "Find the area and the perimeter of the rectangle.",
		Explanation: fmt.Sprintf("Area = %d × %d = %d square %s. Perimeter = 2 × (%d + %d) = %d %s.",
			w, h, w*h, unit, w, h, 2*(w+h), unit),
		Display: &Rectangle{Width: w, Height: h, Unit: unit, ShowWidth: true, ShowHeight: true},
		Payload: &Blanks{Blanks: []Blank{
			{Name: "area", Label: "Area (square " + unit + ")", Value: strconv.Itoa(w * h), Type: AnswerTypeInteger},
			{Name: "perimeter", Label: "Perimeter (" + unit + ")", Value: strconv.Itoa(2 * (w + h)), Type: AnswerTypeInteger},
		}},
	}
}

type symmetricFigure struct {
	name  string
	lines int
	hint  string
}

var (
	basicFigures = []symmetricFigure{
		{"square", 4, "one line through each pair of opposite sides and one through each pair of opposite corners"},
		{"rectangle that is not a square", 2, "one line across and one line down through the middle"},
		{"equilateral triangle", 3, "one line from each corner to the middle of the opposite side"},
		{"isosceles triangle that is not equilateral", 1, "the line from the top corner down the middle"},
		{"scalene triangle", 0, "no fold makes the halves match"},
	}
	letterFigures = []symmetricFigure{
		{"capital letter A", 1, "a vertical line down the middle"},
		{"capital letter B", 1, "a horizontal line through the middle"},
		{"capital letter H", 2, "one vertical and one horizontal line"},
		{"capital letter X", 2, "one vertical and one horizontal line"},
		{"capital letter F", 0, "no fold makes the halves match"},
		{"capital letter N", 0, "no fold makes the halves match"},
		{"capital letter T", 1, "a vertical line down the middle"},
		{"capital letter E", 1, "a horizontal line through the middle"},
	}
	polygonFigures = []symmetricFigure{
		{"regular pentagon", 5, "a regular polygon has as many lines of symmetry as sides"},
		{"regular hexagon", 6, "a regular polygon has as many lines of symmetry as sides"},
		{"regular octagon", 8, "a regular polygon has as many lines of symmetry as sides"},
		{"rhombus that is not a square", 2, "the two diagonals"},
		{"parallelogram that is not a rectangle or rhombus", 0, "no fold makes the halves match"},
		{"kite", 1, "the diagonal between the corners where equal sides meet"},
		{"isosceles trapezoid", 1, "the line through the middles of the parallel sides"},
	}
)

// Symmetry asks how many lines of symmetry a figure has.
//
//	Tier 1: squares, rectangles and triangles
//	Tier 2: capital letters
//	Tier 3: regular polygons and other quadrilaterals
type Symmetry struct{}

func (Symmetry) MaxTier() int { return 3 }

func (Symmetry) Generate(tier int, rng *rand.Rand) (*Question, error) {
	switch tier {
	case 1:
		return buildSymmetry(pick(rng, basicFigures), 4), nil
	case 2:
		return buildSymmetry(pick(rng, letterFigures), 4), nil
	default:
		return buildSymmetry(pick(rng, polygonFigures), 8), nil
	}
}

// buildSymmetry offers the counts 0 to maxLines as options.
func buildSymmetry(f symmetricFigure, maxLines int) *Question {
	opts := make([]string, 0, maxLines+1)
	for i := 0; i <= maxLines; i++ {
		opts = append(opts, strconv.Itoa(i))
	}
	lines := "lines"
	if f.lines == 1 {
		lines = "line"
	}
	return &Question{
		Prompt:      fmt.Sprintf("How many lines of symmetry does a %s have?", f.name),
		Explanation: fmt.Sprintf("A %s has %d %s of symmetry: %s.", f.name, f.lines, lines, f.hint),
		Payload:     &Choice{Options: opts, Correct: []int{f.lines}},
	}
}

type metricPair struct {
	big, small string
	factor     int
}

var metricPairs = []metricPair{
	{"m", "cm", 100},
	{"cm", "mm", 10},
	{"km", "m", 1000},
	{"kg", "g", 1000},
	{"L", "mL", 1000},
}

// MetricUnits converts between metric units.
//
//	Tier 1: whole big units to small units
//	Tier 2: either direction with whole results
//	Tier 3: decimal amounts of the big unit, either direction
type MetricUnits struct{}

func (MetricUnits) MaxTier() int { return 3 }

func (MetricUnits) Generate(tier int, rng *rand.Rand) (*Question, error) {
	pair := pick(rng, metricPairs)
	// Amounts are kept in tenths of the big unit so tier 3 stays exact.
	var tenths int
	toSmall := true
	switch tier {
	case 1:
		tenths = 10 * randRange(rng, 1, 12)
	case 2:
		tenths = 10 * randRange(rng, 1, 25)
		toSmall = rng.IntN(2) == 0
	default:
		tenths = randRange(rng, 11, 99)
		if tenths%10 == 0 {
			tenths++
		}
		toSmall = rng.IntN(2) == 0
	}
	return buildMetric(pair, tenths, toSmall), nil
}

func buildMetric(pair metricPair, tenths int, toSmall bool) *Question {
	big := FormatFixed(tenths, 1)
	if tenths%10 == 0 {
		big = FormatInt(tenths / 10)
	}
	small := FormatInt(tenths * pair.factor / 10)

	from, fromUnit, to, toUnit := big, pair.big, small, pair.small
	op := fmt.Sprintf("multiply by %s", FormatInt(pair.factor))
	if !toSmall {
		from, fromUnit, to, toUnit = small, pair.small, big, pair.big
		op = fmt.Sprintf("divide by %s", FormatInt(pair.factor))
	}

	return &Question{
		Prompt:      fmt.Sprintf("%s %s = ? %s", from, fromUnit, toUnit),
		Explanation: fmt.Sprintf("1 %s = %s %s. To change %s to %s, %s: %s %s = %s %s.", pair.big, FormatInt(pair.factor), pair.small, fromUnit, toUnit, op, from, fromUnit, to, toUnit),
		Payload:     &Numeric{Value: to, Type: AnswerTypeDecimal, Unit: toUnit},
	}
}
