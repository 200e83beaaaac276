package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// PartialProducts asks for the partial products of an area-model
// multiplication and their sum.
//
//	Tier 1: 2-digit × 1-digit, every partial asked
//	Tier 2: 2-digit × 2-digit, every partial asked
//	Tier 3: 2-digit × 2-digit, some partials given
//	Tier 4: 3- or 4-digit × 2-digit, half the partials given
type PartialProducts struct{}

func (PartialProducts) MaxTier() int { return 4 }

func (PartialProducts) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var a, b, hide int
	switch tier {
	case 1:
		a, b = twoDigit(rng), randRange(rng, 3, 9)
	case 2:
		a, b = twoDigit(rng), twoDigit(rng)
	case 3:
		a, b = twoDigit(rng), twoDigit(rng)
		hide = 2
	default:
		if rng.IntN(3) == 0 {
			a = randRange(rng, 1001, 9999)
		} else {
			a = randRange(rng, 101, 999)
		}
		b = twoDigit(rng)
	}

	rows, cols := Expand(a), Expand(b)
	cells := len(rows) * len(cols)
	switch {
	case tier <= 2:
		hide = cells
	case tier >= 4:
		hide = (cells + 1) / 2
	}
	hidden := make(map[int]bool, hide)
	for _, i := range rng.Perm(cells)[:hide] {
		hidden[i] = true
	}
	return buildPartialProducts(a, b, hidden)
}

// twoDigit draws a 2-digit number with no zero digit.
func twoDigit(rng *rand.Rand) int {
	return randRange(rng, 1, 9)*10 + randRange(rng, 1, 9)
}

// Expand splits n into its non-zero place-value parts, largest first:
// 47 becomes [40 7] and 1203 becomes [1000 200 3].
func Expand(n int) []int {
	var parts []int
	for place := pow10(len(strconv.Itoa(n)) - 1); place > 0; place /= 10 {
		if d := n / place % 10; d != 0 {
			parts = append(parts, d*place)
		}
	}
	return parts
}

// buildPartialProducts builds the question for a × b. hidden holds the
// row-major indices of cells the learner must fill in; the total is always
// asked.
func buildPartialProducts(a, b int, hidden map[int]bool) (*Question, error) {
	rows, cols := Expand(a), Expand(b)
	grid := &ProductGrid{A: a, B: b, Rows: rows, Cols: cols}

	var blanks []Blank
	var steps []string
	sum := 0
	for i, r := range rows {
		var row []GridCell
		for j, c := range cols {
			p := r * c
			sum += p
			cell := GridCell{Value: p}
			if hidden[i*len(cols)+j] {
				cell.Hidden = true
				cell.Blank = fmt.Sprintf("p%d%d", i, j)
				blanks = append(blanks, Blank{
					Name:  cell.Blank,
					Label: fmt.Sprintf("%s × %s =", FormatInt(r), FormatInt(c)),
					Value: strconv.Itoa(p),
					Type:  AnswerTypeInteger,
				})
			}
			row = append(row, cell)
			steps = append(steps, fmt.Sprintf("%s × %s = %s", FormatInt(r), FormatInt(c), FormatInt(p)))
		}
		grid.Cells = append(grid.Cells, row)
	}
	blanks = append(blanks, Blank{
		Name:  "total",
		Label: fmt.Sprintf("%s × %s =", FormatInt(a), FormatInt(b)),
		Value: strconv.Itoa(sum),
		Type:  AnswerTypeInteger,
	})

	prompt := fmt.Sprintf("Use partial products to find %s × %s. Fill in each partial product and the total.",
		FormatInt(a), FormatInt(b))
	if len(blanks)-1 < len(rows)*len(cols) {
		prompt = fmt.Sprintf("Some partial products for %s × %s are filled in. Find the missing ones and the total.",
			FormatInt(a), FormatInt(b))
	}

	explanation := fmt.Sprintf("Break %s into %s and %s into %s. Multiply every pair: %s. Add them: %s = %s.",
		FormatInt(a), joinParts(rows), FormatInt(b), joinParts(cols),
		strings.Join(steps, ", "),
		joinParts(cellValues(grid)), FormatInt(sum))

	return &Question{
		Prompt:      prompt,
		Explanation: explanation,
		Display:     grid,
		Payload:     &Blanks{Blanks: blanks},
	}, nil
}

func joinParts(parts []int) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = FormatInt(p)
	}
	return strings.Join(s, " + ")
}

func cellValues(g *ProductGrid) []int {
	var vals []int
	for _, row := range g.Cells {
		for _, c := range row {
			vals = append(vals, c.Value)
		}
	}
	return vals
}
