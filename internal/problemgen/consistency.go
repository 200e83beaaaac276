package problemgen

import (
	"fmt"
	"slices"
	"strconv"
)

// ConsistencyValidator recomputes what the learner sees and checks that the
// payload agrees with it: partial products against the grid, tie sets
// against ranked values, and sequence order against item values.
type ConsistencyValidator struct{}

func (v *ConsistencyValidator) Name() string { return "consistency" }

func (v *ConsistencyValidator) Validate(q *Question) *ValidationError {
	if grid, ok := q.Display.(*ProductGrid); ok {
		if verr := v.checkGrid(grid, q.Payload); verr != nil {
			return verr
		}
	}

	switch p := q.Payload.(type) {
	case *Choice:
		if p.Extreme != nil {
			return v.checkExtreme(p)
		}
	case *Sequence:
		return v.checkSequence(p)
	}
	return nil
}

// checkGrid verifies every cell is the product of its row and column parts,
// that the cells sum to A×B, and that hidden cells and the total are
// answered by blanks carrying those exact values.
func (v *ConsistencyValidator) checkGrid(g *ProductGrid, payload Payload) *ValidationError {
	if sumInts(g.Rows) != g.A || sumInts(g.Cols) != g.B {
		return v.fail(fmt.Sprintf("grid parts do not expand %d × %d", g.A, g.B), false)
	}
	blanks := map[string]string{}
	if b, ok := payload.(*Blanks); ok {
		for _, bl := range b.Blanks {
			blanks[bl.Name] = bl.Value
		}
	}

	sum := 0
	for i, row := range g.Cells {
		for j, cell := range row {
			want := g.Rows[i] * g.Cols[j]
			if cell.Value != want {
				return v.fail(fmt.Sprintf("cell %d×%d is %d, want %d", g.Rows[i], g.Cols[j], cell.Value, want), false)
			}
			if cell.Hidden {
				got, ok := blanks[cell.Blank]
				if !ok {
					return v.fail(fmt.Sprintf("hidden cell %d×%d has no blank", g.Rows[i], g.Cols[j]), false)
				}
				if !matchValue(got, strconv.Itoa(want), AnswerTypeInteger) {
					return v.fail(fmt.Sprintf("blank %q is %s, want %d", cell.Blank, got, want), false)
				}
			}
			sum += cell.Value
		}
	}
	if sum != g.A*g.B {
		return v.fail(fmt.Sprintf("partials sum to %d, want %d", sum, g.A*g.B), false)
	}
	if total, ok := blanks["total"]; ok && !matchValue(total, strconv.Itoa(sum), AnswerTypeInteger) {
		return v.fail(fmt.Sprintf("total blank is %s, want %d", total, sum), false)
	}
	return nil
}

// checkExtreme verifies the correct set is exactly the set of entries
// sharing the extreme value, and that forbidden ties did not slip through.
func (v *ConsistencyValidator) checkExtreme(c *Choice) *ValidationError {
	e := c.Extreme
	if len(e.Values) != len(c.Options) {
		return v.fail("ranked values do not line up with options", false)
	}
	want := ExtremeIndices(e.Values, e.Want)
	if e.Ties == TiesForbidden && len(want) > 1 {
		return v.fail(fmt.Sprintf("%d entries tie for the %s", len(want), e.Want), true)
	}
	got := slices.Clone(c.Correct)
	slices.Sort(got)
	if !slices.Equal(got, want) {
		return v.fail(fmt.Sprintf("correct set %v, want %v", got, want), false)
	}
	return nil
}

// checkSequence verifies numeric items are distinct and the order is sorted.
func (v *ConsistencyValidator) checkSequence(s *Sequence) *ValidationError {
	if s.Type != AnswerTypeInteger && s.Type != AnswerTypeDecimal {
		return nil
	}
	vals := make([]float64, len(s.Items))
	for i, item := range s.Items {
		f, err := strconv.ParseFloat(stripGrouping(item), 64)
		if err != nil {
			return v.fail(fmt.Sprintf("item %q is not a number", item), false)
		}
		vals[i] = f
	}
	for i := 1; i < len(s.Order); i++ {
		prev, cur := vals[s.Order[i-1]], vals[s.Order[i]]
		if prev == cur {
			return v.fail(fmt.Sprintf("items tie at %v", cur), true)
		}
		if (prev > cur) != s.Descending {
			return v.fail("sequence order is not sorted", false)
		}
	}
	return nil
}

func (v *ConsistencyValidator) fail(msg string, retryable bool) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: retryable}
}

// ExtremeIndices returns the ascending indices of every entry holding the
// maximum (or minimum) value.
func ExtremeIndices(values []int, want ExtremeKind) []int {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if (want == ExtremeMax && v > best) || (want == ExtremeMin && v < best) {
			best = v
		}
	}
	var idx []int
	for i, v := range values {
		if v == best {
			idx = append(idx, i)
		}
	}
	return idx
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
