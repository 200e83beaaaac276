package problemgen

import (
	"slices"
	"strconv"
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{47, []int{40, 7}},
		{38, []int{30, 8}},
		{7, []int{7}},
		{1203, []int{1000, 200, 3}},
		{500, []int{500}},
	}
	for _, tc := range tests {
		if got := Expand(tc.n); !slices.Equal(got, tc.want) {
			t.Errorf("Expand(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestPartialProducts_47x38(t *testing.T) {
	q, err := buildPartialProducts(47, 38, map[int]bool{0: true, 1: true, 2: true, 3: true})
	if err != nil {
		t.Fatal(err)
	}
	grid := q.Display.(*ProductGrid)
	var got []int
	for _, row := range grid.Cells {
		for _, c := range row {
			got = append(got, c.Value)
		}
	}
	if want := []int{1200, 320, 210, 56}; !slices.Equal(got, want) {
		t.Errorf("partials = %v, want %v", got, want)
	}
	if sumInts(got) != 47*38 {
		t.Errorf("partials sum to %d, want %d", sumInts(got), 47*38)
	}

	ok, err := Grade(q, NewAnswer("1200", "320", "210", "56", "1786"))
	if err != nil || !ok {
		t.Errorf("Grade(correct partials) = %v, %v", ok, err)
	}
	ok, _ = Grade(q, NewAnswer("1200", "280", "210", "56", "1746"))
	if ok {
		t.Error("Grade accepted 40 × 8 = 280")
	}
}

func TestPartialProducts_HiddenVariant(t *testing.T) {
	q, err := buildPartialProducts(47, 38, map[int]bool{1: true, 2: true})
	if err != nil {
		t.Fatal(err)
	}
	blanks := q.Payload.(*Blanks).Blanks
	names := make([]string, len(blanks))
	for i, b := range blanks {
		names[i] = b.Name
	}
	if want := []string{"p01", "p10", "total"}; !slices.Equal(names, want) {
		t.Errorf("blanks = %v, want %v", names, want)
	}
	if verr := Validate(q, DefaultValidators()); verr != nil {
		t.Errorf("Validate = %v", verr)
	}
}

func TestPartialProducts_SumProperty(t *testing.T) {
	gen := PartialProducts{}
	for tier := 1; tier <= gen.MaxTier(); tier++ {
		for seed := uint64(0); seed < 300; seed++ {
			q, err := gen.Generate(tier, NewRand(seed))
			if err != nil {
				t.Fatal(err)
			}
			g := q.Display.(*ProductGrid)
			if got := sumInts(cellValues(g)); got != g.A*g.B {
				t.Fatalf("tier %d seed %d: %d × %d partials sum to %d", tier, seed, g.A, g.B, got)
			}
		}
	}
}

func TestRemainder_23Div4(t *testing.T) {
	q, err := buildRemainder(remainderContexts[0], "Maya", 23, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := Expected(q); got != "Stickers each friend gets 5; Stickers left over 3" {
		t.Errorf("Expected = %q", got)
	}
	if ok, _ := Grade(q, NewAnswer("5", "3")); !ok {
		t.Error("5 r 3 graded incorrect")
	}
	if ok, _ := Grade(q, NewAnswer("5", "2")); ok {
		t.Error("5 r 2 graded correct")
	}
	if ok, _ := Grade(q, NewAnswer("4", "7")); ok {
		t.Error("4 r 7 graded correct")
	}
}

func TestRemainder_Identity(t *testing.T) {
	gen := Remainders{}
	for tier := 1; tier <= gen.MaxTier(); tier++ {
		for seed := uint64(0); seed < 300; seed++ {
			total, divisor := drawRemainder(tier, NewRand(seed))
			q, err := gen.Generate(tier, NewRand(seed))
			if err != nil {
				t.Fatal(err)
			}
			blanks := q.Payload.(*Blanks).Blanks
			quot, _ := strconv.Atoi(blanks[0].Value)
			rem, _ := strconv.Atoi(blanks[1].Value)
			if quot*divisor+rem != total || rem < 0 || rem >= divisor {
				t.Fatalf("tier %d seed %d: %d ÷ %d gave %d r %d", tier, seed, total, divisor, quot, rem)
			}
			if tier == 3 && rem == 0 {
				t.Fatalf("tier 3 seed %d: no remainder", seed)
			}
		}
	}
}

func TestDecimalCompare_452vs447(t *testing.T) {
	ctx := compareContext{MustTemplate("t", "{{.a}} has {{.x}}, {{.b}} has {{.y}}. Who has more?"), ExtremeMax}
	vals := []decimalValue{{Milli: 4520, Places: 2}, {Milli: 4470, Places: 2}}
	q, err := buildDecimalCompare(ctx, []string{"Maya", "Leo"}, vals)
	if err != nil {
		t.Fatal(err)
	}
	if q.Prompt != "Maya has 4.52, Leo has 4.47. Who has more?" {
		t.Errorf("Prompt = %q", q.Prompt)
	}
	if ok, _ := Grade(q, NewAnswer("Maya")); !ok {
		t.Error("Maya (4.52) graded incorrect")
	}
	if ok, _ := Grade(q, NewAnswer("Leo")); ok {
		t.Error("Leo (4.47) graded correct")
	}
}

func TestDecimals_Distinct(t *testing.T) {
	for _, gen := range []Generator{DecimalCompare{}, DecimalOrder{}} {
		for tier := 1; tier <= gen.MaxTier(); tier++ {
			for seed := uint64(0); seed < 300; seed++ {
				q, err := gen.Generate(tier, NewRand(seed))
				if err != nil {
					t.Fatal(err)
				}
				var values []int
				switch p := q.Payload.(type) {
				case *Choice:
					values = p.Extreme.Values
				case *Sequence:
					for _, item := range p.Items {
						f, _ := strconv.ParseFloat(item, 64)
						values = append(values, int(f*1000+0.5))
					}
				}
				seen := map[int]bool{}
				for _, v := range values {
					if seen[v] {
						t.Fatalf("%T tier %d seed %d: repeated value %d in %v", gen, tier, seed, v, values)
					}
					seen[v] = true
				}
			}
		}
	}
}

func TestDecimalOrder_TierShapes(t *testing.T) {
	tests := []struct {
		tier, items int
	}{
		{1, 3},
		{2, 4},
		{3, 5},
	}
	for _, tc := range tests {
		q, err := DecimalOrder{}.Generate(tc.tier, NewRand(11))
		if err != nil {
			t.Fatal(err)
		}
		if n := len(q.Payload.(*Sequence).Items); n != tc.items {
			t.Errorf("tier %d: %d items, want %d", tc.tier, n, tc.items)
		}
	}
}

func TestClockConversion(t *testing.T) {
	to12 := buildClockConversion(NewTimeOfDay(23, 50), Clock12)
	if got := Expected(to12); got != "11:50 P.M." {
		t.Errorf("23:50 in 12-hour = %q, want 11:50 P.M.", got)
	}
	for _, in := range []string{"11:50 P.M.", "11:50 pm", "11:50 p.m"} {
		if ok, _ := Grade(to12, NewAnswer(in)); !ok {
			t.Errorf("Grade(%q) = false", in)
		}
	}

	to24 := buildClockConversion(NewTimeOfDay(15, 45), Clock24)
	if to24.Prompt != "Write 3:45 P.M. in 24-hour time." {
		t.Errorf("Prompt = %q", to24.Prompt)
	}
	if got := Expected(to24); got != "15:45" {
		t.Errorf("3:45 P.M. in 24-hour = %q, want 15:45", got)
	}
}

func TestTimeZone_Rollover(t *testing.T) {
	london := Zone{"London", 0}
	kolkata := Zone{"Kolkata", 330}
	kathmandu := Zone{"Kathmandu", 345}

	q := buildTimeZone(london, kolkata, NewTimeOfDay(20, 0))
	if ok, _ := Grade(q, NewAnswer("01:30", "next day")); !ok {
		t.Errorf("London 20:00 to Kolkata: expected 01:30 next day, have %q", Expected(q))
	}
	if ok, _ := Grade(q, NewAnswer("01:30", "same day")); ok {
		t.Error("wrong day accepted")
	}

	q = buildTimeZone(kathmandu, london, NewTimeOfDay(3, 0))
	if ok, _ := Grade(q, NewAnswer("21:15", "previous day")); !ok {
		t.Errorf("Kathmandu 03:00 to London: expected 21:15 previous day, have %q", Expected(q))
	}
}

func TestTimeZones_TierRules(t *testing.T) {
	gen := TimeZones{}
	for seed := uint64(0); seed < 200; seed++ {
		q, _ := gen.Generate(1, NewRand(seed))
		if day := q.Payload.(*Blanks).Blanks[1].Value; day != "same day" {
			t.Fatalf("tier 1 seed %d: day = %q", seed, day)
		}

		q, _ = gen.Generate(3, NewRand(seed))
		if !containsPartialZone(q.Prompt) {
			t.Fatalf("tier 3 seed %d: no partial-hour zone in %q", seed, q.Prompt)
		}
	}
}

func containsPartialZone(prompt string) bool {
	for _, z := range partialHourZones {
		if strings.Contains(prompt, "("+z.Offset.String()+")") {
			return true
		}
	}
	return false
}

func TestBarGraph_TiesAccepted(t *testing.T) {
	chart := &BarChart{Title: "Cans", Unit: "cans", Labels: []string{"Mon", "Tue", "Wed", "Thu"}, Values: []int{10, 15, 15, 8}}
	q := buildBarGraph(chart, "Which day is highest?", ExtremeMax)
	for _, in := range []string{"Tue", "Wed"} {
		if ok, _ := Grade(q, NewAnswer(in)); !ok {
			t.Errorf("tied category %q graded incorrect", in)
		}
	}
	for _, in := range []string{"Mon", "Thu"} {
		if ok, _ := Grade(q, NewAnswer(in)); ok {
			t.Errorf("category %q graded correct", in)
		}
	}
	if got := Expected(q); got != "Tue or Wed" {
		t.Errorf("Expected = %q, want %q", got, "Tue or Wed")
	}
	if verr := Validate(q, DefaultValidators()); verr != nil {
		t.Errorf("Validate = %v", verr)
	}
}

func TestBarGraph_AnyTieAccepted(t *testing.T) {
	gen := BarGraph{}
	for seed := uint64(0); seed < 300; seed++ {
		q, _ := gen.Generate(2, NewRand(seed))
		c, ok := q.Payload.(*Choice)
		if !ok {
			continue
		}
		for _, i := range ExtremeIndices(c.Extreme.Values, c.Extreme.Want) {
			if ok, _ := Grade(q, NewAnswer(c.Options[i])); !ok {
				t.Fatalf("seed %d: tied option %q rejected", seed, c.Options[i])
			}
		}
	}
}

func TestTemperatureTable_UniqueExtreme(t *testing.T) {
	gen := TemperatureTable{}
	for tier := 1; tier <= gen.MaxTier(); tier++ {
		for seed := uint64(0); seed < 300; seed++ {
			q, _ := gen.Generate(tier, NewRand(seed))
			c, ok := q.Payload.(*Choice)
			if !ok {
				continue
			}
			if len(c.Correct) != 1 {
				t.Fatalf("tier %d seed %d: %d correct entries", tier, seed, len(c.Correct))
			}
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		n, place, want int
	}{
		{45, 10, 50},
		{44, 10, 40},
		{250, 100, 300},
		{249, 100, 200},
		{12500, 1000, 13000},
		{95, 10, 100},
	}
	for _, tc := range tests {
		if got := RoundHalfUp(tc.n, tc.place); got != tc.want {
			t.Errorf("RoundHalfUp(%d, %d) = %d, want %d", tc.n, tc.place, got, tc.want)
		}
	}
}

func TestPlaceValue(t *testing.T) {
	tests := []struct {
		n, places, pos int
		prompt, want   string
	}{
		{4732, 0, 2, "What is the value of the digit 7 in 4,732?", "700"},
		{5237, 2, 1, "What is the value of the digit 3 in 52.37?", "0.3"},
		{5237, 2, 0, "What is the value of the digit 7 in 52.37?", "0.07"},
	}
	for _, tc := range tests {
		q, err := buildPlaceValue(tc.n, tc.places, tc.pos)
		if err != nil {
			t.Fatal(err)
		}
		if q.Prompt != tc.prompt {
			t.Errorf("Prompt = %q, want %q", q.Prompt, tc.prompt)
		}
		if got := Expected(q); got != tc.want {
			t.Errorf("Expected = %q, want %q", got, tc.want)
		}
	}

	if _, err := buildPlaceValue(4744, 0, 1); err == nil {
		t.Error("expected error for a repeated digit")
	}
}

func TestFractionCompare(t *testing.T) {
	tests := []struct {
		an, ad, bn, bd int
		want           string
	}{
		{3, 4, 5, 8, ">"},
		{1, 3, 2, 6, "="},
		{2, 5, 3, 5, "<"},
	}
	for _, tc := range tests {
		q := buildFractionCompare(tc.an, tc.ad, tc.bn, tc.bd)
		if got := Expected(q); got != tc.want {
			t.Errorf("%d/%d ? %d/%d = %q, want %q", tc.an, tc.ad, tc.bn, tc.bd, got, tc.want)
		}
	}
}

func TestMetric(t *testing.T) {
	q := buildMetric(metricPair{"km", "m", 1000}, 35, true)
	if q.Prompt != "3.5 km = ? m" || Expected(q) != "3,500 m" {
		t.Errorf("got %q / %q", q.Prompt, Expected(q))
	}
	if ok, _ := Grade(q, NewAnswer("3500")); !ok {
		t.Error("3500 graded incorrect")
	}

	q = buildMetric(metricPair{"m", "cm", 100}, 45, false)
	if q.Prompt != "450 cm = ? m" {
		t.Errorf("Prompt = %q", q.Prompt)
	}
	if ok, _ := Grade(q, NewAnswer("4.50")); !ok {
		t.Error("4.50 graded incorrect")
	}
}
