package activity

import (
	"github.com/abhisek/mathdrills/internal/difficulty"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

var (
	streak32 = difficulty.Streak{Up: 3, Down: 2}
	streak22 = difficulty.Streak{Up: 2, Down: 2}
)

func seedActivities() []Activity {
	return []Activity{
		// Multiplication & Division
		{ID: "times-tables", Name: "Times Tables", Topic: TopicMultDiv, Grade: 3, MaxTier: 4,
			Policy: streak32, Generator: problemgen.TimesTables{}},
		{ID: "partial-products", Name: "Partial Products", Topic: TopicMultDiv, Grade: 4, MaxTier: 4,
			Policy: difficulty.Streak{Up: 3, Down: 3}, Generator: problemgen.PartialProducts{}},
		{ID: "remainders", Name: "Division with Remainders", Topic: TopicMultDiv, Grade: 4, MaxTier: 3,
			Policy: streak22, Generator: problemgen.Remainders{}},

		// Decimals
		{ID: "decimal-compare", Name: "Compare Decimals", Topic: TopicDecimals, Grade: 4, MaxTier: 3,
			Policy: streak32, Generator: problemgen.DecimalCompare{}, Ties: problemgen.TiesForbidden},
		{ID: "decimal-order", Name: "Order Decimals", Topic: TopicDecimals, Grade: 5, MaxTier: 3,
			Policy:    difficulty.Rolling{Window: 5, Raise: 0.8, Lower: 0.4},
			Generator: problemgen.DecimalOrder{}, Ties: problemgen.TiesForbidden},
		{ID: "decimal-word-problems", Name: "Money Word Problems", Topic: TopicDecimals, Grade: 5, MaxTier: 3,
			Policy: streak22, Generator: problemgen.DecimalWordProblems{}},

		// Time
		{ID: "clock-24h", Name: "12-Hour and 24-Hour Time", Topic: TopicTime, Grade: 4, MaxTier: 3,
			Policy: streak32, Generator: problemgen.Clock24h{}},
		{ID: "elapsed-time", Name: "Elapsed Time", Topic: TopicTime, Grade: 3, MaxTier: 3,
			Policy: streak22, Generator: problemgen.ElapsedTime{}},
		{ID: "time-zones", Name: "Time Zones", Topic: TopicTime, Grade: 5, MaxTier: 3,
			Policy:    difficulty.Rolling{Window: 6, Raise: 0.83, Lower: 0.34},
			Generator: problemgen.TimeZones{}},

		// Data
		{ID: "bar-graph", Name: "Read a Bar Graph", Topic: TopicData, Grade: 3, MaxTier: 3,
			Policy: streak22, Generator: problemgen.BarGraph{}, Ties: problemgen.TiesAcceptAll},
		{ID: "temperature-table", Name: "Temperature Tables", Topic: TopicData, Grade: 4, MaxTier: 3,
			Policy: streak22, Generator: problemgen.TemperatureTable{}, Ties: problemgen.TiesForbidden},

		// Geometry & Measurement
		{ID: "area-perimeter", Name: "Area and Perimeter", Topic: TopicGeometry, Grade: 3, MaxTier: 3,
			Policy: streak32, Generator: problemgen.AreaPerimeter{}},
		{ID: "symmetry", Name: "Lines of Symmetry", Topic: TopicGeometry, Grade: 4, MaxTier: 3,
			Policy: streak22, Generator: problemgen.Symmetry{}},
		{ID: "metric-units", Name: "Metric Conversions", Topic: TopicGeometry, Grade: 4, MaxTier: 3,
			Policy: streak32, Generator: problemgen.MetricUnits{}},

		// Number Sense
		{ID: "place-value", Name: "Place Value", Topic: TopicNumberSense, Grade: 3, MaxTier: 4,
			Policy: streak32, Generator: problemgen.PlaceValue{}},
		{ID: "rounding", Name: "Rounding", Topic: TopicNumberSense, Grade: 3, MaxTier: 3,
			Policy: streak32, Generator: problemgen.Rounding{}},
		{ID: "fraction-compare", Name: "Compare Fractions", Topic: TopicNumberSense, Grade: 4, MaxTier: 3,
			Policy: streak32, Generator: problemgen.FractionCompare{}},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(seedActivities())
	if err != nil {
		panic("activity: invalid built-in catalog: " + err.Error())
	}
	return c
}
