package problemgen

// Kind discriminates how a question is answered, graded, and rendered.
// It is derived from the payload variant, never stored on its own.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindChoice   Kind = "choice"
	KindSequence Kind = "sequence"
	KindBlanks   Kind = "blanks"
	KindTime     Kind = "time"
)

// AnswerType describes how a single answer value is normalized for comparison.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "1,200"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
	AnswerTypeTime     AnswerType = "time"     // e.g. "15:45", "3:45 P.M."
	AnswerTypeText     AnswerType = "text"     // case and space insensitive
)

// ClockFormat selects 12-hour or 24-hour notation for time answers.
type ClockFormat string

const (
	Clock24 ClockFormat = "24h"
	Clock12 ClockFormat = "12h"
)

// Question is a generated question ready for display. It is immutable once
// built; a new question replaces it wholesale.
type Question struct {
	// ActivityID is the activity this question was generated for.
	ActivityID string

	// Tier is the clamped difficulty tier the question was generated at.
	Tier int

	// Seed reproduces the question when passed back to Build with the same
	// generator and tier.
	Seed uint64

	// Prompt is the question text shown to the learner.
	Prompt string

	// Explanation is a short worked solution shown with feedback.
	Explanation string

	// Display is an optional visual aid. Nil when the prompt stands alone.
	Display Display

	// Payload carries the correct answer and selects the grading rule.
	Payload Payload
}

// Kind returns the question kind implied by its payload.
func (q *Question) Kind() Kind {
	if q == nil || q.Payload == nil {
		return ""
	}
	return q.Payload.Kind()
}

// Payload is the answer side of a question. The set of implementations is
// closed: Numeric, Choice, Sequence, Blanks and Clock.
type Payload interface {
	Kind() Kind
	isPayload()
}

// Numeric is a single free-form number.
type Numeric struct {
	Value string
	Type  AnswerType
	Unit  string
}

// Choice asks the learner to pick one option. Correct is a set: every index
// listed is an acceptable answer.
type Choice struct {
	Options []string
	Correct []int

	// Extreme is set when the choice answers a highest/lowest question. It
	// records the values the options were ranked by.
	Extreme *Extreme
}

// Sequence asks the learner to arrange Items. Order lists item indices in the
// correct order.
type Sequence struct {
	Items      []string
	Order      []int
	Type       AnswerType
	Descending bool
}

// Blanks is a tuple of named blanks. Every blank must match.
type Blanks struct {
	Blanks []Blank
}

// Blank is one component of a Blanks answer.
type Blank struct {
	Name    string
	Label   string
	Value   string
	Type    AnswerType
	Format  ClockFormat // only for AnswerTypeTime
	Options []string    // when set, the blank is picked rather than typed
}

// Clock is a time-of-day answer in a fixed notation.
type Clock struct {
	Value  string
	Format ClockFormat
}

func (*Numeric) Kind() Kind  { return KindNumeric }
func (*Choice) Kind() Kind   { return KindChoice }
func (*Sequence) Kind() Kind { return KindSequence }
func (*Blanks) Kind() Kind   { return KindBlanks }
func (*Clock) Kind() Kind    { return KindTime }

func (*Numeric) isPayload()  {}
func (*Choice) isPayload()   {}
func (*Sequence) isPayload() {}
func (*Blanks) isPayload()   {}
func (*Clock) isPayload()    {}

// ExtremeKind selects which end of a ranking a question asks about.
type ExtremeKind string

const (
	ExtremeMax ExtremeKind = "max"
	ExtremeMin ExtremeKind = "min"
)

// TiePolicy states how an activity treats several entries sharing the extreme.
type TiePolicy string

const (
	// TiesAcceptAll accepts any of the tied entries.
	TiesAcceptAll TiePolicy = "accept-all"

	// TiesForbidden means the generator resamples until the extreme is unique.
	TiesForbidden TiePolicy = "forbidden"
)

// Extreme ties a Choice to the values its options are ranked by.
type Extreme struct {
	Want   ExtremeKind
	Values []int
	Ties   TiePolicy
}

// Display is a visual aid attached to a question. The set of implementations
// is closed: BarChart, ProductGrid, Table and Rectangle.
type Display interface {
	isDisplay()
}

// BarChart is a labelled bar graph.
type BarChart struct {
	Title  string
	Unit   string
	Labels []string
	Values []int
}

// ProductGrid is the area model of a partial-products multiplication. Rows
// hold the expanded parts of A, Cols the expanded parts of B, and Cells[i][j]
// the partial product Rows[i]*Cols[j].
type ProductGrid struct {
	A, B  int
	Rows  []int
	Cols  []int
	Cells [][]GridCell
}

// GridCell is one partial product. A hidden cell is answered through the
// blank named Blank.
type GridCell struct {
	Value  int
	Hidden bool
	Blank  string
}

// Table is a simple labelled table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Rectangle is a rectangle figure with optionally labelled sides.
type Rectangle struct {
	Width, Height int
	Unit          string
	ShowWidth     bool
	ShowHeight    bool
}

func (*BarChart) isDisplay()    {}
func (*ProductGrid) isDisplay() {}
func (*Table) isDisplay()       {}
func (*Rectangle) isDisplay()   {}

// Answer is what the learner submitted: one value per input slot.
type Answer struct {
	Values []string
}

// NewAnswer builds an Answer from its slot values.
func NewAnswer(values ...string) Answer {
	return Answer{Values: values}
}
