// Package present maps a drill session to a neutral view model. Front ends
// (terminal UI, web pages) draw the blocks; nothing here knows about either.
package present

// Level is the tone of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Block is one widget of a View. The set of implementations is closed.
type Block interface {
	isBlock()
}

// Heading is a section title.
type Heading struct {
	Text string
}

// Text is a paragraph.
type Text struct {
	Text string
}

// Notice is a highlighted message.
type Notice struct {
	Level Level
	Text  string
}

// Chart is a bar chart.
type Chart struct {
	Title string
	Unit  string
	Bars  []Bar
}

// Bar is one bar of a Chart.
type Bar struct {
	Label string
	Value int
}

// Grid is the partial-products area model. Hidden cells read "?".
type Grid struct {
	Corner string
	Cols   []string
	Rows   []GridRow
}

// GridRow is one row of a Grid.
type GridRow struct {
	Header string
	Cells  []string
}

// Table is a labelled table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Figure is a labelled shape. Unknown sides are labelled "?".
type Figure struct {
	Shape       string
	Width       int
	Height      int
	WidthLabel  string
	HeightLabel string
}

// Input is a free-form text or number field.
type Input struct {
	Name    string
	Label   string
	Numeric bool
	Hint    string
}

// Buttons asks the learner to pick one option. Values posted back are the
// option texts.
type Buttons struct {
	Name    string
	Label   string
	Options []string
}

// Picker asks the learner to pick every item once, in order. The posted
// value lists the picks separated by commas, as 1-based item numbers or
// item texts.
type Picker struct {
	Name  string
	Label string
	Items []string
}

// Columns lays blocks out side by side.
type Columns struct {
	Columns [][]Block
}

// Expander is a collapsible section.
type Expander struct {
	Title string
	Body  []Block
	Open  bool
}

// Action is a button that moves the drill cycle along.
type Action struct {
	Name  string // "submit", "next", "explain" or "restart"
	Label string
}

// Actions is the row of cycle buttons at the bottom of a view.
type Actions struct {
	Actions []Action
}

func (Heading) isBlock()  {}
func (Text) isBlock()     {}
func (Notice) isBlock()   {}
func (Chart) isBlock()    {}
func (Grid) isBlock()     {}
func (Table) isBlock()    {}
func (Figure) isBlock()   {}
func (Input) isBlock()    {}
func (Buttons) isBlock()  {}
func (Picker) isBlock()   {}
func (Columns) isBlock()  {}
func (Expander) isBlock() {}
func (Actions) isBlock()  {}

// Action names.
const (
	ActionSubmit  = "submit"
	ActionNext    = "next"
	ActionExplain = "explain"
	ActionRestart = "restart"
)
