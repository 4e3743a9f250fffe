// Package menu holds the compiled-in course menu: the IDs the bot puts on
// buttons and list rows, their display titles, and what each ID triggers.
package menu

// Greeting is the text (compared case-insensitively) that opens the menu.
const Greeting = "hi"

// Button reply IDs.
const (
	ButtonUG = "ug_button"
	ButtonPG = "pg_button"
)

// List row IDs.
const (
	RowUGEngineering = "ug_eng"
	RowUGMedical     = "ug_med"
	RowPGMBA         = "pg_mba"
	RowPGMTech       = "pg_mtech"
)

// Action is what the bot sends in response to a menu ID.
type Action int

const (
	// ActionNone means the ID is not part of the menu.
	ActionNone Action = iota
	ActionUGList
	ActionPGList
	ActionText
)

func (a Action) String() string {
	switch a {
	case ActionUGList:
		return "ug_list"
	case ActionPGList:
		return "pg_list"
	case ActionText:
		return "text"
	default:
		return "none"
	}
}

// Entry maps one opaque ID to its action. Text is set only for ActionText.
type Entry struct {
	ID     string
	Action Action
	Text   string
}

// Option is a selectable button or list row.
type Option struct {
	ID    string
	Title string
}

// Prompt is the top-level button prompt.
type Prompt struct {
	Body    string
	Buttons []Option
}

// List is a single-section selectable list.
type List struct {
	Body         string
	Button       string
	SectionTitle string
	Rows         []Option
}

// ProgramPrompt is sent when a user greets the bot.
var ProgramPrompt = Prompt{
	Body: "Choose your program:",
	Buttons: []Option{
		{ID: ButtonUG, Title: "UG"},
		{ID: ButtonPG, Title: "PG"},
	},
}

// UGList lists the undergraduate courses.
var UGList = List{
	Body:         "Select a UG course:",
	Button:       "Choose UG Course",
	SectionTitle: "UG Courses",
	Rows: []Option{
		{ID: RowUGEngineering, Title: "Engineering"},
		{ID: RowUGMedical, Title: "Medical"},
	},
}

// PGList lists the postgraduate courses.
var PGList = List{
	Body:         "Select a PG course:",
	Button:       "Choose PG Course",
	SectionTitle: "PG Courses",
	Rows: []Option{
		{ID: RowPGMBA, Title: "MBA"},
		{ID: RowPGMTech, Title: "MTech"},
	},
}

var buttonEntries = map[string]Entry{
	ButtonUG: {ID: ButtonUG, Action: ActionUGList},
	ButtonPG: {ID: ButtonPG, Action: ActionPGList},
}

var rowEntries = map[string]Entry{
	RowUGEngineering: {ID: RowUGEngineering, Action: ActionText, Text: "UG Engineering: Choose from CS, ECE, Mech."},
	RowUGMedical:     {ID: RowUGMedical, Action: ActionText, Text: "UG Medical: Options include MBBS, BDS, BPT."},
	RowPGMBA:         {ID: RowPGMBA, Action: ActionText, Text: "PG MBA: Specializations in Finance & Mark, HR, Marketing."},
	RowPGMTech:       {ID: RowPGMTech, Action: ActionText, Text: "PG MTech: Choose from AI, VLSI, Thermal Engg."},
}

// LookupButton resolves a button reply ID. ok is false for unknown IDs.
func LookupButton(id string) (Entry, bool) {
	e, ok := buttonEntries[id]
	return e, ok
}

// LookupRow resolves a list reply row ID. ok is false for unknown IDs.
func LookupRow(id string) (Entry, bool) {
	e, ok := rowEntries[id]
	return e, ok
}
