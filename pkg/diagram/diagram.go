// Package diagram defines the in-memory model produced by the parser and
// consumed by the layout engine.
//
// A [Diagram] is a tagged union over a closed set of kinds. Exactly one kind
// pointer is non-nil per parse result, selected by [Diagram.Kind]. The model
// is pure data: it carries no layout or rendering behavior and is never
// mutated after the parser returns it.
//
// Edges reference nodes by index into the owning slice rather than by
// pointer. Cyclic graphs are a structural requirement for flowcharts and
// state charts, and index pairs represent them without reference cycles.
package diagram

// Kind identifies the diagram variant held by a Diagram.
type Kind int

const (
	KindFlowchart Kind = iota
	KindSequence
	KindEntityRelationship
	KindState
	KindClass
	KindTimeline
	KindTable
)

// String returns the kind keyword as it appears in diagram source.
func (k Kind) String() string {
	switch k {
	case KindFlowchart:
		return "flowchart"
	case KindSequence:
		return "sequenceDiagram"
	case KindEntityRelationship:
		return "erDiagram"
	case KindState:
		return "stateDiagram"
	case KindClass:
		return "classDiagram"
	case KindTimeline:
		return "timeline"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Diagram is a tagged union over diagram kinds. Exactly one of the kind
// pointers is non-nil, matching Kind.
type Diagram struct {
	Kind Kind

	Flowchart *Flowchart
	Sequence  *Sequence
	ER        *EntityRelationship
	State     *StateChart
	Class     *ClassDiagram
	Timeline  *Timeline
	Table     *Table
}

// Shape selects the border treatment of a flowchart node.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeDiamond
	ShapeRounded
	ShapeStadium
)

// Node is a flowchart vertex. ID is unique within the diagram.
type Node struct {
	ID    string
	Label string
	Shape Shape
}

// Edge is a directed connection between two nodes, stored as index pairs
// into the owning node slice.
type Edge struct {
	From   int
	To     int
	Label  string
	Dashed bool
}

// Flowchart holds nodes in declaration order plus directed edges.
type Flowchart struct {
	Nodes []Node
	Edges []Edge
}

// Sequence holds participants in declaration order and messages in
// textual order.
type Sequence struct {
	Participants []string
	Messages     []Message
}

// Message is one horizontal interaction between two participants.
// Return marks reply messages, drawn dashed.
type Message struct {
	From   int
	To     int
	Label  string
	Return bool
}

// EntityRelationship holds entities and the relationships between them.
type EntityRelationship struct {
	Entities      []Entity
	Relationships []Relationship
}

// Entity is a named box with typed attribute rows.
type Entity struct {
	Name       string
	Attributes []Attribute
}

// Attribute is one typed attribute line of an entity block.
type Attribute struct {
	Type string
	Name string
}

// Relationship connects two entities with a cardinality marker at each end
// and an optional label.
type Relationship struct {
	From     int
	To       int
	FromCard string
	ToCard   string
	Label    string
}

// StateKind distinguishes plain states from markers and composites.
type StateKind int

const (
	StatePlain StateKind = iota
	StateStart
	StateEnd
	StateComposite
)

// State is a state-chart vertex. Composite states carry a nested chart
// that is laid out recursively and embedded in the outer frame.
type State struct {
	ID       string
	Label    string
	Kind     StateKind
	Children *StateChart
}

// Transition is a directed edge between two states.
type Transition struct {
	From  int
	To    int
	Label string
}

// StateChart holds states and transitions. It is also the payload of
// composite states, nested up to MaxNestingDepth levels.
type StateChart struct {
	States      []State
	Transitions []Transition
}

// Visibility glyphs as written in class diagram source: + - # ~.
type Member struct {
	Visibility rune
	Text       string
}

// Class is a three-section box: name, fields, methods.
type Class struct {
	Name    string
	Fields  []Member
	Methods []Member
}

// ClassRelation connects two classes.
type ClassRelation struct {
	From  int
	To    int
	Label string
}

// ClassDiagram holds classes and their relations.
type ClassDiagram struct {
	Classes   []Class
	Relations []ClassRelation
}

// TimeEvent is one axis marker with one or more stacked entries beneath it.
type TimeEvent struct {
	Label   string
	Entries []string
}

// Timeline holds an optional title and events in declaration order.
type Timeline struct {
	Title  string
	Events []TimeEvent
}

// Table holds a header row and body rows.
type Table struct {
	Columns []string
	Rows    [][]string
}
