package parser

import (
	"testing"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

func TestParseKindDispatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diagram.Kind
	}{
		{"flowchart", "flowchart TD\nA --> B", diagram.KindFlowchart},
		{"graph alias", "graph LR\nA --> B", diagram.KindFlowchart},
		{"sequence", "sequenceDiagram\nA ->> B: hi", diagram.KindSequence},
		{"er", "erDiagram\nCUSTOMER ||--o{ ORDER : places", diagram.KindEntityRelationship},
		{"state", "stateDiagram-v2\n[*] --> Idle", diagram.KindState},
		{"class", "classDiagram\nclass Animal", diagram.KindClass},
		{"timeline", "timeline\n2004 : Facebook", diagram.KindTimeline},
		{"table", "table\ncolumns: A | B\nx | y", diagram.KindTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if d.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", d.Kind, tt.kind)
			}
		})
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse("ganttChart\nA --> B")
	if !errors.Is(err, errors.CodeUnknownKind) {
		t.Fatalf("error = %v, want %s", err, errors.CodeUnknownKind)
	}
	perr, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error is not a *errors.Error: %v", err)
	}
	if perr.LineNum != 1 || perr.Line != "ganttChart" {
		t.Fatalf("error carries line %d %q, want 1 %q", perr.LineNum, perr.Line, "ganttChart")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "\n\n", "%% just a comment\n"} {
		if _, err := Parse(src); !errors.Is(err, errors.CodeEmptyInput) {
			t.Fatalf("Parse(%q) error = %v, want %s", src, err, errors.CodeEmptyInput)
		}
	}
}

func TestParseFlowchart(t *testing.T) {
	src := `flowchart TD
  A[Start] --> B{Check}
  B -->|Yes| C(Done)
  B -.->|No| D([Retry])
  D --> A`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := d.Flowchart

	wantNodes := []diagram.Node{
		{ID: "A", Label: "Start", Shape: diagram.ShapeRectangle},
		{ID: "B", Label: "Check", Shape: diagram.ShapeDiamond},
		{ID: "C", Label: "Done", Shape: diagram.ShapeRounded},
		{ID: "D", Label: "Retry", Shape: diagram.ShapeStadium},
	}
	if len(f.Nodes) != len(wantNodes) {
		t.Fatalf("got %d nodes, want %d", len(f.Nodes), len(wantNodes))
	}
	for i, want := range wantNodes {
		if f.Nodes[i] != want {
			t.Errorf("node %d = %+v, want %+v", i, f.Nodes[i], want)
		}
	}

	wantEdges := []diagram.Edge{
		{From: 0, To: 1},
		{From: 1, To: 2, Label: "Yes"},
		{From: 1, To: 3, Label: "No", Dashed: true},
		{From: 3, To: 0},
	}
	if len(f.Edges) != len(wantEdges) {
		t.Fatalf("got %d edges, want %d", len(f.Edges), len(wantEdges))
	}
	for i, want := range wantEdges {
		if f.Edges[i] != want {
			t.Errorf("edge %d = %+v, want %+v", i, f.Edges[i], want)
		}
	}
}

func TestParseFlowchartChain(t *testing.T) {
	d, err := Parse("flowchart LR\nA --> B --> C")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := d.Flowchart
	if len(f.Nodes) != 3 || len(f.Edges) != 2 {
		t.Fatalf("got %d nodes %d edges, want 3 and 2", len(f.Nodes), len(f.Edges))
	}
	if f.Edges[0] != (diagram.Edge{From: 0, To: 1}) || f.Edges[1] != (diagram.Edge{From: 1, To: 2}) {
		t.Fatalf("edges = %+v", f.Edges)
	}
}

func TestParseFlowchartErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"duplicate declaration", "flowchart TD\nA[One]\nA[Two]", errors.CodeDuplicateID},
		{"unbalanced bracket", "flowchart TD\nA[Start --> B", errors.CodeMalformedNode},
		{"dangling arrow", "flowchart TD\nA -->", errors.CodeUnmatchedArrow},
		{"arrow without source", "flowchart TD\n--> B", errors.CodeUnmatchedArrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if !errors.IsParse(err) {
				t.Fatalf("error %v is not a parse error", err)
			}
		})
	}
}

func TestParseFlowchartRedeclareAfterMention(t *testing.T) {
	// First mention by bare id, later declared with a label: allowed once.
	d, err := Parse("flowchart TD\nA --> B\nB[Target]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := d.Flowchart.Nodes[1].Label; got != "Target" {
		t.Fatalf("label = %q, want %q", got, "Target")
	}
}

func TestParseSequence(t *testing.T) {
	src := `sequenceDiagram
  participant Alice
  Alice ->> Bob: Hello
  Bob -->> Alice: Hi back`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s := d.Sequence
	if len(s.Participants) != 2 || s.Participants[0] != "Alice" || s.Participants[1] != "Bob" {
		t.Fatalf("participants = %v", s.Participants)
	}
	want := []diagram.Message{
		{From: 0, To: 1, Label: "Hello"},
		{From: 1, To: 0, Label: "Hi back", Return: true},
	}
	for i, m := range want {
		if s.Messages[i] != m {
			t.Errorf("message %d = %+v, want %+v", i, s.Messages[i], m)
		}
	}
}

func TestParseSequenceMissingParticipant(t *testing.T) {
	_, err := Parse("sequenceDiagram\n->> Bob: hello")
	if !errors.Is(err, errors.CodeUnmatchedArrow) {
		t.Fatalf("error = %v, want %s", err, errors.CodeUnmatchedArrow)
	}
}

func TestParseER(t *testing.T) {
	src := `erDiagram
  CUSTOMER {
    string name
    int orders
  }
  CUSTOMER ||--o{ ORDER : places`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	er := d.ER
	if len(er.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(er.Entities))
	}
	c := er.Entities[0]
	if c.Name != "CUSTOMER" || len(c.Attributes) != 2 {
		t.Fatalf("entity = %+v", c)
	}
	if c.Attributes[0] != (diagram.Attribute{Type: "string", Name: "name"}) {
		t.Fatalf("attribute = %+v", c.Attributes[0])
	}
	r := er.Relationships[0]
	if r.From != 0 || r.To != 1 || r.FromCard != "||" || r.ToCard != "o{" || r.Label != "places" {
		t.Fatalf("relationship = %+v", r)
	}
}

func TestParseERUnclosedBlock(t *testing.T) {
	_, err := Parse("erDiagram\nCUSTOMER {\nstring name")
	if !errors.Is(err, errors.CodeMalformedNode) {
		t.Fatalf("error = %v, want %s", err, errors.CodeMalformedNode)
	}
}

func TestParseState(t *testing.T) {
	src := `stateDiagram-v2
  [*] --> Idle
  Idle --> Running : start
  Running --> [*]`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sc := d.State
	if len(sc.States) != 4 {
		t.Fatalf("got %d states, want 4", len(sc.States))
	}
	if sc.States[0].Kind != diagram.StateStart || sc.States[3].Kind != diagram.StateEnd {
		t.Fatalf("marker kinds = %v %v", sc.States[0].Kind, sc.States[3].Kind)
	}
	if sc.Transitions[1].Label != "start" {
		t.Fatalf("transition label = %q", sc.Transitions[1].Label)
	}
}

func TestParseStateComposite(t *testing.T) {
	src := `stateDiagram-v2
  [*] --> Active
  state Active {
    [*] --> Working
    Working --> Waiting
  }`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var active *diagram.State
	for i := range d.State.States {
		if d.State.States[i].ID == "Active" {
			active = &d.State.States[i]
		}
	}
	if active == nil || active.Kind != diagram.StateComposite {
		t.Fatalf("Active state = %+v", active)
	}
	if active.Children == nil || len(active.Children.States) != 3 {
		t.Fatalf("children = %+v", active.Children)
	}
}

func TestParseStateUnclosedComposite(t *testing.T) {
	_, err := Parse("stateDiagram\nstate Active {\nA --> B")
	if !errors.Is(err, errors.CodeMalformedNode) {
		t.Fatalf("error = %v, want %s", err, errors.CodeMalformedNode)
	}
}

func TestParseClass(t *testing.T) {
	src := `classDiagram
  class Animal {
    +string name
    -int age
    +speak() string
  }
  Animal <|-- Dog : extends`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := d.Class
	if len(c.Classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(c.Classes))
	}
	animal := c.Classes[0]
	if len(animal.Fields) != 2 || len(animal.Methods) != 1 {
		t.Fatalf("fields = %+v, methods = %+v", animal.Fields, animal.Methods)
	}
	if animal.Fields[1] != (diagram.Member{Visibility: '-', Text: "int age"}) {
		t.Fatalf("field = %+v", animal.Fields[1])
	}
	if animal.Methods[0] != (diagram.Member{Visibility: '+', Text: "speak() string"}) {
		t.Fatalf("method = %+v", animal.Methods[0])
	}
	r := c.Relations[0]
	if r.From != 0 || r.To != 1 || r.Label != "extends" {
		t.Fatalf("relation = %+v", r)
	}
}

func TestParseClassDottedMember(t *testing.T) {
	d, err := Parse("classDiagram\nAnimal : +int age")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(d.Class.Classes[0].Fields) != 1 {
		t.Fatalf("fields = %+v", d.Class.Classes[0].Fields)
	}
}

func TestParseTimeline(t *testing.T) {
	src := `timeline
  title Social media
  2002 : LinkedIn
  2004 : Facebook : Google
       : Orkut`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tl := d.Timeline
	if tl.Title != "Social media" {
		t.Fatalf("title = %q", tl.Title)
	}
	if len(tl.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(tl.Events))
	}
	second := tl.Events[1]
	if second.Label != "2004" || len(second.Entries) != 3 || second.Entries[2] != "Orkut" {
		t.Fatalf("event = %+v", second)
	}
}

func TestParseTable(t *testing.T) {
	src := `table
  columns: Feature | Mermaid | ASCII
  ---
  Rich SVG graphics | Yes | No
  Plain text | No |`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tb := d.Table
	if len(tb.Columns) != 3 || tb.Columns[2] != "ASCII" {
		t.Fatalf("columns = %v", tb.Columns)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tb.Rows))
	}
	if tb.Rows[1][2] != "" {
		t.Fatalf("short row not padded: %v", tb.Rows[1])
	}
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"row before header", "table\na | b", errors.CodeMalformedNode},
		{"second header", "table\ncolumns: A\ncolumns: B", errors.CodeDuplicateID},
		{"too many cells", "table\ncolumns: A | B\nx | y | z", errors.CodeMalformedNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.src); !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
