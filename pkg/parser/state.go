package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

type stateBuilder struct {
	states      []diagram.State
	index       map[string]int
	transitions []diagram.Transition
}

func newStateBuilder() *stateBuilder {
	return &stateBuilder{index: make(map[string]int)}
}

func (b *stateBuilder) state(id string, kind diagram.StateKind) int {
	if i, ok := b.index[id]; ok {
		return i
	}
	i := len(b.states)
	b.states = append(b.states, diagram.State{ID: id, Label: id, Kind: kind})
	b.index[id] = i
	return i
}

// marker resolves [*] references: a start marker when used as a source,
// an end marker when used as a target. The two are distinct states.
func (b *stateBuilder) marker(start bool) int {
	if start {
		i := b.state("[*]start", diagram.StateStart)
		b.states[i].Label = "start"
		return i
	}
	i := b.state("[*]end", diagram.StateEnd)
	b.states[i].Label = "end"
	return i
}

func parseState(lines []srcLine) (*diagram.Diagram, error) {
	chart, consumed, closed, err := parseStateChart(lines, 0)
	if err != nil {
		return nil, err
	}
	if closed {
		line := lines[consumed-1]
		return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
			"unexpected closing brace")
	}
	if len(chart.States) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "state diagram has no states")
	}
	return &diagram.Diagram{Kind: diagram.KindState, State: chart}, nil
}

// parseStateChart parses transitions until end of input or a closing
// brace, recursing for composite state blocks. closed reports whether a
// closing brace terminated the chart; consumed counts lines including
// that brace. depth guards the recursion so malformed input cannot
// overflow the stack; the model-level nesting limit is enforced later by
// Validate.
func parseStateChart(lines []srcLine, depth int) (chart *diagram.StateChart, consumed int, closed bool, err error) {
	if depth > diagram.MaxNestingDepth+1 && len(lines) > 0 {
		first := lines[0]
		return nil, 0, false, errors.NewParse(errors.CodeMalformedNode, first.text, first.num,
			"state blocks nested too deeply")
	}
	b := newStateBuilder()

	i := 0
	for i < len(lines) {
		line := lines[i]
		if line.text == "}" {
			return &diagram.StateChart{States: b.states, Transitions: b.transitions}, i + 1, true, nil
		}
		if rest, ok := strings.CutPrefix(line.text, "state "); ok {
			name, isBlock := strings.CutSuffix(strings.TrimSpace(rest), "{")
			name = strings.TrimSpace(name)
			if name == "" || len(strings.Fields(name)) != 1 {
				return nil, 0, false, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"malformed state declaration")
			}
			if !isBlock {
				b.state(name, diagram.StatePlain)
				i++
				continue
			}
			child, childConsumed, childClosed, err := parseStateChart(lines[i+1:], depth+1)
			if err != nil {
				return nil, 0, false, err
			}
			if !childClosed {
				return nil, 0, false, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"composite state %q is never closed", name)
			}
			idx := b.state(name, diagram.StateComposite)
			b.states[idx].Kind = diagram.StateComposite
			b.states[idx].Children = child
			i += childConsumed + 1
			continue
		}
		if err := b.parseTransition(line); err != nil {
			return nil, 0, false, err
		}
		i++
	}
	return &diagram.StateChart{States: b.states, Transitions: b.transitions}, i, false, nil
}

func (b *stateBuilder) parseTransition(line srcLine) error {
	from, rest, ok := splitOnce(line.text, "-->")
	if !ok {
		// A bare identifier declares a state.
		if len(strings.Fields(line.text)) == 1 && !strings.ContainsAny(line.text, "{}") {
			b.state(line.text, diagram.StatePlain)
			return nil
		}
		return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
			"expected a --> transition")
	}

	to := rest
	label := ""
	if t, l, ok := splitOnce(rest, ":"); ok {
		to, label = t, l
	}
	if from == "" || to == "" {
		return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
			"transition is missing a state")
	}

	fromIdx, err := b.resolve(from, true, line)
	if err != nil {
		return err
	}
	toIdx, err := b.resolve(to, false, line)
	if err != nil {
		return err
	}
	b.transitions = append(b.transitions, diagram.Transition{From: fromIdx, To: toIdx, Label: label})
	return nil
}

func (b *stateBuilder) resolve(ref string, source bool, line srcLine) (int, error) {
	if ref == "[*]" {
		return b.marker(source), nil
	}
	if len(strings.Fields(ref)) != 1 || strings.ContainsAny(ref, "[]{}") {
		return 0, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
			"malformed state reference %q", ref)
	}
	return b.state(ref, diagram.StatePlain), nil
}
