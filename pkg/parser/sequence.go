package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

// sequence message operators, longest first. Double-stem arrows with a
// leading double dash are returns and render dashed.
var seqArrows = []struct {
	op  string
	ret bool
}{
	{"-->>", true},
	{"->>", false},
	{"-->", true},
	{"->", false},
}

type sequenceBuilder struct {
	participants []string
	index        map[string]int
	messages     []diagram.Message
}

func (b *sequenceBuilder) participant(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	i := len(b.participants)
	b.participants = append(b.participants, name)
	b.index[name] = i
	return i
}

func parseSequence(lines []srcLine) (*diagram.Diagram, error) {
	b := &sequenceBuilder{index: make(map[string]int)}

	for _, line := range lines {
		if name, ok := strings.CutPrefix(line.text, "participant "); ok {
			b.participant(strings.TrimSpace(name))
			continue
		}
		if name, ok := strings.CutPrefix(line.text, "actor "); ok {
			b.participant(strings.TrimSpace(name))
			continue
		}
		if err := b.parseMessage(line); err != nil {
			return nil, err
		}
	}
	if len(b.participants) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "sequence diagram has no participants")
	}

	return &diagram.Diagram{
		Kind:     diagram.KindSequence,
		Sequence: &diagram.Sequence{Participants: b.participants, Messages: b.messages},
	}, nil
}

func (b *sequenceBuilder) parseMessage(line srcLine) error {
	for _, a := range seqArrows {
		from, rest, ok := splitOnce(line.text, a.op)
		if !ok {
			continue
		}
		to := rest
		label := ""
		if t, l, ok := splitOnce(rest, ":"); ok {
			to, label = t, l
		}
		if from == "" || to == "" {
			return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
				"message arrow is missing a participant")
		}
		b.messages = append(b.messages, diagram.Message{
			From:   b.participant(from),
			To:     b.participant(to),
			Label:  label,
			Return: a.ret,
		})
		return nil
	}
	return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
		"expected a message arrow")
}
