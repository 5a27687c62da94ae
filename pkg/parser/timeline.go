package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

func parseTimeline(lines []srcLine) (*diagram.Diagram, error) {
	t := &diagram.Timeline{}

	for _, line := range lines {
		if title, ok := strings.CutPrefix(line.text, "title "); ok && t.Title == "" && len(t.Events) == 0 {
			t.Title = strings.TrimSpace(title)
			continue
		}
		// A leading colon stacks another entry under the previous event.
		if entry, ok := strings.CutPrefix(line.text, ":"); ok {
			if len(t.Events) == 0 {
				return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"entry continuation before any event")
			}
			last := &t.Events[len(t.Events)-1]
			last.Entries = append(last.Entries, strings.TrimSpace(entry))
			continue
		}

		label, rest, ok := splitOnce(line.text, ":")
		if !ok || label == "" {
			return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"expected: label : entry")
		}
		ev := diagram.TimeEvent{Label: label}
		for _, entry := range strings.Split(rest, ":") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"timeline event has an empty entry")
			}
			ev.Entries = append(ev.Entries, entry)
		}
		t.Events = append(t.Events, ev)
	}
	if len(t.Events) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "timeline has no events")
	}

	return &diagram.Diagram{Kind: diagram.KindTimeline, Timeline: t}, nil
}
