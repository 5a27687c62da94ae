// Package parser turns diagram source text into a diagram model.
//
// The language is line oriented: the first non-blank line selects the
// diagram kind, every following line is parsed with a kind-specific
// grammar. Lines starting with %% are comments. Parsing threads an
// explicit builder value per kind instead of mutating ambient state, and
// never returns a partially built model: on error the Diagram is nil.
package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

// srcLine is one non-blank input line with its 1-based position.
type srcLine struct {
	num  int
	text string
}

// scanLines splits text into trimmed, non-blank, non-comment lines.
func scanLines(text string) []srcLine {
	var out []srcLine
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		out = append(out, srcLine{num: i + 1, text: line})
	}
	return out
}

// Parse compiles text into a Diagram. The returned model is immutable and
// fully resolved except for invariants checked by diagram.Validate.
func Parse(text string) (*diagram.Diagram, error) {
	lines := scanLines(text)
	if len(lines) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "input contains no diagram")
	}

	head := lines[0]
	rest := lines[1:]
	keyword := strings.Fields(head.text)[0]

	switch keyword {
	case "flowchart", "graph":
		return parseFlowchart(rest)
	case "sequenceDiagram":
		return parseSequence(rest)
	case "erDiagram":
		return parseER(rest)
	case "stateDiagram", "stateDiagram-v2":
		return parseState(rest)
	case "classDiagram":
		return parseClass(rest)
	case "timeline":
		return parseTimeline(rest)
	case "table":
		return parseTable(rest)
	}
	return nil, errors.NewParse(errors.CodeUnknownKind, head.text, head.num,
		"unknown diagram kind %q", keyword)
}

// splitOnce splits s around the first occurrence of sep, trimming both halves.
func splitOnce(s, sep string) (left, right string, ok bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
}
