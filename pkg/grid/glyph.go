package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style selects the corner glyph set used for a box border.
type Style int

const (
	// StyleSharp draws square corners.
	StyleSharp Style = iota
	// StyleRounded draws arc corners, used for rounded and stadium nodes.
	StyleRounded
	// StyleDiamond draws diagonal corners for decision nodes.
	StyleDiamond
)

// glyphSet holds the border runes of one box style.
type glyphSet struct {
	tl, tr, bl, br rune
	h, v           rune
}

var glyphSets = map[Style]glyphSet{
	StyleSharp:   {'┌', '┐', '└', '┘', '─', '│'},
	StyleRounded: {'╭', '╮', '╰', '╯', '─', '│'},
	StyleDiamond: {'╱', '╲', '╲', '╱', '─', '│'},
}

// Arrowhead glyphs stamped at path endpoints. The loop-back head (left)
// is deliberately distinct from the forward head (down) so cyclic edges
// read differently from rank-to-rank edges.
const (
	ArrowDown  = '▼'
	ArrowUp    = '▲'
	ArrowRight = '►'
	ArrowLeft  = '◄'
)

// Dashed line glyphs.
const (
	dashH = '┄'
	dashV = '┆'
)

// Start/end state marker.
const StateMarker = '●'

// sanitizeTable maps known variable-width or symbol runes to fixed
// single-width ASCII equivalents. Skipping this substitution before width
// arithmetic is the documented root cause of misaligned tables.
var sanitizeTable = map[rune]string{
	'✓':      "[x]",
	'✔':      "[x]",
	'☑':      "[x]",
	'✗':      "[ ]",
	'✘':      "[ ]",
	'✕':      "[ ]",
	'❌':      "[ ]",
	'⚠':      "[!]",
	'→':      "->",
	'⇒':      "->",
	'▶':      "->",
	'➜':      "->",
	'←':      "<-",
	'⇐':      "<-",
	'◀':      "<-",
	'…':      "...",
	'—':      "--",
	'️': "", // variation selector, zero width
	'​': "", // zero-width space
}

// Sanitize replaces variable-width symbols in s with fixed single-width
// ASCII equivalents. Runes without a table entry that still do not measure
// exactly one cell are replaced with '?'. The result consists only of
// single-width runes, so len-in-runes equals visible width.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := sanitizeTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		if runewidth.RuneWidth(r) != 1 {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// VisibleWidth returns the display width of s in terminal cells.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(s)
}

// connection bitmask for box-drawing junction merging.
const (
	connN = 1 << iota
	connS
	connE
	connW
)

var runeToConn = map[rune]int{
	'─': connE | connW,
	'│': connN | connS,
	'┌': connS | connE,
	'┐': connS | connW,
	'└': connN | connE,
	'┘': connN | connW,
	'├': connN | connS | connE,
	'┤': connN | connS | connW,
	'┬': connS | connE | connW,
	'┴': connN | connE | connW,
	'┼': connN | connS | connE | connW,
}

var connToRune = map[int]rune{
	connE | connW:                 '─',
	connN | connS:                 '│',
	connS | connE:                 '┌',
	connS | connW:                 '┐',
	connN | connE:                 '└',
	connN | connW:                 '┘',
	connN | connS | connE:         '├',
	connN | connS | connW:         '┤',
	connS | connE | connW:         '┬',
	connN | connE | connW:         '┴',
	connN | connS | connE | connW: '┼',
}

// mergeRunes combines a new box-drawing rune with an existing cell.
// Two line runes merge into the junction covering both connection sets;
// anything else lets the new rune win.
func mergeRunes(existing, incoming rune) rune {
	ec, eok := runeToConn[existing]
	ic, iok := runeToConn[incoming]
	if !eok || !iok {
		return incoming
	}
	if merged, ok := connToRune[ec|ic]; ok {
		return merged
	}
	return incoming
}
