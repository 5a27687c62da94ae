package render

import (
	"strings"
	"testing"

	"github.com/dnl-fm/ascii/pkg/grid"
	"github.com/dnl-fm/ascii/pkg/layout"
)

func TestDrawBoxWithText(t *testing.T) {
	geo := &layout.Geometry{
		Width:  7,
		Height: 3,
		Boxes:  []layout.Box{{X: 0, Y: 0, W: 7, H: 3, Style: grid.StyleSharp}},
		Texts:  []layout.Text{{X: 2, Y: 1, S: "hi"}},
	}
	out, err := Text(geo, false)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := "┌─────┐\n│ hi  │\n└─────┘"
	if out != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestDrawPathWithArrow(t *testing.T) {
	geo := &layout.Geometry{
		Width:  5,
		Height: 4,
		Paths: []layout.Path{{
			Points: []layout.Point{{X: 2, Y: 0}, {X: 2, Y: 3}},
			Arrow:  grid.ArrowDown,
		}},
	}
	out, err := Text(geo, false)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if []rune(lines[0])[2] != '│' || []rune(lines[3])[2] != '▼' {
		t.Fatalf("path not stamped:\n%s", out)
	}
}

func TestDrawLShapedPath(t *testing.T) {
	geo := &layout.Geometry{
		Width:  6,
		Height: 4,
		Paths: []layout.Path{{
			Points: []layout.Point{{X: 0, Y: 0}, {X: 5, Y: 3}},
		}},
	}
	out, err := Text(geo, false)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	// Horizontal leg on the first row, vertical leg down the last column.
	if []rune(lines[0])[1] != '─' {
		t.Fatalf("missing horizontal leg:\n%s", out)
	}
	if []rune(lines[2])[5] != '│' {
		t.Fatalf("missing vertical leg:\n%s", out)
	}
}

func TestDrawCrossingPathsMerge(t *testing.T) {
	geo := &layout.Geometry{
		Width:  5,
		Height: 5,
		Paths: []layout.Path{
			{Points: []layout.Point{{X: 0, Y: 2}, {X: 4, Y: 2}}},
			{Points: []layout.Point{{X: 2, Y: 0}, {X: 2, Y: 4}}},
		},
	}
	out, err := Text(geo, false)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if []rune(lines[2])[2] != '┼' {
		t.Fatalf("crossing did not merge into a junction:\n%s", out)
	}
}

func TestTextFramed(t *testing.T) {
	geo := &layout.Geometry{
		Width:  4,
		Height: 1,
		Texts:  []layout.Text{{X: 0, Y: 0, S: "test"}},
	}
	out, err := Text(geo, true)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := "┌──────┐\n│ test │\n└──────┘"
	if out != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestSeparatorRows(t *testing.T) {
	geo := &layout.Geometry{
		Width:  6,
		Height: 5,
		Boxes: []layout.Box{{
			X: 0, Y: 0, W: 6, H: 5,
			Style:      grid.StyleSharp,
			Separators: []int{2},
		}},
	}
	out, err := Text(geo, false)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	lines := strings.Split(out, "\n")
	if lines[2] != "├────┤" {
		t.Fatalf("separator row = %q", lines[2])
	}
}
