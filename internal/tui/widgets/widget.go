package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}

// Text renders pre-formatted content clipped to the area.
type Text string

func (t Text) Render(width, height int) string {
	return Clip(string(t), width, height)
}

// Func adapts a render function to Widget.
type Func func(width, height int) string

func (f Func) Render(width, height int) string { return f(width, height) }

// Clip truncates every line to width and drops lines past height.
func Clip(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

// PadRight pads s with spaces to width display cells, truncating first.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
