package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderPopup draws popup in a bordered card centred over base. Base rows
// outside the card stay visible.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := strings.Split(base, "\n")
	if len(canvas) > height {
		canvas = canvas[:height]
	}
	for len(canvas) < height {
		canvas = append(canvas, "")
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#89b4fa")).
		Padding(0, 1).
		Render(popup)
	cardLines := strings.Split(card, "\n")
	cardWidth := 0
	for _, l := range cardLines {
		cardWidth = max(cardWidth, ansi.StringWidth(l))
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(cardLines))/2)

	for i, line := range cardLines {
		row := y + i
		if row >= height {
			break
		}
		target := PadRight(canvas[row], width)
		left := PadRight(ansi.Truncate(target, x, ""), x)
		mid := PadRight(line, cardWidth)
		right := ""
		if end := x + cardWidth; end < width {
			right = ansi.TruncateLeft(target, end, "")
		}
		canvas[row] = ansi.Truncate(left+mid+right, width, "")
	}
	return strings.Join(canvas, "\n")
}
