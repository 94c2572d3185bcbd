package widgets

import (
	"math"
	"strings"
)

// VStack stacks widgets top to bottom.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacing := max(0, v.Spacing*(len(v.Widgets)-1))
	heights := splitSizes(max(1, height-spacing), len(v.Widgets), v.Ratios)
	parts := make([]string, 0, len(v.Widgets))
	for i, w := range v.Widgets {
		part := w.Render(width, max(1, heights[i]))
		if i < len(v.Widgets)-1 && v.Spacing > 0 {
			part += strings.Repeat("\n", v.Spacing)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "\n")
}

// HStack places widgets side by side separated by Gap columns.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gap := max(0, h.Gap*(len(h.Widgets)-1))
	widths := splitSizes(max(1, width-gap), len(h.Widgets), h.Ratios)
	cols := make([][]string, len(h.Widgets))
	rows := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rows = max(rows, len(cols[i]))
	}
	out := make([]string, 0, rows)
	sep := strings.Repeat(" ", h.Gap)
	for r := 0; r < rows; r++ {
		cells := make([]string, len(cols))
		for i, col := range cols {
			line := ""
			if r < len(col) {
				line = col[r]
			}
			cells[i] = PadRight(line, widths[i])
		}
		out = append(out, strings.Join(cells, sep))
	}
	return strings.Join(out, "\n")
}

// splitSizes divides total into n parts by ratio, handing leftovers out
// from the left. Mismatched ratios split evenly.
func splitSizes(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	if len(ratios) != n {
		ratios = make([]float64, n)
		for i := range ratios {
			ratios[i] = 1
		}
	}
	sum := 0.0
	for _, r := range ratios {
		sum += math.Max(r, 0.0001)
	}
	out := make([]int, n)
	used := 0
	for i, r := range ratios {
		out[i] = int(math.Floor(math.Max(r, 0.0001) / sum * float64(total)))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}
