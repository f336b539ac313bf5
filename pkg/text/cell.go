package text

import (
	"github.com/mattn/go-runewidth"

	"weft/pkg/draw"
)

// CellMeasurer measures in terminal cells: one unit per column, one per
// row. Font and size are ignored.
type CellMeasurer struct{}

// MeasureText implements Measurer.
func (CellMeasurer) MeasureText(s string, _ draw.Font, wrap float64) (w, h float64) {
	lines := BreakLines(s, wrap, func(line string) float64 {
		return float64(runewidth.StringWidth(line))
	})
	for _, line := range lines {
		if lw := float64(runewidth.StringWidth(line)); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines))
}
