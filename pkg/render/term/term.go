// Package term renders into a grid of terminal cells, one layout unit per
// column and row, and prints it with lipgloss styling. Pair it with
// text.CellMeasurer so text is sized in cells.
package term

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"weft/pkg/draw"
	"weft/pkg/geom"
)

// Cell is one terminal cell. A zero Rune marks the right half of a wide
// rune drawn in the cell before it.
type Cell struct {
	Rune   rune
	FG, BG color.RGBA
	Bold   bool
}

// Screen is a draw.Renderer over a cell grid.
type Screen struct {
	width, height int
	cells         []Cell
	clips         []geom.Rect
	fonts         []draw.Font
	warned        map[string]bool
}

// New returns a blank width x height screen.
func New(width, height int) *Screen {
	s := &Screen{width: width, height: height, warned: make(map[string]bool)}
	s.cells = make([]Cell, width*height)
	s.Clear(color.RGBA{})
	return s
}

// Clear resets every cell to a space on bg.
func (s *Screen) Clear(bg color.RGBA) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' ', BG: bg}
	}
}

// At returns the cell at column x, row y.
func (s *Screen) At(x, y int) Cell { return s.cells[y*s.width+x] }

// Plain returns the grid as text without styling, trailing spaces trimmed.
func (s *Screen) Plain() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		var line strings.Builder
		for x := 0; x < s.width; x++ {
			if r := s.At(x, y).Rune; r != 0 {
				line.WriteRune(r)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns the grid with runs of equal cells styled by lipgloss.
func (s *Screen) String() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		var run strings.Builder
		var cur Cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cellStyle(cur).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < s.width; x++ {
			c := s.At(x, y)
			if c.Rune == 0 {
				continue
			}
			if run.Len() > 0 && (c.FG != cur.FG || c.BG != cur.BG || c.Bold != cur.Bold) {
				flush()
			}
			cur = c
			run.WriteRune(c.Rune)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func cellStyle(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(c.Bold)
	if c.FG.A > 0 {
		st = st.Foreground(lipgloss.Color(hex(c.FG)))
	}
	if c.BG.A > 0 {
		st = st.Background(lipgloss.Color(hex(c.BG)))
	}
	return st
}

func hex(c color.RGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (s *Screen) warn(what string) {
	if !s.warned[what] {
		s.warned[what] = true
		log.Printf("term: %s is not supported, drawing an approximation", what)
	}
}

func (s *Screen) visible(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	if n := len(s.clips); n > 0 {
		return s.clips[n-1].Contains(float64(x)+0.5, float64(y)+0.5)
	}
	return true
}

func (s *Screen) cell(x, y int) *Cell {
	if !s.visible(x, y) {
		return nil
	}
	return &s.cells[y*s.width+x]
}

func span(r geom.Rect) (x0, y0, x1, y1 int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X + r.Width)), int(math.Round(r.Y + r.Height))
}

func (s *Screen) Rect(r geom.Rect, c color.RGBA) {
	x0, y0, x1, y1 := span(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p := s.cell(x, y); p != nil {
				*p = Cell{Rune: ' ', BG: c}
			}
		}
	}
}

func (s *Screen) RoundedRect(r geom.Rect, _ float64, c color.RGBA) { s.Rect(r, c) }

// StrokeRect draws a box-drawing frame on the cells the stroke touches.
func (s *Screen) StrokeRect(r geom.Rect, _ float64, c color.RGBA) {
	x0, y0 := int(math.Floor(r.X)), int(math.Floor(r.Y))
	x1, y1 := int(math.Ceil(r.Right()))-1, int(math.Ceil(r.Bottom()))-1
	if x1 < x0 || y1 < y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		s.put(x, y0, '─', c)
		s.put(x, y1, '─', c)
	}
	for y := y0 + 1; y < y1; y++ {
		s.put(x0, y, '│', c)
		s.put(x1, y, '│', c)
	}
	s.put(x0, y0, '┌', c)
	s.put(x1, y0, '┐', c)
	s.put(x0, y1, '└', c)
	s.put(x1, y1, '┘', c)
}

// Line draws horizontal and vertical lines. Diagonals fall back to their
// end points.
func (s *Screen) Line(x1, y1, x2, y2, _ float64, c color.RGBA) {
	ax, ay := int(math.Round(x1)), int(math.Round(y1))
	bx, by := int(math.Round(x2)), int(math.Round(y2))
	switch {
	case ay == by:
		for x := min(ax, bx); x <= max(ax, bx); x++ {
			s.put(x, ay, '─', c)
		}
	case ax == bx:
		for y := min(ay, by); y <= max(ay, by); y++ {
			s.put(ax, y, '│', c)
		}
	default:
		s.warn("diagonal line")
		s.put(ax, ay, '·', c)
		s.put(bx, by, '·', c)
	}
}

func (s *Screen) Circle(cx, cy, _ float64, c color.RGBA) {
	s.warn("circle")
	s.put(int(math.Round(cx)), int(math.Round(cy)), '●', c)
}

func (s *Screen) Image(_ image.Image, r geom.Rect) {
	s.warn("image")
	x0, y0, x1, y1 := span(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.put(x, y, '░', color.RGBA{128, 128, 128, 255})
		}
	}
}

// Text writes s on row y starting at column x. Wide runes take two cells.
func (s *Screen) Text(str string, x, y float64, c color.RGBA) {
	col, row := int(math.Round(x)), int(math.Round(y))
	bold := s.font().Bold
	for _, r := range str {
		if r == '\n' {
			col, row = int(math.Round(x)), row+1
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if p := s.cell(col, row); p != nil {
			p.Rune, p.FG, p.Bold = r, c, bold
		}
		if w == 2 {
			if p := s.cell(col+1, row); p != nil {
				p.Rune, p.FG = 0, c
			}
		}
		col += w
	}
}

func (s *Screen) put(x, y int, r rune, c color.RGBA) {
	if p := s.cell(x, y); p != nil {
		p.Rune, p.FG = r, c
	}
}

func (s *Screen) PushClip(r geom.Rect) {
	if n := len(s.clips); n > 0 {
		r = r.Intersect(s.clips[n-1])
	}
	s.clips = append(s.clips, r)
}

func (s *Screen) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Screen) PushFont(f draw.Font) { s.fonts = append(s.fonts, f) }

func (s *Screen) PopFont() {
	if len(s.fonts) > 0 {
		s.fonts = s.fonts[:len(s.fonts)-1]
	}
}

func (s *Screen) font() draw.Font {
	if n := len(s.fonts); n > 0 {
		return s.fonts[n-1]
	}
	return draw.Font{}
}
